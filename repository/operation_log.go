package repository

import (
	"context"
	"fmt"

	"github.com/BerniceZTT/crm_interactions/models"
)

// InsertOperationLog 写入一条操作日志
func InsertOperationLog(ctx context.Context, log *models.OperationLog) error {
	if _, err := Collection(ApiOperationLogsCollection).InsertOne(ctx, log); err != nil {
		return fmt.Errorf("保存操作日志失败: %w", err)
	}
	return nil
}
