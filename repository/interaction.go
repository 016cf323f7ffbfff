package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/BerniceZTT/crm_interactions/models"
	"github.com/BerniceZTT/crm_interactions/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrInteractionNotFound 互动记录不存在
var ErrInteractionNotFound = utils.CreateNotFoundError("互动记录")

// ListInteractions 分页查询互动记录，按发生时间倒序
func ListInteractions(ctx context.Context, query bson.M, page, limit int64) ([]models.Interaction, int64, error) {
	collection := Collection(InteractionsCollection)

	total, err := collection.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("统计互动记录失败: %w", err)
	}

	findOptions := options.Find().
		SetSort(bson.D{{Key: "occurredAt", Value: -1}, {Key: "_id", Value: -1}}).
		SetSkip((page - 1) * limit).
		SetLimit(limit)

	cursor, err := collection.Find(ctx, query, findOptions)
	if err != nil {
		return nil, 0, fmt.Errorf("查询互动记录失败: %w", err)
	}
	defer cursor.Close(ctx)

	interactions := []models.Interaction{}
	if err := cursor.All(ctx, &interactions); err != nil {
		return nil, 0, fmt.Errorf("解析互动记录失败: %w", err)
	}

	utils.LogDbOperation("find", InteractionsCollection, query, len(interactions))
	return interactions, total, nil
}

// FindInteraction 按ID查询互动记录
func FindInteraction(ctx context.Context, id string) (*models.Interaction, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, utils.CreateBadRequestError("无效的ID格式")
	}

	var interaction models.Interaction
	err = Collection(InteractionsCollection).FindOne(ctx, bson.M{"_id": objID}).Decode(&interaction)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrInteractionNotFound
		}
		return nil, err
	}
	return &interaction, nil
}

// InsertInteraction 新增互动记录，网络类错误自动重试
func InsertInteraction(ctx context.Context, interaction *models.Interaction) error {
	coll := Collection(InteractionsCollection)
	return insertInteraction(ctx, interaction, func(ctx context.Context, doc interface{}) (*mongo.InsertOneResult, error) {
		return coll.InsertOne(ctx, doc)
	})
}

type insertFunc func(ctx context.Context, doc interface{}) (*mongo.InsertOneResult, error)

// insertInteraction 写入前分配 _id，所有重试写入同一文档。
// 重试时遇到重复键说明之前的尝试已提交，视为成功。
func insertInteraction(ctx context.Context, interaction *models.Interaction, insert insertFunc) error {
	if interaction.ID.IsZero() {
		interaction.ID = primitive.NewObjectID()
	}

	attempt := 0
	_, err := ExecuteDbOperation(func() (*mongo.InsertOneResult, error) {
		attempt++
		result, err := insert(ctx, interaction)
		if err != nil && attempt > 1 && mongo.IsDuplicateKeyError(err) {
			utils.Logger.Warn().Str("id", interaction.ID.Hex()).Msg("互动记录已在之前的尝试中写入")
			return &mongo.InsertOneResult{InsertedID: interaction.ID}, nil
		}
		return result, err
	}, 3)
	if err != nil {
		return fmt.Errorf("创建互动记录失败: %w", err)
	}
	utils.LogDbOperation("insert", InteractionsCollection, nil, interaction.ID.Hex())
	return nil
}

// DeleteInteraction 删除互动记录
func DeleteInteraction(ctx context.Context, id string) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return utils.CreateBadRequestError("无效的ID格式")
	}

	result, err := Collection(InteractionsCollection).DeleteOne(ctx, bson.M{"_id": objID})
	if err != nil {
		return fmt.Errorf("删除互动记录失败: %w", err)
	}
	if result.DeletedCount == 0 {
		return ErrInteractionNotFound
	}
	return nil
}

// CompleteFollowUp 标记跟进已完成
func CompleteFollowUp(ctx context.Context, id string, now time.Time) (*models.Interaction, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, utils.CreateBadRequestError("无效的ID格式")
	}

	var updated models.Interaction
	err = Collection(InteractionsCollection).FindOneAndUpdate(
		ctx,
		bson.M{"_id": objID, "followUpRequired": true},
		bson.M{"$set": bson.M{"followUpCompleted": true, "updatedAt": now}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&updated)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, utils.CreateNotFoundError("待跟进的互动记录")
		}
		return nil, fmt.Errorf("更新跟进状态失败: %w", err)
	}
	return &updated, nil
}

// CountInteractions 统计满足条件的互动记录数
func CountInteractions(ctx context.Context, query bson.M) (int64, error) {
	return Collection(InteractionsCollection).CountDocuments(ctx, query)
}

// GroupCount 按字段分组计数，用于看板图表
func GroupCount(ctx context.Context, query bson.M, groupField string) ([]models.ChartDataItem, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: query}},
		{{Key: "$group", Value: bson.M{"_id": "$" + groupField, "count": bson.M{"$sum": 1}}}},
		{{Key: "$sort", Value: bson.D{{Key: "count", Value: -1}, {Key: "_id", Value: 1}}}},
	}

	cursor, err := Collection(InteractionsCollection).Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var results []struct {
		ID    string `bson:"_id"`
		Count int    `bson:"count"`
	}
	if err = cursor.All(ctx, &results); err != nil {
		return nil, err
	}

	chartData := make([]models.ChartDataItem, 0, len(results))
	for _, result := range results {
		chartData = append(chartData, models.ChartDataItem{
			Name:  result.ID,
			Value: result.Count,
		})
	}
	return chartData, nil
}

// OverdueByOwner 按客户经理汇总满足条件的记录数
func OverdueByOwner(ctx context.Context, query bson.M) ([]models.OverdueDigestItem, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: query}},
		{{Key: "$group", Value: bson.M{
			"_id":           "$createdBy",
			"createdByName": bson.M{"$first": "$createdByName"},
			"count":         bson.M{"$sum": 1},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "count", Value: -1}}}},
	}

	cursor, err := Collection(InteractionsCollection).Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	items := []models.OverdueDigestItem{}
	if err := cursor.All(ctx, &items); err != nil {
		return nil, err
	}
	return items, nil
}
