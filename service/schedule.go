package service

import (
	"context"
	"time"

	"github.com/BerniceZTT/crm_interactions/filter"
	"github.com/BerniceZTT/crm_interactions/models"
	"github.com/BerniceZTT/crm_interactions/repository"
	"github.com/BerniceZTT/crm_interactions/utils"
)

// NextRunAt 计算下一次在 hour:min:sec 执行的时间，今天已过则顺延到明天
func NextRunAt(now time.Time, hour, min, sec int) time.Time {
	next := time.Date(now.Year(), now.Month(), now.Day(), hour, min, sec, 0, now.Location())
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}

// 每天指定时间执行任务，ctx 取消后退出
func ScheduleDailyTaskAt(ctx context.Context, loc *time.Location, hour, min, sec int, task func(ctx context.Context, now time.Time)) {
	go func() {
		for {
			now := time.Now().In(loc)
			next := NextRunAt(now, hour, min, sec)
			timer := time.NewTimer(next.Sub(now))

			select {
			case <-ctx.Done():
				timer.Stop()
				utils.Logger.Info().Msg("定时任务已停止")
				return
			case fired := <-timer.C:
				task(ctx, fired.In(loc))
			}
		}
	}()
}

// OverdueFollowUpFilter 逾期跟进快捷筛选对应的规范化条件。
// 系统任务直接使用预设，不计入用户的快捷筛选使用次数。
func OverdueFollowUpFilter(now time.Time) filter.Canonical {
	preset, _ := filter.LookupPreset(filter.QuickOverdueFollowUps)
	return filter.Normalize(preset.ApplyTo(filter.Draft{}, now))
}

// ProcessOverdueFollowUpDigest 按客户经理汇总逾期跟进并写入日志
func ProcessOverdueFollowUpDigest(ctx context.Context, now time.Time) ([]models.OverdueDigestItem, error) {
	utils.Logger.Info().Time("time", now).Msg("开始执行每日逾期跟进汇总任务")

	query, err := repository.BuildInteractionQuery(OverdueFollowUpFilter(now), now)
	if err != nil {
		utils.LogError(err, nil, "构建逾期跟进查询失败")
		return nil, err
	}

	items, err := repository.OverdueByOwner(ctx, query)
	if err != nil {
		utils.LogError(err, nil, "汇总逾期跟进失败")
		return nil, err
	}

	total := 0
	for _, item := range items {
		total += item.Count
		utils.Logger.Warn().
			Str("createdBy", item.CreatedBy).
			Str("createdByName", item.CreatedByName).
			Int("count", item.Count).
			Msg("客户经理存在逾期跟进")
	}

	utils.Logger.Info().
		Int("owners", len(items)).
		Int("total", total).
		Msg("每日逾期跟进汇总任务完成")

	return items, nil
}
