package controllers

import (
	"context"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BerniceZTT/crm_interactions/models"
	"github.com/BerniceZTT/crm_interactions/repository"
	"github.com/BerniceZTT/crm_interactions/utils"
)

// GetDashboardStats 获取数据看板统计信息，统计范围与列表使用相同的筛选条件
func GetDashboardStats(c *gin.Context) {
	draft, quick, err := bindDraftQuery(c)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	now := today()
	resolved, err := resolveDraft(draft, quick, now)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	// 待跟进与逾期是两个独立条件，在当前筛选基础上分别叠加
	neededFilter := resolved.Filter
	neededFilter.FollowUpNeeded = true
	overdueFilter := resolved.Filter
	overdueFilter.FollowUpOverdue = true

	baseQuery, err := repository.BuildInteractionQuery(resolved.Filter, now)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	neededQuery, err := repository.BuildInteractionQuery(neededFilter, now)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	overdueQuery, err := repository.BuildInteractionQuery(overdueFilter, now)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.LogInfo(map[string]interface{}{
		"filter": resolved.Filter,
	}, "获取数据看板统计信息")

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	response := models.DashboardDataResponse{
		Filter:      resolved.Filter,
		ActiveCount: resolved.ActiveCount,
	}

	if response.InteractionCount, err = repository.CountInteractions(ctx, baseQuery); err != nil {
		utils.HandleError(c, fmt.Errorf("计算互动总数失败: %w", err))
		return
	}
	if response.FollowUpNeeded, err = repository.CountInteractions(ctx, neededQuery); err != nil {
		utils.HandleError(c, fmt.Errorf("计算待跟进数量失败: %w", err))
		return
	}
	if response.FollowUpOverdue, err = repository.CountInteractions(ctx, overdueQuery); err != nil {
		utils.HandleError(c, fmt.Errorf("计算逾期跟进数量失败: %w", err))
		return
	}

	if response.TypeDistribution, err = repository.GroupCount(ctx, baseQuery, "type"); err != nil {
		utils.HandleError(c, fmt.Errorf("获取互动类型分布失败: %w", err))
		return
	}
	if response.PriorityDistribution, err = repository.GroupCount(ctx, baseQuery, "priority"); err != nil {
		utils.HandleError(c, fmt.Errorf("获取优先级分布失败: %w", err))
		return
	}
	if response.OwnerDistribution, err = repository.GroupCount(ctx, baseQuery, "createdByName"); err != nil {
		utils.HandleError(c, fmt.Errorf("获取客户经理分布失败: %w", err))
		return
	}

	utils.SuccessResponse(c, response, "成功")
}
