package controllers

import (
	"fmt"
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BerniceZTT/crm_interactions/filter"
	"github.com/BerniceZTT/crm_interactions/models"
	"github.com/BerniceZTT/crm_interactions/repository"
	"github.com/BerniceZTT/crm_interactions/utils"
)

// GetInteractionList 获取互动记录列表
func GetInteractionList(c *gin.Context) {
	draft, quick, err := bindDraftQuery(c)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	page, limit := utils.ParsePagination(c)

	now := today()
	resolved, err := resolveDraft(draft, quick, now)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	query, err := repository.BuildInteractionQuery(resolved.Filter, now)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.LogInfo(map[string]interface{}{
		"filter":      resolved.Filter,
		"quickFilter": quick,
		"page":        page,
		"limit":       limit,
	}, "获取互动记录列表")

	ctx := c.Request.Context()
	interactions, total, err := repository.ListInteractions(ctx, query, page, limit)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.LogInfo(map[string]interface{}{
		"count": len(interactions),
		"total": total,
	}, "成功获取互动记录列表")

	utils.PaginatedResponse(c, interactions, total, page, limit, gin.H{
		"filter":             resolved.Filter,
		"activeCount":        resolved.ActiveCount,
		"activeQuickFilters": resolved.ActiveQuickFilters,
	})
}

// GetInteractionDetail 获取互动记录详情
func GetInteractionDetail(c *gin.Context) {
	interaction, err := repository.FindInteraction(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.SuccessResponse(c, interaction, "")
}

// CreateInteraction 创建互动记录
func CreateInteraction(c *gin.Context) {
	var input models.CreateInteractionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.HandleError(c, utils.CreateBadRequestError("无效的请求数据"))
		return
	}

	now := today()
	interaction, err := buildInteraction(input, now)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	if err := repository.InsertInteraction(c.Request.Context(), interaction); err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.LogInfo(map[string]interface{}{
		"interactionId": interaction.ID.Hex(),
		"type":          interaction.Type,
		"createdBy":     interaction.CreatedBy,
	}, "创建互动记录成功")

	utils.SuccessResponse(c, interaction, "创建互动记录成功", http.StatusCreated)
}

// DeleteInteraction 删除互动记录
func DeleteInteraction(c *gin.Context) {
	id := c.Param("id")
	if err := repository.DeleteInteraction(c.Request.Context(), id); err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.LogInfo(map[string]interface{}{"interactionId": id}, "删除互动记录成功")
	utils.SuccessResponse(c, nil, "删除互动记录成功")
}

// CompleteInteractionFollowUp 标记跟进已完成
func CompleteInteractionFollowUp(c *gin.Context) {
	id := c.Param("id")
	interaction, err := repository.CompleteFollowUp(c.Request.Context(), id, today())
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.LogInfo(map[string]interface{}{"interactionId": id}, "跟进已完成")
	utils.SuccessResponse(c, interaction, "跟进已完成")
}

// buildInteraction 校验输入并生成互动记录
func buildInteraction(input models.CreateInteractionInput, now time.Time) (*models.Interaction, error) {
	input.Type = strings.TrimSpace(input.Type)
	if !catalog.HasInteractionType(input.Type) {
		return nil, utils.CreateBadRequestError(fmt.Sprintf("未知的互动类型: %s", input.Type))
	}
	if input.Priority != "" && !slices.Contains(catalog.Priorities, input.Priority) {
		return nil, utils.CreateBadRequestError(fmt.Sprintf("未知的优先级: %s", input.Priority))
	}

	occurredAt := input.OccurredAt
	if occurredAt.IsZero() {
		occurredAt = now
	}

	interaction := &models.Interaction{
		Type:             input.Type,
		Subject:          strings.TrimSpace(input.Subject),
		Notes:            input.Notes,
		Priority:         input.Priority,
		OccurredAt:       occurredAt,
		ContactID:        input.ContactID,
		ContactName:      input.ContactName,
		OrganizationID:   input.OrganizationID,
		OrganizationName: input.OrganizationName,
		OpportunityID:    input.OpportunityID,
		OpportunityName:  input.OpportunityName,
		CreatedBy:        input.CreatedBy,
		CreatedByName:    accountManagerName(input.CreatedBy),
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if input.FollowUpDate != "" {
		followUp, err := time.ParseInLocation(filter.DateLayout, input.FollowUpDate, now.Location())
		if err != nil {
			return nil, utils.CreateBadRequestError(fmt.Sprintf("无效的跟进日期: %s", input.FollowUpDate))
		}
		interaction.FollowUpRequired = true
		interaction.FollowUpDate = &followUp
	}

	return interaction, nil
}

// accountManagerName 查找客户经理名称，未配置时返回ID
func accountManagerName(id string) string {
	for _, am := range catalog.AccountManagers {
		if am.ID == id {
			return am.Name
		}
	}
	return id
}
