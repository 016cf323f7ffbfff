package controllers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BerniceZTT/crm_interactions/filter"
	"github.com/BerniceZTT/crm_interactions/utils"
)

// ResolveFilterRequest 筛选条件解析请求
type ResolveFilterRequest struct {
	Draft       filter.Draft         `json:"draft"`
	QuickFilter filter.QuickFilterID `json:"quickFilter"`
}

// ResolvedFilter 解析结果，供前端展示激活状态
type ResolvedFilter struct {
	Draft              filter.Draft           `json:"draft"`
	Filter             filter.Canonical       `json:"filter"`
	ActiveCount        int                    `json:"activeCount"`
	ActiveQuickFilters []filter.QuickFilterID `json:"activeQuickFilters"`
	QuickFilterApplied bool                   `json:"quickFilterApplied"`
}

// QuickFilterItem 快捷筛选项
type QuickFilterItem struct {
	ID     filter.QuickFilterID `json:"id"`
	Label  string               `json:"label"`
	Active bool                 `json:"active"`
}

// resolveDraft 应用快捷筛选并规范化草稿
func resolveDraft(draft filter.Draft, quick filter.QuickFilterID, now time.Time) (ResolvedFilter, error) {
	if !draft.FollowUpStatus.Valid() {
		return ResolvedFilter{}, utils.CreateBadRequestError(fmt.Sprintf("无效的跟进状态: %s", draft.FollowUpStatus))
	}

	applied := false
	if quick != "" {
		draft, applied = filter.ApplyQuickFilter(draft, quick, now)
	}

	return ResolvedFilter{
		Draft:              draft,
		Filter:             filter.Normalize(draft),
		ActiveCount:        filter.ActiveCount(draft),
		ActiveQuickFilters: filter.ActiveQuickFilters(draft, now),
		QuickFilterApplied: applied,
	}, nil
}

// bindDraftQuery 从查询参数读取草稿和快捷筛选
func bindDraftQuery(c *gin.Context) (filter.Draft, filter.QuickFilterID, error) {
	var draft filter.Draft
	if err := c.ShouldBindQuery(&draft); err != nil {
		return filter.Draft{}, "", utils.CreateBadRequestError("无效的筛选参数: " + err.Error())
	}
	return draft, filter.QuickFilterID(c.Query("quick_filter")), nil
}

// ResolveFilter 解析筛选草稿，返回规范化条件和激活状态
func ResolveFilter(c *gin.Context) {
	var req ResolveFilterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.HandleError(c, utils.CreateBadRequestError("无效的请求数据"))
		return
	}

	resolved, err := resolveDraft(req.Draft, req.QuickFilter, today())
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.Logger.Debug().
		Str("quickFilter", string(req.QuickFilter)).
		Bool("applied", resolved.QuickFilterApplied).
		Int("activeCount", resolved.ActiveCount).
		Msg("解析筛选条件")

	utils.SuccessResponse(c, resolved, "")
}

// GetQuickFilters 获取快捷筛选列表，并根据查询参数中的草稿标记激活状态
func GetQuickFilters(c *gin.Context) {
	draft, _, err := bindDraftQuery(c)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	now := today()
	presets := filter.Presets()
	items := make([]QuickFilterItem, 0, len(presets))
	for _, p := range presets {
		items = append(items, QuickFilterItem{
			ID:     p.ID,
			Label:  p.Label,
			Active: p.Active(draft, now),
		})
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": items})
}

// GetFilterOptions 获取互动类型、优先级和客户经理可选项
func GetFilterOptions(c *gin.Context) {
	utils.SuccessResponse(c, catalog, "")
}
