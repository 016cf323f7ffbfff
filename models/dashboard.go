package models

import "github.com/BerniceZTT/crm_interactions/filter"

// 图表数据项
type ChartDataItem struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

// 数据看板响应结构
type DashboardDataResponse struct {
	InteractionCount int64 `json:"interactionCount"` // 互动总数
	FollowUpNeeded   int64 `json:"followUpNeeded"`   // 待跟进
	FollowUpOverdue  int64 `json:"followUpOverdue"`  // 逾期跟进

	TypeDistribution     []ChartDataItem `json:"typeDistribution"`     // 互动类型分布
	PriorityDistribution []ChartDataItem `json:"priorityDistribution"` // 优先级分布
	OwnerDistribution    []ChartDataItem `json:"ownerDistribution"`    // 客户经理分布

	Filter      filter.Canonical `json:"filter"`      // 本次统计使用的筛选条件
	ActiveCount int              `json:"activeCount"` // 激活的筛选维度数
}

// OverdueDigestItem 逾期跟进汇总
type OverdueDigestItem struct {
	CreatedBy     string `bson:"_id" json:"createdBy"`
	CreatedByName string `bson:"createdByName" json:"createdByName"`
	Count         int    `bson:"count" json:"count"`
}
