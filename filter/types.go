// Package filter 互动记录筛选面板的状态转换：草稿规范化、快捷筛选、激活计数与搜索防抖
package filter

// FollowUpStatus 跟进状态（界面上的单选项）
type FollowUpStatus string

const (
	FollowUpNone    FollowUpStatus = ""
	FollowUpNeeded  FollowUpStatus = "needed"
	FollowUpOverdue FollowUpStatus = "overdue"
)

// Valid 是否为三种取值之一
func (s FollowUpStatus) Valid() bool {
	switch s {
	case FollowUpNone, FollowUpNeeded, FollowUpOverdue:
		return true
	}
	return false
}

// Draft 用户正在编辑、尚未规范化的筛选条件
type Draft struct {
	Search          string         `json:"search" form:"search"`
	InteractionType []string       `json:"interaction_type" form:"interaction_type"`
	Priority        []string       `json:"priority" form:"priority"`
	DateFrom        string         `json:"date_from" form:"date_from"`
	DateTo          string         `json:"date_to" form:"date_to"`
	FollowUpStatus  FollowUpStatus `json:"follow_up_status" form:"follow_up_status"`
	HasContact      bool           `json:"has_contact" form:"has_contact"`
	HasOpportunity  bool           `json:"has_opportunity" form:"has_opportunity"`
	CreatedBy       string         `json:"created_by" form:"created_by"`
}

// Canonical 发送给数据层的规范化筛选条件。
// 字段缺省即表示不做约束，空值不会被序列化。
type Canonical struct {
	Search          string   `json:"search,omitempty"`
	InteractionType []string `json:"interaction_type,omitempty"`
	Priority        []string `json:"priority,omitempty"`
	DateFrom        string   `json:"date_from,omitempty"`
	DateTo          string   `json:"date_to,omitempty"`
	FollowUpNeeded  bool     `json:"follow_up_needed,omitempty"`
	FollowUpOverdue bool     `json:"follow_up_overdue,omitempty"`
	HasContact      bool     `json:"has_contact,omitempty"`
	HasOpportunity  bool     `json:"has_opportunity,omitempty"`
	CreatedBy       string   `json:"created_by,omitempty"`
}

// IsEmpty 是否没有任何约束
func (c Canonical) IsEmpty() bool {
	return c.Search == "" &&
		len(c.InteractionType) == 0 &&
		len(c.Priority) == 0 &&
		c.DateFrom == "" &&
		c.DateTo == "" &&
		!c.FollowUpNeeded &&
		!c.FollowUpOverdue &&
		!c.HasContact &&
		!c.HasOpportunity &&
		c.CreatedBy == ""
}
