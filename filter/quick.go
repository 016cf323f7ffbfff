package filter

import (
	"slices"
	"time"

	"github.com/BerniceZTT/crm_interactions/metrics"
	"github.com/BerniceZTT/crm_interactions/utils"
)

// QuickFilterID 快捷筛选标识
type QuickFilterID string

const (
	QuickToday            QuickFilterID = "today"
	QuickThisWeek         QuickFilterID = "this_week"
	QuickOverdueFollowUps QuickFilterID = "overdue_followups"
	QuickHighPriority     QuickFilterID = "high_priority"
)

// PriorityHigh 高优先级标签
const PriorityHigh = "High"

// Patch 快捷筛选对草稿的局部修改，nil 字段表示不改动
type Patch struct {
	DateFrom       *string
	DateTo         *string
	FollowUpStatus *FollowUpStatus
	Priority       []string
}

func (p Patch) applyTo(d Draft) Draft {
	if p.DateFrom != nil {
		d.DateFrom = *p.DateFrom
	}
	if p.DateTo != nil {
		d.DateTo = *p.DateTo
	}
	if p.FollowUpStatus != nil {
		d.FollowUpStatus = *p.FollowUpStatus
	}
	if p.Priority != nil {
		d.Priority = cloneNonEmpty(p.Priority)
	}
	return d
}

// Preset 快捷筛选预设。Apply 和 Active 都是纯函数，today 由调用方传入。
type Preset struct {
	ID     QuickFilterID                       `json:"id"`
	Label  string                              `json:"label"`
	Apply  func(today time.Time) Patch         `json:"-"`
	Active func(d Draft, today time.Time) bool `json:"-"`
}

var presets = []Preset{
	{
		ID:    QuickToday,
		Label: "Today",
		Apply: func(today time.Time) Patch {
			day := ISODateOnly(today)
			return Patch{DateFrom: &day, DateTo: &day}
		},
		Active: func(d Draft, today time.Time) bool {
			day := ISODateOnly(today)
			return d.DateFrom == day && d.DateTo == day
		},
	},
	{
		ID:    QuickThisWeek,
		Label: "This Week",
		Apply: func(today time.Time) Patch {
			from := ISODateOnly(StartOfWeek(today))
			to := ISODateOnly(today)
			return Patch{DateFrom: &from, DateTo: &to}
		},
		Active: func(d Draft, today time.Time) bool {
			return d.DateFrom == ISODateOnly(StartOfWeek(today)) && d.DateTo == ISODateOnly(today)
		},
	},
	{
		ID:    QuickOverdueFollowUps,
		Label: "Overdue Follow-ups",
		Apply: func(time.Time) Patch {
			status := FollowUpOverdue
			return Patch{FollowUpStatus: &status}
		},
		Active: func(d Draft, _ time.Time) bool {
			return d.FollowUpStatus == FollowUpOverdue
		},
	},
	{
		ID:    QuickHighPriority,
		Label: "High Priority",
		Apply: func(time.Time) Patch {
			return Patch{Priority: []string{PriorityHigh}}
		},
		Active: func(d Draft, _ time.Time) bool {
			return len(d.Priority) == 1 && d.Priority[0] == PriorityHigh
		},
	},
}

// ApplyTo 将预设应用到草稿，不计入使用指标
func (p Preset) ApplyTo(d Draft, today time.Time) Draft {
	return p.Apply(today).applyTo(d)
}

// Presets 按展示顺序返回全部快捷筛选
func Presets() []Preset {
	return slices.Clone(presets)
}

// LookupPreset 按标识查找快捷筛选
func LookupPreset(id QuickFilterID) (Preset, bool) {
	for _, p := range presets {
		if p.ID == id {
			return p, true
		}
	}
	return Preset{}, false
}

// ApplyQuickFilter 将快捷筛选应用到草稿，只替换该预设管理的字段。
// 未知标识静默忽略，原样返回草稿和 false。
func ApplyQuickFilter(d Draft, id QuickFilterID, today time.Time) (Draft, bool) {
	p, ok := LookupPreset(id)
	if !ok {
		utils.Logger.Debug().Str("preset", string(id)).Msg("忽略未知的快捷筛选")
		metrics.QuickFilterApplied.WithLabelValues("unknown", "ignored").Inc()
		return d, false
	}
	metrics.QuickFilterApplied.WithLabelValues(string(id), "applied").Inc()
	return p.ApplyTo(d, today), true
}

// IsQuickFilterActive 判断草稿当前是否处于该快捷筛选状态，未知标识返回 false
func IsQuickFilterActive(d Draft, id QuickFilterID, today time.Time) bool {
	p, ok := LookupPreset(id)
	if !ok {
		return false
	}
	return p.Active(d, today)
}

// ActiveQuickFilters 返回当前处于激活状态的快捷筛选
func ActiveQuickFilters(d Draft, today time.Time) []QuickFilterID {
	active := []QuickFilterID{}
	for _, p := range presets {
		if p.Active(d, today) {
			active = append(active, p.ID)
		}
	}
	return active
}
