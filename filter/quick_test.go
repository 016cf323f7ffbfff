package filter

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 2024-06-13 是周四
var thursday = time.Date(2024, 6, 13, 10, 15, 0, 0, time.UTC)

func TestApplyTodayIsIdempotent(t *testing.T) {
	once, ok := ApplyQuickFilter(Draft{}, QuickToday, thursday)
	require.True(t, ok)
	twice, ok := ApplyQuickFilter(once, QuickToday, thursday)
	require.True(t, ok)

	assert.Equal(t, "2024-06-13", once.DateFrom)
	assert.Equal(t, "2024-06-13", once.DateTo)
	if diff := cmp.Diff(Normalize(once), Normalize(twice)); diff != "" {
		t.Fatalf("second application changed the filter (-first +second):\n%s", diff)
	}
}

func TestApplyThisWeek(t *testing.T) {
	d, ok := ApplyQuickFilter(Draft{}, QuickThisWeek, thursday)
	require.True(t, ok)

	c := Normalize(d)
	assert.Equal(t, "2024-06-09", c.DateFrom)
	assert.Equal(t, "2024-06-13", c.DateTo)
}

func TestApplyOverdueFollowUps(t *testing.T) {
	d, ok := ApplyQuickFilter(Draft{FollowUpStatus: FollowUpNeeded}, QuickOverdueFollowUps, thursday)
	require.True(t, ok)

	assert.Equal(t, FollowUpOverdue, d.FollowUpStatus)
	c := Normalize(d)
	assert.True(t, c.FollowUpOverdue)
	assert.False(t, c.FollowUpNeeded)
}

func TestApplyHighPriorityPreservesUnrelatedFields(t *testing.T) {
	start := Draft{
		Search:          "demo",
		InteractionType: []string{"call"},
		Priority:        []string{"Low", "Medium"},
		DateFrom:        "2024-06-01",
		HasContact:      true,
	}

	d, ok := ApplyQuickFilter(start, QuickHighPriority, thursday)
	require.True(t, ok)

	want := start
	want.Priority = []string{"High"}
	if diff := cmp.Diff(want, d); diff != "" {
		t.Fatalf("high_priority mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, "demo", Normalize(d).Search)
}

func TestApplyDatePresetKeepsOtherFields(t *testing.T) {
	start := Draft{Search: "acme", FollowUpStatus: FollowUpOverdue, CreatedBy: "am-7"}

	d, ok := ApplyQuickFilter(start, QuickToday, thursday)
	require.True(t, ok)

	assert.Equal(t, "acme", d.Search)
	assert.Equal(t, FollowUpOverdue, d.FollowUpStatus)
	assert.Equal(t, "am-7", d.CreatedBy)
}

func TestApplyUnknownPresetIsNoOp(t *testing.T) {
	start := Draft{
		Search:         "demo",
		Priority:       []string{"High"},
		DateFrom:       "2024-06-01",
		FollowUpStatus: FollowUpNeeded,
	}
	before, err := json.Marshal(Normalize(start))
	require.NoError(t, err)

	d, ok := ApplyQuickFilter(start, QuickFilterID("last_quarter"), thursday)

	assert.False(t, ok)
	if diff := cmp.Diff(start, d); diff != "" {
		t.Fatalf("unknown preset changed the draft (-want +got):\n%s", diff)
	}
	after, err := json.Marshal(Normalize(d))
	require.NoError(t, err)
	assert.Equal(t, string(before), string(after))
}

func TestIsQuickFilterActive(t *testing.T) {
	cases := []struct {
		name  string
		draft Draft
		id    QuickFilterID
		want  bool
	}{
		{"today active", Draft{DateFrom: "2024-06-13", DateTo: "2024-06-13"}, QuickToday, true},
		{"today only from", Draft{DateFrom: "2024-06-13"}, QuickToday, false},
		{"today other day", Draft{DateFrom: "2024-06-12", DateTo: "2024-06-12"}, QuickToday, false},
		{"this week active", Draft{DateFrom: "2024-06-09", DateTo: "2024-06-13"}, QuickThisWeek, true},
		{"this week stale end", Draft{DateFrom: "2024-06-09", DateTo: "2024-06-12"}, QuickThisWeek, false},
		{"overdue active", Draft{FollowUpStatus: FollowUpOverdue}, QuickOverdueFollowUps, true},
		{"needed is not overdue", Draft{FollowUpStatus: FollowUpNeeded}, QuickOverdueFollowUps, false},
		{"high active", Draft{Priority: []string{"High"}}, QuickHighPriority, true},
		{"high mixed", Draft{Priority: []string{"High", "Low"}}, QuickHighPriority, false},
		{"unknown", Draft{}, QuickFilterID("nope"), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, IsQuickFilterActive(tc.draft, tc.id, thursday))
		})
	}
}

func TestActiveQuickFiltersFollowsDraft(t *testing.T) {
	d, _ := ApplyQuickFilter(Draft{}, QuickToday, thursday)
	d, _ = ApplyQuickFilter(d, QuickHighPriority, thursday)
	assert.Equal(t, []QuickFilterID{QuickToday, QuickHighPriority}, ActiveQuickFilters(d, thursday))

	// 手动改动日期后不再是 today
	d.DateFrom = "2024-06-10"
	assert.Equal(t, []QuickFilterID{QuickHighPriority}, ActiveQuickFilters(d, thursday))

	// 第二天再看，同一草稿也不是 today
	assert.Empty(t, ActiveQuickFilters(Draft{DateFrom: "2024-06-13", DateTo: "2024-06-13"}, thursday.AddDate(0, 0, 1)))
}

func TestPresetsOrder(t *testing.T) {
	var ids []QuickFilterID
	for _, p := range Presets() {
		ids = append(ids, p.ID)
		assert.NotEmpty(t, p.Label)
	}
	assert.Equal(t, []QuickFilterID{QuickToday, QuickThisWeek, QuickOverdueFollowUps, QuickHighPriority}, ids)
}
