package filter

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeEmptyDraft(t *testing.T) {
	c := Normalize(Draft{})

	assert.True(t, c.IsEmpty())
	raw, err := json.Marshal(c)
	require.NoError(t, err)
	assert.JSONEq(t, `{}`, string(raw))
}

func TestNormalizeDropsEmptyCollections(t *testing.T) {
	c := Normalize(Draft{InteractionType: []string{}, Priority: []string{}})

	assert.Nil(t, c.InteractionType)
	assert.Nil(t, c.Priority)
	raw, err := json.Marshal(c)
	require.NoError(t, err)
	assert.JSONEq(t, `{}`, string(raw))
}

func TestNormalizeFollowUpExpansion(t *testing.T) {
	t.Run("overdue", func(t *testing.T) {
		raw, err := json.Marshal(Normalize(Draft{FollowUpStatus: FollowUpOverdue}))
		require.NoError(t, err)

		var got map[string]any
		require.NoError(t, json.Unmarshal(raw, &got))
		assert.Equal(t, map[string]any{"follow_up_overdue": true}, got)
		assert.NotContains(t, got, "follow_up_needed")
	})

	t.Run("needed", func(t *testing.T) {
		raw, err := json.Marshal(Normalize(Draft{FollowUpStatus: FollowUpNeeded}))
		require.NoError(t, err)

		var got map[string]any
		require.NoError(t, json.Unmarshal(raw, &got))
		assert.Equal(t, map[string]any{"follow_up_needed": true}, got)
		assert.NotContains(t, got, "follow_up_overdue")
	})

	t.Run("none", func(t *testing.T) {
		c := Normalize(Draft{FollowUpStatus: FollowUpNone})
		assert.False(t, c.FollowUpNeeded)
		assert.False(t, c.FollowUpOverdue)
	})
}

func TestNormalizeMapsEveryField(t *testing.T) {
	d := Draft{
		Search:          "renewal",
		InteractionType: []string{"call", "meeting"},
		Priority:        []string{"High", "Medium"},
		DateFrom:        "2024-06-01",
		DateTo:          "2024-06-30",
		FollowUpStatus:  FollowUpNeeded,
		HasContact:      true,
		HasOpportunity:  true,
		CreatedBy:       "am-42",
	}
	want := Canonical{
		Search:          "renewal",
		InteractionType: []string{"call", "meeting"},
		Priority:        []string{"High", "Medium"},
		DateFrom:        "2024-06-01",
		DateTo:          "2024-06-30",
		FollowUpNeeded:  true,
		HasContact:      true,
		HasOpportunity:  true,
		CreatedBy:       "am-42",
	}

	got := Normalize(d)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("Normalize() mismatch (-want +got):\n%s", diff)
	}

	raw, err := json.Marshal(got)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"search": "renewal",
		"interaction_type": ["call", "meeting"],
		"priority": ["High", "Medium"],
		"date_from": "2024-06-01",
		"date_to": "2024-06-30",
		"follow_up_needed": true,
		"has_contact": true,
		"has_opportunity": true,
		"created_by": "am-42"
	}`, string(raw))
}

func TestNormalizeDoesNotAliasDraft(t *testing.T) {
	d := Draft{Priority: []string{"High"}}
	c := Normalize(d)

	d.Priority[0] = "Low"

	assert.Equal(t, []string{"High"}, c.Priority)
}

func TestDenormalize(t *testing.T) {
	cases := []struct {
		name string
		in   Canonical
		want Draft
	}{
		{"empty", Canonical{}, Draft{}},
		{"needed", Canonical{FollowUpNeeded: true}, Draft{FollowUpStatus: FollowUpNeeded}},
		{"overdue", Canonical{FollowUpOverdue: true}, Draft{FollowUpStatus: FollowUpOverdue}},
		{"both prefers overdue", Canonical{FollowUpNeeded: true, FollowUpOverdue: true}, Draft{FollowUpStatus: FollowUpOverdue}},
		{
			"fields",
			Canonical{Search: "acme", Priority: []string{"High"}, DateFrom: "2024-06-09", HasContact: true, CreatedBy: "am-1"},
			Draft{Search: "acme", Priority: []string{"High"}, DateFrom: "2024-06-09", HasContact: true, CreatedBy: "am-1"},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if diff := cmp.Diff(tc.want, Denormalize(tc.in)); diff != "" {
				t.Errorf("Denormalize() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDenormalizeRoundTripsNormalizedDrafts(t *testing.T) {
	d := Draft{
		Search:          "q3 review",
		InteractionType: []string{"email"},
		DateTo:          "2024-06-13",
		FollowUpStatus:  FollowUpOverdue,
		HasOpportunity:  true,
	}
	if diff := cmp.Diff(d, Denormalize(Normalize(d))); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}
