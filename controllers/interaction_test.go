package controllers

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BerniceZTT/crm_interactions/models"
	"github.com/BerniceZTT/crm_interactions/utils"
)

// 以下请求都在访问数据库之前被拒绝
func TestInteractionEndpoints_RejectBeforeQuery(t *testing.T) {
	r := setupTestRouter(t)

	cases := []struct {
		name   string
		method string
		target string
		body   string
	}{
		{"list with bad date", http.MethodGet, "/api/interactions?date_from=13/06/2024", ""},
		{"list with bad follow-up status", http.MethodGet, "/api/interactions?follow_up_status=later", ""},
		{"dashboard with bad date", http.MethodGet, "/api/dashboard-stats?date_to=tomorrow", ""},
		{"create without subject", http.MethodPost, "/api/interactions", `{"type":"call","createdBy":"u1"}`},
		{"create with unknown type", http.MethodPost, "/api/interactions", `{"type":"fax","subject":"hi","createdBy":"u1"}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := doRequest(r, tc.method, tc.target, tc.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			decodeError(t, w)
		})
	}
}

func TestBuildInteraction(t *testing.T) {
	setupTestRouter(t)

	t.Run("defaults", func(t *testing.T) {
		got, err := buildInteraction(models.CreateInteractionInput{
			Type:      " call ",
			Subject:   "  Quarterly review ",
			CreatedBy: "u1",
		}, thursday)
		require.NoError(t, err)

		assert.Equal(t, "call", got.Type)
		assert.Equal(t, "Quarterly review", got.Subject)
		assert.Equal(t, thursday, got.OccurredAt)
		assert.Equal(t, "Alice", got.CreatedByName)
		assert.False(t, got.FollowUpRequired)
		assert.Nil(t, got.FollowUpDate)
		assert.Equal(t, thursday, got.CreatedAt)
	})

	t.Run("follow-up date marks follow-up required", func(t *testing.T) {
		got, err := buildInteraction(models.CreateInteractionInput{
			Type:         "meeting",
			Subject:      "Demo",
			Priority:     "High",
			FollowUpDate: "2024-06-20",
			CreatedBy:    "u9",
		}, thursday)
		require.NoError(t, err)

		assert.True(t, got.FollowUpRequired)
		require.NotNil(t, got.FollowUpDate)
		assert.Equal(t, time.Date(2024, 6, 20, 0, 0, 0, 0, time.UTC), *got.FollowUpDate)
		assert.Equal(t, "u9", got.CreatedByName)
	})

	t.Run("explicit occurred at is kept", func(t *testing.T) {
		at := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
		got, err := buildInteraction(models.CreateInteractionInput{
			Type: "email", Subject: "Intro", OccurredAt: at, CreatedBy: "u1",
		}, thursday)
		require.NoError(t, err)
		assert.Equal(t, at, got.OccurredAt)
	})

	errCases := []struct {
		name  string
		input models.CreateInteractionInput
	}{
		{"unknown type", models.CreateInteractionInput{Type: "fax", Subject: "x", CreatedBy: "u1"}},
		{"unknown priority", models.CreateInteractionInput{Type: "call", Subject: "x", Priority: "Urgent", CreatedBy: "u1"}},
		{"bad follow-up date", models.CreateInteractionInput{Type: "call", Subject: "x", FollowUpDate: "next week", CreatedBy: "u1"}},
	}
	for _, tc := range errCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := buildInteraction(tc.input, thursday)
			var apiErr *utils.ApiError
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
		})
	}
}
