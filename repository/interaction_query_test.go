package repository

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/BerniceZTT/crm_interactions/filter"
	"github.com/BerniceZTT/crm_interactions/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

var shanghai = time.FixedZone("CST", 8*3600)

// 2024-06-13 周四 下午
var today = time.Date(2024, 6, 13, 15, 0, 0, 0, shanghai)

func TestBuildInteractionQueryEmpty(t *testing.T) {
	query, err := BuildInteractionQuery(filter.Canonical{}, today)
	require.NoError(t, err)
	assert.Empty(t, query)
}

func TestBuildInteractionQuerySearchIsQuoted(t *testing.T) {
	query, err := BuildInteractionQuery(filter.Canonical{Search: "a.b (c)"}, today)
	require.NoError(t, err)

	or, ok := query["$or"].([]bson.M)
	require.True(t, ok)
	require.Len(t, or, len(searchFields))
	assert.Equal(t, bson.M{"subject": bson.M{"$regex": `a\.b \(c\)`, "$options": "i"}}, or[0])
}

func TestBuildInteractionQueryDateRange(t *testing.T) {
	query, err := BuildInteractionQuery(filter.Canonical{DateFrom: "2024-06-09", DateTo: "2024-06-13"}, today)
	require.NoError(t, err)

	assert.Equal(t, bson.M{
		"$gte": time.Date(2024, 6, 9, 0, 0, 0, 0, shanghai),
		"$lt":  time.Date(2024, 6, 14, 0, 0, 0, 0, shanghai),
	}, query["occurredAt"])
}

func TestBuildInteractionQueryInvalidDate(t *testing.T) {
	_, err := BuildInteractionQuery(filter.Canonical{DateTo: "13/06/2024"}, today)
	require.Error(t, err)

	var apiErr *utils.ApiError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
}

func TestBuildInteractionQueryFollowUp(t *testing.T) {
	t.Run("needed", func(t *testing.T) {
		query, err := BuildInteractionQuery(filter.Canonical{FollowUpNeeded: true}, today)
		require.NoError(t, err)
		assert.Equal(t, bson.M{
			"followUpRequired":  true,
			"followUpCompleted": bson.M{"$ne": true},
		}, query)
	})

	t.Run("overdue", func(t *testing.T) {
		query, err := BuildInteractionQuery(filter.Canonical{FollowUpOverdue: true}, today)
		require.NoError(t, err)
		assert.Equal(t, bson.M{
			"followUpRequired":  true,
			"followUpCompleted": bson.M{"$ne": true},
			"followUpDate":      bson.M{"$lt": time.Date(2024, 6, 13, 0, 0, 0, 0, shanghai)},
		}, query)
	})
}

func TestBuildInteractionQueryEveryDimension(t *testing.T) {
	query, err := BuildInteractionQuery(filter.Canonical{
		InteractionType: []string{"call", "meeting"},
		Priority:        []string{"High"},
		HasContact:      true,
		HasOpportunity:  true,
		CreatedBy:       "am-3",
	}, today)
	require.NoError(t, err)

	assert.Equal(t, bson.M{
		"type":          bson.M{"$in": []string{"call", "meeting"}},
		"priority":      bson.M{"$in": []string{"High"}},
		"contactId":     bson.M{"$exists": true, "$nin": bson.A{nil, ""}},
		"opportunityId": bson.M{"$exists": true, "$nin": bson.A{nil, ""}},
		"createdBy":     "am-3",
	}, query)
}

func TestIsRetryableError(t *testing.T) {
	assert.True(t, isRetryableError(errors.New("server selection error: no reachable servers")))
	assert.False(t, isRetryableError(errors.New("E11000 duplicate key error")))
}
