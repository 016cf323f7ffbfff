package repository

import (
	"fmt"
	"regexp"
	"time"

	"github.com/BerniceZTT/crm_interactions/filter"
	"github.com/BerniceZTT/crm_interactions/utils"

	"go.mongodb.org/mongo-driver/bson"
)

// 关键字搜索覆盖的字段
var searchFields = []string{"subject", "notes", "contactName", "organizationName"}

// BuildInteractionQuery 将规范化筛选条件转换为互动记录查询。
// 日期按 today 所在时区的日历日解析，date_to 包含当天。
func BuildInteractionQuery(c filter.Canonical, today time.Time) (bson.M, error) {
	query := bson.M{}
	loc := today.Location()

	if c.Search != "" {
		pattern := regexp.QuoteMeta(c.Search)
		or := make([]bson.M, 0, len(searchFields))
		for _, field := range searchFields {
			or = append(or, bson.M{field: bson.M{"$regex": pattern, "$options": "i"}})
		}
		query["$or"] = or
	}

	if len(c.InteractionType) > 0 {
		query["type"] = bson.M{"$in": c.InteractionType}
	}

	if len(c.Priority) > 0 {
		query["priority"] = bson.M{"$in": c.Priority}
	}

	occurredAt := bson.M{}
	if c.DateFrom != "" {
		from, err := time.ParseInLocation(filter.DateLayout, c.DateFrom, loc)
		if err != nil {
			return nil, utils.CreateBadRequestError(fmt.Sprintf("无效的开始日期: %s", c.DateFrom))
		}
		occurredAt["$gte"] = from
	}
	if c.DateTo != "" {
		to, err := time.ParseInLocation(filter.DateLayout, c.DateTo, loc)
		if err != nil {
			return nil, utils.CreateBadRequestError(fmt.Sprintf("无效的结束日期: %s", c.DateTo))
		}
		occurredAt["$lt"] = to.AddDate(0, 0, 1)
	}
	if len(occurredAt) > 0 {
		query["occurredAt"] = occurredAt
	}

	// 两个跟进条件相互独立，同时出现时取交集
	if c.FollowUpNeeded || c.FollowUpOverdue {
		query["followUpRequired"] = true
		query["followUpCompleted"] = bson.M{"$ne": true}
	}
	if c.FollowUpOverdue {
		query["followUpDate"] = bson.M{"$lt": filter.StartOfDay(today)}
	}

	if c.HasContact {
		query["contactId"] = bson.M{"$exists": true, "$nin": bson.A{nil, ""}}
	}
	if c.HasOpportunity {
		query["opportunityId"] = bson.M{"$exists": true, "$nin": bson.A{nil, ""}}
	}

	if c.CreatedBy != "" {
		query["createdBy"] = c.CreatedBy
	}

	return query, nil
}
