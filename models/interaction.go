package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Interaction 互动记录（电话、邮件、会议），关联联系人、组织和商机
type Interaction struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Type     string             `bson:"type" json:"type"`
	Subject  string             `bson:"subject" json:"subject"`
	Notes    string             `bson:"notes" json:"notes"`
	Priority string             `bson:"priority" json:"priority"`

	// 发生时间
	OccurredAt time.Time `bson:"occurredAt" json:"occurredAt"`

	// 关联信息
	ContactID        string `bson:"contactId,omitempty" json:"contactId,omitempty"`
	ContactName      string `bson:"contactName,omitempty" json:"contactName,omitempty"`
	OrganizationID   string `bson:"organizationId,omitempty" json:"organizationId,omitempty"`
	OrganizationName string `bson:"organizationName,omitempty" json:"organizationName,omitempty"`
	OpportunityID    string `bson:"opportunityId,omitempty" json:"opportunityId,omitempty"`
	OpportunityName  string `bson:"opportunityName,omitempty" json:"opportunityName,omitempty"`

	// 跟进信息
	FollowUpRequired  bool       `bson:"followUpRequired" json:"followUpRequired"`
	FollowUpDate      *time.Time `bson:"followUpDate,omitempty" json:"followUpDate,omitempty"`
	FollowUpCompleted bool       `bson:"followUpCompleted" json:"followUpCompleted"`

	// 创建人（客户经理）
	CreatedBy     string    `bson:"createdBy" json:"createdBy"`
	CreatedByName string    `bson:"createdByName" json:"createdByName"`
	CreatedAt     time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time `bson:"updatedAt" json:"updatedAt"`
}

// CreateInteractionInput 创建互动记录的输入数据
type CreateInteractionInput struct {
	Type             string    `json:"type" binding:"required"`
	Subject          string    `json:"subject" binding:"required"`
	Notes            string    `json:"notes"`
	Priority         string    `json:"priority"`
	OccurredAt       time.Time `json:"occurredAt"`
	ContactID        string    `json:"contactId"`
	ContactName      string    `json:"contactName"`
	OrganizationID   string    `json:"organizationId"`
	OrganizationName string    `json:"organizationName"`
	OpportunityID    string    `json:"opportunityId"`
	OpportunityName  string    `json:"opportunityName"`
	// FollowUpDate 格式 YYYY-MM-DD，非空即表示需要跟进
	FollowUpDate string `json:"followUpDate"`
	CreatedBy    string `json:"createdBy" binding:"required"`
}
