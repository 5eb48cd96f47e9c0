package models

import "time"

// Report states. Transitions are administrator-driven only.
const (
	ReportStatusPending     = "pending"
	ReportStatusReviewed    = "reviewed"
	ReportStatusActionTaken = "action_taken"
	ReportStatusDismissed   = "dismissed"
)

// Report is a user-submitted moderation request targeting a user and/or a post
type Report struct {
	ID             uint      `json:"id" gorm:"primaryKey"`
	ReporterID     uint      `json:"reportedById" gorm:"index"`
	ReportedUserID *uint     `json:"reportedUserId,omitempty" gorm:"index"`
	ReportedPostID string    `json:"reportedPostId,omitempty"` // MongoDB post ID
	Reason         string    `json:"reason" gorm:"size:100"`
	Description    string    `json:"description"`
	Status         string    `json:"status" gorm:"size:20;default:'pending';index"`
	Action         string    `json:"action,omitempty"`
	CreatedAt      time.Time `json:"createdAt" gorm:"index"`
}

// CreateReportRequest defines the request body for submitting a report
type CreateReportRequest struct {
	ReportedUserID *uint  `json:"reportedUserId,omitempty" validate:"omitempty,gt=0"`
	ReportedPostID string `json:"reportedPostId,omitempty"`
	Reason         string `json:"reason" validate:"required,min=1,max=100"`
	Description    string `json:"description,omitempty" validate:"omitempty,max=1000"`
}

// UpdateReportRequest defines the request body for resolving a report
type UpdateReportRequest struct {
	Status string `json:"status" validate:"required,oneof=pending reviewed action_taken dismissed"`
	Action string `json:"action,omitempty" validate:"omitempty,max=200"`
}
