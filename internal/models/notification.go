package models

import "time"

// Notification types. Every notification is a side effect of a post, friend
// or message operation; clients never create them directly.
const (
	NotificationLike           = "like"
	NotificationComment        = "comment"
	NotificationFriendRequest  = "friendRequest"
	NotificationFriendAccepted = "friendAccepted"
	NotificationMessage        = "message"
)

// Notification is a fan-out record stored in PostgreSQL
type Notification struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	RecipientID uint      `json:"userId" gorm:"index"`
	ActorID     uint      `json:"fromId" gorm:"index"`
	Type        string    `json:"type" gorm:"size:30;index"`
	PostID      string    `json:"postId,omitempty"` // MongoDB post ID, when the event relates to a post
	IsRead      bool      `json:"isRead" gorm:"default:false;index"`
	CreatedAt   time.Time `json:"createdAt" gorm:"index"`
}
