package models

import "time"

// Friend request states
const (
	FriendRequestPending  = "pending"
	FriendRequestAccepted = "accepted"
	FriendRequestRejected = "rejected"
)

// FriendRequest represents a friend request between two users
type FriendRequest struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	SenderID   uint      `json:"senderId" gorm:"index;index:idx_sender_receiver"`
	ReceiverID uint      `json:"receiverId" gorm:"index;index:idx_sender_receiver"`
	Status     string    `json:"status" gorm:"type:varchar(20);default:'pending';index"`
	CreatedAt  time.Time `json:"createdAt"`
}

// Friendship is one direction of an accepted friendship. Rows always exist in
// pairs: accepting a request creates (A,B) and (B,A) in the same transaction,
// so mutuality holds by construction.
type Friendship struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"userId" gorm:"index;uniqueIndex:idx_user_friend"`
	FriendID  uint      `json:"friendId" gorm:"index;uniqueIndex:idx_user_friend"`
	CreatedAt time.Time `json:"createdAt"`
}
