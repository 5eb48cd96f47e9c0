package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Message is a direct message stored in MongoDB. Immutable once created
// except for the read flag.
type Message struct {
	ID           primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	SenderID     uint               `json:"senderId" bson:"sender_id"`
	RecipientIDs []uint             `json:"recipientIds" bson:"recipient_ids"`
	Content      string             `json:"content" bson:"content"`
	Image        string             `json:"image,omitempty" bson:"image,omitempty"`
	IsRead       bool               `json:"isRead" bson:"is_read"`
	CreatedAt    time.Time          `json:"createdAt" bson:"created_at"`
}

// SendMessageRequest defines the request body for sending a message
type SendMessageRequest struct {
	RecipientIDs []uint `json:"recipientIds" validate:"required,min=1,dive,gt=0"`
	Content      string `json:"content" validate:"required,min=1,max=2000"`
	Image        string `json:"image,omitempty" validate:"omitempty,url"`
}
