package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Comment is a single comment embedded in a post document. Comments are
// append-only and keep their insertion order.
type Comment struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	AuthorID  uint               `json:"authorId" bson:"author_id"`
	Text      string             `json:"text" bson:"text"`
	Image     string             `json:"image,omitempty" bson:"image,omitempty"`
	CreatedAt time.Time          `json:"createdAt" bson:"created_at"`
}

// Post represents a post stored in MongoDB with embedded likes and comments
type Post struct {
	ID         primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	AuthorID   uint               `json:"authorId" bson:"author_id"`
	Content    string             `json:"content" bson:"content"`
	Image      string             `json:"image,omitempty" bson:"image,omitempty"`
	Video      string             `json:"video,omitempty" bson:"video,omitempty"`
	Likes      []uint             `json:"likes" bson:"likes"`
	Comments   []Comment          `json:"comments" bson:"comments"`
	Shares     []uint             `json:"shares" bson:"shares"`
	IsReported bool               `json:"isReported" bson:"is_reported"`
	CreatedAt  time.Time          `json:"createdAt" bson:"created_at"`
	UpdatedAt  time.Time          `json:"-" bson:"updated_at"`
}

// HasLiked reports whether the given user is in the like set
func (p *Post) HasLiked(userID uint) bool {
	for _, id := range p.Likes {
		if id == userID {
			return true
		}
	}
	return false
}

// CreatePostRequest defines the request body for creating a new post
type CreatePostRequest struct {
	Content string `json:"content,omitempty" validate:"omitempty,max=2000"`
	Image   string `json:"image,omitempty" validate:"omitempty,url"`
	Video   string `json:"video,omitempty" validate:"omitempty,url"`
}

// UpdatePostRequest defines the request body for editing a post.
// Empty fields are left unchanged.
type UpdatePostRequest struct {
	Content string `json:"content,omitempty" validate:"omitempty,max=2000"`
	Image   string `json:"image,omitempty" validate:"omitempty,url"`
	Video   string `json:"video,omitempty" validate:"omitempty,url"`
}

// CreateCommentRequest defines the request body for commenting on a post
type CreateCommentRequest struct {
	Text  string `json:"text" validate:"required,min=1,max=500"`
	Image string `json:"image,omitempty" validate:"omitempty,url"`
}

// DailyPostCount is one bucket of the posts-per-day dashboard aggregation
type DailyPostCount struct {
	Date  string `json:"date" bson:"_id"`
	Count int    `json:"count" bson:"count"`
}
