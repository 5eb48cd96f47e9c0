package repositories

import (
	"context"
	"time"

	"github.com/vantora-labs/vantora/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MessageRepository defines the interface for direct message operations
type MessageRepository interface {
	CreateMessage(ctx context.Context, msg *models.Message) error
	GetConversation(ctx context.Context, userID, partnerID uint) ([]models.Message, error)
	GetByParticipant(ctx context.Context, userID uint) ([]models.Message, error)
}

// MongoMessageRepository implements MessageRepository for MongoDB
type MongoMessageRepository struct {
	collection *mongo.Collection
}

// NewMongoMessageRepository creates a new MongoMessageRepository
func NewMongoMessageRepository(db *mongo.Database) *MongoMessageRepository {
	return &MongoMessageRepository{collection: db.Collection("messages")}
}

// CreateMessage persists a new message document
func (r *MongoMessageRepository) CreateMessage(ctx context.Context, msg *models.Message) error {
	msg.ID = primitive.NewObjectID()
	msg.CreatedAt = time.Now()
	_, err := r.collection.InsertOne(ctx, msg)
	return err
}

// GetConversation retrieves the two-party thread between a user and a
// partner, oldest first. Matching on recipient_ids relies on Mongo's array
// containment semantics.
func (r *MongoMessageRepository) GetConversation(ctx context.Context, userID, partnerID uint) ([]models.Message, error) {
	filter := bson.M{"$or": bson.A{
		bson.M{"sender_id": userID, "recipient_ids": partnerID},
		bson.M{"sender_id": partnerID, "recipient_ids": userID},
	}}
	findOptions := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var messages []models.Message
	if err = cursor.All(ctx, &messages); err != nil {
		return nil, err
	}
	return messages, nil
}

// GetByParticipant retrieves every message the user sent or received,
// newest first
func (r *MongoMessageRepository) GetByParticipant(ctx context.Context, userID uint) ([]models.Message, error) {
	filter := bson.M{"$or": bson.A{
		bson.M{"sender_id": userID},
		bson.M{"recipient_ids": userID},
	}}
	findOptions := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var messages []models.Message
	if err = cursor.All(ctx, &messages); err != nil {
		return nil, err
	}
	return messages, nil
}
