package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/vantora-labs/vantora/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrPostNotFound is returned when a post ID does not resolve to a document
var ErrPostNotFound = errors.New("post not found")

// PostRepository defines the interface for post data operations
type PostRepository interface {
	CreatePost(ctx context.Context, post *models.Post) error
	GetPostByID(ctx context.Context, id string) (*models.Post, error)
	GetPostsByAuthor(ctx context.Context, authorID uint) ([]models.Post, error)
	GetFeed(ctx context.Context, authorIDs []uint, limit int64) ([]models.Post, error)
	GetAllPosts(ctx context.Context) ([]models.Post, error)
	UpdatePost(ctx context.Context, id string, post *models.Post) error
	DeletePost(ctx context.Context, id string) error
	DeletePostsByAuthor(ctx context.Context, authorID uint) error
	AddLike(ctx context.Context, postID string, userID uint) error
	RemoveLike(ctx context.Context, postID string, userID uint) error
	AppendComment(ctx context.Context, postID string, comment *models.Comment) error
	MarkReported(ctx context.Context, postID string) error
	CountPosts(ctx context.Context) (int64, error)
	CountPostsPerDay(ctx context.Context, days int) ([]models.DailyPostCount, error)
}

// MongoPostRepository implements PostRepository for MongoDB
type MongoPostRepository struct {
	collection *mongo.Collection
}

// NewMongoPostRepository creates a new MongoPostRepository
func NewMongoPostRepository(db *mongo.Database) *MongoPostRepository {
	return &MongoPostRepository{collection: db.Collection("posts")}
}

// CreatePost creates a new post document
func (r *MongoPostRepository) CreatePost(ctx context.Context, post *models.Post) error {
	post.ID = primitive.NewObjectID()
	post.CreatedAt = time.Now()
	post.UpdatedAt = post.CreatedAt
	if post.Likes == nil {
		post.Likes = []uint{}
	}
	if post.Comments == nil {
		post.Comments = []models.Comment{}
	}
	if post.Shares == nil {
		post.Shares = []uint{}
	}
	_, err := r.collection.InsertOne(ctx, post)
	return err
}

// GetPostByID retrieves a post by its hex ID
func (r *MongoPostRepository) GetPostByID(ctx context.Context, id string) (*models.Post, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("invalid post ID format: %w", err)
	}

	var post models.Post
	err = r.collection.FindOne(ctx, bson.M{"_id": objID}).Decode(&post)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	return &post, nil
}

// GetPostsByAuthor retrieves a user's posts, newest first
func (r *MongoPostRepository) GetPostsByAuthor(ctx context.Context, authorID uint) ([]models.Post, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"author_id": authorID}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var posts []models.Post
	if err = cursor.All(ctx, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// GetFeed retrieves posts authored by any of the given users, newest first,
// capped at limit
func (r *MongoPostRepository) GetFeed(ctx context.Context, authorIDs []uint, limit int64) ([]models.Post, error) {
	findOptions := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(limit)
	cursor, err := r.collection.Find(ctx, bson.M{"author_id": bson.M{"$in": authorIDs}}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var posts []models.Post
	if err = cursor.All(ctx, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// GetAllPosts retrieves every post, newest first
func (r *MongoPostRepository) GetAllPosts(ctx context.Context) ([]models.Post, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.D{}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var posts []models.Post
	if err = cursor.All(ctx, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// UpdatePost overwrites the mutable fields of a post
func (r *MongoPostRepository) UpdatePost(ctx context.Context, id string, post *models.Post) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("invalid post ID format: %w", err)
	}

	post.UpdatedAt = time.Now()
	update := bson.M{
		"$set": bson.M{
			"content":    post.Content,
			"image":      post.Image,
			"video":      post.Video,
			"updated_at": post.UpdatedAt,
		},
	}
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": objID}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrPostNotFound
	}
	return nil
}

// DeletePost deletes a post by ID
func (r *MongoPostRepository) DeletePost(ctx context.Context, id string) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("invalid post ID format: %w", err)
	}

	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": objID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrPostNotFound
	}
	return nil
}

// DeletePostsByAuthor deletes every post by the given author (account cascade)
func (r *MongoPostRepository) DeletePostsByAuthor(ctx context.Context, authorID uint) error {
	_, err := r.collection.DeleteMany(ctx, bson.M{"author_id": authorID})
	return err
}

// AddLike adds the user to the like set. $addToSet keeps the set free of
// duplicates even under concurrent toggles.
func (r *MongoPostRepository) AddLike(ctx context.Context, postID string, userID uint) error {
	objID, err := primitive.ObjectIDFromHex(postID)
	if err != nil {
		return fmt.Errorf("invalid post ID format: %w", err)
	}
	_, err = r.collection.UpdateOne(ctx, bson.M{"_id": objID},
		bson.M{"$addToSet": bson.M{"likes": userID}})
	return err
}

// RemoveLike removes the user from the like set
func (r *MongoPostRepository) RemoveLike(ctx context.Context, postID string, userID uint) error {
	objID, err := primitive.ObjectIDFromHex(postID)
	if err != nil {
		return fmt.Errorf("invalid post ID format: %w", err)
	}
	_, err = r.collection.UpdateOne(ctx, bson.M{"_id": objID},
		bson.M{"$pull": bson.M{"likes": userID}})
	return err
}

// AppendComment appends a comment to the ordered comment list
func (r *MongoPostRepository) AppendComment(ctx context.Context, postID string, comment *models.Comment) error {
	objID, err := primitive.ObjectIDFromHex(postID)
	if err != nil {
		return fmt.Errorf("invalid post ID format: %w", err)
	}
	comment.ID = primitive.NewObjectID()
	comment.CreatedAt = time.Now()
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": objID},
		bson.M{"$push": bson.M{"comments": comment}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrPostNotFound
	}
	return nil
}

// MarkReported flags a post as reported
func (r *MongoPostRepository) MarkReported(ctx context.Context, postID string) error {
	objID, err := primitive.ObjectIDFromHex(postID)
	if err != nil {
		return fmt.Errorf("invalid post ID format: %w", err)
	}
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": objID},
		bson.M{"$set": bson.M{"is_reported": true}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrPostNotFound
	}
	return nil
}

// CountPosts returns the total number of posts
func (r *MongoPostRepository) CountPosts(ctx context.Context) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.D{})
}

// CountPostsPerDay groups posts by creation day and returns the most recent
// buckets, newest first
func (r *MongoPostRepository) CountPostsPerDay(ctx context.Context, days int) ([]models.DailyPostCount, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.M{
			"_id": bson.M{"$dateToString": bson.M{
				"format": "%Y-%m-%d",
				"date":   "$created_at",
			}},
			"count": bson.M{"$sum": 1},
		}}},
		{{Key: "$sort", Value: bson.M{"_id": -1}}},
		{{Key: "$limit", Value: days}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var buckets []models.DailyPostCount
	if err = cursor.All(ctx, &buckets); err != nil {
		return nil, err
	}
	return buckets, nil
}
