package repositories

import (
	"errors"

	"github.com/vantora-labs/vantora/backend/internal/models"
	"gorm.io/gorm"
)

// ErrFriendshipNotFound is returned when two users are not friends
var ErrFriendshipNotFound = errors.New("friendship not found")

// FriendshipRepository defines the interface for friend graph operations
type FriendshipRepository interface {
	CreateRequest(req *models.FriendRequest) error
	GetPendingRequest(senderID, receiverID uint) (*models.FriendRequest, error)
	GetPendingRequests(receiverID uint) ([]models.FriendRequest, error)
	AcceptRequest(req *models.FriendRequest) error
	RejectRequest(req *models.FriendRequest) error
	AreFriends(userID, friendID uint) (bool, error)
	RemoveFriendship(userID, friendID uint) error
	GetFriendIDs(userID uint) ([]uint, error)
	GetFriends(userID uint) ([]models.User, error)
}

// PostgresFriendshipRepository implements FriendshipRepository for PostgreSQL
type PostgresFriendshipRepository struct {
	db *gorm.DB
}

// NewPostgresFriendshipRepository creates a new PostgresFriendshipRepository
func NewPostgresFriendshipRepository(db *gorm.DB) *PostgresFriendshipRepository {
	return &PostgresFriendshipRepository{db: db}
}

// CreateRequest persists a new pending friend request
func (r *PostgresFriendshipRepository) CreateRequest(req *models.FriendRequest) error {
	req.Status = models.FriendRequestPending
	return r.db.Create(req).Error
}

// GetPendingRequest retrieves the pending request from sender to receiver, if any
func (r *PostgresFriendshipRepository) GetPendingRequest(senderID, receiverID uint) (*models.FriendRequest, error) {
	var req models.FriendRequest
	err := r.db.Where("sender_id = ? AND receiver_id = ? AND status = ?",
		senderID, receiverID, models.FriendRequestPending).First(&req).Error
	if err != nil {
		return nil, err
	}
	return &req, nil
}

// GetPendingRequests retrieves all incoming pending requests for a user
func (r *PostgresFriendshipRepository) GetPendingRequests(receiverID uint) ([]models.FriendRequest, error) {
	var requests []models.FriendRequest
	err := r.db.Where("receiver_id = ? AND status = ?", receiverID, models.FriendRequestPending).
		Order("created_at DESC").Find(&requests).Error
	if err != nil {
		return nil, err
	}
	return requests, nil
}

// AcceptRequest marks the request accepted and records both directions of the
// friendship in a single transaction, so a crash cannot leave one side updated.
func (r *PostgresFriendshipRepository) AcceptRequest(req *models.FriendRequest) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.FriendRequest{}).Where("id = ?", req.ID).
			Update("status", models.FriendRequestAccepted).Error; err != nil {
			return err
		}
		if err := tx.Create(&models.Friendship{UserID: req.ReceiverID, FriendID: req.SenderID}).Error; err != nil {
			return err
		}
		return tx.Create(&models.Friendship{UserID: req.SenderID, FriendID: req.ReceiverID}).Error
	})
}

// RejectRequest marks the request rejected, removing it from the pending set
func (r *PostgresFriendshipRepository) RejectRequest(req *models.FriendRequest) error {
	return r.db.Model(&models.FriendRequest{}).Where("id = ?", req.ID).
		Update("status", models.FriendRequestRejected).Error
}

// AreFriends reports whether a friendship row exists from userID to friendID
func (r *PostgresFriendshipRepository) AreFriends(userID, friendID uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.Friendship{}).
		Where("user_id = ? AND friend_id = ?", userID, friendID).Count(&count).Error
	return count > 0, err
}

// RemoveFriendship deletes both directions of a friendship in one transaction
func (r *PostgresFriendshipRepository) RemoveFriendship(userID, friendID uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Where("user_id = ? AND friend_id = ?", userID, friendID).Delete(&models.Friendship{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrFriendshipNotFound
		}
		return tx.Where("user_id = ? AND friend_id = ?", friendID, userID).Delete(&models.Friendship{}).Error
	})
}

// GetFriendIDs retrieves the ids of all friends of a user
func (r *PostgresFriendshipRepository) GetFriendIDs(userID uint) ([]uint, error) {
	var ids []uint
	err := r.db.Model(&models.Friendship{}).Where("user_id = ?", userID).
		Pluck("friend_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

// GetFriends retrieves all friends of a user with their profile fields
func (r *PostgresFriendshipRepository) GetFriends(userID uint) ([]models.User, error) {
	var friends []models.User
	err := r.db.Joins("JOIN friendships ON friendships.friend_id = users.id").
		Where("friendships.user_id = ?", userID).Find(&friends).Error
	if err != nil {
		return nil, err
	}
	return friends, nil
}
