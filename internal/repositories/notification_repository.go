package repositories

import (
	"github.com/vantora-labs/vantora/backend/internal/models"
	"gorm.io/gorm"
)

// NotificationRepository defines the interface for notification operations
type NotificationRepository interface {
	CreateNotification(notification *models.Notification) error
	CreateNotifications(notifications []models.Notification) error
	GetByID(id uint) (*models.Notification, error)
	GetLatestByRecipient(recipientID uint, limit int) ([]models.Notification, error)
	MarkAsRead(id uint) error
	MarkAllAsRead(recipientID uint) error
	DeleteByRecipient(recipientID uint) error
}

type postgresNotificationRepository struct {
	db *gorm.DB
}

// NewPostgresNotificationRepository creates a NotificationRepository backed by PostgreSQL
func NewPostgresNotificationRepository(db *gorm.DB) NotificationRepository {
	return &postgresNotificationRepository{db: db}
}

func (r *postgresNotificationRepository) CreateNotification(notification *models.Notification) error {
	return r.db.Create(notification).Error
}

// CreateNotifications batch-inserts fan-out records in a single statement, so
// a multi-recipient fan-out either lands fully or not at all.
func (r *postgresNotificationRepository) CreateNotifications(notifications []models.Notification) error {
	if len(notifications) == 0 {
		return nil
	}
	return r.db.Create(&notifications).Error
}

func (r *postgresNotificationRepository) GetByID(id uint) (*models.Notification, error) {
	var notification models.Notification
	if err := r.db.First(&notification, id).Error; err != nil {
		return nil, err
	}
	return &notification, nil
}

func (r *postgresNotificationRepository) GetLatestByRecipient(recipientID uint, limit int) ([]models.Notification, error) {
	var notifications []models.Notification
	err := r.db.Where("recipient_id = ?", recipientID).
		Order("created_at DESC").
		Limit(limit).
		Find(&notifications).Error
	return notifications, err
}

func (r *postgresNotificationRepository) MarkAsRead(id uint) error {
	return r.db.Model(&models.Notification{}).Where("id = ?", id).Update("is_read", true).Error
}

func (r *postgresNotificationRepository) MarkAllAsRead(recipientID uint) error {
	return r.db.Model(&models.Notification{}).
		Where("recipient_id = ? AND is_read = false", recipientID).
		Update("is_read", true).Error
}

func (r *postgresNotificationRepository) DeleteByRecipient(recipientID uint) error {
	return r.db.Where("recipient_id = ?", recipientID).Delete(&models.Notification{}).Error
}
