package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/vantora-labs/vantora/backend/internal/models"
	"github.com/vantora-labs/vantora/backend/internal/repositories"
	"gorm.io/gorm"
)

// notificationLimit caps the notification listing
const notificationLimit = 50

// NotificationHandler handles notification-related HTTP requests
type NotificationHandler struct {
	notificationRepository repositories.NotificationRepository
	userRepository         repositories.UserRepository
	postRepository         repositories.PostRepository
}

// NewNotificationHandler creates a new NotificationHandler
func NewNotificationHandler(notificationRepo repositories.NotificationRepository, userRepo repositories.UserRepository, postRepo repositories.PostRepository) *NotificationHandler {
	return &NotificationHandler{
		notificationRepository: notificationRepo,
		userRepository:         userRepo,
		postRepository:         postRepo,
	}
}

// RegisterNotificationRoutes registers notification routes
func (h *NotificationHandler) RegisterNotificationRoutes(g *echo.Group) {
	g.GET("", h.GetNotifications)
	g.PUT("/:notificationId/read", h.MarkAsRead)
	g.PUT("/read/all", h.MarkAllAsRead)
}

// NotificationResponse is a notification with the originating user and the
// related post attached
type NotificationResponse struct {
	models.Notification
	From models.UserCompact `json:"from"`
	Post *models.Post       `json:"post,omitempty"`
}

// GetNotifications lists the viewer's latest notifications, newest first
func (h *NotificationHandler) GetNotifications(c echo.Context) error {
	notifications, err := h.notificationRepository.GetLatestByRecipient(currentUserID(c), notificationLimit)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	resolver := newUserResolver(h.userRepository)
	ctx := c.Request().Context()
	response := make([]NotificationResponse, len(notifications))
	for i, notification := range notifications {
		response[i] = NotificationResponse{
			Notification: notification,
			From:         resolver.compact(notification.ActorID),
		}
		if notification.PostID != "" {
			// Post may have been deleted since the notification was created
			if post, err := h.postRepository.GetPostByID(ctx, notification.PostID); err == nil {
				response[i].Post = post
			}
		}
	}

	return c.JSON(http.StatusOK, response)
}

// MarkAsRead marks one of the viewer's notifications as read
func (h *NotificationHandler) MarkAsRead(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("notificationId"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid notification ID")
	}

	notification, err := h.notificationRepository.GetByID(uint(id))
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "Notification not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if notification.RecipientID != currentUserID(c) {
		return echo.NewHTTPError(http.StatusForbidden, "Not authorized")
	}

	if err := h.notificationRepository.MarkAsRead(notification.ID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	notification.IsRead = true
	return c.JSON(http.StatusOK, notification)
}

// MarkAllAsRead marks all of the viewer's notifications as read
func (h *NotificationHandler) MarkAllAsRead(c echo.Context) error {
	if err := h.notificationRepository.MarkAllAsRead(currentUserID(c)); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "All notifications marked as read"})
}
