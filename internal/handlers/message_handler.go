package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/vantora-labs/vantora/backend/internal/models"
	"github.com/vantora-labs/vantora/backend/internal/repositories"
	"github.com/vantora-labs/vantora/backend/pkg/logger"
)

// MessageHandler handles HTTP requests related to direct messages
type MessageHandler struct {
	messageRepository      repositories.MessageRepository
	userRepository         repositories.UserRepository
	notificationRepository repositories.NotificationRepository
}

// NewMessageHandler creates a new MessageHandler
func NewMessageHandler(messageRepo repositories.MessageRepository, userRepo repositories.UserRepository, notificationRepo repositories.NotificationRepository) *MessageHandler {
	return &MessageHandler{
		messageRepository:      messageRepo,
		userRepository:         userRepo,
		notificationRepository: notificationRepo,
	}
}

// RegisterMessageRoutes registers message-related routes
func (h *MessageHandler) RegisterMessageRoutes(g *echo.Group) {
	g.POST("", h.SendMessage)
	g.GET("", h.GetConversations)
	g.GET("/conversation/:userId", h.GetConversation)
}

// MessageResponse is a message with sender details attached
type MessageResponse struct {
	models.Message
	Sender models.UserCompact `json:"sender"`
}

func (h *MessageHandler) enrichMessages(messages []models.Message) []MessageResponse {
	resolver := newUserResolver(h.userRepository)
	enriched := make([]MessageResponse, len(messages))
	for i, msg := range messages {
		enriched[i] = MessageResponse{
			Message: msg,
			Sender:  resolver.compact(msg.SenderID),
		}
	}
	return enriched
}

// SendMessage persists one message and fans out one notification per distinct
// recipient, excluding the sender. The fan-out is a single batch insert.
func (h *MessageHandler) SendMessage(c echo.Context) error {
	viewerID := currentUserID(c)

	var req models.SendMessageRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	message := &models.Message{
		SenderID:     viewerID,
		RecipientIDs: req.RecipientIDs,
		Content:      req.Content,
		Image:        req.Image,
	}
	if err := h.messageRepository.CreateMessage(c.Request().Context(), message); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	var notifications []models.Notification
	seen := make(map[uint]bool)
	for _, recipientID := range req.RecipientIDs {
		if recipientID == viewerID || seen[recipientID] {
			continue
		}
		seen[recipientID] = true
		notifications = append(notifications, models.Notification{
			RecipientID: recipientID,
			ActorID:     viewerID,
			Type:        models.NotificationMessage,
		})
	}
	if err := h.notificationRepository.CreateNotifications(notifications); err != nil {
		logger.Log.WithError(err).Warn("Failed to create message notifications")
	}

	resolver := newUserResolver(h.userRepository)
	return c.JSON(http.StatusCreated, MessageResponse{
		Message: *message,
		Sender:  resolver.compact(viewerID),
	})
}

// GetConversation retrieves the two-party thread between the viewer and the
// user in the path, oldest first
func (h *MessageHandler) GetConversation(c echo.Context) error {
	partnerID, err := pathUserID(c)
	if err != nil {
		return err
	}

	messages, err := h.messageRepository.GetConversation(c.Request().Context(), currentUserID(c), partnerID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, h.enrichMessages(messages))
}

// GetConversations lists the viewer's conversation heads, most recent
// conversation first. Iterating newest-first and keeping the first message
// per partner yields one head per partner. Multi-recipient messages are
// keyed by their first recipient; further recipients are not tracked as
// separate conversations.
func (h *MessageHandler) GetConversations(c echo.Context) error {
	viewerID := currentUserID(c)

	messages, err := h.messageRepository.GetByParticipant(c.Request().Context(), viewerID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	var heads []models.Message
	seen := make(map[uint]bool)
	for _, msg := range messages {
		partnerID := msg.SenderID
		if msg.SenderID == viewerID {
			if len(msg.RecipientIDs) == 0 {
				continue
			}
			partnerID = msg.RecipientIDs[0]
		}
		if seen[partnerID] {
			continue
		}
		seen[partnerID] = true
		heads = append(heads, msg)
	}

	return c.JSON(http.StatusOK, h.enrichMessages(heads))
}
