package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/vantora-labs/vantora/backend/internal/models"
	"github.com/vantora-labs/vantora/backend/internal/repositories"
	"github.com/vantora-labs/vantora/backend/pkg/logger"
	"gorm.io/gorm"
)

// FriendHandler handles HTTP requests related to the friend graph
type FriendHandler struct {
	friendshipRepository   repositories.FriendshipRepository
	userRepository         repositories.UserRepository
	notificationRepository repositories.NotificationRepository
}

// NewFriendHandler creates a new FriendHandler
func NewFriendHandler(friendshipRepo repositories.FriendshipRepository, userRepo repositories.UserRepository, notificationRepo repositories.NotificationRepository) *FriendHandler {
	return &FriendHandler{
		friendshipRepository:   friendshipRepo,
		userRepository:         userRepo,
		notificationRepository: notificationRepo,
	}
}

// RegisterFriendRoutes registers friend-related routes
func (h *FriendHandler) RegisterFriendRoutes(g *echo.Group) {
	g.POST("/:userId/request", h.SendFriendRequest)
	g.POST("/:userId/accept", h.AcceptFriendRequest)
	g.POST("/:userId/reject", h.RejectFriendRequest)
	g.DELETE("/:userId", h.RemoveFriend)
	g.GET("/:userId", h.GetFriends)
	g.GET("/pending/requests", h.GetPendingRequests)
}

// PendingRequestResponse is a pending request with sender details attached
type PendingRequestResponse struct {
	models.FriendRequest
	From models.UserCompact `json:"from"`
}

func pathUserID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("userId"), 10, 32)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "Invalid user ID")
	}
	return uint(id), nil
}

// SendFriendRequest handles sending a friend request to another user
func (h *FriendHandler) SendFriendRequest(c echo.Context) error {
	viewerID := currentUserID(c)
	targetID, err := pathUserID(c)
	if err != nil {
		return err
	}

	if targetID == viewerID {
		return echo.NewHTTPError(http.StatusBadRequest, "Cannot send request to yourself")
	}

	if _, err := h.userRepository.GetUserByID(targetID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "User not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	areFriends, err := h.friendshipRepository.AreFriends(viewerID, targetID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if areFriends {
		return echo.NewHTTPError(http.StatusBadRequest, "Users are already friends")
	}

	if _, err := h.friendshipRepository.GetPendingRequest(viewerID, targetID); err == nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Request already sent")
	}
	if _, err := h.friendshipRepository.GetPendingRequest(targetID, viewerID); err == nil {
		return echo.NewHTTPError(http.StatusBadRequest, "This user has already sent you a request")
	}

	request := &models.FriendRequest{
		SenderID:   viewerID,
		ReceiverID: targetID,
	}
	if err := h.friendshipRepository.CreateRequest(request); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if err := h.notificationRepository.CreateNotification(&models.Notification{
		RecipientID: targetID,
		ActorID:     viewerID,
		Type:        models.NotificationFriendRequest,
	}); err != nil {
		logger.Log.WithError(err).Warn("Failed to create friend request notification")
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "Friend request sent"})
}

// AcceptFriendRequest accepts a pending request from the user in the path.
// The status flip and both friendship rows are written in one transaction.
func (h *FriendHandler) AcceptFriendRequest(c echo.Context) error {
	viewerID := currentUserID(c)
	senderID, err := pathUserID(c)
	if err != nil {
		return err
	}

	if _, err := h.userRepository.GetUserByID(senderID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "User not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	request, err := h.friendshipRepository.GetPendingRequest(senderID, viewerID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return echo.NewHTTPError(http.StatusBadRequest, "No friend request from this user")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if err := h.friendshipRepository.AcceptRequest(request); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if err := h.notificationRepository.CreateNotification(&models.Notification{
		RecipientID: senderID,
		ActorID:     viewerID,
		Type:        models.NotificationFriendAccepted,
	}); err != nil {
		logger.Log.WithError(err).Warn("Failed to create friend accepted notification")
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "Friend request accepted"})
}

// RejectFriendRequest rejects a pending request from the user in the path
func (h *FriendHandler) RejectFriendRequest(c echo.Context) error {
	viewerID := currentUserID(c)
	senderID, err := pathUserID(c)
	if err != nil {
		return err
	}

	request, err := h.friendshipRepository.GetPendingRequest(senderID, viewerID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return echo.NewHTTPError(http.StatusBadRequest, "No friend request from this user")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if err := h.friendshipRepository.RejectRequest(request); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "Friend request rejected"})
}

// RemoveFriend removes both directions of the friendship
func (h *FriendHandler) RemoveFriend(c echo.Context) error {
	viewerID := currentUserID(c)
	friendID, err := pathUserID(c)
	if err != nil {
		return err
	}

	if err := h.friendshipRepository.RemoveFriendship(viewerID, friendID); err != nil {
		if err == repositories.ErrFriendshipNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "Friendship not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "Friend removed"})
}

// GetFriends lists a user's friends with public profile fields
func (h *FriendHandler) GetFriends(c echo.Context) error {
	userID, err := pathUserID(c)
	if err != nil {
		return err
	}

	if _, err := h.userRepository.GetUserByID(userID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "User not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	friends, err := h.friendshipRepository.GetFriends(userID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, friends)
}

// GetPendingRequests lists the viewer's incoming pending requests
func (h *FriendHandler) GetPendingRequests(c echo.Context) error {
	requests, err := h.friendshipRepository.GetPendingRequests(currentUserID(c))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	resolver := newUserResolver(h.userRepository)
	response := make([]PendingRequestResponse, len(requests))
	for i, request := range requests {
		response[i] = PendingRequestResponse{
			FriendRequest: request,
			From:          resolver.compact(request.SenderID),
		}
	}

	return c.JSON(http.StatusOK, response)
}
