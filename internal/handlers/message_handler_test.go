package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/vantora-labs/vantora/backend/internal/models"
)

func newMessageHandler() (*MessageHandler, *mockMessageRepo, *mockUserRepo, *mockNotificationRepo) {
	messageRepo := new(mockMessageRepo)
	userRepo := new(mockUserRepo)
	notificationRepo := new(mockNotificationRepo)
	return NewMessageHandler(messageRepo, userRepo, notificationRepo), messageRepo, userRepo, notificationRepo
}

func testMessage(senderID uint, recipientIDs []uint, content string) models.Message {
	return models.Message{
		ID:           primitive.NewObjectID(),
		SenderID:     senderID,
		RecipientIDs: recipientIDs,
		Content:      content,
	}
}

func TestMessageHandler_SendMessage_FanOutDedupesAndSkipsSender(t *testing.T) {
	h, messageRepo, userRepo, notificationRepo := newMessageHandler()
	e := newTestEcho()

	messageRepo.On("CreateMessage", mock.Anything, mock.AnythingOfType("*models.Message")).Return(nil)
	userRepo.On("GetUserByID", uint(1)).Return(&models.User{ID: 1, Username: "alice"}, nil)

	var fanned []models.Notification
	notificationRepo.On("CreateNotifications", mock.AnythingOfType("[]models.Notification")).
		Run(func(args mock.Arguments) {
			fanned = args.Get(0).([]models.Notification)
		}).Return(nil)

	// Recipient 2 appears twice and the sender lists themselves as well.
	c, rec := newTestContext(e, http.MethodPost, "/api/messages",
		`{"recipientIds":[2,2,3,1],"content":"hey"}`)
	asUser(c, 1)

	require.NoError(t, h.SendMessage(c))
	assert.Equal(t, http.StatusCreated, rec.Code)

	require.Len(t, fanned, 2)
	recipients := []uint{fanned[0].RecipientID, fanned[1].RecipientID}
	assert.ElementsMatch(t, []uint{2, 3}, recipients)
	for _, n := range fanned {
		assert.Equal(t, models.NotificationMessage, n.Type)
		assert.Equal(t, uint(1), n.ActorID)
	}
}

func TestMessageHandler_SendMessage_PersistsOnce(t *testing.T) {
	h, messageRepo, userRepo, notificationRepo := newMessageHandler()
	e := newTestEcho()

	messageRepo.On("CreateMessage", mock.Anything, mock.AnythingOfType("*models.Message")).Return(nil)
	userRepo.On("GetUserByID", uint(1)).Return(&models.User{ID: 1, Username: "alice"}, nil)
	notificationRepo.On("CreateNotifications", mock.Anything).Return(nil)

	c, _ := newTestContext(e, http.MethodPost, "/api/messages",
		`{"recipientIds":[2,3],"content":"group hello"}`)
	asUser(c, 1)

	require.NoError(t, h.SendMessage(c))
	messageRepo.AssertNumberOfCalls(t, "CreateMessage", 1)
}

func TestMessageHandler_SendMessage_NoRecipients(t *testing.T) {
	h, messageRepo, _, _ := newMessageHandler()
	e := newTestEcho()

	c, _ := newTestContext(e, http.MethodPost, "/api/messages",
		`{"recipientIds":[],"content":"hey"}`)
	asUser(c, 1)

	err := h.SendMessage(c)
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, httpStatus(err))
	messageRepo.AssertNotCalled(t, "CreateMessage", mock.Anything, mock.Anything)
}

func TestMessageHandler_GetConversation_UsesViewerAndPartner(t *testing.T) {
	h, messageRepo, userRepo, _ := newMessageHandler()
	e := newTestEcho()

	messageRepo.On("GetConversation", mock.Anything, uint(1), uint(2)).Return([]models.Message{
		testMessage(1, []uint{2}, "hi"),
		testMessage(2, []uint{1}, "hello"),
	}, nil)
	userRepo.On("GetUserByID", uint(1)).Return(&models.User{ID: 1, Username: "alice"}, nil)
	userRepo.On("GetUserByID", uint(2)).Return(&models.User{ID: 2, Username: "bob"}, nil)

	c, rec := newTestContext(e, http.MethodGet, "/api/messages/conversation/2", "")
	c.SetParamNames("userId")
	c.SetParamValues("2")
	asUser(c, 1)

	require.NoError(t, h.GetConversation(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var body []MessageResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body, 2)
	assert.Equal(t, "alice", body[0].Sender.Username)
	assert.Equal(t, "bob", body[1].Sender.Username)
}

func TestMessageHandler_GetConversations_OneHeadPerPartner(t *testing.T) {
	h, messageRepo, userRepo, _ := newMessageHandler()
	e := newTestEcho()

	// Newest first, the way the repository returns them.
	messageRepo.On("GetByParticipant", mock.Anything, uint(1)).Return([]models.Message{
		testMessage(2, []uint{1}, "latest from bob"),
		testMessage(1, []uint{2}, "older to bob"),
		testMessage(3, []uint{1}, "from carol"),
		testMessage(2, []uint{1}, "oldest from bob"),
	}, nil)
	userRepo.On("GetUserByID", uint(2)).Return(&models.User{ID: 2, Username: "bob"}, nil)
	userRepo.On("GetUserByID", uint(3)).Return(&models.User{ID: 3, Username: "carol"}, nil)

	c, rec := newTestContext(e, http.MethodGet, "/api/messages", "")
	asUser(c, 1)

	require.NoError(t, h.GetConversations(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var body []MessageResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body, 2)
	assert.Equal(t, "latest from bob", body[0].Content)
	assert.Equal(t, "from carol", body[1].Content)
}
