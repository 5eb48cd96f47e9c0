package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/mock"

	"github.com/vantora-labs/vantora/backend/internal/models"
	"github.com/vantora-labs/vantora/backend/pkg/logger"
	"github.com/vantora-labs/vantora/backend/pkg/validators"
)

func init() {
	logger.Init("error")
}

// newTestContext builds an echo context with the JSON body bound and a
// recorder capturing the response
func newTestContext(e *echo.Echo, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func newTestEcho() *echo.Echo {
	e := echo.New()
	e.Validator = validators.New()
	return e
}

// asUser stores JWT claims the way the auth middleware would
func asUser(c echo.Context, userID uint) {
	c.Set("user", &models.JwtCustomClaims{UserID: userID, Username: "user"})
}

func httpStatus(err error) int {
	if httpErr, ok := err.(*echo.HTTPError); ok {
		return httpErr.Code
	}
	return http.StatusOK
}

type mockUserRepo struct {
	mock.Mock
}

func (m *mockUserRepo) CreateUser(user *models.User) error {
	args := m.Called(user)
	if args.Error(0) == nil && user.ID == 0 {
		user.ID = 1
	}
	return args.Error(0)
}

func (m *mockUserRepo) GetUserByID(id uint) (*models.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *mockUserRepo) GetUserByUsername(username string) (*models.User, error) {
	args := m.Called(username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *mockUserRepo) GetUserByEmail(email string) (*models.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *mockUserRepo) GetUsers() ([]models.User, error) {
	args := m.Called()
	return args.Get(0).([]models.User), args.Error(1)
}

func (m *mockUserRepo) UpdateUser(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *mockUserRepo) DeleteUser(id uint) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *mockUserRepo) SearchUsers(query string) ([]models.User, error) {
	args := m.Called(query)
	return args.Get(0).([]models.User), args.Error(1)
}

func (m *mockUserRepo) SetBanned(id uint, banned bool) error {
	args := m.Called(id, banned)
	return args.Error(0)
}

func (m *mockUserRepo) CountUsers() (int64, error) {
	args := m.Called()
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockUserRepo) CountBannedUsers() (int64, error) {
	args := m.Called()
	return args.Get(0).(int64), args.Error(1)
}

type mockFriendshipRepo struct {
	mock.Mock
}

func (m *mockFriendshipRepo) CreateRequest(req *models.FriendRequest) error {
	args := m.Called(req)
	return args.Error(0)
}

func (m *mockFriendshipRepo) GetPendingRequest(senderID, receiverID uint) (*models.FriendRequest, error) {
	args := m.Called(senderID, receiverID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.FriendRequest), args.Error(1)
}

func (m *mockFriendshipRepo) GetPendingRequests(receiverID uint) ([]models.FriendRequest, error) {
	args := m.Called(receiverID)
	return args.Get(0).([]models.FriendRequest), args.Error(1)
}

func (m *mockFriendshipRepo) AcceptRequest(req *models.FriendRequest) error {
	args := m.Called(req)
	return args.Error(0)
}

func (m *mockFriendshipRepo) RejectRequest(req *models.FriendRequest) error {
	args := m.Called(req)
	return args.Error(0)
}

func (m *mockFriendshipRepo) AreFriends(userID, friendID uint) (bool, error) {
	args := m.Called(userID, friendID)
	return args.Bool(0), args.Error(1)
}

func (m *mockFriendshipRepo) RemoveFriendship(userID, friendID uint) error {
	args := m.Called(userID, friendID)
	return args.Error(0)
}

func (m *mockFriendshipRepo) GetFriendIDs(userID uint) ([]uint, error) {
	args := m.Called(userID)
	return args.Get(0).([]uint), args.Error(1)
}

func (m *mockFriendshipRepo) GetFriends(userID uint) ([]models.User, error) {
	args := m.Called(userID)
	return args.Get(0).([]models.User), args.Error(1)
}

type mockPostRepo struct {
	mock.Mock
}

func (m *mockPostRepo) CreatePost(ctx context.Context, post *models.Post) error {
	args := m.Called(ctx, post)
	return args.Error(0)
}

func (m *mockPostRepo) GetPostByID(ctx context.Context, id string) (*models.Post, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Post), args.Error(1)
}

func (m *mockPostRepo) GetPostsByAuthor(ctx context.Context, authorID uint) ([]models.Post, error) {
	args := m.Called(ctx, authorID)
	return args.Get(0).([]models.Post), args.Error(1)
}

func (m *mockPostRepo) GetFeed(ctx context.Context, authorIDs []uint, limit int64) ([]models.Post, error) {
	args := m.Called(ctx, authorIDs, limit)
	return args.Get(0).([]models.Post), args.Error(1)
}

func (m *mockPostRepo) GetAllPosts(ctx context.Context) ([]models.Post, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.Post), args.Error(1)
}

func (m *mockPostRepo) UpdatePost(ctx context.Context, id string, post *models.Post) error {
	args := m.Called(ctx, id, post)
	return args.Error(0)
}

func (m *mockPostRepo) DeletePost(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockPostRepo) DeletePostsByAuthor(ctx context.Context, authorID uint) error {
	args := m.Called(ctx, authorID)
	return args.Error(0)
}

func (m *mockPostRepo) AddLike(ctx context.Context, postID string, userID uint) error {
	args := m.Called(ctx, postID, userID)
	return args.Error(0)
}

func (m *mockPostRepo) RemoveLike(ctx context.Context, postID string, userID uint) error {
	args := m.Called(ctx, postID, userID)
	return args.Error(0)
}

func (m *mockPostRepo) AppendComment(ctx context.Context, postID string, comment *models.Comment) error {
	args := m.Called(ctx, postID, comment)
	return args.Error(0)
}

func (m *mockPostRepo) MarkReported(ctx context.Context, postID string) error {
	args := m.Called(ctx, postID)
	return args.Error(0)
}

func (m *mockPostRepo) CountPosts(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockPostRepo) CountPostsPerDay(ctx context.Context, days int) ([]models.DailyPostCount, error) {
	args := m.Called(ctx, days)
	return args.Get(0).([]models.DailyPostCount), args.Error(1)
}

type mockMessageRepo struct {
	mock.Mock
}

func (m *mockMessageRepo) CreateMessage(ctx context.Context, msg *models.Message) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

func (m *mockMessageRepo) GetConversation(ctx context.Context, userID, partnerID uint) ([]models.Message, error) {
	args := m.Called(ctx, userID, partnerID)
	return args.Get(0).([]models.Message), args.Error(1)
}

func (m *mockMessageRepo) GetByParticipant(ctx context.Context, userID uint) ([]models.Message, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]models.Message), args.Error(1)
}

type mockNotificationRepo struct {
	mock.Mock
}

func (m *mockNotificationRepo) CreateNotification(notification *models.Notification) error {
	args := m.Called(notification)
	return args.Error(0)
}

func (m *mockNotificationRepo) CreateNotifications(notifications []models.Notification) error {
	args := m.Called(notifications)
	return args.Error(0)
}

func (m *mockNotificationRepo) GetByID(id uint) (*models.Notification, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Notification), args.Error(1)
}

func (m *mockNotificationRepo) GetLatestByRecipient(recipientID uint, limit int) ([]models.Notification, error) {
	args := m.Called(recipientID, limit)
	return args.Get(0).([]models.Notification), args.Error(1)
}

func (m *mockNotificationRepo) MarkAsRead(id uint) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *mockNotificationRepo) MarkAllAsRead(recipientID uint) error {
	args := m.Called(recipientID)
	return args.Error(0)
}

func (m *mockNotificationRepo) DeleteByRecipient(recipientID uint) error {
	args := m.Called(recipientID)
	return args.Error(0)
}

type mockReportRepo struct {
	mock.Mock
}

func (m *mockReportRepo) CreateReport(report *models.Report) error {
	args := m.Called(report)
	if args.Error(0) == nil {
		report.ID = 1
		report.Status = models.ReportStatusPending
	}
	return args.Error(0)
}

func (m *mockReportRepo) GetReports() ([]models.Report, error) {
	args := m.Called()
	return args.Get(0).([]models.Report), args.Error(1)
}

func (m *mockReportRepo) GetReportByID(id uint) (*models.Report, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Report), args.Error(1)
}

func (m *mockReportRepo) UpdateReport(report *models.Report) error {
	args := m.Called(report)
	return args.Error(0)
}

func (m *mockReportRepo) CountReports() (int64, error) {
	args := m.Called()
	return args.Get(0).(int64), args.Error(1)
}
