package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/vantora-labs/vantora/backend/internal/models"
	"github.com/vantora-labs/vantora/backend/internal/repositories"
)

func newAdminHandler() (*AdminHandler, *mockUserRepo, *mockPostRepo, *mockReportRepo, *mockNotificationRepo) {
	userRepo := new(mockUserRepo)
	postRepo := new(mockPostRepo)
	reportRepo := new(mockReportRepo)
	notificationRepo := new(mockNotificationRepo)
	return NewAdminHandler(userRepo, postRepo, reportRepo, notificationRepo), userRepo, postRepo, reportRepo, notificationRepo
}

func TestAdminHandler_GetDashboard(t *testing.T) {
	h, userRepo, postRepo, reportRepo, _ := newAdminHandler()
	e := newTestEcho()

	userRepo.On("CountUsers").Return(int64(42), nil)
	userRepo.On("CountBannedUsers").Return(int64(3), nil)
	reportRepo.On("CountReports").Return(int64(5), nil)
	postRepo.On("CountPosts", mock.Anything).Return(int64(120), nil)
	postRepo.On("CountPostsPerDay", mock.Anything, 7).Return([]models.DailyPostCount{
		{Date: "2026-08-31", Count: 12},
		{Date: "2026-08-30", Count: 9},
	}, nil)

	c, rec := newTestContext(e, http.MethodGet, "/api/admin/dashboard", "")
	asUser(c, 1)

	require.NoError(t, h.GetDashboard(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var body map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.JSONEq(t, "42", string(body["totalUsers"]))
	assert.JSONEq(t, "120", string(body["totalPosts"]))
	assert.JSONEq(t, "3", string(body["bannedUsers"]))
	assert.JSONEq(t, "5", string(body["totalReports"]))
	assert.Contains(t, string(body["dailyPosts"]), "2026-08-31")
}

func TestAdminHandler_DeleteUser_CascadesPostsAndNotifications(t *testing.T) {
	h, userRepo, postRepo, _, notificationRepo := newAdminHandler()
	e := newTestEcho()

	userRepo.On("DeleteUser", uint(2)).Return(nil)
	postRepo.On("DeletePostsByAuthor", mock.Anything, uint(2)).Return(nil)
	notificationRepo.On("DeleteByRecipient", uint(2)).Return(nil)

	c, rec := newTestContext(e, http.MethodDelete, "/api/admin/users/2", "")
	c.SetParamNames("userId")
	c.SetParamValues("2")
	asUser(c, 1)

	require.NoError(t, h.DeleteUser(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	userRepo.AssertCalled(t, "DeleteUser", uint(2))
	postRepo.AssertCalled(t, "DeletePostsByAuthor", mock.Anything, uint(2))
	notificationRepo.AssertCalled(t, "DeleteByRecipient", uint(2))
}

func TestAdminHandler_BanUser(t *testing.T) {
	h, userRepo, _, _, _ := newAdminHandler()
	e := newTestEcho()

	userRepo.On("SetBanned", uint(2), true).Return(nil)
	userRepo.On("GetUserByID", uint(2)).Return(&models.User{ID: 2, Username: "bob", IsBanned: true}, nil)

	c, rec := newTestContext(e, http.MethodPost, "/api/admin/users/2/ban", "")
	c.SetParamNames("userId")
	c.SetParamValues("2")
	asUser(c, 1)

	require.NoError(t, h.BanUser(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"isBanned":true`)
}

func TestAdminHandler_BanUser_UnknownUser(t *testing.T) {
	h, userRepo, _, _, _ := newAdminHandler()
	e := newTestEcho()

	userRepo.On("SetBanned", uint(99), true).Return(gorm.ErrRecordNotFound)

	c, _ := newTestContext(e, http.MethodPost, "/api/admin/users/99/ban", "")
	c.SetParamNames("userId")
	c.SetParamValues("99")
	asUser(c, 1)

	err := h.BanUser(c)
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, httpStatus(err))
}

func TestAdminHandler_CreateReport_MarksPostReported(t *testing.T) {
	h, _, postRepo, reportRepo, _ := newAdminHandler()
	e := newTestEcho()

	postRepo.On("MarkReported", mock.Anything, "abc123").Return(nil)

	var created *models.Report
	reportRepo.On("CreateReport", mock.AnythingOfType("*models.Report")).
		Run(func(args mock.Arguments) {
			created = args.Get(0).(*models.Report)
		}).Return(nil)

	c, rec := newTestContext(e, http.MethodPost, "/api/admin/report",
		`{"reportedPostId":"abc123","reason":"spam"}`)
	asUser(c, 1)

	require.NoError(t, h.CreateReport(c))
	assert.Equal(t, http.StatusCreated, rec.Code)

	postRepo.AssertCalled(t, "MarkReported", mock.Anything, "abc123")
	require.NotNil(t, created)
	assert.Equal(t, uint(1), created.ReporterID)
	assert.Equal(t, models.ReportStatusPending, created.Status)
}

func TestAdminHandler_CreateReport_NoTarget(t *testing.T) {
	h, _, _, reportRepo, _ := newAdminHandler()
	e := newTestEcho()

	c, _ := newTestContext(e, http.MethodPost, "/api/admin/report", `{"reason":"spam"}`)
	asUser(c, 1)

	err := h.CreateReport(c)
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, httpStatus(err))
	reportRepo.AssertNotCalled(t, "CreateReport", mock.Anything)
}

func TestAdminHandler_CreateReport_UnknownPost(t *testing.T) {
	h, _, postRepo, reportRepo, _ := newAdminHandler()
	e := newTestEcho()

	postRepo.On("MarkReported", mock.Anything, "missing").Return(repositories.ErrPostNotFound)

	c, _ := newTestContext(e, http.MethodPost, "/api/admin/report",
		`{"reportedPostId":"missing","reason":"spam"}`)
	asUser(c, 1)

	err := h.CreateReport(c)
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, httpStatus(err))
	reportRepo.AssertNotCalled(t, "CreateReport", mock.Anything)
}

func TestAdminHandler_UpdateReport_InvalidStatus(t *testing.T) {
	h, _, _, reportRepo, _ := newAdminHandler()
	e := newTestEcho()

	c, _ := newTestContext(e, http.MethodPut, "/api/admin/reports/1",
		`{"status":"escalated"}`)
	c.SetParamNames("reportId")
	c.SetParamValues("1")
	asUser(c, 1)

	err := h.UpdateReport(c)
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, httpStatus(err))
	reportRepo.AssertNotCalled(t, "UpdateReport", mock.Anything)
}

func TestAdminHandler_UpdateReport_Success(t *testing.T) {
	h, userRepo, _, reportRepo, _ := newAdminHandler()
	e := newTestEcho()

	report := &models.Report{ID: 1, ReporterID: 3, Reason: "spam", Status: models.ReportStatusPending}
	reportRepo.On("GetReportByID", uint(1)).Return(report, nil)
	reportRepo.On("UpdateReport", report).Return(nil)
	userRepo.On("GetUserByID", uint(3)).Return(&models.User{ID: 3, Username: "carol"}, nil)

	c, rec := newTestContext(e, http.MethodPut, "/api/admin/reports/1",
		`{"status":"action_taken","action":"post removed"}`)
	c.SetParamNames("reportId")
	c.SetParamValues("1")
	asUser(c, 1)

	require.NoError(t, h.UpdateReport(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, models.ReportStatusActionTaken, report.Status)
	assert.Equal(t, "post removed", report.Action)
}
