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

// AdminHandler handles the moderation panel requests
type AdminHandler struct {
	userRepository         repositories.UserRepository
	postRepository         repositories.PostRepository
	reportRepository       repositories.ReportRepository
	notificationRepository repositories.NotificationRepository
}

// NewAdminHandler creates a new AdminHandler
func NewAdminHandler(userRepo repositories.UserRepository, postRepo repositories.PostRepository, reportRepo repositories.ReportRepository, notificationRepo repositories.NotificationRepository) *AdminHandler {
	return &AdminHandler{
		userRepository:         userRepo,
		postRepository:         postRepo,
		reportRepository:       reportRepo,
		notificationRepository: notificationRepo,
	}
}

// RegisterAdminRoutes registers the administrator-only routes
func (h *AdminHandler) RegisterAdminRoutes(g *echo.Group) {
	g.GET("/dashboard", h.GetDashboard)
	g.GET("/users", h.GetUsers)
	g.DELETE("/users/:userId", h.DeleteUser)
	g.POST("/users/:userId/ban", h.BanUser)
	g.POST("/users/:userId/unban", h.UnbanUser)
	g.GET("/posts", h.GetPosts)
	g.DELETE("/posts/:postId", h.DeletePost)
	g.GET("/reports", h.GetReports)
	g.PUT("/reports/:reportId", h.UpdateReport)
}

// RegisterReportRoutes registers report submission, open to any
// authenticated user
func (h *AdminHandler) RegisterReportRoutes(g *echo.Group) {
	g.POST("/report", h.CreateReport)
}

// ReportResponse is a report with related users and post attached
type ReportResponse struct {
	models.Report
	ReportedBy   models.UserCompact  `json:"reportedBy"`
	ReportedUser *models.UserCompact `json:"reportedUser,omitempty"`
	ReportedPost *models.Post        `json:"reportedPost,omitempty"`
}

func (h *AdminHandler) enrichReport(c echo.Context, resolver *userResolver, report models.Report) ReportResponse {
	response := ReportResponse{
		Report:     report,
		ReportedBy: resolver.compact(report.ReporterID),
	}
	if report.ReportedUserID != nil {
		reported := resolver.compact(*report.ReportedUserID)
		response.ReportedUser = &reported
	}
	if report.ReportedPostID != "" {
		if post, err := h.postRepository.GetPostByID(c.Request().Context(), report.ReportedPostID); err == nil {
			response.ReportedPost = post
		}
	}
	return response
}

// GetDashboard returns totals and a posts-per-day series for the last week
func (h *AdminHandler) GetDashboard(c echo.Context) error {
	ctx := c.Request().Context()

	totalUsers, err := h.userRepository.CountUsers()
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	bannedUsers, err := h.userRepository.CountBannedUsers()
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	totalReports, err := h.reportRepository.CountReports()
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	totalPosts, err := h.postRepository.CountPosts(ctx)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	dailyPosts, err := h.postRepository.CountPostsPerDay(ctx, 7)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{
		"totalUsers":   totalUsers,
		"totalPosts":   totalPosts,
		"totalReports": totalReports,
		"bannedUsers":  bannedUsers,
		"dailyPosts":   dailyPosts,
	})
}

// GetUsers lists every user, newest first
func (h *AdminHandler) GetUsers(c echo.Context) error {
	users, err := h.userRepository.GetUsers()
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, users)
}

// DeleteUser removes an account and cascades to its posts and notifications.
// Messages and friendship back-references are intentionally left in place.
func (h *AdminHandler) DeleteUser(c echo.Context) error {
	userID, err := pathUserID(c)
	if err != nil {
		return err
	}

	if err := h.userRepository.DeleteUser(userID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if err := h.postRepository.DeletePostsByAuthor(c.Request().Context(), userID); err != nil {
		logger.Log.WithError(err).WithField("user_id", userID).Error("Failed to cascade post deletion")
	}
	if err := h.notificationRepository.DeleteByRecipient(userID); err != nil {
		logger.Log.WithError(err).WithField("user_id", userID).Error("Failed to cascade notification deletion")
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "User deleted"})
}

// BanUser sets the banned flag on an account
func (h *AdminHandler) BanUser(c echo.Context) error {
	return h.setBanned(c, true)
}

// UnbanUser clears the banned flag on an account
func (h *AdminHandler) UnbanUser(c echo.Context) error {
	return h.setBanned(c, false)
}

func (h *AdminHandler) setBanned(c echo.Context, banned bool) error {
	userID, err := pathUserID(c)
	if err != nil {
		return err
	}

	if err := h.userRepository.SetBanned(userID, banned); err != nil {
		if err == gorm.ErrRecordNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "User not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	user, err := h.userRepository.GetUserByID(userID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, user)
}

// GetPosts lists every post with its author attached, newest first
func (h *AdminHandler) GetPosts(c echo.Context) error {
	posts, err := h.postRepository.GetAllPosts(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	resolver := newUserResolver(h.userRepository)
	type adminPost struct {
		models.Post
		Author models.UserCompact `json:"author"`
	}
	response := make([]adminPost, len(posts))
	for i, post := range posts {
		response[i] = adminPost{Post: post, Author: resolver.compact(post.AuthorID)}
	}

	return c.JSON(http.StatusOK, response)
}

// DeletePost removes any post, regardless of author
func (h *AdminHandler) DeletePost(c echo.Context) error {
	if err := h.postRepository.DeletePost(c.Request().Context(), c.Param("postId")); err != nil {
		if err == repositories.ErrPostNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "Post not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Post deleted"})
}

// GetReports lists every report with related accounts and post attached
func (h *AdminHandler) GetReports(c echo.Context) error {
	reports, err := h.reportRepository.GetReports()
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	resolver := newUserResolver(h.userRepository)
	response := make([]ReportResponse, len(reports))
	for i, report := range reports {
		response[i] = h.enrichReport(c, resolver, report)
	}

	return c.JSON(http.StatusOK, response)
}

// UpdateReport updates a report's status and resolution action. Status
// changes do not ban users or delete posts; those are separate admin actions.
func (h *AdminHandler) UpdateReport(c echo.Context) error {
	reportID, err := strconv.ParseUint(c.Param("reportId"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid report ID")
	}

	var req models.UpdateReportRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	report, err := h.reportRepository.GetReportByID(uint(reportID))
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "Report not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	report.Status = req.Status
	report.Action = req.Action
	if err := h.reportRepository.UpdateReport(report); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	resolver := newUserResolver(h.userRepository)
	return c.JSON(http.StatusOK, h.enrichReport(c, resolver, *report))
}

// CreateReport submits a moderation report against a user and/or a post
func (h *AdminHandler) CreateReport(c echo.Context) error {
	var req models.CreateReportRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	if req.ReportedUserID == nil && req.ReportedPostID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Report must target a user or a post")
	}

	if req.ReportedPostID != "" {
		if err := h.postRepository.MarkReported(c.Request().Context(), req.ReportedPostID); err != nil {
			if err == repositories.ErrPostNotFound {
				return echo.NewHTTPError(http.StatusNotFound, "Reported post not found")
			}
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}

	report := &models.Report{
		ReporterID:     currentUserID(c),
		ReportedUserID: req.ReportedUserID,
		ReportedPostID: req.ReportedPostID,
		Reason:         req.Reason,
		Description:    req.Description,
	}
	if err := h.reportRepository.CreateReport(report); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusCreated, report)
}
