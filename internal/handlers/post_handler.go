package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/vantora-labs/vantora/backend/internal/models"
	"github.com/vantora-labs/vantora/backend/internal/repositories"
	"github.com/vantora-labs/vantora/backend/pkg/logger"
)

// feedLimit caps the number of posts returned by the feed
const feedLimit = 20

// PostHandler handles HTTP requests related to posts
type PostHandler struct {
	postRepository         repositories.PostRepository
	userRepository         repositories.UserRepository
	friendshipRepository   repositories.FriendshipRepository
	notificationRepository repositories.NotificationRepository
}

// NewPostHandler creates a new PostHandler
func NewPostHandler(postRepo repositories.PostRepository, userRepo repositories.UserRepository, friendshipRepo repositories.FriendshipRepository, notificationRepo repositories.NotificationRepository) *PostHandler {
	return &PostHandler{
		postRepository:         postRepo,
		userRepository:         userRepo,
		friendshipRepository:   friendshipRepo,
		notificationRepository: notificationRepo,
	}
}

// RegisterPublicRoutes registers the post routes that require no authentication
func (h *PostHandler) RegisterPublicRoutes(g *echo.Group) {
	g.GET("/user/:userId", h.GetUserPosts)
	g.GET("/:postId", h.GetPost)
}

// RegisterProtectedRoutes registers the post routes gated by the JWT middleware
func (h *PostHandler) RegisterProtectedRoutes(g *echo.Group) {
	g.POST("", h.CreatePost)
	g.GET("/feed", h.GetFeed)
	g.POST("/:postId/like", h.ToggleLike)
	g.POST("/:postId/comment", h.AddComment)
	g.PUT("/:postId", h.UpdatePost)
	g.DELETE("/:postId", h.DeletePost)
}

// CommentResponse is a comment with its author attached
type CommentResponse struct {
	models.Comment
	Author models.UserCompact `json:"author"`
}

// PostResponse is a post with author details attached
type PostResponse struct {
	models.Post
	Author   models.UserCompact `json:"author"`
	Comments []CommentResponse  `json:"comments"`
}

func (h *PostHandler) enrichPost(resolver *userResolver, post models.Post) PostResponse {
	comments := make([]CommentResponse, len(post.Comments))
	for i, comment := range post.Comments {
		comments[i] = CommentResponse{
			Comment: comment,
			Author:  resolver.compact(comment.AuthorID),
		}
	}
	return PostResponse{
		Post:     post,
		Author:   resolver.compact(post.AuthorID),
		Comments: comments,
	}
}

func (h *PostHandler) enrichPosts(posts []models.Post) []PostResponse {
	resolver := newUserResolver(h.userRepository)
	enriched := make([]PostResponse, len(posts))
	for i, post := range posts {
		enriched[i] = h.enrichPost(resolver, post)
	}
	return enriched
}

// CreatePost creates a new post authored by the acting user
func (h *PostHandler) CreatePost(c echo.Context) error {
	var req models.CreatePostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	if req.Content == "" && req.Image == "" && req.Video == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Post must have content, an image or a video")
	}

	post := &models.Post{
		AuthorID: currentUserID(c),
		Content:  req.Content,
		Image:    req.Image,
		Video:    req.Video,
	}

	if err := h.postRepository.CreatePost(c.Request().Context(), post); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	resolver := newUserResolver(h.userRepository)
	return c.JSON(http.StatusCreated, h.enrichPost(resolver, *post))
}

// GetFeed retrieves posts authored by the viewer or any of the viewer's
// friends, newest first, capped at 20
func (h *PostHandler) GetFeed(c echo.Context) error {
	viewerID := currentUserID(c)

	friendIDs, err := h.friendshipRepository.GetFriendIDs(viewerID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	authorIDs := append(friendIDs, viewerID)

	posts, err := h.postRepository.GetFeed(c.Request().Context(), authorIDs, feedLimit)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, h.enrichPosts(posts))
}

// GetPost retrieves a single post
func (h *PostHandler) GetPost(c echo.Context) error {
	post, err := h.postRepository.GetPostByID(c.Request().Context(), c.Param("postId"))
	if err != nil {
		if err == repositories.ErrPostNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "Post not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	resolver := newUserResolver(h.userRepository)
	return c.JSON(http.StatusOK, h.enrichPost(resolver, *post))
}

// GetUserPosts retrieves a user's posts, newest first
func (h *PostHandler) GetUserPosts(c echo.Context) error {
	userID, err := strconv.ParseUint(c.Param("userId"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid user ID")
	}

	posts, err := h.postRepository.GetPostsByAuthor(c.Request().Context(), uint(userID))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, h.enrichPosts(posts))
}

// ToggleLike flips the viewer's like on a post. The author is notified only
// on the unliked-to-liked transition and never on a self-like.
func (h *PostHandler) ToggleLike(c echo.Context) error {
	viewerID := currentUserID(c)
	postID := c.Param("postId")
	ctx := c.Request().Context()

	post, err := h.postRepository.GetPostByID(ctx, postID)
	if err != nil {
		if err == repositories.ErrPostNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "Post not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if post.HasLiked(viewerID) {
		if err := h.postRepository.RemoveLike(ctx, postID, viewerID); err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	} else {
		if err := h.postRepository.AddLike(ctx, postID, viewerID); err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
		if post.AuthorID != viewerID {
			if err := h.notificationRepository.CreateNotification(&models.Notification{
				RecipientID: post.AuthorID,
				ActorID:     viewerID,
				Type:        models.NotificationLike,
				PostID:      postID,
			}); err != nil {
				logger.Log.WithError(err).Warn("Failed to create like notification")
			}
		}
	}

	post, err = h.postRepository.GetPostByID(ctx, postID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	resolver := newUserResolver(h.userRepository)
	return c.JSON(http.StatusOK, h.enrichPost(resolver, *post))
}

// AddComment appends a comment to a post and notifies the author unless the
// commenter is the author
func (h *PostHandler) AddComment(c echo.Context) error {
	viewerID := currentUserID(c)
	postID := c.Param("postId")
	ctx := c.Request().Context()

	var req models.CreateCommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	post, err := h.postRepository.GetPostByID(ctx, postID)
	if err != nil {
		if err == repositories.ErrPostNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "Post not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	comment := &models.Comment{
		AuthorID: viewerID,
		Text:     req.Text,
		Image:    req.Image,
	}
	if err := h.postRepository.AppendComment(ctx, postID, comment); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if post.AuthorID != viewerID {
		if err := h.notificationRepository.CreateNotification(&models.Notification{
			RecipientID: post.AuthorID,
			ActorID:     viewerID,
			Type:        models.NotificationComment,
			PostID:      postID,
		}); err != nil {
			logger.Log.WithError(err).Warn("Failed to create comment notification")
		}
	}

	post, err = h.postRepository.GetPostByID(ctx, postID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	resolver := newUserResolver(h.userRepository)
	return c.JSON(http.StatusCreated, h.enrichPost(resolver, *post))
}

// UpdatePost edits a post. Author-only; empty fields are left unchanged.
func (h *PostHandler) UpdatePost(c echo.Context) error {
	viewerID := currentUserID(c)
	postID := c.Param("postId")
	ctx := c.Request().Context()

	var req models.UpdatePostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	post, err := h.postRepository.GetPostByID(ctx, postID)
	if err != nil {
		if err == repositories.ErrPostNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "Post not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if post.AuthorID != viewerID {
		return echo.NewHTTPError(http.StatusForbidden, "Not authorized")
	}

	if req.Content != "" {
		post.Content = req.Content
	}
	if req.Image != "" {
		post.Image = req.Image
	}
	if req.Video != "" {
		post.Video = req.Video
	}

	if err := h.postRepository.UpdatePost(ctx, postID, post); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	resolver := newUserResolver(h.userRepository)
	return c.JSON(http.StatusOK, h.enrichPost(resolver, *post))
}

// DeletePost deletes a post. Author-only.
func (h *PostHandler) DeletePost(c echo.Context) error {
	viewerID := currentUserID(c)
	postID := c.Param("postId")
	ctx := c.Request().Context()

	post, err := h.postRepository.GetPostByID(ctx, postID)
	if err != nil {
		if err == repositories.ErrPostNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "Post not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if post.AuthorID != viewerID {
		return echo.NewHTTPError(http.StatusForbidden, "Not authorized")
	}

	if err := h.postRepository.DeletePost(ctx, postID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "Post deleted"})
}
