package handlers

import (
	"github.com/labstack/echo/v4"
	"github.com/vantora-labs/vantora/backend/internal/models"
	"github.com/vantora-labs/vantora/backend/internal/repositories"
)

// currentClaims returns the JWT claims stored by the auth middleware
func currentClaims(c echo.Context) *models.JwtCustomClaims {
	claims, _ := c.Get("user").(*models.JwtCustomClaims)
	return claims
}

// currentUserID returns the acting account id, or 0 on unauthenticated routes
func currentUserID(c echo.Context) uint {
	if claims := currentClaims(c); claims != nil {
		return claims.UserID
	}
	return 0
}

// userResolver caches compact user lookups while enriching a response, so a
// feed with one prolific author costs one query, not one per post.
type userResolver struct {
	repo  repositories.UserRepository
	cache map[uint]models.UserCompact
}

func newUserResolver(repo repositories.UserRepository) *userResolver {
	return &userResolver{
		repo:  repo,
		cache: make(map[uint]models.UserCompact),
	}
}

func (r *userResolver) compact(id uint) models.UserCompact {
	if compact, ok := r.cache[id]; ok {
		return compact
	}
	compact := models.UserCompact{ID: id}
	if user, err := r.repo.GetUserByID(id); err == nil {
		compact = user.ToCompact()
	}
	r.cache[id] = compact
	return compact
}
