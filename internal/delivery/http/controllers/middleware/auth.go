package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/kgahlisomanunu-byte/TerraLearn/internal/app_errors"
	"github.com/kgahlisomanunu-byte/TerraLearn/internal/models"
	"github.com/kgahlisomanunu-byte/TerraLearn/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	CurrentUserCtx = "current_user"
	ClientRoleCtx  = "client_role"
)

type AuthService interface {
	ParseToken(ctx context.Context, token string) (*jwt.Token, error)
	IsAccessToken(ctx context.Context, token *jwt.Token) bool
	AccessClaims(ctx context.Context, token string) (userID uuid.UUID, role string, err error)
	User(ctx context.Context, id uuid.UUID) (*models.User, error)
}

type AuthMiddlewareProvider struct {
	log     logger.Log
	service AuthService
}

func NewAuthMiddlewareProvider(log logger.Log, s AuthService) *AuthMiddlewareProvider {
	return &AuthMiddlewareProvider{
		log:     log,
		service: s,
	}
}

func (h *AuthMiddlewareProvider) AuthMiddleware(c *gin.Context) {
	authHeader := c.GetHeader("Authorization")
	var token string
	if parts := strings.Split(authHeader, "Bearer "); len(parts) == 2 {
		token = parts[1]
	}
	if token == "" {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	parsedToken, err := h.service.ParseToken(c.Request.Context(), token)
	if err != nil {
		if errors.Is(err, app_errors.ErrTokenExpired) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": app_errors.ErrTokenExpired.Error()})
			return
		}
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "cant parse token"})
		return
	}
	if !h.service.IsAccessToken(c.Request.Context(), parsedToken) {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "not access token"})
		return
	}

	userID, role, err := h.service.AccessClaims(c.Request.Context(), token)
	if err != nil {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}
	user, err := h.service.User(c.Request.Context(), userID)
	if err != nil {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}
	if !user.IsActive {
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "account is deactivated"})
		return
	}

	c.Set(CurrentUserCtx, user)
	c.Set(ClientRoleCtx, role)
	c.Next()
}

// OptionalAuthMiddleware resolves the user when a valid token is present
// but lets anonymous requests through untouched.
func (h *AuthMiddlewareProvider) OptionalAuthMiddleware(c *gin.Context) {
	authHeader := c.GetHeader("Authorization")
	var token string
	if parts := strings.Split(authHeader, "Bearer "); len(parts) == 2 {
		token = parts[1]
	}
	if token == "" {
		c.Next()
		return
	}

	parsedToken, err := h.service.ParseToken(c.Request.Context(), token)
	if err != nil || !h.service.IsAccessToken(c.Request.Context(), parsedToken) {
		c.Next()
		return
	}
	userID, role, err := h.service.AccessClaims(c.Request.Context(), token)
	if err != nil {
		c.Next()
		return
	}
	user, err := h.service.User(c.Request.Context(), userID)
	if err != nil || !user.IsActive {
		c.Next()
		return
	}

	c.Set(CurrentUserCtx, user)
	c.Set(ClientRoleCtx, role)
	c.Next()
}

// UserFromCtx returns the authenticated user placed by AuthMiddleware.
func UserFromCtx(c *gin.Context) (*models.User, bool) {
	raw, exists := c.Get(CurrentUserCtx)
	if !exists {
		return nil, false
	}
	user, ok := raw.(*models.User)
	return user, ok
}
