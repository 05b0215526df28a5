package controllers

import (
	"errors"
	"net/http"

	"github.com/kgahlisomanunu-byte/TerraLearn/internal/app_errors"
	"github.com/kgahlisomanunu-byte/TerraLearn/internal/delivery/http/controllers/middleware"
	"github.com/kgahlisomanunu-byte/TerraLearn/internal/models"
	"github.com/kgahlisomanunu-byte/TerraLearn/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// respondError translates service errors into HTTP responses. Unmapped
// errors become 500 and are logged, mapped ones pass the sentinel text
// through to the client.
func respondError(c *gin.Context, log logger.Log, err error) {
	var validationErr *app_errors.ValidationError
	if errors.As(err, &validationErr) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":  "validation failed",
			"fields": validationErr.Fields,
		})
		return
	}

	switch {
	case app_errors.IsNotFound(err), errors.Is(err, app_errors.ErrTokenNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, app_errors.ErrNotOwner):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, app_errors.ErrIncorrectPassword), errors.Is(err, app_errors.ErrTokenExpired):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, app_errors.ErrAttemptsExhausted):
		c.JSON(http.StatusTooManyRequests, gin.H{"error": err.Error()})
	case errors.Is(err, app_errors.ErrUserExists),
		errors.Is(err, app_errors.ErrAttemptConflict),
		errors.Is(err, app_errors.ErrLessonInUse),
		errors.Is(err, app_errors.ErrQuizInUse):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, app_errors.ErrStoreUnavailable):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
	default:
		log.ErrorErr("unhandled request error", err, "path", c.Request.URL.Path)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

// currentUser pulls the authenticated user out of the request context,
// responding 401 itself when the middleware did not run.
func currentUser(c *gin.Context) (*models.User, bool) {
	user, ok := middleware.UserFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return nil, false
	}
	return user, true
}

func parseIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	raw, ok := c.Params.Get(name)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": name + " is required"})
		return uuid.Nil, false
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return uuid.Nil, false
	}
	return id, true
}
