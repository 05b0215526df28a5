package controllers

import (
	"context"
	"net/http"

	"github.com/kgahlisomanunu-byte/TerraLearn/internal/models"
	"github.com/kgahlisomanunu-byte/TerraLearn/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type NotificationService interface {
	List(ctx context.Context, userID uuid.UUID, unreadOnly bool, limit int) ([]models.Notification, error)
	MarkRead(ctx context.Context, userID, id uuid.UUID) error
	MarkAllRead(ctx context.Context, userID uuid.UUID) error
}

type NotificationHandler struct {
	log     logger.Log
	service NotificationService
}

func NewNotificationHandler(l logger.Log, s NotificationService) *NotificationHandler {
	return &NotificationHandler{
		log:     l,
		service: s,
	}
}

func (h *NotificationHandler) List(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	notifications, err := h.service.List(
		c.Request.Context(),
		user.ID,
		c.Query("unread") == "true",
		queryInt(c, "limit", 20),
	)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"notifications": notifications})
}

func (h *NotificationHandler) MarkRead(c *gin.Context) {
	id, ok := parseIDParam(c, "notification_id")
	if !ok {
		return
	}
	user, ok := currentUser(c)
	if !ok {
		return
	}

	if err := h.service.MarkRead(c.Request.Context(), user.ID, id); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{})
}

func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	if err := h.service.MarkAllRead(c.Request.Context(), user.ID); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{})
}
