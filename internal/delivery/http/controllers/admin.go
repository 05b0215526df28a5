package controllers

import (
	"context"
	"net/http"

	"github.com/kgahlisomanunu-byte/TerraLearn/internal/service/admin"
	"github.com/kgahlisomanunu-byte/TerraLearn/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AdminService interface {
	DashboardStats(ctx context.Context) (*admin.Dashboard, error)
	DeleteUser(ctx context.Context, id uuid.UUID) error
}

type AdminHandler struct {
	log     logger.Log
	service AdminService
}

func NewAdminHandler(l logger.Log, s AdminService) *AdminHandler {
	return &AdminHandler{
		log:     l,
		service: s,
	}
}

func (h *AdminHandler) Dashboard(c *gin.Context) {
	dashboard, err := h.service.DashboardStats(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, dashboard)
}

func (h *AdminHandler) DeleteUser(c *gin.Context) {
	id, ok := parseIDParam(c, "user_id")
	if !ok {
		return
	}

	if err := h.service.DeleteUser(c.Request.Context(), id); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{})
}
