package controllers

import (
	"context"
	"net/http"

	"github.com/kgahlisomanunu-byte/TerraLearn/internal/models"
	"github.com/kgahlisomanunu-byte/TerraLearn/internal/service/progress"
	"github.com/kgahlisomanunu-byte/TerraLearn/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ProgressService interface {
	UserProgress(ctx context.Context, userID uuid.UUID, filter models.ProgressFilter) ([]models.Progress, int, *models.OverallStats, error)
	UserOverview(ctx context.Context, userID uuid.UUID, days int) (*progress.Overview, error)
	Leaderboard(ctx context.Context, timeframe string, limit int) ([]models.LeaderboardEntry, error)
	ExportCSV(ctx context.Context, userID uuid.UUID) ([]byte, error)
}

type ProgressHandler struct {
	log     logger.Log
	service ProgressService
}

func NewProgressHandler(l logger.Log, s ProgressService) *ProgressHandler {
	return &ProgressHandler{
		log:     l,
		service: s,
	}
}

func (h *ProgressHandler) UserProgress(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	filter := models.ProgressFilter{
		Type:   c.Query("type"),
		Limit:  queryInt(c, "limit", 20),
		Offset: queryInt(c, "offset", 0),
	}

	records, total, stats, err := h.service.UserProgress(c.Request.Context(), user.ID, filter)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"progress": records,
		"total":    total,
		"stats":    stats,
	})
}

func (h *ProgressHandler) Overview(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	overview, err := h.service.UserOverview(c.Request.Context(), user.ID, queryInt(c, "days", 30))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, overview)
}

func (h *ProgressHandler) Leaderboard(c *gin.Context) {
	entries, err := h.service.Leaderboard(c.Request.Context(), c.Query("timeframe"), queryInt(c, "limit", 20))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"leaderboard": entries})
}

func (h *ProgressHandler) Export(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	data, err := h.service.ExportCSV(c.Request.Context(), user.ID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="progress.csv"`)
	c.Data(http.StatusOK, "text/csv", data)
}
