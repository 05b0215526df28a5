package controllers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/kgahlisomanunu-byte/TerraLearn/internal/delivery/http/controllers/middleware"
	"github.com/kgahlisomanunu-byte/TerraLearn/internal/models"
	"github.com/kgahlisomanunu-byte/TerraLearn/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type LessonService interface {
	CreateLesson(ctx context.Context, lesson models.Lesson, createdBy uuid.UUID) (*models.Lesson, error)
	UpdateLesson(ctx context.Context, lesson models.Lesson, actor *models.User) (*models.Lesson, error)
	DeleteLesson(ctx context.Context, id uuid.UUID, actor *models.User) error
	LessonByID(ctx context.Context, id uuid.UUID, actor *models.User) (*models.Lesson, error)
	ListLessons(ctx context.Context, filter models.LessonFilter, actor *models.User) ([]models.Lesson, int, error)
	SetPublished(ctx context.Context, id uuid.UUID, published bool, actor *models.User) (*models.Lesson, error)
	CompleteLesson(ctx context.Context, userID, lessonID uuid.UUID, timeSpent int) (*models.Progress, error)
	Search(ctx context.Context, query string, size int) ([]models.Lesson, error)
	RecommendedLessons(ctx context.Context, userID uuid.UUID, limit int) ([]models.Lesson, error)
}

type LessonHandler struct {
	log     logger.Log
	service LessonService
}

func NewLessonHandler(l logger.Log, s LessonService) *LessonHandler {
	return &LessonHandler{
		log:     l,
		service: s,
	}
}

type lessonRequest struct {
	Title       string   `json:"title" binding:"required"`
	Description string   `json:"description"`
	Content     string   `json:"content" binding:"required"`
	GradeLevel  string   `json:"grade_level"`
	Subject     string   `json:"subject"`
	Duration    int      `json:"duration"`
	Topics      []string `json:"topics"`
	Difficulty  string   `json:"difficulty"`
	IsPublished bool     `json:"is_published"`
	Order       int      `json:"order"`
}

func (r lessonRequest) toModel() models.Lesson {
	return models.Lesson{
		Title:       r.Title,
		Description: r.Description,
		Content:     r.Content,
		GradeLevel:  r.GradeLevel,
		Subject:     r.Subject,
		Duration:    r.Duration,
		Topics:      r.Topics,
		Difficulty:  r.Difficulty,
		IsPublished: r.IsPublished,
		Order:       r.Order,
	}
}

func (h *LessonHandler) CreateLesson(c *gin.Context) {
	var input lessonRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	user, ok := currentUser(c)
	if !ok {
		return
	}

	created, err := h.service.CreateLesson(c.Request.Context(), input.toModel(), user.ID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *LessonHandler) UpdateLesson(c *gin.Context) {
	id, ok := parseIDParam(c, "lesson_id")
	if !ok {
		return
	}
	var input lessonRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	user, ok := currentUser(c)
	if !ok {
		return
	}

	lesson := input.toModel()
	lesson.ID = id
	updated, err := h.service.UpdateLesson(c.Request.Context(), lesson, user)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *LessonHandler) DeleteLesson(c *gin.Context) {
	id, ok := parseIDParam(c, "lesson_id")
	if !ok {
		return
	}
	user, ok := currentUser(c)
	if !ok {
		return
	}

	if err := h.service.DeleteLesson(c.Request.Context(), id, user); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{})
}

func (h *LessonHandler) LessonByID(c *gin.Context) {
	id, ok := parseIDParam(c, "lesson_id")
	if !ok {
		return
	}
	user, _ := middleware.UserFromCtx(c)

	lesson, err := h.service.LessonByID(c.Request.Context(), id, user)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, lesson)
}

func (h *LessonHandler) ListLessons(c *gin.Context) {
	filter := models.LessonFilter{
		GradeLevel: c.Query("grade_level"),
		Difficulty: c.Query("difficulty"),
		Topic:      c.Query("topic"),
		Limit:      queryInt(c, "limit", 10),
		Offset:     queryInt(c, "offset", 0),
	}
	user, _ := middleware.UserFromCtx(c)

	lessons, total, err := h.service.ListLessons(c.Request.Context(), filter, user)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"lessons": lessons, "total": total})
}

type publishRequest struct {
	IsPublished *bool `json:"is_published" binding:"required"`
}

func (h *LessonHandler) PublishLesson(c *gin.Context) {
	id, ok := parseIDParam(c, "lesson_id")
	if !ok {
		return
	}
	var input publishRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	user, ok := currentUser(c)
	if !ok {
		return
	}

	updated, err := h.service.SetPublished(c.Request.Context(), id, *input.IsPublished, user)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

type completeLessonRequest struct {
	TimeSpent int `json:"time_spent"`
}

func (h *LessonHandler) CompleteLesson(c *gin.Context) {
	id, ok := parseIDParam(c, "lesson_id")
	if !ok {
		return
	}
	var input completeLessonRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	user, ok := currentUser(c)
	if !ok {
		return
	}

	record, err := h.service.CompleteLesson(c.Request.Context(), user.ID, id, input.TimeSpent)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, record)
}

func (h *LessonHandler) SearchLessons(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "q is required"})
		return
	}

	lessons, err := h.service.Search(c.Request.Context(), query, queryInt(c, "limit", 10))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"lessons": lessons})
}

func (h *LessonHandler) RecommendedLessons(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	lessons, err := h.service.RecommendedLessons(c.Request.Context(), user.ID, queryInt(c, "limit", 0))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"lessons": lessons})
}

func queryInt(c *gin.Context, name string, fallback int) int {
	raw := c.Query(name)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}
