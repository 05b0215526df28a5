package controllers

import (
	"context"
	"net/http"

	"github.com/kgahlisomanunu-byte/TerraLearn/internal/delivery/http/controllers/middleware"
	"github.com/kgahlisomanunu-byte/TerraLearn/internal/models"
	"github.com/kgahlisomanunu-byte/TerraLearn/internal/service/quiz"
	"github.com/kgahlisomanunu-byte/TerraLearn/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type QuizService interface {
	CreateQuiz(ctx context.Context, q models.Quiz, createdBy uuid.UUID) (*models.Quiz, error)
	UpdateQuiz(ctx context.Context, q models.Quiz, actor *models.User) (*models.Quiz, error)
	DeleteQuiz(ctx context.Context, id uuid.UUID, actor *models.User) error
	QuizByID(ctx context.Context, id uuid.UUID, actor *models.User) (*models.Quiz, error)
	ListQuizzes(ctx context.Context, limit, offset int) ([]models.Quiz, int, error)
	QuizzesByLesson(ctx context.Context, lessonID uuid.UUID, actor *models.User) ([]models.Quiz, error)
	SubmitQuiz(ctx context.Context, userID, quizID uuid.UUID, answers []models.SubmittedAnswer, timeSpent int) (*quiz.SubmitResult, error)
	QuizResults(ctx context.Context, userID, quizID uuid.UUID) (*models.Quiz, []models.Progress, *models.QuizAnalytics, error)
}

type QuizHandler struct {
	log     logger.Log
	service QuizService
}

func NewQuizHandler(l logger.Log, s QuizService) *QuizHandler {
	return &QuizHandler{
		log:     l,
		service: s,
	}
}

type quizRequest struct {
	LessonID     uuid.UUID         `json:"lesson_id" binding:"required"`
	Title        string            `json:"title" binding:"required"`
	Description  string            `json:"description"`
	Questions    []models.Question `json:"questions" binding:"required"`
	TimeLimit    int               `json:"time_limit"`
	PassingScore float64           `json:"passing_score"`
	MaxAttempts  int               `json:"max_attempts"`
	IsActive     *bool             `json:"is_active"`
}

func (r quizRequest) toModel() models.Quiz {
	q := models.Quiz{
		LessonID:     r.LessonID,
		Title:        r.Title,
		Description:  r.Description,
		Questions:    r.Questions,
		TimeLimit:    r.TimeLimit,
		PassingScore: r.PassingScore,
		MaxAttempts:  r.MaxAttempts,
		IsActive:     true,
	}
	if r.IsActive != nil {
		q.IsActive = *r.IsActive
	}
	return q
}

func (h *QuizHandler) CreateQuiz(c *gin.Context) {
	var input quizRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	user, ok := currentUser(c)
	if !ok {
		return
	}

	created, err := h.service.CreateQuiz(c.Request.Context(), input.toModel(), user.ID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *QuizHandler) UpdateQuiz(c *gin.Context) {
	id, ok := parseIDParam(c, "quiz_id")
	if !ok {
		return
	}
	var input quizRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	user, ok := currentUser(c)
	if !ok {
		return
	}

	q := input.toModel()
	q.ID = id
	updated, err := h.service.UpdateQuiz(c.Request.Context(), q, user)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *QuizHandler) DeleteQuiz(c *gin.Context) {
	id, ok := parseIDParam(c, "quiz_id")
	if !ok {
		return
	}
	user, ok := currentUser(c)
	if !ok {
		return
	}

	if err := h.service.DeleteQuiz(c.Request.Context(), id, user); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{})
}

func (h *QuizHandler) QuizByID(c *gin.Context) {
	id, ok := parseIDParam(c, "quiz_id")
	if !ok {
		return
	}
	user, _ := middleware.UserFromCtx(c)

	q, err := h.service.QuizByID(c.Request.Context(), id, user)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, q)
}

func (h *QuizHandler) ListQuizzes(c *gin.Context) {
	quizzes, total, err := h.service.ListQuizzes(c.Request.Context(), queryInt(c, "limit", 10), queryInt(c, "offset", 0))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"quizzes": quizzes, "total": total})
}

func (h *QuizHandler) QuizzesByLesson(c *gin.Context) {
	lessonID, ok := parseIDParam(c, "lesson_id")
	if !ok {
		return
	}
	user, _ := middleware.UserFromCtx(c)

	quizzes, err := h.service.QuizzesByLesson(c.Request.Context(), lessonID, user)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"quizzes": quizzes})
}

type submitQuizRequest struct {
	Answers   []models.SubmittedAnswer `json:"answers" binding:"required"`
	TimeSpent int                      `json:"time_spent"`
}

func (h *QuizHandler) SubmitQuiz(c *gin.Context) {
	id, ok := parseIDParam(c, "quiz_id")
	if !ok {
		return
	}
	var input submitQuizRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	user, ok := currentUser(c)
	if !ok {
		return
	}

	result, err := h.service.SubmitQuiz(c.Request.Context(), user.ID, id, input.Answers, input.TimeSpent)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *QuizHandler) QuizResults(c *gin.Context) {
	id, ok := parseIDParam(c, "quiz_id")
	if !ok {
		return
	}
	user, ok := currentUser(c)
	if !ok {
		return
	}

	q, attempts, analytics, err := h.service.QuizResults(c.Request.Context(), user.ID, id)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"quiz":      gin.H{"id": q.ID, "title": q.Title, "passing_score": q.PassingScore, "max_attempts": q.MaxAttempts},
		"attempts":  attempts,
		"analytics": analytics,
	})
}
