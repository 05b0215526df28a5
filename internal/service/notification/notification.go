package notification

import (
	"context"
	"fmt"

	"github.com/kgahlisomanunu-byte/TerraLearn/internal/models"
	"github.com/kgahlisomanunu-byte/TerraLearn/pkg/logger"

	"github.com/google/uuid"
)

type notificationRepo interface {
	Create(ctx context.Context, n models.Notification) (*models.Notification, error)
	ListByUser(ctx context.Context, userID uuid.UUID, unreadOnly bool, limit int) ([]models.Notification, error)
	MarkRead(ctx context.Context, userID, id uuid.UUID) error
	MarkAllRead(ctx context.Context, userID uuid.UUID) error
}

// NotificationService delivers in-app notifications. Delivery is best-effort:
// callers on the write path ignore its errors so a failed notification never
// fails the operation that triggered it.
type NotificationService struct {
	log  logger.Log
	repo notificationRepo
}

func NewNotificationService(l logger.Log, repo notificationRepo) *NotificationService {
	return &NotificationService{log: l, repo: repo}
}

// QuizGraded notifies a user about a graded quiz attempt.
func (s *NotificationService) QuizGraded(ctx context.Context, userID uuid.UUID, quiz *models.Quiz, score float64, passed bool) error {
	title := "Quiz Attempt Completed"
	message := fmt.Sprintf("You completed the quiz %q with a score of %.1f%%. Keep practicing!", quiz.Title, score)
	if passed {
		title = "Quiz Passed!"
		message = fmt.Sprintf("Congratulations! You passed the quiz %q with a score of %.1f%%", quiz.Title, score)
	}

	quizID := quiz.ID
	_, err := s.repo.Create(ctx, models.Notification{
		UserID:        userID,
		Title:         title,
		Message:       message,
		Type:          models.NotificationTypeQuiz,
		RelatedEntity: "quiz",
		RelatedID:     &quizID,
	})
	return err
}

// LessonCompleted notifies a user about a completed lesson.
func (s *NotificationService) LessonCompleted(ctx context.Context, userID uuid.UUID, lesson *models.Lesson) error {
	lessonID := lesson.ID
	_, err := s.repo.Create(ctx, models.Notification{
		UserID:        userID,
		Title:         "Lesson Completed!",
		Message:       fmt.Sprintf("You've completed the lesson: %s", lesson.Title),
		Type:          models.NotificationTypeLesson,
		RelatedEntity: "lesson",
		RelatedID:     &lessonID,
	})
	return err
}

func (s *NotificationService) List(ctx context.Context, userID uuid.UUID, unreadOnly bool, limit int) ([]models.Notification, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.repo.ListByUser(ctx, userID, unreadOnly, limit)
}

func (s *NotificationService) MarkRead(ctx context.Context, userID, id uuid.UUID) error {
	return s.repo.MarkRead(ctx, userID, id)
}

func (s *NotificationService) MarkAllRead(ctx context.Context, userID uuid.UUID) error {
	return s.repo.MarkAllRead(ctx, userID)
}
