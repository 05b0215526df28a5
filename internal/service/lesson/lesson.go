package lesson

import (
	"context"
	"time"

	"github.com/kgahlisomanunu-byte/TerraLearn/internal/app_errors"
	"github.com/kgahlisomanunu-byte/TerraLearn/internal/models"
	"github.com/kgahlisomanunu-byte/TerraLearn/internal/validation"
	"github.com/kgahlisomanunu-byte/TerraLearn/pkg/logger"

	"github.com/google/uuid"
)

const defaultRecommendations = 5

type lessonRepo interface {
	CreateLesson(ctx context.Context, lesson models.Lesson) (*models.Lesson, error)
	LessonByID(ctx context.Context, id uuid.UUID) (*models.Lesson, error)
	UpdateLesson(ctx context.Context, lesson models.Lesson) (*models.Lesson, error)
	DeleteLesson(ctx context.Context, id uuid.UUID) error
	ListLessons(ctx context.Context, filter models.LessonFilter) ([]models.Lesson, int, error)
	PublishedLessonsExcluding(ctx context.Context, exclude []uuid.UUID) ([]models.Lesson, error)
	LessonsByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]models.Lesson, error)
}

type progressRepo interface {
	Create(ctx context.Context, p models.Progress) (*models.Progress, error)
	ByUserLesson(ctx context.Context, userID, lessonID uuid.UUID) (*models.Progress, error)
	SetCompleted(ctx context.Context, id uuid.UUID, at time.Time) (*models.Progress, error)
	AllByUser(ctx context.Context, userID uuid.UUID) ([]models.Progress, error)
	HasProgressForLesson(ctx context.Context, lessonID uuid.UUID) (bool, error)
}

type quizRepo interface {
	HasQuizzesForLesson(ctx context.Context, lessonID uuid.UUID) (bool, error)
}

type searchRepo interface {
	Index(ctx context.Context, lesson models.Lesson) error
	Delete(ctx context.Context, id uuid.UUID) error
	Search(ctx context.Context, query string, size int) ([]uuid.UUID, error)
}

type notifier interface {
	LessonCompleted(ctx context.Context, userID uuid.UUID, lesson *models.Lesson) error
}

type LessonService struct {
	log          logger.Log
	lessonRepo   lessonRepo
	progressRepo progressRepo
	quizRepo     quizRepo
	searchRepo   searchRepo
	notifier     notifier
}

func NewLessonService(l logger.Log, lRepo lessonRepo, pRepo progressRepo, qRepo quizRepo, sRepo searchRepo, n notifier) *LessonService {
	return &LessonService{
		log:          l,
		lessonRepo:   lRepo,
		progressRepo: pRepo,
		quizRepo:     qRepo,
		searchRepo:   sRepo,
		notifier:     n,
	}
}

func (s *LessonService) CreateLesson(ctx context.Context, lesson models.Lesson, createdBy uuid.UUID) (*models.Lesson, error) {
	if lesson.Difficulty == "" {
		lesson.Difficulty = models.DifficultyBeginner
	}
	if err := validation.ValidateLesson(lesson); err != nil {
		return nil, err
	}
	lesson.CreatedBy = createdBy

	created, err := s.lessonRepo.CreateLesson(ctx, lesson)
	if err != nil {
		return nil, err
	}
	if err := s.searchRepo.Index(ctx, *created); err != nil {
		s.log.ErrorErr("failed to index lesson", err, "lesson_id", created.ID)
	}
	return created, nil
}

func (s *LessonService) UpdateLesson(ctx context.Context, lesson models.Lesson, actor *models.User) (*models.Lesson, error) {
	existing, err := s.lessonRepo.LessonByID(ctx, lesson.ID)
	if err != nil {
		return nil, err
	}
	if actor.Role != models.AdminRole && existing.CreatedBy != actor.ID {
		return nil, app_errors.ErrNotOwner
	}
	if lesson.Difficulty == "" {
		lesson.Difficulty = existing.Difficulty
	}
	if err := validation.ValidateLesson(lesson); err != nil {
		return nil, err
	}
	lesson.CreatedBy = existing.CreatedBy

	updated, err := s.lessonRepo.UpdateLesson(ctx, lesson)
	if err != nil {
		return nil, err
	}
	if err := s.searchRepo.Index(ctx, *updated); err != nil {
		s.log.ErrorErr("failed to reindex lesson", err, "lesson_id", updated.ID)
	}
	return updated, nil
}

// DeleteLesson removes a lesson unless quizzes or progress records still
// reference it.
func (s *LessonService) DeleteLesson(ctx context.Context, id uuid.UUID, actor *models.User) error {
	existing, err := s.lessonRepo.LessonByID(ctx, id)
	if err != nil {
		return err
	}
	if actor.Role != models.AdminRole && existing.CreatedBy != actor.ID {
		return app_errors.ErrNotOwner
	}

	hasQuizzes, err := s.quizRepo.HasQuizzesForLesson(ctx, id)
	if err != nil {
		return err
	}
	if hasQuizzes {
		return app_errors.ErrLessonInUse
	}
	hasProgress, err := s.progressRepo.HasProgressForLesson(ctx, id)
	if err != nil {
		return err
	}
	if hasProgress {
		return app_errors.ErrLessonInUse
	}

	if err := s.lessonRepo.DeleteLesson(ctx, id); err != nil {
		return err
	}
	if err := s.searchRepo.Delete(ctx, id); err != nil {
		s.log.ErrorErr("failed to remove lesson from index", err, "lesson_id", id)
	}
	return nil
}

// LessonByID returns a lesson. Unpublished lessons are visible only to
// admins and the lesson's creator.
func (s *LessonService) LessonByID(ctx context.Context, id uuid.UUID, actor *models.User) (*models.Lesson, error) {
	lesson, err := s.lessonRepo.LessonByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !lesson.IsPublished {
		if actor == nil || (actor.Role != models.AdminRole && lesson.CreatedBy != actor.ID) {
			return nil, app_errors.ErrLessonNotFound
		}
	}
	return lesson, nil
}

func (s *LessonService) ListLessons(ctx context.Context, filter models.LessonFilter, actor *models.User) ([]models.Lesson, int, error) {
	if filter.Limit <= 0 {
		filter.Limit = 10
	}
	if actor == nil || actor.Role == models.LearnerRole {
		filter.PublishedOnly = true
	}
	return s.lessonRepo.ListLessons(ctx, filter)
}

// SetPublished toggles a lesson's visibility to learners.
func (s *LessonService) SetPublished(ctx context.Context, id uuid.UUID, published bool, actor *models.User) (*models.Lesson, error) {
	existing, err := s.lessonRepo.LessonByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if actor.Role != models.AdminRole && existing.CreatedBy != actor.ID {
		return nil, app_errors.ErrNotOwner
	}
	existing.IsPublished = published

	updated, err := s.lessonRepo.UpdateLesson(ctx, *existing)
	if err != nil {
		return nil, err
	}
	if err := s.searchRepo.Index(ctx, *updated); err != nil {
		s.log.ErrorErr("failed to reindex lesson", err, "lesson_id", updated.ID)
	}
	return updated, nil
}

// CompleteLesson records that a user finished a lesson. A second completion
// of the same lesson keeps the original completion time. The completion
// notification is best-effort.
func (s *LessonService) CompleteLesson(ctx context.Context, userID, lessonID uuid.UUID, timeSpent int) (*models.Progress, error) {
	lesson, err := s.lessonRepo.LessonByID(ctx, lessonID)
	if err != nil {
		return nil, err
	}
	if !lesson.IsPublished {
		return nil, app_errors.ErrLessonNotFound
	}

	now := time.Now().UTC()

	existing, err := s.progressRepo.ByUserLesson(ctx, userID, lessonID)
	switch {
	case err == nil:
		if existing.Completed {
			return existing, nil
		}
		completed, err := s.progressRepo.SetCompleted(ctx, existing.ID, now)
		if err != nil {
			return nil, err
		}
		s.notifyCompleted(ctx, userID, lesson)
		return completed, nil
	case app_errors.IsNotFound(err):
		record := models.Progress{
			UserID:      userID,
			LessonID:    &lessonID,
			TimeSpent:   timeSpent,
			Completed:   true,
			StartedAt:   now,
			CompletedAt: &now,
		}
		created, err := s.progressRepo.Create(ctx, record)
		if err != nil {
			return nil, err
		}
		s.notifyCompleted(ctx, userID, lesson)
		return created, nil
	default:
		return nil, err
	}
}

func (s *LessonService) notifyCompleted(ctx context.Context, userID uuid.UUID, lesson *models.Lesson) {
	if err := s.notifier.LessonCompleted(ctx, userID, lesson); err != nil {
		s.log.ErrorErr("failed to send lesson notification", err, "lesson_id", lesson.ID)
	}
}

// Search finds published lessons by full-text query.
func (s *LessonService) Search(ctx context.Context, query string, size int) ([]models.Lesson, error) {
	if size <= 0 {
		size = 10
	}
	ids, err := s.searchRepo.Search(ctx, query, size)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []models.Lesson{}, nil
	}

	byID, err := s.lessonRepo.LessonsByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	lessons := make([]models.Lesson, 0, len(ids))
	for _, id := range ids {
		lesson, ok := byID[id]
		if !ok || !lesson.IsPublished {
			continue
		}
		lessons = append(lessons, lesson)
	}
	return lessons, nil
}

// RecommendedLessons suggests published lessons the user has not seen,
// preferring lessons whose topics or difficulty match the user's history.
// A user with no lesson history gets an empty list.
func (s *LessonService) RecommendedLessons(ctx context.Context, userID uuid.UUID, limit int) ([]models.Lesson, error) {
	if limit <= 0 {
		limit = defaultRecommendations
	}

	records, err := s.progressRepo.AllByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	seen := make([]uuid.UUID, 0, len(records))
	seenIDs := make(map[uuid.UUID]struct{}, len(records))
	for _, r := range records {
		if r.LessonID == nil {
			continue
		}
		if _, ok := seenIDs[*r.LessonID]; ok {
			continue
		}
		seenIDs[*r.LessonID] = struct{}{}
		seen = append(seen, *r.LessonID)
	}
	if len(seen) == 0 {
		return []models.Lesson{}, nil
	}

	history, err := s.lessonRepo.LessonsByIDs(ctx, seen)
	if err != nil {
		return nil, err
	}
	topics := make(map[string]struct{})
	difficulties := make(map[string]struct{})
	for _, lesson := range history {
		for _, topic := range lesson.Topics {
			topics[topic] = struct{}{}
		}
		difficulties[lesson.Difficulty] = struct{}{}
	}

	candidates, err := s.lessonRepo.PublishedLessonsExcluding(ctx, seen)
	if err != nil {
		return nil, err
	}

	recommended := make([]models.Lesson, 0, limit)
	for _, lesson := range candidates {
		if !matchesProfile(lesson, topics, difficulties) {
			continue
		}
		recommended = append(recommended, lesson)
		if len(recommended) == limit {
			break
		}
	}
	return recommended, nil
}

func matchesProfile(lesson models.Lesson, topics, difficulties map[string]struct{}) bool {
	for _, topic := range lesson.Topics {
		if _, ok := topics[topic]; ok {
			return true
		}
	}
	_, ok := difficulties[lesson.Difficulty]
	return ok
}
