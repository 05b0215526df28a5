package admin

import (
	"context"
	"testing"
	"time"

	"github.com/kgahlisomanunu-byte/TerraLearn/internal/models"

	"github.com/google/uuid"
)

type nopLog struct{}

func (nopLog) Debug(string, ...interface{})           {}
func (nopLog) Info(string, ...interface{})            {}
func (nopLog) Warn(string, ...interface{})            {}
func (nopLog) Error(string, ...interface{})           {}
func (nopLog) ErrorErr(string, error, ...interface{}) {}
func (nopLog) Fatal(string, ...interface{})           {}
func (nopLog) FatalErr(string, error, ...interface{}) {}

type fakeUserRepo struct {
	total   int
	active  int
	deleted []uuid.UUID
}

func (f *fakeUserRepo) CountUsers(_ context.Context, activeOnly bool) (int, error) {
	if activeOnly {
		return f.active, nil
	}
	return f.total, nil
}

func (f *fakeUserRepo) DeleteUser(_ context.Context, id uuid.UUID) error {
	f.deleted = append(f.deleted, id)
	return nil
}

type fakeLessonRepo struct {
	lessons []models.Lesson
}

func (f *fakeLessonRepo) AllLessons(context.Context) ([]models.Lesson, error) {
	return f.lessons, nil
}

type fakeQuizRepo struct {
	count int
}

func (f *fakeQuizRepo) CountQuizzes(context.Context) (int, error) {
	return f.count, nil
}

type fakeProgressRepo struct {
	attempts []models.Progress
}

func (f *fakeProgressRepo) QuizRecordsSince(context.Context, time.Time) ([]models.Progress, error) {
	return f.attempts, nil
}

type fakeGeoRepo struct {
	points []models.GeoPoint
}

func (f *fakeGeoRepo) AllGeoPoints(context.Context) ([]models.GeoPoint, error) {
	return f.points, nil
}

func quizAttempt(score float64) models.Progress {
	quizID := uuid.New()
	return models.Progress{ID: uuid.New(), UserID: uuid.New(), QuizID: &quizID, Score: score}
}

func TestDashboardStats(t *testing.T) {
	uRepo := &fakeUserRepo{total: 10, active: 8}
	lRepo := &fakeLessonRepo{lessons: []models.Lesson{
		{Difficulty: models.DifficultyBeginner, IsPublished: true},
		{Difficulty: models.DifficultyBeginner},
		{Difficulty: models.DifficultyAdvanced, IsPublished: true},
	}}
	qRepo := &fakeQuizRepo{count: 4}
	pRepo := &fakeProgressRepo{attempts: []models.Progress{
		quizAttempt(90),
		quizAttempt(70),
		quizAttempt(50),
		quizAttempt(30),
	}}
	gRepo := &fakeGeoRepo{points: []models.GeoPoint{
		{Type: models.GeoTypeLandmark},
		{Type: models.GeoTypeLandmark},
		{Type: models.GeoTypeTerrain},
	}}

	svc := NewAdminService(nopLog{}, uRepo, lRepo, qRepo, pRepo, gRepo)
	dashboard, err := svc.DashboardStats(context.Background())
	if err != nil {
		t.Fatalf("DashboardStats() error = %v", err)
	}

	if dashboard.TotalUsers != 10 || dashboard.ActiveUsers != 8 {
		t.Errorf("users = %d/%d, want 8/10 active", dashboard.ActiveUsers, dashboard.TotalUsers)
	}
	if dashboard.TotalLessons != 3 || dashboard.PublishedLessons != 2 {
		t.Errorf("lessons = %d published of %d", dashboard.PublishedLessons, dashboard.TotalLessons)
	}
	if dashboard.LessonsByDifficulty[models.DifficultyBeginner] != 2 {
		t.Errorf("beginner lessons = %d, want 2", dashboard.LessonsByDifficulty[models.DifficultyBeginner])
	}
	if dashboard.TotalQuizzes != 4 {
		t.Errorf("TotalQuizzes = %d, want 4", dashboard.TotalQuizzes)
	}
	if dashboard.TotalGeoPoints != 3 || dashboard.GeoPointsByType[models.GeoTypeLandmark] != 2 {
		t.Errorf("geo points = %d, landmarks = %d", dashboard.TotalGeoPoints, dashboard.GeoPointsByType[models.GeoTypeLandmark])
	}
	if dashboard.QuizAttempts != 4 {
		t.Errorf("QuizAttempts = %d, want 4", dashboard.QuizAttempts)
	}
	if dashboard.AverageQuizScore != 60 {
		t.Errorf("AverageQuizScore = %v, want 60", dashboard.AverageQuizScore)
	}
	// Attempts at 90 and 70 clear the platform indicator.
	if dashboard.PlatformPassRate != 50 {
		t.Errorf("PlatformPassRate = %v, want 50", dashboard.PlatformPassRate)
	}
}

func TestDashboardStatsEmptyPlatform(t *testing.T) {
	svc := NewAdminService(nopLog{}, &fakeUserRepo{}, &fakeLessonRepo{}, &fakeQuizRepo{}, &fakeProgressRepo{}, &fakeGeoRepo{})

	dashboard, err := svc.DashboardStats(context.Background())
	if err != nil {
		t.Fatalf("DashboardStats() error = %v", err)
	}
	if dashboard.AverageQuizScore != 0 || dashboard.PlatformPassRate != 0 {
		t.Errorf("empty platform rates = %v/%v, want 0/0", dashboard.AverageQuizScore, dashboard.PlatformPassRate)
	}
}
