package admin

import (
	"context"
	"math"
	"time"

	"github.com/kgahlisomanunu-byte/TerraLearn/internal/models"
	"github.com/kgahlisomanunu-byte/TerraLearn/pkg/logger"

	"github.com/google/uuid"
)

const platformPassingScore = 70

type userRepo interface {
	CountUsers(ctx context.Context, activeOnly bool) (int, error)
	DeleteUser(ctx context.Context, id uuid.UUID) error
}

type lessonRepo interface {
	AllLessons(ctx context.Context) ([]models.Lesson, error)
}

type quizRepo interface {
	CountQuizzes(ctx context.Context) (int, error)
}

type progressRepo interface {
	QuizRecordsSince(ctx context.Context, since time.Time) ([]models.Progress, error)
}

type geoRepo interface {
	AllGeoPoints(ctx context.Context) ([]models.GeoPoint, error)
}

type AdminService struct {
	log          logger.Log
	userRepo     userRepo
	lessonRepo   lessonRepo
	quizRepo     quizRepo
	progressRepo progressRepo
	geoRepo      geoRepo
}

func NewAdminService(l logger.Log, uRepo userRepo, lRepo lessonRepo, qRepo quizRepo, pRepo progressRepo, gRepo geoRepo) *AdminService {
	return &AdminService{
		log:          l,
		userRepo:     uRepo,
		lessonRepo:   lRepo,
		quizRepo:     qRepo,
		progressRepo: pRepo,
		geoRepo:      gRepo,
	}
}

// Dashboard is the platform-wide snapshot shown on the admin landing page.
type Dashboard struct {
	TotalUsers          int            `json:"total_users"`
	ActiveUsers         int            `json:"active_users"`
	TotalLessons        int            `json:"total_lessons"`
	PublishedLessons    int            `json:"published_lessons"`
	LessonsByDifficulty map[string]int `json:"lessons_by_difficulty"`
	TotalQuizzes        int            `json:"total_quizzes"`
	TotalGeoPoints      int            `json:"total_geo_points"`
	GeoPointsByType     map[string]int `json:"geo_points_by_type"`
	QuizAttempts        int            `json:"quiz_attempts"`
	AverageQuizScore    float64        `json:"average_quiz_score"`
	PlatformPassRate    float64        `json:"platform_pass_rate"`
}

// DashboardStats assembles the platform snapshot. The pass rate counts
// attempts at or above the platform indicator score, independent of any
// per-quiz passing score.
func (s *AdminService) DashboardStats(ctx context.Context) (*Dashboard, error) {
	dashboard := &Dashboard{
		LessonsByDifficulty: make(map[string]int),
		GeoPointsByType:     make(map[string]int),
	}

	var err error
	if dashboard.TotalUsers, err = s.userRepo.CountUsers(ctx, false); err != nil {
		return nil, err
	}
	if dashboard.ActiveUsers, err = s.userRepo.CountUsers(ctx, true); err != nil {
		return nil, err
	}
	if dashboard.TotalQuizzes, err = s.quizRepo.CountQuizzes(ctx); err != nil {
		return nil, err
	}

	lessons, err := s.lessonRepo.AllLessons(ctx)
	if err != nil {
		return nil, err
	}
	dashboard.TotalLessons = len(lessons)
	for _, lesson := range lessons {
		if lesson.IsPublished {
			dashboard.PublishedLessons++
		}
		dashboard.LessonsByDifficulty[lesson.Difficulty]++
	}

	points, err := s.geoRepo.AllGeoPoints(ctx)
	if err != nil {
		return nil, err
	}
	dashboard.TotalGeoPoints = len(points)
	for _, point := range points {
		dashboard.GeoPointsByType[point.Type]++
	}

	attempts, err := s.progressRepo.QuizRecordsSince(ctx, time.Time{})
	if err != nil {
		return nil, err
	}
	dashboard.QuizAttempts = len(attempts)
	if len(attempts) > 0 {
		scoreSum := 0.0
		passing := 0
		for _, a := range attempts {
			scoreSum += a.Score
			if a.Score >= platformPassingScore {
				passing++
			}
		}
		dashboard.AverageQuizScore = round2(scoreSum / float64(len(attempts)))
		dashboard.PlatformPassRate = round2(float64(passing) / float64(len(attempts)) * 100)
	}

	return dashboard, nil
}

// DeleteUser removes a user and everything they own.
func (s *AdminService) DeleteUser(ctx context.Context, id uuid.UUID) error {
	return s.userRepo.DeleteUser(ctx, id)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
