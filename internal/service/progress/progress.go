package progress

import (
	"context"
	"math"
	"sort"
	"time"

	"github.com/kgahlisomanunu-byte/TerraLearn/internal/models"
	"github.com/kgahlisomanunu-byte/TerraLearn/pkg/logger"

	"github.com/google/uuid"
)

const dayFormat = "2006-01-02"

type progressRepo interface {
	ListByUser(ctx context.Context, userID uuid.UUID, filter models.ProgressFilter) ([]models.Progress, int, error)
	AllByUser(ctx context.Context, userID uuid.UUID) ([]models.Progress, error)
	UserRecordsSince(ctx context.Context, userID uuid.UUID, since time.Time) ([]models.Progress, error)
	QuizRecordsSince(ctx context.Context, since time.Time) ([]models.Progress, error)
}

type lessonRepo interface {
	LessonsByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]models.Lesson, error)
}

type quizRepo interface {
	QuizTitles(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]string, error)
}

type userRepo interface {
	UsersByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]models.UserInfo, error)
}

// ProgressService computes all progress aggregates in-process from plain
// record sets, keeping the analytics portable across stores.
type ProgressService struct {
	log          logger.Log
	progressRepo progressRepo
	lessonRepo   lessonRepo
	quizRepo     quizRepo
	userRepo     userRepo
}

func NewProgressService(l logger.Log, pRepo progressRepo, lRepo lessonRepo, qRepo quizRepo, uRepo userRepo) *ProgressService {
	return &ProgressService{
		log:          l,
		progressRepo: pRepo,
		lessonRepo:   lRepo,
		quizRepo:     qRepo,
		userRepo:     uRepo,
	}
}

// UserProgress returns a page of a user's progress records plus their
// all-time stats computed over the full history.
func (s *ProgressService) UserProgress(ctx context.Context, userID uuid.UUID, filter models.ProgressFilter) ([]models.Progress, int, *models.OverallStats, error) {
	if filter.Limit <= 0 {
		filter.Limit = 20
	}
	records, total, err := s.progressRepo.ListByUser(ctx, userID, filter)
	if err != nil {
		return nil, 0, nil, err
	}

	all, err := s.progressRepo.AllByUser(ctx, userID)
	if err != nil {
		return nil, 0, nil, err
	}

	return records, total, overallStats(all), nil
}

func overallStats(records []models.Progress) *models.OverallStats {
	stats := &models.OverallStats{}
	scoreSum := 0.0
	quizCount := 0
	for _, r := range records {
		switch {
		case r.LessonID != nil:
			stats.TotalLessons++
			if r.Completed {
				stats.CompletedLessons++
			}
		case r.QuizID != nil:
			stats.TotalQuizzes++
			if r.Passed {
				stats.PassedQuizzes++
			}
			scoreSum += r.Score
			quizCount++
		}
	}
	if quizCount > 0 {
		stats.AverageScore = round2(scoreSum / float64(quizCount))
	}
	return stats
}

// Overview is the user's activity summary over a recent window.
type Overview struct {
	Days         int                     `json:"days"`
	Stats        models.OverallStats     `json:"stats"`
	Timeline     []models.TimelineBucket `json:"timeline"`
	TopicMastery []models.TopicMastery   `json:"topic_mastery"`
	Heatmap      []models.HeatmapCell    `json:"heatmap"`
}

// UserOverview aggregates a user's recent records into a daily timeline,
// per-topic mastery and an hour-by-weekday activity heatmap. The window
// defaults to 30 days.
func (s *ProgressService) UserOverview(ctx context.Context, userID uuid.UUID, days int) (*Overview, error) {
	if days <= 0 {
		days = 30
	}
	since := time.Now().UTC().AddDate(0, 0, -days)

	records, err := s.progressRepo.UserRecordsSince(ctx, userID, since)
	if err != nil {
		return nil, err
	}

	mastery, err := s.topicMastery(ctx, records)
	if err != nil {
		return nil, err
	}

	return &Overview{
		Days:         days,
		Stats:        *overallStats(records),
		Timeline:     timeline(records),
		TopicMastery: mastery,
		Heatmap:      heatmap(records),
	}, nil
}

// timeline buckets records by UTC calendar day of creation, oldest first.
// Creation time keeps the buckets consistent with the created_at fetch
// window even when a record is completed later.
func timeline(records []models.Progress) []models.TimelineBucket {
	type acc struct {
		bucket   models.TimelineBucket
		scoreSum float64
		quizzes  int
	}
	byDay := make(map[string]*acc)

	for _, r := range records {
		day := r.CreatedAt.UTC().Format(dayFormat)
		a, ok := byDay[day]
		if !ok {
			a = &acc{bucket: models.TimelineBucket{Date: day}}
			byDay[day] = a
		}
		switch {
		case r.LessonID != nil && r.Completed:
			a.bucket.LessonsCompleted++
		case r.QuizID != nil:
			a.bucket.QuizzesAttempted++
			if r.Passed {
				a.bucket.QuizzesPassed++
			}
			a.scoreSum += r.Score
			a.quizzes++
		}
	}

	buckets := make([]models.TimelineBucket, 0, len(byDay))
	for _, a := range byDay {
		if a.quizzes > 0 {
			a.bucket.AverageScore = round2(a.scoreSum / float64(a.quizzes))
		}
		buckets = append(buckets, a.bucket)
	}
	sort.Slice(buckets, func(i, j int) bool { return buckets[i].Date < buckets[j].Date })
	return buckets
}

// topicMastery joins lesson records against their lessons and computes the
// completed share per topic. Topics without records are omitted.
func (s *ProgressService) topicMastery(ctx context.Context, records []models.Progress) ([]models.TopicMastery, error) {
	ids := make([]uuid.UUID, 0, len(records))
	idSet := make(map[uuid.UUID]struct{}, len(records))
	for _, r := range records {
		if r.LessonID == nil {
			continue
		}
		if _, ok := idSet[*r.LessonID]; ok {
			continue
		}
		idSet[*r.LessonID] = struct{}{}
		ids = append(ids, *r.LessonID)
	}
	if len(ids) == 0 {
		return []models.TopicMastery{}, nil
	}

	lessons, err := s.lessonRepo.LessonsByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	type counts struct{ completed, total int }
	byTopic := make(map[string]*counts)
	for _, r := range records {
		if r.LessonID == nil {
			continue
		}
		lesson, ok := lessons[*r.LessonID]
		if !ok {
			continue
		}
		for _, topic := range lesson.Topics {
			c, ok := byTopic[topic]
			if !ok {
				c = &counts{}
				byTopic[topic] = c
			}
			c.total++
			if r.Completed {
				c.completed++
			}
		}
	}

	mastery := make([]models.TopicMastery, 0, len(byTopic))
	for topic, c := range byTopic {
		if c.total == 0 {
			continue
		}
		mastery = append(mastery, models.TopicMastery{
			Topic:     topic,
			Mastery:   round2(float64(c.completed) / float64(c.total) * 100),
			Completed: c.completed,
			Total:     c.total,
		})
	}
	sort.Slice(mastery, func(i, j int) bool {
		if mastery[i].Mastery != mastery[j].Mastery {
			return mastery[i].Mastery > mastery[j].Mastery
		}
		return mastery[i].Topic < mastery[j].Topic
	})
	return mastery, nil
}

// heatmap counts records per (day-of-week, hour) slot in UTC,
// with Sunday as day 1.
func heatmap(records []models.Progress) []models.HeatmapCell {
	byCell := make(map[[2]int]int)
	for _, r := range records {
		at := r.CreatedAt.UTC()
		key := [2]int{int(at.Weekday()) + 1, at.Hour()}
		byCell[key]++
	}

	cells := make([]models.HeatmapCell, 0, len(byCell))
	for key, count := range byCell {
		cells = append(cells, models.HeatmapCell{DayOfWeek: key[0], Hour: key[1], Count: count})
	}
	sort.Slice(cells, func(i, j int) bool {
		if cells[i].DayOfWeek != cells[j].DayOfWeek {
			return cells[i].DayOfWeek < cells[j].DayOfWeek
		}
		return cells[i].Hour < cells[j].Hour
	})
	return cells
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
