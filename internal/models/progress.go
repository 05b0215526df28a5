package models

import (
	"time"

	"github.com/google/uuid"
)

// Answer is one graded answer inside a progress record.
type Answer struct {
	QuestionIndex  int  `json:"question_index"`
	SelectedAnswer int  `json:"selected_answer"`
	IsCorrect      bool `json:"is_correct"`
	TimeSpent      int  `json:"time_spent"`
}

// SubmittedAnswer is a raw answer as sent by the client, before grading.
type SubmittedAnswer struct {
	QuestionIndex  int `json:"question_index"`
	SelectedAnswer int `json:"selected_answer"`
	TimeSpent      int `json:"time_spent"`
}

// Progress is the persisted fact of a user's interaction with a lesson or a
// quiz: one record per lesson completion, one record per quiz attempt.
// A record is immutable once Completed, except that a lesson completion may
// re-complete an open lesson record in place. CompletedAt is set exactly once.
type Progress struct {
	ID             uuid.UUID  `json:"id"`
	UserID         uuid.UUID  `json:"user_id"`
	LessonID       *uuid.UUID `json:"lesson_id,omitempty"`
	QuizID         *uuid.UUID `json:"quiz_id,omitempty"`
	AttemptNumber  int        `json:"attempt_number"`
	Score          float64    `json:"score"`
	TotalQuestions int        `json:"total_questions"`
	CorrectAnswers int        `json:"correct_answers"`
	TimeSpent      int        `json:"time_spent"`
	Answers        []Answer   `json:"answers"`
	Completed      bool       `json:"completed"`
	Passed         bool       `json:"passed"`
	StartedAt      time.Time  `json:"started_at"`
	CompletedAt    *time.Time `json:"completed_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

const (
	ProgressTypeLesson = "lesson"
	ProgressTypeQuiz   = "quiz"
)

// ProgressFilter narrows a user's progress listing.
type ProgressFilter struct {
	Type   string // "lesson", "quiz" or empty for both
	Limit  int
	Offset int
}

// OverallStats is the all-time summary of one user's progress records.
// A user with no records yields the zero value, never an error.
type OverallStats struct {
	TotalLessons     int     `json:"total_lessons"`
	CompletedLessons int     `json:"completed_lessons"`
	TotalQuizzes     int     `json:"total_quizzes"`
	PassedQuizzes    int     `json:"passed_quizzes"`
	AverageScore     float64 `json:"average_score"`
}

// TimelineBucket is one calendar day of a user's activity.
type TimelineBucket struct {
	Date             string  `json:"date"`
	LessonsCompleted int     `json:"lessons_completed"`
	QuizzesAttempted int     `json:"quizzes_attempted"`
	QuizzesPassed    int     `json:"quizzes_passed"`
	AverageScore     float64 `json:"average_score"`
}

// TopicMastery is the share of a user's topic-tagged lesson records that are
// completed, as a percentage. Topics with no linked records are omitted.
type TopicMastery struct {
	Topic     string  `json:"topic"`
	Mastery   float64 `json:"mastery"`
	Completed int     `json:"completed"`
	Total     int     `json:"total"`
}

// HeatmapCell counts activity in one (day-of-week, hour) slot.
// DayOfWeek is 1-based with Sunday = 1.
type HeatmapCell struct {
	DayOfWeek int `json:"day_of_week"`
	Hour      int `json:"hour"`
	Count     int `json:"count"`
}

// LeaderboardEntry is one ranked user over a leaderboard window.
type LeaderboardEntry struct {
	UserID        uuid.UUID `json:"user_id"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	TotalQuizzes  int       `json:"total_quizzes"`
	PassedQuizzes int       `json:"passed_quizzes"`
	AverageScore  float64   `json:"average_score"`
	TotalPoints   float64   `json:"total_points"`
	PassRate      float64   `json:"pass_rate"`
}

// QuizAnalytics summarizes a user's attempt history against one quiz.
type QuizAnalytics struct {
	TotalAttempts     int       `json:"total_attempts"`
	BestScore         float64   `json:"best_score"`
	LastAttempt       *Progress `json:"last_attempt"`
	Passed            bool      `json:"passed"`
	AttemptsRemaining int       `json:"attempts_remaining"`
}
