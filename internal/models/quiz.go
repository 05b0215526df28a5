package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	QuestionTypeMultipleChoice = "multiple-choice"
	QuestionTypeTrueFalse      = "true-false"
	QuestionTypeMapBased       = "map-based"
)

type Question struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correct_answer"`
	Explanation   string   `json:"explanation,omitempty"`
	Points        int      `json:"points"`
	Type          string   `json:"type"`
}

type Quiz struct {
	ID           uuid.UUID  `json:"id"`
	LessonID     uuid.UUID  `json:"lesson_id"`
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	Questions    []Question `json:"questions"`
	TimeLimit    int        `json:"time_limit"`
	PassingScore float64    `json:"passing_score"`
	MaxAttempts  int        `json:"max_attempts"`
	IsActive     bool       `json:"is_active"`
	CreatedBy    uuid.UUID  `json:"created_by"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// TotalPoints sums the points over every question in the quiz.
func (q *Quiz) TotalPoints() int {
	total := 0
	for _, question := range q.Questions {
		total += question.Points
	}
	return total
}
