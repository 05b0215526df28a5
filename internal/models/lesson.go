package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	DifficultyBeginner     = "beginner"
	DifficultyIntermediate = "intermediate"
	DifficultyAdvanced     = "advanced"
)

type Lesson struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Content     string    `json:"content"`
	GradeLevel  string    `json:"grade_level"`
	Subject     string    `json:"subject"`
	Duration    int       `json:"duration"`
	Topics      []string  `json:"topics"`
	Difficulty  string    `json:"difficulty"`
	IsPublished bool      `json:"is_published"`
	Order       int       `json:"order"`
	Thumbnail   *string   `json:"thumbnail,omitempty"`
	CreatedBy   uuid.UUID `json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// LessonFilter narrows lesson listings. Zero values mean "no constraint".
type LessonFilter struct {
	GradeLevel    string
	Difficulty    string
	Topic         string
	PublishedOnly bool
	Limit         int
	Offset        int
}
