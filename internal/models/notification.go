package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	NotificationTypeLesson   = "lesson"
	NotificationTypeQuiz     = "quiz"
	NotificationTypeProgress = "progress"
	NotificationTypeSystem   = "system"
)

type Notification struct {
	ID            uuid.UUID  `json:"id"`
	UserID        uuid.UUID  `json:"user_id"`
	Title         string     `json:"title"`
	Message       string     `json:"message"`
	Type          string     `json:"type"`
	RelatedEntity string     `json:"related_entity,omitempty"`
	RelatedID     *uuid.UUID `json:"related_id,omitempty"`
	IsRead        bool       `json:"is_read"`
	CreatedAt     time.Time  `json:"created_at"`
}
