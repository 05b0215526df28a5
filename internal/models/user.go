package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	LearnerRole = "learner"
	TeacherRole = "teacher"
	AdminRole   = "admin"
)

type User struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Password  string    `json:"-"`
	Role      string    `json:"role"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

// UserInfo is the minimal identity shape joined into leaderboard entries.
type UserInfo struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
}
