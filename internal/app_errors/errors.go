package app_errors

import (
	"errors"
	"fmt"
	"strings"
)

var ErrUserExists = errors.New("user already exists")
var ErrUserNotFound = errors.New("user not found")
var ErrIncorrectPassword = errors.New("incorrect password")
var ErrTokenNotFound = errors.New("token not found")
var ErrTokenExpired = errors.New("token expired")
var ErrLessonNotFound = errors.New("lesson not found")
var ErrQuizNotFound = errors.New("quiz not found")
var ErrGeoPointNotFound = errors.New("geo point not found")
var ErrProgressNotFound = errors.New("progress record not found")
var ErrNotOwner = errors.New("you are not the owner of this resource")
var ErrAttemptsExhausted = errors.New("maximum attempts reached for this quiz")
var ErrAttemptConflict = errors.New("attempt number already recorded for this quiz")
var ErrLessonInUse = errors.New("lesson has associated quizzes or progress records")
var ErrQuizInUse = errors.New("quiz has recorded attempts")
var ErrStoreUnavailable = errors.New("store unavailable")

// FieldError points at the specific request field that failed validation.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError carries field-level detail for malformed input. It is
// produced by the explicit validation layer, not by persistence constraints.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s: %s", f.Field, f.Message))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func NewValidationError(field, message string) *ValidationError {
	v := &ValidationError{}
	v.Add(field, message)
	return v
}

func (e *ValidationError) Add(field, message string) {
	e.Fields = append(e.Fields, FieldError{Field: field, Message: message})
}

// OrNil returns the error only when at least one field failed.
func (e *ValidationError) OrNil() error {
	if len(e.Fields) == 0 {
		return nil
	}
	return e
}

// IsNotFound reports whether err is any of the absent-entity sentinels.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrUserNotFound) ||
		errors.Is(err, ErrLessonNotFound) ||
		errors.Is(err, ErrQuizNotFound) ||
		errors.Is(err, ErrGeoPointNotFound) ||
		errors.Is(err, ErrProgressNotFound)
}
