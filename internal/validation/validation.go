// Package validation is the explicit request-validation layer. It produces
// field-level ValidationErrors decoupled from any persistence-side schema
// enforcement.
package validation

import (
	"fmt"

	"github.com/kgahlisomanunu-byte/TerraLearn/internal/app_errors"
	"github.com/kgahlisomanunu-byte/TerraLearn/internal/models"
)

func ValidateLesson(l models.Lesson) error {
	v := &app_errors.ValidationError{}
	if l.Title == "" {
		v.Add("title", "is required")
	}
	if len(l.Title) > 100 {
		v.Add("title", "cannot exceed 100 characters")
	}
	if l.Description == "" {
		v.Add("description", "is required")
	}
	if len(l.Description) > 500 {
		v.Add("description", "cannot exceed 500 characters")
	}
	if l.Content == "" {
		v.Add("content", "is required")
	}
	if l.Duration < 1 {
		v.Add("duration", "must be at least 1 minute")
	}
	switch l.Difficulty {
	case models.DifficultyBeginner, models.DifficultyIntermediate, models.DifficultyAdvanced:
	default:
		v.Add("difficulty", "must be beginner, intermediate or advanced")
	}
	return v.OrNil()
}

func ValidateQuiz(q models.Quiz) error {
	v := &app_errors.ValidationError{}
	if q.Title == "" {
		v.Add("title", "is required")
	}
	if len(q.Title) > 100 {
		v.Add("title", "cannot exceed 100 characters")
	}
	if len(q.Questions) == 0 {
		v.Add("questions", "at least one question is required")
	}
	for i, question := range q.Questions {
		prefix := fmt.Sprintf("questions[%d]", i)
		if question.Question == "" {
			v.Add(prefix+".question", "is required")
		}
		if len(question.Options) < 2 {
			v.Add(prefix+".options", "at least two options are required")
		}
		if question.CorrectAnswer < 0 || question.CorrectAnswer >= len(question.Options) {
			v.Add(prefix+".correct_answer", "must be a valid index into options")
		}
		if question.Points < 1 {
			v.Add(prefix+".points", "must be at least 1")
		}
	}
	if q.PassingScore < 0 || q.PassingScore > 100 {
		v.Add("passing_score", "must be between 0 and 100")
	}
	if q.MaxAttempts < 1 {
		v.Add("max_attempts", "must be at least 1")
	}
	if q.TimeLimit < 1 {
		v.Add("time_limit", "must be at least 1 minute")
	}
	return v.OrNil()
}

// ValidateSubmission checks the shape of submitted answers; correctness of
// the question index against the quiz definition is checked during scoring.
func ValidateSubmission(answers []models.SubmittedAnswer, timeSpent int) error {
	v := &app_errors.ValidationError{}
	if timeSpent < 0 {
		v.Add("time_spent", "must be non-negative")
	}
	for i, a := range answers {
		prefix := fmt.Sprintf("answers[%d]", i)
		if a.QuestionIndex < 0 {
			v.Add(prefix+".question_index", "must be non-negative")
		}
		if a.SelectedAnswer < 0 {
			v.Add(prefix+".selected_answer", "must be non-negative")
		}
		if a.TimeSpent < 0 {
			v.Add(prefix+".time_spent", "must be non-negative")
		}
	}
	return v.OrNil()
}

func ValidateGeoPoint(p models.GeoPoint) error {
	v := &app_errors.ValidationError{}
	if p.Title == "" {
		v.Add("title", "is required")
	}
	if len(p.Title) > 100 {
		v.Add("title", "cannot exceed 100 characters")
	}
	if p.Description == "" {
		v.Add("description", "is required")
	}
	if len(p.Description) > 1000 {
		v.Add("description", "cannot exceed 1000 characters")
	}
	if p.Coordinates.Lat < -90 || p.Coordinates.Lat > 90 {
		v.Add("coordinates.lat", "must be between -90 and 90")
	}
	if p.Coordinates.Lng < -180 || p.Coordinates.Lng > 180 {
		v.Add("coordinates.lng", "must be between -180 and 180")
	}
	valid := false
	for _, t := range models.GeoPointTypes {
		if p.Type == t {
			valid = true
			break
		}
	}
	if !valid {
		v.Add("type", "is not a known geo point type")
	}
	return v.OrNil()
}

func ValidateUser(u models.User) error {
	v := &app_errors.ValidationError{}
	if u.Email == "" {
		v.Add("email", "is required")
	}
	if u.Name == "" {
		v.Add("name", "is required")
	}
	if len(u.Password) < 6 || len(u.Password) > 72 {
		v.Add("password", "must be between 6 and 72 characters")
	}
	return v.OrNil()
}
