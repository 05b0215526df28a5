package validation

import (
	"errors"
	"strings"
	"testing"

	"github.com/kgahlisomanunu-byte/TerraLearn/internal/app_errors"
	"github.com/kgahlisomanunu-byte/TerraLearn/internal/models"
)

func validQuiz() models.Quiz {
	return models.Quiz{
		Title: "Deserts",
		Questions: []models.Question{
			{Question: "Largest desert?", Options: []string{"Sahara", "Antarctic"}, CorrectAnswer: 1, Points: 1},
		},
		TimeLimit:    20,
		PassingScore: 70,
		MaxAttempts:  3,
	}
}

func fields(t *testing.T, err error) []string {
	t.Helper()
	var validationErr *app_errors.ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("error = %v, want ValidationError", err)
	}
	out := make([]string, 0, len(validationErr.Fields))
	for _, f := range validationErr.Fields {
		out = append(out, f.Field)
	}
	return out
}

func TestValidateQuiz(t *testing.T) {
	if err := ValidateQuiz(validQuiz()); err != nil {
		t.Fatalf("ValidateQuiz(valid) error = %v", err)
	}

	tests := []struct {
		name      string
		mutate    func(*models.Quiz)
		wantField string
	}{
		{"missing title", func(q *models.Quiz) { q.Title = "" }, "title"},
		{"no questions", func(q *models.Quiz) { q.Questions = nil }, "questions"},
		{"correct answer out of range", func(q *models.Quiz) { q.Questions[0].CorrectAnswer = 2 }, "correct_answer"},
		{"negative correct answer", func(q *models.Quiz) { q.Questions[0].CorrectAnswer = -1 }, "correct_answer"},
		{"zero points", func(q *models.Quiz) { q.Questions[0].Points = 0 }, "points"},
		{"too few options", func(q *models.Quiz) { q.Questions[0].Options = []string{"only"} }, "options"},
		{"passing score above 100", func(q *models.Quiz) { q.PassingScore = 101 }, "passing_score"},
		{"zero max attempts", func(q *models.Quiz) { q.MaxAttempts = 0 }, "max_attempts"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			quiz := validQuiz()
			tt.mutate(&quiz)
			err := ValidateQuiz(quiz)
			if err == nil {
				t.Fatal("expected validation error")
			}
			found := false
			for _, f := range fields(t, err) {
				if strings.Contains(f, tt.wantField) {
					found = true
				}
			}
			if !found {
				t.Errorf("fields %v missing %q", fields(t, err), tt.wantField)
			}
		})
	}
}

func TestValidateSubmission(t *testing.T) {
	ok := []models.SubmittedAnswer{{QuestionIndex: 0, SelectedAnswer: 1, TimeSpent: 4}}
	if err := ValidateSubmission(ok, 60); err != nil {
		t.Fatalf("ValidateSubmission(valid) error = %v", err)
	}

	if err := ValidateSubmission(ok, -1); err == nil {
		t.Error("negative time_spent should fail")
	}
	if err := ValidateSubmission([]models.SubmittedAnswer{{QuestionIndex: -1}}, 0); err == nil {
		t.Error("negative question_index should fail")
	}
	if err := ValidateSubmission([]models.SubmittedAnswer{{SelectedAnswer: -2}}, 0); err == nil {
		t.Error("negative selected_answer should fail")
	}
}

func TestValidateGeoPoint(t *testing.T) {
	valid := models.GeoPoint{
		Title:       "Table Mountain",
		Description: "Flat-topped mountain overlooking Cape Town",
		Coordinates: models.Coordinates{Lat: -33.96, Lng: 18.4},
		Type:        models.GeoTypeLandmark,
	}
	if err := ValidateGeoPoint(valid); err != nil {
		t.Fatalf("ValidateGeoPoint(valid) error = %v", err)
	}

	bad := valid
	bad.Coordinates.Lat = 91
	if err := ValidateGeoPoint(bad); err == nil {
		t.Error("latitude above 90 should fail")
	}
	bad = valid
	bad.Coordinates.Lng = -181
	if err := ValidateGeoPoint(bad); err == nil {
		t.Error("longitude below -180 should fail")
	}
	bad = valid
	bad.Type = "volcanic"
	if err := ValidateGeoPoint(bad); err == nil {
		t.Error("unknown type should fail")
	}
}

func TestValidateLesson(t *testing.T) {
	valid := models.Lesson{
		Title:       "Rivers",
		Description: "Major rivers of the world",
		Content:     "The Nile is the longest river.",
		Duration:    10,
		Difficulty:  models.DifficultyBeginner,
	}
	if err := ValidateLesson(valid); err != nil {
		t.Fatalf("ValidateLesson(valid) error = %v", err)
	}

	bad := valid
	bad.Difficulty = "expert"
	if err := ValidateLesson(bad); err == nil {
		t.Error("unknown difficulty should fail")
	}
	bad = valid
	bad.Content = ""
	if err := ValidateLesson(bad); err == nil {
		t.Error("empty content should fail")
	}
}
