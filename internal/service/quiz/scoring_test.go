package quiz

import (
	"errors"
	"testing"

	"github.com/kgahlisomanunu-byte/TerraLearn/internal/app_errors"
	"github.com/kgahlisomanunu-byte/TerraLearn/internal/models"
)

func testQuiz(passingScore float64, points ...int) *models.Quiz {
	questions := make([]models.Question, len(points))
	for i, p := range points {
		questions[i] = models.Question{
			Question:      "q",
			Options:       []string{"a", "b", "c"},
			CorrectAnswer: 1,
			Points:        p,
		}
	}
	return &models.Quiz{
		Title:        "Capitals of Europe",
		Questions:    questions,
		PassingScore: passingScore,
		MaxAttempts:  3,
		IsActive:     true,
	}
}

func TestScoreSubmission(t *testing.T) {
	tests := []struct {
		name      string
		quiz      *models.Quiz
		answers   []models.SubmittedAnswer
		wantScore float64
		wantPass  bool
		wantEarn  int
	}{
		{
			name: "all correct",
			quiz: testQuiz(70, 1, 1, 1),
			answers: []models.SubmittedAnswer{
				{QuestionIndex: 0, SelectedAnswer: 1},
				{QuestionIndex: 1, SelectedAnswer: 1},
				{QuestionIndex: 2, SelectedAnswer: 1},
			},
			wantScore: 100,
			wantPass:  true,
			wantEarn:  3,
		},
		{
			name: "partial credit weighted by points",
			quiz: testQuiz(70, 1, 3),
			answers: []models.SubmittedAnswer{
				{QuestionIndex: 0, SelectedAnswer: 1},
				{QuestionIndex: 1, SelectedAnswer: 0},
			},
			wantScore: 25,
			wantPass:  false,
			wantEarn:  1,
		},
		{
			name: "exactly at passing score",
			quiz: testQuiz(50, 1, 1),
			answers: []models.SubmittedAnswer{
				{QuestionIndex: 0, SelectedAnswer: 1},
				{QuestionIndex: 1, SelectedAnswer: 2},
			},
			wantScore: 50,
			wantPass:  true,
			wantEarn:  1,
		},
		{
			name:      "no answers",
			quiz:      testQuiz(70, 1, 1),
			answers:   nil,
			wantScore: 0,
			wantPass:  false,
			wantEarn:  0,
		},
		{
			name: "zero total points scores zero",
			quiz: testQuiz(70, 0, 0),
			answers: []models.SubmittedAnswer{
				{QuestionIndex: 0, SelectedAnswer: 1},
				{QuestionIndex: 1, SelectedAnswer: 1},
			},
			wantScore: 0,
			wantPass:  false,
			wantEarn:  0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := scoreSubmission(tt.quiz, tt.answers)
			if err != nil {
				t.Fatalf("scoreSubmission() error = %v", err)
			}
			if result.Score != tt.wantScore {
				t.Errorf("Score = %v, want %v", result.Score, tt.wantScore)
			}
			if result.Passed != tt.wantPass {
				t.Errorf("Passed = %v, want %v", result.Passed, tt.wantPass)
			}
			if result.CorrectAnswers != tt.wantEarn {
				t.Errorf("CorrectAnswers = %v, want %v", result.CorrectAnswers, tt.wantEarn)
			}
			if result.TotalQuestions != len(tt.quiz.Questions) {
				t.Errorf("TotalQuestions = %v, want %v", result.TotalQuestions, len(tt.quiz.Questions))
			}
			if len(result.Answers) != len(tt.answers) {
				t.Errorf("len(Answers) = %v, want %v", len(result.Answers), len(tt.answers))
			}
		})
	}
}

func TestScoreSubmissionOutOfRangeIndex(t *testing.T) {
	quiz := testQuiz(70, 1, 1)

	for _, index := range []int{-1, 2, 100} {
		_, err := scoreSubmission(quiz, []models.SubmittedAnswer{
			{QuestionIndex: index, SelectedAnswer: 1},
		})
		if err == nil {
			t.Fatalf("scoreSubmission() with index %d: expected error", index)
		}
		var validationErr *app_errors.ValidationError
		if !errors.As(err, &validationErr) {
			t.Errorf("scoreSubmission() with index %d: error = %v, want ValidationError", index, err)
		}
	}
}

func TestScoreSubmissionGradesAnswers(t *testing.T) {
	quiz := testQuiz(70, 2, 2)
	result, err := scoreSubmission(quiz, []models.SubmittedAnswer{
		{QuestionIndex: 0, SelectedAnswer: 1, TimeSpent: 5},
		{QuestionIndex: 1, SelectedAnswer: 0, TimeSpent: 9},
	})
	if err != nil {
		t.Fatalf("scoreSubmission() error = %v", err)
	}

	if !result.Answers[0].IsCorrect {
		t.Error("first answer should be graded correct")
	}
	if result.Answers[1].IsCorrect {
		t.Error("second answer should be graded incorrect")
	}
	if result.Answers[0].TimeSpent != 5 || result.Answers[1].TimeSpent != 9 {
		t.Error("per-answer time spent should be preserved")
	}
}
