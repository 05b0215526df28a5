package quiz

import (
	"fmt"

	"github.com/kgahlisomanunu-byte/TerraLearn/internal/app_errors"
	"github.com/kgahlisomanunu-byte/TerraLearn/internal/models"
)

// scoreResult is the scoring engine's output for one submission.
type scoreResult struct {
	Score          float64
	Passed         bool
	CorrectAnswers int
	TotalQuestions int
	Answers        []models.Answer
}

// scoreSubmission grades submitted answers against a quiz definition.
// Correct answers accumulate the question's points; the score is the earned
// share of the quiz's total points as a percentage. A quiz whose questions
// carry zero total points scores 0. An answer referencing a question index
// outside the quiz fails the whole submission.
func scoreSubmission(quiz *models.Quiz, answers []models.SubmittedAnswer) (scoreResult, error) {
	earned := 0
	graded := make([]models.Answer, 0, len(answers))

	for i, answer := range answers {
		if answer.QuestionIndex < 0 || answer.QuestionIndex >= len(quiz.Questions) {
			return scoreResult{}, app_errors.NewValidationError(
				fmt.Sprintf("answers[%d].question_index", i),
				fmt.Sprintf("must be between 0 and %d", len(quiz.Questions)-1),
			)
		}
		question := quiz.Questions[answer.QuestionIndex]
		isCorrect := answer.SelectedAnswer == question.CorrectAnswer
		if isCorrect {
			earned += question.Points
		}
		graded = append(graded, models.Answer{
			QuestionIndex:  answer.QuestionIndex,
			SelectedAnswer: answer.SelectedAnswer,
			IsCorrect:      isCorrect,
			TimeSpent:      answer.TimeSpent,
		})
	}

	totalPoints := quiz.TotalPoints()
	score := 0.0
	if totalPoints > 0 {
		score = float64(earned) / float64(totalPoints) * 100
	}

	return scoreResult{
		Score:          score,
		Passed:         score >= quiz.PassingScore,
		CorrectAnswers: earned,
		TotalQuestions: len(quiz.Questions),
		Answers:        graded,
	}, nil
}
