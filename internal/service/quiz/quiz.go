package quiz

import (
	"context"
	"time"

	"github.com/kgahlisomanunu-byte/TerraLearn/internal/app_errors"
	"github.com/kgahlisomanunu-byte/TerraLearn/internal/models"
	"github.com/kgahlisomanunu-byte/TerraLearn/internal/validation"
	"github.com/kgahlisomanunu-byte/TerraLearn/pkg/logger"

	"github.com/google/uuid"
)

type quizRepo interface {
	CreateQuiz(ctx context.Context, quiz models.Quiz) (*models.Quiz, error)
	QuizByID(ctx context.Context, id uuid.UUID) (*models.Quiz, error)
	UpdateQuiz(ctx context.Context, quiz models.Quiz) (*models.Quiz, error)
	DeleteQuiz(ctx context.Context, id uuid.UUID) error
	QuizzesByLesson(ctx context.Context, lessonID uuid.UUID) ([]models.Quiz, error)
	ListActiveQuizzes(ctx context.Context, limit, offset int) ([]models.Quiz, int, error)
}

type progressRepo interface {
	Create(ctx context.Context, p models.Progress) (*models.Progress, error)
	CountAttempts(ctx context.Context, userID, quizID uuid.UUID) (int, error)
	AttemptsByUserQuiz(ctx context.Context, userID, quizID uuid.UUID) ([]models.Progress, error)
	HasAttemptsForQuiz(ctx context.Context, quizID uuid.UUID) (bool, error)
}

type notifier interface {
	QuizGraded(ctx context.Context, userID uuid.UUID, quiz *models.Quiz, score float64, passed bool) error
}

type QuizService struct {
	log          logger.Log
	quizRepo     quizRepo
	progressRepo progressRepo
	notifier     notifier
}

func NewQuizService(l logger.Log, qRepo quizRepo, pRepo progressRepo, n notifier) *QuizService {
	return &QuizService{
		log:          l,
		quizRepo:     qRepo,
		progressRepo: pRepo,
		notifier:     n,
	}
}

// SubmitResult is the outcome of one accepted quiz submission.
type SubmitResult struct {
	Progress          models.Progress `json:"progress"`
	Score             float64         `json:"score"`
	Passed            bool            `json:"passed"`
	CorrectAnswers    int             `json:"correct_answers"`
	TotalQuestions    int             `json:"total_questions"`
	AttemptNumber     int             `json:"attempt_number"`
	AttemptsRemaining int             `json:"attempts_remaining"`
}

// SubmitQuiz runs the attempt pipeline: limit guard, scoring, record write,
// then a best-effort notification.
//
// The guard is count-then-create without a transaction, so two racing
// submissions from the same user can both pass the check. The partial unique
// index on (user_id, quiz_id, attempt_number) makes the loser of such a race
// fail with ErrAttemptConflict rather than storing an extra attempt.
func (s *QuizService) SubmitQuiz(ctx context.Context, userID, quizID uuid.UUID, answers []models.SubmittedAnswer, timeSpent int) (*SubmitResult, error) {
	if err := validation.ValidateSubmission(answers, timeSpent); err != nil {
		return nil, err
	}

	quiz, err := s.quizRepo.QuizByID(ctx, quizID)
	if err != nil {
		return nil, err
	}
	if !quiz.IsActive {
		return nil, app_errors.ErrQuizNotFound
	}

	previousAttempts, err := s.progressRepo.CountAttempts(ctx, userID, quizID)
	if err != nil {
		return nil, err
	}
	if previousAttempts >= quiz.MaxAttempts {
		return nil, app_errors.ErrAttemptsExhausted
	}

	result, err := scoreSubmission(quiz, answers)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	record := models.Progress{
		UserID:         userID,
		QuizID:         &quizID,
		AttemptNumber:  previousAttempts + 1,
		Score:          result.Score,
		TotalQuestions: result.TotalQuestions,
		CorrectAnswers: result.CorrectAnswers,
		TimeSpent:      timeSpent,
		Answers:        result.Answers,
		Completed:      true,
		Passed:         result.Passed,
		StartedAt:      now.Add(-time.Duration(timeSpent) * time.Second),
		CompletedAt:    &now,
	}
	created, err := s.progressRepo.Create(ctx, record)
	if err != nil {
		return nil, err
	}

	if err := s.notifier.QuizGraded(ctx, userID, quiz, result.Score, result.Passed); err != nil {
		s.log.ErrorErr("failed to send quiz notification", err, "quiz_id", quizID)
	}

	return &SubmitResult{
		Progress:          *created,
		Score:             result.Score,
		Passed:            result.Passed,
		CorrectAnswers:    result.CorrectAnswers,
		TotalQuestions:    result.TotalQuestions,
		AttemptNumber:     created.AttemptNumber,
		AttemptsRemaining: quiz.MaxAttempts - created.AttemptNumber,
	}, nil
}

// QuizResults returns a user's attempt history for one quiz together with
// the derived analytics.
func (s *QuizService) QuizResults(ctx context.Context, userID, quizID uuid.UUID) (*models.Quiz, []models.Progress, *models.QuizAnalytics, error) {
	quiz, err := s.quizRepo.QuizByID(ctx, quizID)
	if err != nil {
		return nil, nil, nil, err
	}

	attempts, err := s.progressRepo.AttemptsByUserQuiz(ctx, userID, quizID)
	if err != nil {
		return nil, nil, nil, err
	}

	analytics := &models.QuizAnalytics{
		TotalAttempts:     len(attempts),
		AttemptsRemaining: quiz.MaxAttempts - len(attempts),
	}
	for i := range attempts {
		if attempts[i].Score > analytics.BestScore {
			analytics.BestScore = attempts[i].Score
		}
		if attempts[i].Passed {
			analytics.Passed = true
		}
	}
	if len(attempts) > 0 {
		analytics.LastAttempt = &attempts[0]
	}

	return quiz, attempts, analytics, nil
}

func (s *QuizService) CreateQuiz(ctx context.Context, quiz models.Quiz, createdBy uuid.UUID) (*models.Quiz, error) {
	applyQuizDefaults(&quiz)
	if err := validation.ValidateQuiz(quiz); err != nil {
		return nil, err
	}
	quiz.CreatedBy = createdBy
	return s.quizRepo.CreateQuiz(ctx, quiz)
}

func (s *QuizService) UpdateQuiz(ctx context.Context, quiz models.Quiz, actor *models.User) (*models.Quiz, error) {
	existing, err := s.quizRepo.QuizByID(ctx, quiz.ID)
	if err != nil {
		return nil, err
	}
	if actor.Role != models.AdminRole && existing.CreatedBy != actor.ID {
		return nil, app_errors.ErrNotOwner
	}
	applyQuizDefaults(&quiz)
	if err := validation.ValidateQuiz(quiz); err != nil {
		return nil, err
	}
	quiz.CreatedBy = existing.CreatedBy
	return s.quizRepo.UpdateQuiz(ctx, quiz)
}

// DeleteQuiz removes a quiz unless progress records still reference it.
func (s *QuizService) DeleteQuiz(ctx context.Context, id uuid.UUID, actor *models.User) error {
	existing, err := s.quizRepo.QuizByID(ctx, id)
	if err != nil {
		return err
	}
	if actor.Role != models.AdminRole && existing.CreatedBy != actor.ID {
		return app_errors.ErrNotOwner
	}

	hasAttempts, err := s.progressRepo.HasAttemptsForQuiz(ctx, id)
	if err != nil {
		return err
	}
	if hasAttempts {
		return app_errors.ErrQuizInUse
	}

	return s.quizRepo.DeleteQuiz(ctx, id)
}

// QuizByID returns a quiz. For learners the correct answer indexes and
// explanations are stripped from the questions.
func (s *QuizService) QuizByID(ctx context.Context, id uuid.UUID, actor *models.User) (*models.Quiz, error) {
	quiz, err := s.quizRepo.QuizByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !quiz.IsActive && (actor == nil || actor.Role == models.LearnerRole) {
		return nil, app_errors.ErrQuizNotFound
	}
	if actor == nil || actor.Role == models.LearnerRole {
		stripAnswers(quiz)
	}
	return quiz, nil
}

func (s *QuizService) ListQuizzes(ctx context.Context, limit, offset int) ([]models.Quiz, int, error) {
	if limit <= 0 {
		limit = 10
	}
	quizzes, total, err := s.quizRepo.ListActiveQuizzes(ctx, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	for i := range quizzes {
		stripAnswers(&quizzes[i])
	}
	return quizzes, total, nil
}

func (s *QuizService) QuizzesByLesson(ctx context.Context, lessonID uuid.UUID, actor *models.User) ([]models.Quiz, error) {
	quizzes, err := s.quizRepo.QuizzesByLesson(ctx, lessonID)
	if err != nil {
		return nil, err
	}
	if actor == nil || actor.Role == models.LearnerRole {
		filtered := quizzes[:0]
		for i := range quizzes {
			if !quizzes[i].IsActive {
				continue
			}
			stripAnswers(&quizzes[i])
			filtered = append(filtered, quizzes[i])
		}
		quizzes = filtered
	}
	return quizzes, nil
}

func applyQuizDefaults(quiz *models.Quiz) {
	if quiz.PassingScore == 0 {
		quiz.PassingScore = 70
	}
	if quiz.MaxAttempts == 0 {
		quiz.MaxAttempts = 3
	}
	if quiz.TimeLimit == 0 {
		quiz.TimeLimit = 30
	}
	for i := range quiz.Questions {
		if quiz.Questions[i].Points == 0 {
			quiz.Questions[i].Points = 1
		}
		if quiz.Questions[i].Type == "" {
			quiz.Questions[i].Type = models.QuestionTypeMultipleChoice
		}
	}
}

func stripAnswers(quiz *models.Quiz) {
	for i := range quiz.Questions {
		quiz.Questions[i].CorrectAnswer = -1
		quiz.Questions[i].Explanation = ""
	}
}
