package quiz

import (
	"context"
	"errors"
	"testing"

	"github.com/kgahlisomanunu-byte/TerraLearn/internal/app_errors"
	"github.com/kgahlisomanunu-byte/TerraLearn/internal/models"

	"github.com/google/uuid"
)

type nopLog struct{}

func (nopLog) Debug(string, ...interface{})           {}
func (nopLog) Info(string, ...interface{})            {}
func (nopLog) Warn(string, ...interface{})            {}
func (nopLog) Error(string, ...interface{})           {}
func (nopLog) ErrorErr(string, error, ...interface{}) {}
func (nopLog) Fatal(string, ...interface{})           {}
func (nopLog) FatalErr(string, error, ...interface{}) {}

type fakeQuizRepo struct {
	quizzes map[uuid.UUID]*models.Quiz
}

func (f *fakeQuizRepo) CreateQuiz(_ context.Context, q models.Quiz) (*models.Quiz, error) {
	q.ID = uuid.New()
	f.quizzes[q.ID] = &q
	return &q, nil
}

func (f *fakeQuizRepo) QuizByID(_ context.Context, id uuid.UUID) (*models.Quiz, error) {
	q, ok := f.quizzes[id]
	if !ok {
		return nil, app_errors.ErrQuizNotFound
	}
	copied := *q
	return &copied, nil
}

func (f *fakeQuizRepo) UpdateQuiz(_ context.Context, q models.Quiz) (*models.Quiz, error) {
	if _, ok := f.quizzes[q.ID]; !ok {
		return nil, app_errors.ErrQuizNotFound
	}
	f.quizzes[q.ID] = &q
	return &q, nil
}

func (f *fakeQuizRepo) DeleteQuiz(_ context.Context, id uuid.UUID) error {
	if _, ok := f.quizzes[id]; !ok {
		return app_errors.ErrQuizNotFound
	}
	delete(f.quizzes, id)
	return nil
}

func (f *fakeQuizRepo) QuizzesByLesson(_ context.Context, lessonID uuid.UUID) ([]models.Quiz, error) {
	var out []models.Quiz
	for _, q := range f.quizzes {
		if q.LessonID == lessonID {
			out = append(out, *q)
		}
	}
	return out, nil
}

func (f *fakeQuizRepo) ListActiveQuizzes(_ context.Context, limit, offset int) ([]models.Quiz, int, error) {
	var out []models.Quiz
	for _, q := range f.quizzes {
		if q.IsActive {
			out = append(out, *q)
		}
	}
	return out, len(out), nil
}

type fakeProgressRepo struct {
	records   []models.Progress
	createErr error
}

func (f *fakeProgressRepo) Create(_ context.Context, p models.Progress) (*models.Progress, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	p.ID = uuid.New()
	f.records = append(f.records, p)
	return &p, nil
}

func (f *fakeProgressRepo) CountAttempts(_ context.Context, userID, quizID uuid.UUID) (int, error) {
	count := 0
	for _, r := range f.records {
		if r.UserID == userID && r.QuizID != nil && *r.QuizID == quizID {
			count++
		}
	}
	return count, nil
}

func (f *fakeProgressRepo) AttemptsByUserQuiz(_ context.Context, userID, quizID uuid.UUID) ([]models.Progress, error) {
	var out []models.Progress
	for i := len(f.records) - 1; i >= 0; i-- {
		r := f.records[i]
		if r.UserID == userID && r.QuizID != nil && *r.QuizID == quizID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeProgressRepo) HasAttemptsForQuiz(_ context.Context, quizID uuid.UUID) (bool, error) {
	for _, r := range f.records {
		if r.QuizID != nil && *r.QuizID == quizID {
			return true, nil
		}
	}
	return false, nil
}

type fakeNotifier struct {
	calls int
	err   error
}

func (f *fakeNotifier) QuizGraded(context.Context, uuid.UUID, *models.Quiz, float64, bool) error {
	f.calls++
	return f.err
}

func newTestService(quiz *models.Quiz) (*QuizService, *fakeQuizRepo, *fakeProgressRepo, *fakeNotifier) {
	qRepo := &fakeQuizRepo{quizzes: map[uuid.UUID]*models.Quiz{}}
	if quiz != nil {
		if quiz.ID == uuid.Nil {
			quiz.ID = uuid.New()
		}
		qRepo.quizzes[quiz.ID] = quiz
	}
	pRepo := &fakeProgressRepo{}
	n := &fakeNotifier{}
	return NewQuizService(nopLog{}, qRepo, pRepo, n), qRepo, pRepo, n
}

func correctAnswers(quiz *models.Quiz) []models.SubmittedAnswer {
	answers := make([]models.SubmittedAnswer, len(quiz.Questions))
	for i := range quiz.Questions {
		answers[i] = models.SubmittedAnswer{QuestionIndex: i, SelectedAnswer: quiz.Questions[i].CorrectAnswer}
	}
	return answers
}

func TestSubmitQuizRecordsAttempt(t *testing.T) {
	quiz := testQuiz(70, 1, 1)
	svc, _, pRepo, notifier := newTestService(quiz)
	userID := uuid.New()

	result, err := svc.SubmitQuiz(context.Background(), userID, quiz.ID, correctAnswers(quiz), 120)
	if err != nil {
		t.Fatalf("SubmitQuiz() error = %v", err)
	}

	if result.Score != 100 || !result.Passed {
		t.Errorf("result = score %v passed %v, want 100 passed", result.Score, result.Passed)
	}
	if result.AttemptNumber != 1 {
		t.Errorf("AttemptNumber = %d, want 1", result.AttemptNumber)
	}
	if result.AttemptsRemaining != quiz.MaxAttempts-1 {
		t.Errorf("AttemptsRemaining = %d, want %d", result.AttemptsRemaining, quiz.MaxAttempts-1)
	}
	if len(pRepo.records) != 1 {
		t.Fatalf("stored %d records, want 1", len(pRepo.records))
	}
	record := pRepo.records[0]
	if !record.Completed || record.CompletedAt == nil {
		t.Error("stored record should be completed with a completion time")
	}
	if record.TimeSpent != 120 {
		t.Errorf("TimeSpent = %d, want 120", record.TimeSpent)
	}
	if notifier.calls != 1 {
		t.Errorf("notifier calls = %d, want 1", notifier.calls)
	}
}

func TestSubmitQuizAttemptNumbersIncrement(t *testing.T) {
	quiz := testQuiz(70, 1)
	svc, _, _, _ := newTestService(quiz)
	userID := uuid.New()

	for want := 1; want <= quiz.MaxAttempts; want++ {
		result, err := svc.SubmitQuiz(context.Background(), userID, quiz.ID, correctAnswers(quiz), 0)
		if err != nil {
			t.Fatalf("attempt %d: SubmitQuiz() error = %v", want, err)
		}
		if result.AttemptNumber != want {
			t.Errorf("attempt %d: AttemptNumber = %d", want, result.AttemptNumber)
		}
	}
}

func TestSubmitQuizAttemptsExhausted(t *testing.T) {
	quiz := testQuiz(70, 1)
	quiz.MaxAttempts = 2
	svc, _, pRepo, _ := newTestService(quiz)
	userID := uuid.New()

	for i := 0; i < quiz.MaxAttempts; i++ {
		if _, err := svc.SubmitQuiz(context.Background(), userID, quiz.ID, correctAnswers(quiz), 0); err != nil {
			t.Fatalf("attempt %d: SubmitQuiz() error = %v", i+1, err)
		}
	}

	_, err := svc.SubmitQuiz(context.Background(), userID, quiz.ID, correctAnswers(quiz), 0)
	if !errors.Is(err, app_errors.ErrAttemptsExhausted) {
		t.Fatalf("SubmitQuiz() error = %v, want ErrAttemptsExhausted", err)
	}
	if len(pRepo.records) != quiz.MaxAttempts {
		t.Errorf("stored %d records, want %d", len(pRepo.records), quiz.MaxAttempts)
	}

	// Another user is unaffected by the first user's exhausted limit.
	if _, err := svc.SubmitQuiz(context.Background(), uuid.New(), quiz.ID, correctAnswers(quiz), 0); err != nil {
		t.Errorf("SubmitQuiz() for second user error = %v", err)
	}
}

func TestSubmitQuizInactiveQuiz(t *testing.T) {
	quiz := testQuiz(70, 1)
	quiz.IsActive = false
	svc, _, _, _ := newTestService(quiz)

	_, err := svc.SubmitQuiz(context.Background(), uuid.New(), quiz.ID, correctAnswers(quiz), 0)
	if !errors.Is(err, app_errors.ErrQuizNotFound) {
		t.Fatalf("SubmitQuiz() error = %v, want ErrQuizNotFound", err)
	}
}

func TestSubmitQuizNotificationFailureIsSwallowed(t *testing.T) {
	quiz := testQuiz(70, 1)
	svc, _, _, notifier := newTestService(quiz)
	notifier.err = errors.New("notification store down")

	result, err := svc.SubmitQuiz(context.Background(), uuid.New(), quiz.ID, correctAnswers(quiz), 0)
	if err != nil {
		t.Fatalf("SubmitQuiz() error = %v", err)
	}
	if result.AttemptNumber != 1 {
		t.Errorf("AttemptNumber = %d, want 1", result.AttemptNumber)
	}
}

func TestSubmitQuizStoreFailureSurfaces(t *testing.T) {
	quiz := testQuiz(70, 1)
	svc, _, pRepo, notifier := newTestService(quiz)
	pRepo.createErr = app_errors.ErrAttemptConflict

	_, err := svc.SubmitQuiz(context.Background(), uuid.New(), quiz.ID, correctAnswers(quiz), 0)
	if !errors.Is(err, app_errors.ErrAttemptConflict) {
		t.Fatalf("SubmitQuiz() error = %v, want ErrAttemptConflict", err)
	}
	if notifier.calls != 0 {
		t.Error("no notification should be sent when the record write fails")
	}
}

func TestQuizResults(t *testing.T) {
	quiz := testQuiz(70, 1, 1)
	svc, _, _, _ := newTestService(quiz)
	userID := uuid.New()

	// First attempt fails, second passes.
	if _, err := svc.SubmitQuiz(context.Background(), userID, quiz.ID, []models.SubmittedAnswer{
		{QuestionIndex: 0, SelectedAnswer: 0},
		{QuestionIndex: 1, SelectedAnswer: 0},
	}, 0); err != nil {
		t.Fatalf("first SubmitQuiz() error = %v", err)
	}
	if _, err := svc.SubmitQuiz(context.Background(), userID, quiz.ID, correctAnswers(quiz), 0); err != nil {
		t.Fatalf("second SubmitQuiz() error = %v", err)
	}

	_, attempts, analytics, err := svc.QuizResults(context.Background(), userID, quiz.ID)
	if err != nil {
		t.Fatalf("QuizResults() error = %v", err)
	}
	if len(attempts) != 2 {
		t.Fatalf("len(attempts) = %d, want 2", len(attempts))
	}
	if analytics.TotalAttempts != 2 {
		t.Errorf("TotalAttempts = %d, want 2", analytics.TotalAttempts)
	}
	if analytics.BestScore != 100 {
		t.Errorf("BestScore = %v, want 100", analytics.BestScore)
	}
	if !analytics.Passed {
		t.Error("Passed should be true when any attempt passed")
	}
	if analytics.AttemptsRemaining != quiz.MaxAttempts-2 {
		t.Errorf("AttemptsRemaining = %d, want %d", analytics.AttemptsRemaining, quiz.MaxAttempts-2)
	}
	if analytics.LastAttempt == nil || analytics.LastAttempt.Score != 100 {
		t.Error("LastAttempt should be the most recent attempt")
	}
}

func TestQuizByIDStripsAnswersForLearners(t *testing.T) {
	quiz := testQuiz(70, 1, 1)
	quiz.Questions[0].Explanation = "because"
	svc, _, _, _ := newTestService(quiz)

	learner := &models.User{ID: uuid.New(), Role: models.LearnerRole}
	got, err := svc.QuizByID(context.Background(), quiz.ID, learner)
	if err != nil {
		t.Fatalf("QuizByID() error = %v", err)
	}
	for i, q := range got.Questions {
		if q.CorrectAnswer != -1 {
			t.Errorf("question %d: CorrectAnswer = %d, want -1", i, q.CorrectAnswer)
		}
		if q.Explanation != "" {
			t.Errorf("question %d: Explanation should be stripped", i)
		}
	}

	teacher := &models.User{ID: uuid.New(), Role: models.TeacherRole}
	got, err = svc.QuizByID(context.Background(), quiz.ID, teacher)
	if err != nil {
		t.Fatalf("QuizByID() error = %v", err)
	}
	if got.Questions[0].CorrectAnswer == -1 {
		t.Error("teachers should see correct answers")
	}
}

func TestDeleteQuizBlockedByAttempts(t *testing.T) {
	owner := uuid.New()
	quiz := testQuiz(70, 1)
	quiz.CreatedBy = owner
	svc, qRepo, _, _ := newTestService(quiz)
	creator := &models.User{ID: owner, Role: models.TeacherRole}

	if _, err := svc.SubmitQuiz(context.Background(), uuid.New(), quiz.ID, correctAnswers(quiz), 0); err != nil {
		t.Fatalf("SubmitQuiz() error = %v", err)
	}

	err := svc.DeleteQuiz(context.Background(), quiz.ID, creator)
	if !errors.Is(err, app_errors.ErrQuizInUse) {
		t.Fatalf("DeleteQuiz() error = %v, want ErrQuizInUse", err)
	}
	if _, ok := qRepo.quizzes[quiz.ID]; !ok {
		t.Error("quiz with attempts must not be deleted")
	}
}

func TestDeleteQuizWithoutAttempts(t *testing.T) {
	owner := uuid.New()
	quiz := testQuiz(70, 1)
	quiz.CreatedBy = owner
	svc, qRepo, _, _ := newTestService(quiz)
	creator := &models.User{ID: owner, Role: models.TeacherRole}

	if err := svc.DeleteQuiz(context.Background(), quiz.ID, creator); err != nil {
		t.Fatalf("DeleteQuiz() error = %v", err)
	}
	if _, ok := qRepo.quizzes[quiz.ID]; ok {
		t.Error("quiz without attempts should be deleted")
	}
}

func TestUpdateQuizOwnership(t *testing.T) {
	owner := uuid.New()
	quiz := testQuiz(70, 1)
	quiz.CreatedBy = owner
	quiz.LessonID = uuid.New()
	quiz.TimeLimit = 30
	svc, _, _, _ := newTestService(quiz)

	stranger := &models.User{ID: uuid.New(), Role: models.TeacherRole}
	_, err := svc.UpdateQuiz(context.Background(), *quiz, stranger)
	if !errors.Is(err, app_errors.ErrNotOwner) {
		t.Fatalf("UpdateQuiz() by stranger error = %v, want ErrNotOwner", err)
	}

	admin := &models.User{ID: uuid.New(), Role: models.AdminRole}
	if _, err := svc.UpdateQuiz(context.Background(), *quiz, admin); err != nil {
		t.Errorf("UpdateQuiz() by admin error = %v", err)
	}
}
