package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/kgahlisomanunu-byte/TerraLearn/internal/app_errors"
	"github.com/kgahlisomanunu-byte/TerraLearn/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ProgressPostgres struct {
	db *pgxpool.Pool
}

func NewProgressPostgres(db *pgxpool.Pool) *ProgressPostgres {
	return &ProgressPostgres{db: db}
}

const progressColumns = `
	id, user_id, lesson_id, quiz_id, attempt_number, score, total_questions,
	correct_answers, time_spent, answers, completed, passed, started_at,
	completed_at, created_at, updated_at`

func scanProgress(row pgx.Row) (models.Progress, error) {
	var p models.Progress
	var answersJSON []byte
	err := row.Scan(
		&p.ID, &p.UserID, &p.LessonID, &p.QuizID, &p.AttemptNumber, &p.Score, &p.TotalQuestions,
		&p.CorrectAnswers, &p.TimeSpent, &answersJSON, &p.Completed, &p.Passed, &p.StartedAt,
		&p.CompletedAt, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return p, err
	}
	if len(answersJSON) > 0 {
		if err := json.Unmarshal(answersJSON, &p.Answers); err != nil {
			return p, err
		}
	}
	return p, nil
}

// Create inserts a progress record. The partial unique index on
// (user_id, quiz_id, attempt_number) turns a lost attempt-count race into
// ErrAttemptConflict instead of a silent extra attempt.
func (r *ProgressPostgres) Create(ctx context.Context, p models.Progress) (*models.Progress, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	now := time.Now().UTC()
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if p.StartedAt.IsZero() {
		p.StartedAt = now
	}
	p.CreatedAt = now
	p.UpdatedAt = now

	answersJSON, err := json.Marshal(p.Answers)
	if err != nil {
		return nil, err
	}

	query := `
		INSERT INTO progress (` + progressColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
	`
	_, err = r.db.Exec(ctx, query,
		p.ID, p.UserID, p.LessonID, p.QuizID, p.AttemptNumber, p.Score, p.TotalQuestions,
		p.CorrectAnswers, p.TimeSpent, answersJSON, p.Completed, p.Passed, p.StartedAt,
		p.CompletedAt, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if pgErr := UnwrapPgError(err); pgErr != nil && pgErr.Code == "23505" {
			return nil, app_errors.ErrAttemptConflict
		}
		return nil, storeErr("create progress", err)
	}
	return &p, nil
}

// CountAttempts counts stored attempts for one (user, quiz) pair.
func (r *ProgressPostgres) CountAttempts(ctx context.Context, userID, quizID uuid.UUID) (int, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var count int
	query := `SELECT COUNT(*) FROM progress WHERE user_id = $1 AND quiz_id = $2`
	if err := r.db.QueryRow(ctx, query, userID, quizID).Scan(&count); err != nil {
		return 0, storeErr("count attempts", err)
	}
	return count, nil
}

func (r *ProgressPostgres) ByUserLesson(ctx context.Context, userID, lessonID uuid.UUID) (*models.Progress, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	query := `SELECT ` + progressColumns + ` FROM progress WHERE user_id = $1 AND lesson_id = $2`
	p, err := scanProgress(r.db.QueryRow(ctx, query, userID, lessonID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, app_errors.ErrProgressNotFound
		}
		return nil, storeErr("progress by user lesson", err)
	}
	return &p, nil
}

// SetCompleted marks a record completed. completed_at is written only the
// first time, never overwritten.
func (r *ProgressPostgres) SetCompleted(ctx context.Context, id uuid.UUID, at time.Time) (*models.Progress, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	query := `
		UPDATE progress
		   SET completed = TRUE,
		       completed_at = COALESCE(completed_at, $2),
		       updated_at = $3
		 WHERE id = $1
		RETURNING ` + progressColumns + `
	`
	p, err := scanProgress(r.db.QueryRow(ctx, query, id, at, time.Now().UTC()))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, app_errors.ErrProgressNotFound
		}
		return nil, storeErr("set completed", err)
	}
	return &p, nil
}

func (r *ProgressPostgres) ListByUser(ctx context.Context, userID uuid.UUID, filter models.ProgressFilter) ([]models.Progress, int, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	where := ` WHERE user_id = $1`
	switch filter.Type {
	case models.ProgressTypeLesson:
		where += ` AND lesson_id IS NOT NULL`
	case models.ProgressTypeQuiz:
		where += ` AND quiz_id IS NOT NULL`
	}

	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM progress`+where, userID).Scan(&total); err != nil {
		return nil, 0, storeErr("count progress", err)
	}

	query := `SELECT ` + progressColumns + ` FROM progress` + where +
		` ORDER BY completed_at DESC NULLS LAST, created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.db.Query(ctx, query, userID, filter.Limit, filter.Offset)
	if err != nil {
		return nil, 0, storeErr("list progress", err)
	}
	defer rows.Close()

	records, err := collectProgress(rows)
	if err != nil {
		return nil, 0, storeErr("list progress", err)
	}
	return records, total, nil
}

// AllByUser fetches the user's entire record set for in-process aggregation.
func (r *ProgressPostgres) AllByUser(ctx context.Context, userID uuid.UUID) ([]models.Progress, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	query := `SELECT ` + progressColumns + ` FROM progress WHERE user_id = $1 ORDER BY created_at DESC`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, storeErr("progress by user", err)
	}
	defer rows.Close()

	records, err := collectProgress(rows)
	if err != nil {
		return nil, storeErr("progress by user", err)
	}
	return records, nil
}

func (r *ProgressPostgres) UserRecordsSince(ctx context.Context, userID uuid.UUID, since time.Time) ([]models.Progress, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	query := `SELECT ` + progressColumns + ` FROM progress WHERE user_id = $1 AND created_at >= $2`
	rows, err := r.db.Query(ctx, query, userID, since)
	if err != nil {
		return nil, storeErr("progress since", err)
	}
	defer rows.Close()

	records, err := collectProgress(rows)
	if err != nil {
		return nil, storeErr("progress since", err)
	}
	return records, nil
}

func (r *ProgressPostgres) AttemptsByUserQuiz(ctx context.Context, userID, quizID uuid.UUID) ([]models.Progress, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	query := `SELECT ` + progressColumns + ` FROM progress WHERE user_id = $1 AND quiz_id = $2 ORDER BY created_at DESC`
	rows, err := r.db.Query(ctx, query, userID, quizID)
	if err != nil {
		return nil, storeErr("attempts by user quiz", err)
	}
	defer rows.Close()

	records, err := collectProgress(rows)
	if err != nil {
		return nil, storeErr("attempts by user quiz", err)
	}
	return records, nil
}

// QuizRecordsSince fetches all quiz-linked records created at or after the
// given time, across users. A zero time means all-time.
func (r *ProgressPostgres) QuizRecordsSince(ctx context.Context, since time.Time) ([]models.Progress, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	query := `SELECT ` + progressColumns + ` FROM progress WHERE quiz_id IS NOT NULL AND created_at >= $1`
	rows, err := r.db.Query(ctx, query, since)
	if err != nil {
		return nil, storeErr("quiz records since", err)
	}
	defer rows.Close()

	records, err := collectProgress(rows)
	if err != nil {
		return nil, storeErr("quiz records since", err)
	}
	return records, nil
}

func (r *ProgressPostgres) HasProgressForLesson(ctx context.Context, lessonID uuid.UUID) (bool, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM progress WHERE lesson_id = $1)`, lessonID).Scan(&exists)
	if err != nil {
		return false, storeErr("progress for lesson", err)
	}
	return exists, nil
}

func (r *ProgressPostgres) HasAttemptsForQuiz(ctx context.Context, quizID uuid.UUID) (bool, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM progress WHERE quiz_id = $1)`, quizID).Scan(&exists)
	if err != nil {
		return false, storeErr("attempts for quiz", err)
	}
	return exists, nil
}

func collectProgress(rows pgx.Rows) ([]models.Progress, error) {
	var records []models.Progress
	for rows.Next() {
		p, err := scanProgress(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return records, nil
}
