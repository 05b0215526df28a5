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

type QuizPostgres struct {
	db *pgxpool.Pool
}

func NewQuizPostgres(db *pgxpool.Pool) *QuizPostgres {
	return &QuizPostgres{db: db}
}

const quizColumns = `
	id, lesson_id, title, description, questions, time_limit,
	passing_score, max_attempts, is_active, created_by, created_at, updated_at`

func scanQuiz(row pgx.Row) (models.Quiz, error) {
	var q models.Quiz
	var questionsJSON []byte
	err := row.Scan(
		&q.ID, &q.LessonID, &q.Title, &q.Description, &questionsJSON, &q.TimeLimit,
		&q.PassingScore, &q.MaxAttempts, &q.IsActive, &q.CreatedBy, &q.CreatedAt, &q.UpdatedAt,
	)
	if err != nil {
		return q, err
	}
	if err := json.Unmarshal(questionsJSON, &q.Questions); err != nil {
		return q, err
	}
	return q, nil
}

func (r *QuizPostgres) CreateQuiz(ctx context.Context, quiz models.Quiz) (*models.Quiz, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	now := time.Now().UTC()
	if quiz.ID == uuid.Nil {
		quiz.ID = uuid.New()
	}
	quiz.CreatedAt = now
	quiz.UpdatedAt = now

	questionsJSON, err := json.Marshal(quiz.Questions)
	if err != nil {
		return nil, err
	}

	query := `
		INSERT INTO quizzes (` + quizColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`
	_, err = r.db.Exec(ctx, query,
		quiz.ID, quiz.LessonID, quiz.Title, quiz.Description, questionsJSON, quiz.TimeLimit,
		quiz.PassingScore, quiz.MaxAttempts, quiz.IsActive, quiz.CreatedBy, quiz.CreatedAt, quiz.UpdatedAt,
	)
	if err != nil {
		return nil, storeErr("create quiz", err)
	}
	return &quiz, nil
}

func (r *QuizPostgres) QuizByID(ctx context.Context, id uuid.UUID) (*models.Quiz, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	query := `SELECT ` + quizColumns + ` FROM quizzes WHERE id = $1`
	quiz, err := scanQuiz(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, app_errors.ErrQuizNotFound
		}
		return nil, storeErr("quiz by id", err)
	}
	return &quiz, nil
}

func (r *QuizPostgres) UpdateQuiz(ctx context.Context, quiz models.Quiz) (*models.Quiz, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	quiz.UpdatedAt = time.Now().UTC()
	questionsJSON, err := json.Marshal(quiz.Questions)
	if err != nil {
		return nil, err
	}

	query := `
		UPDATE quizzes
		   SET lesson_id = $2, title = $3, description = $4, questions = $5, time_limit = $6,
		       passing_score = $7, max_attempts = $8, is_active = $9, updated_at = $10
		 WHERE id = $1
	`
	tag, err := r.db.Exec(ctx, query,
		quiz.ID, quiz.LessonID, quiz.Title, quiz.Description, questionsJSON, quiz.TimeLimit,
		quiz.PassingScore, quiz.MaxAttempts, quiz.IsActive, quiz.UpdatedAt,
	)
	if err != nil {
		return nil, storeErr("update quiz", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, app_errors.ErrQuizNotFound
	}
	return &quiz, nil
}

func (r *QuizPostgres) DeleteQuiz(ctx context.Context, id uuid.UUID) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	tag, err := r.db.Exec(ctx, `DELETE FROM quizzes WHERE id = $1`, id)
	if err != nil {
		return storeErr("delete quiz", err)
	}
	if tag.RowsAffected() == 0 {
		return app_errors.ErrQuizNotFound
	}
	return nil
}

func (r *QuizPostgres) QuizzesByLesson(ctx context.Context, lessonID uuid.UUID) ([]models.Quiz, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	query := `SELECT ` + quizColumns + ` FROM quizzes WHERE lesson_id = $1 ORDER BY created_at DESC`
	rows, err := r.db.Query(ctx, query, lessonID)
	if err != nil {
		return nil, storeErr("quizzes by lesson", err)
	}
	defer rows.Close()

	var quizzes []models.Quiz
	for rows.Next() {
		q, err := scanQuiz(rows)
		if err != nil {
			return nil, storeErr("quizzes by lesson", err)
		}
		quizzes = append(quizzes, q)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("quizzes by lesson", err)
	}
	return quizzes, nil
}

func (r *QuizPostgres) ListActiveQuizzes(ctx context.Context, limit, offset int) ([]models.Quiz, int, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM quizzes WHERE is_active`).Scan(&total); err != nil {
		return nil, 0, storeErr("count quizzes", err)
	}

	query := `SELECT ` + quizColumns + ` FROM quizzes WHERE is_active ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, storeErr("list quizzes", err)
	}
	defer rows.Close()

	var quizzes []models.Quiz
	for rows.Next() {
		q, err := scanQuiz(rows)
		if err != nil {
			return nil, 0, storeErr("list quizzes", err)
		}
		quizzes = append(quizzes, q)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, storeErr("list quizzes", err)
	}
	return quizzes, total, nil
}

// QuizTitles returns id -> title for a set of quizzes. Used by the progress
// export, which only needs the title column.
func (r *QuizPostgres) QuizTitles(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]string, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	rows, err := r.db.Query(ctx, `SELECT id, title FROM quizzes WHERE id = ANY($1)`, ids)
	if err != nil {
		return nil, storeErr("quiz titles", err)
	}
	defer rows.Close()

	titles := make(map[uuid.UUID]string, len(ids))
	for rows.Next() {
		var id uuid.UUID
		var title string
		if err := rows.Scan(&id, &title); err != nil {
			return nil, storeErr("quiz titles", err)
		}
		titles[id] = title
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("quiz titles", err)
	}
	return titles, nil
}

func (r *QuizPostgres) CountQuizzes(ctx context.Context) (int, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var count int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM quizzes`).Scan(&count); err != nil {
		return 0, storeErr("count quizzes", err)
	}
	return count, nil
}

func (r *QuizPostgres) HasQuizzesForLesson(ctx context.Context, lessonID uuid.UUID) (bool, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM quizzes WHERE lesson_id = $1)`, lessonID).Scan(&exists)
	if err != nil {
		return false, storeErr("quizzes for lesson", err)
	}
	return exists, nil
}
