package postgres

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/kgahlisomanunu-byte/TerraLearn/internal/app_errors"
	"github.com/kgahlisomanunu-byte/TerraLearn/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type LessonPostgres struct {
	db *pgxpool.Pool
}

func NewLessonPostgres(db *pgxpool.Pool) *LessonPostgres {
	return &LessonPostgres{db: db}
}

const lessonColumns = `
	id, title, description, content, grade_level, subject, duration,
	topics, difficulty, is_published, lesson_order, thumbnail,
	created_by, created_at, updated_at`

func scanLesson(row pgx.Row) (models.Lesson, error) {
	var l models.Lesson
	err := row.Scan(
		&l.ID, &l.Title, &l.Description, &l.Content, &l.GradeLevel, &l.Subject, &l.Duration,
		&l.Topics, &l.Difficulty, &l.IsPublished, &l.Order, &l.Thumbnail,
		&l.CreatedBy, &l.CreatedAt, &l.UpdatedAt,
	)
	return l, err
}

func (r *LessonPostgres) CreateLesson(ctx context.Context, lesson models.Lesson) (*models.Lesson, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	now := time.Now().UTC()
	if lesson.ID == uuid.Nil {
		lesson.ID = uuid.New()
	}
	lesson.CreatedAt = now
	lesson.UpdatedAt = now

	query := `
		INSERT INTO lessons (` + lessonColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`
	_, err := r.db.Exec(ctx, query,
		lesson.ID, lesson.Title, lesson.Description, lesson.Content, lesson.GradeLevel,
		lesson.Subject, lesson.Duration, lesson.Topics, lesson.Difficulty, lesson.IsPublished,
		lesson.Order, lesson.Thumbnail, lesson.CreatedBy, lesson.CreatedAt, lesson.UpdatedAt,
	)
	if err != nil {
		return nil, storeErr("create lesson", err)
	}
	return &lesson, nil
}

func (r *LessonPostgres) LessonByID(ctx context.Context, id uuid.UUID) (*models.Lesson, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	query := `SELECT ` + lessonColumns + ` FROM lessons WHERE id = $1`
	lesson, err := scanLesson(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, app_errors.ErrLessonNotFound
		}
		return nil, storeErr("lesson by id", err)
	}
	return &lesson, nil
}

func (r *LessonPostgres) UpdateLesson(ctx context.Context, lesson models.Lesson) (*models.Lesson, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	lesson.UpdatedAt = time.Now().UTC()
	query := `
		UPDATE lessons
		   SET title = $2, description = $3, content = $4, grade_level = $5, subject = $6,
		       duration = $7, topics = $8, difficulty = $9, is_published = $10,
		       lesson_order = $11, thumbnail = $12, updated_at = $13
		 WHERE id = $1
	`
	tag, err := r.db.Exec(ctx, query,
		lesson.ID, lesson.Title, lesson.Description, lesson.Content, lesson.GradeLevel,
		lesson.Subject, lesson.Duration, lesson.Topics, lesson.Difficulty, lesson.IsPublished,
		lesson.Order, lesson.Thumbnail, lesson.UpdatedAt,
	)
	if err != nil {
		return nil, storeErr("update lesson", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, app_errors.ErrLessonNotFound
	}
	return &lesson, nil
}

func (r *LessonPostgres) DeleteLesson(ctx context.Context, id uuid.UUID) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	tag, err := r.db.Exec(ctx, `DELETE FROM lessons WHERE id = $1`, id)
	if err != nil {
		return storeErr("delete lesson", err)
	}
	if tag.RowsAffected() == 0 {
		return app_errors.ErrLessonNotFound
	}
	return nil
}

func (r *LessonPostgres) ListLessons(ctx context.Context, filter models.LessonFilter) ([]models.Lesson, int, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	where := ` WHERE 1=1`
	args := []any{}
	if filter.PublishedOnly {
		where += ` AND is_published`
	}
	if filter.GradeLevel != "" {
		args = append(args, filter.GradeLevel)
		where += ` AND grade_level = $` + strconv.Itoa(len(args))
	}
	if filter.Difficulty != "" {
		args = append(args, filter.Difficulty)
		where += ` AND difficulty = $` + strconv.Itoa(len(args))
	}
	if filter.Topic != "" {
		args = append(args, filter.Topic)
		where += ` AND $` + strconv.Itoa(len(args)) + ` = ANY(topics)`
	}

	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM lessons`+where, args...).Scan(&total); err != nil {
		return nil, 0, storeErr("count lessons", err)
	}

	query := `SELECT ` + lessonColumns + ` FROM lessons` + where + ` ORDER BY lesson_order, created_at DESC`
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += ` LIMIT $` + strconv.Itoa(len(args))
	}
	if filter.Offset > 0 {
		args = append(args, filter.Offset)
		query += ` OFFSET $` + strconv.Itoa(len(args))
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, storeErr("list lessons", err)
	}
	defer rows.Close()

	var lessons []models.Lesson
	for rows.Next() {
		l, err := scanLesson(rows)
		if err != nil {
			return nil, 0, storeErr("list lessons", err)
		}
		lessons = append(lessons, l)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, storeErr("list lessons", err)
	}
	return lessons, total, nil
}

// PublishedLessonsExcluding lists published lessons not in the exclusion set,
// newest first. Feeds the recommendation engine.
func (r *LessonPostgres) PublishedLessonsExcluding(ctx context.Context, exclude []uuid.UUID) ([]models.Lesson, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	query := `
		SELECT ` + lessonColumns + `
		  FROM lessons
		 WHERE is_published AND NOT (id = ANY($1))
		 ORDER BY created_at DESC
	`
	rows, err := r.db.Query(ctx, query, exclude)
	if err != nil {
		return nil, storeErr("published lessons", err)
	}
	defer rows.Close()

	var lessons []models.Lesson
	for rows.Next() {
		l, err := scanLesson(rows)
		if err != nil {
			return nil, storeErr("published lessons", err)
		}
		lessons = append(lessons, l)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("published lessons", err)
	}
	return lessons, nil
}

// LessonsByIDs returns the lessons for a set of ids, keyed by id.
func (r *LessonPostgres) LessonsByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]models.Lesson, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	rows, err := r.db.Query(ctx, `SELECT `+lessonColumns+` FROM lessons WHERE id = ANY($1)`, ids)
	if err != nil {
		return nil, storeErr("lessons by ids", err)
	}
	defer rows.Close()

	lessons := make(map[uuid.UUID]models.Lesson, len(ids))
	for rows.Next() {
		l, err := scanLesson(rows)
		if err != nil {
			return nil, storeErr("lessons by ids", err)
		}
		lessons[l.ID] = l
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("lessons by ids", err)
	}
	return lessons, nil
}

func (r *LessonPostgres) AllLessons(ctx context.Context) ([]models.Lesson, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	rows, err := r.db.Query(ctx, `SELECT `+lessonColumns+` FROM lessons`)
	if err != nil {
		return nil, storeErr("all lessons", err)
	}
	defer rows.Close()

	var lessons []models.Lesson
	for rows.Next() {
		l, err := scanLesson(rows)
		if err != nil {
			return nil, storeErr("all lessons", err)
		}
		lessons = append(lessons, l)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("all lessons", err)
	}
	return lessons, nil
}

