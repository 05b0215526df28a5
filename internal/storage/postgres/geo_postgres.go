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

type GeoPostgres struct {
	db *pgxpool.Pool
}

func NewGeoPostgres(db *pgxpool.Pool) *GeoPostgres {
	return &GeoPostgres{db: db}
}

const geoColumns = `
	id, title, description, lat, lng, type, tags, lesson_id, facts,
	media_keys, is_active, created_by, created_at, updated_at`

func scanGeoPoint(row pgx.Row) (models.GeoPoint, error) {
	var p models.GeoPoint
	err := row.Scan(
		&p.ID, &p.Title, &p.Description, &p.Coordinates.Lat, &p.Coordinates.Lng, &p.Type,
		&p.Tags, &p.LessonID, &p.Facts, &p.MediaKeys, &p.IsActive,
		&p.CreatedBy, &p.CreatedAt, &p.UpdatedAt,
	)
	return p, err
}

func (r *GeoPostgres) CreateGeoPoint(ctx context.Context, point models.GeoPoint) (*models.GeoPoint, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	now := time.Now().UTC()
	if point.ID == uuid.Nil {
		point.ID = uuid.New()
	}
	point.CreatedAt = now
	point.UpdatedAt = now

	query := `
		INSERT INTO geo_points (` + geoColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`
	_, err := r.db.Exec(ctx, query,
		point.ID, point.Title, point.Description, point.Coordinates.Lat, point.Coordinates.Lng,
		point.Type, point.Tags, point.LessonID, point.Facts, point.MediaKeys, point.IsActive,
		point.CreatedBy, point.CreatedAt, point.UpdatedAt,
	)
	if err != nil {
		return nil, storeErr("create geo point", err)
	}
	return &point, nil
}

func (r *GeoPostgres) GeoPointByID(ctx context.Context, id uuid.UUID) (*models.GeoPoint, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	query := `SELECT ` + geoColumns + ` FROM geo_points WHERE id = $1`
	point, err := scanGeoPoint(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, app_errors.ErrGeoPointNotFound
		}
		return nil, storeErr("geo point by id", err)
	}
	return &point, nil
}

func (r *GeoPostgres) UpdateGeoPoint(ctx context.Context, point models.GeoPoint) (*models.GeoPoint, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	point.UpdatedAt = time.Now().UTC()
	query := `
		UPDATE geo_points
		   SET title = $2, description = $3, lat = $4, lng = $5, type = $6, tags = $7,
		       lesson_id = $8, facts = $9, media_keys = $10, is_active = $11, updated_at = $12
		 WHERE id = $1
	`
	tag, err := r.db.Exec(ctx, query,
		point.ID, point.Title, point.Description, point.Coordinates.Lat, point.Coordinates.Lng,
		point.Type, point.Tags, point.LessonID, point.Facts, point.MediaKeys, point.IsActive,
		point.UpdatedAt,
	)
	if err != nil {
		return nil, storeErr("update geo point", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, app_errors.ErrGeoPointNotFound
	}
	return &point, nil
}

func (r *GeoPostgres) DeleteGeoPoint(ctx context.Context, id uuid.UUID) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	tag, err := r.db.Exec(ctx, `DELETE FROM geo_points WHERE id = $1`, id)
	if err != nil {
		return storeErr("delete geo point", err)
	}
	if tag.RowsAffected() == 0 {
		return app_errors.ErrGeoPointNotFound
	}
	return nil
}

func (r *GeoPostgres) ListGeoPoints(ctx context.Context, filter models.GeoPointFilter) ([]models.GeoPoint, int, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	where := ` WHERE is_active`
	args := []any{}
	if filter.Type != "" {
		args = append(args, filter.Type)
		where += ` AND type = $` + strconv.Itoa(len(args))
	}
	if filter.Tag != "" {
		args = append(args, filter.Tag)
		where += ` AND $` + strconv.Itoa(len(args)) + ` = ANY(tags)`
	}

	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM geo_points`+where, args...).Scan(&total); err != nil {
		return nil, 0, storeErr("count geo points", err)
	}

	query := `SELECT ` + geoColumns + ` FROM geo_points` + where + ` ORDER BY created_at DESC`
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
		return nil, 0, storeErr("list geo points", err)
	}
	defer rows.Close()

	var points []models.GeoPoint
	for rows.Next() {
		p, err := scanGeoPoint(rows)
		if err != nil {
			return nil, 0, storeErr("list geo points", err)
		}
		points = append(points, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, storeErr("list geo points", err)
	}
	return points, total, nil
}

func (r *GeoPostgres) AllGeoPoints(ctx context.Context) ([]models.GeoPoint, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	rows, err := r.db.Query(ctx, `SELECT `+geoColumns+` FROM geo_points`)
	if err != nil {
		return nil, storeErr("all geo points", err)
	}
	defer rows.Close()

	var points []models.GeoPoint
	for rows.Next() {
		p, err := scanGeoPoint(rows)
		if err != nil {
			return nil, storeErr("all geo points", err)
		}
		points = append(points, p)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("all geo points", err)
	}
	return points, nil
}
