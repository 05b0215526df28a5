package postgres

import (
	"context"
	"time"

	"github.com/kgahlisomanunu-byte/TerraLearn/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type NotificationPostgres struct {
	db *pgxpool.Pool
}

func NewNotificationPostgres(db *pgxpool.Pool) *NotificationPostgres {
	return &NotificationPostgres{db: db}
}

func (r *NotificationPostgres) Create(ctx context.Context, n models.Notification) (*models.Notification, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	n.CreatedAt = time.Now().UTC()

	query := `
		INSERT INTO notifications (id, user_id, title, message, type, related_entity, related_id, is_read, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := r.db.Exec(ctx, query,
		n.ID, n.UserID, n.Title, n.Message, n.Type, n.RelatedEntity, n.RelatedID, n.IsRead, n.CreatedAt,
	)
	if err != nil {
		return nil, storeErr("create notification", err)
	}
	return &n, nil
}

func (r *NotificationPostgres) ListByUser(ctx context.Context, userID uuid.UUID, unreadOnly bool, limit int) ([]models.Notification, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	query := `
		SELECT id, user_id, title, message, type, related_entity, related_id, is_read, created_at
		  FROM notifications
		 WHERE user_id = $1
	`
	if unreadOnly {
		query += ` AND NOT is_read`
	}
	query += ` ORDER BY created_at DESC LIMIT $2`

	rows, err := r.db.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, storeErr("list notifications", err)
	}
	defer rows.Close()

	var list []models.Notification
	for rows.Next() {
		var n models.Notification
		if err := rows.Scan(
			&n.ID, &n.UserID, &n.Title, &n.Message, &n.Type,
			&n.RelatedEntity, &n.RelatedID, &n.IsRead, &n.CreatedAt,
		); err != nil {
			return nil, storeErr("list notifications", err)
		}
		list = append(list, n)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("list notifications", err)
	}
	return list, nil
}

func (r *NotificationPostgres) MarkRead(ctx context.Context, userID, id uuid.UUID) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	query := `UPDATE notifications SET is_read = TRUE WHERE id = $1 AND user_id = $2`
	if _, err := r.db.Exec(ctx, query, id, userID); err != nil {
		return storeErr("mark notification read", err)
	}
	return nil
}

func (r *NotificationPostgres) MarkAllRead(ctx context.Context, userID uuid.UUID) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	query := `UPDATE notifications SET is_read = TRUE WHERE user_id = $1 AND NOT is_read`
	if _, err := r.db.Exec(ctx, query, userID); err != nil {
		return storeErr("mark all notifications read", err)
	}
	return nil
}
