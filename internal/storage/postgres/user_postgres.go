package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/kgahlisomanunu-byte/TerraLearn/internal/app_errors"
	"github.com/kgahlisomanunu-byte/TerraLearn/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type UserPostgres struct {
	db *pgxpool.Pool
}

func NewUserPostgres(db *pgxpool.Pool) *UserPostgres {
	return &UserPostgres{db: db}
}

func (r *UserPostgres) CreateUser(ctx context.Context, user models.User) (*models.User, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	user.CreatedAt = time.Now().UTC()

	query := `
		INSERT INTO users (id, email, name, password, role, is_active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.db.Exec(ctx, query,
		user.ID, user.Email, user.Name, user.Password, user.Role, user.IsActive, user.CreatedAt,
	)
	if err != nil {
		if pgErr := UnwrapPgError(err); pgErr != nil && pgErr.Code == "23505" {
			return nil, app_errors.ErrUserExists
		}
		return nil, storeErr("create user", err)
	}
	return &user, nil
}

func (r *UserPostgres) UserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	query := `
		SELECT id, email, name, password, role, is_active, created_at
		  FROM users
		 WHERE id = $1
	`
	var user models.User
	err := r.db.QueryRow(ctx, query, id).Scan(
		&user.ID, &user.Email, &user.Name, &user.Password, &user.Role, &user.IsActive, &user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, app_errors.ErrUserNotFound
		}
		return nil, storeErr("user by id", err)
	}
	return &user, nil
}

func (r *UserPostgres) UserByEmail(ctx context.Context, email string) (*models.User, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	query := `
		SELECT id, email, name, password, role, is_active, created_at
		  FROM users
		 WHERE email = $1
	`
	var user models.User
	err := r.db.QueryRow(ctx, query, email).Scan(
		&user.ID, &user.Email, &user.Name, &user.Password, &user.Role, &user.IsActive, &user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, app_errors.ErrUserNotFound
		}
		return nil, storeErr("user by email", err)
	}
	return &user, nil
}

// UsersByIDs fetches the minimal identity fields for a set of users.
func (r *UserPostgres) UsersByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]models.UserInfo, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	query := `SELECT id, name, email FROM users WHERE id = ANY($1)`
	rows, err := r.db.Query(ctx, query, ids)
	if err != nil {
		return nil, storeErr("users by ids", err)
	}
	defer rows.Close()

	users := make(map[uuid.UUID]models.UserInfo, len(ids))
	for rows.Next() {
		var u models.UserInfo
		if err := rows.Scan(&u.ID, &u.Name, &u.Email); err != nil {
			return nil, storeErr("users by ids", err)
		}
		users[u.ID] = u
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("users by ids", err)
	}
	return users, nil
}

func (r *UserPostgres) CountUsers(ctx context.Context, activeOnly bool) (int, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	query := `SELECT COUNT(*) FROM users`
	if activeOnly {
		query += ` WHERE is_active`
	}
	var count int
	if err := r.db.QueryRow(ctx, query).Scan(&count); err != nil {
		return 0, storeErr("count users", err)
	}
	return count, nil
}

// DeleteUser removes a user and cascades to the user's progress records,
// refresh tokens and notifications.
func (r *UserPostgres) DeleteUser(ctx context.Context, id uuid.UUID) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return storeErr("delete user", err)
	}
	defer tx.Rollback(ctx)

	for _, q := range []string{
		`DELETE FROM progress WHERE user_id = $1`,
		`DELETE FROM refresh_tokens WHERE user_id = $1`,
		`DELETE FROM notifications WHERE user_id = $1`,
	} {
		if _, err := tx.Exec(ctx, q, id); err != nil {
			return storeErr("delete user", err)
		}
	}

	tag, err := tx.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return storeErr("delete user", err)
	}
	if tag.RowsAffected() == 0 {
		return app_errors.ErrUserNotFound
	}
	return tx.Commit(ctx)
}
