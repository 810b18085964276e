package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/watchlist/internal/common"
	"github.com/dmitrijs2005/watchlist/internal/dbx"
	"github.com/dmitrijs2005/watchlist/internal/server/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

const pgUniqueViolation = "23505"

// PostgresRepository implements Repository over dbx.DBTX, so the same code
// runs on a pool or inside a transaction.
type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}

	query :=
		`INSERT INTO users (id, username, secret_hash)
		 VALUES ($1, $2, $3)
		 RETURNING created_at
		 `

	err := r.db.QueryRowContext(ctx, query, user.ID, user.UserName, user.SecretHash).Scan(&user.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return nil, common.ErrorAlreadyExists
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return user, nil
}

func (r *PostgresRepository) GetUserByLogin(ctx context.Context, userName string) (*models.User, error) {
	query :=
		`SELECT id, username, secret_hash, created_at FROM users
		 WHERE username = $1
		 `

	user := &models.User{}
	err := r.db.QueryRowContext(ctx, query, userName).Scan(&user.ID, &user.UserName, &user.SecretHash, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return user, nil
}

// LockUser takes a row lock on the user for the rest of the transaction.
// Outside a transaction it only checks existence.
func (r *PostgresRepository) LockUser(ctx context.Context, userID string) error {
	query :=
		`SELECT id FROM users
		 WHERE id = $1
		 FOR UPDATE
		 `

	var id string
	if err := r.db.QueryRowContext(ctx, query, userID).Scan(&id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return common.ErrorNotFound
		}
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}

func (r *PostgresRepository) AddListItem(ctx context.Context, userID string, list models.ListKind, itemID string) error {
	query :=
		`INSERT INTO user_list_items (user_id, list, item_id)
		 VALUES ($1, $2, $3)
		 ON CONFLICT DO NOTHING
		 `

	if _, err := r.db.ExecContext(ctx, query, userID, string(list), itemID); err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}

func (r *PostgresRepository) RemoveListItem(ctx context.Context, userID string, list models.ListKind, itemID string) error {
	query :=
		`DELETE FROM user_list_items
		 WHERE user_id = $1 AND list = $2 AND item_id = $3
		 `

	if _, err := r.db.ExecContext(ctx, query, userID, string(list), itemID); err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}

// GetList returns the list in insertion order. The left join yields a single
// NULL row for a user with an empty list and no rows for an unknown user.
func (r *PostgresRepository) GetList(ctx context.Context, userID string, list models.ListKind) ([]string, error) {
	query :=
		`SELECT i.item_id FROM users u
		 LEFT JOIN user_list_items i ON i.user_id = u.id AND i.list = $2
		 WHERE u.id = $1
		 ORDER BY i.seq
		 `

	rows, err := r.db.QueryContext(ctx, query, userID, string(list))
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	found := false
	items := make([]string, 0)
	for rows.Next() {
		found = true
		var item sql.NullString
		if err := rows.Scan(&item); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		if item.Valid {
			items = append(items, item.String)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	if !found {
		return nil, common.ErrorNotFound
	}

	return items, nil
}

func (r *PostgresRepository) Ping(ctx context.Context) error {
	var one int
	if err := r.db.QueryRowContext(ctx, `SELECT 1`).Scan(&one); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
