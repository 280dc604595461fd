// Package payments provides the PostgreSQL-backed repository for the
// payment ledger in the remote store.
package payments

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/estately/internal/common"
	"github.com/dmitrijs2005/estately/internal/dbx"
	"github.com/dmitrijs2005/estately/internal/models"
	"github.com/jackc/pgx/v5/pgconn"
)

const uniqueViolation = "23505"

// PostgresRepository implements Repository over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// FindByUserAndProperty returns any payment for (userID, propertyID),
// regardless of status, or common.ErrorNotFound.
func (r *PostgresRepository) FindByUserAndProperty(ctx context.Context, userID, propertyID string) (*models.Payment, error) {
	query := `SELECT id, user_id, property_id, amount, status, created_at
		FROM payments WHERE user_id = $1 AND property_id = $2 LIMIT 1`
	row := r.db.QueryRowContext(ctx, query, userID, propertyID)

	var p models.Payment
	if err := row.Scan(&p.ID, &p.UserID, &p.PropertyID, &p.Amount, &p.Status, &p.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("failed to select payment: %w", err)
	}
	return &p, nil
}

// Insert stores a new payment row. A second completed payment for the same
// (user, property) pair trips the partial unique index and is reported as
// common.ErrorAlreadyExists.
func (r *PostgresRepository) Insert(ctx context.Context, p *models.Payment) error {
	query := `INSERT INTO payments (id, user_id, property_id, amount, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.db.ExecContext(ctx, query, p.ID, p.UserID, p.PropertyID, p.Amount, p.Status, p.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return common.ErrorAlreadyExists
		}
		return fmt.Errorf("failed to insert payment: %w", err)
	}
	return nil
}

// ListByUser returns the user's payments, newest first.
func (r *PostgresRepository) ListByUser(ctx context.Context, userID string) ([]models.Payment, error) {
	query := `SELECT id, user_id, property_id, amount, status, created_at
		FROM payments WHERE user_id = $1 ORDER BY created_at DESC`
	return r.list(ctx, query, userID)
}

// ListAll returns every payment, newest first.
func (r *PostgresRepository) ListAll(ctx context.Context) ([]models.Payment, error) {
	query := `SELECT id, user_id, property_id, amount, status, created_at
		FROM payments ORDER BY created_at DESC`
	return r.list(ctx, query)
}

func (r *PostgresRepository) list(ctx context.Context, query string, args ...any) ([]models.Payment, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to select payments: %w", err)
	}
	defer rows.Close()

	var result []models.Payment
	for rows.Next() {
		var p models.Payment
		if err := rows.Scan(&p.ID, &p.UserID, &p.PropertyID, &p.Amount, &p.Status, &p.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
