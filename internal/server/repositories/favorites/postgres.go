// Package favorites provides the PostgreSQL-backed repository for saved
// listings in the remote store.
package favorites

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/estately/internal/dbx"
	"github.com/dmitrijs2005/estately/internal/models"
)

// PostgresRepository implements Repository over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Insert stores a new favorite row.
func (r *PostgresRepository) Insert(ctx context.Context, f *models.Favorite) error {
	query := `INSERT INTO favorites (id, user_id, property_id, created_at) VALUES ($1, $2, $3, $4)`
	_, err := r.db.ExecContext(ctx, query, f.ID, f.UserID, f.PropertyID, f.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert favorite: %w", err)
	}
	return nil
}

// ListByUser returns the user's favorites, newest first.
func (r *PostgresRepository) ListByUser(ctx context.Context, userID string) ([]models.Favorite, error) {
	query := `SELECT id, user_id, property_id, created_at
		FROM favorites WHERE user_id = $1 ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to select favorites: %w", err)
	}
	defer rows.Close()

	var result []models.Favorite
	for rows.Next() {
		var f models.Favorite
		if err := rows.Scan(&f.ID, &f.UserID, &f.PropertyID, &f.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, f)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// DeleteByProperty removes every favorite referencing propertyID. Removing
// zero rows is not an error.
func (r *PostgresRepository) DeleteByProperty(ctx context.Context, propertyID string) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM favorites WHERE property_id = $1`, propertyID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete favorites: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected error: %w", err)
	}
	return n, nil
}
