// Package profiles provides the PostgreSQL-backed lookup for user profiles.
package profiles

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/estately/internal/common"
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

// GetByID returns the profile for a user id, or common.ErrorNotFound.
func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Profile, error) {
	row := r.db.QueryRowContext(ctx, `SELECT id, email, full_name FROM profiles WHERE id = $1`, id)

	var p models.Profile
	if err := row.Scan(&p.ID, &p.Email, &p.FullName); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("failed to select profile: %w", err)
	}
	return &p, nil
}
