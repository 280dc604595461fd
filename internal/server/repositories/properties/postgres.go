// Package properties provides the PostgreSQL-backed repository for listing
// rows in the remote store.
package properties

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/estately/internal/common"
	"github.com/dmitrijs2005/estately/internal/dbx"
	"github.com/dmitrijs2005/estately/internal/models"
)

// Remote rows carry no type, status or feature columns. The mapping into
// the canonical Property shape fills them with these fixed defaults; this
// is the single place where the partial remote schema is widened.
const (
	defaultType   = models.TypeHouse
	defaultStatus = models.StatusForSale
)

const selectColumns = `id, title, description, price, street, city, region, postal_code,
		bedrooms, bathrooms, area_sqft, images, owner_id, published, created_at`

// PostgresRepository implements Repository over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// ListPublished returns all published listings, oldest first.
func (r *PostgresRepository) ListPublished(ctx context.Context) ([]models.Property, error) {
	query := `SELECT ` + selectColumns + ` FROM properties WHERE published = TRUE ORDER BY created_at`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to select properties: %w", err)
	}
	defer rows.Close()

	var result []models.Property
	for rows.Next() {
		p, err := scanProperty(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// GetByID returns the listing with the exact stored id, or common.ErrorNotFound.
func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Property, error) {
	query := `SELECT ` + selectColumns + ` FROM properties WHERE id = $1`
	row := r.db.QueryRowContext(ctx, query, id)

	p, err := scanProperty(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("failed to select property: %w", err)
	}
	return p, nil
}

// Insert stores a new listing row.
func (r *PostgresRepository) Insert(ctx context.Context, p *models.Property) error {
	images, err := json.Marshal(p.Images)
	if err != nil {
		return fmt.Errorf("failed to encode images: %w", err)
	}

	query := `
		INSERT INTO properties (id, title, description, price, street, city, region, postal_code,
			bedrooms, bathrooms, area_sqft, images, owner_id, published, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`
	_, err = r.db.ExecContext(ctx, query,
		p.ID, p.Title, p.Description, p.Price, p.Street, p.City, p.Region, p.PostalCode,
		p.Bedrooms, p.Bathrooms, p.AreaSqft, string(images), p.OwnerID, p.Published, p.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert property: %w", err)
	}
	return nil
}

// DeleteByID removes the listing with the exact stored id. Deleting an
// absent row returns common.ErrorNotFound.
func (r *PostgresRepository) DeleteByID(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM properties WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete property: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}

// ListByOwner returns all listings owned by ownerID, newest first.
func (r *PostgresRepository) ListByOwner(ctx context.Context, ownerID string) ([]models.Property, error) {
	query := `SELECT ` + selectColumns + ` FROM properties WHERE owner_id = $1 ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to select properties: %w", err)
	}
	defer rows.Close()

	var result []models.Property
	for rows.Next() {
		p, err := scanProperty(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

// scanProperty maps one remote row into the canonical Property shape,
// defaulting the fields the remote schema does not carry.
func scanProperty(row rowScanner) (*models.Property, error) {
	var p models.Property
	var images string
	if err := row.Scan(
		&p.ID, &p.Title, &p.Description, &p.Price, &p.Street, &p.City, &p.Region, &p.PostalCode,
		&p.Bedrooms, &p.Bathrooms, &p.AreaSqft, &images, &p.OwnerID, &p.Published, &p.CreatedAt,
	); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(images), &p.Images); err != nil {
		// A corrupt image list should not hide the listing itself.
		p.Images = nil
	}
	p.Type = defaultType
	p.Status = defaultStatus
	p.Features = []string{}
	return &p, nil
}
