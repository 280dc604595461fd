package properties

import (
	"context"

	"github.com/dmitrijs2005/estately/internal/models"
)

// Repository describes the remote-store operations for listings. Every call
// can fail independently (network, auth, constraint violation) and reports
// failure through the returned error; absence is common.ErrorNotFound.
type Repository interface {
	// ListPublished returns all published listings.
	ListPublished(ctx context.Context) ([]models.Property, error)

	// GetByID returns a single listing by its exact stored identifier.
	GetByID(ctx context.Context, id string) (*models.Property, error)

	// Insert stores a new listing.
	Insert(ctx context.Context, p *models.Property) error

	// DeleteByID removes a listing by its exact stored identifier.
	DeleteByID(ctx context.Context, id string) error

	// ListByOwner returns every listing, published or not, owned by ownerID.
	ListByOwner(ctx context.Context, ownerID string) ([]models.Property, error)
}
