package favorites

import (
	"context"

	"github.com/dmitrijs2005/estately/internal/models"
)

// Repository describes the remote-store operations for saved listings.
type Repository interface {
	// Insert stores a new favorite.
	Insert(ctx context.Context, f *models.Favorite) error

	// ListByUser returns the user's favorites, newest first.
	ListByUser(ctx context.Context, userID string) ([]models.Favorite, error)

	// DeleteByProperty removes every favorite referencing propertyID and
	// returns the number of rows removed.
	DeleteByProperty(ctx context.Context, propertyID string) (int64, error)
}
