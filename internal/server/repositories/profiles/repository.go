package profiles

import (
	"context"

	"github.com/dmitrijs2005/estately/internal/models"
)

// Repository describes the profile lookups served by the hosted auth backend.
type Repository interface {
	// GetByID returns the profile for a user id, or common.ErrorNotFound.
	GetByID(ctx context.Context, id string) (*models.Profile, error)
}
