package payments

import (
	"context"

	"github.com/dmitrijs2005/estately/internal/models"
)

// Repository describes the remote-store operations for the payment ledger.
// Absence is common.ErrorNotFound; a completed payment colliding with an
// existing one for the same (user, property) is common.ErrorAlreadyExists.
type Repository interface {
	// FindByUserAndProperty returns any payment for the pair, regardless of
	// status.
	FindByUserAndProperty(ctx context.Context, userID, propertyID string) (*models.Payment, error)

	// Insert stores a new payment row.
	Insert(ctx context.Context, p *models.Payment) error

	// ListByUser returns the user's payments, newest first.
	ListByUser(ctx context.Context, userID string) ([]models.Payment, error)

	// ListAll returns every payment, newest first.
	ListAll(ctx context.Context) ([]models.Payment, error)
}
