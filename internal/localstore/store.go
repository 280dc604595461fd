// Package localstore is the durable client-local fallback used when the
// remote store is unreachable. Each storage domain holds one serialized
// JSON list that is rewritten wholesale on every change, mirroring the
// key-value shape the web client keeps in browser storage.
package localstore

import (
	"context"

	"github.com/dmitrijs2005/estately/internal/models"
)

// Display placeholders for local rows; the enriching join cannot be
// performed without the remote store.
const (
	LocalUserDisplay     = "Local User"
	LocalPropertyDisplay = "Local Property"
)

// Store describes the fallback operations. Implementations are scoped to a
// single client; records here belong to that client's users only.
type Store interface {
	// AppendPayment adds one payment to the client-local ledger.
	AppendPayment(ctx context.Context, p models.Payment) error

	// PaymentsByUser returns the locally stored payments for userID.
	PaymentsByUser(ctx context.Context, userID string) ([]models.Payment, error)

	// SaveFavorites replaces the favorites list stored for userID.
	SaveFavorites(ctx context.Context, userID string, favs []models.Favorite) error

	// FavoritesByUser returns the locally stored favorites for userID.
	FavoritesByUser(ctx context.Context, userID string) ([]models.Favorite, error)
}
