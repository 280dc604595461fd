package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/estately/internal/dbx"
	"github.com/dmitrijs2005/estately/internal/server/repositories/favorites"
	"github.com/dmitrijs2005/estately/internal/server/repositories/payments"
	"github.com/dmitrijs2005/estately/internal/server/repositories/profiles"
	"github.com/dmitrijs2005/estately/internal/server/repositories/properties"
)

// RepositoryManager vends the remote-store repositories bound to a DBTX and
// exposes the schema migration hook.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Properties(db dbx.DBTX) properties.Repository
	Payments(db dbx.DBTX) payments.Repository
	Profiles(db dbx.DBTX) profiles.Repository
	Favorites(db dbx.DBTX) favorites.Repository
}
