// Package services contains the reconciliation layer: the merge logic that
// unifies the remote store, the seed source and the session store into one
// logical collection, plus the payment ledger built on the same sources.
package services

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/estately/internal/cache"
	"github.com/dmitrijs2005/estately/internal/canonid"
	"github.com/dmitrijs2005/estately/internal/common"
	"github.com/dmitrijs2005/estately/internal/dbx"
	"github.com/dmitrijs2005/estately/internal/filter"
	"github.com/dmitrijs2005/estately/internal/logging"
	"github.com/dmitrijs2005/estately/internal/models"
	"github.com/dmitrijs2005/estately/internal/seed"
	"github.com/dmitrijs2005/estately/internal/server/repositories/repomanager"
	"github.com/go-playground/validator/v10"
)

// DeleteResult reports the two independent outcomes of a delete: the listing
// removal itself and the best-effort favorites cleanup.
type DeleteResult struct {
	Deleted          bool `json:"deleted"`
	FavoritesCleaned bool `json:"favorites_cleaned"`
}

// PropertyService is the reconciling repository for listings. Reads merge
// the remote store with the seed source and the session store; writes
// degrade from remote to session-local so the caller never blocks on a
// remote failure.
type PropertyService struct {
	db       dbx.DBTX
	rm       repomanager.RepositoryManager
	seed     *seed.Source
	session  *SessionStore
	results  *cache.ResultCache
	logger   logging.Logger
	validate *validator.Validate
}

// NewPropertyService constructs the reconciling repository.
func NewPropertyService(db dbx.DBTX, rm repomanager.RepositoryManager, seedSrc *seed.Source,
	session *SessionStore, results *cache.ResultCache, logger logging.Logger) *PropertyService {
	return &PropertyService{
		db:       db,
		rm:       rm,
		seed:     seedSrc,
		session:  session,
		results:  results,
		logger:   logger,
		validate: validator.New(),
	}
}

// ListPublished returns the merged published collection. The remote result
// supplements the seed data rather than replacing it: demo content is
// always shown alongside real content, and a remote outage never empties
// the listing page.
func (s *PropertyService) ListPublished(ctx context.Context) []models.Property {
	merged := make([]models.Property, 0)

	remote, err := s.rm.Properties(s.db).ListPublished(ctx)
	if err != nil {
		s.logger.Warn(ctx, "remote store unavailable, serving seed and session data", "error", err.Error())
	} else {
		merged = append(merged, remote...)
	}

	merged = append(merged, s.seed.ListPublished()...)
	merged = append(merged, s.session.Published()...)

	return dedupeByID(merged)
}

// Get resolves a single listing: remote by the identifier as supplied,
// remote again under the normalized identifier, then seed, then session.
// Returns common.ErrorNotFound when every source misses.
func (s *PropertyService) Get(ctx context.Context, id string) (*models.Property, error) {
	repo := s.rm.Properties(s.db)

	p, err := repo.GetByID(ctx, id)
	if err == nil {
		return p, nil
	}

	if normalized := canonid.Normalize(id); normalized != id {
		p, err = repo.GetByID(ctx, normalized)
		if err == nil {
			return p, nil
		}
	}

	if p, err := s.seed.Get(id); err == nil {
		return p, nil
	}

	if p := s.session.Get(id); p != nil {
		return p, nil
	}

	return nil, common.ErrorNotFound
}

// Insert validates and stores a new listing. The remote insert is retried
// once under the normalized identifier; if both attempts fail the record is
// kept in the session store only, and the caller still gets a success with
// the originally generated identifier.
func (s *PropertyService) Insert(ctx context.Context, p models.Property, ownerID string) (*models.Property, error) {
	if err := s.validate.Struct(p); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrorValidation, err)
	}

	p.ID = canonid.New()
	p.OwnerID = ownerID
	p.Published = true
	p.CreatedAt = time.Now().UTC()

	repo := s.rm.Properties(s.db)

	if err := repo.Insert(ctx, &p); err != nil {
		s.logger.Warn(ctx, "remote insert failed, retrying with normalized id", "error", err.Error())

		retry := p
		retry.ID = canonid.Normalize(p.ID)
		if err := repo.Insert(ctx, &retry); err != nil {
			s.logger.Warn(ctx, "remote insert failed twice, keeping listing in session only",
				"id", p.ID, "error", err.Error())
			s.session.Add(p)
		}
	}

	s.results.Clear()
	return &p, nil
}

// Delete removes a listing by id, retrying once under the normalized
// identifier, and cleans up favorites referencing it. The cleanup never
// fails the delete; both outcomes are reported independently.
func (s *PropertyService) Delete(ctx context.Context, id string) DeleteResult {
	repo := s.rm.Properties(s.db)

	err := repo.DeleteByID(ctx, id)
	if err != nil {
		if normalized := canonid.Normalize(id); normalized != id {
			err = repo.DeleteByID(ctx, normalized)
		}
	}
	if err != nil {
		s.logger.Warn(ctx, "delete failed", "id", id, "error", err.Error())
	}

	_, favErr := s.rm.Favorites(s.db).DeleteByProperty(ctx, canonid.Normalize(id))
	if favErr != nil {
		s.logger.Warn(ctx, "favorites cleanup failed", "id", id, "error", favErr.Error())
	}

	if err == nil {
		s.results.Clear()
	}

	return DeleteResult{Deleted: err == nil, FavoritesCleaned: favErr == nil}
}

// ListByOwner returns the caller's own listings from the remote store only:
// seed and session records are not meaningfully owned. Unauthenticated
// callers and remote failures both yield an empty list.
func (s *PropertyService) ListByOwner(ctx context.Context, ownerID string) []models.Property {
	if ownerID == "" {
		return []models.Property{}
	}

	props, err := s.rm.Properties(s.db).ListByOwner(ctx, ownerID)
	if err != nil {
		s.logger.Warn(ctx, "owner listing failed", "owner", ownerID, "error", err.Error())
		return []models.Property{}
	}
	if props == nil {
		props = []models.Property{}
	}
	return props
}

// Search evaluates the filter spec over the merged published collection,
// with a cache-aside shortcut keyed by the spec digest.
func (s *PropertyService) Search(ctx context.Context, spec filter.Spec) []models.Property {
	key := spec.Key()
	if cached, ok := s.results.Get(key); ok {
		return cached
	}

	result := filter.Apply(s.ListPublished(ctx), spec)
	s.results.Set(key, result)
	return result
}

// dedupeByID keeps the first occurrence of each canonical identifier,
// preserving input order. Concatenation order is the precedence rule:
// remote wins over seed, seed wins over session.
func dedupeByID(props []models.Property) []models.Property {
	seen := make(map[string]struct{}, len(props))
	result := make([]models.Property, 0, len(props))
	for _, p := range props {
		key := canonid.Normalize(p.ID)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		result = append(result, p)
	}
	return result
}
