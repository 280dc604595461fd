package services

import (
	"context"
	"database/sql"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/dmitrijs2005/estately/internal/cache"
	"github.com/dmitrijs2005/estately/internal/common"
	"github.com/dmitrijs2005/estately/internal/dbx"
	"github.com/dmitrijs2005/estately/internal/logging"
	"github.com/dmitrijs2005/estately/internal/models"
	"github.com/dmitrijs2005/estately/internal/notify"
	"github.com/dmitrijs2005/estately/internal/seed"
	"github.com/dmitrijs2005/estately/internal/server/repositories/favorites"
	"github.com/dmitrijs2005/estately/internal/server/repositories/payments"
	"github.com/dmitrijs2005/estately/internal/server/repositories/profiles"
	"github.com/dmitrijs2005/estately/internal/server/repositories/properties"
)

// --- fakes ---

type fakePropertiesRepo struct {
	listPublishedFn func(ctx context.Context) ([]models.Property, error)
	getByIDFn       func(ctx context.Context, id string) (*models.Property, error)
	insertFn        func(ctx context.Context, p *models.Property) error
	deleteFn        func(ctx context.Context, id string) error
	listByOwnerFn   func(ctx context.Context, ownerID string) ([]models.Property, error)

	getCalls    []string
	insertCalls []models.Property
}

func (f *fakePropertiesRepo) ListPublished(ctx context.Context) ([]models.Property, error) {
	if f.listPublishedFn != nil {
		return f.listPublishedFn(ctx)
	}
	return nil, nil
}

func (f *fakePropertiesRepo) GetByID(ctx context.Context, id string) (*models.Property, error) {
	f.getCalls = append(f.getCalls, id)
	if f.getByIDFn != nil {
		return f.getByIDFn(ctx, id)
	}
	return nil, common.ErrorNotFound
}

func (f *fakePropertiesRepo) Insert(ctx context.Context, p *models.Property) error {
	f.insertCalls = append(f.insertCalls, *p)
	if f.insertFn != nil {
		return f.insertFn(ctx, p)
	}
	return nil
}

func (f *fakePropertiesRepo) DeleteByID(ctx context.Context, id string) error {
	if f.deleteFn != nil {
		return f.deleteFn(ctx, id)
	}
	return nil
}

func (f *fakePropertiesRepo) ListByOwner(ctx context.Context, ownerID string) ([]models.Property, error) {
	if f.listByOwnerFn != nil {
		return f.listByOwnerFn(ctx, ownerID)
	}
	return nil, nil
}

type fakePaymentsRepo struct {
	findFn       func(ctx context.Context, userID, propertyID string) (*models.Payment, error)
	insertFn     func(ctx context.Context, p *models.Payment) error
	listByUserFn func(ctx context.Context, userID string) ([]models.Payment, error)
	listAllFn    func(ctx context.Context) ([]models.Payment, error)

	insertCalls []models.Payment
}

func (f *fakePaymentsRepo) FindByUserAndProperty(ctx context.Context, userID, propertyID string) (*models.Payment, error) {
	if f.findFn != nil {
		return f.findFn(ctx, userID, propertyID)
	}
	return nil, common.ErrorNotFound
}

func (f *fakePaymentsRepo) Insert(ctx context.Context, p *models.Payment) error {
	f.insertCalls = append(f.insertCalls, *p)
	if f.insertFn != nil {
		return f.insertFn(ctx, p)
	}
	return nil
}

func (f *fakePaymentsRepo) ListByUser(ctx context.Context, userID string) ([]models.Payment, error) {
	if f.listByUserFn != nil {
		return f.listByUserFn(ctx, userID)
	}
	return nil, nil
}

func (f *fakePaymentsRepo) ListAll(ctx context.Context) ([]models.Payment, error) {
	if f.listAllFn != nil {
		return f.listAllFn(ctx)
	}
	return nil, nil
}

type fakeProfilesRepo struct {
	profilesByID map[string]*models.Profile
}

func (f *fakeProfilesRepo) GetByID(ctx context.Context, id string) (*models.Profile, error) {
	if p, ok := f.profilesByID[id]; ok {
		return p, nil
	}
	return nil, common.ErrorNotFound
}

type fakeFavoritesRepo struct {
	deleteByPropertyFn func(ctx context.Context, propertyID string) (int64, error)
	deleteCalls        []string
}

func (f *fakeFavoritesRepo) Insert(ctx context.Context, fav *models.Favorite) error { return nil }

func (f *fakeFavoritesRepo) ListByUser(ctx context.Context, userID string) ([]models.Favorite, error) {
	return nil, nil
}

func (f *fakeFavoritesRepo) DeleteByProperty(ctx context.Context, propertyID string) (int64, error) {
	f.deleteCalls = append(f.deleteCalls, propertyID)
	if f.deleteByPropertyFn != nil {
		return f.deleteByPropertyFn(ctx, propertyID)
	}
	return 0, nil
}

type fakeRepoManager struct {
	props *fakePropertiesRepo
	pays  *fakePaymentsRepo
	profs *fakeProfilesRepo
	favs  *fakeFavoritesRepo
}

func newFakeRepoManager() *fakeRepoManager {
	return &fakeRepoManager{
		props: &fakePropertiesRepo{},
		pays:  &fakePaymentsRepo{},
		profs: &fakeProfilesRepo{profilesByID: map[string]*models.Profile{}},
		favs:  &fakeFavoritesRepo{},
	}
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error      { return nil }
func (m *fakeRepoManager) Properties(db dbx.DBTX) properties.Repository     { return m.props }
func (m *fakeRepoManager) Payments(db dbx.DBTX) payments.Repository         { return m.pays }
func (m *fakeRepoManager) Profiles(db dbx.DBTX) profiles.Repository         { return m.profs }
func (m *fakeRepoManager) Favorites(db dbx.DBTX) favorites.Repository       { return m.favs }

type fakeLocalStore struct {
	payments  []models.Payment
	appendErr error
	listErr   error
}

func (f *fakeLocalStore) AppendPayment(_ context.Context, p models.Payment) error {
	if f.appendErr != nil {
		return f.appendErr
	}
	f.payments = append(f.payments, p)
	return nil
}

func (f *fakeLocalStore) PaymentsByUser(_ context.Context, userID string) ([]models.Payment, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	var result []models.Payment
	for _, p := range f.payments {
		if p.UserID == userID {
			result = append(result, p)
		}
	}
	return result, nil
}

func (f *fakeLocalStore) SaveFavorites(context.Context, string, []models.Favorite) error { return nil }

func (f *fakeLocalStore) FavoritesByUser(context.Context, string) ([]models.Favorite, error) {
	return nil, nil
}

type fakeNotifier struct {
	calls []notify.PaymentNotification
	err   error
}

func (f *fakeNotifier) PaymentReceived(_ context.Context, n notify.PaymentNotification) error {
	f.calls = append(f.calls, n)
	return f.err
}

// --- builders ---

func testLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func newPropertyService(t *testing.T, rm *fakeRepoManager) *PropertyService {
	t.Helper()
	return NewPropertyService(nil, rm, seed.NewSource(), NewSessionStore(), cache.New(time.Minute), testLogger())
}

func newPaymentService(t *testing.T, rm *fakeRepoManager, local *fakeLocalStore, n *fakeNotifier) *PaymentService {
	t.Helper()
	return NewPaymentService(nil, rm, local, n, testLogger())
}

func validProperty() models.Property {
	return models.Property{
		Title: "Test Home", Description: "d", Price: 250000,
		Street: "1 Test St", City: "Austin", Region: "TX", PostalCode: "78701",
		Type: models.TypeHouse, Status: models.StatusForSale,
		Bedrooms: 3, Bathrooms: 2, AreaSqft: 1500,
		Images: []string{"listings/test/a.jpg"},
	}
}
