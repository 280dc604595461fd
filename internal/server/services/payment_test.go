package services

import (
	"context"
	"errors"
	"testing"

	"github.com/dmitrijs2005/estately/internal/canonid"
	"github.com/dmitrijs2005/estately/internal/common"
	"github.com/dmitrijs2005/estately/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordPayment_InsertsCompletedRow(t *testing.T) {
	rm := newFakeRepoManager()
	local := &fakeLocalStore{}
	notifier := &fakeNotifier{}
	svc := newPaymentService(t, rm, local, notifier)

	err := svc.RecordPayment(context.Background(), "u1", "17", 4.99)
	require.NoError(t, err)

	require.Len(t, rm.pays.insertCalls, 1)
	row := rm.pays.insertCalls[0]
	assert.Equal(t, "u1", row.UserID)
	assert.Equal(t, canonid.Normalize("17"), row.PropertyID)
	assert.Equal(t, models.PaymentCompleted, row.Status)
	assert.Equal(t, 4.99, row.Amount)
	assert.Empty(t, local.payments)
	assert.Len(t, notifier.calls, 1)
}

func TestRecordPayment_Idempotent(t *testing.T) {
	rm := newFakeRepoManager()
	var recorded *models.Payment
	rm.pays.findFn = func(_ context.Context, userID, propertyID string) (*models.Payment, error) {
		if recorded != nil && recorded.UserID == userID && recorded.PropertyID == propertyID {
			return recorded, nil
		}
		return nil, common.ErrorNotFound
	}
	rm.pays.insertFn = func(_ context.Context, p *models.Payment) error {
		recorded = p
		return nil
	}
	svc := newPaymentService(t, rm, &fakeLocalStore{}, &fakeNotifier{})

	require.NoError(t, svc.RecordPayment(context.Background(), "u1", "17", 4.99))
	require.NoError(t, svc.RecordPayment(context.Background(), "u1", "17", 4.99))

	assert.Len(t, rm.pays.insertCalls, 1, "second call must not insert a second row")
}

func TestRecordPayment_ConcurrentDuplicateTreatedAsSuccess(t *testing.T) {
	rm := newFakeRepoManager()
	rm.pays.insertFn = func(context.Context, *models.Payment) error {
		return common.ErrorAlreadyExists
	}
	local := &fakeLocalStore{}
	svc := newPaymentService(t, rm, local, &fakeNotifier{})

	err := svc.RecordPayment(context.Background(), "u1", "17", 4.99)
	require.NoError(t, err)
	assert.Empty(t, local.payments, "a duplicate is not a failure, no local fallback")
}

func TestRecordPayment_RemoteFailureFallsBackToLocal(t *testing.T) {
	rm := newFakeRepoManager()
	rm.pays.insertFn = func(context.Context, *models.Payment) error {
		return errors.New("connection refused")
	}
	local := &fakeLocalStore{}
	svc := newPaymentService(t, rm, local, &fakeNotifier{})

	err := svc.RecordPayment(context.Background(), "u1", "17", 4.99)
	require.NoError(t, err, "local fallback keeps the payment a success")

	require.Len(t, local.payments, 1)
	assert.Equal(t, "17", local.payments[0].PropertyID, "fallback rows keep the original id")
	assert.Equal(t, "u1", local.payments[0].UserID)
}

func TestRecordPayment_NotificationFailureSwallowed(t *testing.T) {
	rm := newFakeRepoManager()
	notifier := &fakeNotifier{err: errors.New("sendgrid 503")}
	svc := newPaymentService(t, rm, &fakeLocalStore{}, notifier)

	err := svc.RecordPayment(context.Background(), "u1", "17", 4.99)
	assert.NoError(t, err)
	assert.Len(t, notifier.calls, 1)
}

func TestRecordPayment_NotificationResolvesParties(t *testing.T) {
	rm := newFakeRepoManager()
	canonical := canonid.Normalize("17")
	rm.profs.profilesByID["u1"] = &models.Profile{ID: "u1", Email: "buyer@example.com"}
	rm.profs.profilesByID["owner-1"] = &models.Profile{ID: "owner-1", Email: "seller@example.com"}
	rm.props.getByIDFn = func(_ context.Context, id string) (*models.Property, error) {
		if id == canonical {
			return &models.Property{ID: canonical, Title: "Lake House", OwnerID: "owner-1"}, nil
		}
		return nil, common.ErrorNotFound
	}
	notifier := &fakeNotifier{}
	svc := newPaymentService(t, rm, &fakeLocalStore{}, notifier)

	require.NoError(t, svc.RecordPayment(context.Background(), "u1", "17", 4.99))

	require.Len(t, notifier.calls, 1)
	note := notifier.calls[0]
	assert.Equal(t, "buyer@example.com", note.BuyerEmail)
	assert.Equal(t, "buyer@example.com", note.Recipient)
	assert.Equal(t, "seller@example.com", note.SellerEmail)
	assert.Equal(t, "Lake House", note.PropertyTitle)
}

func TestListPayments_UserSeesRemoteThenLocal(t *testing.T) {
	rm := newFakeRepoManager()
	rm.pays.listByUserFn = func(context.Context, string) ([]models.Payment, error) {
		return []models.Payment{{ID: "remote-1", UserID: "u1"}}, nil
	}
	local := &fakeLocalStore{payments: []models.Payment{{ID: "local-1", UserID: "u1"}}}
	svc := newPaymentService(t, rm, local, &fakeNotifier{})

	got, err := svc.ListPayments(context.Background(), "u1", false)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "remote-1", got[0].ID)
	assert.Equal(t, "local-1", got[1].ID)
}

func TestListPayments_RemoteFailureStillReturnsLocal(t *testing.T) {
	rm := newFakeRepoManager()
	rm.pays.listByUserFn = func(context.Context, string) ([]models.Payment, error) {
		return nil, errors.New("connection refused")
	}
	local := &fakeLocalStore{payments: []models.Payment{{ID: "local-1", UserID: "u1"}}}
	svc := newPaymentService(t, rm, local, &fakeNotifier{})

	got, err := svc.ListPayments(context.Background(), "u1", false)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "local-1", got[0].ID)
}

func TestListPayments_AdminSeesEnrichedLedger(t *testing.T) {
	rm := newFakeRepoManager()
	canonical := canonid.Normalize("17")
	rm.pays.listAllFn = func(context.Context) ([]models.Payment, error) {
		return []models.Payment{
			{ID: "p1", UserID: "u1", PropertyID: canonical},
			{ID: "p2", UserID: "missing", PropertyID: "gone"},
		}, nil
	}
	rm.profs.profilesByID["u1"] = &models.Profile{ID: "u1", Email: "buyer@example.com"}
	rm.props.getByIDFn = func(_ context.Context, id string) (*models.Property, error) {
		if id == canonical {
			return &models.Property{ID: canonical, Title: "Lake House"}, nil
		}
		return nil, common.ErrorNotFound
	}
	svc := newPaymentService(t, rm, &fakeLocalStore{}, &fakeNotifier{})

	got, err := svc.ListPayments(context.Background(), "admin", true)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "buyer@example.com", got[0].BuyerEmail)
	assert.Equal(t, "Lake House", got[0].PropertyTitle)
	assert.Empty(t, got[1].BuyerEmail, "lookup misses leave fields empty")
	assert.Empty(t, got[1].PropertyTitle)
}

func TestListPayments_AdminRemoteFailurePropagates(t *testing.T) {
	rm := newFakeRepoManager()
	rm.pays.listAllFn = func(context.Context) ([]models.Payment, error) {
		return nil, errors.New("connection refused")
	}
	svc := newPaymentService(t, rm, &fakeLocalStore{}, &fakeNotifier{})

	_, err := svc.ListPayments(context.Background(), "admin", true)
	assert.Error(t, err)
}
