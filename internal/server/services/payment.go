package services

import (
	"context"
	"errors"
	"time"

	"github.com/dmitrijs2005/estately/internal/canonid"
	"github.com/dmitrijs2005/estately/internal/common"
	"github.com/dmitrijs2005/estately/internal/dbx"
	"github.com/dmitrijs2005/estately/internal/localstore"
	"github.com/dmitrijs2005/estately/internal/logging"
	"github.com/dmitrijs2005/estately/internal/models"
	"github.com/dmitrijs2005/estately/internal/notify"
	"github.com/dmitrijs2005/estately/internal/server/repositories/repomanager"
)

// PaymentService is the ledger reconciler for contact-unlock payments.
// Writes degrade from the remote store to the durable local fallback;
// reads concatenate both, remote first.
type PaymentService struct {
	db       dbx.DBTX
	rm       repomanager.RepositoryManager
	local    localstore.Store
	notifier notify.Notifier
	logger   logging.Logger
}

// NewPaymentService constructs the ledger reconciler.
func NewPaymentService(db dbx.DBTX, rm repomanager.RepositoryManager, local localstore.Store,
	notifier notify.Notifier, logger logging.Logger) *PaymentService {
	return &PaymentService{db: db, rm: rm, local: local, notifier: notifier, logger: logger}
}

// RecordPayment records a completed payment for (userID, propertyID).
// The call is idempotent: an existing ledger row for the pair, in any
// status, short-circuits to success. The pre-check is backed by a partial
// unique index remotely, so the check-then-insert window cannot produce a
// second completed row either.
//
// A remote insert failure degrades to the local fallback, keyed by the
// paying user and tagged with the original, non-normalized property id;
// local rows are looked up later by raw id, not canonical id.
func (s *PaymentService) RecordPayment(ctx context.Context, userID, propertyID string, amount float64) error {
	canonicalID := canonid.Normalize(propertyID)
	repo := s.rm.Payments(s.db)

	existing, err := repo.FindByUserAndProperty(ctx, userID, canonicalID)
	if err != nil && !errors.Is(err, common.ErrorNotFound) {
		s.logger.Warn(ctx, "payment pre-check failed, attempting insert anyway", "error", err.Error())
	}
	if existing != nil {
		s.logger.Info(ctx, "payment already recorded", "user", userID, "property", canonicalID)
		return nil
	}

	payment := models.Payment{
		ID:         canonid.New(),
		UserID:     userID,
		PropertyID: canonicalID,
		Amount:     amount,
		Status:     models.PaymentCompleted,
		CreatedAt:  time.Now().UTC(),
	}

	if err := repo.Insert(ctx, &payment); err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			// Lost the race to another writer; the pair is paid either way.
			s.logger.Info(ctx, "payment already recorded by concurrent writer", "user", userID, "property", canonicalID)
			return nil
		}

		s.logger.Warn(ctx, "remote payment insert failed, falling back to local store", "error", err.Error())

		fallback := payment
		fallback.PropertyID = propertyID
		if lerr := s.local.AppendPayment(ctx, fallback); lerr != nil {
			s.logger.Error(ctx, "local payment fallback failed", "error", lerr.Error())
		}
	}

	s.notifyPayment(ctx, userID, canonicalID, amount)
	return nil
}

// notifyPayment resolves the buyer, the listing and the seller and
// dispatches a notification. Every failure here is logged and swallowed;
// the payment result is already decided.
func (s *PaymentService) notifyPayment(ctx context.Context, userID, propertyID string, amount float64) {
	note := notify.PaymentNotification{UserID: userID, PropertyID: propertyID, Amount: amount}

	profileRepo := s.rm.Profiles(s.db)

	if buyer, err := profileRepo.GetByID(ctx, userID); err == nil {
		note.BuyerEmail = buyer.Email
		note.Recipient = buyer.Email
	} else {
		s.logger.Warn(ctx, "buyer lookup for notification failed", "user", userID, "error", err.Error())
	}

	if property, err := s.rm.Properties(s.db).GetByID(ctx, propertyID); err == nil {
		note.PropertyTitle = property.Title
		if seller, err := profileRepo.GetByID(ctx, property.OwnerID); err == nil {
			note.SellerEmail = seller.Email
		}
	} else {
		s.logger.Warn(ctx, "property lookup for notification failed", "property", propertyID, "error", err.Error())
	}

	if err := s.notifier.PaymentReceived(ctx, note); err != nil {
		s.logger.Warn(ctx, "payment notification failed", "error", err.Error())
	}
}

// ListPayments returns the ledger view for a caller. Admins see every
// remote row, enriched with the buyer's email and the listing title;
// regular users see their own remote rows followed by their local fallback
// rows, remote first.
func (s *PaymentService) ListPayments(ctx context.Context, userID string, isAdmin bool) ([]models.Payment, error) {
	repo := s.rm.Payments(s.db)

	if isAdmin {
		rows, err := repo.ListAll(ctx)
		if err != nil {
			return nil, err
		}
		s.enrich(ctx, rows)
		return rows, nil
	}

	remote, err := repo.ListByUser(ctx, userID)
	if err != nil {
		s.logger.Warn(ctx, "remote payment listing failed", "user", userID, "error", err.Error())
		remote = nil
	}

	local, err := s.local.PaymentsByUser(ctx, userID)
	if err != nil {
		s.logger.Warn(ctx, "local payment listing failed", "user", userID, "error", err.Error())
		local = nil
	}

	result := make([]models.Payment, 0, len(remote)+len(local))
	result = append(result, remote...)
	result = append(result, local...)
	return result, nil
}

// enrich fills the read-time join fields on remote rows. Buyer emails are
// resolved once per distinct user, titles once per distinct listing;
// lookup failures leave the fields empty.
func (s *PaymentService) enrich(ctx context.Context, rows []models.Payment) {
	profileRepo := s.rm.Profiles(s.db)
	propertyRepo := s.rm.Properties(s.db)

	emails := make(map[string]string)
	titles := make(map[string]string)

	for i := range rows {
		userID := rows[i].UserID
		if _, ok := emails[userID]; !ok {
			if profile, err := profileRepo.GetByID(ctx, userID); err == nil {
				emails[userID] = profile.Email
			} else {
				emails[userID] = ""
			}
		}
		rows[i].BuyerEmail = emails[userID]

		propID := rows[i].PropertyID
		if _, ok := titles[propID]; !ok {
			if property, err := propertyRepo.GetByID(ctx, propID); err == nil {
				titles[propID] = property.Title
			} else {
				titles[propID] = ""
			}
		}
		rows[i].PropertyTitle = titles[propID]
	}
}
