// Package notify dispatches best-effort payment notifications. Failures are
// reported to the caller, which logs and swallows them; a payment never
// fails because an email did.
package notify

import "context"

// PaymentNotification carries everything the dispatch needs. Email fields
// may be empty when the enriching lookups failed.
type PaymentNotification struct {
	UserID        string
	PropertyID    string
	Amount        float64
	BuyerEmail    string
	PropertyTitle string
	SellerEmail   string
	Recipient     string
}

// Notifier dispatches a single payment notification.
type Notifier interface {
	PaymentReceived(ctx context.Context, n PaymentNotification) error
}

// Nop is a Notifier that does nothing. Used in tests and when no API key is
// configured.
type Nop struct{}

func (Nop) PaymentReceived(context.Context, PaymentNotification) error { return nil }
