package models

import "time"

// PaymentStatus enumerates the states of a contact-unlock payment.
type PaymentStatus string

const (
	PaymentCompleted PaymentStatus = "completed"
	PaymentFailed    PaymentStatus = "failed"
	PaymentPending   PaymentStatus = "pending"
)

// Payment records a user paying to unlock a listing's contact details.
// BuyerEmail and PropertyTitle are denormalized joins computed at read
// time, never stored remotely; rows persisted to the local fallback carry
// placeholder display values instead.
type Payment struct {
	ID         string        `json:"id"`
	UserID     string        `json:"user_id"`
	PropertyID string        `json:"property_id"`
	Amount     float64       `json:"amount"`
	Status     PaymentStatus `json:"status"`
	CreatedAt  time.Time     `json:"created_at"`

	BuyerEmail    string `json:"buyer_email,omitempty"`
	PropertyTitle string `json:"property_title,omitempty"`
}
