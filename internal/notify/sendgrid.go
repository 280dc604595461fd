package notify

import (
	"context"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// SendGridNotifier dispatches payment notifications through the SendGrid API.
type SendGridNotifier struct {
	apiKey string
	from   string
}

// NewSendGridNotifier constructs a notifier sending from the given address.
func NewSendGridNotifier(apiKey, from string) *SendGridNotifier {
	return &SendGridNotifier{apiKey: apiKey, from: from}
}

// PaymentReceived sends a contact-unlock confirmation to the recipient
// address, copying the essentials of the payment into the body.
func (n *SendGridNotifier) PaymentReceived(ctx context.Context, note PaymentNotification) error {
	from := mail.NewEmail("Estately", n.from)
	to := mail.NewEmail("", note.Recipient)

	subject := fmt.Sprintf("Contact unlocked: %s", note.PropertyTitle)
	plain := fmt.Sprintf(
		"Payment of %.2f received from %s for listing %s (%s). Seller contact: %s.",
		note.Amount, note.BuyerEmail, note.PropertyTitle, note.PropertyID, note.SellerEmail,
	)

	message := mail.NewSingleEmail(from, subject, to, plain, plain)
	client := sendgrid.NewSendClient(n.apiKey)

	resp, err := client.SendWithContext(ctx, message)
	if err != nil {
		return fmt.Errorf("sendgrid dispatch failed: %w", err)
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("sendgrid rejected notification: status %d", resp.StatusCode)
	}
	return nil
}
