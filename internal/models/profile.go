package models

// Profile is the user record kept by the hosted auth backend. Only the
// fields needed for payment enrichment and notifications are mapped.
type Profile struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	FullName string `json:"full_name"`
}
