package domain

import "time"

// PaymentRecord is the immutable record of a completed charge.
// At most one record exists per transaction id.
type PaymentRecord struct {
	ID            string
	Amount        float64 // major currency units
	Currency      string
	CustomerEmail string
	ParcelID      string
	ParcelName    string // denormalized snapshot taken at checkout
	TransactionID string
	Status        string
	PaidAt        time.Time
	TrackingID    string
}
