package domain

import "time"

// ParcelPaymentStatus represents the payment state of a parcel.
type ParcelPaymentStatus string

const (
	ParcelUnpaid ParcelPaymentStatus = "unpaid"
	ParcelPaid   ParcelPaymentStatus = "paid"
)

// Parcel represents a parcel submitted for delivery.
type Parcel struct {
	ID            string
	SenderEmail   string
	Name          string
	Cost          float64
	PaymentStatus ParcelPaymentStatus
	TrackingID    string // empty until payment is confirmed
	CreatedAt     time.Time
}
