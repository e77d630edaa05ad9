package domain

// SessionPaymentStatus represents the payment state reported by the gateway.
type SessionPaymentStatus string

const (
	SessionPaid   SessionPaymentStatus = "paid"
	SessionUnpaid SessionPaymentStatus = "unpaid"
)

// CheckoutSession is the local view of a gateway-owned checkout session.
// The gateway owns its lifecycle; this system only reads it.
type CheckoutSession struct {
	ID            string
	URL           string
	PaymentStatus SessionPaymentStatus
	AmountTotal   int64 // minor currency units
	Currency      string
	CustomerEmail string
	TransactionID string // the processor's id for the completed charge
	ParcelID      string
	ParcelName    string
}
