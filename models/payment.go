package models

import "time"

// ChargeRequest is what the checkout hands to a payment gateway.
type ChargeRequest struct {
	PaymentID   string
	DeviceID    string
	Amount      int
	Currency    string
	Method      string // "card", "upi" or "netbanking"
	Description string
}

// Receipt is returned by a gateway once a charge succeeds.
type Receipt struct {
	PaymentID string    `json:"paymentId"`
	Reference string    `json:"reference"`
	Amount    int       `json:"amount"`
	Currency  string    `json:"currency"`
	Method    string    `json:"method"`
	PaidAt    time.Time `json:"paidAt"`
}

type CheckoutStatus string

const (
	CheckoutProcessing CheckoutStatus = "processing"
	CheckoutSucceeded  CheckoutStatus = "succeeded"
	CheckoutCancelled  CheckoutStatus = "cancelled"
	CheckoutFailed     CheckoutStatus = "failed"
)

// Checkout tracks one payment attempt from the booking page.
type Checkout struct {
	ID        string         `json:"id"`
	DeviceID  string         `json:"-"`
	Amount    int            `json:"amount"`
	Method    string         `json:"method"`
	Status    CheckoutStatus `json:"status"`
	BookingID string         `json:"bookingId,omitempty"`
	Error     string         `json:"error,omitempty"`
	StartedAt time.Time      `json:"startedAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
}
