package payment

import "errors"

var (
	ErrPaymentNotFound    = errors.New("payment not found")
	ErrUnsupportedMethod  = errors.New("unsupported payment method")
	ErrCheckoutInProgress = errors.New("a payment is already in progress for this device")
	ErrCheckoutSettled    = errors.New("payment can no longer be cancelled")
	ErrPaymentDeclined    = errors.New("payment declined")
)
