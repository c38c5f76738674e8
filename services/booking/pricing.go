package booking

import (
	"math"

	"svdiagnostic/models"
)

// FirstBookingDiscountRate is the one-time reduction granted to new customers.
const FirstBookingDiscountRate = 0.4

// CalculatePrice sums the cart and applies the first-booking discount.
// An empty cart prices to zero.
func CalculatePrice(cart []models.DiagnosticTest, isFirstBooking bool) models.PriceBreakdown {
	subtotal := 0
	for _, t := range cart {
		subtotal += t.Price
	}

	discount := 0
	if isFirstBooking {
		discount = int(math.Round(float64(subtotal) * FirstBookingDiscountRate))
	}

	return models.PriceBreakdown{
		Subtotal:       subtotal,
		DiscountAmount: discount,
		Total:          subtotal - discount,
	}
}

// DiscountedPrice is the per-test price shown on catalog cards during the offer.
func DiscountedPrice(price int) int {
	return int(math.Round(float64(price) * (1 - FirstBookingDiscountRate)))
}
