package booking

import (
	"fmt"
	"strings"

	"svdiagnostic/models"
	"svdiagnostic/services/catalog"
)

// ValidateDraft checks the preconditions for finalizing a booking.
func ValidateDraft(draft models.BookingDetails, cart []string) error {
	if len(cart) == 0 {
		return ErrEmptyCart
	}
	for _, id := range cart {
		if _, ok := catalog.Find(id); !ok {
			return fmt.Errorf("%w: %s", ErrUnknownTest, id)
		}
	}
	if strings.TrimSpace(draft.Name) == "" {
		return NewValidationError("name", "patient name is required")
	}
	if strings.TrimSpace(draft.Mobile) == "" {
		return NewValidationError("mobile", "mobile number is required")
	}
	if !ValidMobile(draft.Mobile) {
		return NewValidationError("mobile", "mobile number must be 10 digits")
	}
	if strings.TrimSpace(draft.Date) == "" {
		return NewValidationError("date", "collection date is required")
	}
	if strings.TrimSpace(draft.Slot) == "" {
		return NewValidationError("slot", "time slot is required")
	}
	if !catalog.IsTimeSlot(draft.Slot) {
		return NewValidationError("slot", "unknown time slot")
	}
	switch draft.CollectionType {
	case models.CollectionHome:
		if strings.TrimSpace(draft.Address) == "" {
			return NewValidationError("address", "address is required for home collection")
		}
	case models.CollectionCentre:
	default:
		return NewValidationError("collectionType", "collection type must be Home or Centre")
	}
	return nil
}

// ValidMobile reports whether m is a bare 10 digit mobile number.
func ValidMobile(m string) bool {
	if len(m) != 10 {
		return false
	}
	for _, r := range m {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// NewBooking builds the record created on successful payment. The address is
// kept only for home collection.
func NewBooking(id string, draft models.BookingDetails, cart []string, isFirstBooking bool) models.Booking {
	price := CalculatePrice(catalog.Resolve(cart), isFirstBooking)

	testIDs := make([]string, len(cart))
	copy(testIDs, cart)

	b := models.Booking{
		ID:             id,
		TestIDs:        testIDs,
		PatientName:    draft.Name,
		MobileNumber:   draft.Mobile,
		Date:           draft.Date,
		TimeSlot:       draft.Slot,
		CollectionType: draft.CollectionType,
		Status:         models.StatusBooked,
		PaymentStatus:  models.PaymentPaid,
		TotalAmount:    price.Total,
	}
	if draft.CollectionType == models.CollectionHome {
		b.Address = draft.Address
	}
	return b
}

// ConfirmationMessage is the SMS text sent once a booking is paid.
func ConfirmationMessage(b models.Booking) string {
	return fmt.Sprintf(
		"Hi %s, your booking %s at Sri Venkateswara Diagnostic is confirmed for %s (%s). Total: ₹%d. Thank you!",
		b.PatientName, b.ID, b.Date, b.TimeSlot, b.TotalAmount,
	)
}

// DemoHistory is seeded on first login so the reports page has something to show.
func DemoHistory(mobile string) []models.Booking {
	return []models.Booking{
		{
			ID:             "SV88123",
			TestIDs:        []string{"t1", "t5"},
			PatientName:    "Self",
			MobileNumber:   mobile,
			Date:           "2023-11-15",
			TimeSlot:       "08:00 AM - 09:00 AM",
			CollectionType: models.CollectionCentre,
			Status:         models.StatusReportReady,
			PaymentStatus:  models.PaymentPaid,
			TotalAmount:    1000,
		},
		{
			ID:             "SV72456",
			TestIDs:        []string{"t2"},
			PatientName:    "Self",
			MobileNumber:   mobile,
			Date:           "2023-08-10",
			TimeSlot:       "07:00 AM - 08:00 AM",
			CollectionType: models.CollectionHome,
			Status:         models.StatusReportReady,
			PaymentStatus:  models.PaymentPaid,
			TotalAmount:    500,
		},
	}
}
