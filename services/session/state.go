// Package session holds the per-device application state and the reducer
// that moves it between pages, carts and bookings.
package session

import (
	"svdiagnostic/models"
	"svdiagnostic/services/booking"
	"svdiagnostic/services/catalog"
)

type Page string

const (
	PageHome         Page = "home"
	PageBooking      Page = "booking"
	PageConfirmation Page = "confirmation"
	PageTracking     Page = "tracking"
	PageReports      Page = "reports"
)

// Valid reports whether p is a routable page.
func (p Page) Valid() bool {
	switch p {
	case PageHome, PageBooking, PageConfirmation, PageTracking, PageReports:
		return true
	}
	return false
}

// State is everything one device knows. Page, Cart and Draft live in memory
// only; the rest is mirrored to durable storage.
type State struct {
	Page              Page                  `json:"page"`
	Cart              []string              `json:"cart"`
	Draft             models.BookingDetails `json:"draft"`
	User              models.User           `json:"user"`
	ActiveBooking     *models.Booking       `json:"activeBooking"`
	History           []models.Booking      `json:"history"`
	FeedbackSubmitted bool                  `json:"feedbackSubmitted"`
	IsNewCustomer     bool                  `json:"isNewCustomer"`
	AppInstalled      bool                  `json:"appInstalled"`
}

// DefaultDraft is a blank booking form.
func DefaultDraft() models.BookingDetails {
	return models.BookingDetails{
		CollectionType: models.CollectionHome,
		Slot:           catalog.DefaultSlot(),
	}
}

// DefaultState is what a device sees with nothing stored.
func DefaultState() State {
	return State{
		Page:          PageHome,
		Cart:          []string{},
		Draft:         DefaultDraft(),
		History:       []models.Booking{},
		IsNewCustomer: true,
	}
}

// Clone returns a copy that shares no slices or pointers with s.
func (s State) Clone() State {
	out := s
	out.Cart = append([]string{}, s.Cart...)
	out.History = make([]models.Booking, len(s.History))
	for i, b := range s.History {
		out.History[i] = cloneBooking(b)
	}
	if s.ActiveBooking != nil {
		b := cloneBooking(*s.ActiveBooking)
		out.ActiveBooking = &b
	}
	return out
}

func cloneBooking(b models.Booking) models.Booking {
	b.TestIDs = append([]string{}, b.TestIDs...)
	return b
}

// Order is what a booking is built from: the tests, the patient form and
// whether the first-booking discount applies.
type Order struct {
	Cart          []string              `json:"cart"`
	Draft         models.BookingDetails `json:"draft"`
	IsNewCustomer bool                  `json:"isNewCustomer"`
}

// Validate checks the order can be booked.
func (o Order) Validate() error {
	return booking.ValidateDraft(o.Draft, o.Cart)
}

// Price quotes the order.
func (o Order) Price() models.PriceBreakdown {
	return booking.CalculatePrice(catalog.Resolve(o.Cart), o.IsNewCustomer)
}

// PendingOrder snapshots the cart and form as they stand now.
func (s State) PendingOrder() Order {
	return Order{
		Cart:          append([]string{}, s.Cart...),
		Draft:         s.Draft,
		IsNewCustomer: s.IsNewCustomer,
	}
}

// CartTests resolves the cart against the catalog.
func (s State) CartTests() []models.DiagnosticTest {
	return catalog.Resolve(s.Cart)
}

// FindBooking looks up a history entry by id.
func (s State) FindBooking(id string) (models.Booking, bool) {
	for _, b := range s.History {
		if b.ID == id {
			return b, true
		}
	}
	return models.Booking{}, false
}
