package session

import (
	"fmt"

	"svdiagnostic/models"
	"svdiagnostic/services/booking"
	"svdiagnostic/services/catalog"
)

// Reduce applies a to s and returns the next state plus the effects to run.
// It never mutates s. On error the returned state is s unchanged.
func Reduce(s State, a Action) (State, []Effect, error) {
	next := s.Clone()

	switch a := a.(type) {
	case Navigate:
		if !a.Page.Valid() {
			return s, nil, fmt.Errorf("%w: %q", ErrUnknownPage, a.Page)
		}
		if next.Page == PageBooking && a.Page != PageBooking {
			next.Draft = DefaultDraft()
		}
		next.Page = a.Page
		return next, nil, nil

	case AddToCart:
		if _, ok := catalog.Find(a.TestID); !ok {
			return s, nil, fmt.Errorf("%w: %s", booking.ErrUnknownTest, a.TestID)
		}
		if a.IfAbsent && booking.InCart(next.Cart, a.TestID) {
			return s, nil, fmt.Errorf("%w: %s", ErrAlreadyInCart, a.TestID)
		}
		next.Cart = booking.AddToCart(next.Cart, a.TestID)
		return next, nil, nil

	case RemoveFromCart:
		next.Cart = booking.RemoveFromCart(next.Cart, a.TestID)
		return next, nil, nil

	case UpdateDraft:
		d := a.Draft
		if d.CollectionType == "" {
			d.CollectionType = models.CollectionHome
		}
		if d.Slot == "" {
			d.Slot = catalog.DefaultSlot()
		}
		next.Draft = d
		return next, nil, nil

	case DetectLocation:
		if a.Unavailable {
			return s, nil, ErrLocationUnavailable
		}
		next.Draft.Address = FormatGPSAddress(a.Lat, a.Lng)
		return next, nil, nil

	case FinalizeBooking:
		next, effects, err := finalize(next, a)
		if err != nil {
			return s, nil, err
		}
		return next, effects, nil

	case Login:
		if !booking.ValidMobile(a.Mobile) {
			return s, nil, ErrInvalidMobile
		}
		next.User = models.User{MobileNumber: a.Mobile, IsLoggedIn: true}
		next.IsNewCustomer = false
		if len(next.History) == 0 {
			next.History = booking.DemoHistory(a.Mobile)
		}
		next.Page = PageReports
		return next, nil, nil

	case Logout:
		if !a.Confirmed {
			return s, nil, ErrLogoutNotConfirmed
		}
		next.User = models.User{}
		next.ActiveBooking = nil
		next.History = []models.Booking{}
		next.FeedbackSubmitted = false
		next.IsNewCustomer = true
		next.AppInstalled = false
		next.Page = PageHome
		return next, []Effect{ClearStorage{}}, nil

	case SubmitFeedback:
		if len(next.History) == 0 {
			return s, nil, ErrNothingToReview
		}
		if a.Feedback.Rating < 1 || a.Feedback.Rating > 5 {
			return s, nil, ErrInvalidRating
		}
		next.FeedbackSubmitted = true
		return next, []Effect{RecordFeedback{Feedback: a.Feedback}}, nil

	case SelectBooking:
		b, ok := next.FindBooking(a.ID)
		if !ok {
			return s, nil, fmt.Errorf("%w: %s", booking.ErrBookingNotFound, a.ID)
		}
		next.ActiveBooking = &b
		next.Page = PageTracking
		return next, nil, nil

	case AdvanceBooking:
		next, err := advance(next, a.ID)
		if err != nil {
			return s, nil, err
		}
		return next, nil, nil

	case MarkInstalled:
		next.AppInstalled = true
		return next, nil, nil
	}

	return s, nil, fmt.Errorf("unsupported action %T", a)
}

func finalize(next State, a FinalizeBooking) (State, []Effect, error) {
	order := next.PendingOrder()
	if a.Order != nil {
		order = *a.Order
	}
	if err := order.Validate(); err != nil {
		return next, nil, err
	}

	b := booking.NewBooking(a.BookingID, order.Draft, order.Cart, order.IsNewCustomer)

	active := cloneBooking(b)
	next.ActiveBooking = &active
	next.History = append([]models.Booking{b}, next.History...)
	next.User = models.User{MobileNumber: next.Draft.Mobile, IsLoggedIn: true}
	next.Cart = []string{}
	next.IsNewCustomer = false
	next.Draft = DefaultDraft()
	next.Page = PageConfirmation

	effects := []Effect{SendNotification{
		Mobile:  b.MobileNumber,
		Message: booking.ConfirmationMessage(b),
	}}
	return next, effects, nil
}

func advance(next State, id string) (State, error) {
	for i, b := range next.History {
		if b.ID != id {
			continue
		}
		advanced, err := booking.AdvanceStatus(b)
		if err != nil {
			return next, fmt.Errorf("advance %s: %w", id, err)
		}
		next.History[i] = advanced
		if next.ActiveBooking != nil && next.ActiveBooking.ID == id {
			active := cloneBooking(advanced)
			next.ActiveBooking = &active
		}
		return next, nil
	}
	return next, fmt.Errorf("%w: %s", booking.ErrBookingNotFound, id)
}

// FormatGPSAddress renders coordinates the way the address box shows them.
func FormatGPSAddress(lat, lng float64) string {
	return fmt.Sprintf("Lat: %.4f, Lng: %.4f (Location detected via GPS)", lat, lng)
}

