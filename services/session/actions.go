package session

import (
	"errors"

	"svdiagnostic/models"
)

var (
	ErrUnknownPage         = errors.New("unknown page")
	ErrInvalidMobile       = errors.New("mobile number must be 10 digits")
	ErrLogoutNotConfirmed  = errors.New("logout not confirmed")
	ErrLocationUnavailable = errors.New("unable to retrieve location, please type your address manually")
	ErrInvalidRating       = errors.New("rating must be between 1 and 5")
	ErrNothingToReview     = errors.New("no bookings to review")
	ErrAlreadyInCart       = errors.New("test already in cart")
)

// Action is a state transition request.
type Action interface {
	actionName() string
}

type Navigate struct{ Page Page }

// AddToCart appends a test. With IfAbsent set, a test already in the cart is
// rejected with ErrAlreadyInCart instead of being added again.
type AddToCart struct {
	TestID   string
	IfAbsent bool
}

type RemoveFromCart struct{ TestID string }

// UpdateDraft replaces the booking form contents.
type UpdateDraft struct{ Draft models.BookingDetails }

// DetectLocation carries the result of a one-shot device location query.
type DetectLocation struct {
	Lat, Lng    float64
	Unavailable bool
}

// FinalizeBooking turns an order into a paid booking. Order is the snapshot a
// payment was charged for; when nil the live cart and draft are used. The
// manager fills BookingID when empty.
type FinalizeBooking struct {
	BookingID string
	Order     *Order
}

type Login struct{ Mobile string }

// Logout wipes the device. Confirmed must be set by the caller's yes/no prompt.
type Logout struct{ Confirmed bool }

type SubmitFeedback struct{ Feedback models.Feedback }

// SelectBooking makes a history entry the tracked booking.
type SelectBooking struct{ ID string }

// AdvanceBooking moves a booking one status forward.
type AdvanceBooking struct{ ID string }

type MarkInstalled struct{}

func (Navigate) actionName() string        { return "navigate" }
func (AddToCart) actionName() string       { return "add_to_cart" }
func (RemoveFromCart) actionName() string  { return "remove_from_cart" }
func (UpdateDraft) actionName() string     { return "update_draft" }
func (DetectLocation) actionName() string  { return "detect_location" }
func (FinalizeBooking) actionName() string { return "finalize_booking" }
func (Login) actionName() string           { return "login" }
func (Logout) actionName() string          { return "logout" }
func (SubmitFeedback) actionName() string  { return "submit_feedback" }
func (SelectBooking) actionName() string   { return "select_booking" }
func (AdvanceBooking) actionName() string  { return "advance_booking" }
func (MarkInstalled) actionName() string   { return "mark_installed" }

// Effect is a side effect requested by the reducer and run by the Manager.
type Effect interface {
	effectName() string
}

// SendNotification asks the notifier to text the patient.
type SendNotification struct {
	Mobile  string
	Message string
}

// ClearStorage deletes every durable key for the device.
type ClearStorage struct{}

// RecordFeedback hands a submitted review to the log.
type RecordFeedback struct{ Feedback models.Feedback }

func (SendNotification) effectName() string { return "send_notification" }
func (ClearStorage) effectName() string     { return "clear_storage" }
func (RecordFeedback) effectName() string   { return "record_feedback" }
