// Package views turns a device's session state into the page models the
// client renders.
package views

import (
	"errors"
	"fmt"
	"time"

	"svdiagnostic/models"
	"svdiagnostic/services/booking"
	"svdiagnostic/services/catalog"
	"svdiagnostic/services/session"
)

var (
	ErrNoActiveBooking = errors.New("no active booking")
	ErrUnknownFilter   = errors.New("unknown report filter")
)

const (
	actionBookNow  = "Book Now"
	actionAdded    = "Added"
	actionDownload = "Download PDF"
	actionTrack    = "Track Sample"
)

type TestCard struct {
	models.DiagnosticTest
	DiscountedPrice int    `json:"discountedPrice,omitempty"`
	InCart          bool   `json:"inCart"`
	ActionLabel     string `json:"actionLabel"`
}

type HomeView struct {
	ShowInstallBanner bool       `json:"showInstallBanner"`
	FirstBookingOffer bool       `json:"firstBookingOffer"`
	IsLoggedIn        bool       `json:"isLoggedIn"`
	CartCount         int        `json:"cartCount"`
	Categories        []string   `json:"categories"`
	Category          string     `json:"category"`
	Search            string     `json:"search"`
	Tests             []TestCard `json:"tests"`
}

// Home lists the catalog filtered by category and name search. Cards already
// in the cart carry InCart so the add control can be disabled.
func Home(s session.State, category, search string) HomeView {
	if category == "" {
		category = catalog.CategoryAll
	}
	tests := catalog.Filter(category, search)
	cards := make([]TestCard, 0, len(tests))
	for _, t := range tests {
		card := TestCard{DiagnosticTest: t, ActionLabel: actionBookNow}
		if s.IsNewCustomer {
			card.DiscountedPrice = booking.DiscountedPrice(t.Price)
		}
		if booking.InCart(s.Cart, t.ID) {
			card.InCart = true
			card.ActionLabel = actionAdded
		}
		cards = append(cards, card)
	}
	return HomeView{
		ShowInstallBanner: !s.AppInstalled,
		FirstBookingOffer: s.IsNewCustomer,
		IsLoggedIn:        s.User.IsLoggedIn,
		CartCount:         len(s.Cart),
		Categories:        catalog.Categories(),
		Category:          category,
		Search:            search,
		Tests:             cards,
	}
}

type CartLine struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Price int    `json:"price"`
}

type BookingView struct {
	Draft           models.BookingDetails `json:"draft"`
	TimeSlots       []string              `json:"timeSlots"`
	Lines           []CartLine            `json:"lines"`
	Price           models.PriceBreakdown `json:"price"`
	DiscountLabel   string                `json:"discountLabel,omitempty"`
	AddressRequired bool                  `json:"addressRequired"`
	CanSubmit       bool                  `json:"canSubmit"`
	Problem         string                `json:"problem,omitempty"`
}

// Booking is the checkout form with the live price breakdown.
func Booking(s session.State) BookingView {
	tests := s.CartTests()
	lines := make([]CartLine, 0, len(tests))
	for _, t := range tests {
		lines = append(lines, CartLine{ID: t.ID, Name: t.Name, Price: t.Price})
	}

	v := BookingView{
		Draft:           s.Draft,
		TimeSlots:       catalog.TimeSlots(),
		Lines:           lines,
		Price:           booking.CalculatePrice(tests, s.IsNewCustomer),
		AddressRequired: s.Draft.CollectionType == models.CollectionHome,
	}
	if s.IsNewCustomer && len(tests) > 0 {
		v.DiscountLabel = fmt.Sprintf("%.0f%% First Booking Off", booking.FirstBookingDiscountRate*100)
	}
	if err := booking.ValidateDraft(s.Draft, s.Cart); err != nil {
		v.Problem = err.Error()
	} else {
		v.CanSubmit = true
	}
	return v
}

type BookedTest struct {
	Name     string `json:"name"`
	Duration string `json:"duration"`
}

type ConfirmationView struct {
	Booking         models.Booking `json:"booking"`
	Tests           []BookedTest   `json:"tests"`
	CollectionLabel string         `json:"collectionLabel"`
	CollectionNote  string         `json:"collectionNote"`
	Notice          string         `json:"notice"`
}

// Confirmation summarises the active booking. whatsapp reflects the opt-in
// toggle on the page.
func Confirmation(s session.State, whatsapp bool) (ConfirmationView, error) {
	if s.ActiveBooking == nil {
		return ConfirmationView{}, ErrNoActiveBooking
	}
	b := *s.ActiveBooking

	var tests []BookedTest
	for _, t := range catalog.Tests() {
		if booking.InCart(b.TestIDs, t.ID) {
			tests = append(tests, BookedTest{Name: t.Name, Duration: t.Duration})
		}
	}

	v := ConfirmationView{
		Booking: b,
		Tests:   tests,
		Notice:  "A confirmation SMS and receipt has been sent to " + b.MobileNumber,
	}
	if b.CollectionType == models.CollectionHome {
		v.CollectionLabel = "Home Collection Service"
	} else {
		v.CollectionLabel = "Visit Diagnostic Centre"
	}
	if b.Address != "" {
		v.CollectionNote = b.Address
	} else {
		v.CollectionNote = "Please visit our main branch at the scheduled time."
	}
	if whatsapp {
		v.Notice += " and WhatsApp."
	}
	return v, nil
}

type Step struct {
	Label   models.BookingStatus `json:"label"`
	Reached bool                 `json:"reached"`
}

type TrackingView struct {
	Booking      models.Booking `json:"booking"`
	Steps        []Step         `json:"steps"`
	CurrentIndex int            `json:"currentIndex"`
	Progress     float64        `json:"progress"`
	CanDownload  bool           `json:"canDownload"`
}

// Tracking shows how far the active booking has progressed.
func Tracking(s session.State) (TrackingView, error) {
	if s.ActiveBooking == nil {
		return TrackingView{}, ErrNoActiveBooking
	}
	b := *s.ActiveBooking
	idx := booking.StatusIndex(b.Status)
	all := booking.Steps()

	steps := make([]Step, len(all))
	for i, st := range all {
		steps[i] = Step{Label: st, Reached: i <= idx}
	}
	progress := 0.0
	if idx > 0 {
		progress = float64(idx) / float64(len(all)-1) * 100
	}
	return TrackingView{
		Booking:      b,
		Steps:        steps,
		CurrentIndex: idx,
		Progress:     progress,
		CanDownload:  booking.IsTerminal(b.Status),
	}, nil
}

type ReportFilter string

const (
	FilterAll       ReportFilter = "all"
	FilterLast7Days ReportFilter = "7days"
	FilterLast30    ReportFilter = "30days"
)

func (f ReportFilter) days() (int, error) {
	switch f {
	case FilterAll, "":
		return 0, nil
	case FilterLast7Days:
		return 7, nil
	case FilterLast30:
		return 30, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownFilter, string(f))
}

type ReportRow struct {
	Booking   models.Booking `json:"booking"`
	TestNames string         `json:"testNames"`
	Action    string         `json:"action"`
}

type ReportsView struct {
	LoginRequired      bool         `json:"loginRequired"`
	MobileNumber       string       `json:"mobileNumber,omitempty"`
	Filter             ReportFilter `json:"filter"`
	Rows               []ReportRow  `json:"rows"`
	HasHistory         bool         `json:"hasHistory"`
	ShowFeedbackPrompt bool         `json:"showFeedbackPrompt"`
}

// Reports lists history rows dated within the filter window ending at now.
// Logged-out devices only get the login gate.
func Reports(s session.State, filter ReportFilter, now time.Time) (ReportsView, error) {
	window, err := filter.days()
	if err != nil {
		return ReportsView{}, err
	}
	if filter == "" {
		filter = FilterAll
	}
	if !s.User.IsLoggedIn {
		return ReportsView{LoginRequired: true, Filter: filter, Rows: []ReportRow{}}, nil
	}

	rows := make([]ReportRow, 0, len(s.History))
	for _, b := range s.History {
		if window > 0 && !withinDays(b.Date, now, window) {
			continue
		}
		action := actionTrack
		if booking.IsTerminal(b.Status) {
			action = actionDownload
		}
		rows = append(rows, ReportRow{
			Booking:   b,
			TestNames: catalog.Names(b.TestIDs),
			Action:    action,
		})
	}
	return ReportsView{
		MobileNumber:       s.User.MobileNumber,
		Filter:             filter,
		Rows:               rows,
		HasHistory:         len(s.History) > 0,
		ShowFeedbackPrompt: !s.FeedbackSubmitted && len(s.History) > 0,
	}, nil
}

// withinDays reports whether date (YYYY-MM-DD) is at most n days before now.
// Future dates count as within; unparseable dates never do.
func withinDays(date string, now time.Time, n int) bool {
	d, err := time.ParseInLocation("2006-01-02", date, now.Location())
	if err != nil {
		return false
	}
	return now.Sub(d).Hours()/24 <= float64(n)
}
