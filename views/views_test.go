package views

import (
	"errors"
	"math"
	"testing"
	"time"

	"svdiagnostic/models"
	"svdiagnostic/services/booking"
	"svdiagnostic/services/session"
)

func withActive(b models.Booking) session.State {
	s := session.DefaultState()
	s.User = models.User{MobileNumber: b.MobileNumber, IsLoggedIn: true}
	s.History = []models.Booking{b}
	s.ActiveBooking = &b
	s.IsNewCustomer = false
	return s
}

func TestHome(t *testing.T) {
	s := session.DefaultState()
	s.Cart = []string{"t2"}

	v := Home(s, "Blood", "")
	if !v.ShowInstallBanner || !v.FirstBookingOffer || v.CartCount != 1 {
		t.Errorf("unexpected flags %+v", v)
	}
	if len(v.Tests) != 4 {
		t.Fatalf("expected 4 blood tests, got %d", len(v.Tests))
	}
	for _, card := range v.Tests {
		if card.ID == "t2" && (!card.InCart || card.ActionLabel != "Added") {
			t.Errorf("lipid profile should be marked added: %+v", card)
		}
		if card.ID == "t1" && (card.DiscountedPrice != 150 || card.ActionLabel != "Book Now") {
			t.Errorf("unexpected CBC card %+v", card)
		}
	}

	s.IsNewCustomer = false
	s.AppInstalled = true
	v = Home(s, "", "ecg")
	if v.ShowInstallBanner || v.FirstBookingOffer || v.Category != "All" {
		t.Errorf("unexpected flags %+v", v)
	}
	if len(v.Tests) != 1 || v.Tests[0].ID != "t6" || v.Tests[0].DiscountedPrice != 0 {
		t.Errorf("unexpected search result %+v", v.Tests)
	}
}

func TestBooking(t *testing.T) {
	s := session.DefaultState()
	s.Cart = []string{"t1", "t2"}

	v := Booking(s)
	if v.Price.Total != 450 || v.Price.DiscountAmount != 300 {
		t.Errorf("unexpected price %+v", v.Price)
	}
	if v.DiscountLabel != "40% First Booking Off" {
		t.Errorf("unexpected discount label %q", v.DiscountLabel)
	}
	if !v.AddressRequired || v.CanSubmit || v.Problem == "" {
		t.Errorf("blank draft must not be submittable: %+v", v)
	}
	if len(v.Lines) != 2 || len(v.TimeSlots) != 6 {
		t.Errorf("unexpected lines/slots %d/%d", len(v.Lines), len(v.TimeSlots))
	}

	s.Draft = models.BookingDetails{
		Name: "Asha", Mobile: "9876543210", CollectionType: models.CollectionCentre,
		Date: "2026-10-20", Slot: "07:00 AM - 08:00 AM",
	}
	s.IsNewCustomer = false
	v = Booking(s)
	if !v.CanSubmit || v.AddressRequired || v.DiscountLabel != "" || v.Price.Total != 750 {
		t.Errorf("unexpected view %+v", v)
	}
}

func TestConfirmation(t *testing.T) {
	if _, err := Confirmation(session.DefaultState(), false); !errors.Is(err, ErrNoActiveBooking) {
		t.Fatalf("expected ErrNoActiveBooking, got %v", err)
	}

	b := models.Booking{
		ID: "SV1", TestIDs: []string{"t6", "t1"}, MobileNumber: "9876543210",
		CollectionType: models.CollectionCentre, Status: models.StatusBooked,
	}
	v, err := Confirmation(withActive(b), true)
	if err != nil {
		t.Fatal(err)
	}
	if v.CollectionLabel != "Visit Diagnostic Centre" || v.CollectionNote != "Please visit our main branch at the scheduled time." {
		t.Errorf("unexpected collection info %+v", v)
	}
	if v.Notice != "A confirmation SMS and receipt has been sent to 9876543210 and WhatsApp." {
		t.Errorf("unexpected notice %q", v.Notice)
	}
	if len(v.Tests) != 2 || v.Tests[0].Name != "Complete Blood Count (CBC)" || v.Tests[1].Duration != "Immediate" {
		t.Errorf("unexpected tests %+v", v.Tests)
	}

	b.CollectionType = models.CollectionHome
	b.Address = "12 Temple Street"
	v, _ = Confirmation(withActive(b), false)
	if v.CollectionLabel != "Home Collection Service" || v.CollectionNote != "12 Temple Street" {
		t.Errorf("unexpected home collection info %+v", v)
	}
	if v.Notice != "A confirmation SMS and receipt has been sent to 9876543210" {
		t.Errorf("unexpected notice %q", v.Notice)
	}
}

func TestTracking(t *testing.T) {
	tests := []struct {
		status   models.BookingStatus
		index    int
		progress float64
		download bool
	}{
		{models.StatusBooked, 0, 0, false},
		{models.StatusSampleCollected, 1, 100.0 / 3, false},
		{models.StatusInLab, 2, 200.0 / 3, false},
		{models.StatusReportReady, 3, 100, true},
	}
	for _, tt := range tests {
		v, err := Tracking(withActive(models.Booking{ID: "SV1", Status: tt.status}))
		if err != nil {
			t.Fatal(err)
		}
		if v.CurrentIndex != tt.index || math.Abs(v.Progress-tt.progress) > 1e-9 || v.CanDownload != tt.download {
			t.Errorf("%s: got index=%d progress=%v download=%v", tt.status, v.CurrentIndex, v.Progress, v.CanDownload)
		}
		for i, st := range v.Steps {
			if st.Reached != (i <= tt.index) {
				t.Errorf("%s: step %d reached=%v", tt.status, i, st.Reached)
			}
		}
	}
}

func TestReports(t *testing.T) {
	now := time.Date(2026, 10, 14, 12, 0, 0, 0, time.UTC)

	gate, err := Reports(session.DefaultState(), FilterAll, now)
	if err != nil || !gate.LoginRequired || len(gate.Rows) != 0 {
		t.Fatalf("expected login gate, got %+v, %v", gate, err)
	}

	s := session.DefaultState()
	s.User = models.User{MobileNumber: "9876543210", IsLoggedIn: true}
	s.History = append([]models.Booking{
		{ID: "SV3", TestIDs: []string{"t2"}, Date: "2026-10-10", Status: models.StatusBooked},
		{ID: "SV2", TestIDs: []string{"t6"}, Date: "2026-09-20", Status: models.StatusInLab},
	}, booking.DemoHistory("9876543210")...)

	tests := []struct {
		filter ReportFilter
		ids    []string
	}{
		{FilterAll, []string{"SV3", "SV2", "SV88123", "SV72456"}},
		{FilterLast7Days, []string{"SV3"}},
		{FilterLast30, []string{"SV3", "SV2"}},
	}
	for _, tt := range tests {
		v, err := Reports(s, tt.filter, now)
		if err != nil {
			t.Fatal(err)
		}
		if len(v.Rows) != len(tt.ids) {
			t.Fatalf("%s: expected %d rows, got %d", tt.filter, len(tt.ids), len(v.Rows))
		}
		for i, id := range tt.ids {
			if v.Rows[i].Booking.ID != id {
				t.Errorf("%s: row %d is %s, want %s", tt.filter, i, v.Rows[i].Booking.ID, id)
			}
		}
	}

	v, _ := Reports(s, FilterAll, now)
	if v.Rows[0].Action != "Track Sample" || v.Rows[2].Action != "Download PDF" {
		t.Errorf("unexpected actions %q / %q", v.Rows[0].Action, v.Rows[2].Action)
	}
	if v.Rows[2].TestNames != "Complete Blood Count (CBC), Thyroid Profile (T3, T4, TSH)" {
		t.Errorf("unexpected test names %q", v.Rows[2].TestNames)
	}
	if !v.ShowFeedbackPrompt {
		t.Error("expected feedback prompt")
	}

	s.FeedbackSubmitted = true
	if v, _ := Reports(s, FilterAll, now); v.ShowFeedbackPrompt {
		t.Error("feedback prompt shown after submission")
	}

	if _, err := Reports(s, "90days", now); !errors.Is(err, ErrUnknownFilter) {
		t.Errorf("expected ErrUnknownFilter, got %v", err)
	}
}
