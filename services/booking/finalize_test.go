package booking

import (
	"errors"
	"reflect"
	"testing"

	"svdiagnostic/models"
)

func validDraft() models.BookingDetails {
	return models.BookingDetails{
		Name:           "Asha",
		Mobile:         "9876543210",
		Address:        "12 Temple Street",
		CollectionType: models.CollectionHome,
		Date:           "2026-10-20",
		Slot:           "07:00 AM - 08:00 AM",
	}
}

func TestValidateDraft(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*models.BookingDetails)
		cart   []string
		field  string
		target error
	}{
		{"valid home", func(*models.BookingDetails) {}, []string{"t1"}, "", nil},
		{"valid centre without address", func(d *models.BookingDetails) {
			d.CollectionType = models.CollectionCentre
			d.Address = ""
		}, []string{"t1"}, "", nil},
		{"empty cart", func(*models.BookingDetails) {}, nil, "", ErrEmptyCart},
		{"unknown test", func(*models.BookingDetails) {}, []string{"t99"}, "", ErrUnknownTest},
		{"missing name", func(d *models.BookingDetails) { d.Name = " " }, []string{"t1"}, "name", nil},
		{"missing mobile", func(d *models.BookingDetails) { d.Mobile = "" }, []string{"t1"}, "mobile", nil},
		{"short mobile", func(d *models.BookingDetails) { d.Mobile = "98765" }, []string{"t1"}, "mobile", nil},
		{"formatted mobile", func(d *models.BookingDetails) { d.Mobile = "+91 98765 43210" }, []string{"t1"}, "mobile", nil},
		{"missing date", func(d *models.BookingDetails) { d.Date = "" }, []string{"t1"}, "date", nil},
		{"missing slot", func(d *models.BookingDetails) { d.Slot = "" }, []string{"t1"}, "slot", nil},
		{"unknown slot", func(d *models.BookingDetails) { d.Slot = "11:00 PM - 12:00 AM" }, []string{"t1"}, "slot", nil},
		{"home needs address", func(d *models.BookingDetails) { d.Address = "" }, []string{"t1"}, "address", nil},
		{"bad collection type", func(d *models.BookingDetails) { d.CollectionType = "Drone" }, []string{"t1"}, "collectionType", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := validDraft()
			tt.mutate(&d)
			err := ValidateDraft(d, tt.cart)

			switch {
			case tt.target != nil:
				if !errors.Is(err, tt.target) {
					t.Errorf("expected %v, got %v", tt.target, err)
				}
			case tt.field != "":
				var verr *ValidationError
				if !errors.As(err, &verr) || verr.Field != tt.field {
					t.Errorf("expected validation error on %s, got %v", tt.field, err)
				}
			default:
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
			}
		})
	}
}

func TestNewBooking(t *testing.T) {
	b := NewBooking("SV1", validDraft(), []string{"t1", "t2"}, true)

	if b.Status != models.StatusBooked || b.PaymentStatus != models.PaymentPaid {
		t.Errorf("unexpected statuses %s/%s", b.Status, b.PaymentStatus)
	}
	if b.TotalAmount != 450 {
		t.Errorf("expected discounted total 450, got %d", b.TotalAmount)
	}
	if !reflect.DeepEqual(b.TestIDs, []string{"t1", "t2"}) {
		t.Errorf("unexpected test ids %v", b.TestIDs)
	}
	if b.Address != "12 Temple Street" {
		t.Errorf("expected home address kept, got %q", b.Address)
	}

	if b := NewBooking("SV2", validDraft(), []string{"t1", "t2"}, false); b.TotalAmount != 750 {
		t.Errorf("expected full total 750, got %d", b.TotalAmount)
	}
}

func TestNewBooking_CentreDropsAddress(t *testing.T) {
	d := validDraft()
	d.CollectionType = models.CollectionCentre
	b := NewBooking("SV1", d, []string{"t1"}, false)
	if b.Address != "" {
		t.Errorf("expected no address for centre visit, got %q", b.Address)
	}
}

func TestConfirmationMessage(t *testing.T) {
	b := NewBooking("SV12345", validDraft(), []string{"t1", "t2"}, true)
	want := "Hi Asha, your booking SV12345 at Sri Venkateswara Diagnostic is confirmed for 2026-10-20 (07:00 AM - 08:00 AM). Total: ₹450. Thank you!"
	if got := ConfirmationMessage(b); got != want {
		t.Errorf("unexpected message:\n%s", got)
	}
}

func TestDemoHistory(t *testing.T) {
	h := DemoHistory("9876543210")
	if len(h) != 2 || h[0].ID != "SV88123" || h[1].ID != "SV72456" {
		t.Fatalf("unexpected demo history %+v", h)
	}
	for _, b := range h {
		if b.MobileNumber != "9876543210" || b.Status != models.StatusReportReady {
			t.Errorf("unexpected seeded booking %+v", b)
		}
	}
}
