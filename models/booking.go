package models

// BookingStatus is the forward-only progression of a booking.
type BookingStatus string

const (
	StatusBooked          BookingStatus = "Booked"
	StatusSampleCollected BookingStatus = "Sample Collected"
	StatusInLab           BookingStatus = "In Lab"
	StatusReportReady     BookingStatus = "Report Ready"
)

type PaymentStatus string

const (
	PaymentPending PaymentStatus = "Pending"
	PaymentPaid    PaymentStatus = "Paid"
)

type CollectionType string

const (
	CollectionHome   CollectionType = "Home"
	CollectionCentre CollectionType = "Centre"
)

// Booking represents a confirmed, paid reservation for one or more tests.
// Date is "YYYY-MM-DD"; Address is set for home collection only.
type Booking struct {
	ID             string         `json:"id"`
	TestIDs        []string       `json:"testIds"`
	PatientName    string         `json:"patientName"`
	MobileNumber   string         `json:"mobileNumber"`
	Date           string         `json:"date"`
	TimeSlot       string         `json:"timeSlot"`
	CollectionType CollectionType `json:"collectionType"`
	Address        string         `json:"address,omitempty"`
	Status         BookingStatus  `json:"status"`
	PaymentStatus  PaymentStatus  `json:"paymentStatus"`
	TotalAmount    int            `json:"totalAmount"`
}

// BookingDetails is the draft captured by the booking form.
type BookingDetails struct {
	Name           string         `json:"name"`
	Mobile         string         `json:"mobile"`
	Address        string         `json:"address"`
	CollectionType CollectionType `json:"collectionType"`
	Date           string         `json:"date"`
	Slot           string         `json:"slot"`
}

// PriceBreakdown is the output of the pricing engine.
type PriceBreakdown struct {
	Subtotal       int `json:"subtotal"`
	DiscountAmount int `json:"discountAmount"`
	Total          int `json:"total"`
}
