package models

// Category groups catalog tests.
type Category string

const (
	CategoryBlood   Category = "Blood"
	CategoryImaging Category = "Imaging"
	CategoryCardiac Category = "Cardiac"
	CategoryGeneral Category = "General"
)

// DiagnosticTest is an immutable catalog entry. Duration is the report
// turnaround as free text.
type DiagnosticTest struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Category    Category `json:"category"`
	Price       int      `json:"price"` // whole rupees
	Description string   `json:"description"`
	Duration    string   `json:"duration"`
	Preparation string   `json:"preparation,omitempty"`
}
