// Package catalog holds the static list of bookable diagnostic tests.
package catalog

import (
	"strings"

	"svdiagnostic/models"
)

// CategoryAll matches every test in Filter.
const CategoryAll = "All"

var tests = []models.DiagnosticTest{
	{
		ID:          "t1",
		Name:        "Complete Blood Count (CBC)",
		Category:    models.CategoryBlood,
		Price:       250,
		Description: "Measures different components of your blood.",
		Duration:    "24 Hours",
		Preparation: "No fasting required",
	},
	{
		ID:          "t2",
		Name:        "Lipid Profile",
		Category:    models.CategoryBlood,
		Price:       500,
		Description: "Measures cholesterol levels in the blood.",
		Duration:    "24 Hours",
		Preparation: "10-12 hours fasting mandatory",
	},
	{
		ID:          "t3",
		Name:        "HBA1C (Diabetes Check)",
		Category:    models.CategoryBlood,
		Price:       600,
		Description: "Monitors average blood glucose over 3 months.",
		Duration:    "24 Hours",
	},
	{
		ID:          "t4",
		Name:        "Full Body Checkup (Platinum)",
		Category:    models.CategoryGeneral,
		Price:       4999,
		Description: "Comprehensive health screening including 80+ parameters.",
		Duration:    "48 Hours",
		Preparation: "Fasting required",
	},
	{
		ID:          "t5",
		Name:        "Thyroid Profile (T3, T4, TSH)",
		Category:    models.CategoryBlood,
		Price:       750,
		Description: "Evaluates thyroid gland function.",
		Duration:    "24 Hours",
	},
	{
		ID:          "t6",
		Name:        "ECG (Electrocardiogram)",
		Category:    models.CategoryCardiac,
		Price:       350,
		Description: "Records the electrical activity of your heart.",
		Duration:    "Immediate",
	},
}

var timeSlots = []string{
	"07:00 AM - 08:00 AM",
	"08:00 AM - 09:00 AM",
	"09:00 AM - 10:00 AM",
	"10:00 AM - 11:00 AM",
	"04:00 PM - 05:00 PM",
	"05:00 PM - 06:00 PM",
}

// Tests returns a copy of the catalog in display order.
func Tests() []models.DiagnosticTest {
	out := make([]models.DiagnosticTest, len(tests))
	copy(out, tests)
	return out
}

// TimeSlots returns the bookable collection slots. The first is the form default.
func TimeSlots() []string {
	out := make([]string, len(timeSlots))
	copy(out, timeSlots)
	return out
}

// DefaultSlot is the slot preselected on a fresh booking form.
func DefaultSlot() string {
	return timeSlots[0]
}

// IsTimeSlot reports whether slot is one of the fixed collection slots.
func IsTimeSlot(slot string) bool {
	for _, s := range timeSlots {
		if s == slot {
			return true
		}
	}
	return false
}

// Categories lists the filter chips, "All" first.
func Categories() []string {
	return []string{
		CategoryAll,
		string(models.CategoryBlood),
		string(models.CategoryImaging),
		string(models.CategoryCardiac),
		string(models.CategoryGeneral),
	}
}

// Find looks up a test by id.
func Find(id string) (models.DiagnosticTest, bool) {
	for _, t := range tests {
		if t.ID == id {
			return t, true
		}
	}
	return models.DiagnosticTest{}, false
}

// Resolve maps ids to tests, preserving order and skipping unknown ids.
func Resolve(ids []string) []models.DiagnosticTest {
	out := make([]models.DiagnosticTest, 0, len(ids))
	for _, id := range ids {
		if t, ok := Find(id); ok {
			out = append(out, t)
		}
	}
	return out
}

// Filter applies the category chip and the name search box.
func Filter(category, search string) []models.DiagnosticTest {
	if category == "" {
		category = CategoryAll
	}
	needle := strings.ToLower(search)

	var out []models.DiagnosticTest
	for _, t := range tests {
		matchesCategory := category == CategoryAll || string(t.Category) == category
		matchesSearch := strings.Contains(strings.ToLower(t.Name), needle)
		if matchesCategory && matchesSearch {
			out = append(out, t)
		}
	}
	return out
}

// Names joins the names of the given tests in catalog order.
func Names(ids []string) string {
	want := make(map[string]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}
	var names []string
	for _, t := range tests {
		if want[t.ID] {
			names = append(names, t.Name)
		}
	}
	return strings.Join(names, ", ")
}
