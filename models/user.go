package models

type User struct {
	MobileNumber string `json:"mobileNumber"`
	IsLoggedIn   bool   `json:"isLoggedIn"`
}

// Feedback is the review left from the reports page.
type Feedback struct {
	Rating      int    `json:"rating"`
	Comment     string `json:"comment"`
	PatientName string `json:"patientName"`
}
