package models

// AdviceRequest is the payload for the health assistant.
type AdviceRequest struct {
	Symptoms string `json:"symptoms"`
}

type AdviceResponse struct {
	Advice string `json:"advice"`
}
