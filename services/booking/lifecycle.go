package booking

import "svdiagnostic/models"

var steps = []models.BookingStatus{
	models.StatusBooked,
	models.StatusSampleCollected,
	models.StatusInLab,
	models.StatusReportReady,
}

// Steps returns the status progression in order.
func Steps() []models.BookingStatus {
	out := make([]models.BookingStatus, len(steps))
	copy(out, steps)
	return out
}

// StatusIndex is the position of status in the progression, or -1.
func StatusIndex(status models.BookingStatus) int {
	for i, s := range steps {
		if s == status {
			return i
		}
	}
	return -1
}

// IsTerminal reports whether the report can be downloaded.
func IsTerminal(status models.BookingStatus) bool {
	return status == models.StatusReportReady
}

// AdvanceStatus moves b one step forward. Nothing in the service calls this on
// its own; it is driven only by an explicit external trigger.
func AdvanceStatus(b models.Booking) (models.Booking, error) {
	idx := StatusIndex(b.Status)
	switch {
	case idx < 0:
		return b, ErrUnknownStatus
	case idx == len(steps)-1:
		return b, ErrTerminalStatus
	}
	b.Status = steps[idx+1]
	return b, nil
}
