package domain

import "locagora-backend/internal/dates"

// DayAvailability is the remaining bookable capacity of one equipment for one
// calendar day. Closed days always report zero remaining.
type DayAvailability struct {
	Date      dates.Date `json:"date"`
	Remaining int32      `json:"remaining"`
	Open      bool       `json:"open"`
}
