package domain

import (
	"time"

	"locagora-backend/internal/dates"
)

type ExceptionKind string

const (
	ExceptionKindHoliday  ExceptionKind = "HOLIDAY"
	ExceptionKindStoppage ExceptionKind = "STOPPAGE"
	ExceptionKindExtra    ExceptionKind = "EXTRA"
	ExceptionKindOther    ExceptionKind = "OTHER"
)

// CalendarException overrides the weekly default for a single date. Unique
// per date; its Open flag wins outright over the weekly schedule.
type CalendarException struct {
	ID          int32         `json:"id"`
	Date        dates.Date    `json:"date"`
	Kind        ExceptionKind `json:"kind"`
	Open        bool          `json:"open"`
	Description string        `json:"description,omitempty"`
}

// WeeklyScheduleEntry is the default open/close setting for one weekday.
type WeeklyScheduleEntry struct {
	Weekday  time.Weekday `json:"weekday"`
	OpensAt  string       `json:"opens_at"`
	ClosesAt string       `json:"closes_at"`
	Closed   bool         `json:"closed"`
}

type DaySource string

const (
	DaySourceDefault   DaySource = "default"
	DaySourceException DaySource = "exception"
)

// DayStatus is the resolved open/closed state of one calendar day.
type DayStatus struct {
	Date        dates.Date `json:"date"`
	Open        bool       `json:"open"`
	Source      DaySource  `json:"source"`
	Description string     `json:"description,omitempty"`
}

// PublishedMonth marks a month's calendar as bookable by customers. It is a
// visibility gate only; closed days inside a published month stay visible
// but carry zero capacity.
type PublishedMonth struct {
	ID    int32 `json:"id"`
	Year  int   `json:"year"`
	Month int   `json:"month"`
}
