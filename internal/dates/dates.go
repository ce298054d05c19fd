// Package dates provides a calendar-date value type with no time-of-day and
// no time zone. Every date that crosses the API boundary is built from its
// year/month/day components; parsing an ISO timestamp directly would let the
// zone offset shift the value to the previous day.
package dates

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Date is a plain calendar date.
type Date struct {
	Year  int
	Month int
	Day   int
}

// Parse converts a yyyy-mm-dd string into a Date, validating each component.
func Parse(s string) (Date, error) {
	parts := strings.Split(s, "-")
	if len(parts) != 3 {
		return Date{}, fmt.Errorf("invalid date %q, expected yyyy-mm-dd", s)
	}

	year, err := strconv.Atoi(parts[0])
	if err != nil {
		return Date{}, fmt.Errorf("invalid year in %q: %v", s, err)
	}
	month, err := strconv.Atoi(parts[1])
	if err != nil {
		return Date{}, fmt.Errorf("invalid month in %q: %v", s, err)
	}
	day, err := strconv.Atoi(parts[2])
	if err != nil {
		return Date{}, fmt.Errorf("invalid day in %q: %v", s, err)
	}

	if month < 1 || month > 12 {
		return Date{}, fmt.Errorf("month out of range in %q", s)
	}
	if day < 1 || day > DaysInMonth(year, month) {
		return Date{}, fmt.Errorf("day out of range in %q", s)
	}

	return Date{Year: year, Month: month, Day: day}, nil
}

// FromTime truncates a time.Time to its calendar date in the time's location.
func FromTime(t time.Time) Date {
	return Date{Year: t.Year(), Month: int(t.Month()), Day: t.Day()}
}

// String formats the date as yyyy-mm-dd.
func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

// MarshalJSON emits the date as a yyyy-mm-dd JSON string.
func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

// UnmarshalJSON parses a yyyy-mm-dd JSON string. null and the empty string
// leave the zero value.
func (d *Date) UnmarshalJSON(data []byte) error {
	var raw *string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw == nil || *raw == "" {
		*d = Date{}
		return nil
	}
	parsed, err := Parse(*raw)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// IsZero reports whether d is the zero value.
func (d Date) IsZero() bool {
	return d.Year == 0 && d.Month == 0 && d.Day == 0
}

func (d Date) toTime() time.Time {
	return time.Date(d.Year, time.Month(d.Month), d.Day, 0, 0, 0, 0, time.UTC)
}

// Weekday returns the day of the week d falls on.
func (d Date) Weekday() time.Weekday {
	return d.toTime().Weekday()
}

// Before reports whether d is strictly earlier than other.
func (d Date) Before(other Date) bool {
	if d.Year != other.Year {
		return d.Year < other.Year
	}
	if d.Month != other.Month {
		return d.Month < other.Month
	}
	return d.Day < other.Day
}

// After reports whether d is strictly later than other.
func (d Date) After(other Date) bool {
	return other.Before(d)
}

// Equal reports whether d and other are the same calendar day.
func (d Date) Equal(other Date) bool {
	return d == other
}

// Next returns the following calendar day.
func (d Date) Next() Date {
	return FromTime(d.toTime().AddDate(0, 0, 1))
}

// AddDays returns the date n days after d (n may be negative).
func (d Date) AddDays(n int) Date {
	return FromTime(d.toTime().AddDate(0, 0, n))
}

// DaysUntilInclusive counts the days from d to end with both endpoints
// included, so a same-day span counts as 1. end must not be before d.
func (d Date) DaysUntilInclusive(end Date) int {
	return int(end.toTime().Sub(d.toTime()).Hours()/24) + 1
}

// Covers reports whether day falls inside the inclusive range [start, end].
func Covers(start, end, day Date) bool {
	return !day.Before(start) && !day.After(end)
}

// Overlaps reports whether the inclusive ranges [aStart, aEnd] and
// [bStart, bEnd] share at least one day.
func Overlaps(aStart, aEnd, bStart, bEnd Date) bool {
	return !aStart.After(bEnd) && !bStart.After(aEnd)
}

// DaysInMonth returns the number of days in the given month.
func DaysInMonth(year, month int) int {
	if month == 2 {
		if (year%4 == 0 && year%100 != 0) || year%400 == 0 {
			return 29
		}
		return 28
	}
	if month == 4 || month == 6 || month == 9 || month == 11 {
		return 30
	}
	return 31
}

// MonthRange returns the first and last day of the given month.
func MonthRange(year, month int) (Date, Date) {
	return Date{Year: year, Month: month, Day: 1},
		Date{Year: year, Month: month, Day: DaysInMonth(year, month)}
}
