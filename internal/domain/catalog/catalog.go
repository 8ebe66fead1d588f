// Package catalog derives the finite set of bookable (date, slot) pairs: a
// forward window of calendar days crossed with a fixed daily slot template.
// It holds no state of its own; everything is a function of "today".
package catalog

import (
	"time"
)

// DateLayout is the wire format for calendar dates.
const DateLayout = "2006-01-02"

// DefaultWindowDays is the length of the booking window including today.
const DefaultWindowDays = 7

// slotTemplate is the fixed ordered list of daily slot labels. Every doctor
// shares the same template; per-doctor hours are out of scope.
var slotTemplate = []string{
	"9:00 AM",
	"10:30 AM",
	"12:00 PM",
	"2:30 PM",
	"4:00 PM",
	"5:30 PM",
}

// Day is one bookable calendar day in the window.
type Day struct {
	Date    string `json:"date"`     // YYYY-MM-DD
	DayName string `json:"day_name"` // e.g. "Friday"
	Label   string `json:"label"`    // e.g. "Jan 10, 2025"
	IsToday bool   `json:"is_today"`
}

// Times returns the daily slot labels in display order. The result is a copy;
// callers may not mutate the template.
func Times() []string {
	out := make([]string, len(slotTemplate))
	copy(out, slotTemplate)
	return out
}

// ValidTime reports whether slot is one of the template labels.
func ValidTime(slot string) bool {
	for _, s := range slotTemplate {
		if s == slot {
			return true
		}
	}
	return false
}

// Days returns the booking window starting today in local time.
func Days(windowDays int) []Day {
	return DaysFrom(time.Now(), windowDays)
}

// DaysFrom returns windowDays consecutive days starting at today. Restartable
// and pure; callers pin "today" for deterministic tests.
func DaysFrom(today time.Time, windowDays int) []Day {
	if windowDays < 1 {
		windowDays = DefaultWindowDays
	}
	days := make([]Day, 0, windowDays)
	for i := 0; i < windowDays; i++ {
		d := today.AddDate(0, 0, i)
		days = append(days, Day{
			Date:    d.Format(DateLayout),
			DayName: d.Weekday().String(),
			Label:   d.Format("Jan 2, 2006"),
			IsToday: i == 0,
		})
	}
	return days
}

// ValidSlot reports whether (date, slot) is bookable as of today: the date
// parses, falls inside the window, and the slot label is in the template.
func ValidSlot(today time.Time, windowDays int, date, slot string) bool {
	if !ValidTime(slot) {
		return false
	}
	d, err := time.ParseInLocation(DateLayout, date, today.Location())
	if err != nil {
		return false
	}
	start := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, today.Location())
	if d.Before(start) {
		return false
	}
	if windowDays < 1 {
		windowDays = DefaultWindowDays
	}
	return d.Before(start.AddDate(0, 0, windowDays))
}
