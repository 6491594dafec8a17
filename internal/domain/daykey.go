package domain

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"
)

// DayKey identifies one calendar day. It is the unit of booking
// granularity: rental documents persist days as the canonical
// "dd/mm/yyyy" string produced by String. Formatting is fixed and
// zero-padded, never locale-dependent, so the same day always maps to
// the same key on every device.
type DayKey struct {
	Year  int
	Month time.Month
	Day   int
}

// FormatDay builds the key for a (year, month, day) triple.
func FormatDay(year int, month time.Month, day int) DayKey {
	return DayKey{Year: year, Month: month, Day: day}
}

// DayKeyFromTime truncates t to its calendar day in t's location.
func DayKeyFromTime(t time.Time) DayKey {
	y, m, d := t.Date()
	return DayKey{Year: y, Month: m, Day: d}
}

// ParseDayKey parses the canonical "dd/mm/yyyy" form.
func ParseDayKey(s string) (DayKey, error) {
	parts := strings.Split(s, "/")
	if len(parts) != 3 {
		return DayKey{}, fmt.Errorf("invalid day key %q, expected dd/mm/yyyy", s)
	}
	day, err := strconv.Atoi(parts[0])
	if err != nil {
		return DayKey{}, fmt.Errorf("invalid day in %q: %w", s, err)
	}
	month, err := strconv.Atoi(parts[1])
	if err != nil {
		return DayKey{}, fmt.Errorf("invalid month in %q: %w", s, err)
	}
	year, err := strconv.Atoi(parts[2])
	if err != nil {
		return DayKey{}, fmt.Errorf("invalid year in %q: %w", s, err)
	}
	k := DayKey{Year: year, Month: time.Month(month), Day: day}
	if !k.Valid() {
		return DayKey{}, fmt.Errorf("day key %q is not a calendar day", s)
	}
	return k, nil
}

// Valid reports whether the key names a real calendar day.
func (k DayKey) Valid() bool {
	if k.Month < time.January || k.Month > time.December {
		return false
	}
	return k.Day >= 1 && k.Day <= DaysInMonth(k.Year, k.Month)
}

func (k DayKey) String() string {
	return fmt.Sprintf("%02d/%02d/%04d", k.Day, int(k.Month), k.Year)
}

// Time returns midnight UTC of the day.
func (k DayKey) Time() time.Time {
	return time.Date(k.Year, k.Month, k.Day, 0, 0, 0, 0, time.UTC)
}

// Before reports whether k is an earlier calendar day than other.
func (k DayKey) Before(other DayKey) bool {
	if k.Year != other.Year {
		return k.Year < other.Year
	}
	if k.Month != other.Month {
		return k.Month < other.Month
	}
	return k.Day < other.Day
}

// AddDays steps forward (or back, for negative n) by whole days.
func (k DayKey) AddDays(n int) DayKey {
	return DayKeyFromTime(k.Time().AddDate(0, 0, n))
}

// DaysInMonth returns the day count of a month, 29 for February in
// leap years.
func DaysInMonth(year int, month time.Month) int {
	switch month {
	case time.February:
		if (year%4 == 0 && year%100 != 0) || year%400 == 0 {
			return 29
		}
		return 28
	case time.April, time.June, time.September, time.November:
		return 30
	default:
		return 31
	}
}

// DaySet is a set of booking days.
type DaySet map[DayKey]struct{}

func NewDaySet(keys ...DayKey) DaySet {
	s := make(DaySet, len(keys))
	for _, k := range keys {
		s.Add(k)
	}
	return s
}

// ParseDaySet parses a slice of canonical day strings, as stored in a
// rental document's dates array.
func ParseDaySet(dates []string) (DaySet, error) {
	s := make(DaySet, len(dates))
	for _, d := range dates {
		k, err := ParseDayKey(d)
		if err != nil {
			return nil, err
		}
		s.Add(k)
	}
	return s, nil
}

func (s DaySet) Add(k DayKey)      { s[k] = struct{}{} }
func (s DaySet) Remove(k DayKey)   { delete(s, k) }
func (s DaySet) Has(k DayKey) bool { _, ok := s[k]; return ok }

// Union adds every day of other into s.
func (s DaySet) Union(other DaySet) {
	for k := range other {
		s[k] = struct{}{}
	}
}

// Intersects reports whether the sets share at least one day.
func (s DaySet) Intersects(other DaySet) bool {
	small, large := s, other
	if len(large) < len(small) {
		small, large = large, small
	}
	for k := range small {
		if large.Has(k) {
			return true
		}
	}
	return false
}

// Strings returns the canonical day strings in chronological order.
func (s DaySet) Strings() []string {
	keys := make([]DayKey, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].Before(keys[j]) })
	out := make([]string, len(keys))
	for i, k := range keys {
		out[i] = k.String()
	}
	return out
}
