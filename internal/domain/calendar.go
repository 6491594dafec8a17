package domain

import "time"

// CellKind distinguishes the leading filler cells from real days.
type CellKind int

const (
	CellBlank CellKind = iota
	CellDay
)

// Cell is one slot of a rendered month grid. Flags are derived fresh
// from the sets passed to BuildMonthGrid; nothing here is persisted.
type Cell struct {
	Kind     CellKind
	Day      int
	Key      DayKey
	Past     bool
	Disabled bool
	Selected bool
	Rented   bool
	Today    bool
}

// GridSets carries the externally supplied day-state maps a calendar
// reflects. Any of them may be nil.
type GridSets struct {
	Disabled DaySet
	Selected DaySet
	Rented   DaySet
}

// BuildMonthGrid lays out a month Monday-first: leading blank cells so
// the 1st lands under its weekday column, then exactly
// DaysInMonth(year, month) day cells. today marks the Past/Today flags;
// days before today are Past.
func BuildMonthGrid(year int, month time.Month, today DayKey, sets GridSets) []Cell {
	blanks := leadingBlanks(year, month)
	days := DaysInMonth(year, month)

	cells := make([]Cell, 0, blanks+days)
	for i := 0; i < blanks; i++ {
		cells = append(cells, Cell{Kind: CellBlank})
	}
	for day := 1; day <= days; day++ {
		key := FormatDay(year, month, day)
		cells = append(cells, Cell{
			Kind:     CellDay,
			Day:      day,
			Key:      key,
			Past:     key.Before(today),
			Disabled: sets.Disabled.Has(key),
			Selected: sets.Selected.Has(key),
			Rented:   sets.Rented.Has(key),
			Today:    key == today,
		})
	}
	return cells
}

// leadingBlanks counts the filler cells before day 1 under Monday-first
// ordering: 0 when the month starts on Monday, 6 when it starts on
// Sunday.
func leadingBlanks(year int, month time.Month) int {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).Weekday()
	return (int(first) + 6) % 7
}

// MonthCursor is the month/year pair a calendar is showing. Navigation
// wraps December and January with the year step and has no bounds.
type MonthCursor struct {
	Year  int
	Month time.Month
}

func (c MonthCursor) Prev() MonthCursor {
	if c.Month == time.January {
		return MonthCursor{Year: c.Year - 1, Month: time.December}
	}
	return MonthCursor{Year: c.Year, Month: c.Month - 1}
}

func (c MonthCursor) Next() MonthCursor {
	if c.Month == time.December {
		return MonthCursor{Year: c.Year + 1, Month: time.January}
	}
	return MonthCursor{Year: c.Year, Month: c.Month + 1}
}

// Selection is the in-progress set of tapped days. It is the one set a
// calendar mutates itself; booked/rented sets only flow in.
type Selection struct {
	days     DaySet
	onToggle func(DayKey)
}

// NewSelection creates an empty selection. onToggle, when non-nil, is
// invoked with the day key after every effective toggle.
func NewSelection(onToggle func(DayKey)) *Selection {
	return &Selection{days: NewDaySet(), onToggle: onToggle}
}

// Toggle flips membership of the cell's day. Past and disabled days
// never change the selection, regardless of current state. Returns
// true when the selection changed.
func (s *Selection) Toggle(cell Cell) bool {
	if cell.Kind != CellDay || cell.Past || cell.Disabled {
		return false
	}
	if s.days.Has(cell.Key) {
		s.days.Remove(cell.Key)
	} else {
		s.days.Add(cell.Key)
	}
	if s.onToggle != nil {
		s.onToggle(cell.Key)
	}
	return true
}

// Days exposes the selected set for grid rendering and booking.
func (s *Selection) Days() DaySet { return s.days }
