package domain

import "errors"

var (
	// ErrDatesUnavailable rejects a booking whose day set overlaps an
	// existing rental for the same item.
	ErrDatesUnavailable = errors.New("one or more requested dates are already booked")
	// ErrOwnItem flags a renter booking their own listing; the write
	// proceeds only when the caller confirms.
	ErrOwnItem = errors.New("item is owned by the renter")
	// ErrNoDates rejects a booking with an empty day set.
	ErrNoDates = errors.New("no dates selected")
)

// Rental links a renter to an item for a set of days. Immutable after
// creation; there is no cancellation path.
type Rental struct {
	ID     string `json:"id"`
	ItemID string `json:"item_id"`
	UserID string `json:"user_id"`
	// Dates holds canonical dd/mm/yyyy day strings, chronologically
	// ordered when written by this backend.
	Dates     []string `json:"dates"`
	CreatedOn string   `json:"created_on"`
}

// Days parses the rental's dates array into a set.
func (r *Rental) Days() (DaySet, error) {
	return ParseDaySet(r.Dates)
}
