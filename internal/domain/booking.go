package domain

import "time"

type BookingStatus string

const (
	BookingWaiting  BookingStatus = "WAITING"
	BookingApproved BookingStatus = "APPROVED"
	BookingRejected BookingStatus = "REJECTED"
)

// FilterState selects which bookings a listing returns. WAITING and
// REJECTED match the stored status; PAST, CURRENT and FUTURE are derived
// from the interval against "now" at query time and are never stored.
// FUTURE matches "not yet ended" (end after now), so it overlaps CURRENT.
type FilterState string

const (
	FilterAll      FilterState = "ALL"
	FilterWaiting  FilterState = "WAITING"
	FilterRejected FilterState = "REJECTED"
	FilterPast     FilterState = "PAST"
	FilterCurrent  FilterState = "CURRENT"
	FilterFuture   FilterState = "FUTURE"
)

func ParseFilterState(s string) (FilterState, bool) {
	switch FilterState(s) {
	case FilterAll, FilterWaiting, FilterRejected, FilterPast, FilterCurrent, FilterFuture:
		return FilterState(s), true
	}
	return "", false
}

type Booking struct {
	ID        int64         `json:"id"`
	ItemID    int64         `json:"item_id" validate:"required"`
	BookerID  int64         `json:"booker_id" validate:"required"`
	StartTime time.Time     `json:"start_time" validate:"required"`
	EndTime   time.Time     `json:"end_time" validate:"required"`
	Status    BookingStatus `json:"status"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`

	Booker *User `json:"booker,omitempty"`
	Item   *Item `json:"item,omitempty"`
}
