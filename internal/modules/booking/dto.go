package booking

import (
	"time"

	"shareit/internal/domain"
)

type CreateBookingRequest struct {
	ItemID    int64     `json:"item_id" binding:"required"`
	StartTime time.Time `json:"start_time" binding:"required"`
	EndTime   time.Time `json:"end_time" binding:"required"`
}

type BookerInfo struct {
	ID   int64  `json:"id"`
	Name string `json:"name,omitempty"`
}

type ItemInfo struct {
	ID   int64  `json:"id"`
	Name string `json:"name,omitempty"`
}

type BookingDetails struct {
	ID        int64      `json:"id"`
	Status    string     `json:"status"`
	StartTime time.Time  `json:"start_time"`
	EndTime   time.Time  `json:"end_time"`
	Booker    BookerInfo `json:"booker"`
	Item      ItemInfo   `json:"item"`
}

func toDetails(b *domain.Booking, booker *domain.User, item *domain.Item) *BookingDetails {
	return &BookingDetails{
		ID:        b.ID,
		Status:    string(b.Status),
		StartTime: b.StartTime,
		EndTime:   b.EndTime,
		Booker:    BookerInfo{ID: booker.ID, Name: booker.Name},
		Item:      ItemInfo{ID: item.ID, Name: item.Name},
	}
}

func toDetailsFromListing(b domain.Booking) BookingDetails {
	d := BookingDetails{
		ID:        b.ID,
		Status:    string(b.Status),
		StartTime: b.StartTime,
		EndTime:   b.EndTime,
		Booker:    BookerInfo{ID: b.BookerID},
		Item:      ItemInfo{ID: b.ItemID},
	}
	if b.Booker != nil {
		d.Booker.Name = b.Booker.Name
	}
	if b.Item != nil {
		d.Item.Name = b.Item.Name
	}
	return d
}
