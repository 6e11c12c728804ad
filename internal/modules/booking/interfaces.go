package booking

import (
	"context"
	"time"

	"shareit/internal/domain"
)

// UserDirectory resolves users referenced by bookings.
type UserDirectory interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

// ItemCatalog resolves items; ownership and availability gate creation.
type ItemCatalog interface {
	GetByID(ctx context.Context, id int64) (*domain.Item, error)
}

// BookingStore persists bookings and serves the filtered listing queries.
// Listing results come back ordered by start time descending with the id
// as tiebreak, so pages stay stable.
type BookingStore interface {
	Create(ctx context.Context, b *domain.Booking) error
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	UpdateStatusIf(ctx context.Context, id int64, from, to domain.BookingStatus) (bool, error)

	GetByBookerID(ctx context.Context, bookerID int64, limit, offset int) ([]domain.Booking, error)
	GetByBookerIDAndStatus(ctx context.Context, bookerID int64, status domain.BookingStatus, limit, offset int) ([]domain.Booking, error)
	GetPastByBookerID(ctx context.Context, bookerID int64, now time.Time, limit, offset int) ([]domain.Booking, error)
	GetCurrentByBookerID(ctx context.Context, bookerID int64, now time.Time, limit, offset int) ([]domain.Booking, error)
	GetFutureByBookerID(ctx context.Context, bookerID int64, now time.Time, limit, offset int) ([]domain.Booking, error)

	GetByOwnerID(ctx context.Context, ownerID int64, limit, offset int) ([]domain.Booking, error)
	GetByOwnerIDAndStatus(ctx context.Context, ownerID int64, status domain.BookingStatus, limit, offset int) ([]domain.Booking, error)
	GetPastByOwnerID(ctx context.Context, ownerID int64, now time.Time, limit, offset int) ([]domain.Booking, error)
	GetCurrentByOwnerID(ctx context.Context, ownerID int64, now time.Time, limit, offset int) ([]domain.Booking, error)
	GetFutureByOwnerID(ctx context.Context, ownerID int64, now time.Time, limit, offset int) ([]domain.Booking, error)
}
