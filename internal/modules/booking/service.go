package booking

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"shareit/internal/domain"
)

// Service implements the booking lifecycle: a booker requests an item for
// an interval, the item's owner approves or rejects, and both sides can
// read their bookings filtered by status or by where the interval sits
// relative to now. Overlapping bookings for the same item are allowed;
// owners resolve conflicts by approving first come first served.
type Service struct {
	bookings BookingStore
	users    UserDirectory
	items    ItemCatalog
}

func NewService(bookings BookingStore, users UserDirectory, items ItemCatalog) *Service {
	return &Service{
		bookings: bookings,
		users:    users,
		items:    items,
	}
}

func (s *Service) Create(ctx context.Context, bookerID int64, req CreateBookingRequest) (*BookingDetails, error) {
	booker, err := s.users.GetByID(ctx, bookerID)
	if err != nil {
		return nil, notFoundOr(err)
	}

	item, err := s.items.GetByID(ctx, req.ItemID)
	if err != nil {
		return nil, notFoundOr(err)
	}

	// Owners cannot book their own items. Reported as not-found, not
	// forbidden, so the response shape does not depend on ownership.
	if item.OwnerID == booker.ID {
		return nil, ErrNotFound
	}
	if !item.Available {
		return nil, ErrItemUnavailable
	}

	b := &domain.Booking{
		ItemID:    item.ID,
		BookerID:  booker.ID,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Status:    domain.BookingWaiting,
	}
	if err := s.bookings.Create(ctx, b); err != nil {
		return nil, err
	}

	return toDetails(b, booker, item), nil
}

// Decide applies the owner's approval or rejection. A booking moves to
// APPROVED unless it already is, and to REJECTED unless it already is;
// reapplying the same terminal status fails. The write is conditional on
// the status read above, so two concurrent decisions cannot both land.
func (s *Service) Decide(ctx context.Context, deciderID, bookingID int64, approved bool) (*BookingDetails, error) {
	b, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, notFoundOr(err)
	}

	decider, err := s.users.GetByID(ctx, deciderID)
	if err != nil {
		return nil, notFoundOr(err)
	}

	item, err := s.items.GetByID(ctx, b.ItemID)
	if err != nil {
		return nil, notFoundOr(err)
	}

	if item.OwnerID != decider.ID {
		return nil, ErrNotFound
	}

	var next domain.BookingStatus
	switch {
	case approved && b.Status != domain.BookingApproved:
		next = domain.BookingApproved
	case !approved && b.Status != domain.BookingRejected:
		next = domain.BookingRejected
	default:
		return nil, ErrStatusChange
	}

	ok, err := s.bookings.UpdateStatusIf(ctx, b.ID, b.Status, next)
	if err != nil {
		return nil, err
	}
	if !ok {
		// Another decision got in between the read and the write.
		return nil, ErrStatusChange
	}
	b.Status = next

	booker, err := s.users.GetByID(ctx, b.BookerID)
	if err != nil {
		return nil, notFoundOr(err)
	}

	return toDetails(b, booker, item), nil
}

// Get returns a booking to its booker or to the item's owner. Anyone else
// gets the same not-found a missing booking would produce.
func (s *Service) Get(ctx context.Context, requesterID, bookingID int64) (*BookingDetails, error) {
	b, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, notFoundOr(err)
	}

	booker, err := s.users.GetByID(ctx, b.BookerID)
	if err != nil {
		return nil, notFoundOr(err)
	}

	item, err := s.items.GetByID(ctx, b.ItemID)
	if err != nil {
		return nil, notFoundOr(err)
	}

	if requesterID != booker.ID && requesterID != item.OwnerID {
		return nil, ErrNotFound
	}

	return toDetails(b, booker, item), nil
}

func (s *Service) ListByBooker(ctx context.Context, bookerID int64, state string, from, size int) ([]BookingDetails, error) {
	if _, err := s.users.GetByID(ctx, bookerID); err != nil {
		return nil, notFoundOr(err)
	}

	st, ok := domain.ParseFilterState(state)
	if !ok {
		return nil, ErrUnknownState
	}

	limit, offset, err := page(from, size)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	var rows []domain.Booking
	switch st {
	case domain.FilterAll:
		rows, err = s.bookings.GetByBookerID(ctx, bookerID, limit, offset)
	case domain.FilterWaiting:
		rows, err = s.bookings.GetByBookerIDAndStatus(ctx, bookerID, domain.BookingWaiting, limit, offset)
	case domain.FilterRejected:
		rows, err = s.bookings.GetByBookerIDAndStatus(ctx, bookerID, domain.BookingRejected, limit, offset)
	case domain.FilterPast:
		rows, err = s.bookings.GetPastByBookerID(ctx, bookerID, now, limit, offset)
	case domain.FilterCurrent:
		rows, err = s.bookings.GetCurrentByBookerID(ctx, bookerID, now, limit, offset)
	case domain.FilterFuture:
		rows, err = s.bookings.GetFutureByBookerID(ctx, bookerID, now, limit, offset)
	}
	if err != nil {
		return nil, err
	}

	return toDetailsList(rows), nil
}

func (s *Service) ListByOwner(ctx context.Context, ownerID int64, state string, from, size int) ([]BookingDetails, error) {
	if _, err := s.users.GetByID(ctx, ownerID); err != nil {
		return nil, notFoundOr(err)
	}

	st, ok := domain.ParseFilterState(state)
	if !ok {
		return nil, ErrUnknownState
	}

	limit, offset, err := page(from, size)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	var rows []domain.Booking
	switch st {
	case domain.FilterAll:
		rows, err = s.bookings.GetByOwnerID(ctx, ownerID, limit, offset)
	case domain.FilterWaiting:
		rows, err = s.bookings.GetByOwnerIDAndStatus(ctx, ownerID, domain.BookingWaiting, limit, offset)
	case domain.FilterRejected:
		rows, err = s.bookings.GetByOwnerIDAndStatus(ctx, ownerID, domain.BookingRejected, limit, offset)
	case domain.FilterPast:
		rows, err = s.bookings.GetPastByOwnerID(ctx, ownerID, now, limit, offset)
	case domain.FilterCurrent:
		rows, err = s.bookings.GetCurrentByOwnerID(ctx, ownerID, now, limit, offset)
	case domain.FilterFuture:
		rows, err = s.bookings.GetFutureByOwnerID(ctx, ownerID, now, limit, offset)
	}
	if err != nil {
		return nil, err
	}

	return toDetailsList(rows), nil
}

// page turns a row offset and page size into the limit/offset handed to
// the store. The offset snaps to a page boundary: page index is from/size.
// A non-positive size is rejected before the division.
func page(from, size int) (limit, offset int, err error) {
	if size < 1 || from < 0 {
		return 0, 0, ErrInvalidPage
	}
	return size, (from / size) * size, nil
}

func toDetailsList(rows []domain.Booking) []BookingDetails {
	out := make([]BookingDetails, 0, len(rows))
	for _, b := range rows {
		out = append(out, toDetailsFromListing(b))
	}
	return out
}

func notFoundOr(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
