package booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"shareit/internal/domain"
)

type MockBookingStore struct {
	mock.Mock
}

func (m *MockBookingStore) Create(ctx context.Context, b *domain.Booking) error {
	args := m.Called(ctx, b)
	if b != nil {
		b.ID = 999 // simulate DB insert
	}
	return args.Error(0)
}

func (m *MockBookingStore) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingStore) UpdateStatusIf(ctx context.Context, id int64, from, to domain.BookingStatus) (bool, error) {
	args := m.Called(ctx, id, from, to)
	return args.Bool(0), args.Error(1)
}

func (m *MockBookingStore) GetByBookerID(ctx context.Context, bookerID int64, limit, offset int) ([]domain.Booking, error) {
	args := m.Called(ctx, bookerID, limit, offset)
	return bookings(args)
}

func (m *MockBookingStore) GetByBookerIDAndStatus(ctx context.Context, bookerID int64, status domain.BookingStatus, limit, offset int) ([]domain.Booking, error) {
	args := m.Called(ctx, bookerID, status, limit, offset)
	return bookings(args)
}

func (m *MockBookingStore) GetPastByBookerID(ctx context.Context, bookerID int64, now time.Time, limit, offset int) ([]domain.Booking, error) {
	args := m.Called(ctx, bookerID, now, limit, offset)
	return bookings(args)
}

func (m *MockBookingStore) GetCurrentByBookerID(ctx context.Context, bookerID int64, now time.Time, limit, offset int) ([]domain.Booking, error) {
	args := m.Called(ctx, bookerID, now, limit, offset)
	return bookings(args)
}

func (m *MockBookingStore) GetFutureByBookerID(ctx context.Context, bookerID int64, now time.Time, limit, offset int) ([]domain.Booking, error) {
	args := m.Called(ctx, bookerID, now, limit, offset)
	return bookings(args)
}

func (m *MockBookingStore) GetByOwnerID(ctx context.Context, ownerID int64, limit, offset int) ([]domain.Booking, error) {
	args := m.Called(ctx, ownerID, limit, offset)
	return bookings(args)
}

func (m *MockBookingStore) GetByOwnerIDAndStatus(ctx context.Context, ownerID int64, status domain.BookingStatus, limit, offset int) ([]domain.Booking, error) {
	args := m.Called(ctx, ownerID, status, limit, offset)
	return bookings(args)
}

func (m *MockBookingStore) GetPastByOwnerID(ctx context.Context, ownerID int64, now time.Time, limit, offset int) ([]domain.Booking, error) {
	args := m.Called(ctx, ownerID, now, limit, offset)
	return bookings(args)
}

func (m *MockBookingStore) GetCurrentByOwnerID(ctx context.Context, ownerID int64, now time.Time, limit, offset int) ([]domain.Booking, error) {
	args := m.Called(ctx, ownerID, now, limit, offset)
	return bookings(args)
}

func (m *MockBookingStore) GetFutureByOwnerID(ctx context.Context, ownerID int64, now time.Time, limit, offset int) ([]domain.Booking, error) {
	args := m.Called(ctx, ownerID, now, limit, offset)
	return bookings(args)
}

func bookings(args mock.Arguments) ([]domain.Booking, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Booking), args.Error(1)
}

type MockUserDirectory struct {
	mock.Mock
}

func (m *MockUserDirectory) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

type MockItemCatalog struct {
	mock.Mock
}

func (m *MockItemCatalog) GetByID(ctx context.Context, id int64) (*domain.Item, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Item), args.Error(1)
}

func newTestService() (*Service, *MockBookingStore, *MockUserDirectory, *MockItemCatalog) {
	bookings := new(MockBookingStore)
	users := new(MockUserDirectory)
	items := new(MockItemCatalog)
	return NewService(bookings, users, items), bookings, users, items
}

var (
	testStart = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	testEnd   = time.Date(2024, 1, 2, 12, 0, 0, 0, time.UTC)
)

func TestService_Create_Success(t *testing.T) {
	service, bookings, users, items := newTestService()

	users.On("GetByID", mock.Anything, int64(42)).Return(&domain.User{ID: 42, Name: "Rita"}, nil)
	items.On("GetByID", mock.Anything, int64(7)).Return(&domain.Item{ID: 7, OwnerID: 1, Name: "Drill", Available: true}, nil)
	bookings.On("Create", mock.Anything, mock.Anything).Return(nil)

	d, err := service.Create(context.Background(), 42, CreateBookingRequest{
		ItemID:    7,
		StartTime: testStart,
		EndTime:   testEnd,
	})

	assert.NoError(t, err)
	assert.Equal(t, string(domain.BookingWaiting), d.Status)
	assert.Equal(t, int64(999), d.ID)
	assert.Equal(t, int64(42), d.Booker.ID)
	assert.Equal(t, "Drill", d.Item.Name)
	bookings.AssertExpectations(t)
}

func TestService_Create_UnknownBooker(t *testing.T) {
	service, _, users, _ := newTestService()

	users.On("GetByID", mock.Anything, int64(404)).Return(nil, gorm.ErrRecordNotFound)

	_, err := service.Create(context.Background(), 404, CreateBookingRequest{ItemID: 7, StartTime: testStart, EndTime: testEnd})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestService_Create_OwnItem(t *testing.T) {
	service, _, users, items := newTestService()

	users.On("GetByID", mock.Anything, int64(1)).Return(&domain.User{ID: 1}, nil)
	// unavailable on purpose: the ownership check must win regardless
	items.On("GetByID", mock.Anything, int64(7)).Return(&domain.Item{ID: 7, OwnerID: 1, Available: false}, nil)

	_, err := service.Create(context.Background(), 1, CreateBookingRequest{ItemID: 7, StartTime: testStart, EndTime: testEnd})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestService_Create_ItemUnavailable(t *testing.T) {
	service, _, users, items := newTestService()

	users.On("GetByID", mock.Anything, int64(42)).Return(&domain.User{ID: 42}, nil)
	items.On("GetByID", mock.Anything, int64(7)).Return(&domain.Item{ID: 7, OwnerID: 1, Available: false}, nil)

	_, err := service.Create(context.Background(), 42, CreateBookingRequest{ItemID: 7, StartTime: testStart, EndTime: testEnd})
	assert.ErrorIs(t, err, ErrItemUnavailable)
}

func TestService_Decide_ApproveThenApproveAgain(t *testing.T) {
	service, bookings, users, items := newTestService()

	users.On("GetByID", mock.Anything, int64(1)).Return(&domain.User{ID: 1, Name: "Owen"}, nil)
	users.On("GetByID", mock.Anything, int64(42)).Return(&domain.User{ID: 42, Name: "Rita"}, nil)
	items.On("GetByID", mock.Anything, int64(7)).Return(&domain.Item{ID: 7, OwnerID: 1, Name: "Drill", Available: true}, nil)

	bookings.On("GetByID", mock.Anything, int64(5)).Return(&domain.Booking{
		ID: 5, ItemID: 7, BookerID: 42, StartTime: testStart, EndTime: testEnd, Status: domain.BookingWaiting,
	}, nil).Once()
	bookings.On("UpdateStatusIf", mock.Anything, int64(5), domain.BookingWaiting, domain.BookingApproved).Return(true, nil)

	d, err := service.Decide(context.Background(), 1, 5, true)
	assert.NoError(t, err)
	assert.Equal(t, string(domain.BookingApproved), d.Status)

	// second approval sees the already-terminal status
	bookings.On("GetByID", mock.Anything, int64(5)).Return(&domain.Booking{
		ID: 5, ItemID: 7, BookerID: 42, StartTime: testStart, EndTime: testEnd, Status: domain.BookingApproved,
	}, nil).Once()

	_, err = service.Decide(context.Background(), 1, 5, true)
	assert.ErrorIs(t, err, ErrStatusChange)
	bookings.AssertExpectations(t)
}

func TestService_Decide_RejectThenRejectAgain(t *testing.T) {
	service, bookings, users, items := newTestService()

	users.On("GetByID", mock.Anything, int64(1)).Return(&domain.User{ID: 1}, nil)
	users.On("GetByID", mock.Anything, int64(42)).Return(&domain.User{ID: 42}, nil)
	items.On("GetByID", mock.Anything, int64(7)).Return(&domain.Item{ID: 7, OwnerID: 1}, nil)

	bookings.On("GetByID", mock.Anything, int64(5)).Return(&domain.Booking{
		ID: 5, ItemID: 7, BookerID: 42, StartTime: testStart, EndTime: testEnd, Status: domain.BookingWaiting,
	}, nil).Once()
	bookings.On("UpdateStatusIf", mock.Anything, int64(5), domain.BookingWaiting, domain.BookingRejected).Return(true, nil)

	d, err := service.Decide(context.Background(), 1, 5, false)
	assert.NoError(t, err)
	assert.Equal(t, string(domain.BookingRejected), d.Status)

	bookings.On("GetByID", mock.Anything, int64(5)).Return(&domain.Booking{
		ID: 5, ItemID: 7, BookerID: 42, StartTime: testStart, EndTime: testEnd, Status: domain.BookingRejected,
	}, nil).Once()

	_, err = service.Decide(context.Background(), 1, 5, false)
	assert.ErrorIs(t, err, ErrStatusChange)
}

func TestService_Decide_ApproveRejectedBooking(t *testing.T) {
	// Moving between the two terminal statuses is allowed; only repeating
	// the same one fails.
	service, bookings, users, items := newTestService()

	users.On("GetByID", mock.Anything, int64(1)).Return(&domain.User{ID: 1}, nil)
	users.On("GetByID", mock.Anything, int64(42)).Return(&domain.User{ID: 42}, nil)
	items.On("GetByID", mock.Anything, int64(7)).Return(&domain.Item{ID: 7, OwnerID: 1}, nil)

	bookings.On("GetByID", mock.Anything, int64(5)).Return(&domain.Booking{
		ID: 5, ItemID: 7, BookerID: 42, Status: domain.BookingRejected,
	}, nil)
	bookings.On("UpdateStatusIf", mock.Anything, int64(5), domain.BookingRejected, domain.BookingApproved).Return(true, nil)

	d, err := service.Decide(context.Background(), 1, 5, true)
	assert.NoError(t, err)
	assert.Equal(t, string(domain.BookingApproved), d.Status)
}

func TestService_Decide_NonOwner(t *testing.T) {
	service, bookings, users, items := newTestService()

	users.On("GetByID", mock.Anything, int64(99)).Return(&domain.User{ID: 99}, nil)
	items.On("GetByID", mock.Anything, int64(7)).Return(&domain.Item{ID: 7, OwnerID: 1}, nil)
	bookings.On("GetByID", mock.Anything, int64(5)).Return(&domain.Booking{
		ID: 5, ItemID: 7, BookerID: 42, Status: domain.BookingWaiting,
	}, nil)

	_, err := service.Decide(context.Background(), 99, 5, true)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestService_Decide_LostRace(t *testing.T) {
	service, bookings, users, items := newTestService()

	users.On("GetByID", mock.Anything, int64(1)).Return(&domain.User{ID: 1}, nil)
	items.On("GetByID", mock.Anything, int64(7)).Return(&domain.Item{ID: 7, OwnerID: 1}, nil)
	bookings.On("GetByID", mock.Anything, int64(5)).Return(&domain.Booking{
		ID: 5, ItemID: 7, BookerID: 42, Status: domain.BookingWaiting,
	}, nil)
	// a concurrent decision changed the row between read and write
	bookings.On("UpdateStatusIf", mock.Anything, int64(5), domain.BookingWaiting, domain.BookingApproved).Return(false, nil)

	_, err := service.Decide(context.Background(), 1, 5, true)
	assert.ErrorIs(t, err, ErrStatusChange)
}

func TestService_Get_Visibility(t *testing.T) {
	service, bookings, users, items := newTestService()

	users.On("GetByID", mock.Anything, int64(42)).Return(&domain.User{ID: 42, Name: "Rita"}, nil)
	items.On("GetByID", mock.Anything, int64(7)).Return(&domain.Item{ID: 7, OwnerID: 1, Name: "Drill"}, nil)
	bookings.On("GetByID", mock.Anything, int64(5)).Return(&domain.Booking{
		ID: 5, ItemID: 7, BookerID: 42, Status: domain.BookingWaiting,
	}, nil)

	_, err := service.Get(context.Background(), 42, 5) // booker
	assert.NoError(t, err)

	_, err = service.Get(context.Background(), 1, 5) // owner
	assert.NoError(t, err)

	_, err = service.Get(context.Background(), 77, 5) // third party
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestService_ListByBooker_Past(t *testing.T) {
	service, bookings, users, _ := newTestService()

	users.On("GetByID", mock.Anything, int64(42)).Return(&domain.User{ID: 42}, nil)
	past := []domain.Booking{
		{ID: 2, ItemID: 7, BookerID: 42, StartTime: testStart.AddDate(0, 0, -1), EndTime: testEnd.AddDate(0, 0, -1)},
		{ID: 1, ItemID: 7, BookerID: 42, StartTime: testStart.AddDate(0, 0, -5), EndTime: testEnd.AddDate(0, 0, -5)},
	}
	bookings.On("GetPastByBookerID", mock.Anything, int64(42), mock.Anything, 10, 0).Return(past, nil)

	ds, err := service.ListByBooker(context.Background(), 42, "PAST", 0, 10)
	assert.NoError(t, err)
	assert.Len(t, ds, 2)
	// store order is preserved: start descending
	assert.Equal(t, int64(2), ds[0].ID)
	assert.Equal(t, int64(1), ds[1].ID)
	bookings.AssertExpectations(t)
}

func TestService_ListByBooker_UnknownState(t *testing.T) {
	service, _, users, _ := newTestService()

	users.On("GetByID", mock.Anything, int64(42)).Return(&domain.User{ID: 42}, nil)

	_, err := service.ListByBooker(context.Background(), 42, "FINISHED", 0, 10)
	assert.ErrorIs(t, err, ErrUnknownState)
}

func TestService_ListByBooker_ApprovedIsNotAFilter(t *testing.T) {
	// The filter vocabulary has WAITING and REJECTED; APPROVED is a stored
	// status, not a listing state.
	service, _, users, _ := newTestService()

	users.On("GetByID", mock.Anything, int64(42)).Return(&domain.User{ID: 42}, nil)

	_, err := service.ListByBooker(context.Background(), 42, "APPROVED", 0, 10)
	assert.ErrorIs(t, err, ErrUnknownState)
}

func TestService_ListByBooker_ZeroSize(t *testing.T) {
	service, _, users, _ := newTestService()

	users.On("GetByID", mock.Anything, int64(42)).Return(&domain.User{ID: 42}, nil)

	_, err := service.ListByBooker(context.Background(), 42, "ALL", 0, 0)
	assert.ErrorIs(t, err, ErrInvalidPage)
}

func TestService_ListByBooker_OffsetSnapsToPage(t *testing.T) {
	service, bookings, users, _ := newTestService()

	users.On("GetByID", mock.Anything, int64(42)).Return(&domain.User{ID: 42}, nil)
	// from=25 size=10 lands on page 2, rows 20..29
	bookings.On("GetByBookerID", mock.Anything, int64(42), 10, 20).Return([]domain.Booking{}, nil)

	ds, err := service.ListByBooker(context.Background(), 42, "ALL", 25, 10)
	assert.NoError(t, err)
	assert.Empty(t, ds)
	bookings.AssertExpectations(t)
}

func TestService_ListByBooker_UnknownUser(t *testing.T) {
	service, _, users, _ := newTestService()

	users.On("GetByID", mock.Anything, int64(404)).Return(nil, gorm.ErrRecordNotFound)

	_, err := service.ListByBooker(context.Background(), 404, "ALL", 0, 10)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestService_ListByOwner_Future(t *testing.T) {
	service, bookings, users, _ := newTestService()

	users.On("GetByID", mock.Anything, int64(1)).Return(&domain.User{ID: 1}, nil)
	// FUTURE means "not yet ended", so a currently running booking shows up
	bookings.On("GetFutureByOwnerID", mock.Anything, int64(1), mock.Anything, 10, 0).
		Return([]domain.Booking{{ID: 3, ItemID: 7, BookerID: 42, Status: domain.BookingApproved}}, nil)

	ds, err := service.ListByOwner(context.Background(), 1, "FUTURE", 0, 10)
	assert.NoError(t, err)
	assert.Len(t, ds, 1)
	bookings.AssertExpectations(t)
}

func TestService_ListByOwner_Waiting(t *testing.T) {
	service, bookings, users, _ := newTestService()

	users.On("GetByID", mock.Anything, int64(1)).Return(&domain.User{ID: 1}, nil)
	bookings.On("GetByOwnerIDAndStatus", mock.Anything, int64(1), domain.BookingWaiting, 10, 0).
		Return([]domain.Booking{{ID: 4, ItemID: 7, BookerID: 42, Status: domain.BookingWaiting}}, nil)

	ds, err := service.ListByOwner(context.Background(), 1, "WAITING", 0, 10)
	assert.NoError(t, err)
	assert.Len(t, ds, 1)
	assert.Equal(t, string(domain.BookingWaiting), ds[0].Status)
	bookings.AssertExpectations(t)
}
