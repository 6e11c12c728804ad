package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"shareit/internal/domain"
)

type BookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

type bookingModel struct {
	ID        int64     `gorm:"column:id;primaryKey"`
	ItemID    int64     `gorm:"column:item_id;index"`
	BookerID  int64     `gorm:"column:booker_id;index"`
	StartTime time.Time `gorm:"column:start_time"`
	EndTime   time.Time `gorm:"column:end_time"`
	Status    string    `gorm:"column:status"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (bookingModel) TableName() string { return "bookings" }

func toDomainBooking(m bookingModel) *domain.Booking {
	return &domain.Booking{
		ID:        m.ID,
		ItemID:    m.ItemID,
		BookerID:  m.BookerID,
		StartTime: m.StartTime,
		EndTime:   m.EndTime,
		Status:    domain.BookingStatus(m.Status),
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func toBookingModel(b *domain.Booking) bookingModel {
	return bookingModel{
		ID:        b.ID,
		ItemID:    b.ItemID,
		BookerID:  b.BookerID,
		StartTime: b.StartTime,
		EndTime:   b.EndTime,
		Status:    string(b.Status),
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}

func (r *BookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	m := toBookingModel(b)
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*b = *toDomainBooking(m)
	return nil
}

func (r *BookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	var m bookingModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainBooking(m), nil
}

// UpdateStatusIf performs a conditional status update: the row changes only
// if it still carries the expected previous status. Reports whether a row
// was actually updated, so a lost race shows up as false instead of a
// silent double transition.
func (r *BookingRepository) UpdateStatusIf(ctx context.Context, id int64, from, to domain.BookingStatus) (bool, error) {
	tx := r.db.WithContext(ctx).Model(&bookingModel{}).
		Where("id = ? AND status = ?", id, string(from)).
		Updates(map[string]interface{}{"status": string(to), "updated_at": time.Now()})
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected == 1, nil
}

// joinedBookingRow carries a booking together with the item and booker
// columns the listing endpoints need, so a page is one query instead of
// one lookup per row.
type joinedBookingRow struct {
	ID          int64     `gorm:"column:id"`
	ItemID      int64     `gorm:"column:item_id"`
	BookerID    int64     `gorm:"column:booker_id"`
	StartTime   time.Time `gorm:"column:start_time"`
	EndTime     time.Time `gorm:"column:end_time"`
	Status      string    `gorm:"column:status"`
	ItemName    string    `gorm:"column:item_name"`
	ItemOwnerID int64     `gorm:"column:item_owner_id"`
	BookerName  string    `gorm:"column:booker_name"`
}

const joinedBookingSelect = `
SELECT b.id, b.item_id, b.booker_id, b.start_time, b.end_time, b.status,
       i.name AS item_name, i.owner_id AS item_owner_id, u.name AS booker_name
FROM bookings b
JOIN items i ON i.id = b.item_id
JOIN users u ON u.id = b.booker_id
`

func (r *BookingRepository) find(ctx context.Context, cond string, args []interface{}, limit, offset int) ([]domain.Booking, error) {
	q := joinedBookingSelect + "WHERE " + cond + `
ORDER BY b.start_time DESC, b.id DESC
LIMIT ? OFFSET ?`
	args = append(args, limit, offset)

	var rows []joinedBookingRow
	tx := r.db.WithContext(ctx).Raw(q, args...).Scan(&rows)
	if tx.Error != nil {
		return nil, tx.Error
	}

	out := make([]domain.Booking, 0, len(rows))
	for _, row := range rows {
		out = append(out, domain.Booking{
			ID:        row.ID,
			ItemID:    row.ItemID,
			BookerID:  row.BookerID,
			StartTime: row.StartTime,
			EndTime:   row.EndTime,
			Status:    domain.BookingStatus(row.Status),
			Booker:    &domain.User{ID: row.BookerID, Name: row.BookerName},
			Item:      &domain.Item{ID: row.ItemID, OwnerID: row.ItemOwnerID, Name: row.ItemName},
		})
	}
	return out, nil
}

func (r *BookingRepository) GetByBookerID(ctx context.Context, bookerID int64, limit, offset int) ([]domain.Booking, error) {
	return r.find(ctx, "b.booker_id = ?", []interface{}{bookerID}, limit, offset)
}

func (r *BookingRepository) GetByBookerIDAndStatus(ctx context.Context, bookerID int64, status domain.BookingStatus, limit, offset int) ([]domain.Booking, error) {
	return r.find(ctx, "b.booker_id = ? AND b.status = ?", []interface{}{bookerID, string(status)}, limit, offset)
}

func (r *BookingRepository) GetPastByBookerID(ctx context.Context, bookerID int64, now time.Time, limit, offset int) ([]domain.Booking, error) {
	return r.find(ctx, "b.booker_id = ? AND b.end_time < ?", []interface{}{bookerID, now}, limit, offset)
}

func (r *BookingRepository) GetCurrentByBookerID(ctx context.Context, bookerID int64, now time.Time, limit, offset int) ([]domain.Booking, error) {
	return r.find(ctx, "b.booker_id = ? AND b.start_time <= ? AND b.end_time >= ?", []interface{}{bookerID, now, now}, limit, offset)
}

func (r *BookingRepository) GetFutureByBookerID(ctx context.Context, bookerID int64, now time.Time, limit, offset int) ([]domain.Booking, error) {
	return r.find(ctx, "b.booker_id = ? AND b.end_time > ?", []interface{}{bookerID, now}, limit, offset)
}

func (r *BookingRepository) GetByOwnerID(ctx context.Context, ownerID int64, limit, offset int) ([]domain.Booking, error) {
	return r.find(ctx, "i.owner_id = ?", []interface{}{ownerID}, limit, offset)
}

func (r *BookingRepository) GetByOwnerIDAndStatus(ctx context.Context, ownerID int64, status domain.BookingStatus, limit, offset int) ([]domain.Booking, error) {
	return r.find(ctx, "i.owner_id = ? AND b.status = ?", []interface{}{ownerID, string(status)}, limit, offset)
}

func (r *BookingRepository) GetPastByOwnerID(ctx context.Context, ownerID int64, now time.Time, limit, offset int) ([]domain.Booking, error) {
	return r.find(ctx, "i.owner_id = ? AND b.end_time < ?", []interface{}{ownerID, now}, limit, offset)
}

func (r *BookingRepository) GetCurrentByOwnerID(ctx context.Context, ownerID int64, now time.Time, limit, offset int) ([]domain.Booking, error) {
	return r.find(ctx, "i.owner_id = ? AND b.start_time <= ? AND b.end_time >= ?", []interface{}{ownerID, now, now}, limit, offset)
}

func (r *BookingRepository) GetFutureByOwnerID(ctx context.Context, ownerID int64, now time.Time, limit, offset int) ([]domain.Booking, error) {
	return r.find(ctx, "i.owner_id = ? AND b.end_time > ?", []interface{}{ownerID, now}, limit, offset)
}
