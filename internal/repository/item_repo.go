package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"shareit/internal/domain"
)

type ItemRepository struct {
	db *gorm.DB
}

func NewItemRepository(db *gorm.DB) *ItemRepository {
	return &ItemRepository{db: db}
}

type itemModel struct {
	ID          int64     `gorm:"column:id;primaryKey"`
	OwnerID     int64     `gorm:"column:owner_id;index"`
	Name        string    `gorm:"column:name"`
	Description *string   `gorm:"column:description"`
	Available   bool      `gorm:"column:available"`
	CreatedAt   time.Time `gorm:"column:created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`
}

func (itemModel) TableName() string { return "items" }

func toDomainItem(m itemModel) *domain.Item {
	var description string
	if m.Description != nil {
		description = *m.Description
	}

	return &domain.Item{
		ID:          m.ID,
		OwnerID:     m.OwnerID,
		Name:        m.Name,
		Description: description,
		Available:   m.Available,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func toItemModel(i *domain.Item) itemModel {
	var description *string
	if i.Description != "" {
		v := i.Description
		description = &v
	}

	return itemModel{
		ID:          i.ID,
		OwnerID:     i.OwnerID,
		Name:        i.Name,
		Description: description,
		Available:   i.Available,
		CreatedAt:   i.CreatedAt,
		UpdatedAt:   i.UpdatedAt,
	}
}

func (r *ItemRepository) Create(ctx context.Context, i *domain.Item) error {
	m := toItemModel(i)
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*i = *toDomainItem(m)
	return nil
}

func (r *ItemRepository) GetByID(ctx context.Context, id int64) (*domain.Item, error) {
	var m itemModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainItem(m), nil
}

func (r *ItemRepository) GetByOwnerID(ctx context.Context, ownerID int64, limit, offset int) ([]domain.Item, error) {
	var ms []itemModel
	tx := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("id ASC").
		Limit(limit).
		Offset(offset).
		Find(&ms)
	if tx.Error != nil {
		return nil, tx.Error
	}

	out := make([]domain.Item, 0, len(ms))
	for _, m := range ms {
		out = append(out, *toDomainItem(m))
	}
	return out, nil
}

func (r *ItemRepository) SetAvailable(ctx context.Context, id int64, available bool) error {
	tx := r.db.WithContext(ctx).Model(&itemModel{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"available": available, "updated_at": time.Now()})
	return tx.Error
}
