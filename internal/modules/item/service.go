package item

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"shareit/internal/domain"
)

type ItemRepository interface {
	Create(ctx context.Context, i *domain.Item) error
	GetByID(ctx context.Context, id int64) (*domain.Item, error)
	GetByOwnerID(ctx context.Context, ownerID int64, limit, offset int) ([]domain.Item, error)
	SetAvailable(ctx context.Context, id int64, available bool) error
}

type OwnerDirectory interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

type Service struct {
	items  ItemRepository
	owners OwnerDirectory
}

func NewService(items ItemRepository, owners OwnerDirectory) *Service {
	return &Service{items: items, owners: owners}
}

func (s *Service) Create(ctx context.Context, ownerID int64, req CreateItemRequest) (*domain.Item, error) {
	if strings.TrimSpace(req.Name) == "" || req.Available == nil {
		return nil, ErrValidation
	}

	if _, err := s.owners.GetByID(ctx, ownerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	i := &domain.Item{
		OwnerID:     ownerID,
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		Available:   *req.Available,
	}
	if err := s.items.Create(ctx, i); err != nil {
		return nil, err
	}
	return i, nil
}

func (s *Service) GetByID(ctx context.Context, id int64) (*domain.Item, error) {
	i, err := s.items.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return i, nil
}

func (s *Service) ListByOwner(ctx context.Context, ownerID int64, limit, offset int) ([]domain.Item, error) {
	if limit < 1 || offset < 0 {
		return nil, ErrValidation
	}
	return s.items.GetByOwnerID(ctx, ownerID, limit, offset)
}

// SetAvailability flips the availability flag. Only the owner may do it.
func (s *Service) SetAvailability(ctx context.Context, userID, itemID int64, available bool) (*domain.Item, error) {
	i, err := s.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if i.OwnerID != userID {
		return nil, ErrForbidden
	}

	if err := s.items.SetAvailable(ctx, itemID, available); err != nil {
		return nil, err
	}
	i.Available = available
	return i, nil
}
