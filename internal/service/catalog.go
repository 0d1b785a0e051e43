package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ndemidov/storefront/internal/models"
	"github.com/ndemidov/storefront/internal/repo"
)

// CatalogService is the read-mostly item store. The cart engine depends
// on GetItem only.
type CatalogService struct {
	Repo *repo.GormRepo
}

type ItemInput struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Category    string  `json:"category"`
	Image       string  `json:"image"`
	Stock       uint    `json:"stock"`
}

func (s *CatalogService) GetItem(ctx context.Context, id uuid.UUID) (*models.Item, error) {
	item, err := s.Repo.GetItem(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%s: %w", id, ErrItemNotFound)
		}
		return nil, err
	}
	return item, nil
}

func (s *CatalogService) ListItems(ctx context.Context, f repo.ItemFilter, offset, limit int) (int64, []models.Item, error) {
	return s.Repo.ListItems(ctx, f, offset, limit)
}

func (s *CatalogService) CreateItem(ctx context.Context, in ItemInput) (*models.Item, error) {
	if in.Name == "" || in.Description == "" {
		return nil, fmt.Errorf("name and description required: %w", ErrInvalidInput)
	}
	if in.Price < 0 {
		return nil, fmt.Errorf("price must be non-negative: %w", ErrInvalidInput)
	}
	if !models.ValidCategory(in.Category) {
		return nil, fmt.Errorf("unknown category %q: %w", in.Category, ErrInvalidInput)
	}

	item := models.Item{
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		Category:    in.Category,
		Image:       in.Image,
		Stock:       in.Stock,
		InStock:     in.Stock > 0,
	}
	if err := s.Repo.CreateItem(ctx, &item); err != nil {
		return nil, err
	}
	return &item, nil
}
