package repo

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/ndemidov/storefront/internal/models"
)

// ItemFilter holds the catalog list predicates. Zero values mean "no
// constraint".
type ItemFilter struct {
	Category string
	MinPrice *float64
	MaxPrice *float64
	Search   string
}

func (r *GormRepo) GetItem(ctx context.Context, id uuid.UUID) (*models.Item, error) {
	var item models.Item
	if err := r.DB.WithContext(ctx).Where("id = ?", id).First(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *GormRepo) ListItems(ctx context.Context, f ItemFilter, offset, limit int) (int64, []models.Item, error) {
	q := r.DB.WithContext(ctx).Model(&models.Item{})

	if f.Category != "" {
		q = q.Where("category = ?", f.Category)
	}
	if f.MinPrice != nil {
		q = q.Where("price >= ?", *f.MinPrice)
	}
	if f.MaxPrice != nil {
		q = q.Where("price <= ?", *f.MaxPrice)
	}
	if f.Search != "" {
		pattern := "%" + strings.ToLower(f.Search) + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", pattern, pattern)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return 0, nil, err
	}

	var items []models.Item
	if err := q.Order("created_at ASC").Offset(offset).Limit(limit).Find(&items).Error; err != nil {
		return 0, nil, err
	}

	return total, items, nil
}

func (r *GormRepo) CreateItem(ctx context.Context, item *models.Item) error {
	return r.DB.WithContext(ctx).Create(item).Error
}
