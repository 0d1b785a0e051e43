package repo

import (
	"context"

	"github.com/google/uuid"

	"github.com/ndemidov/storefront/internal/models"
)

func (r *GormRepo) GetLines(ctx context.Context, userID uuid.UUID) ([]models.CartLine, error) {
	var lines []models.CartLine
	if err := r.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id ASC").
		Find(&lines).Error; err != nil {
		return nil, err
	}
	return lines, nil
}

func (r *GormRepo) GetLine(ctx context.Context, userID, itemID uuid.UUID) (*models.CartLine, error) {
	var line models.CartLine
	if err := r.DB.WithContext(ctx).
		Where("user_id = ? AND item_id = ?", userID, itemID).
		First(&line).Error; err != nil {
		return nil, err
	}
	return &line, nil
}

func (r *GormRepo) CreateLine(ctx context.Context, line *models.CartLine) error {
	return r.DB.WithContext(ctx).Create(line).Error
}

func (r *GormRepo) SaveLine(ctx context.Context, line *models.CartLine) error {
	return r.DB.WithContext(ctx).Save(line).Error
}

// DeleteLineByItem is a no-op when no matching line exists.
func (r *GormRepo) DeleteLineByItem(ctx context.Context, userID, itemID uuid.UUID) error {
	return r.DB.WithContext(ctx).
		Where("user_id = ? AND item_id = ?", userID, itemID).
		Delete(&models.CartLine{}).Error
}
