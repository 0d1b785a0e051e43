package seed

import (
	"context"

	"gorm.io/gorm"

	"github.com/ndemidov/storefront/internal/logging"
	"github.com/ndemidov/storefront/internal/models"
)

func sampleItems() []models.Item {
	return []models.Item{
		{
			Name:        "Wireless Headphones",
			Description: "High-quality wireless headphones with noise cancellation",
			Price:       199.99,
			Category:    "Electronics",
			Image:       "https://images.unsplash.com/photo-1505740420928-5e560c06d30e?w=300",
			Stock:       15,
			InStock:     true,
		},
		{
			Name:        "Coffee Maker",
			Description: "Automatic drip coffee maker with programmable timer",
			Price:       89.99,
			Category:    "Home",
			Image:       "https://images.unsplash.com/photo-1559056199-641a0ac8b55e?w=300",
			Stock:       8,
			InStock:     true,
		},
		{
			Name:        "Running Shoes",
			Description: "Comfortable running shoes with excellent support",
			Price:       129.99,
			Category:    "Sports",
			Image:       "https://images.unsplash.com/photo-1542291026-7eec264c27ff?w=300",
			Stock:       20,
			InStock:     true,
		},
		{
			Name:        "Programming Book Set",
			Description: "Collection of bestselling programming books",
			Price:       49.99,
			Category:    "Books",
			Image:       "https://images.unsplash.com/photo-1481627834876-b7833e8f5570?w=300",
			Stock:       12,
			InStock:     true,
		},
		{
			Name:        "Skincare Set",
			Description: "Complete skincare routine with natural ingredients",
			Price:       79.99,
			Category:    "Beauty",
			Image:       "https://images.unsplash.com/photo-1556228578-8c89e6adf883?w=300",
			Stock:       25,
			InStock:     true,
		},
		{
			Name:        "Cotton T-Shirt",
			Description: "Comfortable cotton t-shirt in multiple colors",
			Price:       29.99,
			Category:    "Clothing",
			Image:       "https://images.unsplash.com/photo-1521572163474-6864f9cf17ab?w=300",
			Stock:       50,
			InStock:     true,
		},
	}
}

// Run inserts the sample catalog when the items table is empty and
// returns the full item set for follow-up indexing. Safe to call on
// every startup.
func Run(ctx context.Context, db *gorm.DB) ([]models.Item, error) {
	l := logging.FromContext(ctx).With("component", "seed")

	var count int64
	if err := db.WithContext(ctx).Model(&models.Item{}).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, nil
	}

	items := sampleItems()
	if err := db.WithContext(ctx).Create(&items).Error; err != nil {
		return nil, err
	}

	l.Info("sample items created", "count", len(items))
	return items, nil
}
