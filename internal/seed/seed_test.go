package seed

import (
	"context"
	"fmt"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/ndemidov/storefront/internal/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(&models.Item{}))
	return db
}

func TestRun_SeedsEmptyCatalog(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)

	items, err := Run(context.Background(), db)
	require.NoError(t, err)
	assert.Len(t, items, 6)

	var count int64
	require.NoError(t, db.Model(&models.Item{}).Count(&count).Error)
	assert.Equal(t, int64(6), count)

	for _, item := range items {
		assert.True(t, models.ValidCategory(item.Category), item.Category)
		assert.True(t, item.InStock)
	}
}

func TestRun_SkipsNonEmptyCatalog(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)

	existing := models.Item{Name: "pre-existing", Description: "d", Price: 1, Category: "Books", Stock: 1, InStock: true}
	require.NoError(t, db.Create(&existing).Error)

	items, err := Run(context.Background(), db)
	require.NoError(t, err)
	assert.Nil(t, items)

	var count int64
	require.NoError(t, db.Model(&models.Item{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}
