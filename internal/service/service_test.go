package service

import (
	"fmt"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/ndemidov/storefront/internal/models"
	"github.com/ndemidov/storefront/internal/repo"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// single connection: keeps the shared in-memory db alive and avoids
	// SQLITE_BUSY under concurrent test writers
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Item{}, &models.CartLine{}))

	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}

func newCartEnv(t *testing.T) (*CartService, *repo.GormRepo) {
	t.Helper()

	r := &repo.GormRepo{DB: newTestDB(t)}
	catalog := &CatalogService{Repo: r}
	cart := &CartService{Repo: r, Catalog: catalog}
	return cart, r
}

func createTestItem(t *testing.T, r *repo.GormRepo, name string) *models.Item {
	t.Helper()

	item := &models.Item{
		Name:        name,
		Description: name + " description",
		Price:       9.99,
		Category:    "Electronics",
		Stock:       10,
		InStock:     true,
	}
	require.NoError(t, r.DB.Create(item).Error)
	return item
}
