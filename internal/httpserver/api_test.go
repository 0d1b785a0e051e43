package httpserver

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/ndemidov/storefront/internal/middleware"
	"github.com/ndemidov/storefront/internal/models"
	"github.com/ndemidov/storefront/internal/repo"
	"github.com/ndemidov/storefront/internal/service"
)

type testEnv struct {
	T    *testing.T
	E    *echo.Echo
	Repo *repo.GormRepo
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Item{}, &models.CartLine{}))

	gormRepo := &repo.GormRepo{DB: db}
	authSvc := &service.AuthService{Repo: gormRepo, JWTSecret: []byte("test-secret")}
	catalogSvc := &service.CatalogService{Repo: gormRepo}
	cartSvc := &service.CartService{Repo: gormRepo, Catalog: catalogSvc}

	e := echo.New()
	Register(e, &Deps{
		AuthHandler:    &AuthHTTP{Svc: authSvc},
		CartHandler:    &CartHTTP{Svc: cartSvc},
		CatalogHandler: &CatalogHTTP{Svc: catalogSvc},
		AuthMW:         middleware.NewAuth(authSvc),
	})

	return &testEnv{T: t, E: e, Repo: gormRepo}
}

func (env *testEnv) do(method, path, token string, body any) *httptest.ResponseRecorder {
	env.T.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(env.T, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	env.E.ServeHTTP(rec, req)
	return rec
}

func (env *testEnv) registerAndLogin(name, email, password string) string {
	env.T.Helper()

	rec := env.do(http.MethodPost, "/api/auth/register", "", map[string]string{
		"name": name, "email": email, "password": password,
	})
	require.Equal(env.T, http.StatusCreated, rec.Code, rec.Body.String())

	rec = env.do(http.MethodPost, "/api/auth/login", "", map[string]string{
		"email": email, "password": password,
	})
	require.Equal(env.T, http.StatusOK, rec.Code, rec.Body.String())

	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(env.T, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(env.T, resp.Token)
	return resp.Token
}

func (env *testEnv) createItem(name string, price float64) *models.Item {
	env.T.Helper()

	item := &models.Item{
		Name:        name,
		Description: name + " description",
		Price:       price,
		Category:    "Electronics",
		Stock:       10,
		InStock:     true,
	}
	require.NoError(env.T, env.Repo.DB.Create(item).Error)
	return item
}

type cartLine struct {
	Item     models.Item `json:"item"`
	Quantity uint        `json:"quantity"`
}

func decodeCart(t *testing.T, rec *httptest.ResponseRecorder) []cartLine {
	t.Helper()
	var lines []cartLine
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &lines))
	return lines
}
