package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/saandeep/portfolio-api/internal/app"
	iauth "github.com/saandeep/portfolio-api/internal/auth"
	"github.com/saandeep/portfolio-api/internal/cache"
	"github.com/saandeep/portfolio-api/internal/database/testutil"
	"github.com/saandeep/portfolio-api/internal/models"
	"github.com/saandeep/portfolio-api/internal/services"
)

type routerFixture struct {
	engine *gin.Engine
	db     *gorm.DB
	jwt    *iauth.JWTService
	users  *services.UserService
}

func newRouterFixture(t *testing.T) *routerFixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testutil.MustOpenTestDB(t, testutil.WithAutoMigrate())
	c, err := cache.New(db)
	require.NoError(t, err)
	jwt, err := iauth.NewJWTService(iauth.JWTConfig{Secret: "test-secret", Issuer: "portfolio-api"})
	require.NoError(t, err)

	cfg, err := app.LoadConfig(t.TempDir())
	require.NoError(t, err)
	cfg.Uploads.Dir = t.TempDir()

	engine, err := NewRouter(cfg, Dependencies{DB: db, Cache: c, JWT: jwt})
	require.NoError(t, err)

	users, err := services.NewUserService(db)
	require.NoError(t, err)

	return &routerFixture{engine: engine, db: db, jwt: jwt, users: users}
}

func (f *routerFixture) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	f.engine.ServeHTTP(w, req)
	return w
}

func (f *routerFixture) adminToken(t *testing.T) string {
	t.Helper()

	user, _, err := f.users.EnsureAdmin(context.Background(), "admin", "admin@example.com", "s3cret-pass")
	require.NoError(t, err)
	token, err := f.jwt.GenerateAccessToken(user.ID, user.Role)
	require.NoError(t, err)
	return token
}

func decodeData(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var envelope struct {
		Success bool           `json:"success"`
		Data    map[string]any `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	require.True(t, envelope.Success)
	return envelope.Data
}

func TestHealthEndpoint(t *testing.T) {
	f := newRouterFixture(t)

	w := f.do(t, http.MethodGet, "/health", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
}

func TestContactSubmission(t *testing.T) {
	f := newRouterFixture(t)

	w := f.do(t, http.MethodPost, "/api/contact", "", map[string]string{
		"name":    "Ada",
		"email":   "ada@example.com",
		"message": "Hello, love the portfolio!",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	require.Equal(t, "Message sent successfully!", decodeData(t, w)["message"])
}

func TestContactValidation(t *testing.T) {
	f := newRouterFixture(t)

	w := f.do(t, http.MethodPost, "/api/contact", "", map[string]string{
		"name":  "Ada",
		"email": "not-an-email",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAdminRoutesRequireAuth(t *testing.T) {
	f := newRouterFixture(t)

	w := f.do(t, http.MethodPost, "/api/admin/projects", "", map[string]string{"title": "x"})
	require.Equal(t, http.StatusUnauthorized, w.Code)

	w = f.do(t, http.MethodGet, "/api/admin/messages", "garbage-token", nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLoginAndAdminFlow(t *testing.T) {
	f := newRouterFixture(t)
	_ = f.adminToken(t)

	w := f.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{
		"username": "admin",
		"password": "s3cret-pass",
	})
	require.Equal(t, http.StatusOK, w.Code)
	data := decodeData(t, w)
	token, _ := data["token"].(string)
	require.NotEmpty(t, token)

	w = f.do(t, http.MethodGet, "/api/admin/me", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
}

func TestProjectLifecycleInvalidatesListing(t *testing.T) {
	f := newRouterFixture(t)
	token := f.adminToken(t)

	w := f.do(t, http.MethodPost, "/api/admin/projects", token, map[string]any{
		"title":       "dotman",
		"description": "dotfile manager",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	// Prime the listing cache.
	w = f.do(t, http.MethodGet, "/api/projects", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = f.do(t, http.MethodPost, "/api/admin/projects", token, map[string]any{
		"title":       "second",
		"description": "another",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = f.do(t, http.MethodGet, "/api/projects", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var envelope struct {
		Data []models.Project `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	require.Len(t, envelope.Data, 2)
}

func TestBlogListingServedFromCache(t *testing.T) {
	f := newRouterFixture(t)
	token := f.adminToken(t)

	w := f.do(t, http.MethodPost, "/api/admin/blog", token, map[string]any{
		"title":   "Why Go",
		"content": "Fast compiles.",
		"publish": true,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	// Prime the cache.
	w = f.do(t, http.MethodGet, "/api/blog", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	// Deleting behind the cache's back must not affect the cached listing.
	require.NoError(t, f.db.Exec("DELETE FROM blog_posts").Error)

	w = f.do(t, http.MethodGet, "/api/blog", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var envelope struct {
		Data []models.BlogPost `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	require.Len(t, envelope.Data, 1)
}

func TestUnknownRouteReturnsJSON404(t *testing.T) {
	f := newRouterFixture(t)

	w := f.do(t, http.MethodGet, "/api/nope", "", nil)
	require.Equal(t, http.StatusNotFound, w.Code)
	require.Contains(t, w.Body.String(), "NOT_FOUND")
}

func TestChatbotDegradesWhenModelUnavailable(t *testing.T) {
	f := newRouterFixture(t)

	w := f.do(t, http.MethodPost, "/api/chatbot", "", map[string]string{
		"message": "What projects have you built?",
	})
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "contact form")
}

func TestPublicBlogSlugFlow(t *testing.T) {
	f := newRouterFixture(t)
	token := f.adminToken(t)

	w := f.do(t, http.MethodPost, "/api/admin/blog", token, map[string]any{
		"title":   "Hello World",
		"content": "First post.",
		"publish": true,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = f.do(t, http.MethodGet, "/api/blog/hello-world", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "Hello World")

	w = f.do(t, http.MethodGet, "/api/blog/missing-post", "", nil)
	require.Equal(t, http.StatusNotFound, w.Code)
}
