//go:build integration

package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/eventsphere/backend/internal/auth"
	"github.com/eventsphere/backend/internal/middleware"
	"github.com/eventsphere/backend/internal/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	ctx := context.Background()

	container, err := tcpostgres.Run(ctx, "postgres:alpine",
		tcpostgres.WithDatabase("testdb"),
		tcpostgres.WithUsername("testuser"),
		tcpostgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, container.Terminate(context.Background()))
	})

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := gorm.Open(postgres.Open(connStr), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}))
	return db
}

func setupRouter(db *gorm.DB, tokens *auth.TokenService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	protected := r.Group("/", middleware.JWTAuth(db, tokens))
	protected.GET("/whoami", func(c *gin.Context) {
		p, _ := middleware.GetPrincipal(c)
		c.JSON(http.StatusOK, gin.H{"id": p.ID, "role": p.Role})
	})

	admin := protected.Group("/admin", middleware.RequireRoles(models.RoleAdmin))
	admin.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	return r
}

func doRequest(r *gin.Engine, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest("GET", path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestJWTAuth(t *testing.T) {
	db := setupTestDB(t)
	tokens := auth.NewTokenService(auth.TokenConfig{
		SecretKey: "middleware-test-secret",
		TokenTTL:  time.Hour,
		Issuer:    "eventsphere-test",
	})
	r := setupRouter(db, tokens)

	active := models.User{Name: "Active", Email: "active@example.com", PasswordHash: "x", Role: models.RoleUser, IsActive: true}
	require.NoError(t, db.Create(&active).Error)
	inactive := models.User{Name: "Inactive", Email: "inactive@example.com", PasswordHash: "x", Role: models.RoleUser, IsActive: false}
	require.NoError(t, db.Create(&inactive).Error)
	admin := models.User{Name: "Admin", Email: "admin@example.com", PasswordHash: "x", Role: models.RoleAdmin, IsActive: true}
	require.NoError(t, db.Create(&admin).Error)

	activeToken, _, err := tokens.Generate(&active)
	require.NoError(t, err)
	inactiveToken, _, err := tokens.Generate(&inactive)
	require.NoError(t, err)
	adminToken, _, err := tokens.Generate(&admin)
	require.NoError(t, err)

	t.Run("missing header", func(t *testing.T) {
		w := doRequest(r, "/whoami", "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("garbage token", func(t *testing.T) {
		w := doRequest(r, "/whoami", "not.a.token")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "invalid or expired token")
	})

	t.Run("active account passes", func(t *testing.T) {
		w := doRequest(r, "/whoami", activeToken)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"role":"user"`)
	})

	t.Run("inactive account is rejected", func(t *testing.T) {
		w := doRequest(r, "/whoami", inactiveToken)
		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Contains(t, w.Body.String(), "account is inactive")
	})

	t.Run("token for a deleted account", func(t *testing.T) {
		ghost := models.User{Name: "Ghost", Email: "ghost@example.com", PasswordHash: "x", Role: models.RoleUser, IsActive: true}
		require.NoError(t, db.Create(&ghost).Error)
		ghostToken, _, err := tokens.Generate(&ghost)
		require.NoError(t, err)
		require.NoError(t, db.Delete(&models.User{}, ghost.ID).Error)

		w := doRequest(r, "/whoami", ghostToken)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "account no longer exists")
	})

	t.Run("role gate", func(t *testing.T) {
		w := doRequest(r, "/admin/ping", activeToken)
		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Contains(t, w.Body.String(), "insufficient permissions")

		w = doRequest(r, "/admin/ping", adminToken)
		assert.Equal(t, http.StatusOK, w.Code)
	})
}
