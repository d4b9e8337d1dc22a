package testutil

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"shf-backend/internal/auth"
	"shf-backend/internal/config"
	"shf-backend/internal/database"
	"shf-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Config returns a config suitable for tests; no environment is consulted.
func Config() *config.Config {
	return &config.Config{
		Env:                  "test",
		JWTSecret:            "test-secret-test-secret-test-secret!",
		JWTExpiry:            time.Hour,
		PaymentWebhookSecret: "webhook-test-secret",
		EmailFrom:            "noreply@example.com",
		AdminEmail:           "admin@example.com",
	}
}

// SetupDB points the package-level database handle at a fresh in-memory
// sqlite instance with the full schema.
func SetupDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	// A single connection keeps every query on the same in-memory database.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.Migrate(db))
	database.DB = db
	return db
}

// CreateUser inserts a user with the given role and returns it together with
// a valid bearer token.
func CreateUser(t *testing.T, cfg *config.Config, email string, role models.UserRole) (*models.User, string) {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)

	user := &models.User{
		FirstName:    "Test",
		LastName:     "User",
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
	}
	require.NoError(t, database.DB.Create(user).Error)

	token, err := auth.GenerateToken(cfg.JWTSecret, cfg.JWTExpiry, user)
	require.NoError(t, err)
	return user, token
}

// Request performs a JSON request against the app and decodes the response
// body into out when out is non-nil. An empty token leaves the request
// unauthenticated.
func Request(t *testing.T, app *fiber.App, method, path, token string, body, out any) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	if out != nil {
		defer resp.Body.Close()
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp
}
