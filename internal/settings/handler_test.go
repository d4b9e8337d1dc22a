package settings_test

import (
	"testing"

	"shf-backend/internal/database"
	"shf-backend/internal/models"
	"shf-backend/internal/server"
	"shf-backend/internal/testutil"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetCreatesSingletonOnce(t *testing.T) {
	testutil.SetupDB(t)
	cfg := testutil.Config()
	app := server.New(cfg)

	var first models.Settings
	resp := testutil.Request(t, app, "GET", "/api/settings", "", nil, &first)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "Southern Hemisphere Foundation", first.SiteTitle)

	var second models.Settings
	resp = testutil.Request(t, app, "GET", "/api/settings", "", nil, &second)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, first.ID, second.ID)

	var count int64
	require.NoError(t, database.DB.Model(&models.Settings{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestUpdateMergesFields(t *testing.T) {
	testutil.SetupDB(t)
	cfg := testutil.Config()
	app := server.New(cfg)

	_, adminToken := testutil.CreateUser(t, cfg, "admin@example.com", models.RoleAdmin)

	var updated models.Settings
	resp := testutil.Request(t, app, "PUT", "/api/settings", adminToken,
		map[string]any{"site_title": "New Title"}, &updated)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	assert.Equal(t, "New Title", updated.SiteTitle)
	// Fields not present in the payload keep their defaults.
	assert.Equal(t, "Bunamwaya, Makindye, Wakiso District, Uganda", updated.Address)

	// The update-before-read path still yields exactly one row.
	var count int64
	require.NoError(t, database.DB.Model(&models.Settings{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestUpdateNestedSocialLinks(t *testing.T) {
	testutil.SetupDB(t)
	cfg := testutil.Config()
	app := server.New(cfg)

	_, adminToken := testutil.CreateUser(t, cfg, "admin@example.com", models.RoleAdmin)

	var updated models.Settings
	resp := testutil.Request(t, app, "PUT", "/api/settings", adminToken,
		map[string]any{
			"social_links":  map[string]string{"facebook": "https://facebook.com/shf"},
			"phone_numbers": []string{"+256 762 658 295"},
		}, &updated)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	assert.Equal(t, "https://facebook.com/shf", updated.SocialLinks.Data().Facebook)
	assert.Equal(t, []string{"+256 762 658 295"}, []string(updated.PhoneNumbers))
}

func TestUpdateRequiresAdmin(t *testing.T) {
	testutil.SetupDB(t)
	cfg := testutil.Config()
	app := server.New(cfg)

	_, staffToken := testutil.CreateUser(t, cfg, "staff@example.com", models.RoleStaff)

	resp := testutil.Request(t, app, "PUT", "/api/settings", staffToken,
		map[string]any{"site_title": "Nope"}, nil)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}
