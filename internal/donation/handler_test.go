package donation_test

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"shf-backend/internal/config"
	"shf-backend/internal/mailer"
	"shf-backend/internal/models"
	"shf-backend/internal/server"
	"shf-backend/internal/testutil"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// captureMail swaps the mail seam for one that records every delivery
// attempt and fails it, proving notification failures stay invisible to
// callers.
func captureMail(t *testing.T) chan string {
	t.Helper()

	sent := make(chan string, 8)
	orig := mailer.Send
	mailer.Send = func(cfg *config.Config, to []string, subject, body string) error {
		sent <- subject
		return errors.New("smtp unavailable")
	}
	t.Cleanup(func() { mailer.Send = orig })
	return sent
}

func waitForMail(t *testing.T, sent chan string, want int) []string {
	t.Helper()

	subjects := make([]string, 0, want)
	for len(subjects) < want {
		select {
		case s := <-sent:
			subjects = append(subjects, s)
		case <-time.After(2 * time.Second):
			t.Fatalf("expected %d notification attempts, got %d", want, len(subjects))
		}
	}

	// No extra attempts should follow.
	select {
	case s := <-sent:
		t.Fatalf("unexpected extra notification attempt: %q", s)
	case <-time.After(100 * time.Millisecond):
	}
	return subjects
}

func donationPayload() map[string]any {
	return map[string]any{
		"donor_name":     "Alice Donor",
		"donor_email":    "alice@example.com",
		"amount":         75000,
		"currency":       "UGX",
		"payment_method": "card",
	}
}

func TestCreateGeneratesTransactionID(t *testing.T) {
	testutil.SetupDB(t)
	cfg := testutil.Config()
	app := server.New(cfg)

	var created models.Donation
	resp := testutil.Request(t, app, "POST", "/api/donations", "", donationPayload(), &created)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	assert.True(t, strings.HasPrefix(created.TransactionID, "TXN-"), "got %q", created.TransactionID)
	assert.Equal(t, models.DonationPending, created.Status)
	assert.Equal(t, "UGX", created.Currency)
}

func TestCreateGeneratedIDsDoNotCollide(t *testing.T) {
	testutil.SetupDB(t)
	cfg := testutil.Config()
	app := server.New(cfg)

	var first, second models.Donation
	resp := testutil.Request(t, app, "POST", "/api/donations", "", donationPayload(), &first)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	resp = testutil.Request(t, app, "POST", "/api/donations", "", donationPayload(), &second)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	assert.NotEqual(t, first.TransactionID, second.TransactionID)
}

func TestCreateDuplicateTransactionIDRejected(t *testing.T) {
	testutil.SetupDB(t)
	cfg := testutil.Config()
	app := server.New(cfg)

	payload := donationPayload()
	payload["transaction_id"] = "TXN-FIXED-1"

	resp := testutil.Request(t, app, "POST", "/api/donations", "", payload, nil)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp = testutil.Request(t, app, "POST", "/api/donations", "", payload, nil)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestCreateRejectsInvalidAmount(t *testing.T) {
	testutil.SetupDB(t)
	cfg := testutil.Config()
	app := server.New(cfg)

	payload := donationPayload()
	payload["amount"] = 0

	resp := testutil.Request(t, app, "POST", "/api/donations", "", payload, nil)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestUpdateStatusCompletedNotifiesOnce(t *testing.T) {
	testutil.SetupDB(t)
	cfg := testutil.Config()
	app := server.New(cfg)
	sent := captureMail(t)

	_, token := testutil.CreateUser(t, cfg, "staff@example.com", models.RoleStaff)

	var created models.Donation
	testutil.Request(t, app, "POST", "/api/donations", "", donationPayload(), &created)

	var updated models.Donation
	resp := testutil.Request(t, app, "PUT", fmt.Sprintf("/api/donations/%d/status", created.ID), token,
		map[string]any{"status": "completed"}, &updated)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	// Status update succeeds even though both delivery attempts fail.
	assert.Equal(t, models.DonationCompleted, updated.Status)

	subjects := waitForMail(t, sent, 2)
	assert.Contains(t, strings.Join(subjects, "|"), "Thank You for Your Donation")
	assert.Contains(t, strings.Join(subjects, "|"), "Donation Completed")
}

func TestUpdateStatusNonCompletedSendsNothing(t *testing.T) {
	testutil.SetupDB(t)
	cfg := testutil.Config()
	app := server.New(cfg)
	sent := captureMail(t)

	_, token := testutil.CreateUser(t, cfg, "staff@example.com", models.RoleStaff)

	var created models.Donation
	testutil.Request(t, app, "POST", "/api/donations", "", donationPayload(), &created)

	var updated models.Donation
	resp := testutil.Request(t, app, "PUT", fmt.Sprintf("/api/donations/%d/status", created.ID), token,
		map[string]any{"status": "failed"}, &updated)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, models.DonationFailed, updated.Status)

	select {
	case s := <-sent:
		t.Fatalf("unexpected notification attempt: %q", s)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestDonationScenario(t *testing.T) {
	testutil.SetupDB(t)
	cfg := testutil.Config()
	app := server.New(cfg)
	captureMail(t)

	_, token := testutil.CreateUser(t, cfg, "staff@example.com", models.RoleStaff)

	var created models.Donation
	resp := testutil.Request(t, app, "POST", "/api/donations", "", donationPayload(), &created)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	require.True(t, strings.HasPrefix(created.TransactionID, "TXN-"))
	require.Equal(t, models.DonationPending, created.Status)

	var updated models.Donation
	resp = testutil.Request(t, app, "PUT", fmt.Sprintf("/api/donations/%d/status", created.ID), token,
		map[string]any{"status": "completed"}, &updated)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.Equal(t, models.DonationCompleted, updated.Status)

	var fetched models.Donation
	resp = testutil.Request(t, app, "GET", fmt.Sprintf("/api/donations/%d", created.ID), token, nil, &fetched)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, models.DonationCompleted, fetched.Status)
	assert.Equal(t, created.TransactionID, fetched.TransactionID)
}

func TestListByStatus(t *testing.T) {
	testutil.SetupDB(t)
	cfg := testutil.Config()
	app := server.New(cfg)
	captureMail(t)

	_, token := testutil.CreateUser(t, cfg, "staff@example.com", models.RoleStaff)

	var first, second models.Donation
	testutil.Request(t, app, "POST", "/api/donations", "", donationPayload(), &first)
	testutil.Request(t, app, "POST", "/api/donations", "", donationPayload(), &second)
	testutil.Request(t, app, "PUT", fmt.Sprintf("/api/donations/%d/status", first.ID), token,
		map[string]any{"status": "failed"}, nil)

	var failed []models.Donation
	resp := testutil.Request(t, app, "GET", "/api/donations/status/failed", token, nil, &failed)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.Len(t, failed, 1)
	assert.Equal(t, first.ID, failed[0].ID)

	var pending []models.Donation
	resp = testutil.Request(t, app, "GET", "/api/donations/status/pending", token, nil, &pending)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.Len(t, pending, 1)
	assert.Equal(t, second.ID, pending[0].ID)
}

func TestUpdateRejectsOutOfEnumValues(t *testing.T) {
	testutil.SetupDB(t)
	cfg := testutil.Config()
	app := server.New(cfg)

	_, token := testutil.CreateUser(t, cfg, "staff@example.com", models.RoleStaff)

	var created models.Donation
	resp := testutil.Request(t, app, "POST", "/api/donations", "", donationPayload(), &created)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	// The merge update is held to the same field rules as create.
	resp = testutil.Request(t, app, "PUT", fmt.Sprintf("/api/donations/%d", created.ID), token,
		map[string]any{"status": "bogus-status"}, nil)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp = testutil.Request(t, app, "PUT", fmt.Sprintf("/api/donations/%d", created.ID), token,
		map[string]any{"payment_method": "cash"}, nil)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	var fetched models.Donation
	resp = testutil.Request(t, app, "GET", fmt.Sprintf("/api/donations/%d", created.ID), token, nil, &fetched)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, models.DonationPending, fetched.Status)
	assert.Equal(t, models.PaymentCard, fetched.PaymentMethod)
}

func TestUpdateAcceptsValidEnumValue(t *testing.T) {
	testutil.SetupDB(t)
	cfg := testutil.Config()
	app := server.New(cfg)

	_, token := testutil.CreateUser(t, cfg, "staff@example.com", models.RoleStaff)

	var created models.Donation
	testutil.Request(t, app, "POST", "/api/donations", "", donationPayload(), &created)

	var updated models.Donation
	resp := testutil.Request(t, app, "PUT", fmt.Sprintf("/api/donations/%d", created.ID), token,
		map[string]any{"status": "refunded", "notes": "chargeback"}, &updated)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, models.DonationRefunded, updated.Status)
	assert.Equal(t, "chargeback", updated.Notes)
}

func TestGetIncludesCategory(t *testing.T) {
	testutil.SetupDB(t)
	cfg := testutil.Config()
	app := server.New(cfg)

	_, adminToken := testutil.CreateUser(t, cfg, "admin@example.com", models.RoleAdmin)

	var category models.DonationCategory
	resp := testutil.Request(t, app, "POST", "/api/donation-categories", adminToken,
		map[string]any{"name": "Education"}, &category)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	payload := donationPayload()
	payload["category_id"] = category.ID
	var created models.Donation
	resp = testutil.Request(t, app, "POST", "/api/donations", "", payload, &created)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	// The single-record response carries the category like the list does.
	var fetched models.Donation
	resp = testutil.Request(t, app, "GET", fmt.Sprintf("/api/donations/%d", created.ID), adminToken, nil, &fetched)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.NotNil(t, fetched.Category)
	assert.Equal(t, "Education", fetched.Category.Name)

	var listed []models.Donation
	resp = testutil.Request(t, app, "GET", "/api/donations", adminToken, nil, &listed)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.Len(t, listed, 1)
	require.NotNil(t, listed[0].Category)
	assert.Equal(t, "Education", listed[0].Category.Name)
}

func TestDonationEndpointsRequireRole(t *testing.T) {
	testutil.SetupDB(t)
	cfg := testutil.Config()
	app := server.New(cfg)

	_, staffToken := testutil.CreateUser(t, cfg, "staff@example.com", models.RoleStaff)

	resp := testutil.Request(t, app, "GET", "/api/donations", "", nil, nil)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	// Hard delete is admin-only; staff gets 403.
	resp = testutil.Request(t, app, "DELETE", "/api/donations/1", staffToken, nil, nil)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}
