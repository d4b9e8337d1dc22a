package donation

import (
	"fmt"
	"log"
	"strings"
	"time"

	"shf-backend/internal/config"
	"shf-backend/internal/database"
	"shf-backend/internal/mailer"
	"shf-backend/internal/models"
	"shf-backend/internal/resource"
	"shf-backend/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ctrl = resource.Controller[models.Donation]{
	Sort:    "created_at DESC",
	Preload: []string{"Category"},
	Scope: func(c *fiber.Ctx, tx *gorm.DB) *gorm.DB {
		if status := c.Query("status"); status != "" {
			tx = tx.Where("status = ?", status)
		}
		return tx
	},
	Check: resource.EnumFields(map[string][]string{
		"status":         {"pending", "completed", "failed", "refunded"},
		"payment_method": {"mobile-money", "card", "bank"},
	}),
}

type CreateDonationRequest struct {
	DonorName     string  `json:"donor_name" validate:"required,max=100"`
	DonorEmail    string  `json:"donor_email" validate:"required,email"`
	DonorPhone    string  `json:"donor_phone" validate:"max=50"`
	Amount        float64 `json:"amount" validate:"required,gt=0"`
	Currency      string  `json:"currency" validate:"omitempty,max=10"`
	PaymentMethod string  `json:"payment_method" validate:"required,oneof=mobile-money card bank"`
	TransactionID string  `json:"transaction_id" validate:"omitempty,max=100"`
	Status        string  `json:"status" validate:"omitempty,oneof=pending completed failed refunded"`
	CategoryID    *uint   `json:"category_id"`
	Notes         string  `json:"notes" validate:"max=500"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending completed failed refunded"`
}

// newTransactionID builds an id from the current time plus a random
// component. The format is opaque to callers; only the store's unique index
// guards against a collision.
func newTransactionID() string {
	return fmt.Sprintf("TXN-%d-%s", time.Now().UnixMilli(), strings.Split(uuid.NewString(), "-")[0])
}

func CreateDonationHandler() fiber.Handler {
	return ctrl.Create(func(c *fiber.Ctx) (*models.Donation, error) {
		var body CreateDonationRequest
		if err := c.BodyParser(&body); err != nil {
			return nil, fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}
		if err := validation.Struct(body); err != nil {
			return nil, err
		}

		transactionID := body.TransactionID
		if transactionID == "" {
			transactionID = newTransactionID()
		}
		currency := body.Currency
		if currency == "" {
			currency = "UGX"
		}
		status := models.DonationStatus(body.Status)
		if status == "" {
			status = models.DonationPending
		}

		return &models.Donation{
			DonorName:     strings.TrimSpace(body.DonorName),
			DonorEmail:    strings.TrimSpace(strings.ToLower(body.DonorEmail)),
			DonorPhone:    strings.TrimSpace(body.DonorPhone),
			Amount:        body.Amount,
			Currency:      currency,
			PaymentMethod: models.PaymentMethod(body.PaymentMethod),
			TransactionID: transactionID,
			Status:        status,
			CategoryID:    body.CategoryID,
			Notes:         body.Notes,
		}, nil
	})
}

func ListDonationsHandler() fiber.Handler {
	return ctrl.List()
}

// ListByStatusHandler serves the staff view filtered to a single status.
func ListByStatusHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		status := c.Params("status")

		var donations []models.Donation
		if err := database.DB.
			Preload("Category").
			Where("status = ?", status).
			Order("created_at DESC").
			Find(&donations).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list donations")
		}
		return c.JSON(donations)
	}
}

func GetDonationHandler() fiber.Handler {
	return ctrl.GetByID()
}

func UpdateDonationHandler() fiber.Handler {
	return ctrl.Update()
}

func DeleteDonationHandler() fiber.Handler {
	return ctrl.Delete()
}

// UpdateStatusHandler assigns the new status directly; no transition graph is
// enforced, the payment processor is trusted. Setting a status the donation
// already has is a no-op. When the new status is completed, the donor
// confirmation and the admin notification each get exactly one best-effort
// attempt in the background.
func UpdateStatusHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var body UpdateStatusRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}
		if err := validation.Struct(body); err != nil {
			return err
		}

		var donation models.Donation
		if err := database.DB.First(&donation, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Donation not found")
		}

		newStatus := models.DonationStatus(body.Status)
		if err := database.DB.Model(&donation).Update("status", newStatus).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not update donation")
		}
		donation.Status = newStatus

		if newStatus == models.DonationCompleted {
			notifyCompleted(cfg, donation)
		}

		return c.JSON(&donation)
	}
}

// notifyCompleted fires both notifications without waiting; failures are
// logged and swallowed so they never change the HTTP outcome.
func notifyCompleted(cfg *config.Config, d models.Donation) {
	go func() {
		if err := mailer.SendDonationConfirmation(cfg, &d); err != nil {
			log.Println("Donation confirmation email failed:", err)
		}
	}()
	go func() {
		if err := mailer.SendDonationNotification(cfg, &d); err != nil {
			log.Println("Donation admin notification failed:", err)
		}
	}()
}
