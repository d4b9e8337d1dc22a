package donation

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"log"

	"shf-backend/internal/config"
	"shf-backend/internal/database"
	"shf-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type webhookPayload struct {
	Event string `json:"event"`
	Data  struct {
		TxRef  string `json:"tx_ref"`
		Status string `json:"status"`
	} `json:"data"`
}

// WebhookHandler processes payment provider events. The request is
// authenticated by an HMAC-SHA256 signature over the exact raw body,
// delivered in the verif-hash header; no bearer token is involved.
//
// A recognized event that matches no donation is still acknowledged with 200,
// otherwise the provider would keep retrying. Only a bad signature is a
// client error.
func WebhookHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		body := c.Body()

		if !verifySignature(cfg.PaymentWebhookSecret, body, c.Get("verif-hash")) {
			log.Println("Webhook rejected: invalid signature")
			return fiber.NewError(fiber.StatusBadRequest, "Invalid signature")
		}

		var payload webhookPayload
		if err := json.Unmarshal(body, &payload); err != nil {
			log.Println("Webhook payload could not be parsed:", err)
			return c.SendString("Webhook received")
		}

		switch payload.Event {
		case "charge.completed":
			applyChargeCompleted(payload)
		default:
			log.Println("Unhandled webhook event type:", payload.Event)
		}

		return c.SendString("Webhook received")
	}
}

func verifySignature(secret string, body []byte, header string) bool {
	if secret == "" || header == "" {
		return false
	}

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	expected := hex.EncodeToString(mac.Sum(nil))

	return hmac.Equal([]byte(expected), []byte(header))
}

// applyChargeCompleted assigns the reported status to the matching donation.
// The assignment is idempotent; a duplicate delivery writes the same value
// again and leaves state unchanged.
func applyChargeCompleted(payload webhookPayload) {
	var donation models.Donation
	if err := database.DB.Where("transaction_id = ?", payload.Data.TxRef).First(&donation).Error; err != nil {
		log.Printf("Donation with transaction ID %s not found", payload.Data.TxRef)
		return
	}

	status := models.DonationStatus(payload.Data.Status)
	if err := database.DB.Model(&donation).Update("status", status).Error; err != nil {
		log.Printf("Could not update donation %d from webhook: %v", donation.ID, err)
		return
	}

	log.Printf("Donation %d updated to status: %s", donation.ID, status)
}
