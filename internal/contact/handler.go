package contact

import (
	"log"
	"strings"

	"shf-backend/internal/config"
	"shf-backend/internal/database"
	"shf-backend/internal/mailer"
	"shf-backend/internal/models"
	"shf-backend/internal/resource"
	"shf-backend/internal/validation"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Contact messages have no soft-delete flag; Delete removes them for good.
var ctrl = resource.Controller[models.ContactMessage]{
	Sort: "created_at DESC",
	Scope: func(c *fiber.Ctx, tx *gorm.DB) *gorm.DB {
		if isRead := c.Query("is_read"); isRead != "" {
			tx = tx.Where("is_read = ?", isRead == "true")
		}
		return tx
	},
}

type CreateContactRequest struct {
	Name    string `json:"name" validate:"required,max=100"`
	Email   string `json:"email" validate:"required,email"`
	Phone   string `json:"phone" validate:"max=50"`
	Subject string `json:"subject" validate:"required,max=200"`
	Message string `json:"message" validate:"required"`
}

// CreateContactHandler stores the message, then dispatches the auto-response
// and the admin notification in the background. Email failures are logged
// and never change the response.
func CreateContactHandler(cfg *config.Config) fiber.Handler {
	return ctrl.CreateWith(func(c *fiber.Ctx) (*models.ContactMessage, error) {
		var body CreateContactRequest
		if err := c.BodyParser(&body); err != nil {
			return nil, fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}
		if err := validation.Struct(body); err != nil {
			return nil, err
		}

		return &models.ContactMessage{
			Name:    strings.TrimSpace(body.Name),
			Email:   strings.TrimSpace(strings.ToLower(body.Email)),
			Phone:   strings.TrimSpace(body.Phone),
			Subject: strings.TrimSpace(body.Subject),
			Message: body.Message,
		}, nil
	}, func(m *models.ContactMessage) {
		go func() {
			if err := mailer.SendContactAutoResponse(cfg, m.Email, m.Name); err != nil {
				log.Println("Contact auto-response failed:", err)
			}
		}()
		go func() {
			if err := mailer.SendContactNotification(cfg, m); err != nil {
				log.Println("Contact admin notification failed:", err)
			}
		}()
	})
}

func ListContactsHandler() fiber.Handler {
	return ctrl.List()
}

func GetContactHandler() fiber.Handler {
	return ctrl.GetByID()
}

func UpdateContactHandler() fiber.Handler {
	return ctrl.Update()
}

func DeleteContactHandler() fiber.Handler {
	return ctrl.Delete()
}

func MarkAsReadHandler() fiber.Handler {
	return setFlagHandler("is_read")
}

func MarkAsRespondedHandler() fiber.Handler {
	return setFlagHandler("response_sent")
}

func setFlagHandler(column string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var message models.ContactMessage
		if err := database.DB.First(&message, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Message not found")
		}

		if err := database.DB.Model(&message).Update(column, true).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not update message")
		}
		return c.JSON(&message)
	}
}
