package gallery

import (
	"strings"

	"shf-backend/internal/models"
	"shf-backend/internal/resource"
	"shf-backend/internal/validation"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

var ctrl = resource.Controller[models.GalleryItem]{
	Sort:       "created_at DESC",
	SoftDelete: true,
	Scope: func(c *fiber.Ctx, tx *gorm.DB) *gorm.DB {
		if category := c.Query("category"); category != "" {
			tx = tx.Where("category = ?", category)
		}
		return tx
	},
	Check: resource.EnumFields(map[string][]string{
		"category": {"learners", "community", "school"},
	}),
}

type CreateGalleryItemRequest struct {
	Title       string `json:"title" validate:"required,max=200"`
	Description string `json:"description" validate:"max=500"`
	ImageURL    string `json:"image_url" validate:"required,max=500"`
	Category    string `json:"category" validate:"required,oneof=learners community school"`
}

func ListGalleryHandler() fiber.Handler {
	return ctrl.List()
}

func GetGalleryItemHandler() fiber.Handler {
	return ctrl.GetByID()
}

func CreateGalleryItemHandler() fiber.Handler {
	return ctrl.Create(func(c *fiber.Ctx) (*models.GalleryItem, error) {
		var body CreateGalleryItemRequest
		if err := c.BodyParser(&body); err != nil {
			return nil, fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}
		if err := validation.Struct(body); err != nil {
			return nil, err
		}

		return &models.GalleryItem{
			Title:       strings.TrimSpace(body.Title),
			Description: body.Description,
			ImageURL:    body.ImageURL,
			Category:    models.GalleryCategory(body.Category),
			IsActive:    true,
		}, nil
	})
}

func UpdateGalleryItemHandler() fiber.Handler {
	return ctrl.Update()
}

func DeleteGalleryItemHandler() fiber.Handler {
	return ctrl.Delete()
}
