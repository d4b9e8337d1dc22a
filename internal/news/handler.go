package news

import (
	"strings"
	"time"

	"shf-backend/internal/models"
	"shf-backend/internal/resource"
	"shf-backend/internal/validation"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// News listings are ordered by publication date, not creation time, and
// accept an optional ?category= filter.
var ctrl = resource.Controller[models.News]{
	Sort:       "date DESC",
	SoftDelete: true,
	Scope: func(c *fiber.Ctx, tx *gorm.DB) *gorm.DB {
		if category := c.Query("category"); category != "" {
			tx = tx.Where("category = ?", category)
		}
		return tx
	},
	Check: resource.EnumFields(map[string][]string{
		"category": {"news", "event", "story"},
	}),
}

type CreateNewsRequest struct {
	Title         string    `json:"title" validate:"required,max=200"`
	Content       string    `json:"content" validate:"required"`
	Excerpt       string    `json:"excerpt" validate:"required,max=500"`
	FeaturedImage string    `json:"featured_image"`
	Category      string    `json:"category" validate:"required,oneof=news event story"`
	Date          time.Time `json:"date" validate:"required"`
}

func ListNewsHandler() fiber.Handler {
	return ctrl.List()
}

func GetNewsHandler() fiber.Handler {
	return ctrl.GetByID()
}

func CreateNewsHandler() fiber.Handler {
	return ctrl.Create(func(c *fiber.Ctx) (*models.News, error) {
		var body CreateNewsRequest
		if err := c.BodyParser(&body); err != nil {
			return nil, fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}
		if err := validation.Struct(body); err != nil {
			return nil, err
		}

		return &models.News{
			Title:         strings.TrimSpace(body.Title),
			Content:       body.Content,
			Excerpt:       body.Excerpt,
			FeaturedImage: body.FeaturedImage,
			Category:      models.NewsCategory(body.Category),
			Date:          body.Date,
			IsActive:      true,
		}, nil
	})
}

func UpdateNewsHandler() fiber.Handler {
	return ctrl.Update()
}

func DeleteNewsHandler() fiber.Handler {
	return ctrl.Delete()
}
