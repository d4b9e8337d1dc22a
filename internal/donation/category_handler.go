package donation

import (
	"strings"

	"shf-backend/internal/models"
	"shf-backend/internal/resource"
	"shf-backend/internal/validation"

	"github.com/gofiber/fiber/v2"
)

var categoryCtrl = resource.Controller[models.DonationCategory]{
	Sort: "name ASC",
}

type CreateCategoryRequest struct {
	Name        string `json:"name" validate:"required,max=100"`
	Description string `json:"description" validate:"max=500"`
}

func ListCategoriesHandler() fiber.Handler {
	return categoryCtrl.List()
}

func CreateCategoryHandler() fiber.Handler {
	return categoryCtrl.Create(func(c *fiber.Ctx) (*models.DonationCategory, error) {
		var body CreateCategoryRequest
		if err := c.BodyParser(&body); err != nil {
			return nil, fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}
		if err := validation.Struct(body); err != nil {
			return nil, err
		}

		return &models.DonationCategory{
			Name:        strings.TrimSpace(body.Name),
			Description: body.Description,
		}, nil
	})
}
