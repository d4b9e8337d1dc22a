package program

import (
	"strings"

	"shf-backend/internal/models"
	"shf-backend/internal/resource"
	"shf-backend/internal/validation"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
)

var ctrl = resource.Controller[models.Program]{
	Sort:       "created_at DESC",
	SoftDelete: true,
}

type CreateProgramRequest struct {
	Title              string                    `json:"title" validate:"required,max=200"`
	Description        string                    `json:"description" validate:"required"`
	Goals              []string                  `json:"goals" validate:"required,min=1,dive,required"`
	Photos             []string                  `json:"photos"`
	BeneficiaryStories []models.BeneficiaryStory `json:"beneficiary_stories"`
}

func ListProgramsHandler() fiber.Handler {
	return ctrl.List()
}

func GetProgramHandler() fiber.Handler {
	return ctrl.GetByID()
}

func CreateProgramHandler() fiber.Handler {
	return ctrl.Create(func(c *fiber.Ctx) (*models.Program, error) {
		var body CreateProgramRequest
		if err := c.BodyParser(&body); err != nil {
			return nil, fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}
		if err := validation.Struct(body); err != nil {
			return nil, err
		}

		return &models.Program{
			Title:              strings.TrimSpace(body.Title),
			Description:        body.Description,
			Goals:              datatypes.JSONSlice[string](body.Goals),
			Photos:             datatypes.JSONSlice[string](body.Photos),
			BeneficiaryStories: datatypes.JSONSlice[models.BeneficiaryStory](body.BeneficiaryStories),
			IsActive:           true,
		}, nil
	})
}

func UpdateProgramHandler() fiber.Handler {
	return ctrl.Update()
}

func DeleteProgramHandler() fiber.Handler {
	return ctrl.Delete()
}
