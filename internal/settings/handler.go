package settings

import (
	"errors"

	"shf-backend/internal/database"
	"shf-backend/internal/models"
	"shf-backend/internal/resource"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// load returns the singleton row, materializing the defaults on first use.
// The fixed primary key makes a concurrent double-create impossible: the
// loser of the race hits the key constraint and re-reads.
func load() (*models.Settings, error) {
	var s models.Settings
	err := database.DB.First(&s, "id = ?", models.SettingsID).Error
	if err == nil {
		return &s, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	s = models.DefaultSettings()
	if err := database.DB.Create(&s).Error; err != nil {
		if !resource.IsDuplicate(err) {
			return nil, err
		}
		if err := database.DB.First(&s, "id = ?", models.SettingsID).Error; err != nil {
			return nil, err
		}
	}
	return &s, nil
}

// GetSettingsHandler never reports absence; the defaults are created on the
// first read.
func GetSettingsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		s, err := load()
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not load settings")
		}
		return c.JSON(s)
	}
}

// UpdateSettingsHandler merges only the supplied fields onto the singleton,
// creating it first if it does not exist yet. There is no not-found case.
func UpdateSettingsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		s, err := load()
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not load settings")
		}

		payload, err := resource.ParsePartial(c)
		if err != nil {
			return err
		}
		if len(payload) > 0 {
			if err := database.DB.Model(s).Updates(payload).Error; err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Could not update settings")
			}
			if err := database.DB.First(s, "id = ?", models.SettingsID).Error; err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Could not load updated settings")
			}
		}
		return c.JSON(s)
	}
}
