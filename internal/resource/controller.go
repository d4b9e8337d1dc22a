package resource

import (
	"encoding/json"
	"errors"
	"sort"
	"strings"

	"shf-backend/internal/database"
	"shf-backend/internal/validation"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Controller is the shared CRUD surface, composed once per resource type.
// Sort and Scope fix the resource's ordering and list filters at composition
// time; handlers never infer them from the record.
type Controller[T any] struct {
	// Sort is the deterministic list order, e.g. "date DESC". Defaults to
	// "created_at DESC".
	Sort string

	// SoftDelete makes List hide rows with is_active=false and turns Delete
	// into an is_active flip. GetByID still finds soft-deleted rows.
	SoftDelete bool

	// Scope adds resource-specific list filters from the request (query
	// params such as ?category= or ?is_read=).
	Scope func(c *fiber.Ctx, tx *gorm.DB) *gorm.DB

	// Preload names associations loaded with every read, for both listings
	// and single-record lookups.
	Preload []string

	// Check inspects a merge payload before Update writes it, so partial
	// updates stay under the same field rules as create. See EnumFields.
	Check func(payload map[string]interface{}) error
}

// Bind produces a new record from an already-validated request payload.
// Shape validation happens in the resource handler before the controller
// ever sees the input.
type Bind[T any] func(c *fiber.Ctx) (*T, error)

func (ct Controller[T]) order() string {
	if ct.Sort != "" {
		return ct.Sort
	}
	return "created_at DESC"
}

func (ct Controller[T]) List() fiber.Handler {
	return func(c *fiber.Ctx) error {
		tx := database.DB.Model(new(T))
		for _, assoc := range ct.Preload {
			tx = tx.Preload(assoc)
		}
		if ct.SoftDelete {
			tx = tx.Where("is_active = ?", true)
		}
		if ct.Scope != nil {
			tx = ct.Scope(c, tx)
		}

		var records []T
		if err := tx.Order(ct.order()).Find(&records).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list records")
		}
		return c.JSON(records)
	}
}

// GetByID returns the record even when it is soft-deleted; only listings
// hide inactive rows.
func (ct Controller[T]) GetByID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		tx := database.DB
		for _, assoc := range ct.Preload {
			tx = tx.Preload(assoc)
		}

		var record T
		if err := tx.First(&record, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Record not found")
		}
		return c.JSON(&record)
	}
}

func (ct Controller[T]) Create(bind Bind[T]) fiber.Handler {
	return ct.CreateWith(bind, nil)
}

// CreateWith persists the bound record, then invokes after as a side channel.
// The hook runs once the record is stored and must not influence the
// response; notification dispatch belongs there.
func (ct Controller[T]) CreateWith(bind Bind[T], after func(*T)) fiber.Handler {
	return func(c *fiber.Ctx) error {
		record, err := bind(c)
		if err != nil {
			return err
		}

		if err := database.DB.Create(record).Error; err != nil {
			if IsDuplicate(err) {
				return fiber.NewError(fiber.StatusBadRequest, "A record with the same unique value already exists")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Could not create record")
		}

		if after != nil {
			after(record)
		}
		return c.Status(fiber.StatusCreated).JSON(record)
	}
}

// Update merges only the fields present in the request body onto the stored
// record; everything else is left untouched.
func (ct Controller[T]) Update() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var record T
		if err := database.DB.First(&record, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Record not found")
		}

		payload, err := ParsePartial(c)
		if err != nil {
			return err
		}
		if len(payload) == 0 {
			return c.JSON(&record)
		}
		if ct.Check != nil {
			if err := ct.Check(payload); err != nil {
				return err
			}
		}

		if err := database.DB.Model(&record).Updates(payload).Error; err != nil {
			if IsDuplicate(err) {
				return fiber.NewError(fiber.StatusBadRequest, "A record with the same unique value already exists")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Could not update record")
		}

		// Re-read so the response reflects exactly what was stored.
		tx := database.DB
		for _, assoc := range ct.Preload {
			tx = tx.Preload(assoc)
		}
		if err := tx.First(&record, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not load updated record")
		}
		return c.JSON(&record)
	}
}

func (ct Controller[T]) Delete() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var result *gorm.DB
		if ct.SoftDelete {
			// Records are never physically removed; they only stop appearing
			// in listings.
			result = database.DB.Model(new(T)).Where("id = ?", id).Update("is_active", false)
		} else {
			result = database.DB.Delete(new(T), "id = ?", id)
		}

		if result.Error != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not delete record")
		}
		if result.RowsAffected == 0 {
			return fiber.NewError(fiber.StatusNotFound, "Record not found")
		}
		return c.JSON(fiber.Map{"message": "Record deleted successfully"})
	}
}

// protected columns can never be set through a partial update.
var protected = map[string]struct{}{
	"id":             {},
	"created_at":     {},
	"updated_at":     {},
	"password_hash":  {},
	"transaction_id": {},
}

// ParsePartial reads the request body as a field-by-field merge payload.
// Protected columns are stripped; nested JSON values are re-encoded for JSON
// columns.
func ParsePartial(c *fiber.Ctx) (map[string]interface{}, error) {
	payload := map[string]interface{}{}
	if err := json.Unmarshal(c.Body(), &payload); err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	for key, value := range payload {
		if _, ok := protected[key]; ok {
			delete(payload, key)
			continue
		}
		// Nested objects and arrays live in JSON columns; re-encode them so
		// gorm writes them as JSON values rather than failing on the Go type.
		switch value.(type) {
		case map[string]interface{}, []interface{}:
			raw, err := json.Marshal(value)
			if err != nil {
				return nil, fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
			}
			payload[key] = datatypes.JSON(raw)
		}
	}
	return payload, nil
}

// EnumFields builds a Check restricting each named payload field to a fixed
// value set. Absent fields pass; a present field must be a string from its
// set, otherwise the update is rejected with the same field-level error shape
// create uses.
func EnumFields(allowed map[string][]string) func(map[string]interface{}) error {
	return func(payload map[string]interface{}) error {
		var fields []validation.FieldError
		for name, values := range allowed {
			raw, ok := payload[name]
			if !ok {
				continue
			}
			s, isString := raw.(string)
			if !isString || !contains(values, s) {
				fields = append(fields, validation.FieldError{
					Field:   name,
					Message: "must be one of: " + strings.Join(values, " "),
				})
			}
		}
		if len(fields) == 0 {
			return nil
		}
		sort.Slice(fields, func(i, j int) bool { return fields[i].Field < fields[j].Field })
		return &validation.Error{Fields: fields}
	}
}

func contains(values []string, s string) bool {
	for _, v := range values {
		if v == s {
			return true
		}
	}
	return false
}

// IsDuplicate reports whether the store rejected a write because of a unique
// constraint. Requires gorm's TranslateError to be enabled on the connection.
func IsDuplicate(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}
