package cart

import (
	"lanaim-backend/internal/apperr"
	"lanaim-backend/internal/models"
	"lanaim-backend/internal/session"

	"github.com/gofiber/fiber/v2"
)

type AddLineRequest struct {
	MenuID    uint   `json:"menu_id"`
	Quantity  int    `json:"quantity"`
	OptionIDs []uint `json:"option_ids"`
	Notes     string `json:"notes"`
}

type UpdateQuantityRequest struct {
	LineID   uint `json:"line_id"`
	Quantity int  `json:"quantity"`
}

type SetZoneRequest struct {
	ZoneID uint `json:"zone_id"`
}

func cartResponse(c *fiber.Ctx, cart *models.Cart) error {
	itemCount := 0
	for _, line := range cart.Lines {
		itemCount += line.Quantity
	}

	prepMin, err := EstimatePrepTime(cart.Lines)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"cart":               cart,
		"item_count":         itemCount,
		"estimated_prep_min": prepMin,
	})
}

// -------------------------------------------------
// GET /api/cart
// -------------------------------------------------
func GetCartHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		cart, err := GetOrCreate(session.Token(c))
		if err != nil {
			return err
		}
		return cartResponse(c, cart)
	}
}

// -------------------------------------------------
// POST /api/cart/items
// -------------------------------------------------
func AddLineHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body AddLineRequest
		if err := c.BodyParser(&body); err != nil {
			return apperr.Validation("Geçersiz istek gövdesi")
		}
		if body.MenuID == 0 {
			return apperr.Validation("menu_id zorunlu")
		}

		cart, err := AddLine(session.Token(c), body.MenuID, body.Quantity, body.OptionIDs, body.Notes)
		if err != nil {
			return err
		}
		return cartResponse(c, cart)
	}
}

// -------------------------------------------------
// PUT /api/cart/items
// -------------------------------------------------
func UpdateQuantityHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body UpdateQuantityRequest
		if err := c.BodyParser(&body); err != nil {
			return apperr.Validation("Geçersiz istek gövdesi")
		}
		if body.LineID == 0 {
			return apperr.Validation("line_id zorunlu")
		}

		cart, err := UpdateQuantity(session.Token(c), body.LineID, body.Quantity)
		if err != nil {
			return err
		}
		return cartResponse(c, cart)
	}
}

// -------------------------------------------------
// POST /api/cart/zone
// -------------------------------------------------
func SetZoneHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body SetZoneRequest
		if err := c.BodyParser(&body); err != nil {
			return apperr.Validation("Geçersiz istek gövdesi")
		}
		if body.ZoneID == 0 {
			return apperr.Validation("zone_id zorunlu")
		}

		cart, err := SetZone(session.Token(c), body.ZoneID)
		if err != nil {
			return err
		}
		return cartResponse(c, cart)
	}
}

// -------------------------------------------------
// DELETE /api/cart
// -------------------------------------------------
func ClearCartHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		cart, err := Clear(session.Token(c))
		if err != nil {
			return err
		}
		return cartResponse(c, cart)
	}
}
