package order

import (
	"strings"
	"time"

	"lanaim-backend/internal/apperr"
	"lanaim-backend/internal/auth"
	"lanaim-backend/internal/models"
	"lanaim-backend/internal/session"

	"github.com/gofiber/fiber/v2"
)

type PlaceOrderRequest struct {
	CustomerName        string `json:"customer_name"`
	CustomerPhone       string `json:"customer_phone"`
	DeliveryAddress     string `json:"delivery_address"`
	PaymentMethod       string `json:"payment_method"`
	SpecialInstructions string `json:"special_instructions"`
	PromotionID         *uint  `json:"promotion_id"`
}

type CancelOrderRequest struct {
	CustomerPhone string `json:"customer_phone"`
}

type UpdateStatusRequest struct {
	Status string `json:"status"`
}

func orderResponse(c *fiber.Ctx, o *models.Order) error {
	resp := fiber.Map{
		"order":          o,
		"status_display": o.Status.StatusDisplay(),
	}

	// teslimat tahminine kalan süre (dakika), geçmişse 0
	if o.EstimatedDeliveryTime != nil && !o.IsTerminal() {
		remaining := int(time.Until(*o.EstimatedDeliveryTime).Minutes())
		if remaining < 0 {
			remaining = 0
		}
		resp["estimated_minutes_remaining"] = remaining
	}

	return c.JSON(resp)
}

// -------------------------------------------------
// POST /api/orders
// -------------------------------------------------
func PlaceOrderHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body PlaceOrderRequest
		if err := c.BodyParser(&body); err != nil {
			return apperr.Validation("Geçersiz istek gövdesi")
		}

		order, err := PlaceOrder(session.Token(c), c.IP(), c.Get("User-Agent"), PlaceOrderInput{
			CustomerName:        body.CustomerName,
			CustomerPhone:       body.CustomerPhone,
			DeliveryAddress:     body.DeliveryAddress,
			PaymentMethod:       models.PaymentMethod(body.PaymentMethod),
			SpecialInstructions: body.SpecialInstructions,
			PromotionID:         body.PromotionID,
		})
		if err != nil {
			return err
		}

		c.Status(fiber.StatusCreated)
		return orderResponse(c, order)
	}
}

// -------------------------------------------------
// GET /api/orders/:number
// -------------------------------------------------
func GetOrderHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		number := c.Params("number")
		if number == "" {
			return apperr.Validation("Sipariş numarası zorunlu")
		}

		order, err := GetByNumber(number)
		if err != nil {
			return err
		}
		return orderResponse(c, order)
	}
}

// -------------------------------------------------
// GET /api/orders?phone=...
// -------------------------------------------------
func OrderHistoryHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		phone := c.Query("phone")
		if phone == "" {
			return apperr.Validation("phone parametresi zorunlu")
		}

		orders, err := HistoryByPhone(phone, c.QueryInt("limit", 20))
		if err != nil {
			return err
		}

		return c.JSON(fiber.Map{"orders": orders, "count": len(orders)})
	}
}

// -------------------------------------------------
// POST /api/orders/:number/cancel
// -------------------------------------------------
func CancelOrderHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CancelOrderRequest
		if err := c.BodyParser(&body); err != nil {
			return apperr.Validation("Geçersiz istek gövdesi")
		}
		if body.CustomerPhone == "" {
			return apperr.Validation("customer_phone zorunlu")
		}

		order, err := CancelByCustomer(c.Params("number"), body.CustomerPhone)
		if err != nil {
			return err
		}
		return orderResponse(c, order)
	}
}

// -------------------------------------------------
// PUT /api/orders/:number/items  (pending sipariş, sepetten yeniden)
// -------------------------------------------------
func ModifyOrderHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CancelOrderRequest
		if err := c.BodyParser(&body); err != nil {
			return apperr.Validation("Geçersiz istek gövdesi")
		}
		if body.CustomerPhone == "" {
			return apperr.Validation("customer_phone zorunlu")
		}

		order, err := ModifyByCustomer(session.Token(c), c.Params("number"), body.CustomerPhone)
		if err != nil {
			return err
		}
		return orderResponse(c, order)
	}
}

// -------------------------------------------------
// PUT /api/staff/orders/:id/status
// -------------------------------------------------
func UpdateStatusHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return apperr.Validation("Sipariş id geçersiz")
		}

		var body UpdateStatusRequest
		if err := c.BodyParser(&body); err != nil {
			return apperr.Validation("Geçersiz istek gövdesi")
		}

		actor, err := auth.CurrentUser(c)
		if err != nil {
			return err
		}

		order, err := Transition(uint(id), models.OrderStatus(body.Status), actor)
		if err != nil {
			return err
		}
		return orderResponse(c, order)
	}
}

// -------------------------------------------------
// GET /api/staff/orders?status=pending,confirmed
// -------------------------------------------------
func ListOrdersHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var statuses []models.OrderStatus
		if raw := c.Query("status"); raw != "" {
			for _, s := range strings.Split(raw, ",") {
				s = strings.TrimSpace(s)
				if s == "" {
					continue
				}
				st := models.OrderStatus(s)
				if !ValidStatus(st) {
					return apperr.Validation("Geçersiz durum filtresi: " + s)
				}
				statuses = append(statuses, st)
			}
		}

		orders, err := ListByStatus(statuses, c.QueryInt("limit", 100))
		if err != nil {
			return err
		}
		return c.JSON(fiber.Map{"orders": orders, "count": len(orders)})
	}
}
