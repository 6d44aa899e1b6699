// Package feedback: teslim edilen siparişler için müşteri değerlendirmesi.
package feedback

import (
	"errors"

	"lanaim-backend/internal/apperr"
	"lanaim-backend/internal/database"
	"lanaim-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type FeedbackRequest struct {
	OrderNumber   string `json:"order_number"`
	CustomerPhone string `json:"customer_phone"`
	Rating        int    `json:"rating"`
	Comment       string `json:"comment"`
}

// -------------------------------------------------
// POST /api/feedback
// -------------------------------------------------
func CreateFeedbackHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body FeedbackRequest
		if err := c.BodyParser(&body); err != nil {
			return apperr.Validation("Geçersiz istek gövdesi")
		}
		if body.OrderNumber == "" || body.CustomerPhone == "" {
			return apperr.Validation("order_number ve customer_phone zorunlu")
		}
		if body.Rating < 1 || body.Rating > 5 {
			return apperr.Validation("Puan 1-5 aralığında olmalı")
		}

		var order models.Order
		err := database.DB.First(&order,
			"order_number = ? AND customer_phone = ?", body.OrderNumber, body.CustomerPhone).Error
		if err != nil {
			return apperr.NotFound("Sipariş bulunamadı")
		}

		if order.Status != models.StatusDelivered && order.Status != models.StatusCompleted {
			return apperr.Validation("Değerlendirme sadece teslim edilen siparişler için yapılabilir")
		}

		fb := models.Feedback{
			OrderID: order.ID,
			Rating:  body.Rating,
			Comment: body.Comment,
		}
		if err := database.DB.Create(&fb).Error; err != nil {
			// order_id unique, ikinci değerlendirme buraya düşer
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return apperr.Conflict("Bu sipariş zaten değerlendirilmiş")
			}
			var existing models.Feedback
			if database.DB.First(&existing, "order_id = ?", order.ID).Error == nil {
				return apperr.Conflict("Bu sipariş zaten değerlendirilmiş")
			}
			return apperr.Persistence("Değerlendirme kaydedilemedi", err)
		}

		return c.Status(fiber.StatusCreated).JSON(fb)
	}
}

// -------------------------------------------------
// GET /api/staff/feedback?limit=50
// -------------------------------------------------
func ListFeedbackHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit := c.QueryInt("limit", 50)
		if limit <= 0 || limit > 200 {
			limit = 50
		}

		var items []models.Feedback
		err := database.DB.Order("created_at desc").Limit(limit).Find(&items).Error
		if err != nil {
			return apperr.Persistence("Değerlendirmeler listelenemedi", err)
		}

		return c.JSON(fiber.Map{"feedback": items, "count": len(items)})
	}
}
