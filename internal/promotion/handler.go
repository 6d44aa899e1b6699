package promotion

import (
	"time"

	"lanaim-backend/internal/apperr"
	"lanaim-backend/internal/audit"
	"lanaim-backend/internal/auth"
	"lanaim-backend/internal/database"
	"lanaim-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

type PromotionRequest struct {
	Name               string               `json:"name"`
	Description        string               `json:"description"`
	Type               models.PromotionType `json:"type"`
	DiscountPercentage decimal.Decimal      `json:"discount_percentage"`
	DiscountAmount     decimal.Decimal      `json:"discount_amount"`
	BuyQuantity        int                  `json:"buy_quantity"`
	GetQuantity        int                  `json:"get_quantity"`
	MinimumOrderAmount decimal.Decimal      `json:"minimum_order_amount"`
	ApplicableMenuIDs  string               `json:"applicable_menu_ids"`
	StartDate          time.Time            `json:"start_date"`
	EndDate            time.Time            `json:"end_date"`
	UsageLimit         *int                 `json:"usage_limit"`
}

func validatePromotion(body *PromotionRequest) error {
	if body.Name == "" {
		return apperr.Validation("Promosyon adı zorunlu")
	}
	if body.EndDate.Before(body.StartDate) {
		return apperr.Validation("Bitiş tarihi başlangıçtan önce olamaz")
	}

	switch body.Type {
	case models.PromotionPercentage:
		if body.DiscountPercentage.LessThanOrEqual(decimal.Zero) ||
			body.DiscountPercentage.GreaterThan(decimal.NewFromInt(100)) {
			return apperr.Validation("Yüzde indirimi 0-100 aralığında olmalı")
		}
	case models.PromotionFixedAmount:
		if body.DiscountAmount.LessThanOrEqual(decimal.Zero) {
			return apperr.Validation("Sabit indirim tutarı 0'dan büyük olmalı")
		}
	case models.PromotionBuyXGetY:
		if body.BuyQuantity <= 0 || body.GetQuantity <= 0 {
			return apperr.Validation("buy_quantity ve get_quantity 0'dan büyük olmalı")
		}
	default:
		return apperr.Validation("Geçersiz promosyon tipi (percentage|fixed_amount|buy_x_get_y)")
	}
	return nil
}

// -------------------------------------------------
// POST /api/admin/promotions
// -------------------------------------------------
func CreatePromotionHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body PromotionRequest
		if err := c.BodyParser(&body); err != nil {
			return apperr.Validation("Geçersiz istek gövdesi")
		}

		if err := validatePromotion(&body); err != nil {
			return err
		}

		user, err := auth.CurrentUser(c)
		if err != nil {
			return err
		}

		promo := models.Promotion{
			Name:               body.Name,
			Description:        body.Description,
			Type:               body.Type,
			DiscountPercentage: body.DiscountPercentage,
			DiscountAmount:     body.DiscountAmount,
			BuyQuantity:        body.BuyQuantity,
			GetQuantity:        body.GetQuantity,
			MinimumOrderAmount: body.MinimumOrderAmount,
			ApplicableMenuIDs:  body.ApplicableMenuIDs,
			StartDate:          body.StartDate,
			EndDate:            body.EndDate,
			IsActive:           true,
			UsageLimit:         body.UsageLimit,
			CreatedBy:          user.ID,
		}

		if err := database.DB.Create(&promo).Error; err != nil {
			return apperr.Persistence("Promosyon oluşturulamadı", err)
		}

		_ = audit.WriteLog(audit.LogOptions{
			UserID:      user.ID,
			UserName:    user.Username,
			EntityType:  "promotion",
			EntityID:    promo.ID,
			Action:      models.AuditActionCreate,
			Description: "Promosyon eklendi: " + promo.Name,
			After:       promo,
		})

		return c.Status(fiber.StatusCreated).JSON(promo)
	}
}

// -------------------------------------------------
// GET /api/admin/promotions?active=true
// -------------------------------------------------
func ListPromotionsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		dbq := database.DB.Model(&models.Promotion{})
		if c.Query("active") == "true" {
			now := time.Now()
			dbq = dbq.Where("is_active = ? AND start_date <= ? AND end_date >= ?", true, now, now)
		}

		var promos []models.Promotion
		if err := dbq.Order("created_at desc").Find(&promos).Error; err != nil {
			return apperr.Persistence("Promosyonlar listelenemedi", err)
		}
		return c.JSON(promos)
	}
}

// -------------------------------------------------
// PUT /api/admin/promotions/:id
// -------------------------------------------------
func UpdatePromotionHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return apperr.Validation("Promosyon id geçersiz")
		}

		var promo models.Promotion
		if err := database.DB.First(&promo, "id = ?", id).Error; err != nil {
			return apperr.NotFound("Promosyon bulunamadı")
		}
		before := promo

		var body PromotionRequest
		if err := c.BodyParser(&body); err != nil {
			return apperr.Validation("Geçersiz istek gövdesi")
		}
		if err := validatePromotion(&body); err != nil {
			return err
		}

		promo.Name = body.Name
		promo.Description = body.Description
		promo.Type = body.Type
		promo.DiscountPercentage = body.DiscountPercentage
		promo.DiscountAmount = body.DiscountAmount
		promo.BuyQuantity = body.BuyQuantity
		promo.GetQuantity = body.GetQuantity
		promo.MinimumOrderAmount = body.MinimumOrderAmount
		promo.ApplicableMenuIDs = body.ApplicableMenuIDs
		promo.StartDate = body.StartDate
		promo.EndDate = body.EndDate
		promo.UsageLimit = body.UsageLimit

		if err := database.DB.Save(&promo).Error; err != nil {
			return apperr.Persistence("Promosyon güncellenemedi", err)
		}

		user, uerr := auth.CurrentUser(c)
		if uerr == nil {
			_ = audit.WriteLog(audit.LogOptions{
				UserID:      user.ID,
				UserName:    user.Username,
				EntityType:  "promotion",
				EntityID:    promo.ID,
				Action:      models.AuditActionUpdate,
				Description: "Promosyon güncellendi: " + promo.Name,
				Before:      before,
				After:       promo,
			})
		}

		return c.JSON(promo)
	}
}

// -------------------------------------------------
// DELETE /api/admin/promotions/:id  (soft: pasife çek)
// -------------------------------------------------
func DeactivatePromotionHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return apperr.Validation("Promosyon id geçersiz")
		}

		var promo models.Promotion
		if err := database.DB.First(&promo, "id = ?", id).Error; err != nil {
			return apperr.NotFound("Promosyon bulunamadı")
		}

		if err := database.DB.Model(&promo).Update("is_active", false).Error; err != nil {
			return apperr.Persistence("Promosyon pasife çekilemedi", err)
		}

		user, uerr := auth.CurrentUser(c)
		if uerr == nil {
			_ = audit.WriteLog(audit.LogOptions{
				UserID:      user.ID,
				UserName:    user.Username,
				EntityType:  "promotion",
				EntityID:    promo.ID,
				Action:      models.AuditActionDelete,
				Description: "Promosyon pasife çekildi: " + promo.Name,
				Before:      promo,
			})
		}

		return c.JSON(fiber.Map{"success": true})
	}
}
