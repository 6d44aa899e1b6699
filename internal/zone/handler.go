package zone

import (
	"lanaim-backend/internal/apperr"
	"lanaim-backend/internal/audit"
	"lanaim-backend/internal/auth"
	"lanaim-backend/internal/database"
	"lanaim-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

type ZoneRequest struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	DeliveryFee decimal.Decimal `json:"delivery_fee"`
	IsActive    *bool           `json:"is_active"`
}

// hasOpenOrders: bölgeye bağlı terminal olmayan sipariş var mı. Varsa
// bölge pasife çekilemez/silinemez, aktif siparişin teslimat bilgisi
// havada kalır.
func hasOpenOrders(zoneID uint) (bool, error) {
	var count int64
	err := database.DB.Model(&models.Order{}).
		Where("zone_id = ? AND status NOT IN ?", zoneID,
			[]models.OrderStatus{models.StatusCompleted, models.StatusCancelled}).
		Count(&count).Error
	if err != nil {
		return false, apperr.Persistence("Bölge siparişleri sorgulanamadı", err)
	}
	return count > 0, nil
}

// -------------------------------------------------
// GET /api/zones  (müşteri: sadece aktifler)
// -------------------------------------------------
func ListZonesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var zones []models.DeliveryZone
		if err := database.DB.Where("is_active = ?", true).Order("name").Find(&zones).Error; err != nil {
			return apperr.Persistence("Bölgeler listelenemedi", err)
		}
		return c.JSON(zones)
	}
}

// -------------------------------------------------
// GET /api/admin/zones  (pasifler dahil)
// -------------------------------------------------
func ListAllZonesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var zones []models.DeliveryZone
		if err := database.DB.Order("name").Find(&zones).Error; err != nil {
			return apperr.Persistence("Bölgeler listelenemedi", err)
		}
		return c.JSON(zones)
	}
}

// -------------------------------------------------
// POST /api/admin/zones
// -------------------------------------------------
func CreateZoneHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body ZoneRequest
		if err := c.BodyParser(&body); err != nil {
			return apperr.Validation("Geçersiz istek gövdesi")
		}
		if body.Name == "" {
			return apperr.Validation("Bölge adı zorunlu")
		}
		if body.DeliveryFee.IsNegative() {
			return apperr.Validation("Teslimat ücreti negatif olamaz")
		}

		user, err := auth.CurrentUser(c)
		if err != nil {
			return err
		}

		zone := models.DeliveryZone{
			Name:        body.Name,
			Description: body.Description,
			DeliveryFee: body.DeliveryFee,
			IsActive:    true,
		}
		if err := database.DB.Create(&zone).Error; err != nil {
			return apperr.Persistence("Bölge oluşturulamadı", err)
		}

		_ = audit.WriteLog(audit.LogOptions{
			UserID:      user.ID,
			UserName:    user.Username,
			EntityType:  "delivery_zone",
			EntityID:    zone.ID,
			Action:      models.AuditActionCreate,
			Description: "Bölge eklendi: " + zone.Name,
			After:       zone,
		})

		return c.Status(fiber.StatusCreated).JSON(zone)
	}
}

// -------------------------------------------------
// PUT /api/admin/zones/:id
// -------------------------------------------------
func UpdateZoneHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return apperr.Validation("Bölge id geçersiz")
		}

		var zone models.DeliveryZone
		if err := database.DB.First(&zone, "id = ?", id).Error; err != nil {
			return apperr.NotFound("Bölge bulunamadı")
		}
		before := zone

		var body ZoneRequest
		if err := c.BodyParser(&body); err != nil {
			return apperr.Validation("Geçersiz istek gövdesi")
		}
		if body.Name == "" {
			return apperr.Validation("Bölge adı zorunlu")
		}
		if body.DeliveryFee.IsNegative() {
			return apperr.Validation("Teslimat ücreti negatif olamaz")
		}

		// pasife çekme, açık sipariş varken reddedilir
		if body.IsActive != nil && !*body.IsActive && zone.IsActive {
			open, err := hasOpenOrders(zone.ID)
			if err != nil {
				return err
			}
			if open {
				return apperr.Conflict("Bölgede tamamlanmamış siparişler var, pasife çekilemez")
			}
			zone.IsActive = false
		} else if body.IsActive != nil {
			zone.IsActive = *body.IsActive
		}

		zone.Name = body.Name
		zone.Description = body.Description
		zone.DeliveryFee = body.DeliveryFee

		if err := database.DB.Save(&zone).Error; err != nil {
			return apperr.Persistence("Bölge güncellenemedi", err)
		}

		user, uerr := auth.CurrentUser(c)
		if uerr == nil {
			_ = audit.WriteLog(audit.LogOptions{
				UserID:      user.ID,
				UserName:    user.Username,
				EntityType:  "delivery_zone",
				EntityID:    zone.ID,
				Action:      models.AuditActionUpdate,
				Description: "Bölge güncellendi: " + zone.Name,
				Before:      before,
				After:       zone,
			})
		}

		return c.JSON(zone)
	}
}

// -------------------------------------------------
// DELETE /api/admin/zones/:id
// -------------------------------------------------
func DeleteZoneHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return apperr.Validation("Bölge id geçersiz")
		}

		var zone models.DeliveryZone
		if err := database.DB.First(&zone, "id = ?", id).Error; err != nil {
			return apperr.NotFound("Bölge bulunamadı")
		}

		open, err := hasOpenOrders(zone.ID)
		if err != nil {
			return err
		}
		if open {
			return apperr.Conflict("Bölgede tamamlanmamış siparişler var, silinemez")
		}

		if err := database.DB.Delete(&zone).Error; err != nil {
			return apperr.Persistence("Bölge silinemedi", err)
		}

		user, uerr := auth.CurrentUser(c)
		if uerr == nil {
			_ = audit.WriteLog(audit.LogOptions{
				UserID:      user.ID,
				UserName:    user.Username,
				EntityType:  "delivery_zone",
				EntityID:    zone.ID,
				Action:      models.AuditActionDelete,
				Description: "Bölge silindi: " + zone.Name,
				Before:      zone,
			})
		}

		return c.JSON(fiber.Map{"success": true})
	}
}
