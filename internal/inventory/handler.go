package inventory

import (
	"lanaim-backend/internal/apperr"
	"lanaim-backend/internal/audit"
	"lanaim-backend/internal/auth"
	"lanaim-backend/internal/database"
	"lanaim-backend/internal/models"
	"lanaim-backend/internal/notify"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type IngredientRequest struct {
	Name              string          `json:"name"`
	Description       string          `json:"description"`
	Unit              string          `json:"unit"`
	LowStockThreshold decimal.Decimal `json:"low_stock_threshold"`
	CostPerUnit       decimal.Decimal `json:"cost_per_unit"`
	Supplier          string          `json:"supplier"`
}

type AdjustmentRequest struct {
	Type     string          `json:"type"` // in | out | correction
	Quantity decimal.Decimal `json:"quantity"`
	Notes    string          `json:"notes"`
}

type BOMRequest struct {
	MenuID       uint            `json:"menu_id"`
	IngredientID uint            `json:"ingredient_id"`
	QuantityUsed decimal.Decimal `json:"quantity_used"`
	Notes        string          `json:"notes"`
}

// -------------------------------------------------
// GET /api/admin/ingredients?low_stock=true
// -------------------------------------------------
func ListIngredientsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		dbq := database.DB.Where("is_active = ?", true)
		if c.Query("low_stock") == "true" {
			dbq = dbq.Where("stock_quantity <= low_stock_threshold")
		}

		var ingredients []models.Ingredient
		if err := dbq.Order("name").Find(&ingredients).Error; err != nil {
			return apperr.Persistence("Hammaddeler listelenemedi", err)
		}
		return c.JSON(ingredients)
	}
}

// -------------------------------------------------
// POST /api/admin/ingredients
// -------------------------------------------------
func CreateIngredientHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body IngredientRequest
		if err := c.BodyParser(&body); err != nil {
			return apperr.Validation("Geçersiz istek gövdesi")
		}
		if body.Name == "" || body.Unit == "" {
			return apperr.Validation("Hammadde adı ve birimi zorunlu")
		}

		user, err := auth.CurrentUser(c)
		if err != nil {
			return err
		}

		ing := models.Ingredient{
			Name:              body.Name,
			Description:       body.Description,
			Unit:              body.Unit,
			LowStockThreshold: body.LowStockThreshold,
			CostPerUnit:       body.CostPerUnit,
			Supplier:          body.Supplier,
			IsActive:          true,
		}
		if err := database.DB.Create(&ing).Error; err != nil {
			return apperr.Persistence("Hammadde oluşturulamadı", err)
		}

		_ = audit.WriteLog(audit.LogOptions{
			UserID:      user.ID,
			UserName:    user.Username,
			EntityType:  "ingredient",
			EntityID:    ing.ID,
			Action:      models.AuditActionCreate,
			Description: "Hammadde eklendi: " + ing.Name,
			After:       ing,
		})

		return c.Status(fiber.StatusCreated).JSON(ing)
	}
}

// -------------------------------------------------
// PUT /api/admin/ingredients/:id  (stok hariç alanlar; stok sadece
// hareketle değişir)
// -------------------------------------------------
func UpdateIngredientHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return apperr.Validation("Hammadde id geçersiz")
		}

		var ing models.Ingredient
		if err := database.DB.First(&ing, "id = ?", id).Error; err != nil {
			return apperr.NotFound("Hammadde bulunamadı")
		}
		before := ing

		var body IngredientRequest
		if err := c.BodyParser(&body); err != nil {
			return apperr.Validation("Geçersiz istek gövdesi")
		}
		if body.Name == "" || body.Unit == "" {
			return apperr.Validation("Hammadde adı ve birimi zorunlu")
		}

		ing.Name = body.Name
		ing.Description = body.Description
		ing.Unit = body.Unit
		ing.LowStockThreshold = body.LowStockThreshold
		ing.CostPerUnit = body.CostPerUnit
		ing.Supplier = body.Supplier

		if err := database.DB.Save(&ing).Error; err != nil {
			return apperr.Persistence("Hammadde güncellenemedi", err)
		}

		user, uerr := auth.CurrentUser(c)
		if uerr == nil {
			_ = audit.WriteLog(audit.LogOptions{
				UserID:      user.ID,
				UserName:    user.Username,
				EntityType:  "ingredient",
				EntityID:    ing.ID,
				Action:      models.AuditActionUpdate,
				Description: "Hammadde güncellendi: " + ing.Name,
				Before:      before,
				After:       ing,
			})
		}

		return c.JSON(ing)
	}
}

// -------------------------------------------------
// POST /api/admin/ingredients/:id/adjustments
// -------------------------------------------------
func AdjustStockHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return apperr.Validation("Hammadde id geçersiz")
		}

		var body AdjustmentRequest
		if err := c.BodyParser(&body); err != nil {
			return apperr.Validation("Geçersiz istek gövdesi")
		}

		user, err := auth.CurrentUser(c)
		if err != nil {
			return err
		}

		// giriş pozitif, çıkış negatif; correction işareti istemciden gelir
		var change decimal.Decimal
		switch models.AdjustmentType(body.Type) {
		case models.AdjustmentIn:
			if body.Quantity.LessThanOrEqual(decimal.Zero) {
				return apperr.Validation("Giriş miktarı 0'dan büyük olmalı")
			}
			change = body.Quantity
		case models.AdjustmentOut:
			if body.Quantity.LessThanOrEqual(decimal.Zero) {
				return apperr.Validation("Çıkış miktarı 0'dan büyük olmalı")
			}
			change = body.Quantity.Neg()
		case models.AdjustmentCorrection:
			if body.Quantity.IsZero() {
				return apperr.Validation("Düzeltme miktarı 0 olamaz")
			}
			change = body.Quantity
		default:
			return apperr.Validation("Geçersiz hareket tipi (in|out|correction)")
		}

		var updated *models.Ingredient
		err = database.DB.Transaction(func(tx *gorm.DB) error {
			ing, err := applyAdjustment(tx, uint(id), models.AdjustmentType(body.Type),
				change, user.ID, body.Notes)
			if err != nil {
				return err
			}
			updated = ing
			return nil
		})
		if err != nil {
			return err
		}

		if updated.IsLowStock() {
			notify.Dispatch(notify.TopicLowStock, notify.LowStockEvent{
				IngredientID: updated.ID,
				Name:         updated.Name,
				Quantity:     updated.StockQuantity.String(),
				Threshold:    updated.LowStockThreshold.String(),
				Unit:         updated.Unit,
			})
		}

		return c.JSON(updated)
	}
}

// -------------------------------------------------
// GET /api/admin/ingredients/:id/adjustments
// -------------------------------------------------
func ListAdjustmentsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return apperr.Validation("Hammadde id geçersiz")
		}

		limit := c.QueryInt("limit", 50)
		if limit <= 0 || limit > 200 {
			limit = 50
		}

		var rows []models.StockAdjustment
		err = database.DB.Where("ingredient_id = ?", id).
			Order("created_at desc").Limit(limit).Find(&rows).Error
		if err != nil {
			return apperr.Persistence("Stok hareketleri listelenemedi", err)
		}
		return c.JSON(fiber.Map{"adjustments": rows, "count": len(rows)})
	}
}

// -------------------------------------------------
// GET /api/admin/recipes?menu_id=3
// -------------------------------------------------
func ListBOMHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		dbq := database.DB.Preload("Ingredient").Preload("Menu").Where("is_active = ?", true)
		if menuID := c.QueryInt("menu_id", 0); menuID > 0 {
			dbq = dbq.Where("menu_id = ?", menuID)
		}

		var rows []models.RecipeBOM
		if err := dbq.Find(&rows).Error; err != nil {
			return apperr.Persistence("Reçeteler listelenemedi", err)
		}
		return c.JSON(rows)
	}
}

// -------------------------------------------------
// POST /api/admin/recipes
// -------------------------------------------------
func CreateBOMHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body BOMRequest
		if err := c.BodyParser(&body); err != nil {
			return apperr.Validation("Geçersiz istek gövdesi")
		}
		if body.MenuID == 0 || body.IngredientID == 0 {
			return apperr.Validation("menu_id ve ingredient_id zorunlu")
		}
		if body.QuantityUsed.LessThanOrEqual(decimal.Zero) {
			return apperr.Validation("Porsiyon miktarı 0'dan büyük olmalı")
		}

		var menu models.Menu
		if err := database.DB.First(&menu, "id = ?", body.MenuID).Error; err != nil {
			return apperr.NotFound("Menü bulunamadı")
		}
		var ing models.Ingredient
		if err := database.DB.First(&ing, "id = ?", body.IngredientID).Error; err != nil {
			return apperr.NotFound("Hammadde bulunamadı")
		}

		row := models.RecipeBOM{
			MenuID:       body.MenuID,
			IngredientID: body.IngredientID,
			QuantityUsed: body.QuantityUsed,
			Notes:        body.Notes,
			IsActive:     true,
		}
		if err := database.DB.Create(&row).Error; err != nil {
			// menu+ingredient unique
			return apperr.Conflict("Bu menü için bu hammadde reçetede zaten var")
		}

		user, uerr := auth.CurrentUser(c)
		if uerr == nil {
			_ = audit.WriteLog(audit.LogOptions{
				UserID:      user.ID,
				UserName:    user.Username,
				EntityType:  "recipe_bom",
				EntityID:    row.ID,
				Action:      models.AuditActionCreate,
				Description: "Reçete satırı eklendi: " + menu.Name + " ← " + ing.Name,
				After:       row,
			})
		}

		return c.Status(fiber.StatusCreated).JSON(row)
	}
}

// -------------------------------------------------
// PUT /api/admin/recipes/:id
// -------------------------------------------------
func UpdateBOMHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return apperr.Validation("Reçete id geçersiz")
		}

		var row models.RecipeBOM
		if err := database.DB.First(&row, "id = ?", id).Error; err != nil {
			return apperr.NotFound("Reçete satırı bulunamadı")
		}
		before := row

		var body BOMRequest
		if err := c.BodyParser(&body); err != nil {
			return apperr.Validation("Geçersiz istek gövdesi")
		}
		if body.QuantityUsed.LessThanOrEqual(decimal.Zero) {
			return apperr.Validation("Porsiyon miktarı 0'dan büyük olmalı")
		}

		row.QuantityUsed = body.QuantityUsed
		row.Notes = body.Notes

		if err := database.DB.Save(&row).Error; err != nil {
			return apperr.Persistence("Reçete güncellenemedi", err)
		}

		user, uerr := auth.CurrentUser(c)
		if uerr == nil {
			_ = audit.WriteLog(audit.LogOptions{
				UserID:      user.ID,
				UserName:    user.Username,
				EntityType:  "recipe_bom",
				EntityID:    row.ID,
				Action:      models.AuditActionUpdate,
				Description: "Reçete satırı güncellendi",
				Before:      before,
				After:       row,
			})
		}

		return c.JSON(row)
	}
}

// -------------------------------------------------
// DELETE /api/admin/recipes/:id  (soft)
// -------------------------------------------------
func DeactivateBOMHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return apperr.Validation("Reçete id geçersiz")
		}

		var row models.RecipeBOM
		if err := database.DB.First(&row, "id = ?", id).Error; err != nil {
			return apperr.NotFound("Reçete satırı bulunamadı")
		}

		if err := database.DB.Model(&row).Update("is_active", false).Error; err != nil {
			return apperr.Persistence("Reçete pasife çekilemedi", err)
		}

		user, uerr := auth.CurrentUser(c)
		if uerr == nil {
			_ = audit.WriteLog(audit.LogOptions{
				UserID:      user.ID,
				UserName:    user.Username,
				EntityType:  "recipe_bom",
				EntityID:    row.ID,
				Action:      models.AuditActionDelete,
				Description: "Reçete satırı pasife çekildi",
				Before:      row,
			})
		}

		return c.JSON(fiber.Map{"success": true})
	}
}
