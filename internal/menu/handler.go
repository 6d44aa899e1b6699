package menu

import (
	"lanaim-backend/internal/apperr"
	"lanaim-backend/internal/audit"
	"lanaim-backend/internal/auth"
	"lanaim-backend/internal/database"
	"lanaim-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

type MenuRequest struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	ImageURL    string          `json:"image_url"`
	Category    string          `json:"category"`
	PrepTime    int             `json:"prep_time"`
	IsActive    *bool           `json:"is_active"`
}

type OptionGroupRequest struct {
	Name          string `json:"name"`
	IsRequired    bool   `json:"is_required"`
	MaxSelections int    `json:"max_selections"`
}

type OptionItemRequest struct {
	Name            string          `json:"name"`
	AdditionalPrice decimal.Decimal `json:"additional_price"`
}

func validateMenu(body *MenuRequest) error {
	if body.Name == "" {
		return apperr.Validation("Menü adı zorunlu")
	}
	if body.Price.IsNegative() {
		return apperr.Validation("Fiyat negatif olamaz")
	}
	if body.PrepTime < 0 {
		return apperr.Validation("Hazırlık süresi negatif olamaz")
	}
	return nil
}

// -------------------------------------------------
// GET /api/menus  (müşteri: sadece aktifler, kategoriye göre)
// -------------------------------------------------
func ListMenusHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		dbq := database.DB.Preload("OptionGroups.Options").Where("is_active = ?", true)
		if cat := c.Query("category"); cat != "" {
			dbq = dbq.Where("category = ?", cat)
		}

		var menus []models.Menu
		if err := dbq.Order("category, name").Find(&menus).Error; err != nil {
			return apperr.Persistence("Menüler listelenemedi", err)
		}
		return c.JSON(menus)
	}
}

// -------------------------------------------------
// GET /api/menus/:id
// -------------------------------------------------
func GetMenuHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return apperr.Validation("Menü id geçersiz")
		}

		var menu models.Menu
		err = database.DB.Preload("OptionGroups.Options").
			First(&menu, "id = ? AND is_active = ?", id, true).Error
		if err != nil {
			return apperr.NotFound("Menü bulunamadı")
		}
		return c.JSON(menu)
	}
}

// -------------------------------------------------
// POST /api/admin/menus
// -------------------------------------------------
func CreateMenuHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body MenuRequest
		if err := c.BodyParser(&body); err != nil {
			return apperr.Validation("Geçersiz istek gövdesi")
		}
		if err := validateMenu(&body); err != nil {
			return err
		}

		user, err := auth.CurrentUser(c)
		if err != nil {
			return err
		}

		menu := models.Menu{
			Name:        body.Name,
			Description: body.Description,
			Price:       body.Price,
			ImageURL:    body.ImageURL,
			Category:    body.Category,
			PrepTime:    body.PrepTime,
			IsActive:    true,
		}
		if err := database.DB.Create(&menu).Error; err != nil {
			return apperr.Persistence("Menü oluşturulamadı", err)
		}

		_ = audit.WriteLog(audit.LogOptions{
			UserID:      user.ID,
			UserName:    user.Username,
			EntityType:  "menu",
			EntityID:    menu.ID,
			Action:      models.AuditActionCreate,
			Description: "Menü eklendi: " + menu.Name,
			After:       menu,
		})

		return c.Status(fiber.StatusCreated).JSON(menu)
	}
}

// -------------------------------------------------
// PUT /api/admin/menus/:id
// -------------------------------------------------
func UpdateMenuHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return apperr.Validation("Menü id geçersiz")
		}

		var menu models.Menu
		if err := database.DB.First(&menu, "id = ?", id).Error; err != nil {
			return apperr.NotFound("Menü bulunamadı")
		}
		before := menu

		var body MenuRequest
		if err := c.BodyParser(&body); err != nil {
			return apperr.Validation("Geçersiz istek gövdesi")
		}
		if err := validateMenu(&body); err != nil {
			return err
		}

		menu.Name = body.Name
		menu.Description = body.Description
		menu.Price = body.Price
		menu.ImageURL = body.ImageURL
		menu.Category = body.Category
		menu.PrepTime = body.PrepTime
		if body.IsActive != nil {
			menu.IsActive = *body.IsActive
		}

		if err := database.DB.Save(&menu).Error; err != nil {
			return apperr.Persistence("Menü güncellenemedi", err)
		}

		user, uerr := auth.CurrentUser(c)
		if uerr == nil {
			_ = audit.WriteLog(audit.LogOptions{
				UserID:      user.ID,
				UserName:    user.Username,
				EntityType:  "menu",
				EntityID:    menu.ID,
				Action:      models.AuditActionUpdate,
				Description: "Menü güncellendi: " + menu.Name,
				Before:      before,
				After:       menu,
			})
		}

		return c.JSON(menu)
	}
}

// -------------------------------------------------
// DELETE /api/admin/menus/:id  (soft: pasife çek, geçmiş siparişler
// snapshot tuttuğu için fiziksel silmeye gerek yok)
// -------------------------------------------------
func DeactivateMenuHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return apperr.Validation("Menü id geçersiz")
		}

		var menu models.Menu
		if err := database.DB.First(&menu, "id = ?", id).Error; err != nil {
			return apperr.NotFound("Menü bulunamadı")
		}

		if err := database.DB.Model(&menu).Update("is_active", false).Error; err != nil {
			return apperr.Persistence("Menü pasife çekilemedi", err)
		}

		user, uerr := auth.CurrentUser(c)
		if uerr == nil {
			_ = audit.WriteLog(audit.LogOptions{
				UserID:      user.ID,
				UserName:    user.Username,
				EntityType:  "menu",
				EntityID:    menu.ID,
				Action:      models.AuditActionDelete,
				Description: "Menü pasife çekildi: " + menu.Name,
				Before:      menu,
			})
		}

		return c.JSON(fiber.Map{"success": true})
	}
}

// -------------------------------------------------
// POST /api/admin/menus/:id/option-groups
// -------------------------------------------------
func CreateOptionGroupHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return apperr.Validation("Menü id geçersiz")
		}

		var menu models.Menu
		if err := database.DB.First(&menu, "id = ?", id).Error; err != nil {
			return apperr.NotFound("Menü bulunamadı")
		}

		var body OptionGroupRequest
		if err := c.BodyParser(&body); err != nil {
			return apperr.Validation("Geçersiz istek gövdesi")
		}
		if body.Name == "" {
			return apperr.Validation("Grup adı zorunlu")
		}
		if body.MaxSelections < 1 {
			body.MaxSelections = 1
		}

		group := models.MenuOptionGroup{
			MenuID:        menu.ID,
			Name:          body.Name,
			IsRequired:    body.IsRequired,
			MaxSelections: body.MaxSelections,
		}
		if err := database.DB.Create(&group).Error; err != nil {
			return apperr.Persistence("Seçenek grubu oluşturulamadı", err)
		}
		return c.Status(fiber.StatusCreated).JSON(group)
	}
}

// -------------------------------------------------
// POST /api/admin/option-groups/:id/options
// -------------------------------------------------
func CreateOptionItemHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return apperr.Validation("Grup id geçersiz")
		}

		var group models.MenuOptionGroup
		if err := database.DB.First(&group, "id = ?", id).Error; err != nil {
			return apperr.NotFound("Seçenek grubu bulunamadı")
		}

		var body OptionItemRequest
		if err := c.BodyParser(&body); err != nil {
			return apperr.Validation("Geçersiz istek gövdesi")
		}
		if body.Name == "" {
			return apperr.Validation("Seçenek adı zorunlu")
		}
		if body.AdditionalPrice.IsNegative() {
			return apperr.Validation("Ek fiyat negatif olamaz")
		}

		item := models.MenuOptionItem{
			GroupID:         group.ID,
			Name:            body.Name,
			AdditionalPrice: body.AdditionalPrice,
			IsActive:        true,
		}
		if err := database.DB.Create(&item).Error; err != nil {
			return apperr.Persistence("Seçenek oluşturulamadı", err)
		}
		return c.Status(fiber.StatusCreated).JSON(item)
	}
}

// -------------------------------------------------
// DELETE /api/admin/options/:id  (soft)
// -------------------------------------------------
func DeactivateOptionItemHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return apperr.Validation("Seçenek id geçersiz")
		}

		res := database.DB.Model(&models.MenuOptionItem{}).
			Where("id = ?", id).Update("is_active", false)
		if res.Error != nil {
			return apperr.Persistence("Seçenek pasife çekilemedi", res.Error)
		}
		if res.RowsAffected == 0 {
			return apperr.NotFound("Seçenek bulunamadı")
		}
		return c.JSON(fiber.Map{"success": true})
	}
}
