package inventory

import (
	"fmt"

	"lanaim-backend/internal/apperr"
	"lanaim-backend/internal/models"
	"lanaim-backend/internal/notify"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// applyAdjustment: hammadde stokunu kilitli satır üzerinde değiştirir ve
// deftere hareket yazar. stock_quantity = Σ defter değişmezi yalnızca
// buradan geçerek korunur.
func applyAdjustment(tx *gorm.DB, ingredientID uint, typ models.AdjustmentType, change decimal.Decimal, adjustedBy uint, notes string) (*models.Ingredient, error) {
	var ing models.Ingredient
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&ing, "id = ?", ingredientID).Error; err != nil {
		return nil, apperr.NotFound("Hammadde bulunamadı")
	}

	prev := ing.StockQuantity
	next := prev.Add(change)

	if err := tx.Model(&models.Ingredient{}).Where("id = ?", ing.ID).
		Update("stock_quantity", next).Error; err != nil {
		return nil, apperr.Persistence("Stok güncellenemedi", err)
	}

	adj := models.StockAdjustment{
		IngredientID: ing.ID,
		Type:         typ,
		Quantity:     change,
		PrevQuantity: prev,
		NewQuantity:  next,
		AdjustedBy:   adjustedBy,
		Notes:        notes,
	}
	if err := tx.Create(&adj).Error; err != nil {
		return nil, apperr.Persistence("Stok hareketi yazılamadı", err)
	}

	ing.StockQuantity = next
	return &ing, nil
}

// deductionAllowed: bu hammadde için düşüm yapılsın mı. Yetersiz stokta
// strict mod geçişi iptal ettirir; değilse düşüm yapılmaz, stok ve defter
// olduğu gibi kalır.
func deductionAllowed(name, unit string, available, required decimal.Decimal, strict bool) (bool, error) {
	if available.GreaterThanOrEqual(required) {
		return true, nil
	}
	if strict {
		return false, apperr.InsufficientStock(fmt.Sprintf(
			"%s stoğu yetersiz: gereken %s %s, mevcut %s %s",
			name, required, unit, available, unit))
	}
	return false, nil
}

// DeductForOrder: preparing geçişinde sipariş kalemlerinin BOM düşümü.
// stock_deducted işaretli kalemler atlanır, bu yüzden retry çift düşüm
// yapmaz. Yetersiz stokta hiçbir mutasyon yapılmaz: strict modda geçiş
// iptal olur, değilse o hammaddenin düşümü uyarıyla atlanır.
func DeductForOrder(tx *gorm.DB, order *models.Order, strict bool) ([]models.Ingredient, error) {
	var lowStock []models.Ingredient

	for i := range order.Items {
		item := &order.Items[i]
		if item.StockDeducted {
			continue
		}

		var bom []models.RecipeBOM
		if err := tx.Where("menu_id = ? AND is_active = ?", item.MenuID, true).
			Find(&bom).Error; err != nil {
			return nil, apperr.Persistence("Reçete yüklenemedi", err)
		}

		for _, row := range bom {
			var ing models.Ingredient
			if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
				First(&ing, "id = ?", row.IngredientID).Error; err != nil {
				return nil, apperr.Persistence("Hammadde yüklenemedi", err)
			}

			required := row.RequiredFor(item.Quantity)
			ok, err := deductionAllowed(ing.Name, ing.Unit, ing.StockQuantity, required, strict)
			if err != nil {
				return nil, err
			}
			if !ok {
				logrus.WithFields(logrus.Fields{
					"ingredient": ing.Name,
					"required":   required.String(),
					"available":  ing.StockQuantity.String(),
					"order":      order.OrderNumber,
				}).Warn("Stok yetersiz, bu hammaddenin düşümü atlandı")
				continue
			}

			updated, err := applyAdjustment(tx, ing.ID, models.AdjustmentOut,
				required.Neg(), 0,
				fmt.Sprintf("Sipariş %s, kalem %s x%d", order.OrderNumber, item.MenuName, item.Quantity))
			if err != nil {
				return nil, err
			}

			if updated.IsLowStock() {
				lowStock = append(lowStock, *updated)
			}
		}

		if err := tx.Model(&models.OrderItem{}).Where("id = ?", item.ID).
			Update("stock_deducted", true).Error; err != nil {
			return nil, apperr.Persistence("Kalem işaretlenemedi", err)
		}
		item.StockDeducted = true
	}

	return lowStock, nil
}

// PublishLowStock: commit sonrası düşük stok event'lerini yayınlar
func PublishLowStock(ingredients []models.Ingredient) {
	for _, ing := range ingredients {
		notify.Dispatch(notify.TopicLowStock, notify.LowStockEvent{
			IngredientID: ing.ID,
			Name:         ing.Name,
			Quantity:     ing.StockQuantity.String(),
			Threshold:    ing.LowStockThreshold.String(),
			Unit:         ing.Unit,
		})
	}
}
