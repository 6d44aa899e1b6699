package promotion

import (
	"encoding/json"
	"time"

	"lanaim-backend/internal/models"

	"github.com/shopspring/decimal"
)

// buy_x_get_y için ortalama ürün fiyatı varsayımı (฿50)
var avgItemPrice = decimal.NewFromInt(50)

// Applicable: promosyon bu siparişe uygulanabilir mi
func Applicable(p *models.Promotion, subtotal decimal.Decimal, menuIDs []uint, now time.Time) bool {
	if !p.IsValidAt(now) {
		return false
	}
	if subtotal.LessThan(p.MinimumOrderAmount) {
		return false
	}
	if p.ApplicableMenuIDs != "" {
		var applicable []uint
		if err := json.Unmarshal([]byte(p.ApplicableMenuIDs), &applicable); err == nil && len(applicable) > 0 {
			found := false
			for _, mid := range menuIDs {
				for _, aid := range applicable {
					if mid == aid {
						found = true
						break
					}
				}
			}
			if !found {
				return false
			}
		}
	}
	return true
}

// Discount: promosyon tipine göre indirim tutarı. Saf fonksiyon;
// uygulanamıyorsa sıfır döner.
func Discount(p *models.Promotion, subtotal decimal.Decimal, totalItems int, menuIDs []uint, now time.Time) decimal.Decimal {
	if !Applicable(p, subtotal, menuIDs, now) {
		return decimal.Zero
	}

	switch p.Type {
	case models.PromotionPercentage:
		return subtotal.Mul(p.DiscountPercentage).Div(decimal.NewFromInt(100)).Round(2)

	case models.PromotionFixedAmount:
		// sabit indirim subtotal'ı aşamaz
		if p.DiscountAmount.GreaterThan(subtotal) {
			return subtotal
		}
		return p.DiscountAmount

	case models.PromotionBuyXGetY:
		if p.BuyQuantity <= 0 || p.GetQuantity <= 0 {
			return decimal.Zero
		}
		freeItems := (totalItems / p.BuyQuantity) * p.GetQuantity
		return avgItemPrice.Mul(decimal.NewFromInt(int64(freeItems)))
	}

	return decimal.Zero
}
