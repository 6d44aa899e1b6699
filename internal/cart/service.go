package cart

import (
	"fmt"

	"lanaim-backend/internal/apperr"
	"lanaim-backend/internal/database"
	"lanaim-backend/internal/models"
	"lanaim-backend/internal/pricing"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GetOrCreate: oturumun sepetini yükler, yoksa boş sepet açar
func GetOrCreate(token string) (*models.Cart, error) {
	var cart models.Cart
	err := database.DB.
		Preload("Lines.Options").
		Preload("Lines").
		Preload("Zone").
		First(&cart, "session_token = ?", token).Error
	if err == nil {
		return &cart, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, apperr.Persistence("Sepet yüklenemedi", err)
	}

	cart = models.Cart{
		SessionToken: token,
		Subtotal:     decimal.Zero,
		DeliveryFee:  decimal.Zero,
		Total:        decimal.Zero,
	}
	if err := database.DB.Create(&cart).Error; err != nil {
		return nil, apperr.Persistence("Sepet oluşturulamadı", err)
	}
	return &cart, nil
}

// Recalculate: satır toplamlarını ve sepet toplamlarını deterministik
// olarak yeniden hesaplar. Her mutasyondan sonra çağrılır; bayat toplam
// asla dışarı sızmaz.
func Recalculate(cart *models.Cart) {
	subtotal := decimal.Zero
	for i := range cart.Lines {
		line := &cart.Lines[i]

		optionsPrice := decimal.Zero
		for _, opt := range line.Options {
			optionsPrice = optionsPrice.Add(opt.Price)
		}
		line.OptionsPrice = optionsPrice
		line.LineTotal = pricing.LineTotal(line.UnitPrice, optionsPrice, line.Quantity)

		subtotal = subtotal.Add(line.LineTotal)
	}

	cart.Subtotal = subtotal.Round(2)
	cart.Total = cart.Subtotal.Add(cart.DeliveryFee).Round(2)
}

// SameOptionSet: satırın seçenek kümesi, istenen id kümesiyle sıra
// bağımsız olarak birebir aynı mı? (aynı menü + aynı küme → merge)
func SameOptionSet(options []models.CartLineOption, optionIDs []uint) bool {
	if len(options) != len(optionIDs) {
		return false
	}

	have := make(map[uint]int, len(options))
	for _, opt := range options {
		have[opt.OptionID]++
	}
	for _, id := range optionIDs {
		if have[id] == 0 {
			return false
		}
		have[id]--
	}
	return true
}

// validateMenu: menü mevcut ve aktif mi
func validateMenu(menuID uint) (*models.Menu, error) {
	var menu models.Menu
	if err := database.DB.First(&menu, "id = ? AND is_active = ?", menuID, true).Error; err != nil {
		return nil, apperr.NotFound("Menü bulunamadı veya satışta değil")
	}
	return &menu, nil
}

// validateOptions: seçenekler aktif mi ve gerçekten bu menüye mi ait
func validateOptions(menu *models.Menu, optionIDs []uint) ([]models.MenuOptionItem, error) {
	if len(optionIDs) == 0 {
		return nil, nil
	}

	var options []models.MenuOptionItem
	err := database.DB.
		Joins("JOIN menu_option_groups g ON g.id = menu_option_items.group_id").
		Where("menu_option_items.id IN ? AND menu_option_items.is_active = ? AND g.menu_id = ?",
			optionIDs, true, menu.ID).
		Find(&options).Error
	if err != nil {
		return nil, apperr.Persistence("Seçenekler doğrulanamadı", err)
	}

	if len(options) != len(optionIDs) {
		return nil, apperr.Validation(fmt.Sprintf("Geçersiz seçenek: %s menüsüne ait olmayan veya pasif seçenek var", menu.Name))
	}
	return options, nil
}

// AddLine: sepete ekleme. Aynı menü + aynı seçenek kümesi varsa mevcut
// satıra adet eklenir, yoksa yeni satır açılır.
func AddLine(token string, menuID uint, quantity int, optionIDs []uint, notes string) (*models.Cart, error) {
	if quantity < 1 {
		quantity = 1
	}

	menu, err := validateMenu(menuID)
	if err != nil {
		return nil, err
	}

	options, err := validateOptions(menu, optionIDs)
	if err != nil {
		return nil, err
	}

	cart, err := GetOrCreate(token)
	if err != nil {
		return nil, err
	}

	// merge edilecek satır var mı
	var target *models.CartLine
	for i := range cart.Lines {
		if cart.Lines[i].MenuID == menuID && SameOptionSet(cart.Lines[i].Options, optionIDs) {
			target = &cart.Lines[i]
			break
		}
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		if target != nil {
			target.Quantity += quantity
			Recalculate(cart)
			if err := tx.Model(&models.CartLine{}).Where("id = ?", target.ID).
				Updates(map[string]interface{}{
					"quantity":   target.Quantity,
					"line_total": target.LineTotal,
				}).Error; err != nil {
				return err
			}
		} else {
			line := models.CartLine{
				CartID:    cart.ID,
				MenuID:    menu.ID,
				MenuName:  menu.Name,
				UnitPrice: menu.Price,
				Quantity:  quantity,
				Notes:     notes,
			}
			for _, opt := range options {
				line.Options = append(line.Options, models.CartLineOption{
					OptionID:   opt.ID,
					OptionName: opt.Name,
					Price:      opt.AdditionalPrice,
				})
			}
			if err := tx.Create(&line).Error; err != nil {
				return err
			}
			cart.Lines = append(cart.Lines, line)
			Recalculate(cart)
		}

		return saveTotals(tx, cart)
	})
	if err != nil {
		return nil, apperr.Persistence("Sepete eklenemedi", err)
	}

	return cart, nil
}

// UpdateQuantity: adet güncelleme, 0 veya altı satırı siler
func UpdateQuantity(token string, lineID uint, quantity int) (*models.Cart, error) {
	cart, err := GetOrCreate(token)
	if err != nil {
		return nil, err
	}

	idx := -1
	for i := range cart.Lines {
		if cart.Lines[i].ID == lineID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return nil, apperr.NotFound("Sepette böyle bir satır yok")
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		if quantity <= 0 {
			if err := tx.Where("cart_line_id = ?", lineID).Delete(&models.CartLineOption{}).Error; err != nil {
				return err
			}
			if err := tx.Delete(&models.CartLine{}, "id = ?", lineID).Error; err != nil {
				return err
			}
			cart.Lines = append(cart.Lines[:idx], cart.Lines[idx+1:]...)
			Recalculate(cart)
		} else {
			cart.Lines[idx].Quantity = quantity
			Recalculate(cart)
			if err := tx.Model(&models.CartLine{}).Where("id = ?", lineID).
				Updates(map[string]interface{}{
					"quantity":   quantity,
					"line_total": cart.Lines[idx].LineTotal,
				}).Error; err != nil {
				return err
			}
		}
		return saveTotals(tx, cart)
	})
	if err != nil {
		return nil, apperr.Persistence("Sepet güncellenemedi", err)
	}

	return cart, nil
}

// SetZone: teslimat bölgesi seçimi
func SetZone(token string, zoneID uint) (*models.Cart, error) {
	var zone models.DeliveryZone
	if err := database.DB.First(&zone, "id = ? AND is_active = ?", zoneID, true).Error; err != nil {
		return nil, apperr.NotFound("Teslimat bölgesi bulunamadı veya pasif")
	}

	cart, err := GetOrCreate(token)
	if err != nil {
		return nil, err
	}

	cart.ZoneID = &zone.ID
	cart.Zone = &zone
	cart.DeliveryFee = zone.DeliveryFee
	Recalculate(cart)

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Cart{}).Where("id = ?", cart.ID).
			Update("zone_id", zone.ID).Error; err != nil {
			return err
		}
		return saveTotals(tx, cart)
	})
	if err != nil {
		return nil, apperr.Persistence("Bölge kaydedilemedi", err)
	}

	return cart, nil
}

// Clear: sepeti boşaltır (bölge seçimi dahil)
func Clear(token string) (*models.Cart, error) {
	cart, err := GetOrCreate(token)
	if err != nil {
		return nil, err
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		return ClearTx(tx, cart)
	})
	if err != nil {
		return nil, apperr.Persistence("Sepet temizlenemedi", err)
	}

	return cart, nil
}

// ClearTx: sipariş oluşturma transaction'ı da commit sonrası temizlik
// için bunu kullanır
func ClearTx(tx *gorm.DB, cart *models.Cart) error {
	lineIDs := tx.Model(&models.CartLine{}).Select("id").Where("cart_id = ?", cart.ID)
	if err := tx.Where("cart_line_id IN (?)", lineIDs).Delete(&models.CartLineOption{}).Error; err != nil {
		return err
	}
	if err := tx.Where("cart_id = ?", cart.ID).Delete(&models.CartLine{}).Error; err != nil {
		return err
	}

	cart.Lines = nil
	cart.ZoneID = nil
	cart.Zone = nil
	cart.DeliveryFee = decimal.Zero
	Recalculate(cart)

	return tx.Model(&models.Cart{}).Where("id = ?", cart.ID).
		Updates(map[string]interface{}{
			"zone_id":      nil,
			"subtotal":     cart.Subtotal,
			"delivery_fee": cart.DeliveryFee,
			"total":        cart.Total,
		}).Error
}

func saveTotals(tx *gorm.DB, cart *models.Cart) error {
	return tx.Model(&models.Cart{}).Where("id = ?", cart.ID).
		Updates(map[string]interface{}{
			"subtotal":     cart.Subtotal,
			"delivery_fee": cart.DeliveryFee,
			"total":        cart.Total,
		}).Error
}

// EstimatePrepTime: tahmini hazırlık süresi (dakika). En uzun kalem esas
// alınır, ek porsiyonlar %30 katkı yapar, birden fazla satır varsa 5 dk
// tampon eklenir.
func EstimatePrepTime(lines []models.CartLine) (int, error) {
	if len(lines) == 0 {
		return 0, nil
	}

	menuIDs := make([]uint, 0, len(lines))
	for _, line := range lines {
		menuIDs = append(menuIDs, line.MenuID)
	}

	var menus []models.Menu
	if err := database.DB.Where("id IN ?", menuIDs).Find(&menus).Error; err != nil {
		return 0, apperr.Persistence("Hazırlık süreleri yüklenemedi", err)
	}

	prepByMenu := make(map[uint]int, len(menus))
	for _, m := range menus {
		prepByMenu[m.ID] = m.PrepTime
	}

	longest := 0.0
	for _, line := range lines {
		prep := float64(prepByMenu[line.MenuID])
		itemPrep := prep + float64(line.Quantity-1)*prep*0.3
		if itemPrep > longest {
			longest = itemPrep
		}
	}

	if len(lines) > 1 {
		longest += 5
	}
	return int(longest), nil
}
