package order

import (
	"strings"
	"time"

	"lanaim-backend/internal/apperr"
	"lanaim-backend/internal/cart"
	"lanaim-backend/internal/config"
	"lanaim-backend/internal/database"
	"lanaim-backend/internal/inventory"
	"lanaim-backend/internal/models"
	"lanaim-backend/internal/notify"
	"lanaim-backend/internal/pricing"
	"lanaim-backend/internal/promotion"
	"lanaim-backend/internal/ratelimit"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// uygulama başlangıcında main tarafından ayarlanır
var (
	taxRate          = decimal.RequireFromString("0.07")
	serviceRate      = decimal.RequireFromString("0.05")
	strictStockCheck = true
)

func Configure(cfg *config.Config) {
	taxRate = cfg.TaxRate
	serviceRate = cfg.ServiceChargeRate
	strictStockCheck = cfg.StrictStockCheck
}

type PlaceOrderInput struct {
	CustomerName        string
	CustomerPhone       string
	DeliveryAddress     string
	PaymentMethod       models.PaymentMethod
	SpecialInstructions string
	PromotionID         *uint
}

func digitCount(s string) int {
	n := 0
	for _, r := range s {
		if r >= '0' && r <= '9' {
			n++
		}
	}
	return n
}

func validatePlacement(in *PlaceOrderInput) error {
	if strings.TrimSpace(in.CustomerName) == "" {
		return apperr.Validation("Müşteri adı zorunlu")
	}
	if digitCount(in.CustomerPhone) < 9 {
		return apperr.Validation("Telefon numarası en az 9 rakam içermeli")
	}
	if strings.TrimSpace(in.DeliveryAddress) == "" {
		return apperr.Validation("Teslimat adresi zorunlu")
	}
	if !models.ValidPaymentMethod(in.PaymentMethod) {
		return apperr.Validation("Geçersiz ödeme yöntemi (cod|bank_transfer|credit_card|digital_wallet)")
	}
	return nil
}

// PlaceOrder: sepetten sipariş oluşturma. Sıra numarası, sipariş kaydı,
// kalem snapshot'ları ve promosyon sayacı tek transaction'da; sepet
// temizliği de aynı tx'te yapılır ki yarım sipariş kalmasın. Rate limit
// sayacı ve event yayını commit sonrasına kalır.
func PlaceOrder(token, ip, userAgent string, in PlaceOrderInput) (*models.Order, error) {
	if err := validatePlacement(&in); err != nil {
		return nil, err
	}

	now := time.Now()

	sess, err := ratelimit.Check(token, ip, userAgent, now)
	if err != nil {
		return nil, err
	}

	crt, err := cart.GetOrCreate(token)
	if err != nil {
		return nil, err
	}
	if len(crt.Lines) == 0 {
		return nil, apperr.Validation("Sepet boş, sipariş oluşturulamaz")
	}
	if crt.ZoneID == nil {
		return nil, apperr.Validation("Teslimat bölgesi seçilmedi")
	}

	// toplamlar bayat olmasın
	cart.Recalculate(crt)

	menuIDs := make([]uint, 0, len(crt.Lines))
	totalItems := 0
	for _, line := range crt.Lines {
		menuIDs = append(menuIDs, line.MenuID)
		totalItems += line.Quantity
	}

	// promosyon: geçersizse sipariş düşmez, indirim sıfır uygulanır
	discount := decimal.Zero
	var promoID *uint
	if in.PromotionID != nil {
		var promo models.Promotion
		if err := database.DB.First(&promo, "id = ?", *in.PromotionID).Error; err == nil {
			discount = promotion.Discount(&promo, crt.Subtotal, totalItems, menuIDs, now)
			if discount.GreaterThan(decimal.Zero) {
				promoID = &promo.ID
			}
		}
	}

	quote := pricing.Quote(crt.Subtotal, crt.DeliveryFee, discount, taxRate, serviceRate)

	var order models.Order
	err = database.DB.Transaction(func(tx *gorm.DB) error {
		number, err := NewOrderNumber(tx, now)
		if err != nil {
			return apperr.Persistence("Sipariş numarası üretilemedi", err)
		}

		eta := now.Add(PlacementETAMinutes * time.Minute)
		order = models.Order{
			OrderNumber:           number,
			CustomerName:          strings.TrimSpace(in.CustomerName),
			CustomerPhone:         in.CustomerPhone,
			DeliveryAddress:       strings.TrimSpace(in.DeliveryAddress),
			ZoneID:                crt.ZoneID,
			PaymentMethod:         in.PaymentMethod,
			PaymentStatus:         models.PaymentStatusPending,
			Status:                models.StatusPending,
			Subtotal:              quote.Subtotal,
			TaxAmount:             quote.TaxAmount,
			ServiceCharge:         quote.ServiceCharge,
			DeliveryFee:           quote.DeliveryFee,
			DiscountAmount:        quote.DiscountAmount,
			TotalAmount:           quote.Total,
			PromotionID:           promoID,
			SpecialInstructions:   in.SpecialInstructions,
			EstimatedDeliveryTime: &eta,
			Items:                 itemsFromCart(crt.Lines),
		}

		if err := tx.Create(&order).Error; err != nil {
			return apperr.Persistence("Sipariş kaydedilemedi", err)
		}

		if promoID != nil {
			if err := bumpPromotionUsage(tx, *promoID); err != nil {
				return err
			}
		}

		return cart.ClearTx(tx, crt)
	})
	if err != nil {
		return nil, err
	}

	if err := ratelimit.Record(sess, now); err != nil {
		logrus.WithError(err).Warn("Rate limit sayacı güncellenemedi")
	}

	notify.Dispatch(notify.TopicOrderCreated, notify.OrderEvent{
		OrderID:     order.ID,
		OrderNumber: order.OrderNumber,
		NewStatus:   string(order.Status),
		StatusText:  order.Status.StatusDisplay(),
		Total:       order.TotalAmount.String(),
		OccurredAt:  now,
	})

	logrus.WithFields(logrus.Fields{
		"order_number": order.OrderNumber,
		"total":        order.TotalAmount.String(),
		"items":        len(order.Items),
	}).Info("Sipariş oluşturuldu")

	return &order, nil
}

// bumpPromotionUsage: kullanım sayacını limit kontrolüyle birlikte tek
// UPDATE'te artırır. Limit satır filtresinde olduğu için iki eşzamanlı
// sipariş sayacı limitin üstüne taşıyamaz; geç kalan Conflict alır.
func bumpPromotionUsage(tx *gorm.DB, promoID uint) error {
	res := tx.Model(&models.Promotion{}).
		Where("id = ? AND (usage_limit IS NULL OR current_usage < usage_limit)", promoID).
		UpdateColumn("current_usage", gorm.Expr("current_usage + 1"))
	if res.Error != nil {
		return apperr.Persistence("Promosyon sayacı güncellenemedi", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.Conflict("Promosyon kullanım limiti doldu")
	}
	return nil
}

func itemsFromCart(lines []models.CartLine) []models.OrderItem {
	items := make([]models.OrderItem, 0, len(lines))
	for _, line := range lines {
		item := models.OrderItem{
			MenuID:          line.MenuID,
			MenuName:        line.MenuName,
			UnitPrice:       line.UnitPrice.Add(line.OptionsPrice),
			Quantity:        line.Quantity,
			LineTotal:       line.LineTotal,
			SpecialRequests: line.Notes,
		}
		for _, opt := range line.Options {
			item.Options = append(item.Options, models.OrderItemOption{
				OptionID:    opt.OptionID,
				OptionName:  opt.OptionName,
				OptionPrice: opt.Price,
			})
		}
		items = append(items, item)
	}
	return items
}

// Transition: personel durum geçişi. Sipariş satırı kilitlenir, geçiş
// tablosu ve rol politikası uygulanır; preparing geçişinde stok düşümü
// aynı tx'te yapılır. Her sonuç (başarı/ret) kilit altında belirlenir,
// eşzamanlı iki geçişten yalnızca biri kazanır.
func Transition(orderID uint, to models.OrderStatus, actor *models.User) (*models.Order, error) {
	if !ValidStatus(to) {
		return nil, apperr.Validation("Geçersiz sipariş durumu: " + string(to))
	}

	now := time.Now()
	var order models.Order
	var oldStatus models.OrderStatus
	var lowStock []models.Ingredient

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&order, "id = ?", orderID).Error; err != nil {
			return apperr.NotFound("Sipariş bulunamadı")
		}
		oldStatus = order.Status

		if !CanTransition(order.Status, to) {
			return apperr.InvalidTransition(
				string(order.Status) + " durumundan " + string(to) + " durumuna geçilemez")
		}
		if !RoleAllows(actor.Role, order.Status, to) {
			return fiber.NewError(fiber.StatusForbidden,
				"Bu geçiş için yetkiniz yok: "+string(order.Status)+" → "+string(to))
		}

		if to == models.StatusPreparing {
			if err := tx.Preload("Items").First(&order, "id = ?", order.ID).Error; err != nil {
				return apperr.Persistence("Sipariş kalemleri yüklenemedi", err)
			}
			ls, err := inventory.DeductForOrder(tx, &order, strictStockCheck)
			if err != nil {
				return err
			}
			lowStock = ls
		}

		if err := ApplyTransition(&order, to, actor.ID, now); err != nil {
			return err
		}

		return tx.Model(&models.Order{}).Where("id = ?", order.ID).
			Updates(map[string]interface{}{
				"status":                  order.Status,
				"payment_status":          order.PaymentStatus,
				"confirmed_at":            order.ConfirmedAt,
				"preparation_started_at":  order.PreparationStartedAt,
				"ready_at":                order.ReadyAt,
				"delivery_started_at":     order.DeliveryStartedAt,
				"delivered_at":            order.DeliveredAt,
				"completed_at":            order.CompletedAt,
				"estimated_delivery_time": order.EstimatedDeliveryTime,
				"accepted_by_user_id":     order.AcceptedByUserID,
				"delivered_by_user_id":    order.DeliveredByUserID,
			}).Error
	})
	if err != nil {
		return nil, err
	}

	inventory.PublishLowStock(lowStock)
	notify.Dispatch(notify.TopicOrderStatus, notify.OrderEvent{
		OrderID:     order.ID,
		OrderNumber: order.OrderNumber,
		OldStatus:   string(oldStatus),
		NewStatus:   string(order.Status),
		StatusText:  order.Status.StatusDisplay(),
		OccurredAt:  now,
	})

	logrus.WithFields(logrus.Fields{
		"order_number": order.OrderNumber,
		"from":         string(oldStatus),
		"to":           string(order.Status),
		"actor":        actor.Username,
	}).Info("Sipariş durumu güncellendi")

	return &order, nil
}

// CancelByCustomer: müşteri iptali, sadece pending durumunda ve telefon
// eşleşmesiyle
func CancelByCustomer(orderNumber, phone string) (*models.Order, error) {
	now := time.Now()
	var order models.Order
	var oldStatus models.OrderStatus

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&order, "order_number = ? AND customer_phone = ?", orderNumber, phone).Error; err != nil {
			return apperr.NotFound("Sipariş bulunamadı")
		}
		oldStatus = order.Status

		if !order.CanBeCancelled() {
			return apperr.InvalidTransition(
				"Sipariş " + string(order.Status) + " durumunda, artık iptal edilemez")
		}

		order.Status = models.StatusCancelled
		return tx.Model(&models.Order{}).Where("id = ?", order.ID).
			Update("status", models.StatusCancelled).Error
	})
	if err != nil {
		return nil, err
	}

	notify.Dispatch(notify.TopicOrderStatus, notify.OrderEvent{
		OrderID:     order.ID,
		OrderNumber: order.OrderNumber,
		OldStatus:   string(oldStatus),
		NewStatus:   string(order.Status),
		StatusText:  order.Status.StatusDisplay(),
		OccurredAt:  now,
	})
	return &order, nil
}

// ModifyByCustomer: pending siparişin kalemlerini mevcut sepetle komple
// değiştirir. Kalemler tek tx'te silinip yeniden yazılır, toplamlar
// yeniden fiyatlanır; kısmi güncelleme yoktur.
func ModifyByCustomer(token, orderNumber, phone string) (*models.Order, error) {
	crt, err := cart.GetOrCreate(token)
	if err != nil {
		return nil, err
	}
	if len(crt.Lines) == 0 {
		return nil, apperr.Validation("Sepet boş, sipariş güncellenemez")
	}
	cart.Recalculate(crt)

	now := time.Now()
	var order models.Order

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&order, "order_number = ? AND customer_phone = ?", orderNumber, phone).Error; err != nil {
			return apperr.NotFound("Sipariş bulunamadı")
		}

		if !order.CanBeModified() {
			return apperr.InvalidTransition(
				"Sipariş " + string(order.Status) + " durumunda, artık değiştirilemez")
		}

		// eski kalemler komple gider
		var oldItems []models.OrderItem
		if err := tx.Where("order_id = ?", order.ID).Find(&oldItems).Error; err != nil {
			return apperr.Persistence("Sipariş kalemleri yüklenemedi", err)
		}
		for _, item := range oldItems {
			if err := tx.Where("order_item_id = ?", item.ID).
				Delete(&models.OrderItemOption{}).Error; err != nil {
				return apperr.Persistence("Kalem seçenekleri silinemedi", err)
			}
		}
		if err := tx.Where("order_id = ?", order.ID).
			Delete(&models.OrderItem{}).Error; err != nil {
			return apperr.Persistence("Sipariş kalemleri silinemedi", err)
		}

		// indirim mevcut promosyonla yeniden hesaplanır
		discount := decimal.Zero
		if order.PromotionID != nil {
			menuIDs := make([]uint, 0, len(crt.Lines))
			totalItems := 0
			for _, line := range crt.Lines {
				menuIDs = append(menuIDs, line.MenuID)
				totalItems += line.Quantity
			}
			var promo models.Promotion
			if err := tx.First(&promo, "id = ?", *order.PromotionID).Error; err == nil {
				discount = promotion.Discount(&promo, crt.Subtotal, totalItems, menuIDs, now)
			}
		}

		// kalem değişikliği teslimat bilgisine dokunmaz; bölge ve ücret
		// sipariş verildiği gibi kalır
		quote := pricing.Quote(crt.Subtotal, order.DeliveryFee, discount, taxRate, serviceRate)

		items := itemsFromCart(crt.Lines)
		for i := range items {
			items[i].OrderID = order.ID
		}
		if err := tx.Create(&items).Error; err != nil {
			return apperr.Persistence("Yeni kalemler yazılamadı", err)
		}

		order.Subtotal = quote.Subtotal
		order.TaxAmount = quote.TaxAmount
		order.ServiceCharge = quote.ServiceCharge
		order.DeliveryFee = quote.DeliveryFee
		order.DiscountAmount = quote.DiscountAmount
		order.TotalAmount = quote.Total
		order.Items = items

		if err := tx.Model(&models.Order{}).Where("id = ?", order.ID).
			Updates(map[string]interface{}{
				"subtotal":        quote.Subtotal,
				"tax_amount":      quote.TaxAmount,
				"service_charge":  quote.ServiceCharge,
				"delivery_fee":    quote.DeliveryFee,
				"discount_amount": quote.DiscountAmount,
				"total_amount":    quote.Total,
			}).Error; err != nil {
			return apperr.Persistence("Sipariş toplamları güncellenemedi", err)
		}

		return cart.ClearTx(tx, crt)
	})
	if err != nil {
		return nil, err
	}

	return &order, nil
}

// GetByNumber: sipariş durumu sorgusu (müşteri takip ekranı)
func GetByNumber(orderNumber string) (*models.Order, error) {
	var order models.Order
	err := database.DB.
		Preload("Items.Options").
		Preload("Items").
		Preload("Zone").
		First(&order, "order_number = ?", orderNumber).Error
	if err != nil {
		return nil, apperr.NotFound("Sipariş bulunamadı")
	}
	return &order, nil
}

// HistoryByPhone: telefon numarasına göre son siparişler
func HistoryByPhone(phone string, limit int) ([]models.Order, error) {
	if limit <= 0 || limit > 50 {
		limit = 20
	}

	var orders []models.Order
	err := database.DB.
		Preload("Items").
		Where("customer_phone = ?", phone).
		Order("created_at desc").
		Limit(limit).
		Find(&orders).Error
	if err != nil {
		return nil, apperr.Persistence("Sipariş geçmişi yüklenemedi", err)
	}
	return orders, nil
}

// ListByStatus: personel listesi, durum filtresi opsiyonel
func ListByStatus(statuses []models.OrderStatus, limit int) ([]models.Order, error) {
	if limit <= 0 || limit > 200 {
		limit = 100
	}

	dbq := database.DB.Preload("Items").Preload("Zone").Order("created_at asc").Limit(limit)
	if len(statuses) > 0 {
		dbq = dbq.Where("status IN ?", statuses)
	}

	var orders []models.Order
	if err := dbq.Find(&orders).Error; err != nil {
		return nil, apperr.Persistence("Siparişler listelenemedi", err)
	}
	return orders, nil
}
