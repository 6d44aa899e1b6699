package inventory

// Gerçek PostgreSQL gerektiren testler (FOR UPDATE kilidi sqlite ile
// taklit edilemiyor). TEST_DATABASE_DSN tanımlı değilse atlanır.

import (
	"os"
	"testing"

	"lanaim-backend/internal/apperr"
	"lanaim-backend/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_DSN")
	if dsn == "" {
		t.Skip("TEST_DATABASE_DSN tanımlı değil, DB testi atlanıyor")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("test veritabanına bağlanılamadı: %v", err)
	}

	err = db.AutoMigrate(
		&models.Ingredient{},
		&models.StockAdjustment{},
		&models.Menu{},
		&models.RecipeBOM{},
		&models.Order{},
		&models.OrderItem{},
		&models.OrderItemOption{},
	)
	if err != nil {
		t.Fatalf("migration hatası: %v", err)
	}
	return db
}

func newIngredient(t *testing.T, db *gorm.DB, stock, threshold string) *models.Ingredient {
	t.Helper()
	ing := models.Ingredient{
		Name:              "malzeme-" + uuid.NewString(),
		Unit:              "kg",
		StockQuantity:     dec(stock),
		LowStockThreshold: dec(threshold),
		IsActive:          true,
	}
	if err := db.Create(&ing).Error; err != nil {
		t.Fatalf("hammadde oluşturulamadı: %v", err)
	}
	return &ing
}

func newMenuWithBOM(t *testing.T, db *gorm.DB, ingredientID uint, perServing string) *models.Menu {
	t.Helper()
	menu := models.Menu{
		Name:     "menu-" + uuid.NewString(),
		Price:    dec("80"),
		IsActive: true,
	}
	if err := db.Create(&menu).Error; err != nil {
		t.Fatalf("menü oluşturulamadı: %v", err)
	}
	bom := models.RecipeBOM{
		MenuID:       menu.ID,
		IngredientID: ingredientID,
		QuantityUsed: dec(perServing),
		IsActive:     true,
	}
	if err := db.Create(&bom).Error; err != nil {
		t.Fatalf("reçete oluşturulamadı: %v", err)
	}
	return &menu
}

func newOrderWithItem(t *testing.T, db *gorm.DB, menu *models.Menu, qty int) *models.Order {
	t.Helper()
	order := models.Order{
		OrderNumber:     "LA" + uuid.NewString()[:16],
		CustomerName:    "Test",
		CustomerPhone:   "0812345678",
		DeliveryAddress: "adres",
		PaymentMethod:   models.PaymentCOD,
		PaymentStatus:   models.PaymentStatusPending,
		Status:          models.StatusConfirmed,
		Subtotal:        dec("80"),
		TaxAmount:       dec("5.60"),
		ServiceCharge:   dec("4.00"),
		DeliveryFee:     dec("20"),
		DiscountAmount:  dec("0"),
		TotalAmount:     dec("109.60"),
		Items: []models.OrderItem{
			{
				MenuID:    menu.ID,
				MenuName:  menu.Name,
				UnitPrice: menu.Price,
				Quantity:  qty,
				LineTotal: menu.Price.Mul(decimal.NewFromInt(int64(qty))),
			},
		},
	}
	if err := db.Create(&order).Error; err != nil {
		t.Fatalf("sipariş oluşturulamadı: %v", err)
	}
	return &order
}

func ledgerSum(t *testing.T, db *gorm.DB, ingredientID uint) decimal.Decimal {
	t.Helper()
	var rows []models.StockAdjustment
	if err := db.Where("ingredient_id = ?", ingredientID).Find(&rows).Error; err != nil {
		t.Fatalf("defter okunamadı: %v", err)
	}
	sum := decimal.Zero
	for _, row := range rows {
		sum = sum.Add(row.Quantity)
	}
	return sum
}

// stock_quantity her hareket dizisinden sonra defter toplamına eşit
// kalmalı (giriş, çıkış, düzeltme karışık sırayla).
func TestLedgerInvariantAcrossAdjustments(t *testing.T) {
	db := testDB(t)
	ing := newIngredient(t, db, "0", "1")
	initial := ing.StockQuantity

	moves := []struct {
		typ    models.AdjustmentType
		change string
	}{
		{models.AdjustmentIn, "10"},
		{models.AdjustmentOut, "-3.5"},
		{models.AdjustmentCorrection, "0.25"},
		{models.AdjustmentOut, "-1"},
		{models.AdjustmentIn, "2"},
	}

	for _, m := range moves {
		err := db.Transaction(func(tx *gorm.DB) error {
			_, err := applyAdjustment(tx, ing.ID, m.typ, dec(m.change), 1, "test hareketi")
			return err
		})
		if err != nil {
			t.Fatalf("hareket (%s %s) uygulanamadı: %v", m.typ, m.change, err)
		}
	}

	var after models.Ingredient
	if err := db.First(&after, "id = ?", ing.ID).Error; err != nil {
		t.Fatal(err)
	}

	sum := ledgerSum(t, db, ing.ID)
	if !after.StockQuantity.Equal(initial.Add(sum)) {
		t.Errorf("stok %s != başlangıç %s + defter toplamı %s",
			after.StockQuantity, initial, sum)
	}
	if !after.StockQuantity.Equal(dec("7.75")) {
		t.Errorf("stok = %s, want 7.75", after.StockQuantity)
	}
}

// preparing retry'ı aynı kalemi ikinci kez düşmemeli.
func TestDeductForOrderIdempotent(t *testing.T) {
	db := testDB(t)
	ing := newIngredient(t, db, "10", "1")
	menu := newMenuWithBOM(t, db, ing.ID, "1")
	order := newOrderWithItem(t, db, menu, 2)

	for round := 0; round < 2; round++ {
		err := db.Transaction(func(tx *gorm.DB) error {
			var o models.Order
			if err := tx.Preload("Items").First(&o, "id = ?", order.ID).Error; err != nil {
				return err
			}
			_, err := DeductForOrder(tx, &o, true)
			return err
		})
		if err != nil {
			t.Fatalf("%d. çağrı: %v", round+1, err)
		}
	}

	var after models.Ingredient
	if err := db.First(&after, "id = ?", ing.ID).Error; err != nil {
		t.Fatal(err)
	}
	if !after.StockQuantity.Equal(dec("8")) {
		t.Errorf("stok = %s, want 8 (tek düşüm)", after.StockQuantity)
	}

	var count int64
	db.Model(&models.StockAdjustment{}).Where("ingredient_id = ?", ing.ID).Count(&count)
	if count != 1 {
		t.Errorf("defter satırı = %d, want 1", count)
	}
}

// Yetersiz stok hiçbir modda mutasyon bırakmamalı: strict modda geçiş
// hatayla döner, esnek modda düşüm atlanır; iki durumda da stok ve
// defter aynı kalır.
func TestDeductForOrderShortfallNoMutation(t *testing.T) {
	for _, strict := range []bool{true, false} {
		name := "esnek"
		if strict {
			name = "strict"
		}
		t.Run(name, func(t *testing.T) {
			db := testDB(t)
			ing := newIngredient(t, db, "1", "0")
			menu := newMenuWithBOM(t, db, ing.ID, "2")
			order := newOrderWithItem(t, db, menu, 1)

			err := db.Transaction(func(tx *gorm.DB) error {
				var o models.Order
				if err := tx.Preload("Items").First(&o, "id = ?", order.ID).Error; err != nil {
					return err
				}
				_, err := DeductForOrder(tx, &o, strict)
				return err
			})

			if strict {
				if err == nil {
					t.Fatal("strict modda hata bekleniyordu")
				}
				if ae, ok := apperr.As(err); !ok || ae.Kind != apperr.KindInsufficientStock {
					t.Errorf("hata tipi = %v, want KindInsufficientStock", err)
				}
			} else if err != nil {
				t.Fatalf("esnek modda hata beklenmiyordu: %v", err)
			}

			var after models.Ingredient
			if err := db.First(&after, "id = ?", ing.ID).Error; err != nil {
				t.Fatal(err)
			}
			if !after.StockQuantity.Equal(dec("1")) {
				t.Errorf("stok = %s, want 1 (mutasyon yok)", after.StockQuantity)
			}

			var count int64
			db.Model(&models.StockAdjustment{}).Where("ingredient_id = ?", ing.ID).Count(&count)
			if count != 0 {
				t.Errorf("defter satırı = %d, want 0", count)
			}
		})
	}
}
