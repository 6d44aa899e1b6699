package order

// Gerçek PostgreSQL gerektiren testler (upsert + satır kilidi sqlite ile
// taklit edilemiyor). TEST_DATABASE_DSN tanımlı değilse atlanır.

import (
	"os"
	"sync"
	"testing"
	"time"

	"lanaim-backend/internal/apperr"
	"lanaim-backend/internal/database"
	"lanaim-backend/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

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
		&models.DeliveryZone{},
		&models.Menu{},
		&models.Cart{},
		&models.CartLine{},
		&models.CartLineOption{},
		&models.Order{},
		&models.OrderItem{},
		&models.OrderItemOption{},
		&models.OrderSequence{},
		&models.Promotion{},
	)
	if err != nil {
		t.Fatalf("migration hatası: %v", err)
	}
	return db
}

// Eşzamanlı siparişler aynı güne asla aynı sıra numarasını alamamalı.
func TestNextSequenceConcurrentUnique(t *testing.T) {
	db := testDB(t)
	day := time.Date(2030, 1, 2, 10, 0, 0, 0, time.UTC)

	const n = 10
	seqs := make(chan int, n)
	var wg sync.WaitGroup

	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := db.Transaction(func(tx *gorm.DB) error {
				seq, err := NextSequence(tx, day)
				if err != nil {
					return err
				}
				seqs <- seq
				return nil
			})
			if err != nil {
				t.Errorf("sıra alınamadı: %v", err)
			}
		}()
	}
	wg.Wait()
	close(seqs)

	seen := map[int]bool{}
	for seq := range seqs {
		if seen[seq] {
			t.Errorf("sıra numarası %d iki kez üretildi", seq)
		}
		seen[seq] = true
	}
	if len(seen) != n {
		t.Errorf("benzersiz numara = %d, want %d", len(seen), n)
	}
}

// Kullanım limiti sayaç artırımıyla aynı UPDATE'te kontrol edilir; limit
// dolduktan sonraki artırım Conflict almalı.
func TestBumpPromotionUsageLimit(t *testing.T) {
	db := testDB(t)

	limit := 1
	promo := models.Promotion{
		Name:       "promo-" + uuid.NewString(),
		Type:       models.PromotionPercentage,
		StartDate:  time.Now().Add(-time.Hour),
		EndDate:    time.Now().Add(time.Hour),
		IsActive:   true,
		UsageLimit: &limit,
	}
	if err := db.Create(&promo).Error; err != nil {
		t.Fatalf("promosyon oluşturulamadı: %v", err)
	}

	if err := db.Transaction(func(tx *gorm.DB) error {
		return bumpPromotionUsage(tx, promo.ID)
	}); err != nil {
		t.Fatalf("ilk kullanım reddedildi: %v", err)
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		return bumpPromotionUsage(tx, promo.ID)
	})
	if err == nil {
		t.Fatal("limit dolduktan sonra artırım kabul edildi")
	}
	if ae, ok := apperr.As(err); !ok || ae.Kind != apperr.KindConflict {
		t.Errorf("hata tipi = %v, want KindConflict", err)
	}

	var after models.Promotion
	if err := db.First(&after, "id = ?", promo.ID).Error; err != nil {
		t.Fatal(err)
	}
	if after.CurrentUsage != 1 {
		t.Errorf("current_usage = %d, want 1", after.CurrentUsage)
	}
}

// Kalem değişikliği siparişin bölgesine ve teslimat ücretine dokunmamalı,
// sepette farklı bölge seçili olsa bile.
func TestModifyByCustomerKeepsDeliveryFee(t *testing.T) {
	db := testDB(t)

	prev := database.DB
	database.DB = db
	defer func() { database.DB = prev }()

	zoneA := models.DeliveryZone{Name: "zone-" + uuid.NewString()[:8], DeliveryFee: dec("20"), IsActive: true}
	zoneB := models.DeliveryZone{Name: "zone-" + uuid.NewString()[:8], DeliveryFee: dec("40"), IsActive: true}
	if err := db.Create(&zoneA).Error; err != nil {
		t.Fatal(err)
	}
	if err := db.Create(&zoneB).Error; err != nil {
		t.Fatal(err)
	}

	menu := models.Menu{Name: "menu-" + uuid.NewString()[:8], Price: dec("80"), IsActive: true}
	if err := db.Create(&menu).Error; err != nil {
		t.Fatal(err)
	}

	phone := "0812345678"
	ord := models.Order{
		OrderNumber:     "LA" + uuid.NewString()[:16],
		CustomerName:    "Test",
		CustomerPhone:   phone,
		DeliveryAddress: "adres",
		ZoneID:          &zoneA.ID,
		PaymentMethod:   models.PaymentCOD,
		PaymentStatus:   models.PaymentStatusPending,
		Status:          models.StatusPending,
		Subtotal:        dec("80"),
		TaxAmount:       dec("5.60"),
		ServiceCharge:   dec("4.00"),
		DeliveryFee:     zoneA.DeliveryFee,
		DiscountAmount:  dec("0"),
		TotalAmount:     dec("109.60"),
		Items: []models.OrderItem{
			{MenuID: menu.ID, MenuName: menu.Name, UnitPrice: menu.Price, Quantity: 1, LineTotal: dec("80")},
		},
	}
	if err := db.Create(&ord).Error; err != nil {
		t.Fatal(err)
	}

	token := uuid.NewString()
	crt := models.Cart{
		SessionToken: token,
		ZoneID:       &zoneB.ID,
		Subtotal:     dec("160"),
		DeliveryFee:  zoneB.DeliveryFee,
		Total:        dec("200"),
		Lines: []models.CartLine{
			{MenuID: menu.ID, MenuName: menu.Name, UnitPrice: menu.Price, Quantity: 2, LineTotal: dec("160")},
		},
	}
	if err := db.Create(&crt).Error; err != nil {
		t.Fatal(err)
	}

	updated, err := ModifyByCustomer(token, ord.OrderNumber, phone)
	if err != nil {
		t.Fatalf("ModifyByCustomer: %v", err)
	}

	if !updated.DeliveryFee.Equal(zoneA.DeliveryFee) {
		t.Errorf("delivery_fee = %s, want %s", updated.DeliveryFee, zoneA.DeliveryFee)
	}

	var after models.Order
	if err := db.Preload("Items").First(&after, "id = ?", ord.ID).Error; err != nil {
		t.Fatal(err)
	}
	if after.ZoneID == nil || *after.ZoneID != zoneA.ID {
		t.Error("zone_id değişmemeliydi")
	}
	if !after.DeliveryFee.Equal(zoneA.DeliveryFee) {
		t.Errorf("kayıtlı delivery_fee = %s, want %s", after.DeliveryFee, zoneA.DeliveryFee)
	}
	if len(after.Items) != 1 || after.Items[0].Quantity != 2 {
		t.Error("kalemler sepetten yeniden yazılmalıydı")
	}
}
