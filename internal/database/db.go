package database

import (
	"lanaim-backend/internal/config"
	"lanaim-backend/internal/models"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func Init(cfg *config.Config) {
	var err error

	DB, err = gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{})
	if err != nil {
		logrus.Fatalf("Veritabanına bağlanılamadı: %v", err)
	}

	err = DB.AutoMigrate(
		&models.User{},
		&models.DeliveryZone{},
		&models.Menu{},
		&models.MenuOptionGroup{},
		&models.MenuOptionItem{},
		&models.Cart{},
		&models.CartLine{},
		&models.CartLineOption{},
		&models.Order{},
		&models.OrderItem{},
		&models.OrderItemOption{},
		&models.OrderSequence{},
		&models.Feedback{},
		&models.Ingredient{},
		&models.RecipeBOM{},
		&models.StockAdjustment{},
		&models.Promotion{},
		&models.CustomerSession{},
		&models.AuditLog{},
	)
	if err != nil {
		logrus.Fatalf("AutoMigrate hatası: %v", err)
	}

	logrus.Info("Veritabanı bağlantısı başarılı. Migration tamamlandı.")
}
