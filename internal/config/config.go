package config

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

type Config struct {
	HTTPPort    string
	DatabaseDSN string
	JWTSecret   string
	CORSOrigins string
	RabbitMQURL string // boşsa event'ler sadece loglanır

	TaxRate           decimal.Decimal // KDV oranı, subtotal üzerinden
	ServiceChargeRate decimal.Decimal // servis ücreti oranı, subtotal üzerinden

	// preparing geçişinde stok yetersizse geçişi blokla (false =
	// eski davranış: logla ve devam et)
	StrictStockCheck bool
}

func Load() *Config {
	// .env varsa yükle, yoksa sorun değil
	_ = godotenv.Load()

	cfg := &Config{
		HTTPPort:          getEnv("HTTP_PORT", "8080"),
		DatabaseDSN:       getEnv("DATABASE_DSN", "host=localhost user=postgres password=postgres dbname=lanaim port=5432 sslmode=disable"),
		JWTSecret:         getEnv("JWT_SECRET", ""),
		CORSOrigins:       getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
		RabbitMQURL:       getEnv("RABBITMQ_URL", ""),
		TaxRate:           getDecimalEnv("TAX_RATE", "0.07"),
		ServiceChargeRate: getDecimalEnv("SERVICE_CHARGE_RATE", "0.05"),
		StrictStockCheck:  getEnv("STRICT_STOCK_CHECK", "true") != "false",
	}

	// Production güvenlik kontrolleri
	if cfg.JWTSecret == "" {
		logrus.Fatal("JWT_SECRET environment değişkeni tanımlanmamış! Production için zorunludur.")
	}
	if len(cfg.JWTSecret) < 32 {
		logrus.Fatal("JWT_SECRET en az 32 karakter olmalıdır! Güvenlik riski.")
	}
	if cfg.RabbitMQURL == "" {
		logrus.Warn("RABBITMQ_URL tanımlı değil, sipariş event'leri sadece loglanacak")
	}

	return cfg
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getDecimalEnv(key, def string) decimal.Decimal {
	raw := getEnv(key, def)
	d, err := decimal.NewFromString(raw)
	if err != nil {
		logrus.Fatalf("%s geçersiz: %q", key, raw)
	}
	return d
}
