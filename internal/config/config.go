package config

import (
	"log/slog"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"

	"github.com/corray333/cafe-order/internal/service/pricing"
	"github.com/corray333/cafe-order/pkg/logger"
)

func MustInit() {
	if err := godotenv.Load("./.env"); err != nil {
		panic("error while loading .env file: " + err.Error())
	}
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("/etc/cafe-order")
	viper.AddConfigPath(".")
	if err := viper.ReadInConfig(); err != nil {
		panic("error while reading config file: " + err.Error())
	}
	SetupLogger()
}

func SetupLogger() {
	handler := logger.NewHandler(nil)
	log := slog.New(handler)
	slog.SetDefault(log)
}

// PricingConfig builds the pricing knobs from config, falling back to the
// standard rates.
func PricingConfig() pricing.Config {
	cfg := pricing.DefaultConfig()
	if viper.IsSet("pricing.tax_rate") {
		cfg.TaxRate = decimal.NewFromFloat(viper.GetFloat64("pricing.tax_rate"))
	}
	if viper.IsSet("pricing.delivery_fee") {
		cfg.DeliveryFee = decimal.NewFromFloat(viper.GetFloat64("pricing.delivery_fee"))
	}

	return cfg
}
