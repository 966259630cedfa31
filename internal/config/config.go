package config

import (
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Env             string        `mapstructure:"ENV"`
	Port            string        `mapstructure:"PORT"`
	DatabaseURL     string        `mapstructure:"DATABASE_URL"`
	AdminKey        string        `mapstructure:"ADMIN_KEY"`
	CORSAllowed     string        `mapstructure:"CORS_ALLOWED_ORIGINS"`
	RequestTimeout  time.Duration `mapstructure:"REQUEST_TIMEOUT"`
	LogLevel        string        `mapstructure:"LOG_LEVEL"`
	MaxUploadSizeMB int64         `mapstructure:"MAX_UPLOAD_MB"`

	OperatingTZ      string  `mapstructure:"OPERATING_TZ"`
	HourlyRate       float64 `mapstructure:"HOURLY_RATE"`
	FuelCostPerMile  float64 `mapstructure:"FUEL_COST_PER_MILE"`
	WarehouseAddress string  `mapstructure:"WAREHOUSE_ADDRESS"`
	MapsAPIKey       string  `mapstructure:"MAPS_API_KEY"`
	MapsBaseURL      string  `mapstructure:"MAPS_BASE_URL"`
	UploadDir        string  `mapstructure:"UPLOAD_DIR"`
	OutboxDir        string  `mapstructure:"OUTBOX_DIR"`
	KafkaBrokers     string  `mapstructure:"KAFKA_BROKERS"`
	KafkaTopic       string  `mapstructure:"KAFKA_TOPIC"`
}

func Load() (Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	_ = v.ReadInConfig()

	v.SetDefault("ENV", "dev")
	v.SetDefault("PORT", "8080")
	v.SetDefault("REQUEST_TIMEOUT", "30s")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "*")
	v.SetDefault("MAX_UPLOAD_MB", 10)
	v.SetDefault("OPERATING_TZ", "America/Chicago")
	v.SetDefault("HOURLY_RATE", 10.0)
	v.SetDefault("FUEL_COST_PER_MILE", 0.2)
	v.SetDefault("WAREHOUSE_ADDRESS", "10010 US-165, Sterlington, LA 71280")
	v.SetDefault("UPLOAD_DIR", "uploads")
	v.SetDefault("OUTBOX_DIR", "outbox")
	v.SetDefault("KAFKA_TOPIC", "pickup-events")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
