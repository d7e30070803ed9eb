package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

// Config is built once at startup and passed to constructors. Nothing in
// this package keeps global state.
type Config struct {
	ServiceAddr string
	DatabaseDSN string
	JWT         JWTConfig
	Order       OrderConfig
	SMTP        SMTPConfig
	S3          S3Config
	Pesapal     PesapalConfig
}

type JWTConfig struct {
	Secret string
	TTL    time.Duration
}

type OrderConfig struct {
	NumberPrefix string
	DeliveryFee  float64
	TaxRate      float64
}

type SMTPConfig struct {
	Addr     string
	Host     string
	From     string
	Password string
}

func (c SMTPConfig) Enabled() bool {
	return c.Addr != "" && c.From != ""
}

type S3Config struct {
	Bucket string
	Region string
}

func (c S3Config) Enabled() bool {
	return c.Bucket != ""
}

type PesapalConfig struct {
	BaseURL        string
	ConsumerKey    string
	ConsumerSecret string
	NotificationID string
	CallbackURL    string
	Currency       string
}

func (c PesapalConfig) Enabled() bool {
	return c.ConsumerKey != "" && c.ConsumerSecret != ""
}

func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		ServiceAddr: getEnv("SERVICE_ADDR", ":8080"),
		DatabaseDSN: getEnv("DATABASE_DSN", "root:password@tcp(localhost:3306)/tastybites?charset=utf8mb4&parseTime=True&loc=Local"),
		JWT: JWTConfig{
			Secret: getEnv("JWT_SECRET", ""),
		},
		Order: OrderConfig{
			NumberPrefix: getEnv("ORDER_NUMBER_PREFIX", "TB"),
			DeliveryFee:  4.99,
			TaxRate:      0.08,
		},
		SMTP: SMTPConfig{
			Addr:     os.Getenv("SMTP_ADDRESS"),
			Host:     os.Getenv("FROM_EMAIL_SMTP"),
			From:     os.Getenv("FROM_EMAIL"),
			Password: os.Getenv("FROM_EMAIL_PASSWORD"),
		},
		S3: S3Config{
			Bucket: os.Getenv("S3_BUCKET"),
			Region: os.Getenv("AWS_REGION"),
		},
		Pesapal: PesapalConfig{
			BaseURL:        getEnv("PESAPAL_BASE_URL", "https://pay.pesapal.com/v3"),
			ConsumerKey:    os.Getenv("PESAPAL_CONSUMER_KEY"),
			ConsumerSecret: os.Getenv("PESAPAL_CONSUMER_SECRET"),
			NotificationID: os.Getenv("PESAPAL_NOTIFICATION_ID"),
			CallbackURL:    os.Getenv("PESAPAL_CALLBACK_URL"),
			Currency:       getEnv("PESAPAL_CURRENCY", "USD"),
		},
	}

	if cfg.JWT.Secret == "" {
		return Config{}, fmt.Errorf("JWT_SECRET is not set")
	}

	ttlMinutes, err := strconv.Atoi(getEnv("ACCESS_TOKEN_EXPIRE_MINUTES", "30"))
	if err != nil {
		return Config{}, fmt.Errorf("ACCESS_TOKEN_EXPIRE_MINUTES must be an integer: %w", err)
	}
	cfg.JWT.TTL = time.Duration(ttlMinutes) * time.Minute

	log.Info("config loaded")

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
