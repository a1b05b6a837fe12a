// Package config loads service settings from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	// loads a local .env file when present
	_ "github.com/joho/godotenv/autoload"
)

type Config struct {
	Env      string
	Port     int
	LogLevel string

	AWS      AWSConfig
	Tables   TableConfig
	Auth     AuthConfig
	Redis    RedisConfig
	Payments PaymentConfig
	Pricing  PricingConfig

	CORSOrigins []string
}

type AWSConfig struct {
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	DynamoEndpoint  string
}

type TableConfig struct {
	Quotes        string
	QuoteItems    string
	Products      string
	Labs          string
	Profiles      string
	UserRoles     string
	Subscriptions string
	UsageTracking string
	LabUsers      string
	Payments      string
}

type AuthConfig struct {
	Issuer   string
	Audience string
	JWKSURL  string
	Disabled bool
}

// RedisConfig is optional; an empty Addr keeps impersonation and realtime
// state in process memory.
type RedisConfig struct {
	Addr          string
	Password      string
	DB            int
	SessionTTL    time.Duration
	EventsChannel string
}

type PaymentConfig struct {
	MercadoPagoAccessToken string
	MockMode               bool
	TestPayerEmail         string
}

type PricingConfig struct {
	AdditionalSamplePrice float64
	AdditionalHeaderPrice float64
}

// Load reads the environment. Only malformed numeric values are errors.
func Load() (*Config, error) {
	port, err := intEnv("PORT", 8080)
	if err != nil {
		return nil, err
	}
	redisDB, err := intEnv("REDIS_DB", 0)
	if err != nil {
		return nil, err
	}
	ttl, err := durationEnv("IMPERSONATION_TTL", 8*time.Hour)
	if err != nil {
		return nil, err
	}
	samplePrice, err := floatEnv("ADDITIONAL_SAMPLE_PRICE", 0)
	if err != nil {
		return nil, err
	}
	headerPrice, err := floatEnv("ADDITIONAL_HEADER_PRICE", 0)
	if err != nil {
		return nil, err
	}

	return &Config{
		Env:      getenvDefault("APP_ENV", "production"),
		Port:     port,
		LogLevel: getenvDefault("LOG_LEVEL", "info"),
		AWS: AWSConfig{
			Region:          getenvDefault("AWS_REGION", "us-east-1"),
			AccessKeyID:     os.Getenv("AWS_ACCESS_KEY_ID"),
			SecretAccessKey: os.Getenv("AWS_SECRET_ACCESS_KEY"),
			DynamoEndpoint:  os.Getenv("DYNAMODB_ENDPOINT"),
		},
		Tables: TableConfig{
			Quotes:        getenvDefault("QUOTES_TABLE", "quotes"),
			QuoteItems:    getenvDefault("QUOTE_ITEMS_TABLE", "quote_items"),
			Products:      getenvDefault("PRODUCTS_TABLE", "products"),
			Labs:          getenvDefault("LABS_TABLE", "labs"),
			Profiles:      getenvDefault("PROFILES_TABLE", "profiles"),
			UserRoles:     getenvDefault("USER_ROLES_TABLE", "user_roles"),
			Subscriptions: getenvDefault("SUBSCRIPTIONS_TABLE", "subscriptions"),
			UsageTracking: getenvDefault("USAGE_TRACKING_TABLE", "usage_tracking"),
			LabUsers:      getenvDefault("LAB_USERS_TABLE", "lab_users"),
			Payments:      getenvDefault("PAYMENTS_TABLE", "payments"),
		},
		Auth: AuthConfig{
			Issuer:   strings.TrimSpace(os.Getenv("AUTH_ISSUER")),
			Audience: strings.TrimSpace(os.Getenv("AUTH_AUDIENCE")),
			JWKSURL:  strings.TrimSpace(os.Getenv("AUTH_JWKS_URL")),
			Disabled: boolEnv("AUTH_DISABLED"),
		},
		Redis: RedisConfig{
			Addr:          os.Getenv("REDIS_ADDR"),
			Password:      os.Getenv("REDIS_PASSWORD"),
			DB:            redisDB,
			SessionTTL:    ttl,
			EventsChannel: getenvDefault("REALTIME_CHANNEL", "labtracker:quotes"),
		},
		Payments: PaymentConfig{
			MercadoPagoAccessToken: strings.TrimSpace(os.Getenv("MERCADOPAGO_ACCESS_TOKEN")),
			MockMode:               boolEnv("PAYMENT_GATEWAY_MOCK") || boolEnv("MERCADOPAGO_MOCK"),
			TestPayerEmail:         strings.TrimSpace(os.Getenv("MERCADOPAGO_TEST_PAYER_EMAIL")),
		},
		Pricing: PricingConfig{
			AdditionalSamplePrice: samplePrice,
			AdditionalHeaderPrice: headerPrice,
		},
		CORSOrigins: listEnv("CORS_ALLOW_ORIGINS", []string{"*"}),
	}, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func intEnv(key string, def int) (int, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("config: %s: %w", key, err)
	}
	return n, nil
}

func floatEnv(key string, def float64) (float64, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("config: %s: %w", key, err)
	}
	return f, nil
}

func durationEnv(key string, def time.Duration) (time.Duration, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("config: %s: %w", key, err)
	}
	return d, nil
}

func boolEnv(key string) bool {
	switch strings.ToLower(strings.TrimSpace(os.Getenv(key))) {
	case "1", "true", "yes", "on", "mock":
		return true
	}
	return false
}

func listEnv(key string, def []string) []string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}
