package utils

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Catalog sources selectable with CATALOG_SOURCE
const (
	SourceStatic = "static"
	SourceFile   = "file"
	SourceMongo  = "mongo"
	SourceRemote = "remote"
)

// Config holds the service settings read from the environment
type Config struct {
	Port      string
	LogLevel  string
	LogFormat string

	CatalogSource string
	CatalogFile   string
	MongoURI      string
	MongoDatabase string
	RemoteAPIURL  string
	RemoteTimeout time.Duration

	ShippingFlatRate decimal.Decimal

	SessionSecret   string
	SessionTTL      time.Duration
	SessionTokenTTL time.Duration

	EmailProvider    string
	PostmarkAPIToken string
	SendgridAPIKey   string
	EmailSender      string
	ContactRecipient string
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PORT", "8000")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
	v.SetDefault("CATALOG_SOURCE", SourceStatic)
	v.SetDefault("CATALOG_FILE", "catalog.yaml")
	v.SetDefault("MONGO_URI", "mongodb://localhost:27017")
	v.SetDefault("MONGO_DATABASE", "storefront")
	v.SetDefault("REMOTE_API_URL", "http://localhost:8000")
	v.SetDefault("REMOTE_TIMEOUT", "10s")
	v.SetDefault("SHIPPING_FLAT_RATE", "4.99")
	v.SetDefault("SESSION_SECRET", "")
	v.SetDefault("SESSION_TTL", "30m")
	v.SetDefault("SESSION_TOKEN_TTL", "24h")
	v.SetDefault("EMAIL_PROVIDER", "")
	v.SetDefault("POSTMARK_API_TOKEN", "")
	v.SetDefault("SENDGRID_API_KEY", "")
	v.SetDefault("EMAIL_SENDER", "")
	v.SetDefault("CONTACT_RECIPIENT", "")
}

// LoadConfig loads a .env file if one exists and then reads the environment.
// Variables already set in the environment win over the .env file.
func LoadConfig(envFiles ...string) (Config, error) {
	// a missing .env file is normal outside development
	_ = godotenv.Load(envFiles...)

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()
	return configFrom(v)
}

func configFrom(v *viper.Viper) (Config, error) {
	cfg := Config{
		Port:             v.GetString("PORT"),
		LogLevel:         v.GetString("LOG_LEVEL"),
		LogFormat:        v.GetString("LOG_FORMAT"),
		CatalogSource:    strings.ToLower(v.GetString("CATALOG_SOURCE")),
		CatalogFile:      v.GetString("CATALOG_FILE"),
		MongoURI:         v.GetString("MONGO_URI"),
		MongoDatabase:    v.GetString("MONGO_DATABASE"),
		RemoteAPIURL:     v.GetString("REMOTE_API_URL"),
		SessionSecret:    v.GetString("SESSION_SECRET"),
		EmailProvider:    strings.ToLower(v.GetString("EMAIL_PROVIDER")),
		PostmarkAPIToken: v.GetString("POSTMARK_API_TOKEN"),
		SendgridAPIKey:   v.GetString("SENDGRID_API_KEY"),
		EmailSender:      v.GetString("EMAIL_SENDER"),
		ContactRecipient: v.GetString("CONTACT_RECIPIENT"),
	}

	switch cfg.CatalogSource {
	case SourceStatic, SourceFile, SourceMongo, SourceRemote:
	default:
		return Config{}, fmt.Errorf("unknown CATALOG_SOURCE %q", cfg.CatalogSource)
	}

	rate, err := decimal.NewFromString(v.GetString("SHIPPING_FLAT_RATE"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid SHIPPING_FLAT_RATE: %w", err)
	}
	if rate.IsNegative() {
		return Config{}, fmt.Errorf("invalid SHIPPING_FLAT_RATE: %s is negative", rate)
	}
	cfg.ShippingFlatRate = rate

	if cfg.RemoteTimeout, err = time.ParseDuration(v.GetString("REMOTE_TIMEOUT")); err != nil {
		return Config{}, fmt.Errorf("invalid REMOTE_TIMEOUT: %w", err)
	}
	if cfg.SessionTTL, err = time.ParseDuration(v.GetString("SESSION_TTL")); err != nil {
		return Config{}, fmt.Errorf("invalid SESSION_TTL: %w", err)
	}
	if cfg.SessionTokenTTL, err = time.ParseDuration(v.GetString("SESSION_TOKEN_TTL")); err != nil {
		return Config{}, fmt.Errorf("invalid SESSION_TOKEN_TTL: %w", err)
	}
	return cfg, nil
}
