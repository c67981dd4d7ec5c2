package config

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	StoreMongo  = "mongo"
	StoreMemory = "memory"
)

type Config struct {
	Env   string
	Port  int
	Store string

	MongoURI      string
	MongoDatabase string

	AccessTokenSecret string
	TokenTTL          time.Duration

	StripeSecretKey string
	TextbeltAPIKey  string

	RedisAddr     string
	RedisPassword string

	AllowedOrigins []string
	RequestTimeout time.Duration
	RateLimitRPS   float64
	RateLimitBurst int

	LogLevel     string
	OTLPEndpoint string

	// CartTotalPerOwner limits the cart total to the updated item's owner.
	// Off by default: the total covers every cart item in the store.
	CartTotalPerOwner bool
}

// Load reads .env when present and then the process environment.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		Env:   getEnv("APP_ENV", "dev"),
		Port:  getEnvInt("PORT", 5000),
		Store: strings.ToLower(getEnv("STORE_DRIVER", StoreMongo)),

		MongoURI:      buildMongoURI(),
		MongoDatabase: getEnv("MONGO_DATABASE", "doctors_portal"),

		AccessTokenSecret: os.Getenv("ACCESS_TOKEN_SECRET"),
		TokenTTL:          getEnvDuration("TOKEN_TTL", time.Hour),

		StripeSecretKey: os.Getenv("STRIPE_SECRET_KEY"),
		TextbeltAPIKey:  os.Getenv("TEXTBELT_API_KEY"),

		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),

		AllowedOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		RequestTimeout: getEnvDuration("REQUEST_TIMEOUT", 10*time.Second),
		RateLimitRPS:   getEnvFloat("RATE_LIMIT_RPS", 20),
		RateLimitBurst: getEnvInt("RATE_LIMIT_BURST", 40),

		LogLevel:     getEnv("LOG_LEVEL", "info"),
		OTLPEndpoint: os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"),

		CartTotalPerOwner: getEnvBool("CART_TOTAL_PER_OWNER", false),
	}
}

// buildMongoURI prefers MONGO_URI and otherwise builds an Atlas SRV URI from
// DB_USER, DB_PASS and DB_HOST.
func buildMongoURI() string {
	if uri := os.Getenv("MONGO_URI"); uri != "" {
		return uri
	}
	user := os.Getenv("DB_USER")
	pass := os.Getenv("DB_PASS")
	host := getEnv("DB_HOST", "cluster0.pfepv.mongodb.net")
	if user == "" {
		return "mongodb://localhost:27017"
	}
	return fmt.Sprintf("mongodb+srv://%s:%s@%s/?retryWrites=true&w=majority",
		url.QueryEscape(user), url.QueryEscape(pass), host)
}

func (c Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

func WithTimeout(duration time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), duration)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if num, err := strconv.Atoi(v); err == nil {
			return num
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if num, err := strconv.ParseFloat(v, 64); err == nil {
			return num
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
