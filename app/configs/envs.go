package configs

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type ENV struct {
	AppName  string
	AppEnv   string
	AppURL   string
	Port     string
	LogLevel string

	DBHost     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPort     string

	RedisURL string

	JWTSecret          string
	AccessTokenMinutes int
	RefreshTokenDays   int

	TaxPercent string

	EmailHost     string
	EmailPort     string
	EmailUsername string
	EmailPassword string
	EmailFrom     string

	MidtransServerKey string
	MidtransClientKey string
}

func LoadEnv() ENV {

	if err := godotenv.Load(".env"); err != nil {
		log.Println("Warning: No .env file found")
	}

	return ENV{
		AppName:  getEnv("APP_NAME", "bulan-api"),
		AppEnv:   getEnv("APP_ENV", "development"),
		AppURL:   getEnv("APP_URL", "http://localhost:8080"),
		Port:     getEnv("APP_PORT", ":8080"),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		DBHost:     os.Getenv("DB_HOST"),
		DBUser:     os.Getenv("DB_USER"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     os.Getenv("DB_NAME"),
		DBPort:     getEnv("DB_PORT", "3306"),

		RedisURL: os.Getenv("REDIS_URL"),

		JWTSecret:          os.Getenv("JWT_SECRET"),
		AccessTokenMinutes: getEnvInt("ACCESS_TOKEN_EXPIRE_MINUTES", 15),
		RefreshTokenDays:   getEnvInt("REFRESH_TOKEN_EXPIRE_DAYS", 7),

		TaxPercent: getEnv("TAX_PERCENT", "11"),

		EmailHost:     os.Getenv("EMAIL_HOST"),
		EmailPort:     os.Getenv("EMAIL_PORT"),
		EmailUsername: os.Getenv("EMAIL_USERNAME"),
		EmailPassword: os.Getenv("EMAIL_PASSWORD"),
		EmailFrom:     getEnv("EMAIL_FROM", os.Getenv("EMAIL_USERNAME")),

		MidtransServerKey: os.Getenv("MIDTRANS_SERVER_KEY"),
		MidtransClientKey: os.Getenv("MIDTRANS_CLIENT_KEY"),
	}
}

func (e ENV) AccessTokenExpiry() time.Duration {
	return time.Duration(e.AccessTokenMinutes) * time.Minute
}

func (e ENV) RefreshTokenExpiry() time.Duration {
	return time.Duration(e.RefreshTokenDays) * 24 * time.Hour
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("Warning: %s is not a number, using default %d", key, fallback)
		return fallback
	}
	return n
}

var LoadENV = LoadEnv()
