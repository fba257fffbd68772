package configs

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

var (
	JWTSecret        string
	PublicBaseURL    string
	CertNumberPrefix string
	SendgridAPIKey   string
	EmailFromName    string
	EmailFromAddress string
)

// =======================
// ENV LOADER
// =======================
func LoadEnv() {
	if os.Getenv("RAILWAY_ENVIRONMENT") == "" {
		if err := godotenv.Load(); err != nil {
			log.Println("⚠️ Tidak menemukan .env file, menggunakan ENV dari sistem")
		} else {
			log.Println("✅ .env file berhasil dimuat!")
		}
	} else {
		log.Println("🚀 Running in Railway, menggunakan ENV dari sistem")
	}

	JWTSecret = GetEnv("JWT_SECRET")
	PublicBaseURL = GetEnv("PUBLIC_BASE_URL", "http://localhost:3000")
	CertNumberPrefix = GetEnv("CERT_NUMBER_PREFIX", "LENTERA")
	SendgridAPIKey = GetEnv("SENDGRID_API_KEY")
	EmailFromName = GetEnv("EMAIL_FROM_NAME", "Lentera")
	EmailFromAddress = GetEnv("EMAIL_FROM_ADDRESS", "no-reply@lentera.id")

	if JWTSecret == "" {
		log.Println("❌ JWT_SECRET belum diset!")
	} else {
		log.Println("✅ JWT_SECRET berhasil dimuat.")
	}

	if SendgridAPIKey == "" {
		log.Println("⚠️ SENDGRID_API_KEY kosong — notifikasi email pakai dummy sender.")
	}
}

func GetEnv(key string, defaultValue ...string) string {
	value, exists := os.LookupEnv(key)
	if !exists && len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return value
}
