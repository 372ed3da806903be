package configs

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

var (
	JWTSecret      string
	GoogleClientID string
	UploadDir      string
	AccessTokenTTL time.Duration
)

// =======================
// ENV LOADER
// =======================
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using system ENV")
	}

	JWTSecret = GetEnv("JWT_SECRET")
	GoogleClientID = GetEnv("GOOGLE_CLIENT_ID")
	UploadDir = GetEnv("UPLOAD_DIR", "./uploads")
	AccessTokenTTL = 24 * time.Hour

	if h := GetEnv("JWT_TTL_HOURS"); h != "" {
		if n, err := strconv.Atoi(h); err == nil && n > 0 {
			AccessTokenTTL = time.Duration(n) * time.Hour
		}
	}

	if JWTSecret == "" {
		log.Println("WARNING: JWT_SECRET is not set")
	}
}

func GetEnv(key string, defaultValue ...string) string {
	value, exists := os.LookupEnv(key)
	if !exists && len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return value
}

// =======================
// SCHOOL YEAR
// =======================

// CurrentSchoolYear returns SCHOOL_YEAR from env when set, otherwise derives
// it from the clock: a school year "2025-2026" starts in June.
func CurrentSchoolYear() string {
	if sy := GetEnv("SCHOOL_YEAR"); sy != "" {
		return sy
	}
	now := time.Now()
	start := now.Year()
	if now.Month() < time.June {
		start--
	}
	return fmt.Sprintf("%d-%d", start, start+1)
}
