package config

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

const (
	ORIGIN   = "http://localhost:5173"
	MONGO_DB = "LinguaDev"

	AVATAR_BUCKET         = "avatars-dev"
	MAX_AVATAR_BYTES      = 1 << 20
	EMAIL_FROM            = "no-reply@lingua.app"
	REPORT_INBOX          = "reports@lingua.app"
	REPORT_EMAIL_COOLDOWN = 10 * time.Minute

	DEFAULT_MAX_HEARTS    = 5
	DEFAULT_HEART_COST    = 500 // gems per heart
	DEFAULT_GEMS_ON_JOIN  = 100
	IDEMPOTENCY_KEY_TTL   = 24 * time.Hour
	CHECKOUT_SESSION_TTL  = 30 * time.Minute
	USER_PURCHASE_HISTORY = 100 // max records returned per list call
)

type EnvVars struct {
	AWS_ACCESS_KEY_ID     string
	AWS_SECRET_ACCESS_KEY string
	S3_ACCESS_KEY         string
	S3_SECRET_KEY         string
	S3_API_ENDPOINT       string
	MONGO_PASSWORD        string
	REDIS_PASSWORD        string
	JWT_SECRET            string
	STRIPE_SECRET_KEY     string
	SES_REGION            string
	SES_VERIFIED_SENDER   string
}

var ENV *EnvVars

func init() {

	prod := os.Getenv("ENV") == "prod"

	// a missing .env is fine, env vars may already be set (or absent, as
	// in test binaries that never dial a service)
	if !prod {
		if err := godotenv.Load(); err != nil {
			log.Println("no .env file loaded:", err)
		}
	}

	ENV = &EnvVars{
		AWS_ACCESS_KEY_ID:     os.Getenv("AWS_ACCESS_KEY_ID"),
		AWS_SECRET_ACCESS_KEY: os.Getenv("AWS_SECRET_ACCESS_KEY"),
		S3_ACCESS_KEY:         os.Getenv("S3_ACCESS_KEY"),
		S3_SECRET_KEY:         os.Getenv("S3_SECRET_KEY"),
		S3_API_ENDPOINT:       os.Getenv("S3_API_ENDPOINT"),
		MONGO_PASSWORD:        os.Getenv("MONGO_PASSWORD"),
		REDIS_PASSWORD:        os.Getenv("REDIS_PASSWORD"),
		JWT_SECRET:            os.Getenv("JWT_SECRET"),
		STRIPE_SECRET_KEY:     os.Getenv("STRIPE_SECRET_KEY"),
		SES_REGION:            os.Getenv("SES_REGION"),
		SES_VERIFIED_SENDER:   os.Getenv("SES_VERIFIED_SENDER"),
	}

}
