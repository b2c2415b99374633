package app

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

type Config struct {
	Port   string
	AppEnv string

	StorageDriver string
	StorageDir    string
	DatabaseDSN   string

	SessionKey string
	BaseURL    string

	GroqAPIKey  string
	GroqBaseURL string
	GroqModel   string
	ChatTimeout time.Duration
	ChatAutoAdd bool

	AuthLatency           time.Duration
	FreeShippingThreshold int64
	ShippingCost          int64
	StorefrontTTL         time.Duration

	WhatsAppNumber string

	SMTPHost         string
	SMTPPort         string
	SMTPUser         string
	SMTPPass         string
	OrderNotifyEmail string
	TelegramToken    string
	TelegramChatIDs  string

	GoogleClientID     string
	GoogleClientSecret string
}

// LoadConfig lee la configuración del entorno; main carga antes el .env.
func LoadConfig() Config {
	c := Config{
		Port:                  getenv("PORT", "8080"),
		AppEnv:                strings.ToLower(os.Getenv("APP_ENV")),
		StorageDriver:         strings.ToLower(getenv("STORAGE_DRIVER", "localfs")),
		StorageDir:            getenv("STORAGE_DIR", "data"),
		DatabaseDSN:           databaseDSN(),
		SessionKey:            os.Getenv("SESSION_KEY"),
		BaseURL:               strings.TrimRight(getenv("BASE_URL", "http://localhost:8080"), "/"),
		GroqAPIKey:            os.Getenv("GROQ_API_KEY"),
		GroqBaseURL:           os.Getenv("GROQ_BASE_URL"),
		GroqModel:             os.Getenv("GROQ_MODEL"),
		ChatTimeout:           durationEnv("CHAT_TIMEOUT", 30*time.Second),
		ChatAutoAdd:           boolEnv("CHAT_AUTO_ADD", false),
		AuthLatency:           durationEnv("AUTH_LATENCY", 500*time.Millisecond),
		FreeShippingThreshold: intEnv("FREE_SHIPPING_THRESHOLD", 999),
		ShippingCost:          intEnv("SHIPPING_COST", 150),
		StorefrontTTL:         durationEnv("STOREFRONT_TTL", 30*time.Minute),
		WhatsAppNumber:        os.Getenv("WHATSAPP_NUMBER"),
		SMTPHost:              os.Getenv("SMTP_HOST"),
		SMTPPort:              os.Getenv("SMTP_PORT"),
		SMTPUser:              os.Getenv("SMTP_USER"),
		SMTPPass:              os.Getenv("SMTP_PASS"),
		OrderNotifyEmail:      os.Getenv("ORDER_NOTIFY_EMAIL"),
		TelegramToken:         os.Getenv("TELEGRAM_BOT_TOKEN"),
		TelegramChatIDs:       getenv("TELEGRAM_CHAT_IDS", os.Getenv("TELEGRAM_CHAT_ID")),
		GoogleClientID:        os.Getenv("GOOGLE_CLIENT_ID"),
		GoogleClientSecret:    os.Getenv("GOOGLE_CLIENT_SECRET"),
	}
	if c.SessionKey == "" {
		c.SessionKey = os.Getenv("SECRET_KEY")
	}
	return c
}

func (c Config) IsDev() bool {
	return c.AppEnv == "" || c.AppEnv == "development" || c.AppEnv == "dev"
}

func databaseDSN() string {
	if dsn := strings.TrimSpace(os.Getenv("DB_DSN")); dsn != "" {
		return dsn
	}
	host := getenv("DB_HOST", "localhost")
	port := getenv("DB_PORT", "5432")
	user := getenv("DB_USER", getenv("POSTGRES_USER", "postgres"))
	pass := getenv("DB_PASSWORD", getenv("POSTGRES_PASSWORD", "postgres"))
	name := getenv("DB_NAME", getenv("POSTGRES_DB", "munek"))
	ssl := getenv("DB_SSLMODE", "disable")
	return "host=" + host + " user=" + user + " password=" + pass + " dbname=" + name + " port=" + port + " sslmode=" + ssl
}

func getenv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func durationEnv(key string, def time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d < 0 {
		log.Warn().Str("var", key).Str("value", raw).Msg("duración inválida, se usa el default")
		return def
	}
	return d
}

func intEnv(key string, def int64) int64 {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || n < 0 {
		log.Warn().Str("var", key).Str("value", raw).Msg("entero inválido, se usa el default")
		return def
	}
	return n
}

func boolEnv(key string, def bool) bool {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		log.Warn().Str("var", key).Str("value", raw).Msg("booleano inválido, se usa el default")
		return def
	}
	return b
}
