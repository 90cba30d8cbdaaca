package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"voicehub/go_backend/internal/domain/agent"
)

const (
	StoreMemory   = "memory"
	StorePostgres = "postgres"
	StoreSupabase = "supabase"
)

type Config struct {
	HTTPAddr      string
	CORSOrigins   []string
	ServiceName   string
	InternalToken string

	StoreBackend           string
	DatabaseURL            string
	MigrateOnStart         bool
	SupabaseURL            string
	SupabaseServiceRoleKey string
	SupabaseJWTSecret      string
	SupabaseJWTAudience    string

	RedisAddr    string
	KafkaBrokers []string
	KafkaTopic   string

	SMTPHost           string
	SMTPPort           int
	SMTPUser           string
	SMTPPassword       string
	MailFrom           string
	QuoteRecipients    []string
	QuoteFallbackEmail string

	TelegramBotToken string
	TelegramBaseURL  string
	ManagerChatID    string

	DemoWindow time.Duration

	LogMode string
	LogFile string
}

// Load reads the configuration through getenv, usually os.Getenv.
func Load(getenv func(string) string) (Config, error) {
	e := envReader{get: getenv}
	cfg := Config{
		HTTPAddr:      e.env("HTTP_ADDR", ":8080"),
		CORSOrigins:   splitCSV(e.env("CORS_ALLOW_ORIGINS", "*")),
		ServiceName:   e.env("SERVICE_NAME", "voicehub-api"),
		InternalToken: e.env("INTERNAL_TOKEN", ""),

		StoreBackend:           strings.ToLower(e.env("STORE_BACKEND", StorePostgres)),
		DatabaseURL:            e.env("DATABASE_URL", ""),
		SupabaseURL:            e.env("SUPABASE_URL", ""),
		SupabaseServiceRoleKey: e.env("SUPABASE_SERVICE_ROLE_KEY", ""),
		SupabaseJWTSecret:      e.mustEnv("SUPABASE_JWT_SECRET"),
		SupabaseJWTAudience:    e.env("SUPABASE_JWT_AUDIENCE", "authenticated"),

		RedisAddr:    e.env("REDIS_ADDR", ""),
		KafkaBrokers: splitCSV(e.env("KAFKA_BROKERS", "")),
		KafkaTopic:   e.env("KAFKA_TOPIC_ORDERS", agent.TopicOrderPlaced),

		SMTPHost:           e.env("SMTP_HOST", ""),
		SMTPUser:           e.env("SMTP_USER", ""),
		SMTPPassword:       e.env("SMTP_PASSWORD", ""),
		MailFrom:           e.env("MAIL_FROM", "noreply@voicehub.local"),
		QuoteRecipients:    splitCSV(e.env("QUOTE_RECIPIENTS", "")),
		QuoteFallbackEmail: e.env("QUOTE_FALLBACK_EMAIL", "hello@voicehub.local"),

		TelegramBotToken: e.env("TELEGRAM_BOT_TOKEN", ""),
		TelegramBaseURL:  e.env("TELEGRAM_BASE_URL", "https://api.telegram.org"),
		ManagerChatID:    e.env("MANAGER_CHAT_ID", ""),

		LogMode: e.env("LOG_MODE", "production"),
		LogFile: e.env("LOG_FILE", ""),
	}
	cfg.MigrateOnStart = e.boolean("MIGRATE_ON_START", false)
	cfg.SMTPPort = e.integer("SMTP_PORT", 587)
	cfg.DemoWindow = e.duration("DEMO_WINDOW", 3*time.Second)

	switch cfg.StoreBackend {
	case StoreMemory:
	case StorePostgres:
		cfg.DatabaseURL = e.mustEnv("DATABASE_URL")
	case StoreSupabase:
		cfg.SupabaseURL = e.mustEnv("SUPABASE_URL")
		cfg.SupabaseServiceRoleKey = e.mustEnv("SUPABASE_SERVICE_ROLE_KEY")
	default:
		e.errs = append(e.errs, fmt.Sprintf("STORE_BACKEND %q (want memory, postgres or supabase)", cfg.StoreBackend))
	}
	if cfg.SMTPHost != "" && len(cfg.QuoteRecipients) == 0 {
		e.errs = append(e.errs, "QUOTE_RECIPIENTS required when SMTP_HOST is set")
	}

	if len(e.errs) > 0 {
		return cfg, fmt.Errorf("config: %s", strings.Join(e.errs, "; "))
	}
	return cfg, nil
}

func MustLoad() Config {
	cfg, err := Load(os.Getenv)
	if err != nil {
		log.Fatalf("%v", err)
	}
	return cfg
}

type envReader struct {
	get  func(string) string
	errs []string
}

func (e *envReader) env(k, def string) string {
	if v := strings.TrimSpace(e.get(k)); v != "" {
		return v
	}
	return def
}

func (e *envReader) mustEnv(k string) string {
	v := strings.TrimSpace(e.get(k))
	if v == "" {
		e.errs = append(e.errs, "missing env "+k)
	}
	return v
}

func (e *envReader) integer(k string, def int) int {
	v := e.env(k, "")
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		e.errs = append(e.errs, fmt.Sprintf("%s: %v", k, err))
		return def
	}
	return n
}

func (e *envReader) boolean(k string, def bool) bool {
	v := e.env(k, "")
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		e.errs = append(e.errs, fmt.Sprintf("%s: %v", k, err))
		return def
	}
	return b
}

func (e *envReader) duration(k string, def time.Duration) time.Duration {
	v := e.env(k, "")
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		e.errs = append(e.errs, fmt.Sprintf("%s: invalid duration %q", k, v))
		return def
	}
	return d
}

func splitCSV(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}
