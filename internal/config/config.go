package config

import (
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

type AppCfg struct {
	Env, Port, BaseURL, LogLevel string
}

type DBCfg struct{ DSN string }

type RedisCfg struct {
	Addr     string
	ListTTL  time.Duration
	Password string
	DB       int
}

type SeedCfg struct {
	Enabled bool
	Count   int
}

type HTTPCfg struct {
	AllowedOrigins []string
}

type UICfg struct {
	MaxVisiblePages int
}

type ClientCfg struct {
	APIURL     string
	Timeout    time.Duration
	MaxRetries int
}

type Cfg struct {
	App    AppCfg
	DB     DBCfg
	Redis  RedisCfg
	Seed   SeedCfg
	HTTP   HTTPCfg
	UI     UICfg
	Client ClientCfg
}

// Load reads configuration from .env (when present) and the process
// environment, filling in defaults.
func Load() Cfg {
	// 1) Load .env into process env (if file exists); real env wins
	_ = godotenv.Load(".env")

	// 2) Read from env via viper
	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)

	cfg := FromViper(v)

	// 3) Fail fast on invalid settings
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	return cfg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_ENV", "dev")
	v.SetDefault("APP_PORT", "8080")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("DB_DSN", "")
	v.SetDefault("REDIS_ADDR", "")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("LIST_CACHE_TTL", "30s")
	v.SetDefault("APP_SEED", false)
	v.SetDefault("APP_SEED_COUNT", 200)
	v.SetDefault("CORS_ALLOWED_ORIGINS", "")
	v.SetDefault("UI_MAX_VISIBLE_PAGES", 4)
	v.SetDefault("ASSETS_API_URL", "http://localhost:8080")
	v.SetDefault("ASSETS_API_TIMEOUT", "10s")
	v.SetDefault("ASSETS_API_RETRIES", 3)
}

// FromViper maps an already populated viper instance into Cfg.
func FromViper(v *viper.Viper) Cfg {
	return Cfg{
		App: AppCfg{
			Env:      strings.ToLower(strings.TrimSpace(v.GetString("APP_ENV"))),
			Port:     v.GetString("APP_PORT"),
			BaseURL:  v.GetString("APP_BASE_URL"),
			LogLevel: v.GetString("LOG_LEVEL"),
		},
		DB: DBCfg{DSN: strings.TrimSpace(v.GetString("DB_DSN"))},
		Redis: RedisCfg{
			Addr:     strings.TrimSpace(v.GetString("REDIS_ADDR")),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
			ListTTL:  v.GetDuration("LIST_CACHE_TTL"),
		},
		Seed: SeedCfg{
			Enabled: v.GetBool("APP_SEED"),
			Count:   v.GetInt("APP_SEED_COUNT"),
		},
		HTTP: HTTPCfg{AllowedOrigins: ParseCSV(v.GetString("CORS_ALLOWED_ORIGINS"))},
		UI:   UICfg{MaxVisiblePages: v.GetInt("UI_MAX_VISIBLE_PAGES")},
		Client: ClientCfg{
			APIURL:     strings.TrimRight(strings.TrimSpace(v.GetString("ASSETS_API_URL")), "/"),
			Timeout:    v.GetDuration("ASSETS_API_TIMEOUT"),
			MaxRetries: v.GetInt("ASSETS_API_RETRIES"),
		},
	}
}

// Validate reports the first setting that cannot be used.
func (c Cfg) Validate() error {
	if c.App.Port == "" {
		return &Error{Key: "APP_PORT", Message: "is required"}
	}
	if c.Seed.Count < 0 {
		return &Error{Key: "APP_SEED_COUNT", Message: "must be >= 0"}
	}
	if c.UI.MaxVisiblePages < 1 {
		return &Error{Key: "UI_MAX_VISIBLE_PAGES", Message: "must be >= 1"}
	}
	if c.Redis.Addr != "" && c.Redis.ListTTL <= 0 {
		return &Error{Key: "LIST_CACHE_TTL", Message: "must be positive when REDIS_ADDR is set"}
	}
	return nil
}

// ParseCSV splits a comma separated list, trimming blanks and duplicates.
func ParseCSV(raw string) []string {
	var out []string
	seen := map[string]bool{}
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" || seen[part] {
			continue
		}
		seen[part] = true
		out = append(out, part)
	}
	return out
}

// Error is an invalid configuration value.
type Error struct {
	Key     string
	Message string
}

func (e *Error) Error() string {
	return e.Key + " " + e.Message
}
