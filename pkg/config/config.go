package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const EnvPrefix = ""

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

type Config struct {
	App          AppConfig
	Bot          BotConfig
	DB           DBConfig
	Redis        RedisConfig
	Geocode      GeocodeConfig
	Broadcast    BroadcastConfig
	FeatureFlags FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if cfg.FeatureFlags.UseSQLite {
		if cfg.DB.DSN == "" {
			cfg.DB.DSN = "file:massfit.db?_pragma=foreign_keys(1)"
		}
		return &cfg, nil
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"MASSFIT_APP_ENV" default:"dev"`
	OpsPort      string `envconfig:"MASSFIT_OPS_PORT" default:"8081"`
	LogLevel     string `envconfig:"MASSFIT_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"MASSFIT_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type BotConfig struct {
	Token             string  `envconfig:"MASSFIT_BOT_TOKEN" required:"true"`
	AdminIDs          []int64 `envconfig:"MASSFIT_ADMIN_IDS"`
	GroupID           int64   `envconfig:"MASSFIT_GROUP_ID"`
	ChannelID         int64   `envconfig:"MASSFIT_CHANNEL_ID"`
	ChannelURL        string  `envconfig:"MASSFIT_CHANNEL_URL"`
	SubscriptionCheck bool    `envconfig:"MASSFIT_ENABLE_SUBSCRIPTION_CHECK" default:"true"`
	UpdateTimeout     int     `envconfig:"MASSFIT_UPDATE_TIMEOUT_SECONDS" default:"30"`
}

// IsAdmin reports whether the Telegram user ID is in the admin list.
func (b BotConfig) IsAdmin(userID int64) bool {
	for _, id := range b.AdminIDs {
		if id == userID {
			return true
		}
	}
	return false
}

type DBConfig struct {
	DSN    string `envconfig:"MASSFIT_DB_DSN"`
	Driver string `envconfig:"MASSFIT_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"MASSFIT_DB_HOST"`
	LegacyPort     int    `envconfig:"MASSFIT_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"MASSFIT_DB_USER"`
	LegacyPassword string `envconfig:"MASSFIT_DB_PASSWORD"`
	LegacyName     string `envconfig:"MASSFIT_DB_NAME"`
	LegacySSLMode  string `envconfig:"MASSFIT_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"MASSFIT_DB_MAX_OPEN_CONNS" default:"10"`
	MaxIdleConns    int           `envconfig:"MASSFIT_DB_MAX_IDLE_CONNS" default:"5"`
	ConnMaxLifetime time.Duration `envconfig:"MASSFIT_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"MASSFIT_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"MASSFIT_REDIS_URL" required:"true"`
	Address      string        `envconfig:"MASSFIT_REDIS_ADDR"`
	Password     string        `envconfig:"MASSFIT_REDIS_PASSWORD"`
	DB           int           `envconfig:"MASSFIT_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"MASSFIT_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"MASSFIT_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"MASSFIT_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"MASSFIT_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"MASSFIT_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type GeocodeConfig struct {
	BaseURL   string        `envconfig:"MASSFIT_GEOCODE_BASE_URL" default:"https://nominatim.openstreetmap.org"`
	Language  string        `envconfig:"MASSFIT_GEOCODE_LANGUAGE" default:"uz"`
	UserAgent string        `envconfig:"MASSFIT_GEOCODE_USER_AGENT" default:"massfit-bot"`
	Timeout   time.Duration `envconfig:"MASSFIT_GEOCODE_TIMEOUT" default:"5s"`
}

type BroadcastConfig struct {
	SendDelay time.Duration `envconfig:"MASSFIT_BROADCAST_SEND_DELAY" default:"50ms"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"MASSFIT_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"MASSFIT_AUTO_MIGRATE" default:"false"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	legacyValues := map[string]string{
		"MASSFIT_DB_HOST": db.LegacyHost,
		"MASSFIT_DB_USER": db.LegacyUser,
		"MASSFIT_DB_NAME": db.LegacyName,
	}
	for _, env := range []string{"MASSFIT_DB_HOST", "MASSFIT_DB_USER", "MASSFIT_DB_NAME"} {
		if legacyValues[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either MASSFIT_DB_DSN or %s are required", strings.Join(missing, ", "))
	}

	userInfo := url.User(db.LegacyUser)
	if db.LegacyPassword != "" {
		userInfo = url.UserPassword(db.LegacyUser, db.LegacyPassword)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.LegacyHost, db.LegacyPort),
		Path:   db.LegacyName,
	}

	if db.LegacySSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.LegacySSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
