package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	Orders       OrdersConfig
	Catalog      CatalogConfig
	FeatureFlags FeatureFlagsConfig
	CORS         CORSConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"CHARM_APP_ENV" required:"true"`
	Port         string `envconfig:"CHARM_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"CHARM_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"CHARM_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN string `envconfig:"CHARM_DB_DSN"`

	LegacyHost     string `envconfig:"CHARM_DB_HOST"`
	LegacyPort     int    `envconfig:"CHARM_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"CHARM_DB_USER"`
	LegacyPassword string `envconfig:"CHARM_DB_PASSWORD"`
	LegacyName     string `envconfig:"CHARM_DB_NAME"`
	LegacySSLMode  string `envconfig:"CHARM_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"CHARM_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"CHARM_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"CHARM_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"CHARM_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"CHARM_REDIS_URL" required:"true"`
	Address      string        `envconfig:"CHARM_REDIS_ADDR"`
	Password     string        `envconfig:"CHARM_REDIS_PASSWORD"`
	DB           int           `envconfig:"CHARM_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"CHARM_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"CHARM_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"CHARM_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"CHARM_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"CHARM_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type OrdersConfig struct {
	DefaultPaymentMethod string `envconfig:"CHARM_ORDERS_DEFAULT_PAYMENT_METHOD" default:"cash_on_delivery"`
}

type CatalogConfig struct {
	SlugMaxAttempts int `envconfig:"CHARM_CATALOG_SLUG_MAX_ATTEMPTS" default:"3"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"CHARM_AUTO_MIGRATE" default:"false"`
}

type CORSConfig struct {
	AllowedOrigins []string `envconfig:"CHARM_CORS_ALLOWED_ORIGINS" default:"http://localhost:3000"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	legacyValues := map[string]string{
		EnvDBHost: db.LegacyHost,
		EnvDBUser: db.LegacyUser,
		EnvDBName: db.LegacyName,
	}
	for _, env := range legacyDBEnvVars {
		if legacyValues[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
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
