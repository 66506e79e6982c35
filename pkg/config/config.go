package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App           AppConfig
	DB            DBConfig
	Redis         RedisConfig
	JWT           JWTConfig
	Password      PasswordConfig
	AuthRateLimit AuthRateLimitConfig
	FeatureFlags  FeatureFlagsConfig
	Storefront    StorefrontConfig
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
	Env          string `envconfig:"UNICART_APP_ENV" required:"true"`
	Port         string `envconfig:"UNICART_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"UNICART_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"UNICART_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"UNICART_DB_DSN"`
	Driver string `envconfig:"UNICART_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"UNICART_DB_HOST"`
	LegacyPort     int    `envconfig:"UNICART_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"UNICART_DB_USER"`
	LegacyPassword string `envconfig:"UNICART_DB_PASSWORD"`
	LegacyName     string `envconfig:"UNICART_DB_NAME"`
	LegacySSLMode  string `envconfig:"UNICART_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"UNICART_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"UNICART_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"UNICART_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"UNICART_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"UNICART_REDIS_URL" required:"true"`
	Address      string        `envconfig:"UNICART_REDIS_ADDR"`
	Password     string        `envconfig:"UNICART_REDIS_PASSWORD"`
	DB           int           `envconfig:"UNICART_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"UNICART_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"UNICART_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"UNICART_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"UNICART_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"UNICART_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret            string `envconfig:"UNICART_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"UNICART_JWT_ISSUER" required:"true"`
	ExpirationMinutes int    `envconfig:"UNICART_JWT_EXPIRATION_MINUTES" required:"true"`
	SessionTTLMinutes int    `envconfig:"UNICART_SESSION_TTL_MINUTES" default:"43200"`
}

// SessionTTL returns the server-side session lifetime.
func (j JWTConfig) SessionTTL() time.Duration {
	if j.SessionTTLMinutes <= 0 {
		return 0
	}
	return time.Duration(j.SessionTTLMinutes) * time.Minute
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"UNICART_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"UNICART_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"UNICART_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"UNICART_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"UNICART_ARGON_KEY_LEN" default:"32"`
}

type AuthRateLimitConfig struct {
	LoginWindow        time.Duration `envconfig:"UNICART_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginEmailLimit    int           `envconfig:"UNICART_AUTH_RATE_LIMIT_LOGIN_EMAIL_LIMIT" default:"5"`
	LoginIPLimit       int           `envconfig:"UNICART_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
	RegisterWindow     time.Duration `envconfig:"UNICART_AUTH_RATE_LIMIT_REGISTER_WINDOW" default:"5m"`
	RegisterEmailLimit int           `envconfig:"UNICART_AUTH_RATE_LIMIT_REGISTER_EMAIL_LIMIT" default:"3"`
	RegisterIPLimit    int           `envconfig:"UNICART_AUTH_RATE_LIMIT_REGISTER_IP_LIMIT" default:"20"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"UNICART_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"UNICART_AUTO_MIGRATE" default:"false"`
	SeedAdmin   bool `envconfig:"UNICART_SEED_ADMIN" default:"false"`
}

// StorefrontConfig carries the pricing and identity constants shared with the
// client stores.
type StorefrontConfig struct {
	FreeShippingThresholdCents int64  `envconfig:"UNICART_FREE_SHIPPING_THRESHOLD_CENTS" default:"10000"`
	ShippingFlatFeeCents       int64  `envconfig:"UNICART_SHIPPING_FLAT_FEE_CENTS" default:"999"`
	TaxRateBps                 int64  `envconfig:"UNICART_TAX_RATE_BPS" default:"800"`
	AdminEmail                 string `envconfig:"UNICART_ADMIN_EMAIL" default:"admin@example.com"`
	AdminPassword              string `envconfig:"UNICART_ADMIN_PASSWORD" default:"Admin@123"`
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
