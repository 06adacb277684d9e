package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	// EnvPrefix namespaces every environment variable the service reads.
	EnvPrefix = "DGH"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	EnvDBDSN  = "DGH_DB_DSN"
	EnvDBHost = "DGH_DB_HOST"
	EnvDBUser = "DGH_DB_USER"
	EnvDBName = "DGH_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}

type Config struct {
	App           AppConfig
	DB            DBConfig
	Redis         RedisConfig
	JWT           JWTConfig
	Password      PasswordConfig
	AuthRateLimit AuthRateLimitConfig
	FeatureFlags  FeatureFlagsConfig
	Payment       PaymentConfig
	Cleanup       CleanupConfig
	CORS          CORSConfig
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
	Env          string `envconfig:"DGH_APP_ENV" required:"true"`
	Port         string `envconfig:"DGH_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"DGH_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"DGH_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"DGH_DB_DSN"`
	Driver string `envconfig:"DGH_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"DGH_DB_HOST"`
	LegacyPort     int    `envconfig:"DGH_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"DGH_DB_USER"`
	LegacyPassword string `envconfig:"DGH_DB_PASSWORD"`
	LegacyName     string `envconfig:"DGH_DB_NAME"`
	LegacySSLMode  string `envconfig:"DGH_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"DGH_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"DGH_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"DGH_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"DGH_DB_CONN_MAX_IDLE_TIME" default:"10m"`

	PingAttempts int           `envconfig:"DGH_DB_PING_ATTEMPTS" default:"5"`
	PingBackoff  time.Duration `envconfig:"DGH_DB_PING_BACKOFF" default:"500ms"`
}

type RedisConfig struct {
	URL          string        `envconfig:"DGH_REDIS_URL" required:"true"`
	Address      string        `envconfig:"DGH_REDIS_ADDR"`
	Password     string        `envconfig:"DGH_REDIS_PASSWORD"`
	DB           int           `envconfig:"DGH_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"DGH_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"DGH_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"DGH_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"DGH_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"DGH_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret            string `envconfig:"DGH_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"DGH_JWT_ISSUER" required:"true"`
	ExpirationMinutes int    `envconfig:"DGH_JWT_EXPIRATION_MINUTES" required:"true"`
	SessionTTLMinutes int    `envconfig:"DGH_SESSION_TTL_MINUTES" default:"43200"`
}

// SessionTTL returns the Redis session lifetime configured in minutes.
func (j JWTConfig) SessionTTL() time.Duration {
	if j.SessionTTLMinutes <= 0 {
		return 0
	}
	return time.Duration(j.SessionTTLMinutes) * time.Minute
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"DGH_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"DGH_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"DGH_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"DGH_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"DGH_ARGON_KEY_LEN" default:"32"`
}

type AuthRateLimitConfig struct {
	LoginWindow        time.Duration `envconfig:"DGH_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginEmailLimit    int           `envconfig:"DGH_AUTH_RATE_LIMIT_LOGIN_EMAIL_LIMIT" default:"5"`
	LoginIPLimit       int           `envconfig:"DGH_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
	RegisterWindow     time.Duration `envconfig:"DGH_AUTH_RATE_LIMIT_REGISTER_WINDOW" default:"5m"`
	RegisterEmailLimit int           `envconfig:"DGH_AUTH_RATE_LIMIT_REGISTER_EMAIL_LIMIT" default:"3"`
	RegisterIPLimit    int           `envconfig:"DGH_AUTH_RATE_LIMIT_REGISTER_IP_LIMIT" default:"20"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"DGH_AUTO_MIGRATE" default:"false"`
}

type PaymentConfig struct {
	KeyID         string `envconfig:"DGH_PAYMENT_KEY_ID"`
	WebhookSecret string `envconfig:"DGH_PAYMENT_WEBHOOK_SECRET"`
	Currency      string `envconfig:"DGH_PAYMENT_CURRENCY" default:"INR"`
}

type CleanupConfig struct {
	// PreservedEmails survive clear-all-data regardless of role.
	PreservedEmails []string `envconfig:"DGH_CLEANUP_PRESERVED_EMAILS" default:"admin@example.com,admin@test.com,admin@dogoodhub.com"`
}

type CORSConfig struct {
	AllowedOrigins []string `envconfig:"DGH_CORS_ALLOWED_ORIGINS" default:"http://localhost:3000,http://localhost:5173"`
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
