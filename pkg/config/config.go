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
	Session       SessionConfig
	Password      PasswordConfig
	AuthRateLimit AuthRateLimitConfig
	Catalog       CatalogConfig
	FeatureFlags  FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if cfg.FeatureFlags.UseSQLite {
		cfg.DB.Driver = DBDriverSQLite
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"BEAUTYSHELF_APP_ENV" required:"true"`
	Port         string `envconfig:"BEAUTYSHELF_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"BEAUTYSHELF_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"BEAUTYSHELF_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"BEAUTYSHELF_DB_DSN"`
	Driver string `envconfig:"BEAUTYSHELF_DB_DRIVER" default:"postgres"`

	Host     string `envconfig:"BEAUTYSHELF_DB_HOST"`
	Port     int    `envconfig:"BEAUTYSHELF_DB_PORT" default:"5432"`
	User     string `envconfig:"BEAUTYSHELF_DB_USER"`
	Password string `envconfig:"BEAUTYSHELF_DB_PASSWORD"`
	Name     string `envconfig:"BEAUTYSHELF_DB_NAME"`
	SSLMode  string `envconfig:"BEAUTYSHELF_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"BEAUTYSHELF_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"BEAUTYSHELF_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"BEAUTYSHELF_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"BEAUTYSHELF_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"BEAUTYSHELF_REDIS_URL" required:"true"`
	Password     string        `envconfig:"BEAUTYSHELF_REDIS_PASSWORD"`
	DB           int           `envconfig:"BEAUTYSHELF_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"BEAUTYSHELF_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"BEAUTYSHELF_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"BEAUTYSHELF_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"BEAUTYSHELF_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"BEAUTYSHELF_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// SessionConfig governs the signed session cookie and its Redis-backed
// revocation entries.
type SessionConfig struct {
	Secret     string `envconfig:"BEAUTYSHELF_SESSION_SECRET" required:"true"`
	Issuer     string `envconfig:"BEAUTYSHELF_SESSION_ISSUER" default:"beautyshelf"`
	CookieName string `envconfig:"BEAUTYSHELF_SESSION_COOKIE" default:"bs_session"`
	TTLMinutes int    `envconfig:"BEAUTYSHELF_SESSION_TTL_MINUTES" default:"10080"`
	Secure     bool   `envconfig:"BEAUTYSHELF_SESSION_SECURE" default:"false"`
}

// TTL returns the session lifetime configured in minutes.
func (s SessionConfig) TTL() time.Duration {
	if s.TTLMinutes <= 0 {
		return 0
	}
	return time.Duration(s.TTLMinutes) * time.Minute
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"BEAUTYSHELF_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"BEAUTYSHELF_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"BEAUTYSHELF_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"BEAUTYSHELF_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"BEAUTYSHELF_ARGON_KEY_LEN" default:"32"`
}

type AuthRateLimitConfig struct {
	LoginWindow     time.Duration `envconfig:"BEAUTYSHELF_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginUserLimit  int           `envconfig:"BEAUTYSHELF_AUTH_RATE_LIMIT_LOGIN_USER_LIMIT" default:"5"`
	LoginIPLimit    int           `envconfig:"BEAUTYSHELF_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
	SignupWindow    time.Duration `envconfig:"BEAUTYSHELF_AUTH_RATE_LIMIT_SIGNUP_WINDOW" default:"5m"`
	SignupUserLimit int           `envconfig:"BEAUTYSHELF_AUTH_RATE_LIMIT_SIGNUP_USER_LIMIT" default:"3"`
	SignupIPLimit   int           `envconfig:"BEAUTYSHELF_AUTH_RATE_LIMIT_SIGNUP_IP_LIMIT" default:"20"`
}

// CatalogConfig configures the third-party cosmetics catalog client.
type CatalogConfig struct {
	BaseURL    string        `envconfig:"BEAUTYSHELF_CATALOG_BASE_URL" default:"http://makeup-api.herokuapp.com/api/v1"`
	Timeout    time.Duration `envconfig:"BEAUTYSHELF_CATALOG_TIMEOUT" default:"5s"`
	MaxRetries int           `envconfig:"BEAUTYSHELF_CATALOG_MAX_RETRIES" default:"2"`
	RetryDelay time.Duration `envconfig:"BEAUTYSHELF_CATALOG_RETRY_DELAY" default:"200ms"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"BEAUTYSHELF_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"BEAUTYSHELF_AUTO_MIGRATE" default:"false"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	if db.Driver == DBDriverSQLite {
		db.DSN = DefaultSQLiteDSN
		return nil
	}

	missing := []string{}
	values := map[string]string{
		EnvDBHost: db.Host,
		EnvDBUser: db.User,
		EnvDBName: db.Name,
	}
	for _, env := range requiredDBEnvVars {
		if values[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.User)
	if db.Password != "" {
		userInfo = url.UserPassword(db.User, db.Password)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.Host, db.Port),
		Path:   db.Name,
	}

	if db.SSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.SSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
