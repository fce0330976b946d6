package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = "BRANDLINE"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	EnvAppEnv = "BRANDLINE_APP_ENV"
	EnvDBDSN  = "BRANDLINE_DB_DSN"
	EnvDBHost = "BRANDLINE_DB_HOST"
	EnvDBUser = "BRANDLINE_DB_USER"
	EnvDBName = "BRANDLINE_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	JWT          JWTConfig
	Admin        AdminConfig
	Password     PasswordConfig
	FeatureFlags FeatureFlagsConfig
	GCP          GCPConfig
	GCS          GCSConfig
	Media        MediaConfig
	Cart         CartConfig
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
	Env          string   `envconfig:"BRANDLINE_APP_ENV" required:"true"`
	Port         string   `envconfig:"BRANDLINE_APP_PORT" required:"true"`
	LogLevel     string   `envconfig:"BRANDLINE_LOG_LEVEL" default:"info"`
	LogWarnStack bool     `envconfig:"BRANDLINE_LOG_WARN_STACK" default:"false"`
	CORSOrigins  []string `envconfig:"BRANDLINE_CORS_ORIGINS" default:"http://localhost:3000,http://localhost:5173"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"BRANDLINE_DB_DSN"`
	Driver string `envconfig:"BRANDLINE_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"BRANDLINE_DB_HOST"`
	LegacyPort     int    `envconfig:"BRANDLINE_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"BRANDLINE_DB_USER"`
	LegacyPassword string `envconfig:"BRANDLINE_DB_PASSWORD"`
	LegacyName     string `envconfig:"BRANDLINE_DB_NAME"`
	LegacySSLMode  string `envconfig:"BRANDLINE_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"BRANDLINE_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"BRANDLINE_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"BRANDLINE_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"BRANDLINE_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"BRANDLINE_REDIS_URL"`
	Address      string        `envconfig:"BRANDLINE_REDIS_ADDR"`
	Password     string        `envconfig:"BRANDLINE_REDIS_PASSWORD"`
	DB           int           `envconfig:"BRANDLINE_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"BRANDLINE_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"BRANDLINE_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"BRANDLINE_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"BRANDLINE_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"BRANDLINE_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret            string `envconfig:"BRANDLINE_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"BRANDLINE_JWT_ISSUER" default:"brandline"`
	ExpirationMinutes int    `envconfig:"BRANDLINE_JWT_EXPIRATION_MINUTES" default:"720"`
}

// AdminConfig carries the single dashboard credential. The password is stored
// as an argon2id encoded hash, never in the clear.
type AdminConfig struct {
	Email        string `envconfig:"BRANDLINE_ADMIN_EMAIL" required:"true"`
	PasswordHash string `envconfig:"BRANDLINE_ADMIN_PASSWORD_HASH" required:"true"`
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"BRANDLINE_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"BRANDLINE_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"BRANDLINE_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"BRANDLINE_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"BRANDLINE_ARGON_KEY_LEN" default:"32"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"BRANDLINE_AUTO_MIGRATE" default:"false"`
}

type GCPConfig struct {
	ProjectID              string `envconfig:"BRANDLINE_GCP_PROJECT_ID"`
	CredentialsJSON        string `envconfig:"BRANDLINE_GCP_CREDENTIALS_JSON"`
	ApplicationCredentials string `envconfig:"BRANDLINE_GOOGLE_APPLICATION_CREDENTIALS"`
}

type GCSConfig struct {
	BucketName string `envconfig:"BRANDLINE_GCS_BUCKET_NAME" required:"true"`
	KeyPrefix  string `envconfig:"BRANDLINE_GCS_KEY_PREFIX" default:"uploads"`
}

type MediaConfig struct {
	MaxUploadMB         int `envconfig:"BRANDLINE_MAX_UPLOAD_MB" default:"10"`
	MaxImagesPerProduct int `envconfig:"BRANDLINE_MEDIA_MAX_IMAGES_PER_PRODUCT" default:"10"`
}

type CartConfig struct {
	TTL            time.Duration `envconfig:"BRANDLINE_CART_TTL" default:"720h"`
	CheckoutNumber string        `envconfig:"BRANDLINE_CART_CHECKOUT_NUMBER"`
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
