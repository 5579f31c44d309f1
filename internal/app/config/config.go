package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	ServiceHost string
	ServicePort int
	Log         LogConfig
	DB          DBConfig
	Admin       AdminConfig
	JWT         JWTConfig
	Redis       RedisConfig
	Storage     StorageConfig
	Shop        ShopConfig
	Tracing     TracingConfig
}

type LogConfig struct {
	Level string
	JSON  bool
}

type DBConfig struct {
	Driver   string // postgres, mysql
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
	TimeZone string
}

// AdminConfig holds the single pair of panel credentials.
type AdminConfig struct {
	Username string
	Password string
}

type JWTConfig struct {
	Token         string
	ExpiresIn     time.Duration
	SigningMethod jwt.SigningMethod
}

type RedisConfig struct {
	Host        string
	Password    string
	Port        int
	User        string
	DialTimeout time.Duration
	ReadTimeout time.Duration
}

// Enabled reports whether a revocation list backend is configured.
func (r RedisConfig) Enabled() bool {
	return r.Host != ""
}

type StorageConfig struct {
	Driver   string // local, minio
	LocalDir string
	MinIO    MinIOConfig
}

type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

type ShopConfig struct {
	Name           string
	Contact        string
	Location       string
	Currency       string
	DefaultPayment string
}

type TracingConfig struct {
	Endpoint string
}

const (
	envDBHost   = "DB_HOST"
	envDBPort   = "DB_PORT"
	envDBUser   = "DB_USER"
	envDBPass   = "DB_PASSWORD"
	envDBName   = "DB_NAME"
	envDBDriver = "DB_DRIVER"

	envAdminUser = "ADMIN_USERNAME"
	envAdminPass = "ADMIN_PASSWORD"
	envSecret    = "SESSION_SECRET"

	envRedisHost = "REDIS_HOST"
	envRedisPort = "REDIS_PORT"
	envRedisUser = "REDIS_USER"
	envRedisPass = "REDIS_PASSWORD"

	envMinIOEndpoint = "MINIO_ENDPOINT"
	envMinIOAccess   = "MINIO_ACCESS_KEY"
	envMinIOSecret   = "MINIO_SECRET_KEY"
)

func setDefaults(v *viper.Viper) {
	v.SetDefault("ServiceHost", "0.0.0.0")
	v.SetDefault("ServicePort", 8080)
	v.SetDefault("Log.Level", "info")
	v.SetDefault("DB.Driver", "postgres")
	v.SetDefault("DB.Host", "localhost")
	v.SetDefault("DB.Port", 5432)
	v.SetDefault("DB.SSLMode", "disable")
	v.SetDefault("DB.TimeZone", "Asia/Kolkata")
	v.SetDefault("Storage.Driver", "local")
	v.SetDefault("Storage.LocalDir", "static")
	v.SetDefault("Storage.MinIO.Bucket", "shopfront")
	v.SetDefault("Shop.Name", "Mess Ranchi")
	v.SetDefault("Shop.Contact", "+918969161759")
	v.SetDefault("Shop.Location", "Asia/Kolkata")
	v.SetDefault("Shop.Currency", "₹")
	v.SetDefault("Shop.DefaultPayment", "Online")
}

func NewConfig() (*Config, error) {
	configName := "config"
	_ = godotenv.Load()
	if os.Getenv("CONFIG_NAME") != "" {
		configName = os.Getenv("CONFIG_NAME")
	}

	v := viper.New()
	v.SetConfigName(configName)
	v.SetConfigType("toml")
	v.AddConfigPath("config")
	v.AddConfigPath(".")

	return load(v)
}

// LoadFile reads the configuration from an explicit toml path.
func LoadFile(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("toml")
	return load(v)
}

func load(v *viper.Viper) (*Config, error) {
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}

	if cfg.Admin.Username == "" || cfg.Admin.Password == "" {
		return nil, fmt.Errorf("admin credentials are not configured")
	}

	secret := os.Getenv(envSecret)
	if secret == "" {
		secret = v.GetString("JWT.Token")
	}
	if secret == "" {
		return nil, fmt.Errorf("session secret is not configured")
	}
	cfg.JWT = JWTConfig{
		Token:         secret,
		ExpiresIn:     24 * time.Hour,
		SigningMethod: jwt.SigningMethodHS256,
	}

	cfg.Redis.DialTimeout = 10 * time.Second
	cfg.Redis.ReadTimeout = 10 * time.Second

	log.Info("config parsed")

	return cfg, nil
}

func applyEnv(cfg *Config) error {
	overrideString(&cfg.DB.Driver, envDBDriver)
	overrideString(&cfg.DB.Host, envDBHost)
	overrideString(&cfg.DB.User, envDBUser)
	overrideString(&cfg.DB.Password, envDBPass)
	overrideString(&cfg.DB.Name, envDBName)
	if err := overrideInt(&cfg.DB.Port, envDBPort); err != nil {
		return err
	}

	overrideString(&cfg.Admin.Username, envAdminUser)
	overrideString(&cfg.Admin.Password, envAdminPass)

	overrideString(&cfg.Redis.Host, envRedisHost)
	overrideString(&cfg.Redis.User, envRedisUser)
	overrideString(&cfg.Redis.Password, envRedisPass)
	if err := overrideInt(&cfg.Redis.Port, envRedisPort); err != nil {
		return err
	}

	overrideString(&cfg.Storage.MinIO.Endpoint, envMinIOEndpoint)
	overrideString(&cfg.Storage.MinIO.AccessKey, envMinIOAccess)
	overrideString(&cfg.Storage.MinIO.SecretKey, envMinIOSecret)

	cfg.DB.Driver = strings.ToLower(cfg.DB.Driver)
	cfg.Storage.Driver = strings.ToLower(cfg.Storage.Driver)
	return nil
}

func overrideString(dst *string, env string) {
	if v := os.Getenv(env); v != "" {
		*dst = v
	}
}

func overrideInt(dst *int, env string) error {
	v := os.Getenv(env)
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("%s must be int value: %w", strings.ToLower(env), err)
	}
	*dst = n
	return nil
}
