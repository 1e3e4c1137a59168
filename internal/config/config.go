package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type AppConfig struct {
	Port    int    `yaml:"port"`
	GinMode string `yaml:"gin_mode"`
}

type DatabaseConfig struct {
	DSN string `yaml:"dsn"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type JWTConfig struct {
	Secret     string `yaml:"secret"`
	Issuer     string `yaml:"issuer"`
	AccessTTL  string `yaml:"access_ttl"`
	RefreshTTL string `yaml:"refresh_ttl"`
}

type SessionConfig struct {
	TTL string `yaml:"ttl"`
}

// StatusStoreConfig selects where status rows come from. Backend is
// "database" for the co-located record store or "remote" for the
// hosted backend-as-a-service reached over HTTP.
type StatusStoreConfig struct {
	Backend    string `yaml:"backend"`
	BaseURL    string `yaml:"base_url"`
	Bearer     string `yaml:"bearer"`
	ServiceKey string `yaml:"service_key"`
	Timeout    string `yaml:"timeout"`
}

// CacheConfig selects the snapshot cache. Backend is "memory" for a
// single instance or "redis" when several instances must agree.
type CacheConfig struct {
	Backend string `yaml:"backend"`
	TTL     string `yaml:"ttl"`
}

type TwilioConfig struct {
	AccountSID string `yaml:"account_sid"`
	AuthToken  string `yaml:"auth_token"`
	FromNumber string `yaml:"from_number"`
}

type CasbinConfig struct {
	ModelPath string `yaml:"model_path"`
}

type ConfigFile struct {
	App         AppConfig         `yaml:"app"`
	Database    DatabaseConfig    `yaml:"database"`
	Redis       RedisConfig       `yaml:"redis"`
	JWT         JWTConfig         `yaml:"jwt"`
	Session     SessionConfig     `yaml:"session"`
	StatusStore StatusStoreConfig `yaml:"status_store"`
	Cache       CacheConfig       `yaml:"cache"`
	Twilio      TwilioConfig      `yaml:"twilio"`
	Casbin      CasbinConfig      `yaml:"casbin"`
}

type Config struct {
	Port            string
	GinMode         string
	DSN             string
	RedisAddr       string
	RedisPassword   string
	RedisDB         int
	JWTSecret       string
	JWTIssuer       string
	AccessTTL       time.Duration
	RefreshTTL      time.Duration
	SessionTTL      time.Duration
	StoreBackend    string
	StoreBaseURL    string
	StoreBearer     string
	StoreServiceKey string
	StoreTimeout    time.Duration
	CacheBackend    string
	CacheTTL        time.Duration
	TwilioSID       string
	TwilioToken     string
	TwilioFrom      string
	CasbinModelPath string
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func Load() (*Config, error) {
	configFile, err := loadConfigFile(env("ACCESSVC_CONFIG", "config/config.yml"))
	if err != nil {
		return nil, fmt.Errorf("failed to load config file: %w", err)
	}

	accTTL, err := time.ParseDuration(configFile.JWT.AccessTTL)
	if err != nil {
		return nil, fmt.Errorf("invalid JWT access TTL: %w", err)
	}

	refTTL, err := time.ParseDuration(configFile.JWT.RefreshTTL)
	if err != nil {
		return nil, fmt.Errorf("invalid JWT refresh TTL: %w", err)
	}

	sessTTL, err := time.ParseDuration(configFile.Session.TTL)
	if err != nil {
		return nil, fmt.Errorf("invalid session TTL: %w", err)
	}

	cacheTTL, err := time.ParseDuration(configFile.Cache.TTL)
	if err != nil {
		return nil, fmt.Errorf("invalid cache TTL: %w", err)
	}

	storeTimeout := 10 * time.Second
	if configFile.StatusStore.Timeout != "" {
		storeTimeout, err = time.ParseDuration(configFile.StatusStore.Timeout)
		if err != nil {
			return nil, fmt.Errorf("invalid status store timeout: %w", err)
		}
	}

	return &Config{
		Port:            fmt.Sprintf("%d", configFile.App.Port),
		GinMode:         configFile.App.GinMode,
		DSN:             env("DATABASE_DSN", configFile.Database.DSN),
		RedisAddr:       env("REDIS_ADDR", configFile.Redis.Addr),
		RedisPassword:   configFile.Redis.Password,
		RedisDB:         configFile.Redis.DB,
		JWTSecret:       env("JWT_SECRET", configFile.JWT.Secret),
		JWTIssuer:       configFile.JWT.Issuer,
		AccessTTL:       accTTL,
		RefreshTTL:      refTTL,
		SessionTTL:      sessTTL,
		StoreBackend:    configFile.StatusStore.Backend,
		StoreBaseURL:    env("STATUS_STORE_URL", configFile.StatusStore.BaseURL),
		StoreBearer:     env("STATUS_STORE_BEARER", configFile.StatusStore.Bearer),
		StoreServiceKey: env("STATUS_STORE_KEY", configFile.StatusStore.ServiceKey),
		StoreTimeout:    storeTimeout,
		CacheBackend:    configFile.Cache.Backend,
		CacheTTL:        cacheTTL,
		TwilioSID:       configFile.Twilio.AccountSID,
		TwilioToken:     configFile.Twilio.AuthToken,
		TwilioFrom:      configFile.Twilio.FromNumber,
		CasbinModelPath: configFile.Casbin.ModelPath,
	}, nil
}

func loadConfigFile(path string) (*ConfigFile, error) {
	bytes, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read config file at %s: %w", path, err)
	}

	var config ConfigFile
	if err := yaml.Unmarshal(bytes, &config); err != nil {
		return nil, fmt.Errorf("could not parse config yaml: %w", err)
	}

	return &config, nil
}
