package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type MetricsConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

type Config struct {
	Server   ServerConfig           `mapstructure:"server"`
	Metrics  MetricsConfig          `mapstructure:"metrics"`
	Database DatabaseConfig         `mapstructure:"database"`
	Redis    RedisConfig            `mapstructure:"redis"`
	Lockout  LockoutConfig          `mapstructure:"lockout"`
	Threat   map[string]interface{} `mapstructure:"threat"`
}

type ServerConfig struct {
	AdminPort   int           `mapstructure:"admin_port"`
	MetricsPort int           `mapstructure:"metrics_port"`
	SecretKey   string        `mapstructure:"secret_key"`
	TokenTTL    time.Duration `mapstructure:"token_ttl"`
	ProxyHeader string        `mapstructure:"proxy_header"`

	// BootstrapAdmin seeds one administrator when the database is disabled.
	BootstrapAdminEmail    string `mapstructure:"bootstrap_admin_email"`
	BootstrapAdminPassword string `mapstructure:"bootstrap_admin_password"`
}

type DatabaseConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
}

type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	TLS      bool   `mapstructure:"tls"`
}

// LockoutConfig is read once at start. Durations expressed in minutes keep
// the names operators already set in the environment.
type LockoutConfig struct {
	MaxFailedAttempts      int           `mapstructure:"max_failed_attempts"`
	LockoutDurationMinutes int           `mapstructure:"lockout_duration_minutes"`
	AttemptWindowMinutes   int           `mapstructure:"attempt_window_minutes"`
	StorageTimeout         time.Duration `mapstructure:"storage_timeout"`
	LockWait               time.Duration `mapstructure:"lock_wait"`
	BreakerMaxFailures     uint32        `mapstructure:"breaker_max_failures"`
	BreakerTimeout         time.Duration `mapstructure:"breaker_timeout"`
	SweepInterval          time.Duration `mapstructure:"sweep_interval"`
}

func (c LockoutConfig) LockoutDuration() time.Duration {
	return time.Duration(c.LockoutDurationMinutes) * time.Minute
}

func (c LockoutConfig) AttemptWindow() time.Duration {
	return time.Duration(c.AttemptWindowMinutes) * time.Minute
}

var globalConfig Config

var (
	ErrInvalidMaxAttempts    = errors.New("lockout.max_failed_attempts must be greater than zero")
	ErrInvalidLockoutMinutes = errors.New("lockout.lockout_duration_minutes must be greater than zero")
	ErrInvalidWindowMinutes  = errors.New("lockout.attempt_window_minutes must be greater than zero")
)

// Load reads config.yaml when present and overlays the environment.
// A missing file is not an error.
func Load(configPath string) (*Config, error) {
	globalConfig = Config{}
	v := viper.New()
	setDefaultValues(v)
	if err := loadConfigFile(v, configPath, "config", &globalConfig); err != nil {
		return nil, err
	}
	if err := globalConfig.Validate(); err != nil {
		return nil, err
	}
	return &globalConfig, nil
}

func loadConfigFile(v *viper.Viper, configPath, fileName string, out interface{}) error {
	v.SetConfigName(fileName)
	v.SetConfigType("yaml")
	v.AddConfigPath(configPath)
	v.AddConfigPath("./config")
	v.AddConfigPath(".")

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return fmt.Errorf("error reading config file %s.yaml: %w", fileName, err)
		}
	}

	if err := v.Unmarshal(out); err != nil {
		return fmt.Errorf("failed to unmarshal %s config: %w", fileName, err)
	}

	return nil
}

func setDefaultValues(v *viper.Viper) {
	v.SetDefault("server.admin_port", 8080)
	v.SetDefault("server.metrics_port", 9090)
	v.SetDefault("server.secret_key", "")
	v.SetDefault("server.token_ttl", "1h")
	v.SetDefault("server.proxy_header", "")
	v.SetDefault("server.bootstrap_admin_email", "")
	v.SetDefault("server.bootstrap_admin_password", "")

	v.SetDefault("metrics.enabled", true)

	v.SetDefault("database.enabled", false)
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "")
	v.SetDefault("database.name", "authshield")
	v.SetDefault("database.sslmode", "disable")

	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.tls", false)

	v.SetDefault("lockout.max_failed_attempts", 5)
	v.SetDefault("lockout.lockout_duration_minutes", 15)
	v.SetDefault("lockout.attempt_window_minutes", 60)
	v.SetDefault("lockout.storage_timeout", "2s")
	v.SetDefault("lockout.lock_wait", "2s")
	v.SetDefault("lockout.breaker_max_failures", 5)
	v.SetDefault("lockout.breaker_timeout", "30s")
	v.SetDefault("lockout.sweep_interval", "1h")

	// Threat keys are registered so that THREAT_* variables reach the map
	// handed to threat.NewOptions.
	v.SetDefault("threat.brute_force_window", "15m")
	v.SetDefault("threat.auth_threshold", 50)
	v.SetDefault("threat.admin_threshold", 100)
	v.SetDefault("threat.default_threshold", 300)
	v.SetDefault("threat.auth_path_prefixes", []string{"/api/auth", "/auth", "/login"})
	v.SetDefault("threat.admin_path_prefixes", []string{"/api/v1/admin", "/api/admin", "/admin"})
	v.SetDefault("threat.admin_identity_markers", []string{"admin", "root", "superuser"})
	v.SetDefault("threat.stuffing_window", "1h")
	v.SetDefault("threat.stuffing_threshold", 20)
	v.SetDefault("threat.event_tally_window", "1h")
	v.SetDefault("threat.promote_after", 3)
	v.SetDefault("threat.baseline_max_age", "24h")
	v.SetDefault("threat.baseline_lookback", "720h")
	v.SetDefault("threat.baseline_lookback_max", 200)
	v.SetDefault("threat.baseline_cache_size", 10000)
	v.SetDefault("threat.unusual_hour_tolerance", 2)
	v.SetDefault("threat.block_ttl", "0s")
	v.SetDefault("threat.cleanup_interval", "1h")
	v.SetDefault("threat.max_scan_bytes", 65536)
	v.SetDefault("threat.storage_timeout", "2s")
	v.SetDefault("threat.breaker_max_failures", 5)
	v.SetDefault("threat.breaker_timeout", "30s")
}

func (c *Config) Validate() error {
	if c.Lockout.MaxFailedAttempts <= 0 {
		return ErrInvalidMaxAttempts
	}
	if c.Lockout.LockoutDurationMinutes <= 0 {
		return ErrInvalidLockoutMinutes
	}
	if c.Lockout.AttemptWindowMinutes <= 0 {
		return ErrInvalidWindowMinutes
	}
	return nil
}

func GetConfig() *Config {
	return &globalConfig
}
