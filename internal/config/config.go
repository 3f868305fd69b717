package config

import (
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	AppPort string `mapstructure:"app_port"`

	// DBDriver is "mysql" or "sqlite".
	DBDriver   string `mapstructure:"db_driver"`
	SQLitePath string `mapstructure:"sqlite_path"`

	MySQLHost string `mapstructure:"mysql_host"`
	MySQLPort string `mapstructure:"mysql_port"`
	MySQLDB   string `mapstructure:"mysql_db"`
	MySQLUser string `mapstructure:"mysql_user"`
	MySQLPass string `mapstructure:"mysql_pass"`

	RedisAddr     string `mapstructure:"redis_addr"`
	RedisPassword string `mapstructure:"redis_password"`
	RedisDB       int    `mapstructure:"redis_db"`

	IdempTTLSecs int `mapstructure:"idempotency_ttl_seconds"`

	ApprovalMaxRetries   int           `mapstructure:"approval_max_retries"`
	ApprovalRetryBackoff time.Duration `mapstructure:"approval_retry_backoff"`

	LedgerQueueKey         string        `mapstructure:"ledger_queue_key"`
	LedgerRetryMaxAttempts int           `mapstructure:"ledger_retry_max_attempts"`
	LedgerRetryPopTimeout  time.Duration `mapstructure:"ledger_retry_pop_timeout"`

	LogLevel  string `mapstructure:"log_level"`
	LogFormat string `mapstructure:"log_format"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app_port", "8080")

	v.SetDefault("db_driver", "mysql")
	v.SetDefault("sqlite_path", "data/eventflow.db")
	v.SetDefault("mysql_host", "mysql")
	v.SetDefault("mysql_port", "3306")
	v.SetDefault("mysql_db", "eventflow")
	v.SetDefault("mysql_user", "eventflow")
	v.SetDefault("mysql_pass", "eventflow")

	v.SetDefault("redis_addr", "redis:6379")
	v.SetDefault("redis_password", "")
	v.SetDefault("redis_db", 0)

	v.SetDefault("idempotency_ttl_seconds", 300)

	v.SetDefault("approval_max_retries", 3)
	v.SetDefault("approval_retry_backoff", 25*time.Millisecond)

	v.SetDefault("ledger_queue_key", "ledger:retry")
	v.SetDefault("ledger_retry_max_attempts", 5)
	v.SetDefault("ledger_retry_pop_timeout", 5*time.Second)

	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "json")
}

// Load reads configuration from the environment; every key maps to its
// upper-case env var (app_port -> APP_PORT).
func Load() (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return &c, nil
}

func (c *Config) Validate() error {
	if c.AppPort == "" {
		return errors.New("missing APP_PORT")
	}
	switch c.DBDriver {
	case "mysql":
		if c.MySQLHost == "" || c.MySQLPort == "" || c.MySQLDB == "" || c.MySQLUser == "" {
			return errors.New("missing MySQL config (MYSQL_HOST/PORT/DB/USER)")
		}
		// ensure port is valid
		if _, err := net.LookupPort("tcp", c.MySQLPort); err != nil {
			return fmt.Errorf("invalid MYSQL_PORT %q: %w", c.MySQLPort, err)
		}
	case "sqlite":
		if c.SQLitePath == "" {
			return errors.New("missing SQLITE_PATH")
		}
	default:
		return fmt.Errorf("invalid DB_DRIVER %q (want mysql or sqlite)", c.DBDriver)
	}
	if c.RedisAddr == "" {
		return errors.New("missing REDIS_ADDR")
	}
	if c.ApprovalMaxRetries < 0 {
		return fmt.Errorf("APPROVAL_MAX_RETRIES must be >= 0, got %d", c.ApprovalMaxRetries)
	}
	if c.LedgerRetryMaxAttempts <= 0 {
		return fmt.Errorf("LEDGER_RETRY_MAX_ATTEMPTS must be > 0, got %d", c.LedgerRetryMaxAttempts)
	}
	return nil
}

func (c *Config) mysqlAddr() string { return net.JoinHostPort(c.MySQLHost, c.MySQLPort) }

func (c *Config) MySQLDSN() string {
	// parseTime needed for DATETIME
	return fmt.Sprintf("%s:%s@tcp(%s)/%s?parseTime=true&charset=utf8mb4,utf8&loc=UTC",
		c.MySQLUser, c.MySQLPass, c.mysqlAddr(), c.MySQLDB)
}

// DSN returns the connection string for the configured driver.
func (c *Config) DSN() string {
	if c.DBDriver == "sqlite" {
		return c.SQLitePath
	}
	return c.MySQLDSN()
}

func (c *Config) IdempotencyTTL() time.Duration {
	return time.Duration(c.IdempTTLSecs) * time.Second
}
