package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Ledger  LedgerConfig
	HTTP    ListenConfig
	GRPC    ListenConfig
	Redis   RedisConfig
	MySQL   MySQLConfig
	Journal JournalConfig
}

// LedgerConfig points at the ledger-backed service.
type LedgerConfig struct {
	BaseURL string `mapstructure:"base_url"`
}

type ListenConfig struct {
	Addr string
}

type RedisConfig struct {
	Enabled  bool
	Addr     string
	PoolSize int `mapstructure:"pool_size"`
}

type MySQLConfig struct {
	Enabled bool
	DSN     string
}

type JournalConfig struct {
	RecentLimit int `mapstructure:"recent_limit"`
}

// Load reads configuration from file and env. Env var overrides use prefix RICETRACE_.
func Load() (Config, error) {
	v := viper.New()

	// default values
	v.SetDefault("ledger.base_url", "http://localhost:3001")
	v.SetDefault("http.addr", ":8080")
	v.SetDefault("grpc.addr", ":50051")
	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.pool_size", 100)
	v.SetDefault("mysql.enabled", false)
	v.SetDefault("mysql.dsn", "root:root@tcp(localhost:3306)/ricetrace?parseTime=true")
	v.SetDefault("journal.recent_limit", 200)

	v.SetConfigType("toml")

	cfgPath := os.Getenv("RICETRACE_CONFIG")
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "ricetrace"))
		v.AddConfigPath(".")
		v.SetConfigName("ricetrace")
	}

	v.SetEnvPrefix("RICETRACE")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgPath != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if c.Ledger.BaseURL == "" {
		return Config{}, fmt.Errorf("ledger.base_url must not be empty")
	}
	return c, nil
}
