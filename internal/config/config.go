package config

import (
	"fmt"

	"github.com/spf13/viper"
)

type Config struct {
	ListenAddr string `mapstructure:"LISTEN_ADDR"`
	BackendURL string `mapstructure:"BACKEND_URL"`
	RedisAddr  string `mapstructure:"REDIS_ADDR"`
	Username   string `mapstructure:"POS_USERNAME"`
	Password   string `mapstructure:"POS_PASSWORD"`
	LogLevel   string `mapstructure:"LOG_LEVEL"`
}

// Load reads pos.env from path when present and lets environment variables
// override every key.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("pos")
	v.SetConfigType("env")

	v.SetDefault("LISTEN_ADDR", ":8090")
	v.SetDefault("BACKEND_URL", "http://localhost:8086")
	v.SetDefault("REDIS_ADDR", "")
	v.SetDefault("POS_USERNAME", "")
	v.SetDefault("POS_PASSWORD", "")
	v.SetDefault("LOG_LEVEL", "info")

	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &cfg, nil
}
