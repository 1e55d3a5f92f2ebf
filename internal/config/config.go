package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App struct {
		Name string `envconfig:"APP_NAME" default:"Wari"`
		Port int    `envconfig:"PORT" default:"8080"`
	}

	Data struct {
		Path string `envconfig:"DATA_PATH" default:"data/wari.db"`
	}

	Server struct {
		Timeout        time.Duration `envconfig:"SERVER_TIMEOUT" default:"30s"`
		AllowedOrigins []string      `envconfig:"ALLOWED_ORIGINS" default:"http://localhost:*"`
	}

	Export struct {
		Dir string `envconfig:"EXPORT_DIR" default:"exports"`
	}
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	return &cfg, nil
}
