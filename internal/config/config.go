package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App struct {
		Name string `envconfig:"APP_NAME" default:"Ohm"`
		Port int    `envconfig:"PORT" default:"8080"`
	}

	DB struct {
		Host     string `envconfig:"DB_HOST" default:"localhost"`
		Port     int    `envconfig:"DB_PORT" default:"5432"`
		User     string `envconfig:"DB_USER" default:"postgres"`
		Password string `envconfig:"DB_PASSWORD" default:""`
		Name     string `envconfig:"DB_NAME" default:"ohm"`
	}

	Server struct {
		Timeout time.Duration `envconfig:"SERVER_TIMEOUT" default:"30s"`
	}

	// Analytics carries the tuning knobs of the recommendation and insight
	// code. The defaults trade query cost against signal quality and have
	// not been benchmarked beyond "good enough for a small catalog".
	Analytics struct {
		OrderSample   int `envconfig:"ANALYTICS_ORDER_SAMPLE" default:"50"`
		CandidatePool int `envconfig:"ANALYTICS_CANDIDATE_POOL" default:"10"`
	}

	Catalog struct {
		DefaultLowStockAt int `envconfig:"CATALOG_DEFAULT_LOW_STOCK_AT" default:"3"`
	}
}

func (c *Config) ConnectionString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.DB.User, c.DB.Password, c.DB.Host, c.DB.Port, c.DB.Name)
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	return &cfg, nil
}
