package main

import (
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds environment-driven settings. The knowledge base is optional:
// with no URL configured the optimizer starts from a random population.
type Config struct {
	KB struct {
		URL       string  `env:"URL"`
		Dataset   string  `env:"DATASET" envDefault:"bookshelf"`
		Timeout   int     `env:"TIMEOUT" envDefault:"5"` // seconds
		Tolerance float64 `env:"TOLERANCE" envDefault:"0.2"`
	} `envPrefix:"KB_"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
}

func loadConfig() (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: "SHELFFORGE_"}); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) kbTimeout() time.Duration {
	return time.Duration(c.KB.Timeout) * time.Second
}
