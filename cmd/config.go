package cmd

import (
	"log"

	"github.com/caarlos0/env/v10"
)

// config holds the ledger flags defaults, read from the environment.
type config struct {
	FillsFile string `env:"CBG_FILLS_FILE"`
	Token     string `env:"CBG_TOKEN"`
	Workers   int    `env:"CBG_WORKERS" envDefault:"1"`
}

func loadConfig() config {
	var cfg config
	if err := env.Parse(&cfg); err != nil {
		log.Printf("warning: ignoring environment: %v", err)
		return config{Workers: 1}
	}
	return cfg
}
