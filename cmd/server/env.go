package main

import (
	"errors"
	"io/fs"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/minbar/internal/config"
	"github.com/Nixie-Tech-LLC/minbar/internal/logger"
)

var env *config.Config

// loadEnvironment reads an optional .env file, then MINBAR_* variables.
func loadEnvironment(debug bool) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		logger.Setup("local", debug)
		return err
	}
	logger.Setup(cfg.Env, debug)

	log.Debug().
		Str("env", cfg.Env).
		Str("provider", cfg.Provider).
		Str("default_city", cfg.DefaultCity).
		Msg("configuration loaded")
	env = cfg
	return nil
}
