package main

import (
	"errors"
	"flag"
	"os"

	"github.com/arhyth/minibank"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

func main() {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()

	var cfg minibank.Config
	cfp := flag.String("config", "config.yml", "path to configuration file")
	flag.Parse()
	cfgfl, err := os.Open(*cfp)
	if err == nil {
		err = yaml.NewDecoder(cfgfl).Decode(&cfg)
		cfgfl.Close()
		if err != nil {
			logger.Fatal().Err(err).Msg("error decoding config file")
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		logger.Fatal().Err(err).Msg("error opening config file")
	}
	cfg.ApplyDefaults()

	store := minibank.NewJSONStore(cfg.Store.Path, &logger)
	reg, err := minibank.NewRegistry(store, &logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("error loading account store")
	}

	hasher := minibank.SHA256Hasher{}
	auth := minibank.NewAuthService(reg, hasher, cfg.Auth.MaxAttempts, &logger)
	prompt := minibank.NewTerminalPrompter(cfg.Auth.MinPINLength)
	ctrl, err := minibank.NewSessionController(reg, auth, hasher, prompt, &logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("error starting session controller")
	}

	if err = ctrl.Run(); err != nil {
		logger.Fatal().Err(err).Msg("session ended with error")
	}
}
