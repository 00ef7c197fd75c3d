package main

import (
	"flag"
	"os"

	"github.com/arhyth/minibank"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// seedAccount is one entry in the seed file: a plaintext PIN that gets
// digested before it touches the store, plus an optional opening balance.
type seedAccount struct {
	Name    string  `yaml:"name"`
	PIN     string  `yaml:"pin"`
	Age     int     `yaml:"age"`
	VIP     bool    `yaml:"vip"`
	Balance float64 `yaml:"balance"`
}

// seeder populates an account store from a YAML fixture. Useful for demos
// and for preparing manual-test states without typing through the menus.
func main() {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()

	cfp := flag.String("config", "config.yml", "path to configuration file")
	sfp := flag.String("seed", "seed.yml", "path to seed file")
	flag.Parse()

	var cfg minibank.Config
	cfgfl, err := os.Open(*cfp)
	if err == nil {
		err = yaml.NewDecoder(cfgfl).Decode(&cfg)
		cfgfl.Close()
		if err != nil {
			logger.Fatal().Err(err).Msg("error decoding config file")
		}
	}
	cfg.ApplyDefaults()

	seedfl, err := os.Open(*sfp)
	if err != nil {
		logger.Fatal().Err(err).Msg("error opening seed file")
	}
	var seeds []seedAccount
	err = yaml.NewDecoder(seedfl).Decode(&seeds)
	seedfl.Close()
	if err != nil {
		logger.Fatal().Err(err).Msg("error decoding seed file")
	}

	store := minibank.NewJSONStore(cfg.Store.Path, &logger)
	reg, err := minibank.NewRegistry(store, &logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("error loading account store")
	}

	hasher := minibank.SHA256Hasher{}
	for _, sa := range seeds {
		name := minibank.NormalizeName(sa.Name)
		if err = minibank.ValidatePIN(sa.PIN, cfg.Auth.MinPINLength); err != nil {
			logger.Fatal().Err(err).Str("account", name).Msg("invalid seed PIN")
		}
		if _, err = reg.Register(name, hasher.Digest(sa.PIN), sa.Age, sa.VIP); err != nil {
			logger.Fatal().Err(err).Str("account", name).Msg("error seeding account")
		}
		if sa.Balance > 0 {
			svc := minibank.NewValidationMiddleware()(minibank.NewService(reg, &logger))
			if _, err = svc.Deposit(minibank.ChargeReq{
				Name:   name,
				Amount: decimal.NewFromFloat(sa.Balance),
			}); err != nil {
				logger.Fatal().Err(err).Str("account", name).Msg("error seeding balance")
			}
		}
		logger.Info().Str("account", name).Msg("account seeded")
	}
}
