package main

import (
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/lettergrid/wordguess/internal/config"
	"github.com/lettergrid/wordguess/internal/database"
	"github.com/lettergrid/wordguess/internal/httpserver"
	"github.com/lettergrid/wordguess/internal/persist"
	"github.com/lettergrid/wordguess/internal/words"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	dict, err := words.New()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load word lists")
	}

	db, err := database.Open(cfg.DBPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open database")
	}
	defer db.Close()

	kv := persist.NewSQLiteKV(db)
	srv := httpserver.New(dict, kv, db, cfg)
	log.Info().Str("port", cfg.Port).Msg("starting wordguess server")
	if err := srv.Start(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}
