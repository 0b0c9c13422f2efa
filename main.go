package main

import (
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/vine-riddle/assets"
	"github.com/robalobadob/vine-riddle/internal/httpserver"
	"github.com/robalobadob/vine-riddle/internal/match"
	"github.com/robalobadob/vine-riddle/internal/puzzle"
	"github.com/robalobadob/vine-riddle/internal/store"
)

func main() {
	_ = godotenv.Load()
	cfg := loadConfig()
	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	p, err := puzzle.FromEnv()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load puzzle")
	}

	var mode match.Mode
	if cfg.MatchMode != "" {
		if mode, err = match.ParseMode(cfg.MatchMode); err != nil {
			log.Fatal().Err(err).Msg("bad MATCH_MODE")
		}
	}

	var st store.Store
	if cfg.DBPath != "" {
		st, err = store.OpenSQLite(cfg.DBPath, assets.Migrations())
		if err != nil {
			log.Fatal().Err(err).Str("path", cfg.DBPath).Msg("failed to open database")
		}
		log.Info().Str("path", cfg.DBPath).Msg("using sqlite store")
	} else {
		st = store.NewMemoryStore()
	}
	defer st.Close()

	srv := httpserver.New(httpserver.Options{
		Puzzle:        p,
		Store:         st,
		Mode:          mode,
		Clues:         cfg.clueFS(),
		VisitorSecret: cfg.VisitorSecret,
		DailySalt:     cfg.DailySalt,
		ClientOrigin:  cfg.ClientOrigin,
		AdminHash:     cfg.AdminHash,
		AdminTTL:      cfg.AdminTTL,
	})
	log.Info().Str("port", cfg.Port).Str("puzzle", p.Title).Msg("starting vine-riddle")
	if err := srv.Start(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}
