// config.go
//
// Environment configuration for the vine-riddle server.
// Values come from the process environment, optionally seeded from a .env
// file in the working directory.

package main

import (
	"io/fs"
	"os"
	"strconv"
	"time"
)

type config struct {
	Port          string
	LogLevel      string
	DBPath        string // empty keeps guesses in memory
	ClueDir       string
	VisitorSecret string
	DailySalt     string
	MatchMode     string // overrides the puzzle's mode when set
	ClientOrigin  string
	AdminHash     string
	AdminTTL      time.Duration
}

func loadConfig() config {
	return config{
		Port:          getEnv("PORT", "5175"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		DBPath:        os.Getenv("DB_PATH"),
		ClueDir:       getEnv("CLUE_DIR", "assets/clues"),
		VisitorSecret: getEnv("VISITOR_SECRET", "dev_secret_change_me"),
		DailySalt:     getEnv("DAILY_SALT", "local_dev_salt"),
		MatchMode:     os.Getenv("MATCH_MODE"),
		ClientOrigin:  os.Getenv("CLIENT_ORIGIN"),
		AdminHash:     os.Getenv("ADMIN_PASSWORD_HASH"),
		AdminTTL:      time.Duration(envInt("ADMIN_TOKEN_HOURS", 12)) * time.Hour,
	}
}

// clueFS returns the clue image directory, or nil when it does not exist so
// the page falls back to placeholders.
func (c config) clueFS() fs.FS {
	if c.ClueDir == "" {
		return nil
	}
	if st, err := os.Stat(c.ClueDir); err != nil || !st.IsDir() {
		return nil
	}
	return os.DirFS(c.ClueDir)
}

func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func envInt(k string, def int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}
