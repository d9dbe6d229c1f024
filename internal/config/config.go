// Package config resolves runtime settings from the environment, with an
// optional .env file for local development.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"

	"github.com/prasetya/ujian/internal/store"
)

// Store backends.
const (
	StoreJSON   = "json"
	StoreSQLite = "sqlite"
)

// Config holds everything the binary needs to wire itself up.
type Config struct {
	// DataDir is where the flat-file store keeps its logs.
	DataDir string
	// PackagesDir is the question package directory.
	PackagesDir string

	// StoreBackend selects the result store: json (default) or sqlite.
	StoreBackend string
	// DBPath is the SQLite database file, when the sqlite backend is used.
	DBPath string

	// HTTPAddr is the listen address for `ujian serve`.
	HTTPAddr string
	// CORSOrigins are the allowed origins for the HTTP API.
	CORSOrigins []string

	// ServerURL, when set, makes the TUI talk to a remote `ujian serve`
	// instance instead of local files.
	ServerURL string
}

// Load reads .env (best-effort) and the environment.
func Load() (Config, error) {
	_ = godotenv.Load()
	return FromEnv()
}

// FromEnv builds a Config from environment variables alone.
func FromEnv() (Config, error) {
	dataDir, err := store.DefaultDataDir()
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		DataDir:      dataDir,
		PackagesDir:  envOr("UJIAN_PACKAGES_DIR", filepath.Join(dataDir, "question_packages")),
		StoreBackend: envOr("UJIAN_STORE", StoreJSON),
		DBPath:       envOr("UJIAN_DB", filepath.Join(dataDir, "ujian.db")),
		HTTPAddr:     envOr("UJIAN_HTTP_ADDR", ":8080"),
		CORSOrigins:  csvOr("UJIAN_CORS_ORIGINS", "http://localhost:3000"),
		ServerURL:    os.Getenv("UJIAN_SERVER"),
	}
	return cfg, nil
}

func envOr(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func csvOr(k, def string) []string {
	v := envOr(k, def)
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}
