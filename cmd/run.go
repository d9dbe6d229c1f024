package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/prasetya/ujian/internal/api"
	"github.com/prasetya/ujian/internal/app"
	"github.com/prasetya/ujian/internal/config"
	"github.com/prasetya/ujian/internal/pack"
	"github.com/prasetya/ujian/internal/store"
)

// runApp wires the configured backends and launches the TUI. With
// UJIAN_SERVER set the app talks to a remote serve instance; otherwise it
// works on local files.
func runApp(cmd *cobra.Command) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	if cfg.ServerURL != "" {
		client := api.NewClient(cfg.ServerURL)
		return app.Run(app.Options{
			Source:    client,
			Submitter: client,
			Finder:    client,
		})
	}

	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer st.Close()
	if err := st.Init(cmd.Context()); err != nil {
		return fmt.Errorf("init store: %w", err)
	}

	return app.Run(app.Options{
		Source:    pack.NewDirSource(cfg.PackagesDir),
		Submitter: st,
		Finder:    st,
	})
}

// openStore selects the result store backend from config.
func openStore(cfg config.Config) (store.ResultStore, error) {
	switch cfg.StoreBackend {
	case config.StoreSQLite:
		st, err := store.OpenSQL(cfg.DBPath)
		if err != nil {
			return nil, fmt.Errorf("open sqlite store: %w", err)
		}
		return st, nil
	case config.StoreJSON:
		return store.NewJSONStore(cfg.DataDir), nil
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
	}
}
