package cmd

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/prasetya/ujian/internal/config"
)

var initDataCmd = &cobra.Command{
	Use:   "init-data",
	Short: "Create the data directory and seed empty data files",
	Long:  "Creates the data directory, seeds the flat-file store (or the SQLite schema), and creates the question package directory. Safe to run repeatedly; existing data is never touched.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}

		st, err := openStore(cfg)
		if err != nil {
			return err
		}
		defer st.Close()
		if err := st.Init(cmd.Context()); err != nil {
			return fmt.Errorf("init store: %w", err)
		}

		if err := os.MkdirAll(cfg.PackagesDir, 0o755); err != nil {
			return fmt.Errorf("create package dir: %w", err)
		}

		color.Green("Data directory ready: %s", cfg.DataDir)
		color.Green("Question packages:    %s", cfg.PackagesDir)
		if cfg.StoreBackend == config.StoreSQLite {
			color.Green("SQLite database:      %s", cfg.DBPath)
		}
		return nil
	},
}
