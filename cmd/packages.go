package cmd

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/prasetya/ujian/internal/config"
	"github.com/prasetya/ujian/internal/pack"
)

var packagesCmd = &cobra.Command{
	Use:   "packages",
	Short: "List the question packages in the package directory",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}

		infos, err := pack.NewDirSource(cfg.PackagesDir).List(cmd.Context())
		if err != nil {
			return err
		}
		if len(infos) == 0 {
			color.Yellow("No question packages in %s", cfg.PackagesDir)
			return nil
		}

		table := tablewriter.NewWriter(os.Stdout)
		table.SetHeader([]string{"Test Code", "Questions", "Status"})
		for _, info := range infos {
			status := "ok"
			questions := fmt.Sprintf("%d", info.Questions)
			if info.Err != nil {
				status = info.Err.Error()
				questions = "-"
			}
			table.Append([]string{info.TestCode, questions, status})
		}
		table.Render()
		return nil
	},
}
