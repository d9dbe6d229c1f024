package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "ujian",
	Short: "Timed multiple-choice tryouts in the terminal",
	Long:  "Ujian — terminal app for taking timed multiple-choice tryout tests with per-answer confidence ratings.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(initDataCmd)
	rootCmd.AddCommand(resultCmd)
	rootCmd.AddCommand(packagesCmd)
	rootCmd.AddCommand(versionCmd)
}
