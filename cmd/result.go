package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/prasetya/ujian/internal/api"
	"github.com/prasetya/ujian/internal/config"
	"github.com/prasetya/ujian/internal/exam"
	"github.com/prasetya/ujian/internal/store"
)

var resultAll bool

var resultCmd = &cobra.Command{
	Use:   "result [testCode] [userID]",
	Short: "Look up a stored test result",
	Long:  "Prints the stored result for a test code and participant ID, or every stored result with --all.",
	Args:  cobra.RangeArgs(0, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}

		if resultAll {
			return listAllResults(cmd, cfg)
		}
		if len(args) != 2 {
			return errors.New("expected: ujian result <testCode> <userID>")
		}
		return showResult(cmd, cfg, args[0], args[1])
	},
}

func init() {
	resultCmd.Flags().BoolVar(&resultAll, "all", false, "List every stored result")
}

func showResult(cmd *cobra.Command, cfg config.Config, testCode, userID string) error {
	var finder store.Finder
	if cfg.ServerURL != "" {
		finder = api.NewClient(cfg.ServerURL)
	} else {
		st, err := openStore(cfg)
		if err != nil {
			return err
		}
		defer st.Close()
		finder = st
	}

	rec, err := finder.FindResult(cmd.Context(), testCode, userID)
	if err != nil {
		if errors.Is(err, store.ErrResultNotFound) {
			color.Red("No results found for this user and test code.")
			return nil
		}
		return err
	}

	color.Yellow("\nResult for %s (%s)", rec.UserName, rec.TestCode)
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Score", "Questions", "Correct", "Very confident", "Unsure", "Don't know", "Not rated", "Finished"})
	table.Append(resultRow(rec))
	table.Render()
	return nil
}

func listAllResults(cmd *cobra.Command, cfg config.Config) error {
	if cfg.ServerURL != "" {
		return errors.New("--all only works against the local store")
	}
	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	results, err := st.ListResults(cmd.Context())
	if err != nil {
		return err
	}
	if len(results) == 0 {
		color.Yellow("No results stored yet.")
		return nil
	}

	color.Yellow("\nStored results")
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Test", "Participant", "Score", "Correct", "Finished"})
	for _, rec := range results {
		table.Append([]string{
			rec.TestCode,
			rec.UserName,
			fmt.Sprintf("%.2f", rec.Score),
			fmt.Sprintf("%d/%d", rec.CorrectAnswers, rec.TotalQuestions),
			rec.EndTime.Local().Format("2006-01-02 15:04"),
		})
	}
	table.Render()
	return nil
}

func resultRow(rec exam.ResultRecord) []string {
	c := rec.ConfidenceCounts
	return []string{
		fmt.Sprintf("%.2f", rec.Score),
		fmt.Sprintf("%d", rec.TotalQuestions),
		fmt.Sprintf("%d", rec.CorrectAnswers),
		fmt.Sprintf("%d", c.VeryConfident),
		fmt.Sprintf("%d", c.Unsure),
		fmt.Sprintf("%d", c.DontKnow),
		fmt.Sprintf("%d", c.NotSpecified),
		rec.EndTime.Local().Format("2006-01-02 15:04"),
	}
}
