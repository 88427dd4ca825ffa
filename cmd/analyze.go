package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"civiclens/internal/util"
)

// analyzeTextCmd runs the full text pipeline once and prints the result,
// useful for poking at the scoring engine without starting the server.
var analyzeTextCmd = &cobra.Command{
	Use:   "analyze-text [text]",
	Short: "Analyze a complaint text from the command line",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		appInstance, err := GetAppFromContext(cmd.Context())
		if err != nil {
			return err
		}
		defer appInstance.Close()

		text := util.NormalizeText(strings.Join(args, " "))
		result := appInstance.AnalysisService.Analyze(cmd.Context(), text)

		if result.Error != "" {
			color.Yellow("warning: %s", result.Error)
		}

		table := tablewriter.NewWriter(os.Stdout)
		table.SetHeader([]string{"Field", "Value"})
		table.Append([]string{"Category", result.Classification.Category})
		table.Append([]string{"Confidence", fmt.Sprintf("%.1f%%", result.Classification.Confidence)})
		table.Append([]string{"Summary", result.Summary})
		table.Append([]string{"Urgency", fmt.Sprintf("%d (%s)", result.Urgency.Level, result.Urgency.Label)})
		table.Append([]string{"Keywords", strings.Join(result.Urgency.Keywords, ", ")})
		table.Render()
		return nil
	},
}

func init() {
	rootCmd.AddCommand(analyzeTextCmd)
}
