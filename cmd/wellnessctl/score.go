package main

import (
	"fmt"

	"wellness-go/internal/models"
	"wellness-go/internal/scoring"

	"github.com/spf13/cobra"
)

// --- wellnessctl score ---

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Score an answers file against a template",
	RunE:  runScore,
}

func init() {
	scoreCmd.Flags().String("template", "", "Template YAML file (required)")
	scoreCmd.Flags().String("answers", "", "JSON object of question id to selected value (required)")
	scoreCmd.Flags().Bool("details", false, "Include the per-question answer details")

	rootCmd.AddCommand(scoreCmd)
}

func runScore(cmd *cobra.Command, args []string) error {
	templatePath, _ := cmd.Flags().GetString("template")
	answersPath, _ := cmd.Flags().GetString("answers")
	withDetails, _ := cmd.Flags().GetBool("details")
	if templatePath == "" || answersPath == "" {
		return fmt.Errorf("--template and --answers are required")
	}

	tmpl, err := models.LoadTemplate(templatePath)
	if err != nil {
		return err
	}
	var answers map[string]string
	if err := readJSON(answersPath, &answers); err != nil {
		return err
	}

	out := struct {
		AssessmentType string                   `json:"assessmentType"`
		Score          scoring.ComputedScore    `json:"score"`
		Details        []scoring.ResponseDetail `json:"details,omitempty"`
	}{
		AssessmentType: scoring.NormalizeType(tmpl.AssessmentType),
		Score:          scoring.ComputeScores(tmpl, answers),
	}
	if withDetails {
		out.Details = scoring.BuildDetails(tmpl, answers)
	}
	return writeJSON(cmd.OutOrStdout(), out)
}
