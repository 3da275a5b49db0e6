package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/tayuki/school-calendar-app/internal/inference"
	"github.com/tayuki/school-calendar-app/internal/logger"
	"github.com/tayuki/school-calendar-app/internal/pipeline"
	"github.com/tayuki/school-calendar-app/pkg/models"
)

var extractCmd = &cobra.Command{
	Use:   "extract [file]",
	Short: "Extract event candidates from a notice",
	Long: `Run the full pipeline on a school notice: OCR the document, infer the
events it announces, and validate them. The result is a JSON document of
event candidates, ready for review, hand editing, and a later
"schoolcal commit".

Relative date expressions in the notice ("明日", "来週木曜日") are resolved
against the reference date, which defaults to today.

Required environment variables:
  GOOGLE_APPLICATION_CREDENTIALS or GOOGLE_CREDENTIALS - Vision API access
  OPENAI_API_KEY - language model access`,
	Example: `  # Extract candidates and review them in the terminal
  schoolcal extract notice.jpg

  # Save candidates for editing, resolving relative dates against March 1st
  schoolcal extract notice.jpg -o events.json --date 2025-03-01`,
	Args: cobra.ExactArgs(1),
	RunE: runExtract,
}

func init() {
	rootCmd.AddCommand(extractCmd)

	extractCmd.Flags().StringP("output", "o", "", "Output file path (default: stdout)")
	extractCmd.Flags().String("date", "", "Reference date for relative expressions (YYYY-MM-DD, default: today)")
	extractCmd.Flags().Int("timeout", 300, "Processing timeout in seconds")
}

func runExtract(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("extract")
	outputPath, _ := cmd.Flags().GetString("output")
	dateFlag, _ := cmd.Flags().GetString("date")
	timeoutSecs, _ := cmd.Flags().GetInt("timeout")

	referenceDate := time.Now()
	if dateFlag != "" {
		parsed, err := time.Parse(models.DateLayout, dateFlag)
		if err != nil {
			return fmt.Errorf("--date %q must use the YYYY-MM-DD format", dateFlag)
		}
		referenceDate = parsed
	}

	doc, err := readDocument(args[0])
	if err != nil {
		return err
	}

	ctx, cancel := signalAwareContext(timeoutSecs, log)
	defer cancel()

	extractor, err := newExtractor(ctx, log)
	if err != nil {
		return err
	}

	engine, err := inference.NewOpenAIEngine()
	if err != nil {
		log.Error().Err(err).Msg("failed to create inference engine")
		return err
	}

	result, err := pipeline.New(extractor, engine).Run(ctx, doc, referenceDate)
	if err != nil {
		return handleExtractionError(err, log)
	}

	if len(result.Candidates) == 0 {
		if result.Diagnostic != "" {
			fmt.Fprintln(cmd.ErrOrStderr(), result.Diagnostic)
		} else {
			fmt.Fprintln(cmd.ErrOrStderr(), "No events were found in the document.")
		}
	}

	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding extraction result: %w", err)
	}

	if outputPath != "" {
		if err := os.WriteFile(outputPath, data, 0644); err != nil {
			return fmt.Errorf("writing output file: %w", err)
		}
		log.Info().
			Str("output_file", outputPath).
			Int("events", len(result.Candidates)).
			Msg("extraction result written")
		return nil
	}

	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}
