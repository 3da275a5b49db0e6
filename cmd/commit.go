package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tayuki/school-calendar-app/internal/calendar"
	"github.com/tayuki/school-calendar-app/internal/config"
	"github.com/tayuki/school-calendar-app/internal/logger"
	"github.com/tayuki/school-calendar-app/pkg/models"
)

var commitCmd = &cobra.Command{
	Use:   "commit [events-file]",
	Short: "Register reviewed events in Google Calendar",
	Long: `Submit the events from a JSON file (as produced by "schoolcal extract",
possibly hand-edited) to a Google Calendar. Events are registered one at a
time; a failing event never aborts the rest of the batch, and the command
reports how many of the submitted events succeeded.

Accepts either the extract output document or a bare JSON array of events.`,
	Example: `  schoolcal commit events.json --calendar family@group.calendar.google.com

  # Keep the per-event results for later inspection
  schoolcal commit events.json --calendar primary -o results.json`,
	Args: cobra.ExactArgs(1),
	RunE: runCommit,
}

func init() {
	rootCmd.AddCommand(commitCmd)

	commitCmd.Flags().String("calendar", "", "Target calendar id (required, see \"schoolcal calendars\")")
	commitCmd.Flags().StringP("output", "o", "", "Write per-event results as JSON to a file")
	commitCmd.Flags().Int("timeout", 300, "Processing timeout in seconds")
	_ = commitCmd.MarkFlagRequired("calendar")
}

func runCommit(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("commit")
	calendarID, _ := cmd.Flags().GetString("calendar")
	outputPath, _ := cmd.Flags().GetString("output")
	timeoutSecs, _ := cmd.Flags().GetInt("timeout")

	candidates, err := readCandidates(args[0])
	if err != nil {
		return err
	}
	if len(candidates) == 0 {
		return fmt.Errorf("no events found in %s", args[0])
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	ctx, cancel := signalAwareContext(timeoutSecs, log)
	defer cancel()

	service, err := newCalendarService(ctx, cfg)
	if err != nil {
		return err
	}

	committer := calendar.NewCommitter(service, cfg.CalendarTimezone)
	results := committer.CommitAll(ctx, calendarID, candidates)

	succeeded := 0
	for _, r := range results {
		if r.Success {
			succeeded++
		}
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%d of %d events registered in the calendar.\n", succeeded, len(results))
	for i, r := range results {
		if !r.Success {
			fmt.Fprintf(cmd.OutOrStdout(), "  [%d] %s: %s\n", i+1, r.OriginalData.Title, r.Error)
		}
	}

	if outputPath != "" {
		data, err := json.MarshalIndent(results, "", "  ")
		if err != nil {
			return fmt.Errorf("encoding commit results: %w", err)
		}
		if err := os.WriteFile(outputPath, data, 0644); err != nil {
			return fmt.Errorf("writing results file: %w", err)
		}
		log.Info().Str("output_file", outputPath).Msg("commit results written")
	}

	// Auth expiry shows up per item; surface it once so the user knows the fix.
	for _, r := range results {
		if !r.Success && strings.Contains(r.Error, calendar.ErrAuthRequired.Error()) {
			return fmt.Errorf("calendar authorization expired, run \"schoolcal auth\" again")
		}
	}
	return nil
}

// readCandidates accepts either the extract output document or a bare array
// of events.
func readCandidates(path string) ([]models.EventCandidate, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var list []models.EventCandidate
	if err := json.Unmarshal(data, &list); err == nil {
		return list, nil
	}

	var wrapped struct {
		Events []models.EventCandidate `json:"events"`
	}
	if err := json.Unmarshal(data, &wrapped); err != nil {
		return nil, fmt.Errorf("%s is not a valid events file: %w", path, err)
	}
	return wrapped.Events, nil
}

