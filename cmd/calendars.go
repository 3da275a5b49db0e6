package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/tayuki/school-calendar-app/internal/config"
	"github.com/tayuki/school-calendar-app/internal/logger"
)

var calendarsCmd = &cobra.Command{
	Use:   "calendars",
	Short: "List the calendars available to the authorized account",
	Long: `List every calendar the authorized Google account can see, with its id and
access role. Use a calendar id from this list as the --calendar argument of
the commit command. Requires a prior "schoolcal auth" run.`,
	RunE: runCalendars,
}

func init() {
	rootCmd.AddCommand(calendarsCmd)

	calendarsCmd.Flags().Bool("json", false, "Output as JSON")
	calendarsCmd.Flags().Int("timeout", 30, "Request timeout in seconds")
}

func runCalendars(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("calendars")
	jsonOutput, _ := cmd.Flags().GetBool("json")
	timeoutSecs, _ := cmd.Flags().GetInt("timeout")

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), time.Duration(timeoutSecs)*time.Second)
	defer cancel()

	service, err := newCalendarService(ctx, cfg)
	if err != nil {
		return err
	}

	calendars, err := service.ListCalendars(ctx)
	if err != nil {
		log.Error().Err(err).Msg("calendar listing failed")
		return err
	}

	if jsonOutput {
		data, err := json.MarshalIndent(calendars, "", "  ")
		if err != nil {
			return fmt.Errorf("encoding calendar list: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	}

	for _, c := range calendars {
		marker := " "
		if c.Primary {
			marker = "*"
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s %-48s %-10s %s\n", marker, c.ID, c.AccessRole, c.Summary)
	}
	return nil
}
