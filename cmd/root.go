package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tayuki/school-calendar-app/internal/logger"
)

var version = "1.0.0"

var rootCmd = &cobra.Command{
	Use:   "schoolcal",
	Short: "Turn photographed school notices into Google Calendar events",
	Long: `schoolcal reads a photographed or scanned school notice, extracts its text
with Google Cloud Vision, infers the events it announces with a language
model, and registers the ones you keep in Google Calendar.

Typical flow:

  schoolcal auth                      authorize calendar access once
  schoolcal extract notice.jpg -o events.json
  (review and edit events.json)
  schoolcal calendars                 find the target calendar id
  schoolcal commit events.json --calendar <id>`,
	Version: version,
}

func Execute() {
	log := logger.WithComponent("cmd")

	if err := rootCmd.Execute(); err != nil {
		log.Error().
			Err(err).
			Msg("Command execution failed")
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
