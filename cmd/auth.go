package cmd

import (
	"bufio"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/oauth2"

	"github.com/tayuki/school-calendar-app/internal/config"
	"github.com/tayuki/school-calendar-app/internal/credentials"
	"github.com/tayuki/school-calendar-app/internal/logger"
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Authorize access to Google Calendar",
	Long: `Start the OAuth authorization flow for Google Calendar.

The command prints an authorization URL to open in a browser. After granting
access, paste the authorization code back into the terminal. The resulting
token bundle is stored locally (TOKEN_FILE, default ~/.schoolcal/token.json)
and reused by the calendars and commit commands.`,
	RunE: runAuth,
}

func init() {
	rootCmd.AddCommand(authCmd)
}

func runAuth(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("auth")

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	conf, err := oauthConfig(cfg)
	if err != nil {
		return err
	}

	state := uuid.NewString()
	url := conf.AuthCodeURL(state, oauth2.AccessTypeOffline, oauth2.ApprovalForce)

	fmt.Fprintln(cmd.OutOrStdout(), "Open the following URL in your browser and grant calendar access:")
	fmt.Fprintln(cmd.OutOrStdout())
	fmt.Fprintln(cmd.OutOrStdout(), "  "+url)
	fmt.Fprintln(cmd.OutOrStdout())
	fmt.Fprint(cmd.OutOrStdout(), "Paste the authorization code here: ")

	reader := bufio.NewReader(cmd.InOrStdin())
	code, err := reader.ReadString('\n')
	if err != nil {
		return fmt.Errorf("reading authorization code: %w", err)
	}
	code = strings.TrimSpace(code)
	if code == "" {
		return fmt.Errorf("no authorization code provided")
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
	defer cancel()

	token, err := conf.Exchange(ctx, code)
	if err != nil {
		log.Error().Err(err).Msg("authorization code exchange failed")
		return fmt.Errorf("exchanging authorization code: %w", err)
	}

	store := credentials.NewStore(cfg.TokenFile)
	if err := store.Save(credentials.BundleFromToken(token, conf)); err != nil {
		return err
	}

	log.Info().Str("token_file", cfg.TokenFile).Msg("authorization completed")
	fmt.Fprintf(cmd.OutOrStdout(), "Authorization complete. Credentials stored in %s\n", cfg.TokenFile)
	return nil
}
