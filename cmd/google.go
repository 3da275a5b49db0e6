package cmd

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	gcal "google.golang.org/api/calendar/v3"

	"github.com/tayuki/school-calendar-app/internal/calendar"
	"github.com/tayuki/school-calendar-app/internal/config"
	"github.com/tayuki/school-calendar-app/internal/credentials"
)

// oauthConfig builds the OAuth client configuration for calendar access.
func oauthConfig(cfg *config.Config) (*oauth2.Config, error) {
	if cfg.GoogleClientID == "" || cfg.GoogleClientSecret == "" {
		return nil, fmt.Errorf("Google OAuth is not configured. Set GOOGLE_CLIENT_ID and GOOGLE_CLIENT_SECRET " +
			"(an OAuth client of type \"Web application\" or \"Desktop\" from the Google Cloud Console)")
	}
	return &oauth2.Config{
		ClientID:     cfg.GoogleClientID,
		ClientSecret: cfg.GoogleClientSecret,
		Endpoint:     google.Endpoint,
		RedirectURL:  cfg.OAuthRedirectURL,
		Scopes:       []string{gcal.CalendarScope, gcal.CalendarEventsScope},
	}, nil
}

// newCalendarService restores the stored token bundle and builds an
// authorized calendar client from it.
func newCalendarService(ctx context.Context, cfg *config.Config) (*calendar.GoogleService, error) {
	conf, err := oauthConfig(cfg)
	if err != nil {
		return nil, err
	}

	bundle, err := credentials.NewStore(cfg.TokenFile).Load()
	if err != nil {
		if errors.Is(err, credentials.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("loading stored credentials: %w", err)
	}

	client := conf.Client(ctx, bundle.OAuthToken())
	return calendar.NewGoogleService(ctx, client)
}
