package rostercheck

import (
	"context"
	"fmt"
	"slices"

	"github.com/mergington/activities/pkg/logger"
)

// verifyEnrolled checks that every generated email shows up in the target
// activity's roster as observed over HTTP.
func verifyEnrolled(ctx context.Context, client *HTTPClient, config *Config, activity string, emails []string) error {
	activities, err := fetchActivities(ctx, client, config.BaseURL)
	if err != nil {
		return err
	}
	a, ok := activities[activity]
	if !ok {
		return fmt.Errorf("activity %q vanished from registry", activity)
	}

	missing := 0
	for _, email := range emails {
		if !slices.Contains(a.Participants, email) {
			missing++
			logger.Get().Error(ctx, "enrolled student missing from roster",
				logger.String("activity", activity),
				logger.String("email", email))
		}
	}
	if missing > 0 {
		return fmt.Errorf("%d of %d enrolled students missing from roster", missing, len(emails))
	}

	logger.Get().Info(ctx, "enrollment verified",
		logger.String("activity", activity),
		logger.Int("roster", len(a.Participants)))
	return nil
}

// verifyBaseline checks that after unregistering everything the roster
// matches the pre-run baseline exactly, order included.
func verifyBaseline(ctx context.Context, client *HTTPClient, config *Config, activity string, baseline Activity) error {
	activities, err := fetchActivities(ctx, client, config.BaseURL)
	if err != nil {
		return err
	}
	a, ok := activities[activity]
	if !ok {
		return fmt.Errorf("activity %q vanished from registry", activity)
	}

	if !slices.Equal(a.Participants, baseline.Participants) {
		return fmt.Errorf("roster did not return to baseline: got %d participants, want %d",
			len(a.Participants), len(baseline.Participants))
	}

	logger.Get().Info(ctx, "baseline verified", logger.String("activity", activity))
	return nil
}

// displayFinalStats logs the run summary.
func displayFinalStats(ctx context.Context, stats *Stats) {
	logger.Get().Info(ctx, "roster check summary",
		logger.Int("students", stats.StudentsGenerated),
		logger.Int("signupsOK", stats.SignupsOK),
		logger.Int("signupsFailed", stats.SignupsFailed),
		logger.Int("unregistersOK", stats.UnregistersOK),
		logger.Int("unregistersFailed", stats.UnregistersFailed),
		logger.String("duration", stats.Duration.String()))
}
