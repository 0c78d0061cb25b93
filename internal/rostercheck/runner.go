package rostercheck

import (
	"context"
	"fmt"
	"net/http"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/mergington/activities/pkg/logger"
)

// Run executes a complete roster check: health probe, baseline fetch,
// concurrent signups, roster verification, concurrent unregisters, and a
// final check that the roster returned to its baseline.
func Run(ctx context.Context, config *Config) error {
	stats := &Stats{StartTime: time.Now()}

	logger.Get().Info(ctx, "starting roster check",
		logger.String("baseURL", config.BaseURL),
		logger.String("activity", config.Activity),
		logger.Int("students", config.NumStudents),
		logger.Int("workers", config.Workers),
		logger.String("timeout", config.Timeout.String()))

	client := newHTTPClient(config.Timeout)

	if err := checkServiceHealth(ctx, client, config); err != nil {
		return fmt.Errorf("service health check failed: %w", err)
	}

	activity, baseline, err := pickActivity(ctx, client, config)
	if err != nil {
		return fmt.Errorf("baseline fetch failed: %w", err)
	}
	logger.Get().Info(ctx, "target activity selected",
		logger.String("activity", activity),
		logger.Int("baselineRoster", len(baseline.Participants)))

	emails := generateStudents(config.NumStudents, stats)

	if err := signupAll(ctx, client, config, activity, emails, stats); err != nil {
		return fmt.Errorf("signup phase failed: %w", err)
	}

	if err := verifyEnrolled(ctx, client, config, activity, emails); err != nil {
		return fmt.Errorf("enrollment verification failed: %w", err)
	}

	if !config.KeepRoster {
		if err := unregisterAll(ctx, client, config, activity, emails, stats); err != nil {
			return fmt.Errorf("unregister phase failed: %w", err)
		}
		if err := verifyBaseline(ctx, client, config, activity, baseline); err != nil {
			return fmt.Errorf("baseline verification failed: %w", err)
		}
	}

	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)
	displayFinalStats(ctx, stats)

	logger.Get().Info(ctx, "roster check completed successfully")
	return nil
}

// checkServiceHealth verifies the service is running.
func checkServiceHealth(ctx context.Context, client *HTTPClient, config *Config) error {
	resp, err := client.Get(ctx, config.BaseURL+"/healthz")
	if err != nil {
		return fmt.Errorf("failed to connect to service: %w", err)
	}
	defer resp.Body.Close()

	// Any 200 counts as healthy (the endpoint serves Prometheus metrics)
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("service health check failed with status: %d", resp.StatusCode)
	}
	return nil
}

// fetchActivities retrieves the full registry.
func fetchActivities(ctx context.Context, client *HTTPClient, baseURL string) (map[string]Activity, error) {
	resp, err := client.Get(ctx, baseURL+"/activities")
	if err != nil {
		return nil, fmt.Errorf("failed to list activities: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("list activities returned status %d", resp.StatusCode)
	}
	var activities map[string]Activity
	if err := decodeJSON(resp, &activities); err != nil {
		return nil, err
	}
	return activities, nil
}

// pickActivity resolves the target activity and its baseline roster.
func pickActivity(ctx context.Context, client *HTTPClient, config *Config) (string, Activity, error) {
	activities, err := fetchActivities(ctx, client, config.BaseURL)
	if err != nil {
		return "", Activity{}, err
	}
	if len(activities) == 0 {
		return "", Activity{}, fmt.Errorf("service reports no activities")
	}

	if config.Activity != "" {
		a, ok := activities[config.Activity]
		if !ok {
			return "", Activity{}, fmt.Errorf("activity %q not found in registry", config.Activity)
		}
		return config.Activity, a, nil
	}

	// Deterministic pick: first name in sorted order.
	names := make([]string, 0, len(activities))
	for name := range activities {
		names = append(names, name)
	}
	sort.Strings(names)
	return names[0], activities[names[0]], nil
}

// generateStudents produces unique synthetic student emails.
func generateStudents(n int, stats *Stats) []string {
	emails := make([]string, n)
	for i := range emails {
		emails[i] = fmt.Sprintf("check-%s@mergington.edu", uuid.NewString()[:8])
	}
	stats.StudentsGenerated = n
	return emails
}

// signupAll enrolls every email concurrently using a bounded worker pool.
func signupAll(ctx context.Context, client *HTTPClient, config *Config, activity string, emails []string, stats *Stats) error {
	var ok, failed int64
	runWorkers(ctx, config.Workers, emails, func(email string) {
		u := mutationURL(config.BaseURL, activity, "signup", email)
		resp, err := client.Do(ctx, http.MethodPost, u)
		if err != nil {
			atomic.AddInt64(&failed, 1)
			logger.Get().Warn(ctx, "signup request failed", logger.String("email", email), logger.Error(err))
			return
		}
		var msg MessageResponse
		if err := decodeJSON(resp, &msg); err != nil || resp.StatusCode != http.StatusOK {
			atomic.AddInt64(&failed, 1)
			logger.Get().Warn(ctx, "signup rejected",
				logger.String("email", email),
				logger.Int("status", resp.StatusCode))
			return
		}
		atomic.AddInt64(&ok, 1)
		if config.Verbose {
			logger.Get().Debug(ctx, "signup ok", logger.String("message", msg.Message))
		}
	})

	stats.SignupsOK = int(ok)
	stats.SignupsFailed = int(failed)
	if failed > 0 {
		return fmt.Errorf("%d of %d signups failed", failed, len(emails))
	}
	return nil
}

// unregisterAll removes every email concurrently.
func unregisterAll(ctx context.Context, client *HTTPClient, config *Config, activity string, emails []string, stats *Stats) error {
	var ok, failed int64
	runWorkers(ctx, config.Workers, emails, func(email string) {
		u := mutationURL(config.BaseURL, activity, "unregister", email)
		resp, err := client.Do(ctx, http.MethodDelete, u)
		if err != nil {
			atomic.AddInt64(&failed, 1)
			logger.Get().Warn(ctx, "unregister request failed", logger.String("email", email), logger.Error(err))
			return
		}
		var msg MessageResponse
		if err := decodeJSON(resp, &msg); err != nil || resp.StatusCode != http.StatusOK {
			atomic.AddInt64(&failed, 1)
			logger.Get().Warn(ctx, "unregister rejected",
				logger.String("email", email),
				logger.Int("status", resp.StatusCode))
			return
		}
		atomic.AddInt64(&ok, 1)
	})

	stats.UnregistersOK = int(ok)
	stats.UnregistersFailed = int(failed)
	if failed > 0 {
		return fmt.Errorf("%d of %d unregisters failed", failed, len(emails))
	}
	return nil
}

// runWorkers fans emails out over a bounded pool of goroutines.
func runWorkers(ctx context.Context, workers int, emails []string, fn func(email string)) {
	if workers < 1 {
		workers = 1
	}
	jobs := make(chan string)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for email := range jobs {
				fn(email)
			}
		}()
	}
	for _, email := range emails {
		select {
		case <-ctx.Done():
			close(jobs)
			wg.Wait()
			return
		case jobs <- email:
		}
	}
	close(jobs)
	wg.Wait()
}
