package rpa

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/MKhiriev/go-rpa-cadastro/internal/browser"
)

var errDownloadTimeout = errors.New("no .xlsx file appeared in the download directory")

// Download clicks the download button and waits for a spreadsheet to land
// in the download directory. Every attempt first deletes the *.xlsx files
// left there; every retry first reopens the dashboard. It returns the path
// of the downloaded file.
func (r *Runner) Download(ctx context.Context, drv browser.Driver) (string, error) {
	var (
		path    string
		attempt int
	)
	total := r.retry.DownloadAttempts

	err := retry.Do(ctx, attempts(total, 0), func(ctx context.Context) error {
		attempt++
		log := r.logger.With().Int("attempt", attempt).Int("of", total).Logger()
		log.Info().Msg("download attempt")

		if attempt > 1 {
			log.Warn().Str("url", r.app.DashboardURL).Msg("reopening dashboard before retrying download")
			if err := r.reopenDashboard(ctx, drv); err != nil {
				log.Warn().Err(err).Msg("dashboard recovery failed")
				return retry.RetryableError(err)
			}
		}

		p, err := r.downloadOnce(ctx, drv)
		if err != nil {
			log.Warn().Err(err).Msg("download attempt failed")
			return retry.RetryableError(err)
		}

		path = p
		return nil
	})
	if err != nil {
		r.logger.Error().Err(err).Int("attempts", attempt).Msg("download failed on every attempt")
		return "", fmt.Errorf("%w after %d attempts: %w", ErrDownloadFailed, attempt, err)
	}

	r.logger.Info().Str("path", path).Msg("spreadsheet downloaded")
	return path, nil
}

func (r *Runner) reopenDashboard(ctx context.Context, drv browser.Driver) error {
	if err := drv.Navigate(ctx, r.app.DashboardURL); err != nil {
		return err
	}
	if err := pause(ctx, r.retry.DownloadRecoveryPause); err != nil {
		return err
	}
	return drv.WaitClickable(ctx, selDownload, r.retry.DownloadRecoveryWait)
}

func (r *Runner) downloadOnce(ctx context.Context, drv browser.Driver) (string, error) {
	if err := r.cleanDownloadDir(); err != nil {
		return "", err
	}

	if err := drv.WaitClickable(ctx, selDownload, r.wait); err != nil {
		return "", err
	}
	if err := drv.Click(ctx, selDownload); err != nil {
		return "", err
	}

	return r.waitForSpreadsheet(ctx)
}

// cleanDownloadDir removes every *.xlsx so that the next one found is the
// fresh download. Failing to remove one fails the attempt.
func (r *Runner) cleanDownloadDir() error {
	stale, err := filepath.Glob(r.pattern())
	if err != nil {
		return fmt.Errorf("list download dir: %w", err)
	}
	if len(stale) == 0 {
		r.logger.Debug().Str("dir", r.app.DownloadDir).Msg("download dir already clean")
		return nil
	}

	for _, f := range stale {
		if err = os.Remove(f); err != nil {
			r.logger.Error().Err(err).Str("file", f).Msg("could not remove old spreadsheet")
			return fmt.Errorf("remove old spreadsheet: %w", err)
		}
		r.logger.Info().Str("file", f).Msg("old spreadsheet removed")
	}
	return nil
}

// waitForSpreadsheet polls the download dir until a *.xlsx shows up or the
// download timeout elapses.
func (r *Runner) waitForSpreadsheet(ctx context.Context) (string, error) {
	start := time.Now()
	for {
		if err := pause(ctx, r.retry.DownloadPoll); err != nil {
			return "", err
		}

		found, err := filepath.Glob(r.pattern())
		if err != nil {
			return "", fmt.Errorf("list download dir: %w", err)
		}
		if len(found) > 0 {
			return found[0], nil
		}

		if time.Since(start) >= r.retry.DownloadTimeout {
			return "", fmt.Errorf("%w after %s", errDownloadTimeout, r.retry.DownloadTimeout)
		}
	}
}

func (r *Runner) pattern() string {
	return filepath.Join(r.app.DownloadDir, "*.xlsx")
}
