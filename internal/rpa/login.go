package rpa

import (
	"context"
	"fmt"

	"github.com/sethvargo/go-retry"

	"github.com/MKhiriev/go-rpa-cadastro/internal/browser"
	"github.com/MKhiriev/go-rpa-cadastro/internal/credentials"
)

// Login starts a browser, opens the login page and signs in. A failed
// attempt closes its browser and the next one starts a fresh instance.
// The returned driver is logged in and shows the dashboard; the caller owns
// it and must Close it.
func (r *Runner) Login(ctx context.Context, user string, password credentials.Secret) (browser.Driver, error) {
	var (
		drv     browser.Driver
		attempt int
	)
	total := r.retry.LoginAttempts

	err := retry.Do(ctx, attempts(total, r.retry.LoginPause), func(ctx context.Context) error {
		attempt++
		log := r.logger.With().Int("attempt", attempt).Int("of", total).Logger()
		log.Info().Msg("login attempt")

		d, err := r.launcher.Launch(ctx)
		if err != nil {
			log.Warn().Err(err).Msg("browser did not start")
			return retry.RetryableError(err)
		}

		if err = r.signIn(ctx, d, user, password); err != nil {
			log.Warn().Err(err).Msg("login attempt failed")
			if closeErr := d.Close(); closeErr != nil {
				log.Warn().Err(closeErr).Msg("closing browser before retry")
			}
			return retry.RetryableError(err)
		}

		drv = d
		return nil
	})
	if err != nil {
		r.logger.Error().Err(err).Int("attempts", attempt).Msg("could not log in")
		return nil, fmt.Errorf("%w after %d attempts: %w", ErrLoginFailed, attempt, err)
	}

	r.logger.Info().Msg("logged in, dashboard loaded")
	return drv, nil
}

// signIn fills the login form and waits for the download button, which only
// the dashboard shows.
func (r *Runner) signIn(ctx context.Context, drv browser.Driver, user string, password credentials.Secret) error {
	if err := drv.Navigate(ctx, r.app.LoginURL); err != nil {
		return err
	}
	if err := drv.WaitClickable(ctx, selUsername, r.wait); err != nil {
		return err
	}
	if err := drv.Type(ctx, selUsername, user); err != nil {
		return err
	}
	if err := drv.Type(ctx, selPassword, password.Reveal()); err != nil {
		return err
	}
	if err := drv.Click(ctx, selLogin); err != nil {
		return err
	}
	return drv.WaitClickable(ctx, selDownload, r.wait)
}
