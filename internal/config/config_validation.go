// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"errors"
	"fmt"
	"net/url"
	"time"
)

// validate checks that the final merged [StructuredConfig] can drive a run.
// Email settings are optional as a whole; only the port is checked.
func (cfg *StructuredConfig) validate() error {
	if err := validateURL(cfg.App.LoginURL); err != nil {
		return fmt.Errorf("%w: url_login: %w", ErrInvalidAppConfigs, err)
	}

	if err := validateURL(cfg.App.DashboardURL); err != nil {
		return fmt.Errorf("%w: url_dashboard: %w", ErrInvalidAppConfigs, err)
	}

	if cfg.Credentials.Username == "" {
		return fmt.Errorf("%w: usuario is empty", ErrInvalidAppConfigs)
	}

	if cfg.App.DownloadDir == "" || cfg.App.LogFile == "" {
		return fmt.Errorf("%w: download dir and log file are required", ErrInvalidAppConfigs)
	}

	if cfg.Email.Port < 1 || cfg.Email.Port > 65535 {
		return fmt.Errorf("%w: porta_smtp %d", ErrInvalidEmailConfigs, cfg.Email.Port)
	}

	r := cfg.Retry
	for _, attempts := range []int{r.LoginAttempts, r.DownloadAttempts, r.RecordAttempts} {
		if attempts < 1 {
			return fmt.Errorf("%w: attempts must be at least 1", ErrInvalidRetryConfigs)
		}
	}

	pauses := []time.Duration{
		r.LoginPause, r.DownloadPoll, r.DownloadTimeout, r.DownloadRecoveryPause,
		r.DownloadRecoveryWait, r.SubmitPause, r.RefreshPause, cfg.Browser.DefaultWait,
	}
	for _, d := range pauses {
		if d <= 0 {
			return fmt.Errorf("%w: durations must be positive", ErrInvalidRetryConfigs)
		}
	}

	return nil
}

func validateURL(raw string) error {
	if raw == "" {
		return errors.New("empty")
	}

	u, err := url.Parse(raw)
	if err != nil {
		return err
	}

	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%q is not an absolute http(s) URL", raw)
	}

	return nil
}
