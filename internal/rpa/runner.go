// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package rpa implements the steps of a registration run on top of a
// [browser.Driver]: login, spreadsheet download, record registration and
// logout. Each step retries transient browser failures on its own policy
// and reports exhaustion with a sentinel error.
package rpa

import (
	"context"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/MKhiriev/go-rpa-cadastro/internal/browser"
	"github.com/MKhiriev/go-rpa-cadastro/internal/config"
	"github.com/MKhiriev/go-rpa-cadastro/internal/logger"
	"github.com/MKhiriev/go-rpa-cadastro/internal/validators"
)

// Runner executes the robot steps against the dashboard.
type Runner struct {
	launcher browser.Launcher
	app      config.App
	retry    config.Retry
	wait     time.Duration
	validate validators.Validator
	logger   *logger.Logger
}

// NewRunner constructs a [Runner]. wait bounds every element lookup that
// has no step-specific timeout.
func NewRunner(launcher browser.Launcher, app config.App, retryCfg config.Retry, wait time.Duration, log *logger.Logger) *Runner {
	return &Runner{
		launcher: launcher,
		app:      app,
		retry:    retryCfg,
		wait:     wait,
		validate: validators.NewEmployeeValidator(),
		logger:   log,
	}
}

// attempts allows n tries in total with a fixed pause between them.
func attempts(n int, pause time.Duration) retry.Backoff {
	if n < 1 {
		n = 1
	}
	constant := retry.BackoffFunc(func() (time.Duration, bool) {
		return pause, false
	})
	return retry.WithMaxRetries(uint64(n-1), constant)
}

// pause sleeps for d unless ctx is done first.
func pause(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
