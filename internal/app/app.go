// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app runs the registration robot from start to finish: decrypt the
// credentials, log in, download and read the spreadsheet, register every
// record, log out, then report by e-mail and in the run journal.
package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-rpa-cadastro/internal/config"
	"github.com/MKhiriev/go-rpa-cadastro/internal/credentials"
	"github.com/MKhiriev/go-rpa-cadastro/internal/logger"
	"github.com/MKhiriev/go-rpa-cadastro/internal/store"
	"github.com/MKhiriev/go-rpa-cadastro/models"
)

// ErrCredentials is returned when the passwords could not be decrypted. The
// browser is never started in that case.
var ErrCredentials = errors.New("credentials not loaded")

// App wires the steps of one run together.
type App struct {
	cfg         *config.StructuredConfig
	credentials CredentialLoader
	robot       Robot
	sheet       SheetReader
	notifier    Notifier
	journal     store.Journal
	logger      *logger.Logger
	now         func() time.Time
}

func NewApp(
	cfg *config.StructuredConfig,
	creds CredentialLoader,
	robot Robot,
	sheet SheetReader,
	notifier Notifier,
	journal store.Journal,
	log *logger.Logger,
) *App {
	return &App{
		cfg:         cfg,
		credentials: creds,
		robot:       robot,
		sheet:       sheet,
		notifier:    notifier,
		journal:     journal,
		logger:      log,
		now:         time.Now,
	}
}

// Run performs one robot run and returns its fatal error, if any. Records
// that fail to register are not fatal; they are counted in the report.
//
// Once the credentials are loaded the status e-mail is always attempted and
// the journal run is always finished, even when ctx is cancelled.
func (a *App) Run(ctx context.Context) error {
	ctx = a.logger.WithContext(ctx)
	summary := models.RunSummary{
		RunID:     a.logger.RunID(),
		StartedAt: a.now(),
		LogFile:   a.cfg.App.LogFile,
	}
	a.logger.Info().Msg("--- run started ---")

	secrets, err := a.credentials.Load()
	if err != nil {
		a.logger.Error().Err(err).Msg("could not load credentials, the browser will not be started")
		if a.notifier.Configured() {
			a.logger.Error().Msg("status e-mail not sent: the e-mail password was not loaded")
		}
		a.logger.Info().Msg("--- run finished ---")
		return fmt.Errorf("%w: %w", ErrCredentials, err)
	}
	a.logger.Info().Msg("credentials loaded")

	journaled := a.startJournal(ctx, summary)

	reg, runErr := a.execute(ctx, secrets)

	summary.FinishedAt = a.now()
	summary.Successes = reg.Successes
	summary.Failures = reg.Failures
	summary.Success = runErr == nil
	if runErr != nil {
		summary.Error = secrets.Redact(runErr.Error())
		a.logger.Error().Str("error", summary.Error).Msg("fatal error, run interrupted")
	} else {
		a.logger.Info().
			Int("successes", summary.Successes).
			Int("failures", summary.Failures).
			Msg("run completed")
	}

	// the report goes out even when the run was interrupted
	reportCtx := context.WithoutCancel(ctx)
	if err = a.notifier.Send(reportCtx, summary, secrets.Email); err != nil {
		a.logger.Error().Str("error", secrets.Redact(err.Error())).Msg("status e-mail failed")
	}
	if journaled {
		a.finishJournal(reportCtx, summary, redactResults(reg.Results, secrets))
	}

	a.logger.Info().Msg("--- run finished ---")
	return runErr
}

// execute runs the browser steps. The browser is closed on every path.
func (a *App) execute(ctx context.Context, secrets credentials.Secrets) (models.RegisterSummary, error) {
	var reg models.RegisterSummary

	drv, err := a.robot.Login(ctx, a.cfg.Credentials.Username, secrets.App)
	if err != nil {
		return reg, err
	}
	defer func() {
		if closeErr := drv.Close(); closeErr != nil {
			a.logger.Warn().Err(closeErr).Msg("closing browser")
			return
		}
		a.logger.Info().Msg("browser closed")
	}()

	path, err := a.robot.Download(ctx, drv)
	if err != nil {
		return reg, err
	}

	employees, err := a.sheet.Read(path)
	if err != nil {
		return reg, err
	}

	reg, err = a.robot.Register(ctx, drv, employees)
	if err != nil {
		return reg, err
	}

	a.robot.Logout(ctx, drv)
	return reg, nil
}

func (a *App) startJournal(ctx context.Context, summary models.RunSummary) bool {
	if err := a.journal.StartRun(ctx, summary); err != nil {
		a.logger.Warn().Err(err).Msg("run journal unavailable, continuing without it")
		return false
	}
	return true
}

func (a *App) finishJournal(ctx context.Context, summary models.RunSummary, results []models.RecordResult) {
	if err := a.journal.FinishRun(ctx, summary, results); err != nil {
		a.logger.Warn().Err(err).Msg("could not finish journal run")
	}
}

func redactResults(results []models.RecordResult, secrets credentials.Secrets) []models.RecordResult {
	out := make([]models.RecordResult, len(results))
	for i, r := range results {
		r.Error = secrets.Redact(r.Error)
		out[i] = r
	}
	return out
}
