// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package store keeps the run journal: one row per robot run and one row
// per processed spreadsheet record, in an optional SQLite database.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-rpa-cadastro/internal/config"
	"github.com/MKhiriev/go-rpa-cadastro/internal/logger"
	"github.com/MKhiriev/go-rpa-cadastro/models"
)

const (
	tableRuns    = "runs"
	tableResults = "record_results"
)

// resultsBatchSize keeps each insert well below SQLite's limit of 32766
// bound variables per statement.
const resultsBatchSize = 500

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Question)

// NewJournal opens the journal configured by cfg. Without a DSN the journal
// is disabled and every call is a no-op.
func NewJournal(ctx context.Context, cfg config.Storage, log *logger.Logger) (Journal, error) {
	if cfg.DSN == "" {
		log.Debug().Msg("run journal disabled")
		return NopJournal(), nil
	}

	db, err := NewConnectSQLite(ctx, cfg, log)
	if err != nil {
		return nil, err
	}
	if err = db.Migrate(); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &sqlJournal{db: db, logger: log}, nil
}

type sqlJournal struct {
	db     *DB
	logger *logger.Logger
}

func (j *sqlJournal) StartRun(ctx context.Context, run models.RunSummary) error {
	query, args, err := buildStartRunQuery(run)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = j.db.ExecContext(ctx, query, args...); err != nil {
		j.logger.Err(err).
			Str("func", "sqlJournal.StartRun").
			Str("run_id", run.RunID).
			Msg("failed to insert run")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	return nil
}

func (j *sqlJournal) FinishRun(ctx context.Context, run models.RunSummary, results []models.RecordResult) (err error) {
	log := j.logger.With().Str("func", "sqlJournal.FinishRun").Str("run_id", run.RunID).Logger()

	tx, err := j.db.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).Msg("failed to begin transaction")
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
				log.Err(rbErr).Msg("failed to roll back transaction")
			}
		}
	}()

	query, args, err := buildFinishRunQuery(run)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	res, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Msg("failed to update run")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if n, rowsErr := res.RowsAffected(); rowsErr == nil && n == 0 {
		err = ErrRunNotFound
		return err
	}

	for start := 0; start < len(results); start += resultsBatchSize {
		batch := results[start:min(start+resultsBatchSize, len(results))]
		query, args, err = buildInsertResultsQuery(run.RunID, batch)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
		}
		if _, err = tx.ExecContext(ctx, query, args...); err != nil {
			log.Err(err).Int("offset", start).Int("results", len(batch)).Msg("failed to insert record results")
			return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}
	}

	if err = tx.Commit(); err != nil {
		log.Err(err).Msg("failed to commit transaction")
		return fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}
	return nil
}

func (j *sqlJournal) Close() error {
	return j.db.Close()
}

func buildStartRunQuery(run models.RunSummary) (string, []any, error) {
	return psql.Insert(tableRuns).
		Columns("id", "started_at", "log_file").
		Values(run.RunID, run.StartedAt.UTC(), run.LogFile).
		ToSql()
}

func buildFinishRunQuery(run models.RunSummary) (string, []any, error) {
	return psql.Update(tableRuns).
		Set("finished_at", run.FinishedAt.UTC()).
		Set("success", run.Success).
		Set("successes", run.Successes).
		Set("failures", run.Failures).
		Set("error", run.Error).
		Where(sq.Eq{"id": run.RunID}).
		ToSql()
}

func buildInsertResultsQuery(runID string, results []models.RecordResult) (string, []any, error) {
	q := psql.Insert(tableResults).
		Columns("run_id", "sheet_row", "email", "status", "attempts", "error")
	for _, r := range results {
		q = q.Values(runID, r.Row, r.Email, string(r.Status), r.Attempts, r.Error)
	}
	return q.ToSql()
}

// NopJournal returns a journal that records nothing. It is used when no
// journal database is configured or the configured one cannot be opened.
func NopJournal() Journal { return nopJournal{} }

type nopJournal struct{}

func (nopJournal) StartRun(context.Context, models.RunSummary) error { return nil }

func (nopJournal) FinishRun(context.Context, models.RunSummary, []models.RecordResult) error {
	return nil
}

func (nopJournal) Close() error { return nil }
