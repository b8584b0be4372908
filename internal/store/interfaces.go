package store

import (
	"context"

	"github.com/MKhiriev/go-rpa-cadastro/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/journal_mock.go -package=mock

// Journal records the history of robot runs.
type Journal interface {
	// StartRun inserts run as in progress.
	StartRun(ctx context.Context, run models.RunSummary) error
	// FinishRun stores the outcome of a started run together with the
	// per-record results of its registration pass.
	FinishRun(ctx context.Context, run models.RunSummary, results []models.RecordResult) error
	Close() error
}
