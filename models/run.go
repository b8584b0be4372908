// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// RecordStatus is the outcome of registering one [Employee].
type RecordStatus string

const (
	// RecordRegistered means the form was submitted successfully.
	RecordRegistered RecordStatus = "registered"
	// RecordSkipped means a mandatory field was missing; no attempt was made.
	RecordSkipped RecordStatus = "skipped"
	// RecordFailed means every attempt failed.
	RecordFailed RecordStatus = "failed"
)

// RecordResult is the outcome of one spreadsheet row.
type RecordResult struct {
	Row      int          `json:"row"`
	Email    string       `json:"email"`
	Status   RecordStatus `json:"status"`
	Attempts int          `json:"attempts"`
	// Error is the last failure message, already redacted.
	Error string `json:"error,omitempty"`
}

// RegisterSummary aggregates the outcome of a registration pass.
// Skipped records are counted in Failures.
type RegisterSummary struct {
	Successes int            `json:"successes"`
	Failures  int            `json:"failures"`
	Results   []RecordResult `json:"results"`
}

// Total is the number of processed records.
func (s RegisterSummary) Total() int {
	return s.Successes + s.Failures
}

// RunSummary describes one robot run from start to finish.
type RunSummary struct {
	RunID      string    `json:"run_id"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
	Success    bool      `json:"success"`
	Successes  int       `json:"successes"`
	Failures   int       `json:"failures"`
	// Error is the fatal error message, already redacted. Empty on success.
	Error string `json:"error,omitempty"`
	// LogFile is the path of the run log, referenced by the failure report.
	LogFile string `json:"log_file"`
}
