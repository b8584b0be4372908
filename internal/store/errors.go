package store

import "errors"

// Sentinel errors returned by the journal. Callers should use [errors.Is]
// to match against these values.
var (
	// ErrRunNotFound is returned when a run update matches no journal row,
	// meaning the run was never started in this journal.
	ErrRunNotFound = errors.New("run was not found in the journal")

	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingStatement is returned when executing an INSERT or UPDATE
	// fails.
	ErrExecutingStatement = errors.New("failed to execute statement")

	// ErrBeginningTransaction is returned when the database driver cannot
	// start a new transaction.
	ErrBeginningTransaction = errors.New("failed to begin transaction")

	// ErrCommitingTransaction is returned when committing an open transaction
	// fails. The transaction is considered rolled back at this point.
	ErrCommitingTransaction = errors.New("failed to commit transaction")
)
