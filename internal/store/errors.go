package store

import "errors"

// Domain level failures. Match them with [errors.Is].
var (
	ErrNotFound           = errors.New("record was not found")
	ErrLoginAlreadyExists = errors.New("login already exists")
	ErrNoUserWasFound     = errors.New("no user was found")

	// ErrAlreadyExists reports a uniqueness violation.
	ErrAlreadyExists = errors.New("record already exists")

	// ErrReferenceNotFound reports a row pointing at a missing phase,
	// customer, user or parent item.
	ErrReferenceNotFound = errors.New("referenced record does not exist")

	// ErrUnknownColumn is returned for an update naming a column outside the
	// repository's writable set.
	ErrUnknownColumn = errors.New("column cannot be updated")
)

// SQL level failures, wrapped around the driver error.
var (
	ErrBuildingSQLQuery     = errors.New("error building sql query")
	ErrExecutingQuery       = errors.New("error executing sql query")
	ErrBeginningTransaction = errors.New("failed to begin transaction")
	ErrCommitingTransaction = errors.New("failed to commit transaction")
	ErrExecutingStatement   = errors.New("failed to execute statement")
	ErrScanningRow          = errors.New("failed to scan row")
	ErrScanningRows         = errors.New("failed to scan rows")
)
