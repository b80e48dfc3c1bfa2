// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

// ErrorClassification tells the retry loop whether a failed statement is
// worth repeating.
type ErrorClassification int

const (
	NonRetryable ErrorClassification = iota
	Retryable
)

// ErrorClassificator hides driver specific error codes from repositories.
type ErrorClassificator interface {
	Classify(err error) ErrorClassification

	// Constraint maps a constraint violation onto [ErrAlreadyExists] or
	// [ErrReferenceNotFound] and returns nil for anything else.
	Constraint(err error) error
}

// retryablePgCodes are the SQLSTATEs after which a statement may succeed
// on a second attempt: lost connections (class 08), rolled back
// transactions (class 40) and a server that is still starting (57P03).
var retryablePgCodes = map[string]struct{}{
	pgerrcode.ConnectionException:    {},
	pgerrcode.ConnectionDoesNotExist: {},
	pgerrcode.ConnectionFailure:      {},
	pgerrcode.TransactionRollback:    {},
	pgerrcode.SerializationFailure:   {},
	pgerrcode.DeadlockDetected:       {},
	pgerrcode.CannotConnectNow:       {},
}

// PostgresErrorClassifier implements [ErrorClassificator] for pgx.
type PostgresErrorClassifier struct{}

func NewPostgresErrorClassifier() *PostgresErrorClassifier {
	return &PostgresErrorClassifier{}
}

func (c *PostgresErrorClassifier) Classify(err error) ErrorClassification {
	if _, ok := retryablePgCodes[pgCode(err)]; ok {
		return Retryable
	}
	return NonRetryable
}

func (c *PostgresErrorClassifier) Constraint(err error) error {
	switch pgCode(err) {
	case pgerrcode.UniqueViolation:
		return ErrAlreadyExists
	case pgerrcode.ForeignKeyViolation:
		return ErrReferenceNotFound
	}
	return nil
}

// pgCode returns the SQLSTATE of a wrapped *pgconn.PgError, or "".
func pgCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}
