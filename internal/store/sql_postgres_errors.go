package store

import (
	"context"
	"database/sql/driver"
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

// ErrorClassification tells whether a failed registry query may succeed on
// a later attempt.
type ErrorClassification int

const (
	// NonRetryable is the default for constraint, syntax and data errors
	// and for anything unrecognised.
	NonRetryable ErrorClassification = iota

	// Retryable marks transient failures: lost connections, timeouts,
	// serialization failures and deadlocks.
	Retryable
)

// retryablePgCodes lists the PostgreSQL codes (classes 08, 40 and 57P03)
// worth retrying. See
// https://www.postgresql.org/docs/current/errcodes-appendix.html.
var retryablePgCodes = map[string]struct{}{
	pgerrcode.ConnectionException:                     {},
	pgerrcode.ConnectionDoesNotExist:                  {},
	pgerrcode.ConnectionFailure:                       {},
	pgerrcode.TransactionRollback:                     {},
	pgerrcode.SerializationFailure:                    {},
	pgerrcode.DeadlockDetected:                        {},
	pgerrcode.CannotConnectNow:                        {},
	pgerrcode.AdminShutdown:                           {},
	pgerrcode.TooManyConnections:                      {},
	pgerrcode.QueryCanceled:                           {},
	pgerrcode.LockNotAvailable:                        {},
	pgerrcode.InsufficientResources:                   {},
	pgerrcode.SQLClientUnableToEstablishSQLConnection: {},
}

// PostgresErrorClassifier implements [ErrorClassificator] for the pgx driver.
type PostgresErrorClassifier struct{}

func NewPostgresErrorClassifier() *PostgresErrorClassifier {
	return &PostgresErrorClassifier{}
}

// Classify unwraps err to a *pgconn.PgError and looks its code up. Failed
// connection attempts, broken driver connections and expired deadlines are
// retryable as well.
func (c *PostgresErrorClassifier) Classify(err error) ErrorClassification {
	if err == nil {
		return NonRetryable
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return ClassifyPgError(pgErr)
	}

	var connectErr *pgconn.ConnectError
	if errors.As(err, &connectErr) ||
		errors.Is(err, driver.ErrBadConn) ||
		errors.Is(err, context.DeadlineExceeded) {
		return Retryable
	}

	return NonRetryable
}

// ClassifyPgError maps a PostgreSQL error code to a classification.
func ClassifyPgError(pgErr *pgconn.PgError) ErrorClassification {
	if _, ok := retryablePgCodes[pgErr.Code]; ok {
		return Retryable
	}
	return NonRetryable
}
