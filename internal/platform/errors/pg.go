package errors

import (
	stderrs "errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// pgCodes classifies the SQLSTATEs the cache table can hit; anything else is DB
var pgCodes = map[string]ErrorCode{
	"23505": ErrorCodeDuplicateKey,    // unique_violation
	"22001": ErrorCodeInvalidArgument, // string_data_right_truncation

	// worth retrying later
	"40001": ErrorCodeUnavailable, // serialization_failure
	"40P01": ErrorCodeUnavailable, // deadlock_detected
	"57014": ErrorCodeUnavailable, // query_canceled, i.e. statement_timeout
	"57P01": ErrorCodeUnavailable, // admin_shutdown
	"57P03": ErrorCodeUnavailable, // cannot_connect_now
	"25006": ErrorCodeUnavailable, // read_only_sql_transaction on a replica
}

// ExtractPgError returns the *pgconn.PgError at the root of err
func ExtractPgError(err error) (*pgconn.PgError, bool) {
	var pgErr *pgconn.PgError
	ok := stderrs.As(Root(err), &pgErr)
	return pgErr, ok
}

// IsSQLState reports whether err is a Postgres error with the given SQLSTATE
func IsSQLState(err error, state string) bool {
	pgErr, ok := ExtractPgError(err)
	return ok && pgErr.Code == state
}

// DBErrorCode classifies a Postgres error; ok is false for anything else
func DBErrorCode(err error) (code ErrorCode, ok bool) {
	pgErr, ok := ExtractPgError(err)
	if !ok {
		return ErrorCodeUnknown, false
	}
	if c, known := pgCodes[pgErr.Code]; known {
		return c, true
	}
	return ErrorCodeDB, true
}

// FromPostgres wraps err under msg with its classified code; nil stays nil
func FromPostgres(err error, msg string) error {
	if err == nil {
		return nil
	}
	code, _ := DBErrorCode(err)
	if code == ErrorCodeUnknown {
		code = ErrorCodeDB
	}
	return Wrap(err, code, msg)
}
