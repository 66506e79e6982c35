package errors

import (
	stdErrors "errors"

	"github.com/jackc/pgconn"
)

// Dump flattens an error chain into loggable fields, surfacing Postgres
// driver details when present.
type DumpResult struct {
	TopMessage   string
	Code         string
	Chain        []string
	PGCode       string
	PGDetail     string
	PGMessage    string
	PGConstraint string
}

func Dump(err error) DumpResult {
	result := DumpResult{}
	if err == nil {
		return result
	}

	result.TopMessage = err.Error()
	if typed := As(err); typed != nil {
		result.Code = string(typed.Code())
	}

	for cursor := err; cursor != nil; cursor = stdErrors.Unwrap(cursor) {
		result.Chain = append(result.Chain, cursor.Error())
	}

	var pgErr *pgconn.PgError
	if stdErrors.As(err, &pgErr) {
		result.PGCode = pgErr.Code
		result.PGDetail = pgErr.Detail
		result.PGMessage = pgErr.Message
		result.PGConstraint = pgErr.ConstraintName
	}

	return result
}
