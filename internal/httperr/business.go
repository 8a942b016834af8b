package httperr

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

const (
	CodeNotFound                = "not_found"
	CodeInvalidState            = "invalid_state"
	CodeInvalidSalon            = "invalid_salon"
	CodeTargetNotFree           = "target_not_free"
	CodeSourceNotBound          = "source_not_bound"
	CodeImmutableFieldViolation = "immutable_field_violation"
	CodeBusy                    = "busy"
	CodeTableBlocked            = "table_blocked"
	CodeInvalidRequest          = "invalid_request"
)

type BusinessError struct {
	Code string
}

func (e BusinessError) Error() string {
	return e.Code
}

func ErrBusiness(code string) error {
	return BusinessError{Code: code}
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

// AsBusiness returns the business code carried by err, if any.
func AsBusiness(err error) (string, bool) {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code, true
	}
	var ve ValidationError
	if errors.As(err, &ve) {
		return CodeInvalidRequest, true
	}
	return "", false
}

// ValidationError lists every rejected field of a request.
type ValidationError struct {
	Fields []string
}

func (e ValidationError) Error() string {
	return CodeInvalidRequest + ": " + strings.Join(e.Fields, ", ")
}

func ErrValidation(fields ...string) error {
	return ValidationError{Fields: fields}
}

// IsUniqueViolation reports a unique constraint failure from postgres or sqlite.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
