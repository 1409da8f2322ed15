package util

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DomainError standardizes application errors.
type DomainError struct {
	Code       string
	Message    string
	HTTPStatus int
	Details    map[string]any
	Err        error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewDomainError constructs a DomainError.
func NewDomainError(code, message string, status int, details map[string]any) *DomainError {
	return &DomainError{Code: code, Message: message, HTTPStatus: status, Details: details}
}

func NewValidationError(message string, details map[string]any) error {
	return NewDomainError("VALIDATION_FAILED", message, http.StatusBadRequest, details)
}

func NewNotFound(resource string, details map[string]any) error {
	if details == nil {
		details = map[string]any{}
	}
	return &DomainError{
		Code:       "NOT_FOUND",
		Message:    fmt.Sprintf("%s not found", resource),
		HTTPStatus: http.StatusNotFound,
		Details:    details,
	}
}

func NewUnauthorized(message string) error {
	return NewDomainError("UNAUTHORIZED", message, http.StatusUnauthorized, nil)
}

func NewForbidden(message string) error {
	return NewDomainError("FORBIDDEN", message, http.StatusForbidden, nil)
}

func NewConflict(message string, details map[string]any) error {
	return NewDomainError("CONFLICT", message, http.StatusConflict, details)
}

// NewDependencyError reports a delete blocked by referencing records.
// Surfaced as 400 with an explanatory message rather than a bare FK error.
func NewDependencyError(message string, details map[string]any) error {
	return NewDomainError("DEPENDENCY_VIOLATION", message, http.StatusBadRequest, details)
}

// NewStoreUnavailable reports the backing store being unreachable, with
// operator-facing remediation text.
func NewStoreUnavailable(err error) error {
	return &DomainError{
		Code:       "STORE_UNAVAILABLE",
		Message:    "database unavailable; check POSTGRES_DSN, credentials and that migrations have run",
		HTTPStatus: http.StatusServiceUnavailable,
		Err:        err,
	}
}

func NewInternalError(err error) error {
	return &DomainError{
		Code:       "INTERNAL_ERROR",
		Message:    "internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// Postgres error classes/codes translated at the handler boundary.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgConnectionClass     = "08"
	pgInvalidAuth         = "28P01"
	pgUndefinedTable      = "42P01"
)

// ToDomainError converts generic errors to DomainError, translating
// store-specific error codes into the service taxonomy.
func ToDomainError(err error) *DomainError {
	if err == nil {
		return nil
	}
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return NewNotFound("resource", nil).(*DomainError)
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case pgErr.Code == pgUniqueViolation:
			return NewConflict("duplicate value violates a unique constraint", map[string]any{
				"constraint": pgErr.ConstraintName,
			}).(*DomainError)
		case pgErr.Code == pgForeignKeyViolation:
			return NewDependencyError("record is referenced by other records", map[string]any{
				"constraint": pgErr.ConstraintName,
			}).(*DomainError)
		case pgErr.Code == pgInvalidAuth, pgErr.Code == pgUndefinedTable,
			len(pgErr.Code) >= 2 && pgErr.Code[:2] == pgConnectionClass:
			return NewStoreUnavailable(pgErr).(*DomainError)
		}
	}
	if errors.As(err, new(*pgconn.ConnectError)) {
		return NewStoreUnavailable(err).(*DomainError)
	}
	return NewInternalError(err).(*DomainError)
}

func MapError(err error) error {
	if err == nil {
		return nil
	}
	return ToDomainError(err)
}
