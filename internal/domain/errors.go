package domain

import "errors"

// Route-level error codes. Every failure surfaced to a widget client maps to
// exactly one of these; the error message IS the wire code.
var (
	// ErrBadRequest indicates malformed or missing input.
	ErrBadRequest = errors.New("bad_request")

	// ErrNotFound indicates a referenced document does not exist.
	ErrNotFound = errors.New("document_not_found")

	// ErrDatabase indicates a store operation failed.
	ErrDatabase = errors.New("database_error")

	// ErrNotAuthenticated indicates a cross-tenant ownership mismatch:
	// the session's company does not own the referenced document.
	ErrNotAuthenticated = errors.New("not_authenticated_request")

	// ErrDuplicatedUniqueField indicates a unique-constraint violation,
	// e.g. creating a second person with the same email.
	ErrDuplicatedUniqueField = errors.New("duplicated_unique_field")
)

// ErrorCode resolves an error chain to its wire code. Anything that is not one
// of the taxonomy sentinels is reported as a database error, matching the
// catch-all behavior of the store layer.
func ErrorCode(err error) string {
	switch {
	case errors.Is(err, ErrBadRequest):
		return ErrBadRequest.Error()
	case errors.Is(err, ErrNotFound):
		return ErrNotFound.Error()
	case errors.Is(err, ErrNotAuthenticated):
		return ErrNotAuthenticated.Error()
	case errors.Is(err, ErrDuplicatedUniqueField):
		return ErrDuplicatedUniqueField.Error()
	default:
		return ErrDatabase.Error()
	}
}
