package query

import (
	"errors"
	"fmt"
)

// TranslationError represents a failure to translate an operator chain
// into the Query Model.
//
// Translation errors are raised synchronously at Build time and never
// silently degraded: an unsupported shape aborts the whole chain.
type TranslationError struct {
	// Code identifies the error category.
	Code TranslationErrorCode

	// Message is a human-readable description.
	Message string

	// Detail names the offending member, function, or operator.
	Detail string
}

// TranslationErrorCode categorizes translation errors.
type TranslationErrorCode string

const (
	// ErrCodeUnsupportedExpression indicates an expression shape the
	// translator cannot map to ES|QL.
	ErrCodeUnsupportedExpression TranslationErrorCode = "UNSUPPORTED_EXPRESSION"

	// ErrCodeUnmappedFunction indicates a marker function absent from
	// the function table.
	ErrCodeUnmappedFunction TranslationErrorCode = "UNMAPPED_FUNCTION"

	// ErrCodeMalformedJoin indicates a join predicate outside the
	// supported shapes (equality, comparison, AND, search functions).
	ErrCodeMalformedJoin TranslationErrorCode = "MALFORMED_JOIN"

	// ErrCodeMissingSource indicates a chain with no From/Row source.
	ErrCodeMissingSource TranslationErrorCode = "MISSING_SOURCE"

	// ErrCodeUnknownMember indicates a member the resolver cannot map
	// to a wire field, or a member marked ignored.
	ErrCodeUnknownMember TranslationErrorCode = "UNKNOWN_MEMBER"
)

// Error implements the error interface.
func (e *TranslationError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.Detail)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// IsTranslationError reports whether err is (or wraps) a
// TranslationError.
func IsTranslationError(err error) bool {
	var te *TranslationError
	return errors.As(err, &te)
}

func newTranslationError(code TranslationErrorCode, detail, format string, args ...any) *TranslationError {
	return &TranslationError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Detail:  detail,
	}
}
