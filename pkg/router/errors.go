package router

import (
	"errors"
	"fmt"
)

// Build-time routing errors. All of them abort construction: a router either
// builds with every declared route intact, or it does not build at all.
var (
	// ErrMalformedPattern reports a pattern that does not parse: a dangling
	// or unknown % specifier, or a placeholder where only literals are
	// allowed.
	ErrMalformedPattern = errors.New("malformed pattern")

	// ErrArityMismatch reports a typed handler whose signature disagrees
	// with its pattern's placeholder list.
	ErrArityMismatch = errors.New("handler arity mismatch")

	// ErrDuplicateRoute reports two patterns that end on the same tree node.
	ErrDuplicateRoute = errors.New("duplicate route")

	// ErrAmbiguousPlaceholder reports two placeholders of different kinds
	// declared at the same tree position.
	ErrAmbiguousPlaceholder = errors.New("ambiguous placeholder")
)

// PatternError wraps one of the sentinel errors with the pattern it occurred
// in and, where known, the byte offset of the problem.
type PatternError struct {
	Pattern string
	Pos     int
	Detail  string
	Err     error
}

func (e *PatternError) Error() string {
	if e.Pos >= 0 {
		return fmt.Sprintf("pattern %q at offset %d: %s: %s", e.Pattern, e.Pos, e.Err, e.Detail)
	}
	return fmt.Sprintf("pattern %q: %s: %s", e.Pattern, e.Err, e.Detail)
}

func (e *PatternError) Unwrap() error {
	return e.Err
}

// patternErr builds a PatternError. pos may be -1 when no offset applies.
func patternErr(pattern string, pos int, err error, format string, args ...any) error {
	return &PatternError{
		Pattern: pattern,
		Pos:     pos,
		Detail:  fmt.Sprintf(format, args...),
		Err:     err,
	}
}
