package format

import "fmt"

// ParseError reports a failure to decode a document. Line and Column are
// 1-based and zero when the underlying library does not report a position.
type ParseError struct {
	Format string
	Line   int
	Column int
	Err    error
}

func (e *ParseError) Error() string {
	switch {
	case e.Line > 0 && e.Column > 0:
		return fmt.Sprintf("parse %s at line %d, column %d: %v", e.Format, e.Line, e.Column, e.Err)
	case e.Line > 0:
		return fmt.Sprintf("parse %s at line %d: %v", e.Format, e.Line, e.Err)
	default:
		return fmt.Sprintf("parse %s: %v", e.Format, e.Err)
	}
}

func (e *ParseError) Unwrap() error { return e.Err }

// EncodeError reports a value the format cannot represent.
type EncodeError struct {
	Format string
	Err    error
}

func (e *EncodeError) Error() string {
	return fmt.Sprintf("encode %s: %v", e.Format, e.Err)
}

func (e *EncodeError) Unwrap() error { return e.Err }
