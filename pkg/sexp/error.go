package sexp

import (
	"fmt"
)

// Span represents a contiguous slice of the original string, retained as
// physical indices rather than a copy of the text itself.
type Span struct {
	start int
	end   int
}

// NewSpan constructs a new span whilst checking the internal invariants are
// maintained.
func NewSpan(start int, end int) Span {
	if start > end {
		panic("invalid span")
	}

	return Span{start, end}
}

// Start returns the starting index of this span in the original string.
func (p *Span) Start() int { return p.start }

// End returns one past the last index of this span in the original string.
func (p *Span) End() int { return p.end }

// SyntaxError is a structured error which retains the index into the original
// string where an error occurred, along with an error message.
type SyntaxError struct {
	// Rune index into string being parsed where error arose.
	span Span
	// Error message being reported
	msg string
}

// NewSyntaxError simply constructs a new syntax error.
func NewSyntaxError(span Span, msg string) *SyntaxError {
	return &SyntaxError{span, msg}
}

// Span returns the span of the original text on which this error is reported.
func (p *SyntaxError) Span() Span {
	return p.span
}

// Message returns the message to be reported.
func (p *SyntaxError) Message() string {
	return p.msg
}

// Error implements the error interface.
func (p *SyntaxError) Error() string {
	return fmt.Sprintf("%d:%d:%s", p.span.Start(), p.span.End(), p.Message())
}
