// Package diag is the diagnostic bus shared by every compiler pass. Passes
// append reports; nothing aborts a declaration on first error, mirroring
// how the teacher's internal/core/adt keeps a *Bottom as a value rather
// than unwinding the stack.
package diag

import (
	"fmt"

	"github.com/folidity-lang/folidity/internal/source"
)

// Kind identifies which pass produced a report.
type Kind int

const (
	Lexer Kind = iota
	Parser
	Semantic
	Type
	Verification
)

func (k Kind) String() string {
	switch k {
	case Lexer:
		return "lexer"
	case Parser:
		return "parser"
	case Semantic:
		return "semantic"
	case Type:
		return "type"
	case Verification:
		return "verification"
	default:
		return "unknown"
	}
}

// Level is the severity of a report.
type Level int

const (
	Info Level = iota
	Warning
	Error
)

func (l Level) String() string {
	switch l {
	case Info:
		return "info"
	case Warning:
		return "warning"
	case Error:
		return "error"
	default:
		return "unknown"
	}
}

// Report is a single diagnostic. Notes nest sub-reports at the same span
// granularity, e.g. an unsat-core's contributing constraints attached to
// the parent Verification error.
type Report struct {
	Kind    Kind
	Level   Level
	Span    source.Span
	Message string
	Notes   []Report
}

func (r Report) String() string {
	return fmt.Sprintf("%s %s: %s %s", r.Kind, r.Level, r.Message, r.Span)
}

func newf(k Kind, l Level, span source.Span, format string, args []interface{}) Report {
	return Report{Kind: k, Level: l, Span: span, Message: fmt.Sprintf(format, args...)}
}

func SemanticError(span source.Span, format string, args ...interface{}) Report {
	return newf(Semantic, Error, span, format, args)
}

func SemanticWarning(span source.Span, format string, args ...interface{}) Report {
	return newf(Semantic, Warning, span, format, args)
}

func TypeError(span source.Span, format string, args ...interface{}) Report {
	return newf(Type, Error, span, format, args)
}

func ParserError(span source.Span, format string, args ...interface{}) Report {
	return newf(Parser, Error, span, format, args)
}

func LexerError(span source.Span, format string, args ...interface{}) Report {
	return newf(Lexer, Error, span, format, args)
}

func VerificationError(span source.Span, format string, args ...interface{}) Report {
	return newf(Verification, Error, span, format, args)
}

// WithNotes attaches nested notes to a report and returns it.
func (r Report) WithNotes(notes ...Report) Report {
	r.Notes = append(r.Notes, notes...)
	return r
}

// Bus is the single mutable diagnostic sink owned by a Contract. Every pass
// receives it by reference and appends; there is no channel or lock since
// compilation is single-threaded cooperative (see spec §5).
type Bus struct {
	reports []Report
}

// Push appends a report, preserving insertion order across passes.
func (b *Bus) Push(r Report) {
	b.reports = append(b.reports, r)
}

// Pushf is a convenience wrapper for Push(newf(...)).
func (b *Bus) Pushf(k Kind, l Level, span source.Span, format string, args ...interface{}) {
	b.Push(newf(k, l, span, format, args))
}

func (b *Bus) All() []Report {
	return b.reports
}

// HasErrors reports whether any Error-level diagnostic was recorded. Per
// spec §7, this gates progression past `verify`, and `compile` additionally
// refuses to emit when true.
func (b *Bus) HasErrors() bool {
	for _, r := range b.reports {
		if r.Level == Error {
			return true
		}
	}
	return false
}

func (b *Bus) Reset() {
	b.reports = b.reports[:0]
}
