// Package diag implements the compiler's two-tier diagnostic reporting:
// non-fatal diagnostics accumulate in a Sink; fatal diagnostics unwind to
// the driver as a distinguished error type instead of the C original's
// longjmp.
//
// Grounded on _examples/original_source/src/error.c's report() and
// include/acc/error.h's enum errorty (E_FATAL/E_WARNING/E_HIDE_TOKEN/
// E_HIDE_LOCATION and the E_TOKENIZER/E_OPTIONS/E_INTERNAL/E_PARSER
// composites).
package diag

import (
	"fmt"
	"strings"
)

// Kind classifies a diagnostic the way original_source's composite
// errorty values do, each carrying its own fatal/hide-token/hide-location
// behavior.
type Kind int

const (
	Error Kind = iota
	Warning
	Parser
	Tokenizer
	Options
	Internal
)

// Fatal reports whether a diagnostic of this kind unwinds the current
// compilation (original_source's E_FATAL bit).
func (k Kind) Fatal() bool {
	switch k {
	case Tokenizer, Options, Internal:
		return true
	default:
		return false
	}
}

// HideToken reports whether the diagnostic's source line/caret should be
// suppressed (E_HIDE_TOKEN).
func (k Kind) HideToken() bool {
	switch k {
	case Tokenizer, Options, Internal:
		return true
	default:
		return false
	}
}

// HideLocation reports whether the file:line:col prefix should be
// suppressed (E_HIDE_LOCATION).
func (k Kind) HideLocation() bool {
	switch k {
	case Options, Internal:
		return true
	default:
		return false
	}
}

func (k Kind) label() string {
	switch k {
	case Warning:
		return "warning"
	default:
		if k.Fatal() {
			return "FATAL"
		}
		return "error"
	}
}

// Position names a point in a source file, carrying the raw source line
// so a diagnostic can print its caret under the offending column.
type Position struct {
	File     string
	Line     int
	Col      int
	LineText string
}

func (p Position) String() string {
	file := p.File
	if file == "" {
		file = "<stdin>"
	}
	return fmt.Sprintf("%s:%d:%d", file, p.Line, p.Col)
}

// Diagnostic is one reported message, formatted on demand so the driver
// controls when/whether ANSI color is applied.
type Diagnostic struct {
	Kind Kind
	Pos  Position
	Msg  string
}

// Format renders d the way original_source's report() prints to stderr:
// an optional "file:line:col: " prefix, a bolded "FATAL:"/"warning:"/
// "error:" label, the message, and (unless hidden) the source line with a
// caret under the column.
func (d *Diagnostic) Format(colors bool) string {
	var b strings.Builder
	if !d.Kind.HideLocation() {
		fmt.Fprintf(&b, "%s: ", d.Pos)
	}
	if colors {
		b.WriteString(ansiBold)
		b.WriteString(ansiColorFor(d.Kind))
	}
	fmt.Fprintf(&b, "%s: ", d.Kind.label())
	if colors {
		b.WriteString(ansiReset)
	}
	b.WriteString(d.Msg)

	if !d.Kind.HideToken() && d.Pos.LineText != "" {
		b.WriteByte('\n')
		b.WriteString(d.Pos.LineText)
		b.WriteByte('\n')
		for i := 0; i < d.Pos.Col-1 && i < len(d.Pos.LineText); i++ {
			if d.Pos.LineText[i] == '\t' {
				b.WriteByte('\t')
			} else {
				b.WriteByte(' ')
			}
		}
		if colors {
			b.WriteString(ansiBold)
			b.WriteString(ansiGreen)
		}
		b.WriteByte('^')
		if colors {
			b.WriteString(ansiReset)
		}
	}
	return b.String()
}

func (d *Diagnostic) Error() string { return d.Format(false) }

const (
	ansiBold  = "\x1b[1m"
	ansiReset = "\x1b[0m"
	ansiRed   = "\x1b[31m"
	ansiMag   = "\x1b[35m"
	ansiGreen = "\x1b[32m"
)

func ansiColorFor(k Kind) string {
	if k == Warning {
		return ansiMag
	}
	return ansiRed
}

// FatalError wraps a fatal Diagnostic so the driver can discriminate it
// from ordinary errors via errors.As, the Go equivalent of
// original_source's longjmp(fatal_env, 1) unwind.
type FatalError struct {
	*Diagnostic
}

func (e *FatalError) Unwrap() error { return e.Diagnostic }

// Internalf builds a fatal Internal-kind diagnostic from a format string
// and its arguments, for reporting an internal invariant violation (e.g. the
// allocator's ErrNoRegisters) without panicking.
func Internalf(format string, args ...any) error {
	return &FatalError{&Diagnostic{
		Kind: Internal,
		Msg:  fmt.Sprintf(format, args...),
	}}
}
