package diag

// Sink accumulates non-fatal diagnostics (Parser errors, Warnings) over the
// course of one compilation unit. Fatal diagnostics never reach a Sink --
// they are returned immediately as a *FatalError, the Go substitute for
// original_source's longjmp(fatal_env, 1).
type Sink struct {
	diags    []*Diagnostic
	warnings bool
}

// NewSink creates a Sink. warnings mirrors original_source's
// option_warnings(): when false, Warning-kind reports are silently dropped
// instead of accumulated.
func NewSink(warnings bool) *Sink {
	return &Sink{warnings: warnings}
}

// Report records a diagnostic of the given kind at pos. If kind is fatal,
// Report does not record anything and instead returns a *FatalError for
// the caller to propagate up the call stack. If kind is Warning and
// warnings are disabled, the report is silently dropped and Report returns
// nil. Otherwise the diagnostic is appended and Report returns nil.
func (s *Sink) Report(kind Kind, pos Position, msg string) error {
	d := &Diagnostic{Kind: kind, Pos: pos, Msg: msg}
	if kind.Fatal() {
		return &FatalError{d}
	}
	if kind == Warning && !s.warnings {
		return nil
	}
	s.diags = append(s.diags, d)
	return nil
}

// Diagnostics returns every diagnostic recorded so far, in report order.
func (s *Sink) Diagnostics() []*Diagnostic {
	return s.diags
}

// HasErrors reports whether any non-warning diagnostic was recorded.
func (s *Sink) HasErrors() bool {
	for _, d := range s.diags {
		if d.Kind != Warning {
			return true
		}
	}
	return false
}
