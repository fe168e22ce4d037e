// Command acc is the compiler driver: it parses the command line, then
// for each input runs construction → optimization → target lowering →
// register allocation → emission in that fixed order (spec.md §5).
//
// Grounded on _examples/rcornwell-S370/main.go's getopt-parse-then-slog-
// setup startup sequence, adapted from a long-running server process to
// a one-shot batch CLI (spec.md §5 "no suspension points").
package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/accgo/acc/diag"
	"github.com/accgo/acc/internal/logger"
	"github.com/accgo/acc/internal/testprogram"
	"github.com/accgo/acc/ir"
	"github.com/accgo/acc/ir/analyze"
	"github.com/accgo/acc/ir/optimize"
	"github.com/accgo/acc/options"
	"github.com/accgo/acc/target"
	"github.com/accgo/acc/target/x86"
)

const version = "acc 0.1.0"

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	opts, err := options.Parse(args)
	if err != nil {
		reportFatal(stderr, err, useColor(nil))
		return 1
	}

	if opts.Version {
		fmt.Fprintln(stdout, version)
		return 0
	}
	if opts.Help != options.HelpNone {
		fmt.Fprint(stdout, opts.Help.Text())
		return 0
	}

	log := slog.New(logger.NewHandler(stderr, &slog.HandlerOptions{Level: levelFor(opts.Verbose)}))

	out := stdout
	var outFile *os.File
	if opts.Output != "" {
		outFile, err = os.Create(opts.Output)
		if err != nil {
			fmt.Fprintf(stderr, "error: %s: %v\n", opts.Output, err)
			return 1
		}
		defer outFile.Close()
		out = outFile
	}

	status := 0
	for _, input := range opts.Inputs {
		if err := compileFile(out, log, input, opts); err != nil {
			var fe *diag.FatalError
			if errors.As(err, &fe) {
				reportFatal(stderr, fe, useColor(opts))
				status = 1
				continue
			}
			fmt.Fprintln(stderr, err)
			status = 1
		}
	}
	return status
}

// compileFile runs the fixed construction -> optimize -> lower -> regalloc
// -> emit pipeline for one input (spec.md §5's ordering invariant). It
// stands in for what would be tokenize -> parse -> build in a complete
// front end: the repository carries no tokenizer/parser (spec.md §1, §9),
// so the IR itself comes from internal/testprogram rather than input.
func compileFile(w io.Writer, log *slog.Logger, input string, opts *options.Options) error {
	if input != "-" {
		if _, err := os.Stat(input); err != nil {
			return &diag.FatalError{Diagnostic: &diag.Diagnostic{
				Kind: diag.Tokenizer,
				Msg:  fmt.Sprintf("%s: %v", input, err),
			}}
		}
	}
	log.Debug("compiling", "input", input, "optlevel", opts.OptLevel)

	t := target.Target{CPU: opts.CPU}
	containers := testprogram.Build()

	for _, c := range containers {
		if c.Entry == nil {
			continue
		}
		analyze.Run(c, analyze.Used|analyze.Lifetime)
		optimize.Run(c, opts.OptLevel)

		if opts.EmitIR {
			continue
		}

		x86.Lower(c, t)
		if err := x86.Allocate(c, t); err != nil {
			return diag.Internalf("%s: register allocation failed: %v", c.Name, err)
		}
	}

	if opts.EmitIR {
		for _, c := range containers {
			if err := ir.Fprint(w, c, c.Tags); err != nil {
				return err
			}
		}
		return nil
	}

	return x86.Emit(w, containers, t, opts.Flavor)
}

func levelFor(verbose bool) slog.Leveler {
	if verbose {
		return slog.LevelDebug
	}
	return slog.LevelInfo
}

// useColor mirrors original_source/src/error.c's
// isext(EX_DIAGNOSTICS_COLOR) || getenv("ACC_COLORS") gate: color is on
// when -fdiagnostics-color is enabled or ACC_COLORS is set (spec.md §6
// "Environment"). opts is nil when the command line itself failed to
// parse, leaving ACC_COLORS as the only switch.
func useColor(opts *options.Options) bool {
	if opts != nil && opts.Extensions.Has(options.ExtDiagnosticsColor) {
		return true
	}
	_, set := os.LookupEnv("ACC_COLORS")
	return set
}

func reportFatal(w io.Writer, err error, color bool) {
	var fe *diag.FatalError
	if errors.As(err, &fe) {
		fmt.Fprintln(w, fe.Format(color))
		return
	}
	fmt.Fprintln(w, err)
}
