package options

import (
	"errors"
	"testing"

	"github.com/accgo/acc/diag"
	"github.com/accgo/acc/target"
)

func TestParseDefaults(t *testing.T) {
	o, err := Parse([]string{"a.c"})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if o.OptLevel != 0 {
		t.Errorf("want OptLevel 0, got %d", o.OptLevel)
	}
	if !o.Warnings {
		t.Error("want warnings enabled by default")
	}
	if o.Flavor != target.FlavorATT {
		t.Errorf("want default flavor AT&T, got %v", o.Flavor)
	}
	if len(o.Inputs) != 1 || o.Inputs[0] != "a.c" {
		t.Errorf("want Inputs = [a.c], got %v", o.Inputs)
	}
}

func TestParseOptimizationLevel(t *testing.T) {
	o, err := Parse([]string{"-O2", "a.c"})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if o.OptLevel != 2 {
		t.Errorf("want OptLevel 2, got %d", o.OptLevel)
	}
}

func TestParseExtensionToggle(t *testing.T) {
	o, err := Parse([]string{"-fbool", "-fvlas", "-fno-bool", "a.c"})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if o.Extensions.Has(ExtBool) {
		t.Error("want ExtBool disabled after -fno-bool")
	}
	if !o.Extensions.Has(ExtVLAs) {
		t.Error("want ExtVLAs enabled")
	}
}

func TestParseStdC99EnablesExtensionSet(t *testing.T) {
	o, err := Parse([]string{"-std=c99", "a.c"})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if !o.Extensions.Has(ExtRestrict) || !o.Extensions.Has(ExtComplex) {
		t.Errorf("want -std=c99 to enable restrict+complex, got %v", o.Extensions)
	}
}

func TestParseAsmFlavor(t *testing.T) {
	o, err := Parse([]string{"-masm=nasm", "a.c"})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if o.Flavor != target.FlavorNASM {
		t.Errorf("want NASM flavor, got %v", o.Flavor)
	}
}

func TestParseCPUSelection(t *testing.T) {
	o, err := Parse([]string{"-mcpui686", "a.c"})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if o.CPU.Name != "i686" {
		t.Errorf("want CPU i686, got %s", o.CPU.Name)
	}
}

func TestParseNoInputsIsFatalOptionsError(t *testing.T) {
	_, err := Parse(nil)
	if err == nil {
		t.Fatal("want an error when no input files are given")
	}
	var fe *diag.FatalError
	if !errors.As(err, &fe) {
		t.Fatalf("want *diag.FatalError, got %T", err)
	}
	if fe.Kind != diag.Options {
		t.Errorf("want diag.Options kind, got %v", fe.Kind)
	}
}

func TestParseUnknownExtensionIsError(t *testing.T) {
	_, err := Parse([]string{"-fnosuchthing", "a.c"})
	if err == nil {
		t.Fatal("want an error for an unknown extension")
	}
}

func TestParseOutputFlag(t *testing.T) {
	o, err := Parse([]string{"-o", "out.s", "a.c"})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if o.Output != "out.s" {
		t.Errorf("want Output out.s, got %q", o.Output)
	}
}

func TestParseEmitIRFlag(t *testing.T) {
	o, err := Parse([]string{"-Sir", "a.c"})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if !o.EmitIR {
		t.Error("want EmitIR true")
	}
}
