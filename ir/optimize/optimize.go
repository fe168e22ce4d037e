// Package optimize implements the SSA promotion, constant folding and
// dead-block pruning passes of spec.md §4.3 (C5).
//
// Grounded on _examples/original_source/src/itm/opt.c's optimize/o_phiable/
// o_cfld/o_prune.
package optimize

import (
	"github.com/accgo/acc/ir"
	"github.com/accgo/acc/ir/analyze"
)

// Run applies the optimizer pipeline to c's entry container. level is the
// CLI optimization level (-O0..-O3); any level above zero runs the
// identical fixed pipeline (promote, fold, prune), matching the original's
// single `option_optimize() > 0` guard -- see DESIGN.md's Open Question
// resolution for why O1-O3 are not differentiated.
func Run(c *ir.Container, level int) {
	if level <= 0 {
		return
	}
	analyze.Run(c, analyze.Phiable)
	Promote(c)
	for {
		Fold(c)
		branchesFolded := foldBranches(c)
		Prune(c)
		if !branchesFolded {
			return
		}
	}
}
