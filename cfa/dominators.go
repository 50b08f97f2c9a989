package cfa

import (
	"github.com/m4rs-mt/ILGPU-sub005/ir"

	"github.com/m4rs-mt/ILGPU-sub005/cfa/cfaapi"
)

// Dominators is the Cooper-Harvey-Kennedy immediate-dominator table over a
// Direction's reverse-post-order (spec.md §4.3). Constructed with Forwards,
// it answers ordinary dominance queries; constructed with Backwards, it
// answers post-dominance queries (spec.md property 5).
//
// idomsInRPO[i] is the RPO index of the immediate dominator of the block at
// RPO index i; idomsInRPO[0] == 0 by convention (the root is its own idom).
// order.Blocks[i] is the block at RPO index i. Both slices have one entry per
// reachable block, matching the teacher's calculateDominators
// (ssa/pass_cfg.go), generalized to be parametric on Direction and to report
// unreachable-predecessor gaps rather than silently looping on them.
type Dominators struct {
	order      *Order
	idomsInRPO []int
}

// BuildMethodDominators builds the ordinary (Forwards) dominator table for m.
func BuildMethodDominators(m *ir.Method) *Dominators {
	return BuildDominators(ReversePostOrderOf(m, Forwards))
}

// BuildMethodPostDominators builds the post-dominator table for m: dominators computed
// with Backwards (spec.md §4.3), inserting a virtual exit automatically if m
// has zero or more than one return block.
func BuildMethodPostDominators(m *ir.Method) *Dominators {
	return BuildDominators(ReversePostOrderOf(m, Backwards))
}

// BuildDominators runs the CHK fix-point over order (which must already be a
// reverse-post-order traversal) and returns the resulting table.
func BuildDominators(order *Order) *Dominators {
	n := len(order.Blocks)
	idoms := make([]int, n)
	for i := range idoms {
		idoms[i] = -1
	}
	idoms[0] = 0

	changed := true
	for iterations := 0; changed; iterations++ {
		changed = false
		for i := 1; i < n; i++ {
			blk := order.Blocks[i]
			newIdom := -1
			for _, pred := range order.Direction.Predecessors(blk) {
				predIdx := order.IndexOf(pred)
				if predIdx < 0 || idoms[predIdx] < 0 {
					// Unreachable-so-far predecessor (e.g. the other side of
					// a loop not yet processed); the paper's algorithm
					// tolerates this by skipping it, which is why several
					// passes may be required before quiescence.
					continue
				}
				if newIdom < 0 {
					newIdom = predIdx
					continue
				}
				newIdom = intersect(idoms, newIdom, predIdx)
			}
			if newIdom >= 0 && idoms[i] != newIdom {
				idoms[i] = newIdom
				changed = true
			}
		}
		if cfaapi.DominatorLoggingEnabled {
			logger.WithField("iteration", iterations).Debug("dominator fix-point pass")
		}
	}

	return &Dominators{order: order, idomsInRPO: idoms}
}

// intersect is the CHK Intersect procedure: walk both fingers up to their
// immediate dominators, always advancing whichever is further from the root
// in RPO space, until they meet at the closest common ancestor.
func intersect(idoms []int, l, r int) int {
	for l != r {
		for l < r {
			r = idoms[r]
		}
		for r < l {
			l = idoms[l]
		}
	}
	return l
}

// Dominates reports whether a dominates b (reflexively: a block dominates
// itself).
func (d *Dominators) Dominates(a, b *ir.BasicBlock) bool {
	ai, bi := d.order.IndexOf(a), d.order.IndexOf(b)
	if ai < 0 || bi < 0 {
		return false
	}
	if !d.reachable(ai) || !d.reachable(bi) {
		return false
	}
	return intersect(d.idomsInRPO, ai, bi) == ai
}

// reachable reports whether the block at RPO index i has a resolved idom
// (the root, index 0, is always reachable by convention).
func (d *Dominators) reachable(i int) bool {
	return i == 0 || d.idomsInRPO[i] >= 0
}

// ImmediateDominator returns b's immediate dominator, or nil if b is
// unreachable under this table's direction.
func (d *Dominators) ImmediateDominator(b *ir.BasicBlock) *ir.BasicBlock {
	bi := d.order.IndexOf(b)
	if bi < 0 {
		return nil
	}
	idomIdx := d.idomsInRPO[bi]
	if idomIdx < 0 {
		return nil
	}
	return d.order.Blocks[idomIdx]
}

// GetImmediateCommonDominator folds Intersect across blocks, returning the
// closest ancestor that dominates every one of them. It is an error to call
// this with no blocks (spec.md §7).
func (d *Dominators) GetImmediateCommonDominator(blocks ...*ir.BasicBlock) (*ir.BasicBlock, error) {
	if len(blocks) == 0 {
		return nil, ErrEmptyBlockSet
	}
	common := d.order.IndexOf(blocks[0])
	for _, b := range blocks[1:] {
		common = intersect(d.idomsInRPO, common, d.order.IndexOf(b))
	}
	return d.order.Blocks[common], nil
}
