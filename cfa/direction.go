package cfa

import "github.com/m4rs-mt/ILGPU-sub005/ir"

// Direction parametrizes every analysis in this package as forwards or
// backwards without code duplication (spec.md §4.1). It is kept as a
// zero-sized interface value rather than a generic type parameter because
// dominators, the movement oracle, and the fix-point engine all need to
// select a Direction at runtime (post-dominators vs. dominators over the
// same CFG shape), not at compile time.
type Direction interface {
	// Predecessors returns b's predecessors under this direction.
	Predecessors(b *ir.BasicBlock) []*ir.BasicBlock
	// Successors returns b's successors under this direction.
	Successors(b *ir.BasicBlock) []*ir.BasicBlock
	// name identifies the direction for debug logging.
	name() string
}

type forwards struct{}

func (forwards) Predecessors(b *ir.BasicBlock) []*ir.BasicBlock { return b.Predecessors() }
func (forwards) Successors(b *ir.BasicBlock) []*ir.BasicBlock   { return b.Successors() }
func (forwards) name() string                                  { return "forwards" }

type backwards struct{}

func (backwards) Predecessors(b *ir.BasicBlock) []*ir.BasicBlock { return b.Successors() }
func (backwards) Successors(b *ir.BasicBlock) []*ir.BasicBlock   { return b.Predecessors() }
func (backwards) name() string                                   { return "backwards" }

// Forwards is the control-flow-order direction: Predecessors/Successors are
// the CFG's own predecessor/successor edges.
var Forwards Direction = forwards{}

// Backwards is the reverse-control-flow-order direction, used to compute
// post-dominators: Predecessors/Successors are swapped relative to Forwards.
var Backwards Direction = backwards{}
