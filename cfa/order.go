package cfa

import "github.com/m4rs-mt/ILGPU-sub005/ir"

// virtualExitBlockID is the sentinel id given to the synthetic exit block
// that Backwards traversals insert in front of a method with zero or more
// than one return block, so it can never collide with a real BasicBlockID
// allocated by ir.Builder (which starts at 0 and grows densely).
const virtualExitBlockID = ^ir.BasicBlockID(0)

// Order is a traversal order over a Method's blocks under a Direction: a
// dense sequence with index 0 as the root, plus the index lookup for each
// block (spec.md §4.1). ReversePostOrder is the only order this package
// computes; it is the order required by dominator construction.
//
// Order never mutates the BasicBlock.TraversalIndex() field live on ir's
// blocks: two Orders (e.g. a Forwards one feeding Dominators and a Backwards
// one feeding PostDominators) can be constructed over the same immutable
// snapshot without racing on shared mutable state. Order.SetIndexHints may
// optionally be called to populate BasicBlock.TraversalIndex() for
// debugging/printing, satisfying the external-interface contract in
// spec.md §6, but nothing in this package relies on it for correctness.
type Order struct {
	Direction Direction
	Root      *ir.BasicBlock
	// Blocks is the block sequence in reverse post-order; Blocks[0] == Root.
	Blocks []*ir.BasicBlock

	index map[*ir.BasicBlock]int
}

// IndexOf returns b's position in Blocks, or -1 if b is unreachable under
// this Order's direction from Root.
func (o *Order) IndexOf(b *ir.BasicBlock) int {
	if idx, ok := o.index[b]; ok {
		return idx
	}
	return -1
}

// SetIndexHints stamps each block's BasicBlock.TraversalIndex() with this
// Order's index, for debugging/printing only (see the Order doc comment).
func (o *Order) SetIndexHints() {
	for i, b := range o.Blocks {
		b.SetTraversalIndex(i)
	}
}

// exitRoot computes the unique root a Backwards traversal must start from,
// inserting a virtual exit block when the method does not have exactly one
// return block (spec.md §4.3).
func exitRoot(m *ir.Method) *ir.BasicBlock {
	returns := m.ReturnBlocks()
	if len(returns) == 1 {
		return returns[0]
	}
	return ir.NewVirtualBlock(virtualExitBlockID, returns)
}

// ReversePostOrderOf computes the reverse-post-order traversal of m's
// reachable blocks under dir. For Forwards, the root is m.Entry. For
// Backwards, the root is m's unique return block, or a synthesized virtual
// exit when there isn't exactly one (spec.md §4.1, §4.3).
//
// The DFS-postorder-then-reverse computation below is adapted from the teacher's
// (ssa/pass_cfg.go:passCalculateImmediateDominators), generalized over
// Direction: explore with an explicit stack and a three-state visited map so
// that it terminates correctly on arbitrarily complex (cyclic, irreducible)
// CFGs without recursion.
func ReversePostOrderOf(m *ir.Method, dir Direction) *Order {
	var root *ir.BasicBlock
	if dir == Forwards {
		root = m.Entry
	} else {
		root = exitRoot(m)
	}

	const (
		unseen = iota
		seen
		done
	)
	visited := make(map[*ir.BasicBlock]int)
	stack := []*ir.BasicBlock{root}

	var postorder []*ir.BasicBlock
	for len(stack) > 0 {
		tail := len(stack) - 1
		blk := stack[tail]
		stack = stack[:tail]

		switch visited[blk] {
		case unseen:
			// First pop: push blk back so it is emitted after its
			// successors, then push every successor not yet expanded. A block
			// may sit on the stack more than once; only its topmost copy is
			// expanded, and the remaining copies find it done.
			visited[blk] = seen
			stack = append(stack, blk)
			for _, succ := range dir.Successors(blk) {
				if visited[succ] == unseen {
					stack = append(stack, succ)
				}
			}
		case seen:
			visited[blk] = done
			postorder = append(postorder, blk)
		case done:
			// A stale copy of a block that has already been emitted.
		}
	}

	for i, j := 0, len(postorder)-1; i < j; i, j = i+1, j-1 {
		postorder[i], postorder[j] = postorder[j], postorder[i]
	}

	index := make(map[*ir.BasicBlock]int, len(postorder))
	for i, b := range postorder {
		index[b] = i
	}

	if cfaLoggingEnabled() {
		logger.WithField("method", m.Name).WithField("direction", dir.name()).
			Debugf("computed reverse-post-order over %d blocks", len(postorder))
	}

	return &Order{Direction: dir, Root: root, Blocks: postorder, index: index}
}
