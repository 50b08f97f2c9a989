package ir

import "strconv"

// BasicBlockID is the unique, dense identity of a BasicBlock within its
// Method, assigned in allocation order (not traversal order — see
// TraversalIndex for that).
type BasicBlockID uint32

// BasicBlock is an ordered sequence of Values terminated by a single
// terminator Value. Predecessor/successor lists are maintained incrementally
// as terminators referencing this block are inserted, the way the teacher's
// basicBlock.addPred does at InsertInstruction time.
type BasicBlock struct {
	id     BasicBlockID
	method *Method
	values []*Value

	preds []*BasicBlock
	succs []*BasicBlock

	// traversalIndex is stamped by cfa's Order.SetIndexHints; -1 until
	// assigned. Dense and unique over [0, |blocks|) once assigned
	// for a particular direction's traversal (spec.md §4.1).
	traversalIndex int
}

// ID returns the unique identity of this block.
func (b *BasicBlock) ID() BasicBlockID { return b.id }

// Method returns the owning Method.
func (b *BasicBlock) Method() *Method { return b.method }

// Values returns the ordered sequence of values in this block, terminator
// included.
func (b *BasicBlock) Values() []*Value { return b.values }

// Predecessors returns the forward predecessor list.
func (b *BasicBlock) Predecessors() []*BasicBlock { return b.preds }

// Successors returns the forward successor list.
func (b *BasicBlock) Successors() []*BasicBlock { return b.succs }

// Terminator returns the last value in the block, which must be a
// terminator once the block is complete.
func (b *BasicBlock) Terminator() *Value {
	if len(b.values) == 0 {
		return nil
	}
	return b.values[len(b.values)-1]
}

// HasSideEffects reports whether any value in this block (including the
// terminator) is a SideEffectValue.
func (b *BasicBlock) HasSideEffects() bool {
	for _, v := range b.values {
		if v.IsSideEffectValue() {
			return true
		}
	}
	return false
}

// TraversalIndex returns the index last stamped on this block by cfa's
// Order.SetIndexHints, or -1 if none has been stamped yet.
func (b *BasicBlock) TraversalIndex() int { return b.traversalIndex }

// SetTraversalIndex is called by cfa's Order.SetIndexHints to stamp the
// index computed for a particular direction's traversal.
func (b *BasicBlock) SetTraversalIndex(i int) { b.traversalIndex = i }

// EntryBlock reports whether this is the Method's entry block.
func (b *BasicBlock) EntryBlock() bool {
	return b.method != nil && b.method.Entry == b
}

func (b *BasicBlock) addSucc(to *BasicBlock) {
	b.succs = append(b.succs, to)
	to.preds = append(to.preds, b)
}

// NewVirtualBlock builds a detached BasicBlock with the given forward
// successors and no predecessors, and that is not registered in any
// Method's Blocks list. It exists solely so that analyses requiring a
// unique exit (post-dominators, spec.md §4.3) can root a backwards
// traversal at a synthetic node without mutating the real CFG: building it
// one-directionally (succs only) keeps the real blocks' forward
// Predecessors() untouched, so forward-direction analyses are unaffected.
func NewVirtualBlock(id BasicBlockID, succs []*BasicBlock) *BasicBlock {
	return &BasicBlock{id: id, succs: succs, traversalIndex: -1}
}

// Name returns a debug string for this block.
func (b *BasicBlock) Name() string {
	return "blk" + strconv.Itoa(int(b.id))
}
