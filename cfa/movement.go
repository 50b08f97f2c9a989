package cfa

import (
	"github.com/m4rs-mt/ILGPU-sub005/cfa/cfaapi"
	"github.com/m4rs-mt/ILGPU-sub005/ir"
)

// MovementIndex precomputes the flattened, RPO-ordered value sequence the
// movement oracle (C8) probes over (spec.md §4.7): every value of every
// block, concatenated in block-traversal order, plus the index lookups
// needed to start and bound a probe.
type MovementIndex struct {
	order  *Order
	values []*ir.Value

	valueIndices map[*ir.Value]int
	valueBlocks  map[*ir.Value]*ir.BasicBlock

	// blockRanges[b] is the index, in values, of the last value of the
	// block preceding b in order (i.e. the probe start when targeting b
	// with no more specific "first non-Load memory value" hint available).
	// For order.Blocks[0] this is -1.
	blockRanges map[*ir.BasicBlock]int
}

// BuildMovementIndex flattens order's blocks into the sequence CanMoveTo
// probes over.
func BuildMovementIndex(order *Order) *MovementIndex {
	idx := &MovementIndex{
		order:        order,
		valueIndices: make(map[*ir.Value]int),
		valueBlocks:  make(map[*ir.Value]*ir.BasicBlock),
		blockRanges:  make(map[*ir.BasicBlock]int),
	}
	for _, b := range order.Blocks {
		idx.blockRanges[b] = len(idx.values) - 1
		for _, v := range b.Values() {
			idx.valueIndices[v] = len(idx.values)
			idx.valueBlocks[v] = b
			idx.values = append(idx.values, v)
		}
	}
	return idx
}

// IMovementScope lets a caller override the probe start within a target
// block, e.g. to begin scanning from the first non-Load memory value
// already present there (spec.md §4.7 step 3), instead of the block's
// preceding-block boundary.
type IMovementScope interface {
	// FirstNonLoadMemoryValue returns the first non-Load MemoryValue in
	// block, or nil if there isn't one / the scope has no opinion.
	FirstNonLoadMemoryValue(block *ir.BasicBlock) *ir.Value
}

// CanMoveTo answers the movement legality oracle for value into targetBlock
// (spec.md §4.7). dom and postdom must be the Forwards/Backwards Dominators
// tables for value's method; idx must be this method's MovementIndex.
// scope may be nil.
func CanMoveTo(value *ir.Value, targetBlock *ir.BasicBlock, dom, postdom *Dominators, idx *MovementIndex, scope IMovementScope) bool {
	switch {
	case value.IsParameter(), value.IsPhi(), value.IsTerminator():
		return false
	}

	if !value.IsSideEffectValue() {
		return value.Method() == targetBlock.Method()
	}

	source, ok := idx.valueBlocks[value]
	if !ok {
		panic("BUG: value not present in idx's MovementIndex")
	}
	if !dom.Dominates(source, targetBlock) || !postdom.Dominates(source, targetBlock) {
		return false
	}

	if !value.IsMemoryValue() {
		return true
	}

	valueIndex := idx.valueIndices[value]
	startIndex := idx.blockRanges[targetBlock]
	if scope != nil {
		if hint := scope.FirstNonLoadMemoryValue(targetBlock); hint != nil {
			startIndex = idx.valueIndices[hint]
		}
	}
	if startIndex == valueIndex {
		return true
	}

	step := 1
	if startIndex > valueIndex {
		step = -1
	}
	for i := startIndex + step; i != valueIndex; i += step {
		intermediate := idx.values[i]
		if !intermediate.IsSideEffectValue() {
			continue
		}
		if !intermediate.IsMemoryValue() || !canSkip(value, intermediate) {
			if cfaapi.MovementLoggingEnabled {
				logger.WithField("value", value.Name()).WithField("blocked_by", intermediate.Name()).
					Debug("movement blocked by intermediate side-effect value")
			}
			return false
		}
	}
	if cfaapi.MovementLoggingEnabled {
		logger.WithField("value", value.Name()).WithField("target", targetBlock.Name()).
			Debug("movement permitted")
	}
	return true
}

// canSkip implements the skip predicate of spec.md §4.7: whether memory
// operation m can be reordered past intermediate memory operation i.
func canSkip(m, i *ir.Value) bool {
	if i.Kind() == ir.KindAlloca {
		return true
	}
	switch m.Kind() {
	case ir.KindLoad:
		if i.Kind() == ir.KindLoad {
			return true
		}
		return canSkipAddressSpace(m.MemorySpace(), spaceOf(i))
	case ir.KindStore:
		return canSkipAddressSpace(m.MemorySpace(), spaceOf(i))
	case ir.KindAtomic:
		return canSkipAddressSpace(m.MemorySpace(), spaceOf(i))
	default:
		// Barriers, MethodCalls, and any other kind are never skippable in
		// either slot (spec.md §4.7).
		return false
	}
}

// canSkipAddressSpace reports whether a concrete, non-Generic space cur can
// be proven disjoint from other: Generic conservatively aliases everything,
// so only a concrete space distinct from other is provably safe to skip
// past.
func canSkipAddressSpace(cur, other ir.MemoryAddressSpace) bool {
	return cur != ir.Generic && cur != other
}

// spaceOf returns the address space relevant to I's own skip-legality: the
// source space for a Load, the target space for a Store/Atomic. Alloca is
// always skippable regardless of space, handled above before spaceOf is
// ever consulted for it.
func spaceOf(i *ir.Value) ir.MemoryAddressSpace {
	switch i.Kind() {
	case ir.KindLoad, ir.KindStore, ir.KindAtomic:
		return i.MemorySpace()
	default:
		return ir.Generic
	}
}
