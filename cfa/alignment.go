package cfa

import "github.com/m4rs-mt/ILGPU-sub005/ir"

// AlignmentWalker computes the folded alignment requirement of an Alloca by
// walking its transitive Uses (spec.md §4.8). Its scratch state is reusable
// across calls: Walk clears it before returning.
type AlignmentWalker struct {
	visited map[*ir.Value]bool
	stack   []*ir.Value
}

// NewAlignmentWalker returns a ready-to-use walker.
func NewAlignmentWalker() *AlignmentWalker {
	return &AlignmentWalker{visited: make(map[*ir.Value]bool)}
}

// typeAlignment computes the type-derived alignment used both as the
// Alloca's initial alignment and as the fold contributed by a derived-type
// use (spec.md §4.8): if the type's size is a power of two, the alignment is
// at least that size; otherwise the type's declared alignment stands alone.
func typeAlignment(t *ir.TypeNode) uint64 {
	if t == nil {
		return 0
	}
	if isPowerOfTwo(t.Size) && t.Size > t.Alignment {
		return t.Size
	}
	return t.Alignment
}

func isPowerOfTwo(n uint64) bool {
	return n != 0 && n&(n-1) == 0
}

// Walk returns the accumulated alignment requirement for alloca, folding in
// every AlignViewTo constant and every pointer/view-manipulating use's
// derived-type alignment found while walking alloca's transitive Uses
// (spec.md §4.8). The walker's internal sets are cleared before return so it
// may be reused for the next alloca.
func (w *AlignmentWalker) Walk(alloca *ir.Value) uint64 {
	defer w.reset()

	alignment := typeAlignment(alloca.AllocaElementType())

	w.stack = append(w.stack, alloca.Uses()...)
	for len(w.stack) > 0 {
		tail := len(w.stack) - 1
		u := w.stack[tail]
		w.stack = w.stack[:tail]

		if w.visited[u] {
			continue
		}
		w.visited[u] = true

		switch {
		case u.Kind() == ir.KindAlignViewTo:
			if u.AlignConst() > alignment {
				alignment = u.AlignConst()
			}
		case u.IsPointerViewManipulating():
			if derived := typeAlignment(u.Type()); derived > alignment {
				alignment = derived
			}
		default:
			continue
		}

		w.stack = append(w.stack, u.Uses()...)
	}

	return alignment
}

func (w *AlignmentWalker) reset() {
	for k := range w.visited {
		delete(w.visited, k)
	}
	w.stack = w.stack[:0]
}

// InitialAlignment computes an Alloca's type-derived alignment prior to any
// use-folding: max(type.Alignment, type.Size) when type.Size is a power of
// two, else type.Alignment (spec.md §4.8).
func InitialAlignment(alloca *ir.Value) uint64 {
	return typeAlignment(alloca.AllocaElementType())
}
