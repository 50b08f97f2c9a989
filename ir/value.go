package ir

import "fmt"

// ValueID is the unique, dense identity of a Value within its Method.
//
// Following the Design Notes' "intern into arenas keyed by dense integer
// indices" guidance, every cross-reference between analyses and the IR is
// ultimately reducible to a ValueID/BasicBlockID, even though, as in the
// teacher's ssa.Instruction, the day-to-day API works with *Value pointers.
type ValueID uint32

// Kind is the discriminant of the tagged union Value represents. This plays
// the role the teacher's Opcode plays for Instruction: a single flattened
// struct whose fields are interpreted according to Kind, instead of an
// inheritance hierarchy.
type Kind uint8

const (
	// KindInvalid marks a zero-value Value; it is never attached to a block.
	KindInvalid Kind = iota

	// KindUndefined is the Method/Context's canonical undefined value, used
	// to seed value-level fix-points (spec.md §4.5).
	KindUndefined

	// KindParameter is a Method parameter.
	KindParameter
	// KindGeneric is any ordinary, non-side-effecting value (arithmetic,
	// comparisons, constants, casts between non-pointer types, ...).
	KindGeneric
	// KindPhi merges values along incoming edges at a block with multiple
	// predecessors.
	KindPhi

	// KindJump is an unconditional terminator.
	KindJump
	// KindConditionalBranch is a two-way terminator.
	KindConditionalBranch
	// KindReturn is a terminator that exits the Method.
	KindReturn

	// KindBarrier is a synchronization side-effect with no address space.
	KindBarrier
	// KindCall is a MethodCall side-effect. It may or may not have a known
	// implementation (Target == nil means an external/opaque callee).
	KindCall

	// KindAlloca is a stack/shared allocation. It is a MemoryValue.
	KindAlloca
	// KindLoad reads from a pointer/view. It is a MemoryValue.
	KindLoad
	// KindStore writes to a pointer/view. It is a MemoryValue.
	KindStore
	// KindAtomic is a read-modify-write memory operation. It is a
	// MemoryValue.
	KindAtomic

	// KindPointerCast reinterprets a pointer's element type.
	KindPointerCast
	// KindAddressSpaceCast moves a pointer between address spaces.
	KindAddressSpaceCast
	// KindNewView creates a view over an allocation.
	KindNewView
	// KindViewCast reinterprets a view's element type.
	KindViewCast
	// KindSubView slices a view.
	KindSubView
	// KindLoadElementAddress computes the address of an element (GEP-like).
	KindLoadElementAddress
	// KindAlignViewTo asserts/raises the alignment of a view to a constant.
	KindAlignViewTo
)

// PhiEdge is one incoming edge of a KindPhi value.
type PhiEdge struct {
	Block *BasicBlock
	Value *Value
}

// Value is a node in the use-def graph: a unique identity, a Type, an
// owning BasicBlock and Method, and a Uses relation (the transposed def-use
// graph). It is a closed tagged union over Kind, per the Design Notes.
type Value struct {
	id     ValueID
	kind   Kind
	typ    *TypeNode
	method *Method
	block  *BasicBlock
	name   string

	// operands are the forward def-use edges: the Values this Value reads.
	// uses are the reverse edges, maintained automatically as operands are
	// attached, mirroring how the teacher's basicBlock.addPred maintains
	// both sides of the predecessor/successor relation at InsertInstruction
	// time.
	operands []*Value
	uses     []*Value

	// Terminator payload.
	jumpTarget               *BasicBlock
	condition                *Value
	trueTarget, falseTarget  *BasicBlock
	returnValues             []*Value

	// Phi payload.
	incoming []PhiEdge

	// Alloca payload.
	allocaSpace     MemoryAddressSpace
	allocaArraySize int64 // 1 = scalar, N = static array, -1 = dynamic array
	allocaElemType  *TypeNode

	// Load/Store/Atomic payload: the address space the pointer operand
	// points into (source for Load, target for Store/Atomic).
	memSpace MemoryAddressSpace
	pointer  *Value

	// Call payload.
	callTarget *Method
	callArgs   []*Value

	// AlignViewTo payload.
	alignConst uint64
}

// ID returns the unique identity of this value.
func (v *Value) ID() ValueID { return v.id }

// Kind returns the discriminant of this value.
func (v *Value) Kind() Kind { return v.kind }

// Type returns the type of this value.
func (v *Value) Type() *TypeNode { return v.typ }

// Method returns the owning Method.
func (v *Value) Method() *Method { return v.method }

// Block returns the owning BasicBlock.
func (v *Value) Block() *BasicBlock { return v.block }

// Name returns a debug annotation if one was set, else a default v<id> form.
func (v *Value) Name() string {
	if v.name != "" {
		return v.name
	}
	return fmt.Sprintf("v%d", v.id)
}

// SetName attaches a debug annotation to this value.
func (v *Value) SetName(name string) { v.name = name }

// Operands returns the values this value directly reads.
func (v *Value) Operands() []*Value { return v.operands }

// Uses returns the values that directly read this value: the transposed
// def-use edge set.
func (v *Value) Uses() []*Value { return v.uses }

func (v *Value) addOperand(operand *Value) {
	if operand == nil {
		return
	}
	v.operands = append(v.operands, operand)
	operand.uses = append(operand.uses, v)
}

// IsTerminator reports whether this value ends a BasicBlock.
func (v *Value) IsTerminator() bool {
	switch v.kind {
	case KindJump, KindConditionalBranch, KindReturn:
		return true
	default:
		return false
	}
}

// IsPhi reports whether this value is a block parameter / PHI merge.
func (v *Value) IsPhi() bool { return v.kind == KindPhi }

// IsParameter reports whether this value is a Method parameter.
func (v *Value) IsParameter() bool { return v.kind == KindParameter }

// IsMemoryValue reports whether this value is a MemoryValue: one of
// {Alloca, Load, Store, Atomic}. Barrier and Call are SideEffectValues but
// are intentionally excluded here — they carry no address space for the
// movement oracle's skip analysis to reason about (spec.md §4.7 step 2: "If
// V is not a MemoryValue (e.g. Barrier, Call), return true"). See
// DESIGN.md for this resolution of the §3/§4.7 terminology overlap.
func (v *Value) IsMemoryValue() bool {
	switch v.kind {
	case KindAlloca, KindLoad, KindStore, KindAtomic:
		return true
	default:
		return false
	}
}

// IsSideEffectValue reports whether this value's execution may affect or be
// affected by memory, synchronization, or calls. SideEffectValue is a
// superset of MemoryValue (spec.md §3).
func (v *Value) IsSideEffectValue() bool {
	switch v.kind {
	case KindBarrier, KindCall:
		return true
	default:
		return v.IsMemoryValue()
	}
}

// IsPointerViewManipulating reports whether this value is one of the
// view/pointer-manipulating kinds tracked by address-space inference and the
// alignment walker: PointerCast, AddressSpaceCast, NewView, ViewCast,
// SubView, LoadElementAddress, or Phi (spec.md §4.8).
func (v *Value) IsPointerViewManipulating() bool {
	switch v.kind {
	case KindPointerCast, KindAddressSpaceCast, KindNewView, KindViewCast,
		KindSubView, KindLoadElementAddress, KindPhi:
		return true
	default:
		return false
	}
}

// --- Terminator accessors ---

// JumpTarget returns the target of a KindJump value.
func (v *Value) JumpTarget() *BasicBlock { return v.jumpTarget }

// Condition returns the condition of a KindConditionalBranch value.
func (v *Value) Condition() *Value { return v.condition }

// TrueTarget returns the true-edge target of a KindConditionalBranch value.
func (v *Value) TrueTarget() *BasicBlock { return v.trueTarget }

// FalseTarget returns the false-edge target of a KindConditionalBranch value.
func (v *Value) FalseTarget() *BasicBlock { return v.falseTarget }

// ReturnValues returns the operands of a KindReturn value.
func (v *Value) ReturnValues() []*Value { return v.returnValues }

// --- Phi accessors ---

// Incoming returns the (block, value) edges of a KindPhi value.
func (v *Value) Incoming() []PhiEdge { return v.incoming }

// --- Alloca accessors ---

// AllocaSpace returns the address space of a KindAlloca value.
func (v *Value) AllocaSpace() MemoryAddressSpace { return v.allocaSpace }

// AllocaArraySize returns 1 for a scalar alloca, N for a statically sized
// array, or -1 for a dynamically sized array.
func (v *Value) AllocaArraySize() int64 { return v.allocaArraySize }

// AllocaElementType returns the element type being allocated.
func (v *Value) AllocaElementType() *TypeNode { return v.allocaElemType }

// IsArrayAllocation reports whether this alloca allocates more than one
// element, mirroring the external Alloca.IsArrayAllocation(out length)
// contract from spec.md §6.
func (v *Value) IsArrayAllocation() (length int64, ok bool) {
	if v.kind != KindAlloca {
		return 0, false
	}
	return v.allocaArraySize, v.allocaArraySize != 1
}

// IsSimpleAllocation reports whether this alloca is a scalar or a
// statically sized array (i.e. not dynamically sized).
func (v *Value) IsSimpleAllocation() bool {
	return v.kind == KindAlloca && v.allocaArraySize >= 1
}

// --- Load/Store/Atomic accessors ---

// Pointer returns the pointer/view operand of a Load, Store, or Atomic.
func (v *Value) Pointer() *Value { return v.pointer }

// MemorySpace returns the address space a Load reads from, or a Store/Atomic
// writes to.
func (v *Value) MemorySpace() MemoryAddressSpace { return v.memSpace }

// --- Call accessors ---

// CallTarget returns the Method this call invokes, or nil if the callee has
// no known implementation (an external/opaque call).
func (v *Value) CallTarget() *Method { return v.callTarget }

// CallArgs returns the argument values passed to a KindCall value, in
// parameter-position order.
func (v *Value) CallArgs() []*Value { return v.callArgs }

// --- AlignViewTo accessor ---

// AlignConst returns the constant alignment asserted by a KindAlignViewTo
// value.
func (v *Value) AlignConst() uint64 { return v.alignConst }
