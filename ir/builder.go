package ir

// Builder provides an imperative fixture API for hand-constructing small
// Methods in tests, the way the teacher's ssa.Builder lets frontend code
// emit instructions into the block under construction. Unlike the teacher's
// Builder, this one does not implement the Braun/Buchwald/... SSA
// construction algorithm (sealing blocks, resolving unknown variables): IR
// construction is explicitly out of scope for this repository (spec.md §1),
// so fixtures wire phis and branches directly.
type Builder struct {
	method  *Method
	current *BasicBlock
}

// NewBuilder starts building a fresh Method named name.
func NewBuilder(name string) *Builder {
	m := &Method{Name: name}
	return &Builder{method: m}
}

// Method returns the Method under construction.
func (b *Builder) Method() *Method { return b.method }

// CurrentBlock returns the block instructions are currently inserted into.
func (b *Builder) CurrentBlock() *BasicBlock { return b.current }

// SetCurrentBlock redirects instruction insertion to blk.
func (b *Builder) SetCurrentBlock(blk *BasicBlock) { b.current = blk }

// AllocateBlock creates a new, empty BasicBlock. The first block allocated
// for a Method becomes its Entry.
func (b *Builder) AllocateBlock() *BasicBlock {
	blk := b.method.allocBlock()
	blk.method = b.method
	b.method.Blocks = append(b.method.Blocks, blk)
	if b.method.Entry == nil {
		b.method.Entry = blk
	}
	return blk
}

// AddParameter declares a new Method parameter of type typ.
func (b *Builder) AddParameter(typ *TypeNode) *Value {
	p := b.method.allocValue()
	p.kind = KindParameter
	p.typ = typ
	p.method = b.method
	b.method.Parameters = append(b.method.Parameters, p)
	return p
}

func (b *Builder) newValue(kind Kind, typ *TypeNode) *Value {
	v := b.method.allocValue()
	v.kind = kind
	v.typ = typ
	v.method = b.method
	v.block = b.current
	b.current.values = append(b.current.values, v)
	return v
}

// Generic inserts a plain, non-side-effecting value with the given operands
// (e.g. to model arithmetic) and returns it.
func (b *Builder) Generic(typ *TypeNode, operands ...*Value) *Value {
	v := b.newValue(KindGeneric, typ)
	for _, o := range operands {
		v.addOperand(o)
	}
	return v
}

// Barrier inserts a synchronization side-effect with no address space.
func (b *Builder) Barrier() *Value {
	return b.newValue(KindBarrier, nil)
}

// Call inserts a MethodCall. target may be nil for an opaque/external
// callee (spec.md §4.5 step 5 skips entries with no implementation).
func (b *Builder) Call(target *Method, typ *TypeNode, args ...*Value) *Value {
	v := b.newValue(KindCall, typ)
	v.callTarget = target
	v.callArgs = args
	for _, a := range args {
		v.addOperand(a)
	}
	return v
}

// Alloca inserts an allocation. arraySize is 1 for a scalar, N>1 for a
// statically sized array, or -1 for a dynamically sized array.
func (b *Builder) Alloca(space MemoryAddressSpace, elemType *TypeNode, arraySize int64, resultType *TypeNode) *Value {
	v := b.newValue(KindAlloca, resultType)
	v.allocaSpace = space
	v.allocaArraySize = arraySize
	v.allocaElemType = elemType
	return v
}

// Load inserts a load from ptr, which points into space.
func (b *Builder) Load(ptr *Value, space MemoryAddressSpace, typ *TypeNode) *Value {
	v := b.newValue(KindLoad, typ)
	v.pointer = ptr
	v.memSpace = space
	v.addOperand(ptr)
	return v
}

// Store inserts a store of val to ptr, which points into space. Store has
// no result, but is still modeled as a Value so it participates in the
// use-def graph and RPO-ordered memory value list.
func (b *Builder) Store(ptr, val *Value, space MemoryAddressSpace) *Value {
	v := b.newValue(KindStore, nil)
	v.pointer = ptr
	v.memSpace = space
	v.addOperand(ptr)
	v.addOperand(val)
	return v
}

// Atomic inserts an atomic read-modify-write on ptr, which points into
// space.
func (b *Builder) Atomic(ptr, val *Value, space MemoryAddressSpace, typ *TypeNode) *Value {
	v := b.newValue(KindAtomic, typ)
	v.pointer = ptr
	v.memSpace = space
	v.addOperand(ptr)
	v.addOperand(val)
	return v
}

// PointerCast reinterprets operand's element type.
func (b *Builder) PointerCast(operand *Value, typ *TypeNode) *Value {
	v := b.newValue(KindPointerCast, typ)
	v.addOperand(operand)
	return v
}

// AddressSpaceCast moves operand between address spaces.
func (b *Builder) AddressSpaceCast(operand *Value, typ *TypeNode) *Value {
	v := b.newValue(KindAddressSpaceCast, typ)
	v.addOperand(operand)
	return v
}

// NewView creates a view over operand (typically an Alloca).
func (b *Builder) NewView(operand *Value, typ *TypeNode) *Value {
	v := b.newValue(KindNewView, typ)
	v.addOperand(operand)
	return v
}

// ViewCast reinterprets a view's element type.
func (b *Builder) ViewCast(operand *Value, typ *TypeNode) *Value {
	v := b.newValue(KindViewCast, typ)
	v.addOperand(operand)
	return v
}

// SubView slices operand.
func (b *Builder) SubView(operand *Value, typ *TypeNode) *Value {
	v := b.newValue(KindSubView, typ)
	v.addOperand(operand)
	return v
}

// LoadElementAddress computes the address of an element of operand.
func (b *Builder) LoadElementAddress(operand *Value, typ *TypeNode) *Value {
	v := b.newValue(KindLoadElementAddress, typ)
	v.addOperand(operand)
	return v
}

// AlignViewTo asserts operand's alignment is at least alignment.
func (b *Builder) AlignViewTo(operand *Value, alignment uint64, typ *TypeNode) *Value {
	v := b.newValue(KindAlignViewTo, typ)
	v.addOperand(operand)
	v.alignConst = alignment
	return v
}

// Phi inserts a block-parameter-style merge for the current block. Incoming
// edges are supplied as (predecessor block, value) pairs; the predecessor
// block must already be wired to jump/branch into the current block.
func (b *Builder) Phi(typ *TypeNode, edges ...PhiEdge) *Value {
	v := b.newValue(KindPhi, typ)
	v.incoming = edges
	for _, e := range edges {
		v.addOperand(e.Value)
	}
	return v
}

// Jump terminates the current block with an unconditional branch to target.
func (b *Builder) Jump(target *BasicBlock) *Value {
	v := b.newValue(KindJump, nil)
	v.jumpTarget = target
	b.current.addSucc(target)
	return v
}

// ConditionalBranch terminates the current block, branching to trueTarget if
// cond is true-ish and falseTarget otherwise.
func (b *Builder) ConditionalBranch(cond *Value, trueTarget, falseTarget *BasicBlock) *Value {
	v := b.newValue(KindConditionalBranch, nil)
	v.condition = cond
	v.trueTarget = trueTarget
	v.falseTarget = falseTarget
	v.addOperand(cond)
	b.current.addSucc(trueTarget)
	b.current.addSucc(falseTarget)
	return v
}

// Return terminates the current block, exiting the Method with vs.
func (b *Builder) Return(vs ...*Value) *Value {
	v := b.newValue(KindReturn, nil)
	v.returnValues = vs
	for _, r := range vs {
		v.addOperand(r)
	}
	return v
}
