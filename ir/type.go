package ir

// MemoryAddressSpace is the closed enumeration of address spaces a pointer or
// view can live in. Generic conservatively aliases every concrete space.
type MemoryAddressSpace byte

const (
	// Generic is the default space; it may alias any other space.
	Generic MemoryAddressSpace = iota
	// Global is device-global memory.
	Global
	// Shared is block/workgroup-local scratch memory.
	Shared
	// Local is per-thread private memory.
	Local
)

// String implements fmt.Stringer for debugging.
func (s MemoryAddressSpace) String() string {
	switch s {
	case Generic:
		return "generic"
	case Global:
		return "global"
	case Shared:
		return "shared"
	case Local:
		return "local"
	default:
		panic(int(s))
	}
}

// TypeNode describes the size and alignment of a value's type, and
// optionally that the type denotes a pointer or view into an address space
// (the IAddressSpaceType subkind from spec.md §3).
type TypeNode struct {
	Size      uint64
	Alignment uint64

	// AddrSpace is non-nil iff this type is an IAddressSpaceType (a pointer
	// or view type). Plain scalar/aggregate types leave this nil.
	AddrSpace *AddressSpaceType
}

// AddressSpaceType is the payload of a pointer/view TypeNode.
type AddressSpaceType struct {
	Space       MemoryAddressSpace
	ElementType *TypeNode
}

// IsAddressSpaceType reports whether t is an IAddressSpaceType.
func (t *TypeNode) IsAddressSpaceType() bool {
	return t != nil && t.AddrSpace != nil
}

// Space returns the address space of a pointer/view type, or Generic for a
// plain type (callers should guard with IsAddressSpaceType first).
func (t *TypeNode) Space() MemoryAddressSpace {
	if t == nil || t.AddrSpace == nil {
		return Generic
	}
	return t.AddrSpace.Space
}

// NewScalarType builds a plain, non-pointer TypeNode of the given size and
// alignment.
func NewScalarType(size, alignment uint64) *TypeNode {
	return &TypeNode{Size: size, Alignment: alignment}
}

// NewPointerType builds an IAddressSpaceType TypeNode: a pointer/view of
// pointerSize/pointerAlignment into the given space over elemType.
func NewPointerType(pointerSize, pointerAlignment uint64, space MemoryAddressSpace, elemType *TypeNode) *TypeNode {
	return &TypeNode{
		Size:      pointerSize,
		Alignment: pointerAlignment,
		AddrSpace: &AddressSpaceType{Space: space, ElementType: elemType},
	}
}
