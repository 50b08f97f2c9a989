package cfa_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/m4rs-mt/ILGPU-sub005/cfa"
	"github.com/m4rs-mt/ILGPU-sub005/ir"
)

func orderOfForwards(m *ir.Method) []*ir.BasicBlock {
	return cfa.ReversePostOrderOf(m, cfa.Forwards).Blocks
}

// S6: a pointer parameter cast through an AddressSpaceCast still resolves to
// its declared space; an unseeded, non-pointer value resolves to empty.
func TestBuildAddressSpaces_unification(t *testing.T) {
	b := ir.NewBuilder("spaces")
	ptrType := ir.NewPointerType(8, 8, ir.Global, ir.NewScalarType(4, 4))

	param := b.AddParameter(ptrType)
	entry := b.AllocateBlock()
	b.SetCurrentBlock(entry)
	cast := b.AddressSpaceCast(param, ptrType)
	plain := b.Generic(ir.NewScalarType(4, 4))
	b.Return()

	var emptyCallerSpace cfa.AddressSpaceInfo
	spaces := cfa.BuildAddressSpaces(b.Method(), emptyCallerSpace, orderOfForwards)

	require.Equal(t, ir.Global, spaces.Lookup(b.Method(), param).UnifiedAddressSpace())
	require.Equal(t, ir.Global, spaces.Lookup(b.Method(), cast).UnifiedAddressSpace())
	require.True(t, spaces.Lookup(b.Method(), plain).Empty())
}

func TestAddressSpaceInfo_unifiedDefaultsToGenericOnConflict(t *testing.T) {
	b := ir.NewBuilder("conflict")
	elem := ir.NewScalarType(4, 4)
	globalPtr := ir.NewPointerType(8, 8, ir.Global, elem)
	sharedPtr := ir.NewPointerType(8, 8, ir.Shared, elem)

	globalParam := b.AddParameter(globalPtr)
	sharedParam := b.AddParameter(sharedPtr)
	entry := b.AllocateBlock()
	b.SetCurrentBlock(entry)
	merged := b.Generic(elem, globalParam, sharedParam)
	b.Return()

	var empty cfa.AddressSpaceInfo
	spaces := cfa.BuildAddressSpaces(b.Method(), empty, orderOfForwards)

	// A Generic-kind value is not itself pointer/view-manipulating, so
	// address-space inference never resolves it: it keeps its CreateData
	// seed (empty, since its own Type is plain) regardless of operands, and
	// an empty set unifies to Generic.
	require.True(t, spaces.Lookup(b.Method(), merged).Empty())
	require.Equal(t, ir.Generic, spaces.Lookup(b.Method(), merged).UnifiedAddressSpace())
	require.Equal(t, ir.Global, spaces.Lookup(b.Method(), globalParam).UnifiedAddressSpace())
	require.Equal(t, ir.Shared, spaces.Lookup(b.Method(), sharedParam).UnifiedAddressSpace())
}

// S6: a Phi merging two pointer inputs from distinct concrete address spaces
// resolves to {Global, Shared}, which UnifiedAddressSpace conservatively
// reports as Generic.
func TestBuildAddressSpaces_phiMergesDistinctSpacesToGeneric(t *testing.T) {
	b := ir.NewBuilder("phi-conflict")
	elem := ir.NewScalarType(4, 4)
	globalPtr := ir.NewPointerType(8, 8, ir.Global, elem)
	sharedPtr := ir.NewPointerType(8, 8, ir.Shared, elem)
	genericPtr := ir.NewPointerType(8, 8, ir.Generic, elem)

	globalParam := b.AddParameter(globalPtr)
	sharedParam := b.AddParameter(sharedPtr)

	header := b.AllocateBlock()
	b.SetCurrentBlock(header)
	cond := b.Generic(ir.NewScalarType(4, 4))
	ifBlk := b.AllocateBlock()
	elseBlk := b.AllocateBlock()
	exit := b.AllocateBlock()
	b.ConditionalBranch(cond, ifBlk, elseBlk)

	b.SetCurrentBlock(ifBlk)
	b.Jump(exit)

	b.SetCurrentBlock(elseBlk)
	b.Jump(exit)

	b.SetCurrentBlock(exit)
	phi := b.Phi(genericPtr,
		ir.PhiEdge{Block: ifBlk, Value: globalParam},
		ir.PhiEdge{Block: elseBlk, Value: sharedParam},
	)
	b.Return()

	var empty cfa.AddressSpaceInfo
	spaces := cfa.BuildAddressSpaces(b.Method(), empty, orderOfForwards)

	info := spaces.Lookup(b.Method(), phi)
	require.True(t, info.Contains(ir.Global))
	require.True(t, info.Contains(ir.Shared))
	require.Equal(t, ir.Generic, info.UnifiedAddressSpace())
}
