package ir_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/m4rs-mt/ILGPU-sub005/ir"
)

func TestBuilder_diamond(t *testing.T) {
	b := ir.NewBuilder("diamond")
	i32 := ir.NewScalarType(4, 4)

	entry := b.AllocateBlock()
	ifBlk := b.AllocateBlock()
	elseBlk := b.AllocateBlock()
	exit := b.AllocateBlock()

	b.SetCurrentBlock(entry)
	cond := b.Generic(i32)
	b.ConditionalBranch(cond, ifBlk, elseBlk)

	b.SetCurrentBlock(ifBlk)
	trueVal := b.Generic(i32)
	b.Jump(exit)

	b.SetCurrentBlock(elseBlk)
	falseVal := b.Generic(i32)
	b.Jump(exit)

	b.SetCurrentBlock(exit)
	phi := b.Phi(i32, ir.PhiEdge{Block: ifBlk, Value: trueVal}, ir.PhiEdge{Block: elseBlk, Value: falseVal})
	b.Return(phi)

	require.Same(t, entry, b.Method().Entry)
	require.Len(t, b.Method().Blocks, 4)
	require.ElementsMatch(t, []*ir.BasicBlock{ifBlk, elseBlk}, entry.Successors())
	require.ElementsMatch(t, []*ir.BasicBlock{entry}, ifBlk.Predecessors())
	require.ElementsMatch(t, []*ir.BasicBlock{ifBlk, elseBlk}, exit.Predecessors())
	require.True(t, phi.IsPhi())
	require.ElementsMatch(t, []*ir.Value{trueVal, falseVal}, phi.Operands())
	require.Contains(t, trueVal.Uses(), phi)
}

func TestValue_allocaKinds(t *testing.T) {
	b := ir.NewBuilder("m")
	blk := b.AllocateBlock()
	b.SetCurrentBlock(blk)
	i32 := ir.NewScalarType(4, 4)

	scalar := b.Alloca(ir.Local, i32, 1, i32)
	length, isArray := scalar.IsArrayAllocation()
	require.False(t, isArray)
	require.EqualValues(t, 1, length)
	require.True(t, scalar.IsSimpleAllocation())

	array := b.Alloca(ir.Local, i32, 8, i32)
	length, isArray = array.IsArrayAllocation()
	require.True(t, isArray)
	require.EqualValues(t, 8, length)
	require.True(t, array.IsSimpleAllocation())

	dyn := b.Alloca(ir.Shared, i32, -1, i32)
	_, isArray = dyn.IsArrayAllocation()
	require.True(t, isArray)
	require.False(t, dyn.IsSimpleAllocation())

	require.True(t, scalar.IsMemoryValue())
	require.True(t, scalar.IsSideEffectValue())
}

func TestValue_undefinedIsLazyAndStable(t *testing.T) {
	m := ir.NewBuilder("m").Method()
	u1 := m.UndefinedValue()
	u2 := m.UndefinedValue()
	require.Same(t, u1, u2)
	require.Equal(t, ir.KindUndefined, u1.Kind())
}
