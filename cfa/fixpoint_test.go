package cfa_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/m4rs-mt/ILGPU-sub005/cfa"
	"github.com/m4rs-mt/ILGPU-sub005/ir"
)

// reachableFromEntry is a minimal monotone block analysis: a block's element
// is true once reached from a predecessor whose element is already true (the
// entry block seeds itself to true in CreateData).
type reachableFromEntry struct {
	entry *ir.BasicBlock
}

func (r reachableFromEntry) CreateData(b *ir.BasicBlock) bool { return b == r.entry }

func (r reachableFromEntry) Update(b *ir.BasicBlock, ctx map[*ir.BasicBlock]bool) bool {
	if ctx[b] {
		return false
	}
	for _, pred := range b.Predecessors() {
		if ctx[pred] {
			ctx[b] = true
			return true
		}
	}
	return false
}

func TestRunBlockFixpoint_reachability(t *testing.T) {
	method, entry, ifBlk, elseBlk, exit := buildDiamond(t)
	order := cfa.ReversePostOrderOf(method, cfa.Forwards)

	ctx := cfa.RunBlockFixpoint[bool](order.Blocks, cfa.Forwards, reachableFromEntry{entry: entry})
	require.True(t, ctx[entry])
	require.True(t, ctx[ifBlk])
	require.True(t, ctx[elseBlk])
	require.True(t, ctx[exit])
}

// valueIsConstantZero is a minimal monotone value analysis: a Generic value
// with no operands is assumed constant-zero (true); a Phi is constant-zero
// only if every incoming value resolved constant-zero; anything else is
// false.
type valueIsConstantZero struct{}

func (valueIsConstantZero) CreateData(v *ir.Value) bool {
	return v.Kind() == ir.KindGeneric && len(v.Operands()) == 0
}

func (valueIsConstantZero) Update(v *ir.Value, ctx map[*ir.Value]bool) bool {
	if !v.IsPhi() || ctx[v] {
		return false
	}
	for _, edge := range v.Incoming() {
		if !ctx[edge.Value] {
			return false
		}
	}
	ctx[v] = true
	return true
}

func TestRunValueFixpoint_propagatesThroughPhi(t *testing.T) {
	b := ir.NewBuilder("constzero")
	i32 := ir.NewScalarType(4, 4)

	entry := b.AllocateBlock()
	ifBlk := b.AllocateBlock()
	elseBlk := b.AllocateBlock()
	exit := b.AllocateBlock()

	b.SetCurrentBlock(entry)
	cond := b.Generic(i32)
	b.ConditionalBranch(cond, ifBlk, elseBlk)

	b.SetCurrentBlock(ifBlk)
	zeroA := b.Generic(i32)
	b.Jump(exit)

	b.SetCurrentBlock(elseBlk)
	zeroB := b.Generic(i32)
	b.Jump(exit)

	b.SetCurrentBlock(exit)
	phi := b.Phi(i32, ir.PhiEdge{Block: ifBlk, Value: zeroA}, ir.PhiEdge{Block: elseBlk, Value: zeroB})
	b.Return()

	method := b.Method()
	order := cfa.ReversePostOrderOf(method, cfa.Forwards)
	ctx := cfa.RunValueFixpoint[bool](method, order.Blocks, cfa.Forwards, valueIsConstantZero{})

	require.True(t, ctx[zeroA])
	require.True(t, ctx[zeroB])
	require.True(t, ctx[phi])
}
