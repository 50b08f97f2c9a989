package cfa

import (
	"fmt"

	"github.com/m4rs-mt/ILGPU-sub005/cfa/cfaapi"
	"github.com/m4rs-mt/ILGPU-sub005/ir"
)

// AddressSpaceInfo is a bitset lattice element over MemoryAddressSpace
// (spec.md §4.6): the set of spaces a pointer/view value might resolve to.
// The zero value is the empty set (bottom).
type AddressSpaceInfo uint8

func addressSpaceBit(s ir.MemoryAddressSpace) AddressSpaceInfo {
	return AddressSpaceInfo(1 << uint(s))
}

// Contains reports whether space is a member of this set.
func (a AddressSpaceInfo) Contains(space ir.MemoryAddressSpace) bool {
	return a&addressSpaceBit(space) != 0
}

// Merge returns the bitwise union of a and b, the lattice join (spec.md
// §4.6: "Merge = bitwise union").
func (a AddressSpaceInfo) Merge(b AddressSpaceInfo) AddressSpaceInfo { return a | b }

// isSupersetOf reports whether every space in prior is also in a, i.e.
// whether a is a valid forward step from prior in the lattice.
func (a AddressSpaceInfo) isSupersetOf(prior AddressSpaceInfo) bool {
	return prior&a == prior
}

// checkMonotonic panics if after is not a superset of before, when
// cfaapi.AddressSpaceMonotonicityValidationEnabled is on (spec.md §8
// property 7: address-space sets only ever grow).
func checkMonotonic(what string, before, after AddressSpaceInfo) {
	if !cfaapi.AddressSpaceMonotonicityValidationEnabled {
		return
	}
	if !after.isSupersetOf(before) {
		panic(fmt.Sprintf("BUG: address-space set for %s regressed from %v to %v", what, before, after))
	}
}

// Empty reports whether this set has no members (the bottom element).
func (a AddressSpaceInfo) Empty() bool { return a == 0 }

// UnifiedAddressSpace reduces a set to the single space callers should
// dispatch on (spec.md §3): Generic if empty or if more than one space is
// present (conservatively aliasing), else the one present space.
func (a AddressSpaceInfo) UnifiedAddressSpace() ir.MemoryAddressSpace {
	var found ir.MemoryAddressSpace
	count := 0
	for _, s := range []ir.MemoryAddressSpace{ir.Generic, ir.Global, ir.Shared, ir.Local} {
		if a.Contains(s) {
			found = s
			count++
		}
	}
	if count != 1 {
		return ir.Generic
	}
	return found
}

// addressSpaceAnalysis is the concrete GlobalAnalysis instantiation for C7.
// Arg is a per-parameter AddressSpaceInfo: the caller-provided
// globalAddressSpace abstraction for the root method's inputs, and the
// resolved argument sets threaded to callees.
type addressSpaceAnalysis struct{}

func (addressSpaceAnalysis) CreateMethodData(*ir.Method) map[*ir.Value]AddressSpaceInfo {
	return make(map[*ir.Value]AddressSpaceInfo)
}

// CreateData seeds a value's initial lattice element: the singleton set of
// its static address space if its Type is an IAddressSpaceType, else empty
// (spec.md §4.6).
func (addressSpaceAnalysis) CreateData(value *ir.Value) AddressSpaceInfo {
	if value.Type().IsAddressSpaceType() {
		return addressSpaceBit(value.Type().Space())
	}
	return 0
}

// Update recomputes value's set as the merge of every operand's resolved
// set, for the pointer/view-manipulating kinds address-space inference
// tracks (spec.md §4.8's kind list, reused here since the same values that
// carry derived alignment also carry derived address space); every other
// kind keeps its CreateData seed unchanged.
func (addressSpaceAnalysis) Update(value *ir.Value, context map[*ir.Value]AddressSpaceInfo) bool {
	if !value.IsPointerViewManipulating() {
		return false
	}
	before := context[value]
	merged := before
	for _, op := range value.Operands() {
		merged = merged.Merge(context[op])
	}
	checkMonotonic(value.Name(), before, merged)
	if merged != before {
		context[value] = merged
		return true
	}
	return false
}

func (addressSpaceAnalysis) SeedParam(param *ir.Value, arg AddressSpaceInfo, context map[*ir.Value]AddressSpaceInfo) {
	before := context[param]
	after := before.Merge(arg)
	checkMonotonic(param.Name(), before, after)
	context[param] = after
}

func (addressSpaceAnalysis) ExtractArg(callArg *ir.Value, context map[*ir.Value]AddressSpaceInfo) AddressSpaceInfo {
	return context[callArg]
}

// UpdateMethod writes the resolved per-value sets for this (method, args)
// entry into methodData, merging with any set recorded by a previous
// distinct-argument visit to the same method.
func (addressSpaceAnalysis) UpdateMethod(
	method *ir.Method,
	_ []AddressSpaceInfo,
	valueContext map[*ir.Value]AddressSpaceInfo,
	methodData map[*ir.Method]map[*ir.Value]AddressSpaceInfo,
) {
	summary := methodData[method]
	for v, info := range valueContext {
		before := summary[v]
		after := before.Merge(info)
		checkMonotonic(v.Name(), before, after)
		summary[v] = after
	}
}

// AddressSpaces is the result of BuildAddressSpaces: a query surface over
// the address spaces inferred for every (method, value) pair reached from
// root.
type AddressSpaces struct {
	data map[*ir.Method]map[*ir.Value]AddressSpaceInfo
}

// Lookup returns the inferred set for value within method, or the empty set
// if the value was never reached (spec.md §4.6: "missing entries mean the
// value is not a pointer/view and the default empty set is returned").
func (a AddressSpaces) Lookup(method *ir.Method, value *ir.Value) AddressSpaceInfo {
	return a.data[method][value]
}

// BuildAddressSpaces runs the C7 inter-procedural address-space inference
// starting at root, seeding its parameters with globalAddressSpace
// (typically the singleton {Global} set), and using orderOf to compute each
// visited method's Forwards block traversal order.
func BuildAddressSpaces(root *ir.Method, globalAddressSpace AddressSpaceInfo, orderOf func(*ir.Method) []*ir.BasicBlock) AddressSpaces {
	rootArgs := make([]AddressSpaceInfo, len(root.Parameters))
	for i := range rootArgs {
		rootArgs[i] = globalAddressSpace
	}
	data := RunGlobalFixpoint[map[*ir.Value]AddressSpaceInfo, AddressSpaceInfo, AddressSpaceInfo](
		root, rootArgs, addressSpaceAnalysis{}, orderOf)
	return AddressSpaces{data: data}
}
