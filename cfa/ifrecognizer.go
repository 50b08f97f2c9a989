package cfa

import "github.com/m4rs-mt/ILGPU-sub005/ir"

// IfInfo describes a single if/else diamond recognized in the CFG
// (spec.md §4.4): a header E branching to an IfBlock/ElseBlock pair that
// both rejoin at a unique exit block X.
type IfInfo struct {
	Header    *ir.BasicBlock
	IfBlock   *ir.BasicBlock
	ElseBlock *ir.BasicBlock
	Exit      *ir.BasicBlock
}

// IsSimpleIf reports whether this diamond is "simple": Header branches
// directly to IfBlock and ElseBlock (no further blocks in between), and
// both branch directly to Exit. This is the shape ResolveVariableInfo
// requires (spec.md §4.4).
func (info IfInfo) IsSimpleIf() bool {
	branch := info.Header.Terminator()
	if branch == nil || branch.Kind() != ir.KindConditionalBranch {
		return false
	}
	if !((branch.TrueTarget() == info.IfBlock && branch.FalseTarget() == info.ElseBlock) ||
		(branch.TrueTarget() == info.ElseBlock && branch.FalseTarget() == info.IfBlock)) {
		return false
	}
	return targetsOnly(info.IfBlock, info.Exit) && targetsOnly(info.ElseBlock, info.Exit)
}

// targetsOnly reports whether blk's only successor is target.
func targetsOnly(blk, target *ir.BasicBlock) bool {
	succs := blk.Successors()
	return len(succs) == 1 && succs[0] == target
}

// Variable is a value incoming to a phi at an if's exit block, tagged with
// which side of the diamond it flows from.
type Variable struct {
	Phi       *ir.Value
	IfValue   *ir.Value
	ElseValue *ir.Value
}

// IfVariableInfo is the result of ResolveVariableInfo: the set of phis at an
// if's exit block, each resolved to its If-side and Else-side incoming
// value.
type IfVariableInfo struct {
	If        IfInfo
	Variables []Variable
}

// FindIfInfos scans blocks for potential if/else diamonds: blocks X with
// exactly two predecessors (T, F) whose immediate common dominator E
// branches on a condition (spec.md §4.4). dom must be the Forwards
// Dominators table for the same method.
//
// Recognition only requires that E has exactly two successors and a
// ConditionalBranch terminator; it does not require those successors to be
// T and F themselves (spec.md §4.4: "non-simple ifs are still reported but
// downstream passes may reject them"). IsSimpleIf classifies the result.
func FindIfInfos(dom *Dominators, blocks []*ir.BasicBlock) []IfInfo {
	var result []IfInfo
	for _, x := range blocks {
		preds := x.Predecessors()
		if len(preds) != 2 {
			continue
		}
		t, f := preds[0], preds[1]
		header, err := dom.GetImmediateCommonDominator(t, f)
		if err != nil {
			continue
		}
		if len(header.Successors()) != 2 {
			continue
		}
		branch := header.Terminator()
		if branch == nil || branch.Kind() != ir.KindConditionalBranch {
			continue
		}
		result = append(result, IfInfo{Header: header, IfBlock: branch.TrueTarget(), ElseBlock: branch.FalseTarget(), Exit: x})
	}
	return result
}

// ResolveVariableInfo walks every phi at info.Exit and resolves its If-side
// and Else-side incoming values. info must satisfy IsSimpleIf(); it is a
// programmer error to call this on a diamond where a phi has more than one
// incoming edge from either side, or no incoming edge from one side at all.
func ResolveVariableInfo(info IfInfo) IfVariableInfo {
	result := IfVariableInfo{If: info}
	for _, v := range info.Exit.Values() {
		if !v.IsPhi() {
			continue
		}
		var variable Variable
		variable.Phi = v
		var sawIf, sawElse bool
		for _, edge := range v.Incoming() {
			switch edge.Block {
			case info.IfBlock:
				if sawIf {
					panic("BUG: phi has more than one incoming edge from the if-block of a simple if")
				}
				variable.IfValue = edge.Value
				sawIf = true
			case info.ElseBlock:
				if sawElse {
					panic("BUG: phi has more than one incoming edge from the else-block of a simple if")
				}
				variable.ElseValue = edge.Value
				sawElse = true
			}
		}
		result.Variables = append(result.Variables, variable)
	}
	return result
}
