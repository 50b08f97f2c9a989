package cfa

import (
	"fmt"

	"github.com/m4rs-mt/ILGPU-sub005/cfa/cfaapi"
	"github.com/m4rs-mt/ILGPU-sub005/ir"
)

// BlockAnalysis is the abstract contract a block-level fix-point instance
// implements (spec.md §4.5): CreateData seeds the monotone element for a
// block, Update recomputes it given the already-computed context and
// reports whether it changed.
type BlockAnalysis[T any] interface {
	CreateData(block *ir.BasicBlock) T
	Update(block *ir.BasicBlock, context map[*ir.BasicBlock]T) bool
}

// blockWorklist is the shared (stack, on-stack-set) pair the block- and
// value-level drivers both use, per the Design Notes' "two small concrete
// structs exposing indexed read/write and a shared (stack, on-stack-set)
// pair" guidance.
type blockWorklist struct {
	stack   []*ir.BasicBlock
	onStack map[*ir.BasicBlock]bool
}

func newBlockWorklist() *blockWorklist {
	return &blockWorklist{onStack: make(map[*ir.BasicBlock]bool)}
}

func (w *blockWorklist) push(b *ir.BasicBlock) {
	if w.onStack[b] {
		return
	}
	w.onStack[b] = true
	w.stack = append(w.stack, b)
}

func (w *blockWorklist) pop() *ir.BasicBlock {
	tail := len(w.stack) - 1
	b := w.stack[tail]
	w.stack = w.stack[:tail]
	w.onStack[b] = false
	return b
}

func (w *blockWorklist) empty() bool { return len(w.stack) == 0 }

// RunBlockFixpoint runs the block-level monotone fix-point of spec.md §4.5
// over blocks in the given Direction, returning the per-block context map at
// quiescence.
func RunBlockFixpoint[T any](blocks []*ir.BasicBlock, dir Direction, analysis BlockAnalysis[T]) map[*ir.BasicBlock]T {
	context := make(map[*ir.BasicBlock]T, len(blocks))
	for _, b := range blocks {
		context[b] = analysis.CreateData(b)
	}

	w := newBlockWorklist()
	for _, b := range blocks {
		if analysis.Update(b, context) {
			for _, succ := range dir.Successors(b) {
				w.push(succ)
			}
		}
	}

	iterations := 0
	for !w.empty() {
		b := w.pop()
		if analysis.Update(b, context) {
			for _, succ := range dir.Successors(b) {
				w.push(succ)
			}
		}
		iterations++
	}
	if cfaapi.FixpointLoggingEnabled {
		logger.WithField("iterations", iterations).Debug("block fix-point converged")
	}
	return context
}

// ValueAnalysis is the abstract contract a value-level fix-point instance
// implements: CreateData seeds the monotone element for a value, Update
// recomputes it given the already-computed context.
type ValueAnalysis[T any] interface {
	CreateData(value *ir.Value) T
	Update(value *ir.Value, context map[*ir.Value]T) bool
}

// RunValueFixpoint runs the value-level driver of spec.md §4.5: same
// block-worklist structure as RunBlockFixpoint, but Update is invoked for
// every value in a popped block, and a block is rescheduled iff any of its
// values changed. The method's UndefinedValue is seeded before the main
// loop.
func RunValueFixpoint[T any](method *ir.Method, blocks []*ir.BasicBlock, dir Direction, analysis ValueAnalysis[T]) map[*ir.Value]T {
	context := make(map[*ir.Value]T)
	context[method.UndefinedValue()] = analysis.CreateData(method.UndefinedValue())

	for _, b := range blocks {
		for _, v := range b.Values() {
			context[v] = analysis.CreateData(v)
		}
	}

	w := newBlockWorklist()
	update := func(b *ir.BasicBlock) bool {
		changed := false
		for _, v := range b.Values() {
			if analysis.Update(v, context) {
				changed = true
			}
		}
		return changed
	}

	for _, b := range blocks {
		if update(b) {
			for _, succ := range dir.Successors(b) {
				w.push(succ)
			}
		}
	}

	iterations := 0
	for !w.empty() {
		b := w.pop()
		if update(b) {
			for _, succ := range dir.Successors(b) {
				w.push(succ)
			}
		}
		iterations++
	}
	if cfaapi.FixpointLoggingEnabled {
		logger.WithField("iterations", iterations).Debug("value fix-point converged")
	}
	return context
}

// GlobalAnalysis is the abstract contract for the C6-global inter-procedural
// driver. A is the per-method summary data; V is the per-value lattice
// element; Arg is an argument abstraction (one per parameter position).
type GlobalAnalysis[A any, V any, Arg comparable] interface {
	// CreateMethodData returns the initial per-method summary.
	CreateMethodData(method *ir.Method) A

	// ValueAnalysis for the inner per-method value-level fix-point.
	ValueAnalysis[V]

	// SeedParam writes the value-context entry for a parameter given its
	// argument abstraction, before the inner fix-point runs.
	SeedParam(param *ir.Value, arg Arg, context map[*ir.Value]V)

	// ExtractArg reduces a call argument's resolved value-context entry to
	// the Arg abstraction used to key the outer worklist.
	ExtractArg(callArg *ir.Value, context map[*ir.Value]V) Arg

	// UpdateMethod is invoked once per processed (method, args) entry so the
	// analysis can write summary results into methodData.
	UpdateMethod(method *ir.Method, args []Arg, valueContext map[*ir.Value]V, methodData map[*ir.Method]A)
}

// RunGlobalFixpoint runs the C6-global inter-procedural driver of
// spec.md §4.5 starting from root with rootArgs as its parameter
// abstractions, using orderOf to compute each method's block traversal
// order (Forwards, per §4.1).
func RunGlobalFixpoint[A any, V any, Arg comparable](
	root *ir.Method,
	rootArgs []Arg,
	analysis GlobalAnalysis[A, V, Arg],
	orderOf func(*ir.Method) []*ir.BasicBlock,
) map[*ir.Method]A {
	methodData := make(map[*ir.Method]A)
	visited := make(map[string]bool)

	type workItem struct {
		method *ir.Method
		args   []Arg
	}
	queue := []workItem{{method: root, args: rootArgs}}

	for len(queue) > 0 {
		item := queue[0]
		queue = queue[1:]

		key := encodeGlobalKey(item.method, item.args)
		if visited[key] {
			continue
		}
		visited[key] = true

		if _, ok := methodData[item.method]; !ok {
			methodData[item.method] = analysis.CreateMethodData(item.method)
		}

		blocks := orderOf(item.method)
		valueContext := make(map[*ir.Value]V)
		valueContext[item.method.UndefinedValue()] = analysis.CreateData(item.method.UndefinedValue())
		for _, b := range blocks {
			for _, v := range b.Values() {
				valueContext[v] = analysis.CreateData(v)
			}
		}
		for i, param := range item.method.Parameters {
			valueContext[param] = analysis.CreateData(param)
			if i < len(item.args) {
				analysis.SeedParam(param, item.args[i], valueContext)
			}
		}

		w := newBlockWorklist()
		update := func(b *ir.BasicBlock) bool {
			changed := false
			for _, v := range b.Values() {
				if analysis.Update(v, valueContext) {
					changed = true
				}
			}
			return changed
		}
		for _, b := range blocks {
			if update(b) {
				for _, succ := range Forwards.Successors(b) {
					w.push(succ)
				}
			}
		}
		for !w.empty() {
			b := w.pop()
			if update(b) {
				for _, succ := range Forwards.Successors(b) {
					w.push(succ)
				}
			}
		}

		analysis.UpdateMethod(item.method, item.args, valueContext, methodData)

		for _, b := range blocks {
			for _, v := range b.Values() {
				if v.Kind() != ir.KindCall || v.CallTarget() == nil {
					continue
				}
				callArgs := make([]Arg, len(v.CallArgs()))
				for i, a := range v.CallArgs() {
					callArgs[i] = analysis.ExtractArg(a, valueContext)
				}
				if !visited[encodeGlobalKey(v.CallTarget(), callArgs)] {
					queue = append(queue, workItem{method: v.CallTarget(), args: callArgs})
				}
			}
		}
	}

	if cfaapi.FixpointLoggingEnabled {
		logger.WithField("methods", len(methodData)).Debug("global fix-point converged")
	}
	return methodData
}

// encodeGlobalKey builds the outer-worklist dedup key: method identity plus
// element-wise encoding of the argument abstractions (spec.md §4.5: "equality
// on entries is by method identity plus element-wise equality of argument
// abstractions"). Encoding each element individually, rather than comparing
// the argument slice as a whole, is what gives genuine element-wise equality
// instead of slice-identity comparison. See DESIGN.md.
func encodeGlobalKey[Arg comparable](method *ir.Method, args []Arg) string {
	key := fmt.Sprintf("%p|", method)
	for _, a := range args {
		key += fmt.Sprintf("%v,", a)
	}
	return key
}
