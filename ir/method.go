package ir

// Method is a named compilation unit: an ordered sequence of Parameters, an
// entry BasicBlock, and an owning context exposing a canonical undefined
// value (spec.md §3).
type Method struct {
	Name       string
	Parameters []*Value
	Entry      *BasicBlock
	// Blocks holds every block allocated for this Method, in allocation
	// order (not traversal order).
	Blocks []*BasicBlock

	undefined   *Value
	nextValueID ValueID
	nextBlockID BasicBlockID

	valuePool pool[Value]
	blockPool pool[BasicBlock]
}

// UndefinedValue returns the canonical undefined value for this Method's
// owning context, allocating it lazily. It is used to seed the value-level
// fix-point driver (spec.md §4.5).
func (m *Method) UndefinedValue() *Value {
	if m.undefined == nil {
		v := m.allocValue()
		v.kind = KindUndefined
		v.method = m
		m.undefined = v
	}
	return m.undefined
}

// allocValue hands out the next dense-indexed Value from this Method's
// arena, with its id already stamped.
func (m *Method) allocValue() *Value {
	if m.nextValueID == 0 {
		m.valuePool = newPool[Value]()
	}
	v := m.valuePool.allocate()
	v.id = m.nextValueID
	m.nextValueID++
	return v
}

// allocBlock hands out the next dense-indexed BasicBlock from this Method's
// arena, with its id already stamped.
func (m *Method) allocBlock() *BasicBlock {
	if m.nextBlockID == 0 {
		m.blockPool = newPool[BasicBlock]()
	}
	b := m.blockPool.allocate()
	b.id = m.nextBlockID
	b.traversalIndex = -1
	m.nextBlockID++
	return b
}

// ReturnBlocks returns every block in the Method whose terminator is a
// KindReturn value, in Blocks order.
func (m *Method) ReturnBlocks() []*BasicBlock {
	var out []*BasicBlock
	for _, b := range m.Blocks {
		if t := b.Terminator(); t != nil && t.Kind() == KindReturn {
			out = append(out, b)
		}
	}
	return out
}
