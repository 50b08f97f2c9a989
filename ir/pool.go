package ir

const poolPageSize = 128

// pool is a paged arena of T: new elements are handed out from a fixed-size
// page, with additional pages grown on demand, and the per-element pointer
// stays stable for the arena's lifetime (append never moves existing
// elements, unlike growing a plain slice). Builder uses one pool[Value] and
// one pool[BasicBlock] per Method, so values and blocks end up living in
// dense, cache-friendly arenas keyed by the dense ValueID/BasicBlockID they
// are allocated under, per the "intern into arenas keyed by dense integer
// indices" design goal.
type pool[T any] struct {
	pages            []*[poolPageSize]T
	allocated, index int
}

// newPool returns a ready-to-use, empty pool.
func newPool[T any]() pool[T] {
	return pool[T]{index: poolPageSize}
}

// allocate hands out a new, zero-valued T from the arena.
func (p *pool[T]) allocate() *T {
	if p.index == poolPageSize {
		if len(p.pages) == cap(p.pages) {
			p.pages = append(p.pages, new([poolPageSize]T))
		} else {
			i := len(p.pages)
			p.pages = p.pages[:i+1]
			if p.pages[i] == nil {
				p.pages[i] = new([poolPageSize]T)
			}
		}
		p.index = 0
	}
	ret := &p.pages[len(p.pages)-1][p.index]
	p.index++
	p.allocated++
	return ret
}

// view returns the element at dense index i, e.g. view(int(id)) for a
// ValueID/BasicBlockID allocated from this same pool.
func (p *pool[T]) view(i int) *T {
	page, index := i/poolPageSize, i%poolPageSize
	return &p.pages[page][index]
}
