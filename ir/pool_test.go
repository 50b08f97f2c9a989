package ir

import "testing"

func TestPool_allocateAcrossPages(t *testing.T) {
	p := newPool[int]()
	n := poolPageSize*2 + 3
	ptrs := make([]*int, n)
	for i := 0; i < n; i++ {
		ptrs[i] = p.allocate()
		*ptrs[i] = i
	}
	if p.allocated != n {
		t.Fatalf("allocated = %d, want %d", p.allocated, n)
	}
	for i := 0; i < n; i++ {
		if *ptrs[i] != i {
			t.Fatalf("ptrs[%d] = %d, want %d", i, *ptrs[i], i)
		}
		if got := p.view(i); got != ptrs[i] {
			t.Fatalf("view(%d) = %p, want %p", i, got, ptrs[i])
		}
	}
}

func TestMethod_allocValueAndBlockAreDenselyIndexed(t *testing.T) {
	b := NewBuilder("m")
	entry := b.AllocateBlock()
	b.SetCurrentBlock(entry)
	i32 := NewScalarType(4, 4)
	v0 := b.Generic(i32)
	v1 := b.Generic(i32)
	b.Return()

	if v0.ID() != 0 || v1.ID() != 1 {
		t.Fatalf("expected dense value ids 0,1; got %d,%d", v0.ID(), v1.ID())
	}
	if entry.ID() != 0 {
		t.Fatalf("expected dense block id 0; got %d", entry.ID())
	}
}
