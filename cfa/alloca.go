package cfa

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/m4rs-mt/ILGPU-sub005/ir"
)

// AllocaInformation describes a single allocation: its index within its
// kind, the underlying Alloca, its array size, and derived size/alignment
// figures (spec.md §3).
type AllocaInformation struct {
	Index              int
	Alloca             *ir.Value
	ArraySize          int64
	ElementSize        uint64
	ElementAlignment   uint64
	ElementType        *ir.TypeNode
	TotalSize          uint64
}

func newAllocaInformation(index int, alloca *ir.Value) (AllocaInformation, error) {
	length, isArray := alloca.IsArrayAllocation()
	if isArray && length < 0 && alloca.AllocaSpace() != ir.Shared {
		return AllocaInformation{}, errors.Wrapf(ErrDynamicAllocationNotSupported,
			"alloca %s in space %s", alloca.Name(), alloca.AllocaSpace())
	}
	elemType := alloca.AllocaElementType()
	info := AllocaInformation{
		Index:            index,
		Alloca:           alloca,
		ArraySize:        length,
		ElementSize:      elemType.Size,
		ElementAlignment: elemType.Alignment,
		ElementType:      elemType,
	}
	if length > 0 {
		info.TotalSize = elemType.Size * uint64(length)
	}
	return info, nil
}

// AllocaKindInformation is an ordered sequence of AllocaInformation of one
// kind, plus the cumulative TotalSize across its entries (0 for the dynamic
// shared kind, which never contributes a known size).
type AllocaKindInformation struct {
	Entries   []AllocaInformation
	TotalSize uint64
}

// Contains reports whether alloca is one of this kind's entries. Quantities
// here are small (spec.md §4.2: "typically <64"), so a linear scan over
// references is the right tool, not a map.
func (k AllocaKindInformation) Contains(alloca *ir.Value) bool {
	for _, e := range k.Entries {
		if e.Alloca == alloca {
			return true
		}
	}
	return false
}

// Allocas is the result of BuildAllocas: every allocation in a Method,
// categorized by address space (spec.md §3, §4.2).
type Allocas struct {
	LocalAllocations         AllocaKindInformation
	SharedAllocations        AllocaKindInformation
	DynamicSharedAllocations AllocaKindInformation
	LocalMemorySize          uint64
	SharedMemorySize         uint64
}

// BuildAllocas visits every value in block iteration order and categorizes
// every Alloca found, exactly as spec.md §4.2 describes. Allocation indices
// are assigned per kind, starting at 0, in visitation order.
func BuildAllocas(blocks []*ir.BasicBlock) (Allocas, error) {
	var result Allocas
	for _, blk := range blocks {
		for _, v := range blk.Values() {
			if v.Kind() != ir.KindAlloca {
				continue
			}
			switch v.AllocaSpace() {
			case ir.Local:
				info, err := newAllocaInformation(len(result.LocalAllocations.Entries), v)
				if err != nil {
					return Allocas{}, err
				}
				result.LocalAllocations.Entries = append(result.LocalAllocations.Entries, info)
				result.LocalAllocations.TotalSize += info.TotalSize
				result.LocalMemorySize += info.TotalSize
			case ir.Shared:
				if _, isArray := v.IsArrayAllocation(); isArray && v.AllocaArraySize() < 0 {
					info, err := newAllocaInformation(len(result.DynamicSharedAllocations.Entries), v)
					if err != nil {
						return Allocas{}, err
					}
					result.DynamicSharedAllocations.Entries = append(result.DynamicSharedAllocations.Entries, info)
					// Dynamic shared allocations never contribute to a known
					// total (spec.md §3, §8 property 6).
				} else {
					info, err := newAllocaInformation(len(result.SharedAllocations.Entries), v)
					if err != nil {
						return Allocas{}, err
					}
					result.SharedAllocations.Entries = append(result.SharedAllocations.Entries, info)
					result.SharedAllocations.TotalSize += info.TotalSize
					result.SharedMemorySize += info.TotalSize
				}
			default:
				panic(fmt.Sprintf("BUG: alloca %s has unexpected address space %s", v.Name(), v.AllocaSpace()))
			}
		}
	}
	return result, nil
}
