package cfa

import "github.com/pkg/errors"

// ErrDynamicAllocationNotSupported is returned by BuildAllocas when it
// encounters an alloca that is neither a simple scalar nor a statically
// sized array outside the Shared address space (spec.md §4.2, §7).
var ErrDynamicAllocationNotSupported = errors.New("dynamic allocation not supported")

// ErrEmptyBlockSet is returned by GetImmediateCommonDominator when called
// with no blocks (spec.md §7: "empty block list ... out-of-range error").
var ErrEmptyBlockSet = errors.New("GetImmediateCommonDominator: empty block set")
