package containers

import (
	"errors"
	"fmt"
)

var (
	ErrAllocation    = errors.New("containers: allocation failed")
	ErrNegativeLen   = errors.New("negative length")
	ErrOverflow      = errors.New("byte size overflows")
	ErrLimitExceeded = errors.New("allocator limit exceeded")
)

// AllocationError is returned when an allocator cannot hand out a block.
// The array that requested the block is left exactly as it was.
type AllocationError struct {
	Requested int     // element count
	ElemSize  uintptr // bytes per element
	Limit     int64   // allocator byte limit, 0 when unlimited
	Err       error
}

func (e *AllocationError) Error() string {
	if e.Limit > 0 {
		return fmt.Sprintf("%v: %d x %dB (limit %dB): %v", ErrAllocation, e.Requested, e.ElemSize, e.Limit, e.Err)
	}
	return fmt.Sprintf("%v: %d x %dB: %v", ErrAllocation, e.Requested, e.ElemSize, e.Err)
}

func (e *AllocationError) Unwrap() error { return e.Err }

// Is makes every AllocationError match ErrAllocation.
func (e *AllocationError) Is(target error) bool { return target == ErrAllocation }
