package containers

import "github.com/rawbytedev/containers/internal/common"

// Resize changes the length to n, keeping the first min(old, n) elements.
// Slots past the old length hold whatever the allocator returned.
func (a *Array[T]) Resize(n int) error {
	return a.ResizeWith(n, Uninitialized[T]())
}

// ResizeFill is Resize with the new tail set to v. Shrinking never writes v.
func (a *Array[T]) ResizeFill(n int, v T) error {
	return a.ResizeWith(n, Initialized(v))
}

// ResizeDiscard changes the length to n without keeping any element.
func (a *Array[T]) ResizeDiscard(n int) error {
	return a.ResizeWith(n, NonPreservingUninitialized[T]())
}

// ResizeDiscardFill changes the length to n and sets every element to v.
func (a *Array[T]) ResizeDiscardFill(n int, v T) error {
	return a.ResizeWith(n, NonPreservingInitialized(v))
}

// ResizeWith replaces the owned block with one of n elements according to p.
//
// When n equals the current length nothing happens, whatever the policy:
// the non-preserving kinds do not rewrite a same-sized block.
//
// The new block is obtained before the old one is touched, so on error a
// is unchanged. Views and element pointers taken before a successful
// resize must not be used afterwards.
func (a *Array[T]) ResizeWith(n int, p Policy[T]) error {
	old := len(a.block)
	if n == old {
		return nil
	}
	block, err := a.allocator().Alloc(n)
	if err != nil {
		return err
	}
	kept := 0
	if p.Preserving() {
		kept = copy(block, a.block)
	}
	if p.Fills() {
		fill(block[kept:], p.Value)
	}
	a.Release()
	a.block = common.Clip(block)
	return nil
}
