// Package containers provides an owning contiguous array and borrowed views
// over contiguous storage, with mutability and ownership kept apart in the
// type system.
//
//   - ReadOnly[T]: borrowed, read-only window.
//   - View[T]: borrowed window with write access. Only built from a []T or
//     a *Array, never from read-only storage.
//   - Array[T]: owns one block from an Allocator. Move-only.
//   - ConstArray[T]: owns one block, read-only. Reached from Array by Freeze,
//     never the other way.
//
// Widening is implicit: every Writer is a Reader. Views never own anything
// and carry no reference count. A view, an element pointer or a Data slice
// must not be used after its source array is resized, moved or released;
// nothing checks this at run time.
//
// Indexing is unchecked by this package. Out-of-range indexes are a caller
// error (the Go runtime panics as it would for a slice).
//
// Nothing here is safe for concurrent mutation. Concurrent readers are fine
// as long as no goroutine writes to or resizes the storage meanwhile.
package containers
