package containers

import (
	"fmt"
	"iter"
	"slices"

	"github.com/rawbytedev/containers/internal/common"
)

// Reader is anything that exposes a read-only window of T: ReadOnly, View,
// *Array and *ConstArray. Accept a Reader wherever read access is enough.
type Reader[T any] interface {
	Len() int
	At(i int) T
	ReadOnly() ReadOnly[T]
}

// Writer is a Reader whose storage is known to be mutable: View and *Array.
type Writer[T any] interface {
	Reader[T]
	Set(i int, v T)
	View() View[T]
}

var (
	_ Reader[int] = ReadOnly[int]{}
	_ Writer[int] = View[int]{}
)

// ReadOnly is a borrowed, read-only window over contiguous storage it does
// not own. It must not outlive its source, nor be used after the source
// array is resized, moved or released.
//
// Indexing is not checked beyond what the Go runtime does for slices.
type ReadOnly[T any] struct {
	s []T
}

// NewReadOnly spans s exactly. Pass arr[:] for a fixed-size array.
func NewReadOnly[T any](s []T) ReadOnly[T] {
	return ReadOnly[T]{s: common.Clip(s)}
}

// NewReadOnlyRange spans s[begin:end]. The caller guarantees
// 0 <= begin <= end <= len(s).
func NewReadOnlyRange[T any](s []T, begin, end int) ReadOnly[T] {
	return ReadOnly[T]{s: s[begin:end:end]}
}

// NewReadOnlyFrom slices any Reader down to its read-only window.
func NewReadOnlyFrom[T any](r Reader[T]) ReadOnly[T] {
	return r.ReadOnly()
}

func (r ReadOnly[T]) Len() int      { return len(r.s) }
func (r ReadOnly[T]) IsEmpty() bool { return len(r.s) == 0 }

// At returns element i.
func (r ReadOnly[T]) At(i int) T { return r.s[i] }

// ReadOnly returns r itself.
func (r ReadOnly[T]) ReadOnly() ReadOnly[T] { return r }

// All yields index/value pairs from begin to end.
func (r ReadOnly[T]) All() iter.Seq2[int, T] { return slices.All(r.s) }

// Values yields the elements from begin to end.
func (r ReadOnly[T]) Values() iter.Seq[T] { return slices.Values(r.s) }

// CopyTo copies min(r.Len(), len(dst)) elements into dst.
func (r ReadOnly[T]) CopyTo(dst []T) int { return copy(dst, r.s) }

// Clone returns the elements in a newly allocated slice.
func (r ReadOnly[T]) Clone() []T { return slices.Clone(r.s) }

// Sub narrows the window to [lo, hi).
func (r ReadOnly[T]) Sub(lo, hi int) ReadOnly[T] {
	return ReadOnly[T]{s: r.s[lo:hi:hi]}
}

// Aliases reports whether r and other cover exactly the same elements.
func (r ReadOnly[T]) Aliases(other ReadOnly[T]) bool {
	return common.SameBacking(r.s, other.s)
}

func (r ReadOnly[T]) Format(state fmt.State, verb rune) {
	fmt.Fprintf(state, fmt.FormatString(state, verb), r.s)
}

// View is a borrowed window with write access. It can only be built from
// storage that is already mutable: a []T or a *Array. The same lifetime
// rules as ReadOnly apply.
type View[T any] struct {
	s []T
}

// NewView spans s exactly. Pass arr[:] for a fixed-size array.
func NewView[T any](s []T) View[T] {
	return View[T]{s: common.Clip(s)}
}

// NewViewRange spans s[begin:end]. The caller guarantees
// 0 <= begin <= end <= len(s).
func NewViewRange[T any](s []T, begin, end int) View[T] {
	return View[T]{s: s[begin:end:end]}
}

func (v View[T]) Len() int      { return len(v.s) }
func (v View[T]) IsEmpty() bool { return len(v.s) == 0 }
func (v View[T]) At(i int) T    { return v.s[i] }

// Set writes element i.
func (v View[T]) Set(i int, x T) { v.s[i] = x }

// Ptr returns a reference to element i.
func (v View[T]) Ptr(i int) *T { return &v.s[i] }

// Data returns the window as a slice sharing the viewed storage.
func (v View[T]) Data() []T { return v.s }

// ReadOnly drops write access. The result aliases the same storage.
func (v View[T]) ReadOnly() ReadOnly[T] { return ReadOnly[T]{s: v.s} }

// View returns v itself.
func (v View[T]) View() View[T] { return v }

func (v View[T]) All() iter.Seq2[int, T] { return slices.All(v.s) }
func (v View[T]) Values() iter.Seq[T]    { return slices.Values(v.s) }
func (v View[T]) CopyTo(dst []T) int     { return copy(dst, v.s) }

// CopyFrom copies min(v.Len(), src.Len()) elements of src into v.
func (v View[T]) CopyFrom(src Reader[T]) int {
	return copy(v.s, src.ReadOnly().s)
}

// Fill writes x into every element.
func (v View[T]) Fill(x T) { fill(v.s, x) }

// Sub narrows the window to [lo, hi).
func (v View[T]) Sub(lo, hi int) View[T] {
	return View[T]{s: v.s[lo:hi:hi]}
}

func (v View[T]) Format(state fmt.State, verb rune) {
	fmt.Fprintf(state, fmt.FormatString(state, verb), v.s)
}

func fill[T any](s []T, x T) {
	for i := range s {
		s[i] = x
	}
}
