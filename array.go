package containers

import (
	"fmt"
	"iter"
	"slices"

	"github.com/rawbytedev/containers/internal/common"
)

// noCopy makes go vet's copylocks check report copies of the struct that
// embeds it. Arrays are move-only: use Move, MoveFrom or Freeze.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}

var (
	_ Writer[int] = (*Array[int])(nil)
	_ Reader[int] = (*ConstArray[int])(nil)
)

// Array exclusively owns one contiguous block of T obtained from an
// Allocator. The zero value is an empty array that owns nothing.
//
// An Array must not be copied. All methods take a pointer receiver, so
// views can only be taken from an addressable array, never from the
// temporary returned by a constructor.
type Array[T any] struct {
	noCopy noCopy

	block []T
	alloc Allocator[T]
}

// ConstArray owns its block like Array but only grants read access. The
// only ways in are the const constructors and a converting move from an
// Array; there is no way back.
type ConstArray[T any] struct {
	noCopy noCopy

	block []T
	alloc Allocator[T]
}

// New allocates n elements without writing them. Fresh heap blocks are
// zeroed by the runtime; callers must not rely on that.
func New[T any](n int) (Array[T], error) {
	return Make(nil, n, Uninitialized[T]())
}

// Filled allocates n elements and writes v into each.
func Filled[T any](n int, v T) (Array[T], error) {
	return Make(nil, n, Initialized(v))
}

// Of allocates len(vals) elements and copies vals in order.
func Of[T any](vals ...T) (Array[T], error) {
	return MakeOf(nil, vals...)
}

// Make allocates n elements from alloc (the heap when nil). Initialized
// policies write p.Value into every slot; the uninitialized ones leave the
// block as the allocator returned it.
func Make[T any](alloc Allocator[T], n int, p Policy[T]) (Array[T], error) {
	if alloc == nil {
		alloc = defaultHeap[T]()
	}
	block, err := alloc.Alloc(n)
	if err != nil {
		return Array[T]{}, err
	}
	if p.Fills() {
		fill(block, p.Value)
	}
	return adopt(block, alloc), nil
}

// MakeOf is Of with an explicit allocator.
func MakeOf[T any](alloc Allocator[T], vals ...T) (Array[T], error) {
	if alloc == nil {
		alloc = defaultHeap[T]()
	}
	block, err := alloc.Alloc(len(vals))
	if err != nil {
		return Array[T]{}, err
	}
	copy(block, vals)
	return adopt(block, alloc), nil
}

// adopt takes ownership of a block that alloc handed out.
func adopt[T any](block []T, alloc Allocator[T]) Array[T] {
	return Array[T]{block: common.Clip(block), alloc: alloc}
}

// ConstFilled allocates a read-only array of n copies of v.
func ConstFilled[T any](n int, v T) (ConstArray[T], error) {
	return MakeConst(nil, n, v)
}

// ConstOf allocates a read-only array holding vals.
func ConstOf[T any](vals ...T) (ConstArray[T], error) {
	a, err := Of(vals...)
	if err != nil {
		return ConstArray[T]{}, err
	}
	return a.Freeze(), nil
}

// MakeConst allocates a read-only array of n copies of v from alloc.
func MakeConst[T any](alloc Allocator[T], n int, v T) (ConstArray[T], error) {
	a, err := Make(alloc, n, Initialized(v))
	if err != nil {
		return ConstArray[T]{}, err
	}
	return a.Freeze(), nil
}

func (a *Array[T]) allocator() Allocator[T] {
	if a.alloc == nil {
		a.alloc = defaultHeap[T]()
	}
	return a.alloc
}

func (a *Array[T]) Len() int       { return len(a.block) }
func (a *Array[T]) IsEmpty() bool  { return len(a.block) == 0 }
func (a *Array[T]) At(i int) T     { return a.block[i] }
func (a *Array[T]) Set(i int, v T) { a.block[i] = v }

// Ptr returns a reference to element i. It is invalidated by any resize,
// move or release of a.
func (a *Array[T]) Ptr(i int) *T { return &a.block[i] }

// Data returns the owned block. The slice is a borrow with the same
// lifetime rules as a View.
func (a *Array[T]) Data() []T { return a.block }

func (a *Array[T]) Fill(v T)                { fill(a.block, v) }
func (a *Array[T]) All() iter.Seq2[int, T]  { return slices.All(a.block) }
func (a *Array[T]) Values() iter.Seq[T]     { return slices.Values(a.block) }
func (a *Array[T]) CopyTo(dst []T) int      { return copy(dst, a.block) }
func (a *Array[T]) ReadOnly() ReadOnly[T]   { return ReadOnly[T]{s: a.block} }
func (a *Array[T]) View() View[T]           { return View[T]{s: a.block} }
func (a *Array[T]) Allocator() Allocator[T] { return a.allocator() }

// Move transfers the block to a new Array and leaves a empty. Views taken
// from a keep pointing at the block, which the result now owns.
func (a *Array[T]) Move() Array[T] {
	block, alloc := a.block, a.alloc
	a.block = nil
	return Array[T]{block: block, alloc: alloc}
}

// MoveFrom releases a's block and takes over src's. src is left empty.
func (a *Array[T]) MoveFrom(src *Array[T]) {
	if a == src {
		return
	}
	a.Release()
	a.block, a.alloc = src.block, src.alloc
	src.block = nil
}

// Freeze moves the block into a ConstArray and leaves a empty.
func (a *Array[T]) Freeze() ConstArray[T] {
	block, alloc := a.block, a.alloc
	a.block = nil
	return ConstArray[T]{block: block, alloc: alloc}
}

// Release returns the block to its allocator and leaves a empty. Releasing
// an empty array does nothing.
func (a *Array[T]) Release() {
	if a.block == nil {
		return
	}
	block := a.block
	a.block = nil
	a.allocator().Free(block)
}

func (a *Array[T]) Format(state fmt.State, verb rune) {
	fmt.Fprintf(state, fmt.FormatString(state, verb), a.block)
}

func (c *ConstArray[T]) Len() int               { return len(c.block) }
func (c *ConstArray[T]) IsEmpty() bool          { return len(c.block) == 0 }
func (c *ConstArray[T]) At(i int) T             { return c.block[i] }
func (c *ConstArray[T]) All() iter.Seq2[int, T] { return slices.All(c.block) }
func (c *ConstArray[T]) Values() iter.Seq[T]    { return slices.Values(c.block) }
func (c *ConstArray[T]) CopyTo(dst []T) int     { return copy(dst, c.block) }
func (c *ConstArray[T]) ReadOnly() ReadOnly[T]  { return ReadOnly[T]{s: c.block} }

// Move transfers the block to a new ConstArray and leaves c empty.
func (c *ConstArray[T]) Move() ConstArray[T] {
	block, alloc := c.block, c.alloc
	c.block = nil
	return ConstArray[T]{block: block, alloc: alloc}
}

// MoveFrom releases c's block and takes over src's.
func (c *ConstArray[T]) MoveFrom(src *ConstArray[T]) {
	if c == src {
		return
	}
	c.Release()
	c.block, c.alloc = src.block, src.alloc
	src.block = nil
}

// FreezeFrom releases c's block and takes over the block of a mutable
// array, leaving src empty.
func (c *ConstArray[T]) FreezeFrom(src *Array[T]) {
	c.Release()
	c.block, c.alloc = src.block, src.alloc
	src.block = nil
}

// Release returns the block to its allocator and leaves c empty.
func (c *ConstArray[T]) Release() {
	if c.block == nil {
		return
	}
	block := c.block
	c.block = nil
	if c.alloc != nil {
		c.alloc.Free(block)
	}
}

func (c *ConstArray[T]) Format(state fmt.State, verb rune) {
	fmt.Fprintf(state, fmt.FormatString(state, verb), c.block)
}
