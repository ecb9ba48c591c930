package containers

// PolicyKind selects how a block is allocated and what happens to the old
// contents on resize.
type PolicyKind uint8

const (
	// KindUninitialized keeps the overlapping prefix; new tail slots are
	// whatever the allocator hands out.
	KindUninitialized PolicyKind = iota
	// KindInitialized keeps the overlapping prefix and fills the new tail.
	KindInitialized
	// KindNonPreservingUninitialized drops the old contents.
	KindNonPreservingUninitialized
	// KindNonPreservingInitialized drops the old contents and fills every slot.
	KindNonPreservingInitialized
)

func (k PolicyKind) String() string {
	switch k {
	case KindUninitialized:
		return "uninitialized"
	case KindInitialized:
		return "initialized"
	case KindNonPreservingUninitialized:
		return "non_preserving_uninitialized"
	case KindNonPreservingInitialized:
		return "non_preserving_initialized"
	default:
		return "?"
	}
}

// Policy is a PolicyKind plus the fill value for the initialized kinds.
type Policy[T any] struct {
	Kind  PolicyKind
	Value T
}

func Uninitialized[T any]() Policy[T] {
	return Policy[T]{Kind: KindUninitialized}
}

func Initialized[T any](v T) Policy[T] {
	return Policy[T]{Kind: KindInitialized, Value: v}
}

func NonPreservingUninitialized[T any]() Policy[T] {
	return Policy[T]{Kind: KindNonPreservingUninitialized}
}

func NonPreservingInitialized[T any](v T) Policy[T] {
	return Policy[T]{Kind: KindNonPreservingInitialized, Value: v}
}

// Preserving reports whether a resize keeps the overlapping prefix.
func (p Policy[T]) Preserving() bool {
	return p.Kind == KindUninitialized || p.Kind == KindInitialized
}

// Fills reports whether Value is written into slots.
func (p Policy[T]) Fills() bool {
	return p.Kind == KindInitialized || p.Kind == KindNonPreservingInitialized
}

func (p Policy[T]) String() string { return p.Kind.String() }
