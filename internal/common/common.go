package common

import (
	"math"
	"reflect"
	"unsafe"
)

// ElemSize returns the byte width of one T.
func ElemSize[T any]() uintptr {
	var zero T
	return unsafe.Sizeof(zero)
}

// ByteLen returns n*sizeof(T) and false when the product does not fit in an int64.
func ByteLen[T any](n int) (int64, bool) {
	size := ElemSize[T]()
	if n < 0 {
		return 0, false
	}
	if size == 0 || n == 0 {
		return 0, true
	}
	if uint64(n) > math.MaxInt64/uint64(size) {
		return 0, false
	}
	return int64(n) * int64(size), true
}

// MaxAllocBytes is the largest block the runtime will make: 1<<48 bytes on
// 64-bit platforms, 1<<31 on 32-bit ones. Bigger requests panic in makeslice.
const MaxAllocBytes int64 = 1 << (31 + 17*(^uint(0)>>63))

// MaxLen is the largest element count whose block fits in MaxAllocBytes.
// Zero-sized elements are only bounded by int.
func MaxLen[T any]() int {
	size := ElemSize[T]()
	if size == 0 {
		return math.MaxInt
	}
	return int(min(MaxAllocBytes/int64(size), math.MaxInt))
}

// Clip drops the spare capacity of s so a window can never append into
// storage it does not cover.
func Clip[T any](s []T) []T {
	return s[:len(s):len(s)]
}

// SameBacking reports whether a and b start at the same element and
// cover the same number of elements.
func SameBacking[T any](a, b []T) bool {
	if len(a) != len(b) {
		return false
	}
	if len(a) == 0 {
		return true
	}
	return unsafe.SliceData(a) == unsafe.SliceData(b)
}

// HasPointers reports whether values of type t can hold heap pointers.
// Blocks of such types must be cleared before they are parked for reuse.
func HasPointers(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Uintptr,
		reflect.Float32, reflect.Float64, reflect.Complex64, reflect.Complex128:
		return false
	case reflect.Array:
		if t.Len() == 0 {
			return false
		}
		return HasPointers(t.Elem())
	case reflect.Struct:
		for i := 0; i < t.NumField(); i++ {
			if HasPointers(t.Field(i).Type) {
				return true
			}
		}
		return false
	default:
		return true
	}
}

// TypeHasPointers is HasPointers for a type parameter.
func TypeHasPointers[T any]() bool {
	return HasPointers(reflect.TypeFor[T]())
}
