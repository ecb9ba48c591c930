package containers

import (
	"bytes"
	"errors"
	"math"
	"testing"

	"github.com/rawbytedev/containers/internal/common"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietLogger() (*logrus.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	l := logrus.New()
	l.SetOutput(&buf)
	l.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	return l, &buf
}

func TestHeapAllocAndFree(t *testing.T) {
	l, _ := quietLogger()
	h := NewHeap[uint32](Options{Logger: l})

	b, err := h.Alloc(10)
	require.NoError(t, err)
	require.Len(t, b, 10)
	for _, v := range b {
		require.Zero(t, v)
	}
	assert.Equal(t, Stats{Allocs: 1, LiveBytes: 40}, h.Stats())

	h.Free(b)
	assert.Equal(t, Stats{Allocs: 1, Frees: 1}, h.Stats())

	empty, err := h.Alloc(0)
	require.NoError(t, err)
	assert.Nil(t, empty)
	h.Free(nil)
	assert.Equal(t, int64(1), h.Stats().Frees)
}

func TestHeapRejects(t *testing.T) {
	l, out := quietLogger()
	h := NewHeap[uint64](Options{MaxBytes: 1024, Logger: l})

	cases := []struct {
		name string
		n    int
		want error
	}{
		{"negative", -3, ErrNegativeLen},
		{"overflow", math.MaxInt, ErrOverflow},
		{"runtime limit", common.MaxLen[uint64]() + 1, ErrOverflow},
		{"limit", 129, ErrLimitExceeded},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b, err := h.Alloc(tc.n)
			require.Nil(t, b)
			require.ErrorIs(t, err, ErrAllocation)
			require.ErrorIs(t, err, tc.want)

			var ae *AllocationError
			require.True(t, errors.As(err, &ae))
			assert.Equal(t, tc.n, ae.Requested)
			assert.Equal(t, uintptr(8), ae.ElemSize)
			assert.Equal(t, int64(1024), ae.Limit)
		})
	}
	assert.Equal(t, int64(4), h.Stats().Failures)
	assert.Contains(t, out.String(), "level=warning")
	assert.Contains(t, out.String(), "allocator=heap")

	b, err := h.Alloc(128)
	require.NoError(t, err)
	assert.Len(t, b, 128)
}

func TestAllocationErrorMessage(t *testing.T) {
	err := &AllocationError{Requested: 9, ElemSize: 8, Limit: 64, Err: ErrLimitExceeded}
	assert.Equal(t, "containers: allocation failed: 9 x 8B (limit 64B): allocator limit exceeded", err.Error())

	err = &AllocationError{Requested: -1, ElemSize: 4, Err: ErrNegativeLen}
	assert.Equal(t, "containers: allocation failed: -1 x 4B: negative length", err.Error())
	assert.False(t, errors.Is(err, ErrOverflow))
}

func TestHeapDebugTrace(t *testing.T) {
	l, out := quietLogger()
	h := NewHeap[byte](Options{Logger: l, LogLevel: "debug"})
	b, err := h.Alloc(16)
	require.NoError(t, err)
	h.Free(b)
	assert.Contains(t, out.String(), "msg=alloc")
	assert.Contains(t, out.String(), "bytes=16")
	assert.Contains(t, out.String(), "msg=free")
}

func TestPoolRecycles(t *testing.T) {
	l, _ := quietLogger()
	p := NewPool[int](Options{Logger: l, MaxCached: 2})

	first, err := p.Alloc(4)
	require.NoError(t, err)
	copy(first, []int{1, 2, 3, 4})
	p.Free(first)
	assert.Equal(t, 1, p.Parked())

	again, err := p.Alloc(4)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3, 4}, again, "recycled block keeps its old contents")
	assert.Equal(t, 0, p.Parked())

	other, err := p.Alloc(3)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 0, 0}, other)

	assert.Equal(t, Stats{Allocs: 3, Frees: 1, Recycled: 1, LiveBytes: 7 * 8}, p.Stats())
}

func TestPoolZeroFill(t *testing.T) {
	l, _ := quietLogger()
	p := NewPool[int](Options{Logger: l, ZeroFill: true})
	b, err := p.Alloc(3)
	require.NoError(t, err)
	copy(b, []int{9, 9, 9})
	p.Free(b)

	b, err = p.Alloc(3)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 0, 0}, b)
}

func TestPoolCapsParkedBlocks(t *testing.T) {
	l, _ := quietLogger()
	p := NewPool[int](Options{Logger: l, MaxCached: 2})
	blocks := make([][]int, 0, 4)
	for i := 0; i < 4; i++ {
		b, err := p.Alloc(8)
		require.NoError(t, err)
		blocks = append(blocks, b)
	}
	for _, b := range blocks {
		p.Free(b)
	}
	assert.Equal(t, 2, p.Parked())
	assert.Equal(t, int64(4), p.Stats().Frees)
	assert.Zero(t, p.Stats().LiveBytes)
}

func TestPoolScrubsPointers(t *testing.T) {
	l, _ := quietLogger()
	p := NewPool[*int](Options{Logger: l})
	b, err := p.Alloc(2)
	require.NoError(t, err)
	x := 1
	b[0], b[1] = &x, &x
	p.Free(b)

	b, err = p.Alloc(2)
	require.NoError(t, err)
	assert.Nil(t, b[0])
	assert.Nil(t, b[1])
}

func TestPoolBackedArray(t *testing.T) {
	l, _ := quietLogger()
	p := NewPool[string](Options{Logger: l})

	a, err := MakeOf[string](p, "a", "b")
	require.NoError(t, err)
	require.NoError(t, a.ResizeFill(4, "z"))
	assert.Equal(t, []string{"a", "b", "z", "z"}, a.Data())
	a.Release()

	assert.Equal(t, 2, p.Parked())
	assert.Equal(t, Stats{Allocs: 2, Frees: 2}, p.Stats())
}

func TestPoolLimit(t *testing.T) {
	l, _ := quietLogger()
	p := NewPool[int32](Options{Logger: l, MaxBytes: 8})
	_, err := p.Alloc(3)
	require.ErrorIs(t, err, ErrLimitExceeded)
	assert.Equal(t, int64(1), p.Stats().Failures)
}
