package containers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPolicyKinds(t *testing.T) {
	cases := []struct {
		p          Policy[int]
		name       string
		preserving bool
		fills      bool
	}{
		{Uninitialized[int](), "uninitialized", true, false},
		{Initialized(3), "initialized", true, true},
		{NonPreservingUninitialized[int](), "non_preserving_uninitialized", false, false},
		{NonPreservingInitialized(3), "non_preserving_initialized", false, true},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.name, tc.p.String())
		assert.Equal(t, tc.preserving, tc.p.Preserving(), tc.name)
		assert.Equal(t, tc.fills, tc.p.Fills(), tc.name)
	}
	assert.Equal(t, 3, Initialized(3).Value)
	assert.Equal(t, "?", PolicyKind(9).String())
}
