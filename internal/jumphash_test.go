package internal

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestJumpHashBounds(t *testing.T) {
	for key := uint64(0); key < 1000; key += 37 {
		b := JumpHash(key, 8)
		require.GreaterOrEqual(t, b, 0)
		require.Less(t, b, 8)
	}
}

func TestJumpHashStableAcrossGrowth(t *testing.T) {
	// Growing the bucket count either keeps a key in place or moves it to
	// a new bucket, never shuffles it among the old ones.
	for key := uint64(1); key < 500; key += 13 {
		before := JumpHash(key, 7)
		after := JumpHash(key, 8)
		if after != before {
			require.Equal(t, 7, after)
		}
	}
}

func TestJumpHashDegenerateBuckets(t *testing.T) {
	require.Equal(t, 0, JumpHash(42, 0))
	require.Equal(t, 0, JumpHash(42, 1))
}
