package spamc

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaultSelectServerDeterministic(t *testing.T) {
	for _, key := range []string{"alice", "bob", "carol-with-a-long-name"} {
		first := DefaultSelectServer(key, 5)
		require.GreaterOrEqual(t, first, 0)
		require.Less(t, first, 5)

		for range 10 {
			require.Equal(t, first, DefaultSelectServer(key, 5))
		}
	}
}

func TestDefaultSelectServerEmptyKey(t *testing.T) {
	require.Equal(t, 0, DefaultSelectServer("", 5))
}

func TestDefaultSelectServerSingleServer(t *testing.T) {
	require.Equal(t, 0, DefaultSelectServer("anything", 1))
}

func TestDefaultSelectServerSpreads(t *testing.T) {
	// Many users over a few servers must hit more than one server.
	seen := map[int]bool{}
	users := []string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j"}
	for _, u := range users {
		seen[DefaultSelectServer(u, 4)] = true
	}
	require.Greater(t, len(seen), 1)
}

func TestStaticSelector(t *testing.T) {
	sel := staticSelector(2)
	require.Equal(t, 2, sel("any", 3))
	require.Equal(t, 0, sel("any", 2))
}
