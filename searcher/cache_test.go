package searcher

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Hortensjaa/AI-course/game"
)

func TestTranspositionCache(t *testing.T) {
	key := CacheKey{Hash: 42, Current: game.First, Perspective: game.First}

	t.Run("answering shallower or equal requests", func(t *testing.T) {
		c := NewTranspositionCache()
		c.Put(key, 5, 17)

		for _, depth := range []int{0, 3, 5} {
			v, ok := c.Get(key, depth)
			require.True(t, ok, "depth %d", depth)
			require.Equal(t, 17, v)
		}
		_, ok := c.Get(key, 6)
		require.False(t, ok, "Deeper requests should miss")
	})

	t.Run("keys include player and perspective", func(t *testing.T) {
		c := NewTranspositionCache()
		c.Put(key, 5, 17)

		_, ok := c.Get(CacheKey{Hash: 42, Current: game.Second, Perspective: game.First}, 1)
		require.False(t, ok)
		_, ok = c.Get(CacheKey{Hash: 42, Current: game.First, Perspective: game.Second}, 1)
		require.False(t, ok)
	})

	t.Run("overwriting unconditionally", func(t *testing.T) {
		c := NewTranspositionCache()
		c.Put(key, 5, 17)
		c.Put(key, 2, -3)

		_, ok := c.Get(key, 5)
		require.False(t, ok, "Shallower write should replace the deeper entry")
		v, ok := c.Get(key, 2)
		require.True(t, ok)
		require.Equal(t, -3, v)
		require.Equal(t, 1, c.Len())
	})

	t.Run("clearing", func(t *testing.T) {
		c := NewTranspositionCache()
		c.Put(key, 1, 1)
		c.Clear()

		require.Zero(t, c.Len())
		_, ok := c.Get(key, 0)
		require.False(t, ok)
	})
}
