package matcher

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func key(name, id string) cacheKey {
	return cacheKey{name: name, id: id}
}

func TestScoreCacheHitAndExpiry(t *testing.T) {
	c := newScoreCache(time.Hour, 100)

	_, ok := c.get(key("missing", "x"))
	assert.False(t, ok)

	c.put(key("k", "1"), 0.75)
	got, ok := c.get(key("k", "1"))
	assert.True(t, ok)
	assert.Equal(t, 0.75, got)

	// Entries older than the TTL read as absent; nothing sweeps them.
	c.backdate(key("k", "1"), 2*time.Hour)
	_, ok = c.get(key("k", "1"))
	assert.False(t, ok)
	assert.Equal(t, 1, c.size(), "expired entry stays until a write purges it")
}

func TestScoreCachePurgesExpiredOnWrite(t *testing.T) {
	c := newScoreCache(time.Hour, 3)
	c.put(key("a", "1"), 0.1)
	c.put(key("b", "1"), 0.2)
	c.put(key("c", "1"), 0.3)
	c.backdate(key("a", "1"), 2*time.Hour)
	c.backdate(key("b", "1"), 2*time.Hour)

	c.put(key("d", "1"), 0.4)
	assert.Equal(t, 2, c.size())
	_, ok := c.get(key("c", "1"))
	assert.True(t, ok)
	_, ok = c.get(key("d", "1"))
	assert.True(t, ok)
}

func TestScoreCacheOverwrite(t *testing.T) {
	c := newScoreCache(time.Hour, 100)
	c.put(key("k", "1"), 0.2)
	c.put(key("k", "1"), 0.9)
	got, _ := c.get(key("k", "1"))
	assert.Equal(t, 0.9, got)
}

// Names containing separator-looking characters must not alias other
// (name, id) pairs.
func TestScoreCacheKeysDoNotAlias(t *testing.T) {
	c := newScoreCache(time.Hour, 100)
	c.put(key("Joe's|Coffee", "9 Elm Rd"), 0.2)
	c.put(key("Joe's", "Coffee|9 Elm Rd"), 0.8)

	a, ok := c.get(key("Joe's|Coffee", "9 Elm Rd"))
	assert.True(t, ok)
	assert.Equal(t, 0.2, a)

	b, ok := c.get(key("Joe's", "Coffee|9 Elm Rd"))
	assert.True(t, ok)
	assert.Equal(t, 0.8, b)
}
