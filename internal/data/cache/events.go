package cache

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/penwyp/go-event-timeline/internal/util"
)

// ParseFunc reads the events of one file.
type ParseFunc func(path string) ([]time.Time, error)

type entry struct {
	info   util.FileInfo
	events []time.Time
}

// EventCache remembers the parsed events of each file and skips parsing
// while the file is unchanged on disk. The returned slices are shared and
// must not be modified.
type EventCache struct {
	mu      sync.Mutex
	parse   ParseFunc
	entries map[string]entry

	hits   int
	misses int
}

func NewEventCache(parse ParseFunc) *EventCache {
	return &EventCache{
		parse:   parse,
		entries: make(map[string]entry),
	}
}

// Load returns the events of path, parsing only when the file changed since
// the last successful Load. Failed parses are not cached.
func (c *EventCache) Load(path string) ([]time.Time, error) {
	key, err := filepath.Abs(path)
	if err != nil {
		key = path
	}

	info, err := util.GetFileInfo(key)
	if err != nil {
		c.Invalidate(path)
		return nil, err
	}

	c.mu.Lock()
	cached, ok := c.entries[key]
	if ok && cached.info == info {
		c.hits++
		c.mu.Unlock()
		util.LogDebug("Event cache hit", util.F("path", key), util.F("events", len(cached.events)))
		return cached.events, nil
	}
	c.misses++
	c.mu.Unlock()

	events, err := c.parse(path)
	if err != nil {
		c.Invalidate(path)
		return nil, err
	}

	c.mu.Lock()
	c.entries[key] = entry{info: info, events: events}
	c.mu.Unlock()
	return events, nil
}

// Invalidate drops the cached events of path.
func (c *EventCache) Invalidate(path string) {
	key, err := filepath.Abs(path)
	if err != nil {
		key = path
	}
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
}

// Stats returns the number of cache hits and misses so far.
func (c *EventCache) Stats() (hits, misses int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hits, c.misses
}
