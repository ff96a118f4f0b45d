// Package querycache memoises read queries by key and drops them by tag when a
// mutation reports that the underlying data changed.
package querycache

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/charlesng35/assetdesk/pkg/logger"
	"github.com/charlesng35/assetdesk/pkg/metrics"
)

// ListID is the tag ID every collection query provides.
const ListID = "LIST"

// Tag labels a cached query result. An empty ID in an invalidation matches every
// tag of that Type.
type Tag struct {
	Type string
	ID   string
}

// ListTag is the collection tag for typ.
func ListTag(typ string) Tag {
	return Tag{Type: typ, ID: ListID}
}

// ItemTag is the tag for a single record.
func ItemTag(typ, id string) Tag {
	return Tag{Type: typ, ID: id}
}

// TypeTag matches every tag of typ.
func TypeTag(typ string) Tag {
	return Tag{Type: typ}
}

func (t Tag) String() string {
	if t.ID == "" {
		return t.Type
	}
	return t.Type + ":" + t.ID
}

// Options configures a Cache.
type Options struct {
	TTL             time.Duration
	CleanupInterval time.Duration
}

// Cache holds query results keyed by query key and indexed by tag.
type Cache struct {
	entries *gocache.Cache
	group   singleflight.Group

	mu          sync.Mutex
	byTag       map[Tag]map[string]struct{}
	keyTags     map[string][]Tag
	generations map[string]uint64
	subscribers map[string]map[int]chan struct{}
	nextSub     int

	log *zap.Logger
}

// New constructs a Cache. A zero TTL keeps entries until they are invalidated.
func New(opts Options) *Cache {
	ttl := opts.TTL
	if ttl <= 0 {
		ttl = gocache.NoExpiration
	}
	cleanup := opts.CleanupInterval
	if cleanup <= 0 {
		cleanup = 10 * time.Minute
	}
	return &Cache{
		entries:     gocache.New(ttl, cleanup),
		byTag:       make(map[Tag]map[string]struct{}),
		keyTags:     make(map[string][]Tag),
		generations: make(map[string]uint64),
		subscribers: make(map[string]map[int]chan struct{}),
		log:         logger.WithModule("querycache"),
	}
}

// Key builds a stable query key from an endpoint name and its arguments.
func Key(endpoint string, args ...any) string {
	var b strings.Builder
	b.WriteString(endpoint)
	for _, arg := range args {
		b.WriteByte('|')
		switch v := arg.(type) {
		case string:
			b.WriteString(v)
		case interface{ Encode() string }:
			b.WriteString(v.Encode())
		default:
			raw, err := json.Marshal(v)
			if err != nil {
				b.WriteString("?")
				continue
			}
			b.Write(raw)
		}
	}
	return b.String()
}

// Fetch returns the cached value for key or runs fetch, storing its result under the
// provided tags. Concurrent fetches of the same key share one call. A result whose
// key was invalidated while the call was running is returned but not stored.
func Fetch[T any](ctx context.Context, c *Cache, key string, provides []Tag, fetch func(context.Context) (T, error)) (T, error) {
	var zero T
	if v, ok := c.entries.Get(key); ok {
		if typed, ok := v.(T); ok {
			metrics.QueryCache.WithLabelValues("hit").Inc()
			return typed, nil
		}
	}

	gen := c.begin(key, provides)
	flightKey := key + "#" + strconv.FormatUint(gen, 10)
	ch := c.group.DoChan(flightKey, func() (interface{}, error) {
		metrics.QueryCache.WithLabelValues("miss").Inc()
		v, err := fetch(context.WithoutCancel(ctx))
		if err != nil {
			return nil, err
		}
		c.store(key, gen, v)
		return v, nil
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return zero, res.Err
		}
		if res.Shared {
			metrics.QueryCache.WithLabelValues("shared").Inc()
		}
		typed, _ := res.Val.(T)
		return typed, nil
	case <-ctx.Done():
		return zero, ctx.Err()
	}
}

// Cached reports whether key currently holds a value.
func (c *Cache) Cached(key string) bool {
	_, ok := c.entries.Get(key)
	return ok
}

// Invalidate drops every entry providing one of tags and notifies its subscribers.
// It returns the number of query keys affected.
func (c *Cache) Invalidate(tags ...Tag) int {
	c.mu.Lock()
	affected := make(map[string]struct{})
	for _, tag := range tags {
		for _, key := range c.matchLocked(tag) {
			affected[key] = struct{}{}
		}
		metrics.CacheInvalidations.WithLabelValues(tag.Type).Inc()
	}

	var notify []chan struct{}
	for key := range affected {
		c.entries.Delete(key)
		c.generations[key]++
		c.unindexLocked(key)
		for _, ch := range c.subscribers[key] {
			notify = append(notify, ch)
		}
	}
	c.mu.Unlock()

	for _, ch := range notify {
		select {
		case ch <- struct{}{}:
		default:
		}
	}

	if len(affected) > 0 {
		c.log.Debug("invalidated queries", zap.Int("count", len(affected)), zap.Stringers("tags", tags))
	}
	return len(affected)
}

// Subscribe returns a channel that receives a signal whenever key is invalidated.
// Signals coalesce; the channel never blocks the invalidating caller.
func (c *Cache) Subscribe(key string) (<-chan struct{}, func()) {
	ch := make(chan struct{}, 1)

	c.mu.Lock()
	id := c.nextSub
	c.nextSub++
	if c.subscribers[key] == nil {
		c.subscribers[key] = make(map[int]chan struct{})
	}
	c.subscribers[key][id] = ch
	c.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			c.mu.Lock()
			delete(c.subscribers[key], id)
			if len(c.subscribers[key]) == 0 {
				delete(c.subscribers, key)
			}
			c.mu.Unlock()
		})
	}
}

// Reset drops every entry, for example when the session ends.
func (c *Cache) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries.Flush()
	for key := range c.keyTags {
		c.generations[key]++
	}
	c.byTag = make(map[Tag]map[string]struct{})
	c.keyTags = make(map[string][]Tag)
}

// Len returns the number of cached entries.
func (c *Cache) Len() int {
	return c.entries.ItemCount()
}

func (c *Cache) begin(key string, provides []Tag) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.unindexLocked(key)
	tags := append([]Tag(nil), provides...)
	c.keyTags[key] = tags
	for _, tag := range tags {
		if c.byTag[tag] == nil {
			c.byTag[tag] = make(map[string]struct{})
		}
		c.byTag[tag][key] = struct{}{}
	}
	return c.generations[key]
}

func (c *Cache) store(key string, gen uint64, v interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.generations[key] != gen {
		c.log.Debug("discarding result invalidated in flight", zap.String("key", key))
		return
	}
	c.entries.SetDefault(key, v)
}

func (c *Cache) matchLocked(tag Tag) []string {
	var keys []string
	if tag.ID != "" {
		for key := range c.byTag[tag] {
			keys = append(keys, key)
		}
		return keys
	}
	for candidate, set := range c.byTag {
		if candidate.Type != tag.Type {
			continue
		}
		for key := range set {
			keys = append(keys, key)
		}
	}
	return keys
}

func (c *Cache) unindexLocked(key string) {
	for _, tag := range c.keyTags[key] {
		if set := c.byTag[tag]; set != nil {
			delete(set, key)
			if len(set) == 0 {
				delete(c.byTag, tag)
			}
		}
	}
	delete(c.keyTags, key)
}
