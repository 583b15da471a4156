// internal/cache/lru.go
//
// Tiny LRU used by the view engine to hold parsed *template.Template
// sets, keyed by page name.  The funnel only has a handful of pages, so
// the capacity bound mostly guards against unbounded growth if template
// keys ever become request-derived.  No external deps.
package cache

import "container/list"

// LRU is a least-recently-used cache with string keys.
type LRU struct {
	cap  int
	ll   *list.List
	dict map[string]*list.Element
}

type pair struct {
	key string
	val any
}

// New returns an LRU with the given capacity.  Panics on cap < 1.
func New(capacity int) *LRU {
	if capacity < 1 {
		panic("cache: capacity must be ≥1")
	}
	return &LRU{
		cap:  capacity,
		ll:   list.New(),
		dict: make(map[string]*list.Element, capacity),
	}
}

// Get retrieves a value and marks it most recently used.
func (c *LRU) Get(key string) (val any, ok bool) {
	if ele, hit := c.dict[key]; hit {
		c.ll.MoveToFront(ele)
		return ele.Value.(pair).val, true
	}
	return nil, false
}

// Add inserts or updates a value, evicting the least recently used entry
// when the cache is full.
func (c *LRU) Add(key string, val any) {
	if ele, hit := c.dict[key]; hit {
		ele.Value = pair{key, val}
		c.ll.MoveToFront(ele)
		return
	}
	ele := c.ll.PushFront(pair{key, val})
	c.dict[key] = ele
	if c.ll.Len() > c.cap {
		last := c.ll.Back()
		c.ll.Remove(last)
		delete(c.dict, last.Value.(pair).key)
	}
}

// Len reports current size.
func (c *LRU) Len() int { return c.ll.Len() }
