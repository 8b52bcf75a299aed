// Package cache provides a small bounded LRU map used to memoize analysis
// responses keyed by their SQL text.
package cache

import (
	"container/list"
	"sync"
)

type entry struct {
	key   string
	value any
}

// LRU is a bounded map with least-recently-used eviction. Safe for
// concurrent use.
type LRU struct {
	mu       sync.Mutex
	capacity int
	order    *list.List
	items    map[string]*list.Element
}

func NewLRU(capacity int) *LRU {
	if capacity < 1 {
		capacity = 1
	}
	return &LRU{
		capacity: capacity,
		order:    list.New(),
		items:    make(map[string]*list.Element),
	}
}

// Get returns the cached value for key and marks it most recently used.
func (l *LRU) Get(key string) (any, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	elem, ok := l.items[key]
	if !ok {
		return nil, false
	}
	l.order.MoveToFront(elem)
	return elem.Value.(*entry).value, true
}

// Put stores value under key, evicting the least recently used entry once
// the capacity is reached.
func (l *LRU) Put(key string, value any) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if elem, ok := l.items[key]; ok {
		elem.Value.(*entry).value = value
		l.order.MoveToFront(elem)
		return
	}

	if l.order.Len() >= l.capacity {
		if back := l.order.Back(); back != nil {
			l.order.Remove(back)
			delete(l.items, back.Value.(*entry).key)
		}
	}
	l.items[key] = l.order.PushFront(&entry{key: key, value: value})
}

func (l *LRU) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.order.Len()
}
