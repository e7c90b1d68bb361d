// Package filecache keeps recently opened source files open so the counting
// pass and the emission pass over the same file share one handle. Handles are
// reference counted and closed when evicted and no longer in use.
package filecache

import (
	"container/list"
	"errors"
	"os"
	"sync"

	logging "github.com/ipfs/go-log/v2"
)

var log = logging.Logger("tail/filecache")

var ErrNotAcquired = errors.New("file not acquired")

type FileCache struct {
	capacity  int
	lock      sync.Mutex
	byPath    map[string]*list.Element
	lru       *list.List
	evicted   map[*os.File]*handle
	onEvicted func(path string, refs int)
}

type handle struct {
	path string
	file *os.File
	refs int
}

// New creates a FileCache holding at most capacity open files. A capacity of
// 0 means no limit. Files are opened read-only.
func New(capacity int) *FileCache {
	return &FileCache{
		capacity: capacity,
		byPath:   make(map[string]*list.Element),
		lru:      list.New(),
		evicted:  make(map[*os.File]*handle),
	}
}

// Acquire returns an open handle for path, opening it if it is not cached.
// Every successful Acquire must be paired with a Release. Callers sharing a
// handle share its read position, so they must seek before reading.
func (c *FileCache) Acquire(path string) (*os.File, error) {
	c.lock.Lock()
	defer c.lock.Unlock()

	if elem, ok := c.byPath[path]; ok {
		c.lru.MoveToFront(elem)
		h := elem.Value.(*handle)
		h.refs++
		return h.file, nil
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	c.byPath[path] = c.lru.PushFront(&handle{path: path, file: file, refs: 1})
	if c.capacity != 0 && c.lru.Len() > c.capacity {
		c.evict(c.lru.Back())
	}
	return file, nil
}

// Release gives back a handle returned by Acquire. A handle that was evicted
// while in use is closed when its last user releases it.
func (c *FileCache) Release(file *os.File) error {
	c.lock.Lock()
	defer c.lock.Unlock()

	if h, ok := c.evicted[file]; ok {
		h.refs--
		if h.refs > 0 {
			return nil
		}
		delete(c.evicted, file)
		return file.Close()
	}

	for _, elem := range c.byPath {
		h := elem.Value.(*handle)
		if h.file != file {
			continue
		}
		if h.refs == 0 {
			return ErrNotAcquired
		}
		h.refs--
		return nil
	}
	return ErrNotAcquired
}

// Evict removes path from the cache, closing its handle unless it is still
// acquired. Evicting a path that is not cached does nothing.
func (c *FileCache) Evict(path string) error {
	c.lock.Lock()
	defer c.lock.Unlock()

	if elem, ok := c.byPath[path]; ok {
		return c.evict(elem)
	}
	return nil
}

// Len returns the number of cached open files.
func (c *FileCache) Len() int {
	c.lock.Lock()
	defer c.lock.Unlock()
	return c.lru.Len()
}

// Purge evicts every cached file.
func (c *FileCache) Purge() error {
	c.lock.Lock()
	defer c.lock.Unlock()

	var firstErr error
	for c.lru.Len() != 0 {
		if err := c.evict(c.lru.Back()); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// SetOnEvicted registers a function called with the path and outstanding
// reference count of every evicted file.
func (c *FileCache) SetOnEvicted(f func(path string, refs int)) {
	c.lock.Lock()
	defer c.lock.Unlock()
	c.onEvicted = f
}

func (c *FileCache) evict(elem *list.Element) error {
	h := c.lru.Remove(elem).(*handle)
	delete(c.byPath, h.path)
	if c.onEvicted != nil {
		c.onEvicted(h.path, h.refs)
	}
	if h.refs == 0 {
		log.Debugw("Closed cached file", "path", h.path)
		return h.file.Close()
	}
	// Still in use, close on last release.
	log.Debugw("Evicted file still in use", "path", h.path, "refs", h.refs)
	c.evicted[h.file] = h
	return nil
}
