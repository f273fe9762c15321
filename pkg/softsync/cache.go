package softsync

import (
	"context"

	"github.com/arthur-debert/softsync/pkg/paths"
	"github.com/arthur-debert/softsync/pkg/root"
	"github.com/arthur-debert/softsync/pkg/storage"
)

// Cache reuses contexts opened during one operation and remembers which
// source each destination file was linked from. It is not safe for
// concurrent use.
type Cache struct {
	contexts map[string]*Context
	links    map[string]string
}

func NewCache() *Cache {
	return &Cache{
		contexts: make(map[string]*Context),
		links:    make(map[string]string),
	}
}

func cacheKey(r *root.Root, relPath string) string {
	return r.String() + "\x00" + relPath
}

// Put records c, replacing any context for the same directory.
func (cc *Cache) Put(c *Context) {
	cc.contexts[cacheKey(c.root, c.path)] = c
}

// Get returns the cached context for relPath under r, opening and
// caching it on first use.
func (cc *Cache) Get(ctx context.Context, r *root.Root, relPath string, mustExist bool, opts Options) (*Context, error) {
	rel, err := paths.ResolvePath(relPath)
	if err != nil {
		return nil, err
	}
	if c, ok := cc.contexts[cacheKey(r, rel)]; ok {
		return c, nil
	}
	c, err := Open(ctx, r, rel, mustExist, opts)
	if err != nil {
		return nil, err
	}
	cc.Put(c)
	return c, nil
}

// Len returns the number of cached contexts.
func (cc *Cache) Len() int {
	return len(cc.contexts)
}

func (cc *Cache) link(dst, src storage.Location) {
	cc.links[dst.String()] = src.String()
}

// linked returns the source dst was materialized from, if any.
func (cc *Cache) linked(dst storage.Location) (string, bool) {
	src, ok := cc.links[dst.String()]
	return src, ok
}
