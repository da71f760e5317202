package minter

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// RefreshFunc builds a fresh minter.  It runs the full challenge pipeline
// and is therefore expensive.
type RefreshFunc func(ctx context.Context) (*Minter, error)

// Cache stores live minters by key.  A key's entry moves through
// empty -> building -> live -> expired and back; only the transitions out
// of empty and expired run a refresh, and concurrent callers for the same
// key share a single in-flight refresh.
type Cache struct {
	mu      sync.Mutex
	minters map[Key]*Minter
	group   singleflight.Group
	now     func() time.Time
}

func NewCache() *Cache {
	return &Cache{
		minters: make(map[Key]*Minter),
		now:     time.Now,
	}
}

// GetOrRefresh returns the live minter for the key, building one first if
// the entry is empty or expired.  A caller whose context expires abandons
// its wait; the shared refresh keeps running for the remaining waiters and
// its result is stored for later calls.
func (c *Cache) GetOrRefresh(ctx context.Context, key Key, refresh RefreshFunc) (*Minter, error) {
	if m := c.live(key); m != nil {
		return m, nil
	}

	ch := c.group.DoChan(string(key), func() (any, error) {
		// A refresh that completed while we queued may already have stored
		// a live minter.
		if m := c.live(key); m != nil {
			return m, nil
		}
		m, err := refresh(context.WithoutCancel(ctx))
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		c.minters[key] = m
		c.mu.Unlock()
		return m, nil
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*Minter), nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Evict drops the entry for the key so that the next call rebuilds it.
// Use it when minting fails against a live entry: the entry is poisoned
// and retrying against it would keep failing.
func (c *Cache) Evict(key Key) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.minters, key)
}

func (c *Cache) live(key Key) *Minter {
	c.mu.Lock()
	defer c.mu.Unlock()
	m := c.minters[key]
	if m == nil || m.Expired(c.now()) {
		return nil
	}
	return m
}
