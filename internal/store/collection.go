package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"sync"

	"github.com/erazemk/inventorypro/internal/kv"
	"github.com/erazemk/inventorypro/internal/model"
)

// collection is an ordered list of records persisted as one JSON array under
// a single key. Ids come from a counter stored under "<key>:seq" so they are
// never reused after a delete.
type collection[T any] struct {
	kv     kv.Store
	key    string
	prefix string
	idOf   func(*T) string

	mu    sync.Mutex
	items []T
	seq   int
}

// loadCollection reads key from kv. When the key is absent the seed records
// are persisted and used instead. Malformed JSON is an error.
func loadCollection[T any](ctx context.Context, store kv.Store, key, prefix string, idOf func(*T) string, seed func() []T) (*collection[T], error) {
	c := &collection[T]{kv: store, key: key, prefix: prefix, idOf: idOf}

	raw, err := store.Get(ctx, key)
	switch {
	case errors.Is(err, kv.ErrNotFound):
		c.items = seed()
		if err := c.save(ctx, c.items); err != nil {
			return nil, err
		}
	case err != nil:
		return nil, fmt.Errorf("loading %s: %w", key, err)
	default:
		if err := json.Unmarshal(raw, &c.items); err != nil {
			return nil, fmt.Errorf("decoding %s: %w", key, err)
		}
	}

	// The stored counter wins unless the list already holds a higher id.
	for i := range c.items {
		if n, ok := model.ParseSequence(prefix, idOf(&c.items[i])); ok && n > c.seq {
			c.seq = n
		}
	}
	raw, err = store.Get(ctx, c.seqKey())
	switch {
	case errors.Is(err, kv.ErrNotFound):
	case err != nil:
		return nil, fmt.Errorf("loading %s: %w", c.seqKey(), err)
	default:
		n, err := strconv.Atoi(string(raw))
		if err != nil {
			return nil, fmt.Errorf("decoding %s: %w", c.seqKey(), err)
		}
		c.seq = max(c.seq, n)
	}

	return c, nil
}

func (c *collection[T]) seqKey() string {
	return c.key + ":seq"
}

func (c *collection[T]) save(ctx context.Context, items []T) error {
	if items == nil {
		items = []T{}
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", c.key, err)
	}
	if err := c.kv.Set(ctx, c.key, raw); err != nil {
		return fmt.Errorf("saving %s: %w", c.key, err)
	}
	return nil
}

func (c *collection[T]) index(id string) int {
	return slices.IndexFunc(c.items, func(item T) bool { return c.idOf(&item) == id })
}

// list returns a copy of all records in insertion order.
func (c *collection[T]) list() []T {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.items)
}

// get returns a copy of the record with the given id, or nil.
func (c *collection[T]) get(id string) *T {
	c.mu.Lock()
	defer c.mu.Unlock()
	i := c.index(id)
	if i < 0 {
		return nil
	}
	item := c.items[i]
	return &item
}

// add assigns the next id and appends the record built by build. build sees
// the current records and may reject the new one by returning an error.
func (c *collection[T]) add(ctx context.Context, build func(id string, existing []T) (T, error)) (*T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	next := c.seq + 1
	item, err := build(model.FormatID(c.prefix, next), c.items)
	if err != nil {
		return nil, err
	}

	// The counter is written first so a failed list write never hands out
	// the same id twice.
	if err := c.kv.Set(ctx, c.seqKey(), []byte(strconv.Itoa(next))); err != nil {
		return nil, fmt.Errorf("saving %s: %w", c.seqKey(), err)
	}
	c.seq = next

	items := append(slices.Clone(c.items), item)
	if err := c.save(ctx, items); err != nil {
		return nil, err
	}
	c.items = items
	return &item, nil
}

// update applies mutate to a copy of the record with the given id and stores
// it. A missing id returns nil and no error.
func (c *collection[T]) update(ctx context.Context, id string, mutate func(item *T, existing []T) error) (*T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	i := c.index(id)
	if i < 0 {
		return nil, nil
	}
	item := c.items[i]
	if err := mutate(&item, c.items); err != nil {
		return nil, err
	}

	items := slices.Clone(c.items)
	items[i] = item
	if err := c.save(ctx, items); err != nil {
		return nil, err
	}
	c.items = items
	return &item, nil
}

// remove deletes the record with the given id and reports whether it existed.
func (c *collection[T]) remove(ctx context.Context, id string) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	i := c.index(id)
	if i < 0 {
		return false, nil
	}
	items := slices.Delete(slices.Clone(c.items), i, i+1)
	if err := c.save(ctx, items); err != nil {
		return false, err
	}
	c.items = items
	return true, nil
}
