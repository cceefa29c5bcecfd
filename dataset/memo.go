package dataset

import "sync"

// Cell memoizes a dataset load. The first Get runs the loader; later calls return the
// cached dataset until Invalidate is called. Failed loads are not cached.
type Cell struct {
	mu     sync.Mutex
	load   func() (*Dataset, error)
	value  *Dataset
	loaded bool
}

func NewCell(load func() (*Dataset, error)) *Cell {
	return &Cell{load: load}
}

// FileCell memoizes Load(path, opts...).
func FileCell(path string, opts ...Option) *Cell {
	return NewCell(func() (*Dataset, error) {
		return Load(path, opts...)
	})
}

func (c *Cell) Get() (*Dataset, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.loaded {
		return c.value, nil
	}
	ds, err := c.load()
	if err != nil {
		return nil, err
	}
	c.value = ds
	c.loaded = true
	return ds, nil
}

// Invalidate drops the cached dataset; the next Get reloads it.
func (c *Cell) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.value = nil
	c.loaded = false
}

func (c *Cell) Loaded() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loaded
}
