package endpoint

import (
	"runtime"
	"sync"
)

// Descriptor is one catalogued handler.
type Descriptor struct {
	ID      string // CanonicalName(File)
	File    string
	Handler Handler
}

// Catalog is the ordered list of handler implementations compiled into the
// binary.  Order of Add is the discovery order.
type Catalog struct {
	mu    sync.RWMutex
	items []Descriptor
}

// NewCatalog returns an empty catalog.
func NewCatalog() *Catalog { return &Catalog{} }

// Add appends h under the identifier derived from file.
func (c *Catalog) Add(file string, h Handler) {
	if h == nil {
		panic("endpoint: nil handler for " + file)
	}
	c.mu.Lock()
	c.items = append(c.items, Descriptor{ID: CanonicalName(file), File: file, Handler: h})
	c.mu.Unlock()
}

// All returns a copy of the catalog in registration order.
func (c *Catalog) All() []Descriptor {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]Descriptor, len(c.items))
	copy(out, c.items)
	return out
}

// Len reports the number of catalogued handlers.
func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

var defaultCatalog = NewCatalog()

// Default returns the process catalog filled by Register.
func Default() *Catalog { return defaultCatalog }

// Register is called from endpoint init() functions.  The identifier is
// derived from the caller's source file name.
func Register(h Handler) {
	_, file, _, ok := runtime.Caller(1)
	if !ok {
		panic("endpoint.Register: caller file unavailable")
	}
	defaultCatalog.Add(file, h)
}
