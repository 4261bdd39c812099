package endpoint

import "github.com/yanizio/doofinder-wp/internal/rest"

// Routes is the set of route paths recorded by one discovery pass.
//
// It is written only while Engine.Initialize runs, before the listener
// starts, and is read-only afterwards, so request-time reads take no lock.
// A nil *Routes behaves as an empty registry.
type Routes struct {
	paths []string
	ids   []string
	set   map[string]struct{}
}

func newRoutes() *Routes {
	return &Routes{set: make(map[string]struct{})}
}

func (r *Routes) add(path, id string) {
	r.paths = append(r.paths, path)
	r.ids = append(r.ids, id)
	r.set[path] = struct{}{}
}

// Paths returns the recorded paths in discovery order.
func (r *Routes) Paths() []string {
	if r == nil {
		return nil
	}
	out := make([]string, len(r.paths))
	copy(out, r.paths)
	return out
}

// IDs returns the handler identifiers parallel to Paths.
func (r *Routes) IDs() []string {
	if r == nil {
		return nil
	}
	out := make([]string, len(r.ids))
	copy(out, r.ids)
	return out
}

// Len reports the number of recorded paths.
func (r *Routes) Len() int {
	if r == nil {
		return 0
	}
	return len(r.paths)
}

// Contains reports an exact, case-sensitive match.
func (r *Routes) Contains(path string) bool {
	if r == nil {
		return false
	}
	_, ok := r.set[path]
	return ok
}

// Owns reports whether rt was claimed by this registry at registration.
func (r *Routes) Owns(rt *rest.Route) bool {
	if r == nil {
		return false
	}
	return rt.Claimed(r)
}
