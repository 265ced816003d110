package skin

import (
	"fmt"
	"sort"
	"sync"

	"github.com/openpad/padview/internal/diag"
)

// Loader fetches and decodes one skin bundle. Implementations may block;
// the registry always calls Load on its own goroutine.
type Loader interface {
	Load(dirname string) (*Skin, error)
}

// Registry caches skins by directory name. A load is issued at most once per
// name while it is in flight or resolved; a failed load discards its entry so
// the next Ensure retries cleanly.
type Registry struct {
	mu      sync.RWMutex
	loader  Loader
	sink    diag.Sink
	entries map[string]*entry
}

type entry struct {
	skin   *Skin
	loaded bool
}

func NewRegistry(loader Loader, sink diag.Sink) *Registry {
	if sink == nil {
		sink = diag.NoopSink{}
	}
	return &Registry{loader: loader, sink: sink, entries: make(map[string]*entry)}
}

// Ensure validates dirname and starts an asynchronous load unless one is
// already in flight or finished. The only error is an invalid name; load
// failures surface through the diagnostics sink and a later retry.
func (r *Registry) Ensure(dirname string) error {
	if !IsDirnameOK(dirname) {
		return fmt.Errorf("invalid skin directory name %q", dirname)
	}
	r.mu.Lock()
	if _, ok := r.entries[dirname]; ok {
		r.mu.Unlock()
		return nil
	}
	r.entries[dirname] = &entry{}
	r.mu.Unlock()

	go r.load(dirname)
	return nil
}

func (r *Registry) load(dirname string) {
	s, err := r.loader.Load(dirname)
	r.mu.Lock()
	defer r.mu.Unlock()
	if err != nil {
		delete(r.entries, dirname)
		r.sink.Errorf("skin", "load %q failed: %v", dirname, err)
		return
	}
	r.entries[dirname] = &entry{skin: s, loaded: true}
	r.sink.Logf("skin", "loaded %q (%d sprites, %d layers)", dirname, len(s.Sprites), len(s.Layers))
}

// Lookup returns the skin for dirname once its load has completed.
func (r *Registry) Lookup(dirname string) (*Skin, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.entries[dirname]
	if !ok || !e.loaded {
		return nil, false
	}
	return e.skin, true
}

// Loaded lists the directory names of fully loaded skins, sorted.
func (r *Registry) Loaded() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var names []string
	for name, e := range r.entries {
		if e.loaded {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}
