package host

import (
	"context"
	"errors"
	"sync"

	"github.com/rs/zerolog/log"
)

// ErrNoDispatch is returned by MemoryHost.Render for a tag with no binding.
var ErrNoDispatch = errors.New("host: no dispatch bound for tag")

// MemoryHost implements Host with an in-process dispatch table. It is the
// default backend and doubles as the render entry point in tests and in
// embedded setups where this process is the platform.
type MemoryHost struct {
	mu       sync.RWMutex
	dispatch map[string]DispatchFunc
}

// NewMemoryHost creates an empty in-memory host.
func NewMemoryHost() *MemoryHost {
	return &MemoryHost{
		dispatch: make(map[string]DispatchFunc),
	}
}

// RegisterDispatch implements Host. A nil fn or empty tag is ignored.
func (h *MemoryHost) RegisterDispatch(tag string, fn DispatchFunc) {
	if tag == "" || fn == nil {
		log.Warn().Str("tag", tag).Msg("ignoring dispatch registration with empty tag or nil func")
		return
	}

	h.mu.Lock()
	h.dispatch[tag] = fn
	h.mu.Unlock()
}

// RemoveDispatch implements Host.
func (h *MemoryHost) RemoveDispatch(tag string) {
	h.mu.Lock()
	delete(h.dispatch, tag)
	h.mu.Unlock()
}

// MergeAttributes implements Host. The declared defaults define the key set
// of the result; raw values override declared ones, undeclared raw keys are
// dropped.
func (h *MemoryHost) MergeAttributes(defaults, raw Attributes, tag string) Attributes {
	merged := make(Attributes, len(defaults))
	for key, def := range defaults {
		if value, ok := raw[key]; ok {
			merged[key] = value
		} else {
			merged[key] = def
		}
	}
	return merged
}

// Render invokes the dispatch bound to tag, as the platform would at
// content-render time. Returns ErrNoDispatch when the tag is unbound.
func (h *MemoryHost) Render(ctx context.Context, tag string, raw Attributes, content string) (string, error) {
	h.mu.RLock()
	fn, ok := h.dispatch[tag]
	h.mu.RUnlock()

	if !ok {
		return "", ErrNoDispatch
	}
	return fn(ctx, raw, content), nil
}

// Bound reports whether a dispatch is currently bound for tag.
func (h *MemoryHost) Bound(tag string) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	_, ok := h.dispatch[tag]
	return ok
}

// Tags returns the currently bound tags, in no particular order.
func (h *MemoryHost) Tags() []string {
	h.mu.RLock()
	defer h.mu.RUnlock()

	tags := make([]string, 0, len(h.dispatch))
	for tag := range h.dispatch {
		tags = append(tags, tag)
	}
	return tags
}

// memoryFlagStore implements FlagStore with an in-process map. Flags do not
// survive the process; multi-process deployments should use the redis store.
type memoryFlagStore struct {
	mu    sync.RWMutex
	flags map[string]bool
}

// NewMemoryFlagStore creates a new in-memory flag store.
func NewMemoryFlagStore() FlagStore {
	return &memoryFlagStore{
		flags: make(map[string]bool),
	}
}

// Get implements FlagStore.
func (s *memoryFlagStore) Get(ctx context.Context, key string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.flags[key], nil
}

// Set implements FlagStore.
func (s *memoryFlagStore) Set(ctx context.Context, key string, value bool) error {
	s.mu.Lock()
	s.flags[key] = value
	s.mu.Unlock()
	return nil
}

// Clear implements FlagStore.
func (s *memoryFlagStore) Clear(ctx context.Context, key string) error {
	s.mu.Lock()
	delete(s.flags, key)
	s.mu.Unlock()
	return nil
}
