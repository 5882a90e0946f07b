package shortcode

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/pluglink/shortcode/host"
)

// Registry holds declared shortcode definitions keyed by unprefixed tag and
// installs them into the host platform's dispatch table.
//
// Mutation (Add, AddBatch, SetPrefix) is expected during single-threaded
// plugin initialization; render-time dispatch only reads, so concurrent
// reads after initialization are safe. The RWMutex keeps misuse harmless.
type Registry struct {
	mu          sync.RWMutex
	id          string // instance identity for log correlation
	prefix      string
	definitions map[string]Definition
	host        host.Host
	flags       host.FlagStore
	flagKey     string
	debug       bool
}

// New creates a Registry. Without options it uses an in-memory host and
// flag store, no prefix, and the ambient debug flag.
func New(opts ...Option) *Registry {
	options := newOptions(opts...)
	return &Registry{
		id:          uuid.NewString(),
		prefix:      options.Prefix,
		definitions: make(map[string]Definition),
		host:        options.Host,
		flags:       options.Flags,
		flagKey:     options.FlagKey,
		debug:       options.Debug,
	}
}

// SetPrefix sets the tag namespace. The prefix is applied only at
// install/uninstall time and never changes stored tag keys.
func (r *Registry) SetPrefix(prefix string) *Registry {
	r.mu.Lock()
	r.prefix = prefix
	r.mu.Unlock()
	return r
}

// add validates and stores one definition, overwriting any existing entry
// for the same tag. Defaults are normalized to an empty map when omitted.
func (r *Registry) add(tag string, def Definition) error {
	if !ValidTag(tag) {
		return ErrInvalidTag
	}
	if def.Callback == nil {
		return ErrInvalidCallback
	}
	if def.Defaults == nil {
		def.Defaults = make(Attributes)
	}

	r.mu.Lock()
	r.definitions[tag] = def
	r.mu.Unlock()
	return nil
}

// Add declares a shortcode. A tag that fails validation or a definition
// without a callback is skipped without mutating the registry; the skip is
// recorded in the debug log only, so one bad entry never blocks the rest of
// plugin initialization. Returns the registry for chaining.
func (r *Registry) Add(tag string, def Definition) *Registry {
	if err := r.add(tag, def); err != nil {
		if r.debug {
			log.Debug().Str("registry", r.id).Str("tag", tag).Err(err).Msg("shortcode definition skipped")
		}
		return r
	}
	if r.debug {
		log.Debug().Str("registry", r.id).Str("tag", tag).Msg("shortcode definition added")
	}
	return r
}

// AddBatch declares every entry of defs via Add semantics and reports the
// outcome per tag: a nil value means the definition was stored, otherwise
// ErrInvalidTag or ErrInvalidCallback names the skip reason. There is no
// rollback; partial success is expected.
func (r *Registry) AddBatch(defs map[string]Definition) map[string]error {
	results := make(map[string]error, len(defs))
	for tag, def := range defs {
		err := r.add(tag, def)
		results[tag] = err
		if r.debug {
			if err != nil {
				log.Debug().Str("registry", r.id).Str("tag", tag).Err(err).Msg("shortcode definition skipped")
			} else {
				log.Debug().Str("registry", r.id).Str("tag", tag).Msg("shortcode definition added")
			}
		}
	}
	return results
}

// Install binds a dispatch wrapper for every stored definition under its
// prefixed tag and persists the installed marker. Returns false with no
// side effects when the registry holds no definitions, true otherwise.
//
// The wrapper re-resolves its definition from the registry on every
// invocation, so re-adding a tag between install and render is honored.
func (r *Registry) Install(ctx context.Context) bool {
	r.mu.RLock()
	prefix := r.prefix
	tags := make([]string, 0, len(r.definitions))
	for tag := range r.definitions {
		tags = append(tags, tag)
	}
	r.mu.RUnlock()

	if len(tags) == 0 {
		log.Warn().Str("registry", r.id).Err(ErrEmptyRegistry).Msg("shortcode install skipped")
		return false
	}

	for _, tag := range tags {
		r.host.RegisterDispatch(PrefixTag(prefix, tag), r.dispatchWrapper(tag))
		if r.debug {
			log.Debug().Str("registry", r.id).Str("tag", PrefixTag(prefix, tag)).Msg("shortcode dispatch registered")
		}
	}

	if err := r.flags.Set(ctx, r.flagKey, true); err != nil {
		log.Error().Err(err).Str("registry", r.id).Str("key", r.flagKey).Msg("failed to persist installed flag")
	}
	return true
}

// dispatchWrapper adapts a stored definition to the host's DispatchFunc.
// It captures the tag only; the definition is looked up at render time.
func (r *Registry) dispatchWrapper(tag string) host.DispatchFunc {
	return func(ctx context.Context, raw Attributes, content string) string {
		r.mu.RLock()
		def, ok := r.definitions[tag]
		r.mu.RUnlock()

		if !ok {
			log.Warn().Str("registry", r.id).Str("tag", tag).Msg("dispatch invoked for unknown shortcode")
			return ""
		}

		merged := r.host.MergeAttributes(def.Defaults, raw, tag)
		return def.Callback(ctx, merged, content, tag)
	}
}

// Uninstall removes the dispatch binding of every stored tag (prefixed) and
// clears the installed marker. Stored definitions are untouched, so a later
// Install can re-register them. Always returns true.
func (r *Registry) Uninstall(ctx context.Context) bool {
	r.mu.RLock()
	prefix := r.prefix
	tags := make([]string, 0, len(r.definitions))
	for tag := range r.definitions {
		tags = append(tags, tag)
	}
	r.mu.RUnlock()

	for _, tag := range tags {
		r.host.RemoveDispatch(PrefixTag(prefix, tag))
		if r.debug {
			log.Debug().Str("registry", r.id).Str("tag", PrefixTag(prefix, tag)).Msg("shortcode dispatch removed")
		}
	}

	if err := r.flags.Clear(ctx, r.flagKey); err != nil {
		log.Error().Err(err).Str("registry", r.id).Str("key", r.flagKey).Msg("failed to clear installed flag")
	}
	return true
}

// Installed reads the durable installed marker.
func (r *Registry) Installed(ctx context.Context) bool {
	installed, err := r.flags.Get(ctx, r.flagKey)
	if err != nil {
		log.Error().Err(err).Str("registry", r.id).Str("key", r.flagKey).Msg("failed to read installed flag")
		return false
	}
	return installed
}

// ListDefinitions returns a copy of the stored definitions keyed by
// unprefixed tag.
func (r *Registry) ListDefinitions() map[string]Definition {
	r.mu.RLock()
	defer r.mu.RUnlock()

	defs := make(map[string]Definition, len(r.definitions))
	for tag, def := range r.definitions {
		defs[tag] = def
	}
	return defs
}
