// Package host defines the surface the shortcode registry expects from the
// content platform it runs inside: a tag dispatch table, the platform's
// attribute-merge semantics, and durable flag storage.
package host

import "context"

// Attributes is the string key/value set a content author supplies on a
// shortcode at use-site, and the merged set a callback receives.
type Attributes = map[string]string

// DispatchFunc is the function bound to a tag in the platform's dispatch
// table. The platform invokes it at render time with the raw use-site
// attributes and the optional enclosed content body.
type DispatchFunc func(ctx context.Context, raw Attributes, content string) string

// Host is the platform-side dispatch table.
type Host interface {
	// RegisterDispatch binds fn to tag, replacing any existing binding.
	RegisterDispatch(tag string, fn DispatchFunc)

	// RemoveDispatch unbinds a tag. Removing an unbound tag is a no-op.
	RemoveDispatch(tag string)

	// MergeAttributes merges raw use-site attributes over declared defaults.
	// The result contains exactly the keys of defaults: a raw value wins
	// when its key is declared, raw keys with no declared default are
	// dropped. The tag is passed through for platform-side filtering hooks.
	MergeAttributes(defaults, raw Attributes, tag string) Attributes
}

// FlagStore is durable boolean key/value storage, external to process
// memory. The registry uses it for the installed marker.
type FlagStore interface {
	// Get reports the flag value. A key that was never set reads as false.
	Get(ctx context.Context, key string) (bool, error)

	// Set writes the flag value.
	Set(ctx context.Context, key string, value bool) error

	// Clear removes the key entirely.
	Clear(ctx context.Context, key string) error
}
