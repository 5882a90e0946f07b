// Package global holds the process-wide shared registry and the one-call
// register/unregister facade over it.
package global

import (
	"context"
	"sync/atomic"

	"github.com/pluglink/shortcode/shortcode"
)

func defaultRegistry() *atomic.Value {
	v := &atomic.Value{}
	v.Store(shortcode.New())
	return v
}

var globalRegistry = defaultRegistry()

// SetRegistry sets the global shortcode registry. Plugins that need a
// non-default host, flag store, or debug setting install their own
// registry here during initialization.
func SetRegistry(r *shortcode.Registry) {
	globalRegistry.Store(r)
}

// GetRegistry returns the current global shortcode registry.
func GetRegistry() *shortcode.Registry {
	return globalRegistry.Load().(*shortcode.Registry)
}

// Register declares the given definitions on the shared registry under
// prefix and installs them. Returns the install result: false only when no
// valid definition was available to install.
func Register(ctx context.Context, defs map[string]shortcode.Definition, prefix string) bool {
	r := GetRegistry()
	r.SetPrefix(prefix)
	r.AddBatch(defs)
	return r.Install(ctx)
}

// Unregister loads the given definitions into the shared registry under
// prefix and uninstalls them. The definitions must carry the same tags used
// at registration time: tags absent from defs are not removed, and tags
// present only in defs are registered and immediately removed.
func Unregister(ctx context.Context, defs map[string]shortcode.Definition, prefix string) bool {
	r := GetRegistry()
	r.SetPrefix(prefix)
	r.AddBatch(defs)
	return r.Uninstall(ctx)
}
