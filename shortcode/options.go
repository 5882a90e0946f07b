package shortcode

import (
	"os"
	"strconv"

	"github.com/pluglink/shortcode/host"
)

// DefaultFlagKey is the flag-store key the installed marker is written
// under when WithFlagKey is not used.
const DefaultFlagKey = "shortcodes_installed"

// DebugEnvVar is the ambient debug switch read once at registry
// construction. Any value strconv.ParseBool accepts enables it.
const DebugEnvVar = "SHORTCODE_DEBUG"

// Options holds registry configuration.
type Options struct {
	Host    host.Host      // platform dispatch table
	Flags   host.FlagStore // durable storage for the installed marker
	FlagKey string         // key the installed marker is stored under
	Prefix  string         // tag namespace, applied at install/uninstall time
	Debug   bool           // emit per-tag debug log entries
}

// Option configures a Registry.
type Option func(*Options)

func newOptions(opts ...Option) *Options {
	options := &Options{
		Host:    host.NewMemoryHost(),
		Flags:   host.NewMemoryFlagStore(),
		FlagKey: DefaultFlagKey,
		Debug:   debugFromEnv(),
	}
	for _, opt := range opts {
		opt(options)
	}
	return options
}

// debugFromEnv reads the ambient debug flag. Unset or unparsable means off.
func debugFromEnv() bool {
	debug, err := strconv.ParseBool(os.Getenv(DebugEnvVar))
	return err == nil && debug
}

// WithHost sets the platform dispatch table. Nil is ignored.
func WithHost(h host.Host) Option {
	return func(o *Options) {
		if h != nil {
			o.Host = h
		}
	}
}

// WithFlagStore sets the durable flag store. Nil is ignored.
func WithFlagStore(s host.FlagStore) Option {
	return func(o *Options) {
		if s != nil {
			o.Flags = s
		}
	}
}

// WithFlagKey sets the key the installed marker is stored under.
// Empty is ignored.
func WithFlagKey(key string) Option {
	return func(o *Options) {
		if key != "" {
			o.FlagKey = key
		}
	}
}

// WithPrefix sets the tag namespace applied at install/uninstall time.
func WithPrefix(prefix string) Option {
	return func(o *Options) {
		o.Prefix = prefix
	}
}

// WithDebug overrides the ambient debug flag.
func WithDebug(debug bool) Option {
	return func(o *Options) {
		o.Debug = debug
	}
}
