// Package shortcode lets a plugin declare a set of content shortcodes as
// plain data and have them registered with the host platform's dispatch
// table in one call, instead of registering each tag by hand.
package shortcode

import (
	"context"
	"errors"
	"regexp"

	"github.com/pluglink/shortcode/host"
)

// Attributes is the merged attribute set a callback receives. See
// host.Attributes.
type Attributes = host.Attributes

// Callback is the unit of logic bound to a tag. It receives the use-site
// attributes merged over the definition's defaults, the optional enclosed
// content body, and the unprefixed tag it was invoked as. Its return value
// is the tag's expansion output.
type Callback func(ctx context.Context, attrs Attributes, content, tag string) string

// Definition declares a single shortcode.
type Definition struct {
	// Callback is invoked at render time. Required.
	Callback Callback

	// Defaults maps attribute names to their default values. Keys absent
	// here are dropped from use-site attributes before the callback runs.
	Defaults Attributes

	// Description is informational only and never consulted at runtime.
	Description string
}

// Predefined errors for rejected definitions and empty installs.
var (
	ErrInvalidTag      = errors.New("shortcode: tag must match ^[a-z0-9_-]+$")
	ErrInvalidCallback = errors.New("shortcode: definition has no callback")
	ErrEmptyRegistry   = errors.New("shortcode: no definitions to install")
)

var tagPattern = regexp.MustCompile(`^[a-z0-9_-]+$`)

// ValidTag reports whether tag is acceptable as a shortcode identifier:
// lowercase letters, digits, underscore and hyphen only, non-empty.
func ValidTag(tag string) bool {
	return tagPattern.MatchString(tag)
}

// PrefixTag namespaces tag with prefix. Identity when prefix is empty.
func PrefixTag(prefix, tag string) string {
	if prefix == "" {
		return tag
	}
	return prefix + "_" + tag
}
