package shortcode

import (
	"fmt"
	"strconv"
)

// Attribute accessors for callbacks. Use-site attributes are always strings;
// these helpers do the common lookups and coercions so callbacks stay short.

// Attr retrieves a raw attribute value. The boolean reports presence.
func Attr(attrs Attributes, key string) (string, bool) {
	value, ok := attrs[key]
	return value, ok
}

// MustAttr retrieves a raw attribute value and panics when the key is
// absent. Useful for attributes a definition always declares a default for.
func MustAttr(attrs Attributes, key string) string {
	value, ok := attrs[key]
	if !ok {
		panic(fmt.Sprintf("shortcode: attribute %q not present", key))
	}
	return value
}

// AttrString returns the attribute value, or fallback when absent or empty.
func AttrString(attrs Attributes, key, fallback string) string {
	if value, ok := attrs[key]; ok && value != "" {
		return value
	}
	return fallback
}

// AttrInt parses the attribute as an integer, returning fallback when the
// key is absent or the value does not parse.
func AttrInt(attrs Attributes, key string, fallback int) int {
	value, ok := attrs[key]
	if !ok {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

// AttrBool parses the attribute as a boolean (strconv.ParseBool forms),
// returning fallback when the key is absent or the value does not parse.
func AttrBool(attrs Attributes, key string, fallback bool) bool {
	value, ok := attrs[key]
	if !ok {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}

// AttrFloat parses the attribute as a float64, returning fallback when the
// key is absent or the value does not parse.
func AttrFloat(attrs Attributes, key string, fallback float64) float64 {
	value, ok := attrs[key]
	if !ok {
		return fallback
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return fallback
	}
	return parsed
}
