package luacall_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pluglink/shortcode/luacall"
	"github.com/pluglink/shortcode/shortcode"
)

func TestNewExpandsAttributes(t *testing.T) {
	cb, err := luacall.New(`
		function expand(attrs, content, tag)
			return "[" .. tag .. "] " .. attrs.name .. content
		end
	`)
	require.NoError(t, err)

	out := cb(context.Background(), shortcode.Attributes{"name": "ada"}, "!", "greeting")
	assert.Equal(t, "[greeting] ada!", out)
}

func TestNewRejectsBrokenScript(t *testing.T) {
	_, err := luacall.New(`function expand( syntax error`)
	assert.ErrorIs(t, err, luacall.ErrInvalidScript)
}

func TestNewRequiresExpandFunction(t *testing.T) {
	_, err := luacall.New(`local x = 1`)
	assert.ErrorIs(t, err, luacall.ErrMissingExpand)

	_, err = luacall.New(`expand = "not a function"`)
	assert.ErrorIs(t, err, luacall.ErrMissingExpand)
}

func TestSandboxBlocksOS(t *testing.T) {
	cb, err := luacall.New(`
		function expand(attrs, content, tag)
			if os == nil and io == nil and require == nil then
				return "sandboxed"
			end
			return "leaky"
		end
	`)
	require.NoError(t, err)

	out := cb(context.Background(), nil, "", "probe")
	assert.Equal(t, "sandboxed", out)
}

func TestRuntimeErrorExpandsToEmpty(t *testing.T) {
	cb, err := luacall.New(`
		function expand(attrs, content, tag)
			error("boom")
		end
	`)
	require.NoError(t, err)

	assert.Equal(t, "", cb(context.Background(), nil, "", "boom"))
}

func TestCallbackRegistersLikeAnyOther(t *testing.T) {
	cb, err := luacall.New(`
		function expand(attrs, content, tag)
			return attrs.size
		end
	`)
	require.NoError(t, err)

	r := shortcode.New()
	r.Add("button", shortcode.Definition{
		Callback: cb,
		Defaults: shortcode.Attributes{"size": "large"},
	})
	assert.Contains(t, r.ListDefinitions(), "button")
}
