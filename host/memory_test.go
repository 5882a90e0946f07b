package host_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pluglink/shortcode/host"
)

func TestMergeAttributes(t *testing.T) {
	h := host.NewMemoryHost()

	cases := []struct {
		name     string
		defaults host.Attributes
		raw      host.Attributes
		want     host.Attributes
	}{
		{
			name:     "empty raw keeps defaults",
			defaults: host.Attributes{"size": "large"},
			raw:      host.Attributes{},
			want:     host.Attributes{"size": "large"},
		},
		{
			name:     "declared key overridden undeclared dropped",
			defaults: host.Attributes{"size": "large"},
			raw:      host.Attributes{"size": "small", "color": "red"},
			want:     host.Attributes{"size": "small"},
		},
		{
			name:     "no defaults drops everything",
			defaults: host.Attributes{},
			raw:      host.Attributes{"color": "red"},
			want:     host.Attributes{},
		},
		{
			name:     "nil raw",
			defaults: host.Attributes{"user_id": "1"},
			raw:      nil,
			want:     host.Attributes{"user_id": "1"},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, h.MergeAttributes(tc.defaults, tc.raw, "any"))
		})
	}
}

func TestDispatchTable(t *testing.T) {
	h := host.NewMemoryHost()
	ctx := context.Background()

	h.RegisterDispatch("greeting", func(_ context.Context, raw host.Attributes, content string) string {
		return "hello " + raw["name"] + content
	})

	require.True(t, h.Bound("greeting"))

	out, err := h.Render(ctx, "greeting", host.Attributes{"name": "ada"}, "!")
	require.NoError(t, err)
	assert.Equal(t, "hello ada!", out)

	_, err = h.Render(ctx, "unbound", nil, "")
	assert.ErrorIs(t, err, host.ErrNoDispatch)

	h.RemoveDispatch("greeting")
	assert.False(t, h.Bound("greeting"))
	assert.Empty(t, h.Tags())

	// Removing again is a no-op.
	h.RemoveDispatch("greeting")
}

func TestRegisterDispatchIgnoresInvalid(t *testing.T) {
	h := host.NewMemoryHost()

	h.RegisterDispatch("", func(context.Context, host.Attributes, string) string { return "" })
	h.RegisterDispatch("tag", nil)

	assert.Empty(t, h.Tags())
}

func TestMemoryFlagStore(t *testing.T) {
	s := host.NewMemoryFlagStore()
	ctx := context.Background()

	value, err := s.Get(ctx, "installed")
	require.NoError(t, err)
	assert.False(t, value)

	require.NoError(t, s.Set(ctx, "installed", true))
	value, err = s.Get(ctx, "installed")
	require.NoError(t, err)
	assert.True(t, value)

	require.NoError(t, s.Set(ctx, "installed", false))
	value, err = s.Get(ctx, "installed")
	require.NoError(t, err)
	assert.False(t, value)

	require.NoError(t, s.Set(ctx, "installed", true))
	require.NoError(t, s.Clear(ctx, "installed"))
	value, err = s.Get(ctx, "installed")
	require.NoError(t, err)
	assert.False(t, value)
}
