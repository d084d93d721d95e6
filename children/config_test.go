package children

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTypeConfig_RoundTrip(t *testing.T) {
	tests := []struct {
		name      string
		childType string
	}{
		{name: "simple", childType: "comment"},
		{name: "empty", childType: ""},
		{name: "unicode", childType: "kommentár"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewTypeConfig(tt.childType)

			data, err := cfg.MarshalBinary()
			require.NoError(t, err)

			var got TypeConfig
			require.NoError(t, got.UnmarshalBinary(data))

			assert.True(t, cfg.Equal(got))
			assert.Equal(t, cfg.Hash(), got.Hash())
			assert.Equal(t, tt.childType, got.ChildType())
		})
	}
}

func TestTypeConfig_Equality(t *testing.T) {
	a := NewTypeConfig("comment")
	b := NewTypeConfig("comment")
	c := NewTypeConfig("reply")

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
	assert.Equal(t, a.Hash(), b.Hash())
	assert.NotEqual(t, a.Hash(), c.Hash())
}

func TestTypeConfig_String(t *testing.T) {
	cfg := NewTypeConfig("comment")
	assert.Equal(t, "children(type=comment)", cfg.String())
}

func TestTypeConfig_UnmarshalShortBuffer(t *testing.T) {
	var cfg TypeConfig
	assert.Error(t, cfg.UnmarshalBinary(nil))
	assert.Error(t, cfg.UnmarshalBinary([]byte{10, 'a', 'b'}))
}

func TestTypeConfig_UnmarshalTrailingData(t *testing.T) {
	data, err := NewTypeConfig("comment").MarshalBinary()
	require.NoError(t, err)

	// Structurally different buffers must not decode to equal configs.
	var cfg TypeConfig
	assert.Error(t, cfg.UnmarshalBinary(append(data, 0x00)))
}
