package optional

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type patch struct {
	Description Optional[string] `json:"description,omitempty"`
	ChannelID   Optional[int64]  `json:"channel_id,omitempty"`
}

func TestOptional_Unmarshal(t *testing.T) {
	t.Run("absent field", func(t *testing.T) {
		var p patch
		require.NoError(t, json.Unmarshal([]byte(`{}`), &p))

		assert.False(t, p.Description.Present)
		assert.Nil(t, p.Description.Value)
	})

	t.Run("explicit null", func(t *testing.T) {
		var p patch
		require.NoError(t, json.Unmarshal([]byte(`{"description":null}`), &p))

		assert.True(t, p.Description.Present)
		assert.Nil(t, p.Description.Value)
	})

	t.Run("value", func(t *testing.T) {
		var p patch
		require.NoError(t, json.Unmarshal([]byte(`{"description":"notes","channel_id":7}`), &p))

		require.True(t, p.Description.Present)
		require.NotNil(t, p.Description.Value)
		assert.Equal(t, "notes", *p.Description.Value)

		require.True(t, p.ChannelID.Present)
		require.NotNil(t, p.ChannelID.Value)
		assert.Equal(t, int64(7), *p.ChannelID.Value)
	})

	t.Run("type mismatch errors", func(t *testing.T) {
		var p patch
		assert.Error(t, json.Unmarshal([]byte(`{"channel_id":"seven"}`), &p))
	})
}

func TestOptional_Marshal(t *testing.T) {
	data, err := json.Marshal(Of("hello"))
	require.NoError(t, err)
	assert.JSONEq(t, `"hello"`, string(data))

	data, err = json.Marshal(Null[string]())
	require.NoError(t, err)
	assert.JSONEq(t, `null`, string(data))
}

func TestOf(t *testing.T) {
	o := Of(int64(42))
	assert.True(t, o.Present)
	require.NotNil(t, o.Value)
	assert.Equal(t, int64(42), *o.Value)
}
