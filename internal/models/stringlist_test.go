package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStringListUnmarshal(t *testing.T) {
	t.Run("plain array", func(t *testing.T) {
		var s StringList
		require.NoError(t, json.Unmarshal([]byte(`["a","b"]`), &s))
		assert.Equal(t, StringList{"a", "b"}, s)
	})

	t.Run("double encoded array", func(t *testing.T) {
		var s StringList
		require.NoError(t, json.Unmarshal([]byte(`"[\"a\",\"b\"]"`), &s))
		assert.Equal(t, StringList{"a", "b"}, s)
	})

	t.Run("bare string", func(t *testing.T) {
		var s StringList
		require.NoError(t, json.Unmarshal([]byte(`"summer-sale"`), &s))
		assert.Equal(t, StringList{"summer-sale"}, s)
	})

	t.Run("null", func(t *testing.T) {
		s := StringList{"stale"}
		require.NoError(t, json.Unmarshal([]byte(`null`), &s))
		assert.Nil(t, s)
	})

	t.Run("empty string", func(t *testing.T) {
		var s StringList
		require.NoError(t, json.Unmarshal([]byte(`""`), &s))
		assert.Nil(t, s)
	})

	t.Run("malformed double encoding falls back to single element", func(t *testing.T) {
		var s StringList
		require.NoError(t, json.Unmarshal([]byte(`"[not json"`), &s))
		assert.Equal(t, StringList{"[not json"}, s)
	})

	t.Run("rejects numbers", func(t *testing.T) {
		var s StringList
		assert.Error(t, json.Unmarshal([]byte(`42`), &s))
	})
}

func TestStringListRoundTrip(t *testing.T) {
	data, err := json.Marshal(StringList{"a", "b"})
	require.NoError(t, err)
	assert.JSONEq(t, `["a","b"]`, string(data))
}
