package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryRoundTrip(t *testing.T) {
	s := NewMemory()

	_, ok := s.Read("missing")
	assert.False(t, ok)

	require.NoError(t, s.Write("k", []byte("v1")))
	data, ok := s.Read("k")
	require.True(t, ok)
	assert.Equal(t, []byte("v1"), data)

	require.NoError(t, s.Write("k", []byte("v2")))
	data, _ = s.Read("k")
	assert.Equal(t, []byte("v2"), data)

	s.Delete("k")
	_, ok = s.Read("k")
	assert.False(t, ok)

	// deleting a missing key is a no-op
	s.Delete("k")
}

func TestMemoryCopiesData(t *testing.T) {
	s := NewMemory()
	buf := []byte("original")
	require.NoError(t, s.Write("k", buf))
	buf[0] = 'X'

	data, _ := s.Read("k")
	assert.Equal(t, []byte("original"), data)

	data[0] = 'Y'
	again, _ := s.Read("k")
	assert.Equal(t, []byte("original"), again)
}

func TestDirRoundTrip(t *testing.T) {
	s, err := NewDir(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, s.Write(KeyCart, []byte(`[{"id":"1"}]`)))
	data, ok := s.Read(KeyCart)
	require.True(t, ok)
	assert.JSONEq(t, `[{"id":"1"}]`, string(data))

	s.Delete(KeyCart)
	_, ok = s.Read(KeyCart)
	assert.False(t, ok)
}

func TestDirSanitizesKeys(t *testing.T) {
	s, err := NewDir(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, s.Write("u1:cartItems", []byte("a")))
	data, ok := s.Read("u1:cartItems")
	require.True(t, ok)
	assert.Equal(t, []byte("a"), data)
}

func TestForUserIsolation(t *testing.T) {
	base := NewMemory()
	ana := ForUser(base, "ana")
	luis := ForUser(base, "luis")

	require.NoError(t, ana.Write(KeyCart, []byte("ana-cart")))
	require.NoError(t, luis.Write(KeyCart, []byte("luis-cart")))

	data, _ := ana.Read(KeyCart)
	assert.Equal(t, []byte("ana-cart"), data)
	data, _ = luis.Read(KeyCart)
	assert.Equal(t, []byte("luis-cart"), data)

	ana.Delete(KeyCart)
	_, ok := ana.Read(KeyCart)
	assert.False(t, ok)
	_, ok = luis.Read(KeyCart)
	assert.True(t, ok)
}

func TestClearClientState(t *testing.T) {
	s := ForUser(NewMemory(), "ana")
	for _, key := range []string{KeySession, KeyUser, KeyCart, KeyDraft} {
		require.NoError(t, s.Write(key, []byte("x")))
	}
	require.NoError(t, s.Write("unrelated", []byte("keep")))

	ClearClientState(s)

	for _, key := range []string{KeySession, KeyUser, KeyCart, KeyDraft} {
		_, ok := s.Read(key)
		assert.False(t, ok, "key %s should be cleared", key)
	}
	_, ok := s.Read("unrelated")
	assert.True(t, ok)
}
