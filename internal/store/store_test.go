package store

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func TestConnectMemoryAndRoundTrip(t *testing.T) {
	s, err := Connect(":memory:", "", false)
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.Put("std", "1.0.0", []byte(`{"index":{}}`), 42))

	row, ok, err := s.Get("std", "1.0.0")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, 42, row.ItemCount)
	require.Equal(t, datatypes.JSON(`{"index":{}}`), row.Blob)

	_, ok, err = s.Get("std", "9.9.9")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestPutReplacesExistingVersion(t *testing.T) {
	s, err := Connect(":memory:", "", false)
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.Put("core", "1.0.0", []byte(`a`), 1))
	require.NoError(t, s.Put("core", "1.0.0", []byte(`b`), 2))

	row, ok, err := s.Get("core", "1.0.0")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, 2, row.ItemCount)
	require.Equal(t, datatypes.JSON(`b`), row.Blob)
}

func TestListReturnsProvenance(t *testing.T) {
	s, err := Connect(":memory:", "", false)
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.Put("std", "1.0.0", []byte(`a`), 1))
	require.NoError(t, s.Put("core", "1.0.0", []byte(`b`), 2))

	rows, err := s.List()
	require.NoError(t, err)
	require.Len(t, rows, 2)
}

func TestIsURL(t *testing.T) {
	require.True(t, isURL("libsql://example.turso.io"))
	require.True(t, isURL("https://example.turso.io"))
	require.False(t, isURL("apidex.db"))
	require.False(t, isURL(":memory:"))
}
