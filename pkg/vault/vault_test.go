package vault

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/mr-shifu/puzzle-lib/pkg/common/vault"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testVault(t *testing.T, v vault.Vault) {
	_, err := v.Get("missing")
	assert.True(t, errors.Is(err, ErrKeyNotFound), "Get on a missing key should return ErrKeyNotFound")

	require.NoError(t, v.Import("k", []byte("first")))
	got, err := v.Get("k")
	require.NoError(t, err)
	assert.Equal(t, []byte("first"), got)

	require.NoError(t, v.Import("k", []byte("second")))
	got, err = v.Get("k")
	require.NoError(t, err)
	assert.Equal(t, []byte("second"), got, "Import should overwrite")

	require.NoError(t, v.Import("empty", nil))
	got, err = v.Get("empty")
	require.NoError(t, err)
	assert.Empty(t, got)

	_, err = v.Get("K")
	assert.True(t, errors.Is(err, ErrKeyNotFound), "Keys are case-sensitive")
}

func TestInMemoryVault(t *testing.T) {
	testVault(t, NewInMemoryVault())
}

func TestInMemoryVault_CopiesValues(t *testing.T) {
	v := NewInMemoryVault()
	buf := []byte("abc")
	require.NoError(t, v.Import("k", buf))
	buf[0] = 'z'

	got, err := v.Get("k")
	require.NoError(t, err)
	assert.Equal(t, []byte("abc"), got)

	got[1] = 'z'
	again, err := v.Get("k")
	require.NoError(t, err)
	assert.Equal(t, []byte("abc"), again)
}

func TestSQLiteVault(t *testing.T) {
	v, err := NewSQLiteVault(":memory:")
	require.NoError(t, err)
	defer v.Close()

	testVault(t, v)
}

func TestSQLiteVault_Reopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "state.db")

	v, err := SQLiteVaultFactory{}.NewVault(path)
	require.NoError(t, err)
	require.NoError(t, v.Import("puzzle", []byte{0xa1, 0x01, 0x60}))
	require.NoError(t, v.Close())

	v, err = SQLiteVaultFactory{}.NewVault(path)
	require.NoError(t, err)
	defer v.Close()

	got, err := v.Get("puzzle")
	require.NoError(t, err)
	assert.Equal(t, []byte{0xa1, 0x01, 0x60}, got)
}

func TestInMemoryVaultFactory(t *testing.T) {
	v, err := InMemoryVaultFactory{}.NewVault("ignored")
	require.NoError(t, err)
	testVault(t, v)
	assert.NoError(t, v.Close())
}
