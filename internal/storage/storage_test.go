package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestBackends(t *testing.T) {
	for _, kind := range Kinds {
		t.Run(kind, func(t *testing.T) {
			dir := t.TempDir()
			b, err := Open(kind, dir)
			require.NoError(t, err)
			defer b.Close()

			t.Run("Get-Missing", func(t *testing.T) {
				_, ok, err := b.Get("missing")
				require.NoError(t, err)
				assert.False(t, ok)
			})

			t.Run("Set-Get", func(t *testing.T) {
				require.NoError(t, b.Set("mealStatus", `{"day1-breakfast":true}`))
				v, ok, err := b.Get("mealStatus")
				require.NoError(t, err)
				assert.True(t, ok)
				assert.Equal(t, `{"day1-breakfast":true}`, v)
			})

			t.Run("Overwrite", func(t *testing.T) {
				require.NoError(t, b.Set("mealStatus", `{}`))
				v, _, err := b.Get("mealStatus")
				require.NoError(t, err)
				assert.Equal(t, `{}`, v)
			})
		})
	}
}

func TestPersistentBackends_Reopen(t *testing.T) {
	for _, kind := range []string{KindFile, KindSQLite} {
		t.Run(kind, func(t *testing.T) {
			dir := t.TempDir()
			b, err := Open(kind, dir)
			require.NoError(t, err)
			require.NoError(t, b.Set("k", "v"))
			require.NoError(t, b.Close())

			b, err = Open(kind, dir)
			require.NoError(t, err)
			defer b.Close()
			v, ok, err := b.Get("k")
			require.NoError(t, err)
			assert.True(t, ok)
			assert.Equal(t, "v", v)
		})
	}
}

func TestOpen_CreatesDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")
	b, err := Open(KindFile, dir)
	require.NoError(t, err)
	defer b.Close()

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestOpen_UnknownKind(t *testing.T) {
	_, err := Open("redis", t.TempDir())
	assert.Error(t, err)
}

func TestFileBackend_KeysAreIndependentFiles(t *testing.T) {
	dir := t.TempDir()
	b, err := NewFileBackend(dir)
	require.NoError(t, err)

	require.NoError(t, b.Set("a", "1"))
	require.NoError(t, b.Set("b", "2"))
	require.NoError(t, os.WriteFile(b.Path("a"), []byte("\x00garbage"), 0644))

	v, ok, err := b.Get("b")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "2", v)
}

func TestFileBackend_RejectsPathKeys(t *testing.T) {
	b, err := NewFileBackend(t.TempDir())
	require.NoError(t, err)

	assert.Error(t, b.Set("../escape", "x"))
	_, _, err = b.Get("a/b")
	assert.Error(t, err)
}
