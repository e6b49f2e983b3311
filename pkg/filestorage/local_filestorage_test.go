package filestorage

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalFileStorage_SaveAndDelete(t *testing.T) {
	store, err := NewLocalFileStorage(t.TempDir())
	require.NoError(t, err)

	rel, err := store.Save(strings.NewReader("fleet"), "Fleet.XLSX", "imports")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(rel, "imports/"))
	assert.True(t, strings.HasSuffix(rel, ".xlsx"))

	content, err := os.ReadFile(store.Path(rel))
	require.NoError(t, err)
	assert.Equal(t, "fleet", string(content))

	require.NoError(t, store.Delete(rel))
	_, err = os.Stat(store.Path(rel))
	assert.True(t, os.IsNotExist(err))

	// deleting twice is not an error
	assert.NoError(t, store.Delete(rel))
}
