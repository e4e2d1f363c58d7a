package storage

import (
	"context"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sismaterial/helpdesk/internal/shared/logger"
)

func TestFileStore_SaveOpenOverwrite(t *testing.T) {
	store, err := NewFileStore(filepath.Join(t.TempDir(), "uploads"), logger.Nop())
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "print.png", strings.NewReader("v1")))
	require.NoError(t, store.Save(ctx, "print.png", strings.NewReader("v2")))

	rc, err := store.Open(ctx, "print.png")
	require.NoError(t, err)
	defer rc.Close()
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "v2", string(data))

	ok, err := store.Exists(ctx, "print.png")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestFileStore_StripsDirectories(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "uploads")
	store, err := NewFileStore(dir, logger.Nop())
	require.NoError(t, err)

	require.NoError(t, store.Save(context.Background(), "../../evil.pdf", strings.NewReader("x")))

	_, err = os.Stat(filepath.Join(dir, "evil.pdf"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(root, "evil.pdf"))
	assert.True(t, os.IsNotExist(err))
}

func TestFileStore_MissingFile(t *testing.T) {
	store, err := NewFileStore(t.TempDir(), logger.Nop())
	require.NoError(t, err)

	_, err = store.Open(context.Background(), "absent.pdf")
	assert.ErrorIs(t, err, fs.ErrNotExist)

	ok, err := store.Exists(context.Background(), "absent.pdf")
	require.NoError(t, err)
	assert.False(t, ok)
}
