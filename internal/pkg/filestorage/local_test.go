package filestorage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStorage_SaveBytes(t *testing.T) {
	dir := t.TempDir()
	ls, err := NewLocalStorage(dir, "http://localhost:8080/")
	require.NoError(t, err)

	url, err := ls.SaveBytes("reports", "a.pdf", []byte("%PDF"))
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080/uploads/reports/a.pdf", url)

	data, err := os.ReadFile(filepath.Join(dir, "reports", "a.pdf"))
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(data))

	assert.Equal(t, filepath.Join(dir, "reports", "a.pdf"), ls.GetFullPath(url))
}

func TestLocalStorage_SaveBytesRejectsTraversal(t *testing.T) {
	ls, err := NewLocalStorage(t.TempDir(), "")
	require.NoError(t, err)

	_, err = ls.SaveBytes("reports", "../evil.pdf", []byte("x"))
	assert.Error(t, err)

	_, err = ls.SaveBytes("../up", "a.pdf", []byte("x"))
	assert.Error(t, err)
}

func TestLocalStorage_DeleteFile(t *testing.T) {
	dir := t.TempDir()
	ls, err := NewLocalStorage(dir, "")
	require.NoError(t, err)

	url, err := ls.SaveBytes("", "b.pdf", []byte("x"))
	require.NoError(t, err)
	assert.Equal(t, "/uploads/b.pdf", url)

	require.NoError(t, ls.DeleteFile(url))
	_, err = os.Stat(filepath.Join(dir, "b.pdf"))
	assert.True(t, os.IsNotExist(err))

	// Deleting again is a no-op
	assert.NoError(t, ls.DeleteFile(url))
}

func TestLocalStorage_GetFullPathStaysInRoot(t *testing.T) {
	dir := t.TempDir()
	ls, err := NewLocalStorage(dir, "")
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "etc", "passwd"), ls.GetFullPath("/uploads/../../etc/passwd"))
	assert.Equal(t, "", ls.GetFullPath("/uploads/"))
}
