package backup

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/kjk/flatlib/require"
)

func writeFile(t *testing.T, path string, d []byte) {
	require.NoError(t, os.WriteFile(path, d, 0644))
}

func TestCreateAndRead(t *testing.T) {
	dir := t.TempDir()
	books := filepath.Join(dir, "books.dat")
	members := filepath.Join(dir, "members.dat")
	writeFile(t, books, bytes.Repeat([]byte{1, 0, 0, 0}, 107))
	writeFile(t, members, []byte{})

	for _, name := range []string{"b.zip", "b.zip.zst", "b.zip.br", "b.zip.gz"} {
		dst := filepath.Join(dir, "out", name)
		files, err := Create(dst, books, members, filepath.Join(dir, "borrows.dat"))
		require.NoError(t, err, name)
		require.Len(t, files, 2, name)

		got, err := Read(dst)
		require.NoError(t, err, name)
		require.Len(t, got, 2, name)
		require.Equal(t, "books.dat", got[0].Name)
		require.Equal(t, bytes.Repeat([]byte{1, 0, 0, 0}, 107), got[0].Data)
		require.Equal(t, "members.dat", got[1].Name)
		require.Len(t, got[1].Data, 0)
	}
}

func TestDuplicateNames(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a", "books.dat")
	b := filepath.Join(dir, "b", "books.dat")
	_, err := Create(filepath.Join(dir, "x.zip"), a, b)
	require.Error(t, err)
}

func TestReadInvalid(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.zip.zst")
	writeFile(t, path, []byte("not zstd"))
	_, err := Read(path)
	require.Error(t, err)

	_, err = Read(filepath.Join(dir, "missing.zip"))
	require.Error(t, err)
}
