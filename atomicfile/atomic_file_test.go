package atomicfile

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/kjk/flatlib/require"
)

func assertFileExists(t *testing.T, path string) {
	st, err := os.Stat(path)
	if err != nil {
		t.Fatalf("file '%s' doesn't exist, os.Stat() failed with '%s'", path, err)
	}
	if !st.Mode().IsRegular() {
		t.Fatalf("Path '%s' exists but is not a file (mode: %d)", path, int(st.Mode()))
	}
}

func assertFileNotExists(t *testing.T, path string) {
	_, err := os.Stat(path)
	if err == nil {
		t.Fatalf("file '%s' exist, expected to not exist", path)
	}
}

func assertFileContent(t *testing.T, path string, exp string) {
	d, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, exp, string(d))
}

func TestSimulateError(t *testing.T) {
	dst := filepath.Join(t.TempDir(), "books.dat")
	require.NoError(t, os.WriteFile(dst, []byte("old"), 0644))
	f, err := New(dst)
	require.NoError(t, err)
	assertFileExists(t, f.tmpPath)
	_, err = f.Write([]byte("new"))
	require.NoError(t, err)
	// simulate an error
	errSimulated := errors.New("simulated")
	f.err = errSimulated
	err = f.Close()
	require.Equal(t, errSimulated, err)
	assertFileNotExists(t, f.tmpPath)
	// destination keeps old content
	assertFileContent(t, dst, "old")
	// on second Close() should get the same error
	require.Equal(t, errSimulated, f.Close())
}

func writeWithPanicCancel(t *testing.T, f *File) {
	defer f.RemoveIfNotClosed()

	_, err := f.Write([]byte("foo"))
	require.NoError(t, err)
	panic("simulating a crash")
}

func recoverCancelPanic(t *testing.T, f *File) {
	defer func() {
		err := recover()
		if err == nil {
			t.Fatalf("expected to panic")
		}
	}()

	writeWithPanicCancel(t, f)
}

func TestCancel(t *testing.T) {
	dst := filepath.Join(t.TempDir(), "loans.dat")
	require.NoError(t, os.WriteFile(dst, []byte("old"), 0644))
	f, err := New(dst)
	require.NoError(t, err)
	assertFileExists(t, f.tmpPath)
	recoverCancelPanic(t, f)
	assertFileNotExists(t, f.tmpPath)
	assertFileContent(t, dst, "old")
}

func TestWrite(t *testing.T) {
	dir := t.TempDir()
	dst := filepath.Join(dir, "members.dat")
	{
		f, err := New(dst)
		require.NoError(t, err)
		assertFileExists(t, f.tmpPath)
		_ = f.Close()
		assertFileExists(t, dst)
		assertFileContent(t, dst, "")
		assertFileNotExists(t, f.tmpPath)
	}

	{
		f, err := New(dst)
		require.NoError(t, err)
		n, err := f.WriteString("hello ")
		require.NoError(t, err)
		require.Equal(t, 6, n)
		_, err = f.Write([]byte("world"))
		require.NoError(t, err)
		require.NoError(t, f.Sync())
		// destination doesn't change until Close
		assertFileContent(t, dst, "")
		require.NoError(t, f.Close())
		assertFileNotExists(t, f.tmpPath)
		assertFileContent(t, dst, "hello world")
		// calling Close twice is a no-op
		require.NoError(t, f.Close())
	}

	{
		// check that RemoveIfNotClosed sets an error state
		f, err := New(dst)
		require.NoError(t, err)
		f.RemoveIfNotClosed()
		_, err = f.Write([]byte("x"))
		require.Equal(t, ErrCancelled, err)
		require.Equal(t, ErrCancelled, f.Close())
		require.Equal(t, ErrCancelled, f.Close())
		assertFileContent(t, dst, "hello world")
	}
}

func TestNewCreatesDirs(t *testing.T) {
	dst := filepath.Join(t.TempDir(), "foo", "bar", "report.txt")
	require.NoError(t, WriteFile(dst, []byte("report")))
	assertFileContent(t, dst, "report")

	_, err := New(filepath.Join(t.TempDir(), "dir") + string(filepath.Separator))
	require.Error(t, err)
}

func TestNoTempFilesLeft(t *testing.T) {
	dir := t.TempDir()
	dst := filepath.Join(dir, "books.dat")
	for i := 0; i < 5; i++ {
		require.NoError(t, WriteFile(dst, []byte{byte(i)}))
	}
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, "books.dat", entries[0].Name())
}
