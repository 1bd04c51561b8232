package library

import (
	"fmt"
	"path/filepath"

	"github.com/kjk/flatlib/atomicfile"
	"github.com/kjk/flatlib/backup"
	"github.com/kjk/flatlib/log"
)

// Backup saves the three data files into an archive at dst
func (l *Library) Backup(dst string) ([]*backup.File, error) {
	return backup.Create(dst, l.Config.DataPaths()...)
}

// Restore replaces data files with files from archive at src.
// All files are checked before any is written: names must match
// configured data files and sizes must be whole blocks.
// Data files missing from the archive are left alone.
func (l *Library) Restore(src string) ([]*backup.File, error) {
	files, err := backup.Read(src)
	if err != nil {
		return nil, err
	}
	type target struct {
		path      string
		blockSize int
	}
	targets := map[string]target{
		filepath.Base(l.Config.BookPath()):   {l.Config.BookPath(), l.Books.Store.BlockSize()},
		filepath.Base(l.Config.MemberPath()): {l.Config.MemberPath(), l.Members.Store.BlockSize()},
		filepath.Base(l.Config.LoanPath()):   {l.Config.LoanPath(), l.Loans.Store.BlockSize()},
	}
	for _, f := range files {
		t, ok := targets[f.Name]
		if !ok {
			return nil, fmt.Errorf("restore: '%s' in '%s' is not a data file", f.Name, src)
		}
		if len(f.Data)%t.blockSize != 0 {
			return nil, fmt.Errorf("restore: '%s' has %d bytes, not a multiple of block size %d", f.Name, len(f.Data), t.blockSize)
		}
	}
	for _, f := range files {
		if err = atomicfile.WriteFile(targets[f.Name].path, f.Data); err != nil {
			return nil, err
		}
	}
	log.Event("backup_restored", "path", src, "files", len(files))
	return files, nil
}
