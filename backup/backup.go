// Package backup saves a set of files into a single (optionally
// compressed) zip archive and reads them back.
//
// Compression is picked from the extension of the archive:
// .zst / .zstd (zstd), .br (brotli), .gz (gzip), anything else is
// a plain zip.
package backup

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/kjk/flatlib/atomicfile"
	"github.com/kjk/flatlib/log"
	"github.com/kjk/flatlib/u"
	"github.com/klauspost/compress/zip"
)

// File is one file in a backup archive
type File struct {
	// base name of the file
	Name     string
	Modified time.Time
	Data     []byte
}

// Create writes files at paths into archive at dst. Missing files are
// skipped. Files are stored under their base names which must be unique.
// The archive is written atomically.
func Create(dst string, paths ...string) ([]*File, error) {
	var files []*File
	seen := map[string]string{}
	for _, path := range paths {
		name := filepath.Base(path)
		if other, ok := seen[name]; ok {
			return nil, fmt.Errorf("backup: '%s' and '%s' have the same name", path, other)
		}
		seen[name] = path
		if !u.FileExists(path) {
			log.Verbosef("backup: skipping '%s', doesn't exist\n", path)
			continue
		}
		st, err := os.Stat(path)
		if err != nil {
			return nil, err
		}
		d, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		files = append(files, &File{
			Name:     name,
			Modified: st.ModTime(),
			Data:     d,
		})
	}

	d, err := zipFiles(files)
	if err != nil {
		return nil, err
	}
	c := u.CompressionFromPath(dst)
	d, err = u.CompressData(d, c)
	if err != nil {
		return nil, err
	}
	if err = atomicfile.WriteFile(dst, d); err != nil {
		return nil, err
	}
	log.Event("backup_created", "path", dst, "files", len(files), "size", len(d), "compression", c.String())
	return files, nil
}

func zipFiles(files []*File) ([]byte, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, f := range files {
		hdr := &zip.FileHeader{
			Name:     f.Name,
			Method:   zip.Store,
			Modified: f.Modified,
		}
		w, err := zw.CreateHeader(hdr)
		if err != nil {
			return nil, err
		}
		if _, err = w.Write(f.Data); err != nil {
			return nil, err
		}
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Read returns files stored in archive at src
func Read(src string) ([]*File, error) {
	d, err := os.ReadFile(src)
	if err != nil {
		return nil, err
	}
	d, err = u.DecompressData(d, u.CompressionFromPath(src))
	if err != nil {
		return nil, fmt.Errorf("backup: decompressing '%s' failed: %w", src, err)
	}
	zr, err := zip.NewReader(bytes.NewReader(d), int64(len(d)))
	if err != nil {
		return nil, fmt.Errorf("backup: '%s' is not a valid archive: %w", src, err)
	}
	var res []*File
	for _, zf := range zr.File {
		name := zf.Name
		if name != filepath.Base(name) || strings.ContainsAny(name, `/\`) || name == ".." {
			return nil, fmt.Errorf("backup: invalid file name '%s' in '%s'", name, src)
		}
		rc, err := zf.Open()
		if err != nil {
			return nil, err
		}
		data, err := io.ReadAll(rc)
		u.CloseNoError(rc)
		if err != nil {
			return nil, err
		}
		res = append(res, &File{
			Name:     name,
			Modified: zf.Modified,
			Data:     data,
		})
	}
	return res, nil
}
