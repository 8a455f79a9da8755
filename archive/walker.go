// Package archive reads stylesheets packed into zip archives.
package archive

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path"
	"sort"
	"strings"

	"github.com/h2non/filetype"
	"github.com/maruel/natural"
)

// WalkFunc is the type of the function called for each file in archive
// visited by Walk. The archive argument contains path to archive passed to
// Walk. If an error is returned, processing stops.
type WalkFunc func(archive string, file *zip.File) error

// Entry is a single stylesheet read from archive.
type Entry struct {
	Archive string
	Name    string
	Data    []byte
}

// Path returns location of the entry as it would be specified on command
// line.
func (e Entry) Path() string {
	return e.Archive + "/" + e.Name
}

// Walk walks all files in the archive with names starting with prefix,
// calling walkFn for each. Archives with path traversal components ("..")
// or absolute entry names are rejected.
func Walk(archive, prefix string, walkFn WalkFunc) error {
	r, err := zip.OpenReader(archive)
	if err != nil {
		return err
	}
	defer r.Close()

	prefix = strings.TrimPrefix(strings.ReplaceAll(prefix, `\`, "/"), "/")
	for _, f := range r.File {
		name := f.FileHeader.Name
		if !isSafePath(name) {
			return fmt.Errorf("zip entry %q: unsafe path (absolute or contains path traversal)", name)
		}
		if !f.FileInfo().IsDir() && strings.HasPrefix(name, prefix) {
			if err := walkFn(archive, f); err != nil {
				return err
			}
		}
	}
	return nil
}

// Stylesheets reads all ".css" entries under prefix. Entries are returned in
// natural order of their names. Entries larger than limit bytes (if limit is
// positive) produce an error.
func Stylesheets(archive, prefix string, limit int64) ([]Entry, error) {
	var entries []Entry
	err := Walk(archive, prefix, func(archive string, f *zip.File) error {
		if !strings.EqualFold(path.Ext(f.Name), ".css") {
			return nil
		}
		if limit > 0 && f.UncompressedSize64 > uint64(limit) {
			return fmt.Errorf("zip entry %q: size %d exceeds limit %d", f.Name, f.UncompressedSize64, limit)
		}
		data, err := readEntry(f)
		if err != nil {
			return fmt.Errorf("zip entry %q: %w", f.Name, err)
		}
		entries = append(entries, Entry{Archive: archive, Name: f.Name, Data: data})
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(entries, func(i, j int) bool {
		return natural.Less(entries[i].Name, entries[j].Name)
	})
	return entries, nil
}

func readEntry(f *zip.File) ([]byte, error) {
	r, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return io.ReadAll(r)
}

// IsArchiveFile checks file signature to see if it is a zip archive.
func IsArchiveFile(name string) (bool, error) {
	file, err := os.Open(name)
	if err != nil {
		return false, err
	}
	defer file.Close()

	// enough to detect any known type
	head := make([]byte, 262)
	n, err := io.ReadFull(file, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return false, err
	}
	return filetype.Is(head[:n], "zip"), nil
}

// isSafePath returns false for paths that could escape the extraction
// directory: absolute paths and those containing ".." components.
func isSafePath(name string) bool {
	if path.IsAbs(name) || strings.HasPrefix(name, `\`) {
		return false
	}
	for part := range strings.SplitSeq(name, "/") {
		if part == ".." {
			return false
		}
	}
	return true
}
