// Package source turns command line arguments into CSS text: local files,
// directories, zip archives, remote documents and inline styles.
package source

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/maruel/natural"
	"go.uber.org/zap"

	"stylestats/archive"
	"stylestats/css"
)

// ErrNoInput is returned when none of the arguments could be used as CSS
// source.
var ErrNoInput = errors.New("argument is invalid")

const cssExt = ".css"

// File is a local stylesheet. Data is nil until file is read, stylesheets
// coming from archives are read during classification.
type File struct {
	Path string
	Data []byte
}

// Sources is classification result: every argument sorted into a bucket.
type Sources struct {
	Files  []File
	URLs   []string
	Inline []string
}

// Empty reports whether nothing was classified.
func (s *Sources) Empty() bool {
	return len(s.Files) == 0 && len(s.URLs) == 0 && len(s.Inline) == 0
}

// Classify sorts arguments into local files, remote URLs and inline styles.
// Each argument is checked in order: CSS file, directory, zip archive (with
// optional path inside it), http(s) URL, CSS text, and finally glob pattern.
func Classify(args []string, limit int64, log *zap.Logger) (*Sources, error) {
	if log == nil {
		log = zap.NewNop()
	}
	src := &Sources{}
	for _, arg := range args {
		if err := src.add(arg, limit, log); err != nil {
			return nil, err
		}
	}
	if src.Empty() {
		return nil, ErrNoInput
	}
	return src, nil
}

func (s *Sources) add(arg string, limit int64, log *zap.Logger) error {
	if fi, err := os.Stat(arg); err == nil {
		switch {
		case fi.Mode().IsRegular() && isCSSName(arg):
			log.Debug("Stylesheet file", zap.String("path", arg))
			s.Files = append(s.Files, File{Path: arg})
			return nil
		case fi.IsDir():
			return s.addDir(arg, log)
		case fi.Mode().IsRegular():
			ok, err := archive.IsArchiveFile(arg)
			if err != nil {
				return fmt.Errorf("unable to check archive type: %w", err)
			}
			if ok {
				return s.addArchive(arg, "", limit, log)
			}
		}
	} else if name, inner, ok := splitArchivePath(arg); ok {
		return s.addArchive(name, inner, limit, log)
	}

	if isURL(arg) {
		log.Debug("Remote document", zap.String("url", arg))
		s.URLs = append(s.URLs, arg)
		return nil
	}
	if css.IsCSS(arg) {
		log.Debug("Inline style", zap.Int("bytes", len(arg)))
		s.Inline = append(s.Inline, arg)
		return nil
	}

	matches, err := filepath.Glob(arg)
	if err != nil {
		log.Warn("Argument is not a valid pattern, ignoring", zap.String("arg", arg), zap.Error(err))
		return nil
	}
	for _, m := range matches {
		if isCSSName(m) {
			s.Files = append(s.Files, File{Path: m})
		}
	}
	if len(matches) == 0 {
		log.Debug("Argument did not match anything", zap.String("arg", arg))
	}
	return nil
}

// addDir adds stylesheets located directly in directory, in natural order.
func (s *Sources) addDir(dir string, log *zap.Logger) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("unable to read directory: %w", err)
	}
	var names []string
	for _, e := range entries {
		if e.Type().IsRegular() && isCSSName(e.Name()) {
			names = append(names, e.Name())
		}
	}
	sort.Sort(natural.StringSlice(names))
	for _, n := range names {
		s.Files = append(s.Files, File{Path: filepath.Join(dir, n)})
	}
	log.Debug("Stylesheet directory", zap.String("dir", dir), zap.Int("files", len(names)))
	return nil
}

func (s *Sources) addArchive(name, inner string, limit int64, log *zap.Logger) error {
	entries, err := archive.Stylesheets(name, inner, limit)
	if err != nil {
		return fmt.Errorf("unable to process archive: %w", err)
	}
	for _, e := range entries {
		s.Files = append(s.Files, File{Path: e.Path(), Data: e.Data})
	}
	log.Debug("Stylesheet archive", zap.String("archive", name), zap.String("path", inner), zap.Int("files", len(entries)))
	return nil
}

// splitArchivePath looks for existing zip archive at the beginning of path
// which does not exist as a whole and returns archive name and the rest of
// the path.
func splitArchivePath(p string) (string, string, bool) {
	for head := filepath.Dir(p); head != "." && head != string(filepath.Separator); head = filepath.Dir(head) {
		fi, err := os.Stat(head)
		if err != nil {
			continue
		}
		if !fi.Mode().IsRegular() {
			return "", "", false
		}
		if ok, err := archive.IsArchiveFile(head); err != nil || !ok {
			return "", "", false
		}
		tail := strings.TrimPrefix(strings.TrimPrefix(p, head), string(filepath.Separator))
		return head, filepath.ToSlash(tail), true
	}
	return "", "", false
}

func isCSSName(name string) bool {
	return strings.EqualFold(filepath.Ext(name), cssExt)
}

func isURL(arg string) bool {
	u, err := url.Parse(arg)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
