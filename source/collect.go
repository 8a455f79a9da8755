package source

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/h2non/filetype"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var (
	// ErrContentType is returned for remote documents which are neither HTML
	// nor CSS.
	ErrContentType = errors.New("content type is not HTML or CSS")
	// ErrBinaryFile is returned for local files recognized as binary.
	ErrBinaryFile = errors.New("not a text file")
)

// Collection is all CSS text gathered from sources.
type Collection struct {
	// Texts in order: inline styles, local files, remote documents, linked
	// stylesheets.
	Texts []string
	// Stylesheets is number of stylesheet files: local files, remote CSS
	// documents and stylesheets linked from remote HTML.
	Stylesheets int
	// StyleElements is number of <style> elements in remote HTML.
	StyleElements int
	// Paths are local file paths followed by remote URLs as specified.
	Paths []string
}

// CSS returns all collected text joined together.
func (c *Collection) CSS() string {
	return strings.Join(c.Texts, "")
}

// Collect reads local files and downloads remote documents concurrently.
// Linked stylesheets found in remote HTML are downloaded in a second wave.
// Any failure aborts the collection.
func Collect(ctx context.Context, src *Sources, f *Fetcher, limit int64, log *zap.Logger) (*Collection, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if src == nil || src.Empty() {
		return nil, ErrNoInput
	}

	col := &Collection{}
	col.Texts = append(col.Texts, src.Inline...)

	for _, file := range src.Files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		data := file.Data
		if data == nil {
			var err error
			if data, err = readLocal(file.Path, limit); err != nil {
				return nil, err
			}
		}
		col.Texts = append(col.Texts, string(data))
		col.Paths = append(col.Paths, file.Path)
		col.Stylesheets++
	}
	col.Paths = append(col.Paths, src.URLs...)

	if len(src.URLs) == 0 {
		return col, nil
	}
	if f == nil {
		return nil, errors.New("remote sources require fetcher")
	}

	responses, err := fetchAll(ctx, f, src.URLs)
	if err != nil {
		return nil, err
	}

	var links []string
	for _, resp := range responses {
		switch {
		case resp.IsHTML():
			base, err := url.Parse(resp.URL)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", resp.URL, err)
			}
			page, err := ScrapeHTML(resp.Body, base)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", resp.URL, err)
			}
			log.Debug("Scraped HTML", zap.String("url", resp.URL), zap.Int("links", len(page.Links)), zap.Int("styles", len(page.Styles)))
			col.Stylesheets += len(page.Links)
			col.StyleElements += len(page.Styles)
			col.Texts = append(col.Texts, page.Styles...)
			links = append(links, page.Links...)
		case resp.IsCSS():
			col.Stylesheets++
			col.Texts = append(col.Texts, resp.Body)
		default:
			return nil, fmt.Errorf("%s (%q): %w", resp.URL, resp.ContentType, ErrContentType)
		}
	}

	if len(links) > 0 {
		linked, err := fetchAll(ctx, f, links)
		if err != nil {
			return nil, err
		}
		for _, resp := range linked {
			col.Texts = append(col.Texts, resp.Body)
		}
	}
	return col, nil
}

// fetchAll downloads urls with bounded concurrency, results are in urls
// order.
func fetchAll(ctx context.Context, f *Fetcher, urls []string) ([]*Response, error) {
	results := make([]*Response, len(urls))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(f.Concurrency())
	for i, u := range urls {
		g.Go(func() error {
			resp, err := f.Fetch(gctx, u)
			if err != nil {
				return err
			}
			results[i] = resp
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func readLocal(path string, limit int64) ([]byte, error) {
	if limit > 0 {
		fi, err := os.Stat(path)
		if err != nil {
			return nil, err
		}
		if fi.Size() > limit {
			return nil, fmt.Errorf("%s: size %d exceeds limit %d", path, fi.Size(), limit)
		}
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if kind, _ := filetype.Match(data); kind != filetype.Unknown {
		return nil, fmt.Errorf("%s (%s): %w", path, kind.MIME.Value, ErrBinaryFile)
	}
	return data, nil
}
