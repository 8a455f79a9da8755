package source

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/net/html/charset"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"
)

var (
	// ErrBadStatus is returned when remote server does not respond with 200.
	ErrBadStatus = errors.New("bad status")
	// ErrBodyTooLarge is returned when response body exceeds configured limit.
	ErrBodyTooLarge = errors.New("response body is too large")
)

// FetcherConfig holds parameters for remote requests.
type FetcherConfig struct {
	UserAgent   string
	Headers     map[string]string
	Timeout     time.Duration
	Retries     int
	Backoff     time.Duration
	MaxBodySize int64
	Concurrency int
	// Charset forces decoding of all responses, empty means detect.
	Charset string
}

// Response is a decoded remote document.
type Response struct {
	URL         string
	ContentType string
	Body        string
}

// IsHTML reports whether response is an HTML document.
func (r *Response) IsHTML() bool {
	return strings.Contains(strings.ToLower(r.ContentType), "html")
}

// IsCSS reports whether response is a stylesheet.
func (r *Response) IsCSS() bool {
	return strings.Contains(strings.ToLower(r.ContentType), "css")
}

// Fetcher downloads remote documents.
type Fetcher struct {
	cfg    FetcherConfig
	client *http.Client
	enc    encoding.Encoding
	log    *zap.Logger
}

// NewFetcher creates fetcher. Client may be nil, in which case new client
// with configured timeout is used.
func NewFetcher(cfg FetcherConfig, client *http.Client, log *zap.Logger) (*Fetcher, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if client == nil {
		client = &http.Client{Timeout: cfg.Timeout}
	}
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = 1
	}

	f := &Fetcher{cfg: cfg, client: client, log: log.Named("fetcher")}
	if cfg.Charset != "" {
		enc, err := ianaindex.IANA.Encoding(cfg.Charset)
		if err != nil {
			return nil, fmt.Errorf("unknown character set %q: %w", cfg.Charset, err)
		}
		if enc == nil {
			return nil, fmt.Errorf("character set %q: %w", cfg.Charset, errors.ErrUnsupported)
		}
		f.enc = enc
	}
	return f, nil
}

// Concurrency returns maximum number of simultaneous requests.
func (f *Fetcher) Concurrency() int {
	return f.cfg.Concurrency
}

// Fetch downloads document retrying on network errors and server failures.
func (f *Fetcher) Fetch(ctx context.Context, url string) (*Response, error) {
	var err error
	for attempt := 0; attempt <= f.cfg.Retries; attempt++ {
		if attempt > 0 {
			delay := time.Duration(attempt) * f.cfg.Backoff
			f.log.Debug("Retrying request", zap.String("url", url), zap.Int("attempt", attempt), zap.Duration("delay", delay), zap.Error(err))
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(delay):
			}
		}

		var resp *Response
		resp, err = f.fetch(ctx, url)
		if err == nil {
			return resp, nil
		}
		if !retryable(err) || ctx.Err() != nil {
			break
		}
	}
	return nil, err
}

type statusError struct {
	code int
}

func (e *statusError) Error() string {
	return fmt.Sprintf("status code is %d", e.code)
}

func (e *statusError) Unwrap() error {
	return ErrBadStatus
}

func retryable(err error) bool {
	var se *statusError
	if errors.As(err, &se) {
		return se.code >= http.StatusInternalServerError
	}
	return !errors.Is(err, ErrBodyTooLarge) && !errors.Is(err, context.Canceled)
}

func (f *Fetcher) fetch(ctx context.Context, url string) (_ *Response, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	if f.cfg.UserAgent != "" {
		req.Header.Set("User-Agent", f.cfg.UserAgent)
	}
	for k, v := range f.cfg.Headers {
		req.Header.Set(k, v)
	}

	start := time.Now()
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() {
		err = multierr.Append(err, resp.Body.Close())
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%s: %w", url, &statusError{code: resp.StatusCode})
	}

	var body io.Reader = resp.Body
	if f.cfg.MaxBodySize > 0 {
		body = io.LimitReader(resp.Body, f.cfg.MaxBodySize+1)
	}
	raw, err := io.ReadAll(body)
	if err != nil {
		return nil, fmt.Errorf("%s: unable to read body: %w", url, err)
	}
	if f.cfg.MaxBodySize > 0 && int64(len(raw)) > f.cfg.MaxBodySize {
		return nil, fmt.Errorf("%s: %w (limit %d bytes)", url, ErrBodyTooLarge, f.cfg.MaxBodySize)
	}

	contentType := resp.Header.Get("Content-Type")
	text, err := f.decode(raw, contentType)
	if err != nil {
		return nil, fmt.Errorf("%s: unable to decode body: %w", url, err)
	}

	f.log.Debug("Fetched",
		zap.String("url", url),
		zap.String("content-type", contentType),
		zap.Int("bytes", len(raw)),
		zap.Duration("elapsed", time.Since(start)))

	return &Response{URL: resp.Request.URL.String(), ContentType: contentType, Body: text}, nil
}

// decode converts body to UTF-8 using forced charset or one detected from
// content type and document itself.
func (f *Fetcher) decode(raw []byte, contentType string) (string, error) {
	var (
		r   io.Reader
		err error
	)
	if f.enc != nil {
		r = f.enc.NewDecoder().Reader(bytes.NewReader(raw))
	} else {
		r, err = charset.NewReader(bytes.NewReader(raw), contentType)
		if err != nil {
			return "", err
		}
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
