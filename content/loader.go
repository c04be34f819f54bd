package content

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"path"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// DefaultSource is the conventional location of the data file inside a site.
const DefaultSource = "data/portfolio-data.json"

const maxDocumentSize = 8 << 20

// Loader fetches the portfolio document once. The first Load performs the
// fetch; every later call returns the same Store and error.
type Loader struct {
	source string
	files  fs.FS
	client *http.Client
	logger *zap.Logger

	once  sync.Once
	store *Store
	err   error
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithHTTPClient sets the client used for http(s) sources.
func WithHTTPClient(c *http.Client) LoaderOption {
	return func(l *Loader) { l.client = c }
}

// WithLogger sets the logger used for load diagnostics.
func WithLogger(logger *zap.Logger) LoaderOption {
	return func(l *Loader) { l.logger = logger }
}

// NewLoader creates a Loader for source, which is either an http(s) URL or a
// slash-separated path inside files.
func NewLoader(source string, files fs.FS, opts ...LoaderOption) *Loader {
	if strings.TrimSpace(source) == "" {
		source = DefaultSource
	}
	l := &Loader{
		source: source,
		files:  files,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(l)
	}
	if l.client == nil {
		l.client = &http.Client{Timeout: 10 * time.Second}
	}
	return l
}

// Load returns the loaded Store. On failure the error is logged and an empty
// Store is returned alongside it, so callers can display nothing.
func (l *Loader) Load(ctx context.Context) (*Store, error) {
	l.once.Do(func() {
		doc, err := l.fetch(ctx)
		if err != nil {
			l.logger.Error("load portfolio data", zap.String("source", l.source), zap.Error(err))
			l.store, l.err = Empty(), err
			return
		}
		for _, p := range doc.BlogPosts {
			if p.Published() && !p.ID.Addressable() {
				l.logger.Warn("skipping blog post with unusable id", zap.String("id", p.ID.String()), zap.String("title", p.Title))
			}
		}
		l.store = NewStore(doc)
	})
	return l.store, l.err
}

func (l *Loader) fetch(ctx context.Context) (*Document, error) {
	raw, err := l.read(ctx)
	if err != nil {
		return nil, err
	}
	return Decode(raw, l.source)
}

func (l *Loader) read(ctx context.Context) ([]byte, error) {
	if isRemote(l.source) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.source, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Accept", "application/json, application/yaml")
		resp, err := l.client.Do(req)
		if err != nil {
			return nil, fmt.Errorf("fetch %s: %w", l.source, err)
		}
		defer resp.Body.Close()
		if resp.StatusCode >= 400 {
			return nil, fmt.Errorf("fetch %s: status %d", l.source, resp.StatusCode)
		}
		return io.ReadAll(io.LimitReader(resp.Body, maxDocumentSize))
	}
	if l.files == nil {
		return nil, fmt.Errorf("read %s: no site files configured", l.source)
	}
	raw, err := fs.ReadFile(l.files, strings.TrimPrefix(path.Clean("/"+l.source), "/"))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", l.source, err)
	}
	return raw, nil
}

// Decode parses a document. Sources ending in .yaml or .yml are read as YAML,
// everything else as JSON.
func Decode(raw []byte, source string) (*Document, error) {
	var doc Document
	switch strings.ToLower(path.Ext(sourcePath(source))) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(raw, &doc); err != nil {
			return nil, fmt.Errorf("parse %s: %w", source, err)
		}
	default:
		if err := json.NewDecoder(bytes.NewReader(raw)).Decode(&doc); err != nil {
			return nil, fmt.Errorf("parse %s: %w", source, err)
		}
	}
	return &doc, nil
}

func isRemote(source string) bool {
	return strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://")
}

// sourcePath drops any query string so the extension can be inspected.
func sourcePath(source string) string {
	if i := strings.IndexAny(source, "?#"); i >= 0 {
		return source[:i]
	}
	return source
}

// Store is Load under the name page initializers expect from a content source.
func (l *Loader) Store(ctx context.Context) (*Store, error) {
	return l.Load(ctx)
}
