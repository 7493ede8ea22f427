package openapi

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"net/url"
	"path"
	"path/filepath"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
)

var (
	// ErrRemoteDisabled is returned for http(s) locations when no HTTP
	// client was supplied with WithHTTPClient.
	ErrRemoteDisabled = errors.New("openapi: remote documents are disabled")
	// ErrNoSchemas is returned for documents without component schemas,
	// which leaves nothing to import.
	ErrNoSchemas = errors.New("openapi: document has no component schemas")
	// ErrSchemaNotFound is returned when importing an unknown schema name.
	ErrSchemaNotFound = errors.New("openapi: schema not found")
)

type loadConfig struct {
	fsys         fs.FS
	client       *http.Client
	externalRefs bool
}

// LoadOption configures Load and Parse.
type LoadOption func(*loadConfig)

// WithFileSystem resolves local locations, and relative external
// references, inside fsys instead of the host filesystem.
func WithFileSystem(fsys fs.FS) LoadOption {
	return func(cfg *loadConfig) {
		cfg.fsys = fsys
	}
}

// WithHTTPClient enables http(s) locations and remote references, fetched
// with client.
func WithHTTPClient(client *http.Client) LoadOption {
	return func(cfg *loadConfig) {
		cfg.client = client
	}
}

// WithExternalRefs allows $ref values pointing to other documents.
func WithExternalRefs(enabled bool) LoadOption {
	return func(cfg *loadConfig) {
		cfg.externalRefs = enabled
	}
}

func newLoadConfig(options []LoadOption) loadConfig {
	var cfg loadConfig
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

// Load reads and parses the OpenAPI document at location: a file path, a
// path inside the WithFileSystem filesystem, or an http(s) URL.
func Load(ctx context.Context, location string, options ...LoadOption) (Document, error) {
	cfg := newLoadConfig(options)
	location = strings.TrimSpace(location)
	if location == "" {
		return Document{}, errors.New("openapi: location is required")
	}
	if err := ctx.Err(); err != nil {
		return Document{}, err
	}
	target, err := locationURL(location)
	if err != nil {
		return Document{}, err
	}
	if isRemote(target) && cfg.client == nil {
		return Document{}, fmt.Errorf("%w: %s", ErrRemoteDisabled, location)
	}

	spec, err := cfg.loader(ctx).LoadFromURI(target)
	if err != nil {
		return Document{}, fmt.Errorf("openapi: load %s: %w", location, err)
	}
	return newDocument(location, spec)
}

// Parse parses data as the OpenAPI document found at location. The location
// only anchors relative external references.
func Parse(ctx context.Context, data []byte, location string, options ...LoadOption) (Document, error) {
	cfg := newLoadConfig(options)
	if err := ctx.Err(); err != nil {
		return Document{}, err
	}
	target, err := locationURL(location)
	if err != nil {
		return Document{}, err
	}
	spec, err := cfg.loader(ctx).LoadFromDataWithPath(data, target)
	if err != nil {
		return Document{}, fmt.Errorf("openapi: parse %s: %w", location, err)
	}
	return newDocument(location, spec)
}

func newDocument(location string, spec *openapi3.T) (Document, error) {
	if spec.Components == nil || len(spec.Components.Schemas) == 0 {
		return Document{}, fmt.Errorf("%w: %s", ErrNoSchemas, location)
	}
	return Document{location: location, spec: spec}, nil
}

func (c loadConfig) loader(ctx context.Context) *openapi3.Loader {
	loader := openapi3.NewLoader()
	loader.Context = ctx
	loader.IsExternalRefsAllowed = c.externalRefs

	var readers []openapi3.ReadFromURIFunc
	if c.client != nil {
		readers = append(readers, readFromHTTP(ctx, c.client))
	}
	if c.fsys != nil {
		readers = append(readers, readFromFS(c.fsys))
	} else {
		readers = append(readers, openapi3.ReadFromFile)
	}
	loader.ReadFromURIFunc = openapi3.ReadFromURIs(readers...)
	return loader
}

func readFromHTTP(ctx context.Context, client *http.Client) openapi3.ReadFromURIFunc {
	return func(_ *openapi3.Loader, location *url.URL) ([]byte, error) {
		if !isRemote(location) {
			return nil, openapi3.ErrURINotSupported
		}
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, location.String(), nil)
		if err != nil {
			return nil, err
		}
		resp, err := client.Do(req)
		if err != nil {
			return nil, err
		}
		defer func() {
			_ = resp.Body.Close()
		}()
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return nil, fmt.Errorf("openapi: GET %s: unexpected status %s", location.Redacted(), resp.Status)
		}
		return io.ReadAll(resp.Body)
	}
}

func readFromFS(fsys fs.FS) openapi3.ReadFromURIFunc {
	return func(_ *openapi3.Loader, location *url.URL) ([]byte, error) {
		if location.Scheme != "" && location.Scheme != "file" {
			return nil, openapi3.ErrURINotSupported
		}
		name := strings.TrimPrefix(path.Clean(location.Path), "/")
		return fs.ReadFile(fsys, name)
	}
}

func locationURL(location string) (*url.URL, error) {
	if strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://") {
		target, err := url.Parse(location)
		if err != nil {
			return nil, fmt.Errorf("openapi: invalid url %q: %w", location, err)
		}
		return target, nil
	}
	return &url.URL{Path: filepath.ToSlash(location)}, nil
}

func isRemote(location *url.URL) bool {
	return location.Scheme == "http" || location.Scheme == "https"
}
