// Package resolver turns paths and resources into final URLs using the
// sitemap store: destination lookup, relative-link computation, asset paths
// and canonical full paths.
package resolver

import (
	"errors"
	"fmt"
	"net/url"
	"path"
	"strings"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/robclancy/middleman/internal/pathutil"
	"github.com/robclancy/middleman/internal/sitemap"
)

// ErrRelativeExternal is returned when a relative URL is requested for a
// target on an external host. That is a caller error, not something to
// silently ignore.
var ErrRelativeExternal = errors.New("cannot build a relative URL to an external host")

const fullPathCacheSize = 1024

// Options control one resolution.
type Options struct {
	// Relative requests a URL relative to CurrentResource's destination
	// directory.
	Relative bool

	// CurrentResource is the rendering context; relative source paths are
	// looked up against its source directory.
	CurrentResource *sitemap.Resource

	// FindResource requests a by-path lookup of the raw target path when no
	// context-relative match was found.
	FindResource bool

	// Query replaces the target's query string. Accepts a raw string,
	// url.Values or map[string]string.
	Query interface{}

	// Anchor / Fragment replace the target's fragment; Anchor wins when
	// both are set.
	Anchor   string
	Fragment string
}

// Config sets up a Resolver.
type Config struct {
	HTTPPrefix string
	IndexFile  string

	// AssetDirs maps an asset kind (css, js, images, fonts) to its
	// conventional folder. AssetExts maps a kind to the extension appended
	// when missing; kinds without an entry (images, fonts) are exempt.
	AssetDirs map[string]string
	AssetExts map[string]string
}

// Resolver resolves URLs against a sitemap store. The full-path lookup is
// memoized in an LRU flushed whenever the store's rebuild counter moves.
type Resolver struct {
	store      *sitemap.Store
	httpPrefix string
	indexFile  string
	assetDirs  map[string]string
	assetExts  map[string]string

	mu       sync.Mutex
	cache    *lru.Cache[string, string]
	cacheGen uint64
}

func New(store *sitemap.Store, cfg Config) *Resolver {
	if cfg.HTTPPrefix == "" {
		cfg.HTTPPrefix = "/"
	}
	if cfg.IndexFile == "" {
		cfg.IndexFile = "index.html"
	}
	if cfg.AssetDirs == nil {
		cfg.AssetDirs = map[string]string{
			"css":    "css",
			"js":     "js",
			"images": "images",
			"fonts":  "fonts",
		}
	}
	if cfg.AssetExts == nil {
		cfg.AssetExts = map[string]string{
			"css": ".css",
			"js":  ".js",
		}
	}

	cache, _ := lru.New[string, string](fullPathCacheSize)
	return &Resolver{
		store:      store,
		httpPrefix: cfg.HTTPPrefix,
		indexFile:  cfg.IndexFile,
		assetDirs:  cfg.AssetDirs,
		assetExts:  cfg.AssetExts,
		cache:      cache,
	}
}

// ResolveURL resolves target, either a *sitemap.Resource or a path string,
// into a final URL. A string that does not parse as a URI is opaque and
// returned unchanged.
func (rv *Resolver) ResolveURL(target interface{}, opts Options) (string, error) {
	var u *url.URL
	var found *sitemap.Resource

	switch v := target.(type) {
	case *sitemap.Resource:
		found = v
		u = &url.URL{Path: v.URL()}
	case string:
		parsed, err := url.Parse(v)
		if err != nil {
			return v, nil
		}
		u = parsed
	default:
		return "", fmt.Errorf("cannot resolve %T to a URL", target)
	}

	if u.Host != "" {
		if opts.Relative {
			return "", ErrRelativeExternal
		}
		applyQueryFragment(u, opts)
		return u.String(), nil
	}
	if u.Opaque != "" || u.Scheme != "" {
		// mailto:, javascript: and friends pass through untouched
		return u.String(), nil
	}

	if found == nil {
		var err error
		found, err = rv.findTarget(u.Path, opts)
		if err != nil {
			return "", err
		}
	}

	newPath := u.Path
	if found != nil {
		newPath = found.URL()
	}

	// A relative link between two pages is independent of the mount prefix,
	// so it is computed on the bare destination paths. Unresolved relative
	// input stays as given: re-rooting it would change its meaning.
	if opts.Relative && opts.CurrentResource != nil {
		if found != nil || strings.HasPrefix(newPath, "/") {
			baseDir := path.Dir("/" + opts.CurrentResource.DestinationPath)
			newPath = pathutil.RelativePath(baseDir, newPath)
		}
	} else if found != nil {
		newPath = rv.prefixed(newPath)
	}

	out := &url.URL{Path: newPath, RawQuery: u.RawQuery, Fragment: u.Fragment}
	applyQueryFragment(out, opts)
	return out.String(), nil
}

// findTarget implements the resolution order: current-resource-relative
// source lookup first, then an explicit raw by-path lookup, else nil.
func (rv *Resolver) findTarget(p string, opts Options) (*sitemap.Resource, error) {
	if p == "" {
		return nil, nil
	}

	if opts.CurrentResource != nil && !strings.HasPrefix(p, "/") {
		cand := path.Join(path.Dir("/"+opts.CurrentResource.SourcePath), p)
		r, err := rv.store.FindByPath(cand)
		if err != nil {
			return nil, err
		}
		if r != nil {
			return r, nil
		}
	}

	if opts.FindResource {
		return rv.store.FindByPath(p)
	}
	return nil, nil
}

// FullPath resolves p to its canonical destination URL: exact destination
// lookup, then the directory-index convention, then best-effort
// normalization. It never fails.
func (rv *Resolver) FullPath(p string) string {
	norm := pathutil.Normalize(p)
	if err := rv.store.EnsureUpdated(); err != nil {
		return "/" + norm
	}

	gen := rv.store.RebuildCounter()
	rv.mu.Lock()
	if gen != rv.cacheGen {
		rv.cache.Purge()
		rv.cacheGen = gen
	}
	if v, ok := rv.cache.Get(norm); ok {
		rv.mu.Unlock()
		return v
	}
	rv.mu.Unlock()

	out := "/" + norm
	if r, _ := rv.store.FindByDestinationPath(norm); r != nil {
		out = r.URL()
	} else if r, _ := rv.store.FindByDestinationPath(path.Join(norm, rv.indexFile)); r != nil {
		out = r.URL()
	}

	rv.mu.Lock()
	if rv.store.RebuildCounter() == gen {
		rv.cache.Add(norm, out)
	}
	rv.mu.Unlock()
	return out
}

func (rv *Resolver) prefixed(p string) string {
	trailing := strings.HasSuffix(p, "/")
	out := path.Join(rv.httpPrefix, p)
	if !strings.HasPrefix(out, "/") {
		out = "/" + out
	}
	if trailing && !strings.HasSuffix(out, "/") {
		out += "/"
	}
	return out
}

func applyQueryFragment(u *url.URL, opts Options) {
	switch q := opts.Query.(type) {
	case nil:
	case string:
		u.RawQuery = q
	case url.Values:
		u.RawQuery = q.Encode()
	case map[string]string:
		vals := url.Values{}
		for k, v := range q {
			vals.Set(k, v)
		}
		u.RawQuery = vals.Encode()
	}

	if opts.Fragment != "" {
		u.Fragment = opts.Fragment
	}
	if opts.Anchor != "" {
		u.Fragment = opts.Anchor
	}
}
