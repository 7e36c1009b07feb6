package resolver

import (
	"path"
	"strings"

	"github.com/robclancy/middleman/internal/pathutil"
)

// AssetPath builds the conventional path for an asset of the given kind:
// folder prefix from configuration plus the kind extension when missing
// (kinds without a configured extension, images and fonts, are exempt),
// then resolves it like AssetURL.
func (rv *Resolver) AssetPath(kind, source string) string {
	source = strings.TrimSpace(source)
	if ext, ok := rv.assetExts[kind]; ok && !strings.HasSuffix(source, ext) {
		source += ext
	}
	if !strings.HasPrefix(source, "/") {
		source = path.Join(rv.assetDirs[kind], source)
	}
	return rv.AssetURL(source, Options{})
}

// AssetURL resolves an asset path through the sitemap, falling back to
// httpPrefix + path when no resource tracks it (the common case for assets
// outside the sitemap). It never fails.
func (rv *Resolver) AssetURL(p string, opts Options) string {
	norm := pathutil.Normalize(p)

	if r, err := rv.store.FindByDestinationPath(norm); err == nil && r != nil {
		if out, err := rv.ResolveURL(r, opts); err == nil {
			return out
		}
	}
	return rv.prefixed("/" + norm)
}
