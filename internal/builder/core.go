package builder

import (
	"github.com/robclancy/middleman/internal/resolver"
	"github.com/robclancy/middleman/internal/sitemap"
)

// Builder materializes the sitemap: every non-ignored resource is written
// to BuildDir at its destination path, content read from the source tree
// through the resource's proxy chain.
type Builder struct {
	SrcDir   string
	BuildDir string

	Store    *sitemap.Store
	Resolver *resolver.Resolver

	// Minify passes css/js/html output through the minifying writer.
	Minify bool
}

func NewBuilder(srcDir, buildDir string, store *sitemap.Store, rv *resolver.Resolver) *Builder {
	return &Builder{
		SrcDir:   srcDir,
		BuildDir: buildDir,
		Store:    store,
		Resolver: rv,
	}
}

// ManifestEntry is one line of the build manifest.
type ManifestEntry struct {
	Source      string `json:"source"`
	Destination string `json:"destination"`
	URL         string `json:"url"`
	Proxy       string `json:"proxy,omitempty"`
}
