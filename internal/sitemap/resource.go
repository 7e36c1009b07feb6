// Package sitemap builds and indexes the list of publishable resources.
// The list is produced by a priority-ordered chain of manipulators, re-run
// lazily whenever the store is invalidated.
package sitemap

import (
	"strings"

	"github.com/robclancy/middleman/internal/pathutil"
)

// Resource is one publishable item: a source identity, a computed
// destination path and accumulated metadata. Resources are rebuilt fresh on
// every pipeline pass and only mutated by stages within that pass.
type Resource struct {
	// SourcePath identifies the logical source item, normalized, template
	// extension retained.
	SourcePath string

	// DestinationPath is the output-relative path used for URL generation.
	// It must be unique across the non-ignored resource set.
	DestinationPath string

	// ProxySource, when non-empty, is the source path of the resource this
	// one renders through. Destination path and metadata stay independent.
	ProxySource string

	Metadata Metadata
}

// NewResource builds a resource with both paths normalized and empty
// metadata maps. A trailing slash on the destination survives
// normalization: directory URLs must stay directory URLs.
func NewResource(source, destination string) *Resource {
	dest := pathutil.Normalize(destination)
	if dest != "" && strings.HasSuffix(destination, "/") {
		dest += "/"
	}
	return &Resource{
		SourcePath:      pathutil.Normalize(source),
		DestinationPath: dest,
		Metadata:        NewMetadata(),
	}
}

// ProxyTo points this resource at another resource's source.
func (r *Resource) ProxyTo(source string) {
	r.ProxySource = pathutil.Normalize(source)
}

// URL is the site-absolute URL of the resource.
func (r *Resource) URL() string {
	return "/" + r.DestinationPath
}

// Option reads a single Options key.
func (r *Resource) Option(key string) (interface{}, bool) {
	v, ok := r.Metadata.Options[key]
	return v, ok
}
