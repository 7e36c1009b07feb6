package builder

import (
	"github.com/robclancy/middleman/internal/builder"
	"github.com/robclancy/middleman/pkg/sitemap"
)

type Builder interface {
	Build() error
}

func NewBuilder(srcDir, buildDir string, site *sitemap.Site, minify bool) Builder {
	b := builder.NewBuilder(srcDir, buildDir, site.Store, site.Resolver)
	b.Minify = minify
	return b
}
