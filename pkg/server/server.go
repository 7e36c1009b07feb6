package server

import (
	"github.com/robclancy/middleman/internal/builder"
	"github.com/robclancy/middleman/internal/server"
	"github.com/robclancy/middleman/pkg/sitemap"
)

type Server interface {
	Start(withBuilder bool) error
}

func NewServer(sourceDir, buildDir, port, override404 string, site *sitemap.Site, minify bool, watchDirs ...string) Server {
	b := builder.NewBuilder(sourceDir, buildDir, site.Store, site.Resolver)
	b.Minify = minify
	return server.NewServer(sourceDir, buildDir, port, override404, site.Store, site.Resolver, b, watchDirs...)
}
