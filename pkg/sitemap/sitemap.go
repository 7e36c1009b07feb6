package sitemap

import (
	"github.com/robclancy/middleman/internal/i18n"
	"github.com/robclancy/middleman/internal/pathutil"
	"github.com/robclancy/middleman/internal/resolver"
	"github.com/robclancy/middleman/internal/sitemap"
	"github.com/robclancy/middleman/pkg/config"
)

// Site bundles a fully wired sitemap: the store with its manipulator chain,
// the locale registry and the URL resolver.
type Site struct {
	Store    *sitemap.Store
	Locales  *i18n.Locales
	Resolver *resolver.Resolver
	Disk     *sitemap.DiskStage
}

// New wires a Site from configuration: disk scan at priority 10, proxies
// and redirects at default priority, locale duplication last, ignores and
// change-notification rules registered with the store.
func New(cfg *config.Configuration) (*Site, error) {
	store := sitemap.NewStore()
	locales := i18n.New(cfg.DataDir, cfg.I18n.Locales, cfg.I18n.RootLocale)

	disk := sitemap.NewDiskStage(cfg.SrcDir)
	store.RegisterManipulator("on_disk", disk, 10)

	if len(cfg.Proxies) > 0 {
		routes := make([]sitemap.ProxyRoute, 0, len(cfg.Proxies))
		for _, p := range cfg.Proxies {
			routes = append(routes, sitemap.ProxyRoute{Destination: p.Destination, Target: p.Target})
		}
		store.RegisterManipulatorDefault("proxies", sitemap.NewProxyStage(routes))
	}

	if len(cfg.Redirects) > 0 {
		redirects := make([]sitemap.Redirect, 0, len(cfg.Redirects))
		for _, rd := range cfg.Redirects {
			redirects = append(redirects, sitemap.Redirect{From: rd.From, To: rd.To})
		}
		store.RegisterManipulatorDefault("redirects", sitemap.NewRedirectStage(redirects))
	}

	localeStage, err := sitemap.NewLocaleStage(locales, sitemap.LocaleConfig{
		PrefixTemplate: cfg.I18n.PrefixTemplate,
		TemplatesDir:   cfg.I18n.TemplatesDir,
		Renames:        cfg.I18n.Renames,
	})
	if err != nil {
		return nil, err
	}
	// locale duplication runs after every resource-producing stage
	store.RegisterManipulator("i18n", localeStage, 60)

	templatesDir := cfg.I18n.TemplatesDir
	if templatesDir == "" {
		templatesDir = "localizable"
	}
	patterns := []interface{}{templatesDir + "/**"}
	for _, p := range cfg.Ignore {
		patterns = append(patterns, p)
	}
	if _, err := sitemap.NewIgnoreStage(store, patterns...); err != nil {
		return nil, err
	}

	store.OnChange(disk.Matcher(), func(p string) { disk.InvalidatePath(p) })

	dataMatcher, err := pathutil.MatcherFor(locales.DataGlob())
	if err != nil {
		return nil, err
	}
	store.OnChange(dataMatcher, func(string) { locales.DropCache() })

	rv := resolver.New(store, resolver.Config{
		HTTPPrefix: cfg.HTTPPrefix,
		IndexFile:  cfg.IndexFile,
		AssetDirs:  cfg.AssetDirs,
		AssetExts:  cfg.AssetExts,
	})

	return &Site{
		Store:    store,
		Locales:  locales,
		Resolver: rv,
		Disk:     disk,
	}, nil
}
