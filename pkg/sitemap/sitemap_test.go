package sitemap

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robclancy/middleman/pkg/config"
)

func write(t *testing.T, root, rel, content string) {
	t.Helper()
	full := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(full), 0755))
	require.NoError(t, os.WriteFile(full, []byte(content), 0644))
}

func testConfig(t *testing.T) *config.Configuration {
	t.Helper()
	root := t.TempDir()
	write(t, root, "src/index.html.erb", "home")
	write(t, root, "src/localizable/about.html.erb", "about")
	write(t, root, "locales/fr.yml", "fr:\n  paths:\n    about: a-propos\n")

	cfg := *config.DefaultConfiguration
	cfg.SrcDir = filepath.Join(root, "src")
	cfg.DataDir = filepath.Join(root, "locales")
	cfg.I18n.Locales = []string{"en", "fr"}
	cfg.I18n.RootLocale = "en"
	cfg.Redirects = []config.RedirectRule{{From: "old.html", To: "/index.html"}}
	return &cfg
}

func TestSiteWiring(t *testing.T) {
	site, err := New(testConfig(t))
	require.NoError(t, err)

	visible, err := site.Store.Resources(false)
	require.NoError(t, err)

	dests := make([]string, 0, len(visible))
	for _, r := range visible {
		dests = append(dests, r.DestinationPath)
	}
	assert.ElementsMatch(t, []string{
		"index.html",       // plain page
		"old.html",         // redirect
		"about.html",       // root locale, mounted at root
		"fr/a-propos.html", // fr locale, translated slug under prefix
	}, dests)

	// localizable originals are ignored but still resolvable
	orig, err := site.Store.FindByPath("localizable/about.html.erb")
	require.NoError(t, err)
	require.NotNil(t, orig)
	assert.True(t, site.Store.IsIgnored(orig))

	assert.Equal(t, "/fr/a-propos.html", site.Resolver.FullPath("fr/a-propos.html"))
}

func TestSiteLocaleDataChangeNotification(t *testing.T) {
	cfg := testConfig(t)
	site, err := New(cfg)
	require.NoError(t, err)

	_, err = site.Store.Resources(false)
	require.NoError(t, err)
	c1 := site.Store.RebuildCounter()

	write(t, filepath.Dir(cfg.DataDir), "locales/fr.yml", "fr:\n  paths:\n    about: apropos\n")
	assert.True(t, site.Store.FileChanged(filepath.Join(cfg.DataDir, "fr.yml")))

	r, err := site.Store.FindByDestinationPath("fr/apropos.html")
	require.NoError(t, err)
	assert.NotNil(t, r)
	assert.Greater(t, site.Store.RebuildCounter(), c1)
}
