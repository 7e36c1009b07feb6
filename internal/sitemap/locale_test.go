package sitemap

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robclancy/middleman/internal/i18n"
)

func newTestLocales(t *testing.T, defaultLocale string) *i18n.Locales {
	t.Helper()
	dir := t.TempDir()
	err := os.WriteFile(filepath.Join(dir, "fr.yml"), []byte("fr:\n  paths:\n    about: a-propos\n"), 0644)
	require.NoError(t, err)
	return i18n.New(dir, []string{"en", "fr"}, defaultLocale)
}

func localeStore(t *testing.T, stage *LocaleStage, paths ...string) *Store {
	t.Helper()
	s := NewStore()
	s.RegisterManipulator("disk", appendStage(paths...), 10)
	s.RegisterManipulatorDefault("i18n", stage)
	return s
}

func findDest(t *testing.T, s *Store, dest string) *Resource {
	t.Helper()
	r, err := s.FindByDestinationPath(dest)
	require.NoError(t, err)
	return r
}

func TestLocaleExtensionSingleDerivative(t *testing.T) {
	stage, err := NewLocaleStage(newTestLocales(t, "en"), LocaleConfig{})
	require.NoError(t, err)
	s := localeStore(t, stage, "about.fr.html.erb")

	list, err := s.Resources(true)
	require.NoError(t, err)
	require.Len(t, list, 2) // original + one locale-fixed derivative

	derived := findDest(t, s, "fr/a-propos.html")
	require.NotNil(t, derived)
	assert.Equal(t, "about.fr.html.erb", derived.ProxySource)
	assert.Equal(t, "fr", derived.Metadata.Options["lang"])
	assert.Equal(t, "a-propos", derived.Metadata.Locals["page_id"])
}

func TestUnknownLocaleTokenIsOrdinaryFile(t *testing.T) {
	stage, err := NewLocaleStage(newTestLocales(t, "en"), LocaleConfig{})
	require.NoError(t, err)
	s := localeStore(t, stage, "about.xx.html.erb")

	list, err := s.Resources(true)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "en", list[0].Metadata.Options["lang"])
}

func TestTemplatesDirDuplicatesAcrossLocales(t *testing.T) {
	stage, err := NewLocaleStage(newTestLocales(t, "en"), LocaleConfig{})
	require.NoError(t, err)
	s := localeStore(t, stage, "localizable/about.html.erb")

	list, err := s.Resources(true)
	require.NoError(t, err)
	require.Len(t, list, 3) // original + en + fr

	// default locale mounts at root, no prefix
	en := findDest(t, s, "about.html")
	require.NotNil(t, en)
	assert.Equal(t, "en", en.Metadata.Options["lang"])
	assert.Equal(t, "localizable/about.html.erb", en.ProxySource)

	// other locales mount under the prefix template, slug translated
	fr := findDest(t, s, "fr/a-propos.html")
	require.NotNil(t, fr)
	assert.Equal(t, "fr", fr.Metadata.Options["lang"])
}

func TestImplicitDefaultIsFirstKnownLocale(t *testing.T) {
	stage, err := NewLocaleStage(newTestLocales(t, ""), LocaleConfig{})
	require.NoError(t, err)
	s := localeStore(t, stage, "localizable/index.html.erb")

	// "en" is first in the configured set, so it mounts at root
	en := findDest(t, s, "index.html")
	require.NotNil(t, en)
	assert.Equal(t, "en", en.Metadata.Options["lang"])

	fr := findDest(t, s, "fr/index.html")
	require.NotNil(t, fr)
}

func TestLocaleRenameMap(t *testing.T) {
	stage, err := NewLocaleStage(newTestLocales(t, "en"), LocaleConfig{
		Renames: map[string]string{"fr": "french"},
	})
	require.NoError(t, err)
	s := localeStore(t, stage, "localizable/index.html.erb")

	fr := findDest(t, s, "french/index.html")
	require.NotNil(t, fr)
	assert.Equal(t, "fr", fr.Metadata.Options["lang"])
}

func TestCustomPrefixTemplate(t *testing.T) {
	stage, err := NewLocaleStage(newTestLocales(t, "en"), LocaleConfig{
		PrefixTemplate: "/lang-:locale/",
	})
	require.NoError(t, err)
	s := localeStore(t, stage, "localizable/index.html.erb")

	fr := findDest(t, s, "lang-fr/index.html")
	require.NotNil(t, fr)
}

func TestPassThroughKeepsExistingLang(t *testing.T) {
	stage, err := NewLocaleStage(newTestLocales(t, "en"), LocaleConfig{})
	require.NoError(t, err)

	s := NewStore()
	s.RegisterManipulator("tagged", TransformFunc(func(list []*Resource) ([]*Resource, error) {
		r := NewResource("tagged.html", "tagged.html")
		r.Metadata.Options["lang"] = "de"
		return append(list, r), nil
	}), 10)
	s.RegisterManipulatorDefault("i18n", stage)

	list, err := s.Resources(true)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "de", list[0].Metadata.Options["lang"])
}
