package i18n

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeLocale(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
}

func TestListAndDefault(t *testing.T) {
	dir := t.TempDir()
	writeLocale(t, dir, "fr.yml", "fr:\n  paths:\n    about: a-propos\n")
	writeLocale(t, dir, "es.yml", "paths:\n  about: acerca\n")

	l := New(dir, []string{"en", "fr"}, "")
	assert.Equal(t, []string{"en", "fr", "es"}, l.List())
	assert.Equal(t, "en", l.Default())

	assert.True(t, l.Known("es"))
	assert.False(t, l.Known("xx"))

	l = New(dir, []string{"en", "fr"}, "fr")
	assert.Equal(t, "fr", l.Default())
}

func TestTranslate(t *testing.T) {
	dir := t.TempDir()
	writeLocale(t, dir, "fr.yml", "fr:\n  paths:\n    about: a-propos\n    blog: journal\n")

	l := New(dir, []string{"en", "fr"}, "en")

	v, ok := l.Translate("fr", "paths.about")
	require.True(t, ok)
	assert.Equal(t, "a-propos", v)

	_, ok = l.Translate("fr", "paths.missing")
	assert.False(t, ok)

	_, ok = l.Translate("en", "paths.about")
	assert.False(t, ok)
}

func TestDropCacheReloads(t *testing.T) {
	dir := t.TempDir()
	l := New(dir, []string{"en"}, "")
	assert.Equal(t, []string{"en"}, l.List())

	writeLocale(t, dir, "fr.yml", "fr:\n  paths:\n    about: a-propos\n")

	// still cached
	assert.Equal(t, []string{"en"}, l.List())

	l.DropCache()
	assert.Equal(t, []string{"en", "fr"}, l.List())
	_, ok := l.Translate("fr", "paths.about")
	assert.True(t, ok)
}

func TestDataGlob(t *testing.T) {
	l := New("locales", []string{"en"}, "")
	assert.Equal(t, "locales/**/*.{yml,yaml}", l.DataGlob())
}

func TestMissingDataDir(t *testing.T) {
	l := New(filepath.Join(t.TempDir(), "nope"), []string{"en"}, "")
	assert.Equal(t, []string{"en"}, l.List())
	_, ok := l.Translate("en", "anything")
	assert.False(t, ok)
}
