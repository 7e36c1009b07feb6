package pathutil

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"about.html", "about.html"},
		{"/about.html", "about.html"},
		{"//blog//post.html", "blog/post.html"},
		{"./blog/../about.html", "about.html"},
		{"blog\\post.html", "blog/post.html"},
		{"/", ""},
		{"", ""},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, Normalize(c.in), "Normalize(%q)", c.in)
	}
}

func TestStripTemplateExt(t *testing.T) {
	assert.Equal(t, "about.html", StripTemplateExt("about.html.erb"))
	assert.Equal(t, "about.html", StripTemplateExt("about.html"))
	assert.Equal(t, "style.css", StripTemplateExt("style.css"))
	assert.Equal(t, "page.html", StripTemplateExt("page.html.haml"))
}

func TestExtensionlessPath(t *testing.T) {
	assert.Equal(t, "about", ExtensionlessPath("about.html.erb"))
	assert.Equal(t, "blog/post", ExtensionlessPath("blog/post.html"))
}

func TestSplitLocaleExt(t *testing.T) {
	known := func(s string) bool { return s == "en" || s == "fr" }

	lp, ok := SplitLocaleExt("about.fr.html.erb", known)
	require.True(t, ok)
	assert.Equal(t, "fr", lp.Locale)
	assert.Equal(t, "about.html.erb", lp.Canonical)
	assert.Equal(t, "about", lp.PageID)

	lp, ok = SplitLocaleExt("docs/intro.en.html", known)
	require.True(t, ok)
	assert.Equal(t, "en", lp.Locale)
	assert.Equal(t, "docs/intro.html", lp.Canonical)
	assert.Equal(t, "intro", lp.PageID)

	// unknown locale token is an ordinary filename component
	_, ok = SplitLocaleExt("about.xx.html.erb", known)
	assert.False(t, ok)

	// too few dot segments
	_, ok = SplitLocaleExt("about.html", known)
	assert.False(t, ok)
	_, ok = SplitLocaleExt("about.fr", known)
	assert.False(t, ok)
}

func TestIndexPath(t *testing.T) {
	assert.Equal(t, "index.html", IndexPath("", "index.html"))
	assert.Equal(t, "blog/index.html", IndexPath("blog/", "index.html"))
	assert.Equal(t, "blog/post.html", IndexPath("blog/post.html", "index.html"))
}

func TestRelativePath(t *testing.T) {
	cases := []struct {
		base, target, want string
	}{
		{"blog", "blog/2020/page.html", "2020/page.html"},
		{"blog", "blog/2020/", "2020/"},
		{"blog/2020", "about.html", "../../about.html"},
		{"", "about.html", "about.html"},
		{"blog", "blog", "./"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, RelativePath(c.base, c.target), "RelativePath(%q, %q)", c.base, c.target)
	}
}

func TestMatcherFor(t *testing.T) {
	m, err := MatcherFor("about.html")
	require.NoError(t, err)
	assert.True(t, m.Match("about.html"))
	assert.True(t, m.Match("/about.html"))
	assert.False(t, m.Match("blog/about.html"))

	m, err = MatcherFor("locales/**/*.yml")
	require.NoError(t, err)
	assert.True(t, m.Match("locales/fr.yml"))
	assert.True(t, m.Match("locales/deep/fr.yml"))
	assert.False(t, m.Match("locales/fr.yaml"))

	m, err = MatcherFor("data/**/*.{yml,yaml}")
	require.NoError(t, err)
	assert.True(t, m.Match("data/fr.yaml"))
	assert.True(t, m.Match("data/a/b/en.yml"))

	m, err = MatcherFor(regexp.MustCompile(`\.tmp$`))
	require.NoError(t, err)
	assert.True(t, m.Match("cache/x.tmp"))
	assert.False(t, m.Match("cache/x.html"))

	m, err = MatcherFor(func(p string) bool { return p == "special" })
	require.NoError(t, err)
	assert.True(t, m.Match("special"))

	_, err = MatcherFor(42)
	assert.Error(t, err)
}
