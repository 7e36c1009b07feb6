package urltemplate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpand(t *testing.T) {
	tpl := MustNew("/:locale/")
	assert.Equal(t, "/fr/", tpl.Expand(map[string]string{"locale": "fr"}))
	assert.Equal(t, "/", tpl.Expand(nil))

	tpl = MustNew("/{locale}/blog/:title.html")
	assert.Equal(t, "/fr/blog/hello.html", tpl.Expand(map[string]string{"locale": "fr", "title": "hello"}))
}

func TestExtract(t *testing.T) {
	tpl := MustNew("blog/:year/:month/:day/:title.html")

	vars, ok := tpl.Extract("blog/2020/11/03/hello.html")
	require.True(t, ok)
	assert.Equal(t, map[string]string{
		"year":  "2020",
		"month": "11",
		"day":   "03",
		"title": "hello",
	}, vars)

	_, ok = tpl.Extract("blog/2020/hello.html")
	assert.False(t, ok)

	assert.Equal(t, []string{"year", "month", "day", "title"}, tpl.Names())
}

func TestExtractValidDate(t *testing.T) {
	tpl := MustNew("blog/:year/:month/:day/:title.html")
	v := DateLocaleValidator(nil)

	_, ok := tpl.ExtractValid("blog/2020/11/03/hello.html", v)
	assert.True(t, ok)

	_, ok = tpl.ExtractValid("blog/2020/13/03/hello.html", v)
	assert.False(t, ok)

	_, ok = tpl.ExtractValid("blog/2021/02/29/hello.html", v)
	assert.False(t, ok)
}

func TestExtractValidLocale(t *testing.T) {
	known := func(s string) bool { return s == "en" || s == "fr" }
	tpl := MustNew("/:locale/:title.html")
	v := DateLocaleValidator(known)

	vars, ok := tpl.ExtractValid("/fr/about.html", v)
	require.True(t, ok)
	assert.Equal(t, "fr", vars["locale"])

	_, ok = tpl.ExtractValid("/xx/about.html", v)
	assert.False(t, ok)
}
