// Package urltemplate wraps path patterns written either colon style
// (/:locale/:title.html) or brace style (/{locale}/{title}.html) and turns
// them into expandable, extractable templates.
package urltemplate

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

var placeholderRegexp = regexp.MustCompile(`:([A-Za-z_][A-Za-z0-9_]*)|\{([A-Za-z_][A-Za-z0-9_]*)\}`)

// Template is a compiled path pattern.
type Template struct {
	raw   string
	names []string
	re    *regexp.Regexp
}

// New compiles pattern. Both placeholder styles may be mixed; everything
// else is matched literally.
func New(pattern string) (*Template, error) {
	t := &Template{raw: pattern}

	var b strings.Builder
	b.WriteString("^")
	last := 0
	for _, loc := range placeholderRegexp.FindAllStringSubmatchIndex(pattern, -1) {
		b.WriteString(regexp.QuoteMeta(pattern[last:loc[0]]))

		name := ""
		if loc[2] >= 0 {
			name = pattern[loc[2]:loc[3]]
		} else {
			name = pattern[loc[4]:loc[5]]
		}
		t.names = append(t.names, name)
		fmt.Fprintf(&b, `(?P<%s>[^/]+)`, name)
		last = loc[1]
	}
	b.WriteString(regexp.QuoteMeta(pattern[last:]))
	b.WriteString("$")

	re, err := regexp.Compile(b.String())
	if err != nil {
		return nil, fmt.Errorf("compile pattern %q: %w", pattern, err)
	}
	t.re = re
	return t, nil
}

// MustNew is New for patterns known good at compile time.
func MustNew(pattern string) *Template {
	t, err := New(pattern)
	if err != nil {
		panic(err)
	}
	return t
}

// Pattern returns the original pattern string.
func (t *Template) Pattern() string {
	return t.raw
}

// Names returns the placeholder names in order of appearance.
func (t *Template) Names() []string {
	return append([]string(nil), t.names...)
}

// Expand substitutes vars into the pattern. Placeholders without a value
// expand to the empty string and duplicate slashes are collapsed.
func (t *Template) Expand(vars map[string]string) string {
	out := placeholderRegexp.ReplaceAllStringFunc(t.raw, func(m string) string {
		name := strings.Trim(m, ":{}")
		return vars[name]
	})
	for strings.Contains(out, "//") {
		out = strings.ReplaceAll(out, "//", "/")
	}
	return out
}

// Extract matches p against the pattern and returns the captured vars.
func (t *Template) Extract(p string) (map[string]string, bool) {
	m := t.re.FindStringSubmatch(p)
	if m == nil {
		return nil, false
	}
	vars := make(map[string]string, len(t.names))
	for i, name := range t.re.SubexpNames() {
		if i > 0 && name != "" {
			vars[name] = m[i]
		}
	}
	return vars, true
}

// Validator vets extracted vars; returning false rejects the whole match.
type Validator func(vars map[string]string) bool

// ExtractValid is Extract with a post-match validator.
func (t *Template) ExtractValid(p string, v Validator) (map[string]string, bool) {
	vars, ok := t.Extract(p)
	if !ok || (v != nil && !v(vars)) {
		return nil, false
	}
	return vars, true
}

// DateLocaleValidator builds a Validator that rejects matches whose
// year/month/day captures do not form a real calendar date, or whose
// locale/lang capture is not a known locale. Absent captures are not
// checked.
func DateLocaleValidator(known func(string) bool) Validator {
	return func(vars map[string]string) bool {
		if y, ok := vars["year"]; ok {
			layout, value := "2006", y
			if m, ok := vars["month"]; ok {
				layout, value = layout+"-01", value+"-"+m
				if d, ok := vars["day"]; ok {
					layout, value = layout+"-02", value+"-"+d
				}
			}
			if _, err := time.Parse(layout, value); err != nil {
				return false
			}
		}
		if known != nil {
			for _, key := range []string{"locale", "lang"} {
				if l, ok := vars[key]; ok && !known(l) {
					return false
				}
			}
		}
		return true
	}
}
