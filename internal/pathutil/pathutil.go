package pathutil

import (
	"path"
	"path/filepath"
	"strings"
)

// TemplateExtensions lists the file extensions treated as template wrappers:
// they are kept on source paths but stripped when computing output paths.
var TemplateExtensions = map[string]bool{
	".erb":  true,
	".haml": true,
	".slim": true,
	".tpl":  true,
}

// Normalize converts p to slash form, cleans it and drops any leading
// slashes so that all sitemap paths share one representation.
func Normalize(p string) string {
	p = strings.TrimSpace(filepath.ToSlash(p))
	p = path.Clean("/" + p)
	if p == "/" {
		return ""
	}
	return strings.TrimPrefix(p, "/")
}

// HasTemplateExt reports whether the final extension of p is a template
// wrapper extension.
func HasTemplateExt(p string) bool {
	return TemplateExtensions[path.Ext(p)]
}

// StripTemplateExt removes a single trailing template extension:
// about.html.erb -> about.html. Non-template extensions are left alone.
func StripTemplateExt(p string) string {
	if ext := path.Ext(p); TemplateExtensions[ext] {
		return strings.TrimSuffix(p, ext)
	}
	return p
}

// ExtensionlessPath removes the final extension from p, template wrappers
// included: about.html.erb -> about.
func ExtensionlessPath(p string) string {
	p = StripTemplateExt(p)
	return strings.TrimSuffix(p, path.Ext(p))
}

// LocaleParts is the result of recognizing a filename locale override.
type LocaleParts struct {
	Locale    string // the matched locale token
	Canonical string // the path with the locale segment removed
	PageID    string // basename up to the first dot, e.g. "about"
}

// SplitLocaleExt recognizes a locale carried as the second-to-last dot
// segment of the basename, template wrapper excluded:
// about.fr.html.erb -> locale "fr", canonical about.html.erb, page id "about".
// known decides whether a candidate token is a locale at all; unknown tokens
// are ordinary filename components. Basenames with fewer than 3 dot segments
// cannot carry a locale.
func SplitLocaleExt(p string, known func(string) bool) (LocaleParts, bool) {
	dir, base := path.Split(p)

	tmplExt := ""
	if ext := path.Ext(base); TemplateExtensions[ext] {
		tmplExt = ext
		base = strings.TrimSuffix(base, ext)
	}

	bits := strings.Split(base, ".")
	if len(bits) < 3 {
		return LocaleParts{}, false
	}

	cand := bits[len(bits)-2]
	if known == nil || !known(cand) {
		return LocaleParts{}, false
	}

	bits = append(bits[:len(bits)-2], bits[len(bits)-1])
	return LocaleParts{
		Locale:    cand,
		Canonical: dir + strings.Join(bits, ".") + tmplExt,
		PageID:    bits[0],
	}, true
}

// IndexPath appends indexFile when p names a directory (empty or trailing
// slash); otherwise p is returned cleaned.
func IndexPath(p, indexFile string) string {
	if p == "" || strings.HasSuffix(p, "/") {
		return Normalize(p + indexFile)
	}
	return Normalize(p)
}

// RelativePath computes target relative to baseDir, both given as
// slash-separated absolute-style paths. A trailing slash on target is
// preserved so directory URLs stay directory URLs.
func RelativePath(baseDir, target string) string {
	trailing := strings.HasSuffix(target, "/")

	base := strings.Split(strings.Trim(path.Clean("/"+baseDir), "/"), "/")
	if len(base) == 1 && base[0] == "" {
		base = nil
	}
	targ := strings.Split(strings.Trim(path.Clean("/"+target), "/"), "/")
	if len(targ) == 1 && targ[0] == "" {
		targ = nil
	}

	common := 0
	for common < len(base) && common < len(targ) && base[common] == targ[common] {
		common++
	}

	var parts []string
	for i := common; i < len(base); i++ {
		parts = append(parts, "..")
	}
	parts = append(parts, targ[common:]...)

	rel := strings.Join(parts, "/")
	if rel == "" {
		rel = "./"
	} else if trailing {
		rel += "/"
	}
	return rel
}
