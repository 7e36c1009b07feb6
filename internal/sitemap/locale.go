package sitemap

import (
	"path"
	"strings"

	"github.com/robclancy/middleman/internal/i18n"
	"github.com/robclancy/middleman/internal/pathutil"
	"github.com/robclancy/middleman/internal/urltemplate"
)

// LocaleConfig configures the locale duplication stage.
type LocaleConfig struct {
	// PrefixTemplate is the URL prefix for non-root locales, with a locale
	// placeholder. Defaults to "/:locale/".
	PrefixTemplate string

	// TemplatesDir is the directory whose contents are duplicated across
	// every configured locale. Defaults to "localizable".
	TemplatesDir string

	// Renames maps a locale to the path token substituted into the prefix
	// template, when it differs from the locale itself.
	Renames map[string]string
}

// LocaleStage duplicates and renames resources per locale. A source can be
// locale-fixed through a filename locale extension (about.fr.html.erb), or
// duplicated across every known locale by living under the templates dir.
// Everything else passes through with a default-locale lang tag.
type LocaleStage struct {
	locales      *i18n.Locales
	prefix       *urltemplate.Template
	templatesDir string
	renames      map[string]string
}

func NewLocaleStage(locales *i18n.Locales, cfg LocaleConfig) (*LocaleStage, error) {
	if cfg.PrefixTemplate == "" {
		cfg.PrefixTemplate = "/:locale/"
	}
	if cfg.TemplatesDir == "" {
		cfg.TemplatesDir = "localizable"
	}
	tpl, err := urltemplate.New(cfg.PrefixTemplate)
	if err != nil {
		return nil, err
	}
	return &LocaleStage{
		locales:      locales,
		prefix:       tpl,
		templatesDir: pathutil.Normalize(cfg.TemplatesDir),
		renames:      cfg.Renames,
	}, nil
}

func (st *LocaleStage) Transform(list []*Resource) ([]*Resource, error) {
	// The mount-at-root locale is resolved once per pass and threaded
	// through every derivation, so one rebuild can't see two defaults.
	def := st.locales.Default()
	known := st.locales.List()

	out := append([]*Resource(nil), list...)
	for _, r := range list {
		if lp, ok := pathutil.SplitLocaleExt(r.SourcePath, st.locales.Known); ok {
			// Locale-fixed file: exactly one derivative for that locale.
			out = append(out, st.localized(r, lp.Canonical, lp.PageID, lp.Locale, def))
			continue
		}

		if st.underTemplatesDir(r.SourcePath) {
			base := strings.TrimPrefix(r.SourcePath, st.templatesDir+"/")
			pageID := pageIDOf(base)
			for _, locale := range known {
				out = append(out, st.localized(r, base, pageID, locale, def))
			}
			continue
		}

		if _, ok := r.Metadata.Options["lang"]; !ok {
			r.Metadata.Options["lang"] = def
			r.Metadata.Locals["lang"] = def
		}
	}
	return out, nil
}

func (st *LocaleStage) underTemplatesDir(p string) bool {
	return st.templatesDir != "" && strings.HasPrefix(p, st.templatesDir+"/")
}

// localized derives one resource of orig for locale. The page id is
// translated through the locale's "paths.<pageId>" table (falling back to
// itself), the path is mounted at root for the default locale and under the
// expanded prefix template otherwise.
func (st *LocaleStage) localized(orig *Resource, canonical, pageID, locale, def string) *Resource {
	translated := pageID
	if v, ok := st.locales.Translate(locale, "paths."+pageID); ok {
		translated = v
	}

	p := pathutil.StripTemplateExt(canonical)
	if translated != pageID {
		dir, base := path.Split(p)
		p = dir + strings.Replace(base, pageID, translated, 1)
	}

	prefix := "/"
	if locale != def {
		token := locale
		if v, ok := st.renames[locale]; ok {
			token = v
		}
		prefix = st.prefix.Expand(map[string]string{"locale": token})
	}

	dest := pathutil.Normalize(path.Join(prefix, p))
	if st.templatesDir != "" {
		dest = strings.TrimPrefix(dest, st.templatesDir+"/")
	}

	nr := NewResource(dest, dest)
	nr.ProxyTo(orig.SourcePath)
	nr.Metadata.Options["lang"] = locale
	nr.Metadata.Locals["lang"] = locale
	nr.Metadata.Locals["page_id"] = translated
	return nr
}

func pageIDOf(p string) string {
	base := path.Base(p)
	if i := strings.IndexByte(base, '.'); i > 0 {
		base = base[:i]
	}
	return base
}
