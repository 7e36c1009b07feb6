// Package i18n owns the configured locale set and the per-locale lookup
// data used for slug translation. Lookups always take the target locale
// explicitly; there is no process-wide current locale.
package i18n

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"github.com/robclancy/middleman/internal/tlogger"
)

// Locales holds the locale set and lazily loaded locale data.
type Locales struct {
	mu sync.Mutex

	dataDir       string
	configured    []string
	defaultLocale string

	loaded bool
	list   []string
	data   map[string]map[string]string
}

// New builds the registry. configured comes from config, defaultLocale may
// be empty (the first known locale then mounts at root). dataDir holds one
// YAML file per locale; it may be missing entirely.
func New(dataDir string, configured []string, defaultLocale string) *Locales {
	for _, tag := range configured {
		if _, err := language.Parse(tag); err != nil {
			tlogger.Warn("i18n", "locales", "msg", "unrecognized locale tag", "tag", tag, "err", err)
		}
	}
	return &Locales{
		dataDir:       dataDir,
		configured:    append([]string(nil), configured...),
		defaultLocale: defaultLocale,
	}
}

// List returns the known locales: the configured set plus any locale that
// has a data file, configured order first. The result is cached until
// DropCache.
func (l *Locales) List() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.loadLocked()
	return append([]string(nil), l.list...)
}

// Known reports whether tag is in the known locale set.
func (l *Locales) Known(tag string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.loadLocked()
	for _, known := range l.list {
		if known == tag {
			return true
		}
	}
	return false
}

// Default returns the mount-at-root locale: the explicitly configured one
// if set, otherwise the first known locale. Empty when no locale is known.
func (l *Locales) Default() string {
	if l.defaultLocale != "" {
		return l.defaultLocale
	}
	list := l.List()
	if len(list) == 0 {
		return ""
	}
	return list[0]
}

// Translate looks key up in the given locale's data.
func (l *Locales) Translate(locale, key string) (string, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.loadLocked()
	v, ok := l.data[locale][key]
	return v, ok
}

// DataGlob is the change-notification pattern covering the locale data
// files; a matching change means the cached list and data must go.
func (l *Locales) DataGlob() string {
	return filepath.ToSlash(filepath.Join(l.dataDir, "**", "*.{yml,yaml}"))
}

// DropCache discards the cached locale list and data so the next read
// reloads from disk.
func (l *Locales) DropCache() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.loaded = false
	l.list = nil
	l.data = nil
}

func (l *Locales) loadLocked() {
	if l.loaded {
		return
	}
	l.loaded = true
	l.data = make(map[string]map[string]string)
	l.list = append([]string(nil), l.configured...)

	if l.dataDir == "" {
		return
	}

	entries, err := os.ReadDir(l.dataDir)
	if err != nil {
		if !os.IsNotExist(err) {
			tlogger.Warn("i18n", "locales", "msg", "can't read locale data dir", "dir", l.dataDir, "err", err)
		}
		return
	}

	var discovered []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := filepath.Ext(e.Name())
		if ext != ".yml" && ext != ".yaml" {
			continue
		}

		file := filepath.Join(l.dataDir, e.Name())
		locale, table, err := loadLocaleFile(file)
		if err != nil {
			tlogger.Error("i18n", "locales", "msg", "can't load locale data", "file", file, "err", err)
			continue
		}

		if prev, ok := l.data[locale]; ok {
			for k, v := range table {
				prev[k] = v
			}
		} else {
			l.data[locale] = table
			discovered = append(discovered, locale)
		}
	}

	sort.Strings(discovered)
	for _, locale := range discovered {
		if !contains(l.list, locale) {
			l.list = append(l.list, locale)
		}
	}
}

// loadLocaleFile reads one YAML locale file. When the document has a single
// top-level mapping key equal to the file's stem (the Rails layout,
// fr.yml: "fr: {...}") the table nests under it; otherwise the stem is the
// locale and the whole document is the table.
func loadLocaleFile(file string) (string, map[string]string, error) {
	b, err := os.ReadFile(file)
	if err != nil {
		return "", nil, err
	}

	var doc map[string]interface{}
	if err := yaml.Unmarshal(b, &doc); err != nil {
		return "", nil, err
	}

	stem := strings.TrimSuffix(filepath.Base(file), filepath.Ext(file))
	if len(doc) == 1 {
		if nested, ok := doc[stem].(map[string]interface{}); ok {
			doc = nested
		}
	}

	table := make(map[string]string)
	flatten("", doc, table)
	return stem, table, nil
}

func flatten(prefix string, m map[string]interface{}, out map[string]string) {
	for k, v := range m {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		switch child := v.(type) {
		case map[string]interface{}:
			flatten(key, child, out)
		case nil:
		default:
			out[key] = fmt.Sprintf("%v", child)
		}
	}
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
