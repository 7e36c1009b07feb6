package builder

import (
	"fmt"
	"io"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/robclancy/middleman/internal/helpers"
	"github.com/robclancy/middleman/internal/sitemap"
	"github.com/robclancy/middleman/internal/tlogger"
)

const indexPage = "index.html"

// Build writes every non-ignored resource of the sitemap into BuildDir.
func (b *Builder) Build() error {
	resources, err := b.Store.Resources(false)
	if err != nil {
		tlogger.Error("msg", "Sitemap rebuild failed", "err", err)
		return err
	}

	err = os.RemoveAll(b.BuildDir)
	if err != nil {
		tlogger.Error("msg", "Failed to remove build folder", "path", b.BuildDir, "err", err)
		return err
	}
	err = os.MkdirAll(b.BuildDir, 0755)
	if err != nil {
		tlogger.Error("msg", "Failed to create build folder", "path", b.BuildDir, "err", err)
		return err
	}

	tlogger.Info("msg", "Building started", "path", b.SrcDir, "resources", len(resources))
	defer tlogger.Info("msg", "Building finished", "path", b.BuildDir)

	var filewriter FileWriter = &NOOPMinifier{}
	if b.Minify {
		filewriter = newMinifier()
	}

	manifest := make([]ManifestEntry, 0, len(resources))
	for _, r := range resources {
		dest := r.DestinationPath
		if strings.HasSuffix(dest, "/") {
			dest += indexPage
		}

		if err := b.emit(r, dest, filewriter); err != nil {
			tlogger.Error("msg", "Error writing resource", "destination", dest, "err", err)
			return err
		}

		manifest = append(manifest, ManifestEntry{
			Source:      r.SourcePath,
			Destination: r.DestinationPath,
			URL:         b.Resolver.FullPath(r.DestinationPath),
			Proxy:       r.ProxySource,
		})
	}

	return helpers.WriteJsonFile(filepath.Join(b.BuildDir, "manifest.json"), manifest)
}

func (b *Builder) emit(r *sitemap.Resource, dest string, filewriter FileWriter) error {
	outPath := filepath.Join(b.BuildDir, filepath.FromSlash(dest))
	if err := os.MkdirAll(filepath.Dir(outPath), 0755); err != nil {
		return err
	}

	if to, ok := r.Option("redirect_to"); ok {
		target, _ := to.(string)
		return b.writeRedirect(outPath, target)
	}

	src, err := b.backingSource(r)
	if err != nil {
		return err
	}

	in, err := os.Open(filepath.Join(b.SrcDir, filepath.FromSlash(src)))
	if err != nil {
		return err
	}
	defer in.Close()

	of, err := os.OpenFile(outPath, os.O_CREATE|os.O_TRUNC|os.O_RDWR, 0644)
	if err != nil {
		return err
	}

	wr := filewriter.Writer(mediatype(dest), of)
	if _, err := io.Copy(wr, in); err != nil {
		wr.Close()
		return err
	}
	return wr.Close()
}

// backingSource follows the proxy chain down to a real source file.
func (b *Builder) backingSource(r *sitemap.Resource) (string, error) {
	cur := r
	for depth := 0; cur.ProxySource != ""; depth++ {
		if depth > 5 {
			return "", fmt.Errorf("proxy chain too deep for %s, proxy loop ?", r.SourcePath)
		}
		next, err := b.Store.FindByPath(cur.ProxySource)
		if err != nil {
			return "", err
		}
		if next == nil || next == cur {
			// proxy to a source the sitemap doesn't track, use it as-is
			return cur.ProxySource, nil
		}
		cur = next
	}
	return cur.SourcePath, nil
}

func (b *Builder) writeRedirect(outPath, target string) error {
	body := fmt.Sprintf(`<!DOCTYPE html>
<html><head><meta http-equiv="refresh" content="0; url=%s"><link rel="canonical" href="%s"></head>
<body><a href="%s">Moved here</a></body></html>
`, target, target, target)
	return os.WriteFile(outPath, []byte(body), 0644)
}

func mediatype(dest string) string {
	ctype := mime.TypeByExtension(filepath.Ext(dest))
	if i := strings.IndexByte(ctype, ';'); i >= 0 {
		ctype = ctype[:i]
	}
	return ctype
}
