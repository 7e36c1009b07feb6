package sitemap

import (
	"io/fs"
	"path/filepath"
	"strings"
	"sync"

	"github.com/robclancy/middleman/internal/pathutil"
	"github.com/robclancy/middleman/internal/tlogger"
)

// DiskStage emits one resource per file under a source tree. The scan is
// cached between rebuilds and dropped by InvalidatePath, so a rebuild
// without filesystem changes is a pure in-memory pass.
type DiskStage struct {
	dir string

	mu    sync.Mutex
	files []string // relative slash paths, nil when stale
}

func NewDiskStage(dir string) *DiskStage {
	return &DiskStage{dir: dir}
}

// shouldHandle filters out vendor trees, include fragments and dot/underscore
// prefixed components.
func (d *DiskStage) shouldHandle(name string) bool {
	folderList := strings.Split(name, "/")
	if folderList[0] == "vendor" {
		return false
	}
	for _, v := range folderList {
		if v == "includes" {
			return false
		}
		if len(v) > 0 && (v[0] == '.' || v[0] == '_') {
			return false
		}
	}
	return true
}

// InvalidatePath drops the cached scan when path falls under the source
// tree. Reports whether it did.
func (d *DiskStage) InvalidatePath(path string) bool {
	rel, err := filepath.Rel(d.dir, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return false
	}
	d.mu.Lock()
	d.files = nil
	d.mu.Unlock()
	return true
}

// Matcher returns the change-notification predicate for the source tree.
func (d *DiskStage) Matcher() pathutil.Matcher {
	return pathutil.FuncMatcher(func(p string) bool {
		rel, err := filepath.Rel(d.dir, p)
		return err == nil && !strings.HasPrefix(rel, "..")
	})
}

func (d *DiskStage) Transform(list []*Resource) ([]*Resource, error) {
	files, err := d.scan()
	if err != nil {
		return nil, err
	}

	out := append([]*Resource(nil), list...)
	for _, f := range files {
		r := NewResource(f, pathutil.StripTemplateExt(f))
		out = append(out, r)
	}
	return out, nil
}

func (d *DiskStage) scan() ([]string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.files != nil {
		return d.files, nil
	}

	files := []string{}
	err := filepath.Walk(d.dir, func(absolutepath string, info fs.FileInfo, err error) error {
		if err != nil {
			return err
		}
		path, err := filepath.Rel(d.dir, absolutepath)
		if err != nil {
			tlogger.Error("msg", "Failed to get relative path", "path", absolutepath, "err", err)
			return err
		}
		path = filepath.ToSlash(path)
		if path == "." {
			return nil
		}
		if !d.shouldHandle(path) {
			if info.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if !info.IsDir() {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	d.files = files
	return files, nil
}
