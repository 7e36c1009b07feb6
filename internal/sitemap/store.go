package sitemap

import (
	"fmt"

	"sync"

	"github.com/davecgh/go-spew/spew"

	"github.com/robclancy/middleman/internal/pathutil"
	"github.com/robclancy/middleman/internal/tlogger"
)

// Store owns the manipulator chain and the lazily rebuilt resource list with
// its two lookup indices. A single coarse lock guards the dirty flag, the
// rebuild and every read, so no caller ever observes a list/index pair from
// two different rebuilds.
type Store struct {
	mu sync.Mutex

	manipulators []registration
	regSeq       int

	resources     []*Resource
	byPath        map[string]*Resource
	byDestination map[string]*Resource

	ignores      []pathutil.Matcher
	ignoredCache map[string]bool
	visible      []*Resource // cached non-ignored view, nil when stale

	watchRules []watchRule

	counter uint64
	dirty   bool
}

type watchRule struct {
	matcher  pathutil.Matcher
	callback func(path string)
}

func NewStore() *Store {
	return &Store{
		byPath:        make(map[string]*Resource),
		byDestination: make(map[string]*Resource),
		ignoredCache:  make(map[string]bool),
	}
}

// RegisterManipulator appends a stage and marks the store dirty. Stages run
// in ascending priority, ties in registration order. Duplicate names are
// permitted and both run.
func (s *Store) RegisterManipulator(name string, stage Manipulator, priority int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.manipulators = append(s.manipulators, registration{
		name:     name,
		stage:    stage,
		priority: priority,
		order:    s.regSeq,
	})
	s.regSeq++
	s.dirty = true
}

// RegisterManipulatorDefault registers at DefaultPriority.
func (s *Store) RegisterManipulatorDefault(name string, stage Manipulator) {
	s.RegisterManipulator(name, stage, DefaultPriority)
}

// Invalidate marks the store dirty; the next read re-runs the whole chain.
// Idempotent.
func (s *Store) Invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dirty = true
}

// RebuildCounter increments exactly once per completed rebuild. External
// caches keyed by it must treat any change as "everything may have changed".
func (s *Store) RebuildCounter() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.counter
}

// FindByPath looks a resource up by source path. The lookup normalizes the
// query and also accepts the template-extension-stripped form.
func (s *Store) FindByPath(p string) (*Resource, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureUpdated(); err != nil {
		return nil, err
	}
	p = pathutil.Normalize(p)
	if r, ok := s.byPath[p]; ok {
		return r, nil
	}
	if r, ok := s.byPath[pathutil.StripTemplateExt(p)]; ok {
		return r, nil
	}
	return nil, nil
}

// FindByDestinationPath looks a resource up by destination path.
func (s *Store) FindByDestinationPath(p string) (*Resource, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureUpdated(); err != nil {
		return nil, err
	}
	r := s.byDestination[pathutil.Normalize(p)]
	return r, nil
}

// Resources returns the resource list, by default without ignored entries.
// The returned slice is a copy; the resources themselves are shared.
func (s *Store) Resources(includeIgnored bool) ([]*Resource, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureUpdated(); err != nil {
		return nil, err
	}
	if includeIgnored {
		return append([]*Resource(nil), s.resources...), nil
	}
	if s.visible == nil {
		s.visible = make([]*Resource, 0, len(s.resources))
		for _, r := range s.resources {
			if !s.isIgnoredLocked(r) {
				s.visible = append(s.visible, r)
			}
		}
	}
	return append([]*Resource(nil), s.visible...), nil
}

// AddIgnore registers an ignore predicate. Ignored resources stay in the
// list and remain resolvable by path, they are only excluded from the
// default enumeration.
func (s *Store) AddIgnore(m pathutil.Matcher) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ignores = append(s.ignores, m)
	s.ignoredCache = make(map[string]bool)
	s.visible = nil
	s.dirty = true
}

// IsIgnored reports whether any ignore predicate marks r.
func (s *Store) IsIgnored(r *Resource) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.isIgnoredLocked(r)
}

func (s *Store) isIgnoredLocked(r *Resource) bool {
	if v, ok := s.ignoredCache[r.SourcePath]; ok {
		return v
	}
	ignored := false
	for _, m := range s.ignores {
		if m.Match(r.SourcePath) {
			ignored = true
			break
		}
	}
	s.ignoredCache[r.SourcePath] = ignored
	return ignored
}

// EnsureUpdated forces a rebuild if the store is dirty. Reads do this on
// their own; it is exposed so callers can surface rebuild errors eagerly.
func (s *Store) EnsureUpdated() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ensureUpdated()
}

// ensureUpdated runs the full chain under the held lock. On a stage error
// the store stays dirty and nothing is published, so the next read retries
// the identical rebuild.
func (s *Store) ensureUpdated() error {
	if !s.dirty {
		return nil
	}

	var list []*Resource
	for _, reg := range sortedRegistrations(s.manipulators) {
		out, err := reg.stage.Transform(list)
		if err != nil {
			return fmt.Errorf("sitemap manipulator %q: %w", reg.name, err)
		}
		list = out
	}

	byPath := make(map[string]*Resource, len(list))
	byDestination := make(map[string]*Resource, len(list))
	for _, r := range list {
		if prev, ok := byDestination[r.DestinationPath]; ok && prev != r {
			// Last write wins; colliding destinations are a caller defect.
			tlogger.Debug("sitemap", "store", "msg", "destination path collision",
				"path", r.DestinationPath, "resources", spew.Sdump(prev, r))
		}
		byPath[r.SourcePath] = r
		if stripped := pathutil.StripTemplateExt(r.SourcePath); stripped != r.SourcePath {
			byPath[stripped] = r
		}
		byDestination[r.DestinationPath] = r
	}

	s.resources = list
	s.byPath = byPath
	s.byDestination = byDestination
	s.ignoredCache = make(map[string]bool)
	s.visible = nil
	s.counter++
	s.dirty = false
	return nil
}
