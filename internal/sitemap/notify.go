package sitemap

import "github.com/robclancy/middleman/internal/pathutil"

// OnChange registers a change-notification rule: when a changed or deleted
// file path matches m, callback runs (it may be nil) and the store is
// invalidated. Callbacks run under the store lock and must not call back
// into the store.
func (s *Store) OnChange(m pathutil.Matcher, callback func(path string)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.watchRules = append(s.watchRules, watchRule{matcher: m, callback: callback})
}

// FileChanged reports a changed file to the store. Returns whether any rule
// matched.
func (s *Store) FileChanged(path string) bool {
	return s.notify(path)
}

// FileDeleted reports a deleted file to the store.
func (s *Store) FileDeleted(path string) bool {
	return s.notify(path)
}

func (s *Store) notify(path string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	matched := false
	for _, rule := range s.watchRules {
		if rule.matcher.Match(path) {
			matched = true
			if rule.callback != nil {
				rule.callback(path)
			}
		}
	}
	if matched {
		s.dirty = true
	}
	return matched
}
