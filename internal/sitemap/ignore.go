package sitemap

import "github.com/robclancy/middleman/internal/pathutil"

// IgnoreStage feeds configured ignore patterns into the store's predicate
// set. The list itself passes through unchanged: ignored resources stay
// resolvable by path, they are only hidden from default enumeration.
type IgnoreStage struct{}

// NewIgnoreStage registers each pattern (any of the matching union) with
// the store.
func NewIgnoreStage(store *Store, patterns ...interface{}) (*IgnoreStage, error) {
	for _, p := range patterns {
		m, err := pathutil.MatcherFor(p)
		if err != nil {
			return nil, err
		}
		store.AddIgnore(m)
	}
	return &IgnoreStage{}, nil
}

func (st *IgnoreStage) Transform(list []*Resource) ([]*Resource, error) {
	return list, nil
}
