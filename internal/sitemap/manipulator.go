package sitemap

import "sort"

// DefaultPriority is used when a manipulator is registered without one.
const DefaultPriority = 50

// Manipulator is a pipeline stage: a pure transformation of the accumulated
// resource list. A stage must not keep cross-rebuild mutable state that
// changes its output except through its own explicitly invalidated inputs
// (a directory scan cache, a locale data cache).
type Manipulator interface {
	Transform(list []*Resource) ([]*Resource, error)
}

// TransformFunc adapts a func to the Manipulator interface.
type TransformFunc func(list []*Resource) ([]*Resource, error)

func (f TransformFunc) Transform(list []*Resource) ([]*Resource, error) {
	return f(list)
}

// registration keeps the order index so equal priorities stay in
// registration order even if the sort implementation changes.
type registration struct {
	name     string
	stage    Manipulator
	priority int
	order    int
}

func sortedRegistrations(regs []registration) []registration {
	out := append([]registration(nil), regs...)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].priority != out[j].priority {
			return out[i].priority < out[j].priority
		}
		return out[i].order < out[j].order
	})
	return out
}
