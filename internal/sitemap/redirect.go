package sitemap

// Redirect declares a published path that forwards to another URL.
type Redirect struct {
	From string
	To   string
}

// RedirectStage emits a resource per declared redirect; the builder
// materializes them as meta-refresh stubs.
type RedirectStage struct {
	redirects []Redirect
}

func NewRedirectStage(redirects []Redirect) *RedirectStage {
	return &RedirectStage{redirects: redirects}
}

func (st *RedirectStage) Transform(list []*Resource) ([]*Resource, error) {
	out := append([]*Resource(nil), list...)
	for _, rd := range st.redirects {
		r := NewResource(rd.From, rd.From)
		r.Metadata.Options["redirect_to"] = rd.To
		out = append(out, r)
	}
	return out, nil
}
