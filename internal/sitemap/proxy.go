package sitemap

// ProxyRoute declares one proxied resource: Destination is published,
// rendering goes through Target's source.
type ProxyRoute struct {
	Destination string
	Target      string
	Options     map[string]interface{}
	Locals      map[string]interface{}
}

// ProxyStage emits one resource per declared route.
type ProxyStage struct {
	routes []ProxyRoute
}

func NewProxyStage(routes []ProxyRoute) *ProxyStage {
	return &ProxyStage{routes: routes}
}

// AddRoute is used by callers that declare proxies incrementally; the store
// must be invalidated afterwards.
func (st *ProxyStage) AddRoute(route ProxyRoute) {
	st.routes = append(st.routes, route)
}

func (st *ProxyStage) Transform(list []*Resource) ([]*Resource, error) {
	out := append([]*Resource(nil), list...)
	for _, route := range st.routes {
		r := NewResource(route.Destination, route.Destination)
		r.ProxyTo(route.Target)
		r.Metadata.MergeOptions(route.Options)
		r.Metadata.MergeLocals(route.Locals)
		out = append(out, r)
	}
	return out, nil
}
