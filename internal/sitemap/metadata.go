package sitemap

// Metadata is the accumulating resource metadata: rendering options and
// template locals. Merges are additive for the resource's whole lifetime,
// there is no delete.
type Metadata struct {
	Options map[string]interface{}
	Locals  map[string]interface{}
}

func NewMetadata() Metadata {
	return Metadata{
		Options: make(map[string]interface{}),
		Locals:  make(map[string]interface{}),
	}
}

// Merge folds other into m. Scalar keys are overwritten (later merge wins),
// nested maps merge recursively, slices concatenate.
func (m Metadata) Merge(other Metadata) {
	deepMerge(m.Options, other.Options)
	deepMerge(m.Locals, other.Locals)
}

// MergeOptions merges just the Options sub-map.
func (m Metadata) MergeOptions(opts map[string]interface{}) {
	deepMerge(m.Options, opts)
}

// MergeLocals merges just the Locals sub-map.
func (m Metadata) MergeLocals(locals map[string]interface{}) {
	deepMerge(m.Locals, locals)
}

func deepMerge(dst, src map[string]interface{}) {
	for k, v := range src {
		prev, ok := dst[k]
		if !ok {
			dst[k] = v
			continue
		}

		switch pv := prev.(type) {
		case map[string]interface{}:
			if sv, ok := v.(map[string]interface{}); ok {
				deepMerge(pv, sv)
				continue
			}
		case []interface{}:
			if sv, ok := v.([]interface{}); ok {
				dst[k] = append(pv, sv...)
				continue
			}
		}
		dst[k] = v
	}
}
