package settings

// MemStore is an in-memory Store backed by a plain nested map, used in
// tests in place of a file-backed ViperStore.
type MemStore struct {
	tree map[string]interface{}
}

// NewMemStore wraps an already-built nested map tree.
func NewMemStore(tree map[string]interface{}) *MemStore {
	return &MemStore{tree: tree}
}

func (s *MemStore) Get(path string) interface{} {
	v, ok := WalkDotted(s.tree, path)
	if !ok {
		return nil
	}
	return v
}

func (s *MemStore) GetString(path, def string) string {
	v := s.Get(path)
	if str, ok := v.(string); ok {
		return str
	}
	return def
}

func (s *MemStore) GetBool(path string) bool {
	v := s.Get(path)
	b, _ := v.(bool)
	return b
}

func (s *MemStore) GetStringSlice(path string) []string {
	v := s.Get(path)
	switch vv := v.(type) {
	case []string:
		return vv
	case []interface{}:
		out := make([]string, 0, len(vv))
		for _, item := range vv {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

func (s *MemStore) HasCheck(name string) bool {
	_, ok := s.Check(name)
	return ok
}

func (s *MemStore) Check(name string) (map[string]interface{}, bool) {
	v, ok := WalkDotted(s.tree, "checks."+name)
	if !ok {
		return nil, false
	}
	m, ok := v.(map[string]interface{})
	return m, ok
}

func (s *MemStore) Checks() map[string]map[string]interface{} {
	out := map[string]map[string]interface{}{}
	root, ok := s.tree["checks"].(map[string]interface{})
	if !ok {
		return out
	}
	for name, v := range root {
		if m, ok := v.(map[string]interface{}); ok {
			out[name] = m
		}
	}
	return out
}

func (s *MemStore) AsMap() map[string]interface{} {
	return s.tree
}

var _ Store = (*MemStore)(nil)
var _ Store = (*ViperStore)(nil)
