// Package settings provides the concrete Settings store the agent core is
// built against. The core only ever sees the Store interface (configuration
// loading and validation are out of scope per the agent spec); this package
// supplies a thin viper-backed implementation so the core is runnable.
package settings

import (
	"strings"

	"github.com/spf13/viper"
)

// Store is the read-only, dotted-path nested mapping the agent core treats
// as an opaque tree. The agent core consumes it through this interface,
// never through *viper.Viper directly.
type Store interface {
	// Get returns the value at dotted path, or nil if absent.
	Get(path string) interface{}
	// GetString returns the string at dotted path, or def if absent or not a string.
	GetString(path, def string) string
	// GetBool returns the bool at dotted path, defaulting to false.
	GetBool(path string) bool
	// GetStringSlice returns the string slice at dotted path, or nil.
	GetStringSlice(path string) []string
	// HasCheck reports whether checks.<name> exists.
	HasCheck(name string) bool
	// Check returns the check definition at checks.<name>.
	Check(name string) (map[string]interface{}, bool)
	// Checks returns every locally-defined check definition, keyed by name.
	Checks() map[string]map[string]interface{}
	// AsMap returns the full tree as a nested map, e.g. for templating.
	AsMap() map[string]interface{}
}

// ViperStore adapts a *viper.Viper into a Store.
type ViperStore struct {
	v *viper.Viper
}

// New wraps an already-populated viper instance.
func New(v *viper.Viper) *ViperStore {
	return &ViperStore{v: v}
}

// Load reads a YAML/JSON settings file from path into a fresh viper instance.
func Load(path string) (*ViperStore, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}
	return New(v), nil
}

func (s *ViperStore) Get(path string) interface{} {
	if !s.v.IsSet(path) {
		return nil
	}
	return s.v.Get(path)
}

func (s *ViperStore) GetString(path, def string) string {
	if !s.v.IsSet(path) {
		return def
	}
	return s.v.GetString(path)
}

func (s *ViperStore) GetBool(path string) bool {
	return s.v.GetBool(path)
}

func (s *ViperStore) GetStringSlice(path string) []string {
	return s.v.GetStringSlice(path)
}

func (s *ViperStore) HasCheck(name string) bool {
	return s.v.IsSet("checks." + name)
}

func (s *ViperStore) Check(name string) (map[string]interface{}, bool) {
	if !s.HasCheck(name) {
		return nil, false
	}
	raw := s.v.GetStringMap("checks." + name)
	return raw, true
}

func (s *ViperStore) Checks() map[string]map[string]interface{} {
	out := map[string]map[string]interface{}{}
	for name := range s.v.GetStringMap("checks") {
		if def, ok := s.Check(name); ok {
			out[name] = def
		}
	}
	return out
}

func (s *ViperStore) AsMap() map[string]interface{} {
	return s.v.AllSettings()
}

// walkDotted walks a nested map[string]interface{} by a dotted path,
// returning the leaf and whether it was found. Used by MemStore, which
// holds a plain map rather than a *viper.Viper.
func walkDotted(tree map[string]interface{}, path string) (interface{}, bool) {
	parts := strings.Split(path, ".")
	var cur interface{} = tree
	for _, p := range parts {
		m, ok := cur.(map[string]interface{})
		if !ok {
			return nil, false
		}
		v, ok := m[p]
		if !ok {
			return nil, false
		}
		cur = v
	}
	if cur == nil {
		return nil, false
	}
	return cur, true
}

// WalkDotted is the exported form of walkDotted.
func WalkDotted(tree map[string]interface{}, path string) (interface{}, bool) {
	return walkDotted(tree, path)
}
