// Package prefs persists user preferences (the source to skin mapping table
// and the fade-out policy) as one JSON document with independently
// round-trippable records.
package prefs

import (
	"fmt"
	"os"
	"sync"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/openpad/padview/internal/fade"
)

// Store reads and rewrites a single prefs.json. All mutation goes through
// sjson so unrelated records in the document survive untouched.
type Store struct {
	mu   sync.RWMutex
	path string
	data []byte
}

// Open loads path, starting from an empty document when the file does not
// exist yet.
func Open(path string) (*Store, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		data = []byte("{}")
	} else if err != nil {
		return nil, fmt.Errorf("read prefs: %w", err)
	}
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("prefs file %s is not valid JSON", path)
	}
	return &Store{path: path, data: data}, nil
}

// Mapping looks up the skin directory mapped to an input source.
func (s *Store) Mapping(source string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	res := gjson.GetBytes(s.data, "mappings."+escapeKey(source))
	if !res.Exists() {
		return "", false
	}
	return res.String(), true
}

// Mappings returns the whole mapping table.
func (s *Store) Mappings() map[string]string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]string)
	gjson.GetBytes(s.data, "mappings").ForEach(func(k, v gjson.Result) bool {
		out[k.String()] = v.String()
		return true
	})
	return out
}

// SetMappings replaces the mapping table in bulk and persists.
func (s *Store) SetMappings(mappings map[string]string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, err := sjson.SetBytes(s.data, "mappings", map[string]string{})
	if err != nil {
		return err
	}
	for source, dirname := range mappings {
		data, err = sjson.SetBytes(data, "mappings."+escapeKey(source), dirname)
		if err != nil {
			return err
		}
	}
	return s.commit(data)
}

// FadePolicy returns the persisted policy and its precomputed factors.
// ok is false when no policy has been stored yet.
func (s *Store) FadePolicy() (policy fade.Policy, factors []float64, ok bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	root := gjson.GetBytes(s.data, "fadeout")
	if !root.Exists() {
		return fade.Policy{}, nil, false
	}
	for _, cp := range root.Get("checkpoints").Array() {
		pair := cp.Array()
		if len(pair) != 2 {
			return fade.Policy{}, nil, false
		}
		policy.Checkpoints = append(policy.Checkpoints, fade.Checkpoint{
			After:   pair[0].Float(),
			Opacity: pair[1].Float(),
		})
	}
	policy.Duration = root.Get("duration").Float()
	for _, f := range root.Get("factors").Array() {
		factors = append(factors, f.Float())
	}
	return policy, factors, len(policy.Checkpoints) > 0
}

// SetFadePolicy persists the policy together with its recomputed factors so
// a later session reuses them without rebuilding.
func (s *Store) SetFadePolicy(policy fade.Policy, factors []float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	checkpoints := make([][2]float64, len(policy.Checkpoints))
	for i, c := range policy.Checkpoints {
		checkpoints[i] = [2]float64{c.After, c.Opacity}
	}
	data, err := sjson.SetBytes(s.data, "fadeout.checkpoints", checkpoints)
	if err != nil {
		return err
	}
	if data, err = sjson.SetBytes(data, "fadeout.duration", policy.Duration); err != nil {
		return err
	}
	if data, err = sjson.SetBytes(data, "fadeout.factors", factors); err != nil {
		return err
	}
	return s.commit(data)
}

func (s *Store) commit(data []byte) error {
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("write prefs: %w", err)
	}
	s.data = data
	return nil
}

// escapeKey guards gjson path syntax in source identifiers.
func escapeKey(key string) string {
	out := make([]byte, 0, len(key))
	for i := 0; i < len(key); i++ {
		switch key[i] {
		case '.', '*', '?', '\\', '|', '#', '@':
			out = append(out, '\\')
		}
		out = append(out, key[i])
	}
	return string(out)
}
