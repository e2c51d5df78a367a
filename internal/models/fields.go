package models

import (
	"encoding/json"
	"fmt"
	"sort"
)

// Fields is a partial update keyed by the camelCase field names of a record.
type Fields map[string]any

// Keys returns the field names in sorted order.
func (f Fields) Keys() []string {
	keys := make([]string, 0, len(f))
	for k := range f {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// ApplyFields merges f into the record pointed to by dst, the same way the
// record would be decoded from its JSON form. Keys must already be validated.
func ApplyFields(dst any, f Fields) error {
	if len(f) == 0 {
		return nil
	}
	patch, err := json.Marshal(f)
	if err != nil {
		return fmt.Errorf("encode fields: %w", err)
	}
	if err := json.Unmarshal(patch, dst); err != nil {
		return fmt.Errorf("apply fields: %w", err)
	}
	return nil
}
