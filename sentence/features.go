package sentence

import (
	"sort"
	"strings"
)

const (
	featureSeparator  = "|"
	keyValueSeparator = ":"
)

// Features is the morphological feature annotation of a token, f.ex.
//
//	case:nominative|number:singular|gender:masculine
//
// Only the raw annotation is kept. The key/value view is computed on each
// call to Map, so writing a token always emits the annotation as it was read.
type Features struct {
	raw string
}

// NewFeatures returns the annotation for the raw string. Any string is valid.
func NewFeatures(raw string) Features {
	return Features{raw: raw}
}

// String returns the raw annotation.
func (f Features) String() string {
	return f.raw
}

// Map splits the annotation on '|' and each entry on its first ':'. Entries
// without ':' map to a nil value. A repeated key keeps its last value. Empty
// entries are ignored.
func (f Features) Map() map[string]*string {
	m := map[string]*string{}
	for _, entry := range strings.Split(f.raw, featureSeparator) {
		if entry == "" {
			continue
		}

		key, value, found := strings.Cut(entry, keyValueSeparator)
		if !found {
			m[key] = nil
			continue
		}

		m[key] = &value
	}

	return m
}

// Get returns the value of key. ok is false if the key is not present or has
// no value.
func (f Features) Get(key string) (value string, ok bool) {
	v := f.Map()[key]
	if v == nil {
		return "", false
	}

	return *v, true
}

// Has reports whether key is present, with or without value.
func (f Features) Has(key string) bool {
	_, ok := f.Map()[key]
	return ok
}

// Keys returns the unique keys sorted alphabetically.
func (f Features) Keys() []string {
	m := f.Map()
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}

	sort.Strings(keys)
	return keys
}
