package schema

import (
	"fmt"
	"reflect"
	"strings"
	"sync"
)

// TagName is the struct tag consulted by TagResolver.
//
//	type LogEntry struct {
//	    Level     string    `es:"log.level"`
//	    Timestamp time.Time `es:"@timestamp"`
//	    Raw       []byte    `es:"-"`       // ignored
//	    Status    int       // naming policy: "status"
//	}
const TagName = "es"

// TagResolver resolves members via reflection over `es:"..."` struct
// tags, falling back to a naming policy for untagged members.
//
// Per-type Metadata is built once and memoized. The cache is guarded by
// an RWMutex: reads vastly outnumber writes, and the resolver must be
// safe for concurrent use from any number of goroutines.
type TagResolver struct {
	policy NamingPolicy

	mu    sync.RWMutex
	cache map[reflect.Type]Metadata
}

// NewTagResolver creates a TagResolver with the given naming policy.
// A nil policy defaults to SnakeCase.
func NewTagResolver(policy NamingPolicy) *TagResolver {
	if policy == nil {
		policy = SnakeCase
	}
	return &TagResolver{
		policy: policy,
		cache:  make(map[reflect.Type]Metadata),
	}
}

// FieldName implements Resolver.
func (r *TagResolver) FieldName(t reflect.Type, member string) (string, error) {
	meta, err := r.metadata(t)
	if err != nil {
		return "", err
	}
	if name, ok := meta.Fields[member]; ok {
		return name, nil
	}
	return "", fmt.Errorf("type %s has no member %q", t.Name(), member)
}

// IsIgnored implements Resolver.
func (r *TagResolver) IsIgnored(t reflect.Type, member string) bool {
	meta, err := r.metadata(t)
	if err != nil {
		return false
	}
	return meta.Ignored[member]
}

// IndexPattern implements Resolver.
func (r *TagResolver) IndexPattern(t reflect.Type) string {
	meta, err := r.metadata(t)
	if err != nil {
		return ""
	}
	return meta.Index
}

// metadata returns the cached Metadata for t, building it on first use.
func (r *TagResolver) metadata(t reflect.Type) (Metadata, error) {
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil || t.Kind() != reflect.Struct {
		return Metadata{}, fmt.Errorf("document type must be a struct, got %v", t)
	}

	r.mu.RLock()
	meta, ok := r.cache[t]
	r.mu.RUnlock()
	if ok {
		return meta, nil
	}

	meta = r.build(t)

	r.mu.Lock()
	// A concurrent builder may have raced us here; last write wins and
	// both results are identical, so no double-check is needed.
	r.cache[t] = meta
	r.mu.Unlock()

	return meta, nil
}

// build constructs the Metadata table for a struct type.
func (r *TagResolver) build(t reflect.Type) Metadata {
	meta := Metadata{
		Fields:  make(map[string]string, t.NumField()),
		Ignored: make(map[string]bool),
		Index:   indexPatternOf(t),
	}

	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}

		tag := f.Tag.Get(TagName)
		if tag == "-" {
			meta.Ignored[f.Name] = true
			continue
		}

		// Tag may carry options after a comma (reserved); the name is
		// the first segment.
		name, _, _ := strings.Cut(tag, ",")
		if name == "" {
			name = r.policy(f.Name)
		}
		meta.Fields[f.Name] = name
	}

	return meta
}
