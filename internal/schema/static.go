package schema

import (
	"fmt"
	"io"
	"reflect"

	"gopkg.in/yaml.v3"
)

// StaticResolver resolves members from a declarative schema document
// keyed by Go type name. It carries no reflection beyond reading the
// type's name, making it the reference implementation for differential
// tests against TagResolver.
//
// Members absent from the document fall back to the naming policy, so a
// static document only needs to list overrides and ignores.
type StaticResolver struct {
	types  map[string]Metadata
	policy NamingPolicy
}

// NewStaticResolver creates a StaticResolver over the given per-type
// metadata. A nil policy defaults to SnakeCase.
func NewStaticResolver(types map[string]Metadata, policy NamingPolicy) *StaticResolver {
	if policy == nil {
		policy = SnakeCase
	}
	if types == nil {
		types = make(map[string]Metadata)
	}
	return &StaticResolver{types: types, policy: policy}
}

// FieldName implements Resolver.
func (r *StaticResolver) FieldName(t reflect.Type, member string) (string, error) {
	if member == "" {
		return "", fmt.Errorf("empty member name")
	}
	if meta, ok := r.types[typeName(t)]; ok {
		if name, ok := meta.Fields[member]; ok {
			return name, nil
		}
	}
	return r.policy(member), nil
}

// IsIgnored implements Resolver.
func (r *StaticResolver) IsIgnored(t reflect.Type, member string) bool {
	meta, ok := r.types[typeName(t)]
	return ok && meta.Ignored[member]
}

// IndexPattern implements Resolver.
func (r *StaticResolver) IndexPattern(t reflect.Type) string {
	if meta, ok := r.types[typeName(t)]; ok {
		return meta.Index
	}
	return ""
}

func typeName(t reflect.Type) string {
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil {
		return ""
	}
	return t.Name()
}

// schemaDoc is the YAML document shape accepted by LoadYAML:
//
//	types:
//	  LogEntry:
//	    index: logs-*
//	    fields:
//	      Level: log.level
//	      Timestamp: "@timestamp"
//	    ignored: [Raw]
type schemaDoc struct {
	Types map[string]typeDoc `yaml:"types"`
}

type typeDoc struct {
	Index   string            `yaml:"index"`
	Fields  map[string]string `yaml:"fields"`
	Ignored []string          `yaml:"ignored"`
}

// LoadYAML reads a declarative schema document and returns a
// StaticResolver over it.
func LoadYAML(in io.Reader) (*StaticResolver, error) {
	raw, err := io.ReadAll(in)
	if err != nil {
		return nil, fmt.Errorf("read schema document: %w", err)
	}
	return ParseYAML(raw)
}

// ParseYAML parses a declarative schema document.
func ParseYAML(raw []byte) (*StaticResolver, error) {
	var doc schemaDoc
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parse schema document: %w", err)
	}

	types := make(map[string]Metadata, len(doc.Types))
	for name, td := range doc.Types {
		meta := Metadata{
			Fields:  td.Fields,
			Ignored: make(map[string]bool, len(td.Ignored)),
			Index:   td.Index,
		}
		if meta.Fields == nil {
			meta.Fields = make(map[string]string)
		}
		for _, m := range td.Ignored {
			meta.Ignored[m] = true
		}
		types[name] = meta
	}

	return NewStaticResolver(types, nil), nil
}
