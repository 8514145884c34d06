package schema

import (
	"reflect"
	"strings"
	"unicode"
)

// Resolver maps document type members to wire field names.
//
// Implementations must be safe for concurrent use: a single resolver is
// shared across every translation and scan in the process.
type Resolver interface {
	// FieldName returns the wire field name for a member of t.
	// Resolution order: explicit override > naming policy > raw name.
	FieldName(t reflect.Type, member string) (string, error)

	// IsIgnored reports whether the member is excluded from queries
	// and scanning.
	IsIgnored(t reflect.Type, member string) bool

	// IndexPattern returns the index or search pattern for t, or ""
	// when the type declares none.
	IndexPattern(t reflect.Type) string
}

// Metadata is the per-type resolution table: member overrides, ignored
// members, and the index pattern. Built once and cached for the
// resolver's lifetime.
type Metadata struct {
	// Fields maps Go member names to explicit wire field names.
	Fields map[string]string

	// Ignored lists members excluded from queries and scanning.
	Ignored map[string]bool

	// Index is the index or search pattern for the type ("" = none).
	Index string
}

// Indexed is implemented by document types that declare their own
// index pattern.
type Indexed interface {
	ESIndex() string
}

// NamingPolicy converts a Go member name to a wire field name when no
// explicit override exists.
type NamingPolicy func(member string) string

// SnakeCase is the default naming policy: LowerSnakeCase with
// initialism runs kept together (HTTPStatus -> http_status).
func SnakeCase(member string) string {
	var b strings.Builder
	runes := []rune(member)
	for i, r := range runes {
		if unicode.IsUpper(r) {
			// Break before an upper rune that starts a new word: either
			// the previous rune is lower, or the next rune is lower
			// (end of an initialism run).
			if i > 0 && (unicode.IsLower(runes[i-1]) || unicode.IsDigit(runes[i-1]) ||
				(i+1 < len(runes) && unicode.IsLower(runes[i+1]))) {
				b.WriteByte('_')
			}
			b.WriteRune(unicode.ToLower(r))
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// RawName is the identity naming policy: the member name is the wire
// field name.
func RawName(member string) string { return member }

// MemberType returns the Go type of a struct member, for resolving
// sub-field accessors. Pointers are dereferenced. Returns false when t
// is not a struct or the member does not exist.
func MemberType(t reflect.Type, member string) (reflect.Type, bool) {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return nil, false
	}
	f, ok := t.FieldByName(member)
	if !ok {
		return nil, false
	}
	return f.Type, true
}

// indexPatternOf returns the pattern a type declares via the Indexed
// interface, checking both value and pointer receivers.
func indexPatternOf(t reflect.Type) string {
	if t == nil {
		return ""
	}
	zero := reflect.New(t)
	if idx, ok := zero.Elem().Interface().(Indexed); ok {
		return idx.ESIndex()
	}
	if idx, ok := zero.Interface().(Indexed); ok {
		return idx.ESIndex()
	}
	return ""
}
