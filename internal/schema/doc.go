// Package schema resolves document type members to wire field names.
//
// The translator and the scanner never guess field names themselves:
// every member access goes through a Resolver, which answers three
// questions about a (type, member) pair - the wire field name, whether
// the member is ignored, and the type's index/search pattern.
//
// Two implementations are provided:
//   - TagResolver: reflection over `es:"..."` struct tags with a
//     concurrency-safe per-type metadata cache
//   - StaticResolver: a declarative type-name-keyed schema document,
//     optionally loaded from YAML
//
// Both resolve in the same priority order: explicit override > naming
// policy > raw member name. Two resolvers that agree on every field
// name produce byte-identical query text for any given chain.
package schema
