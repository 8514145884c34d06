// Package scan reconstructs typed Go values from columnar query
// responses.
//
// Scanning is a pure function over an already-buffered response.
// Struct targets are filled through a case-insensitive column-to-field
// map built once per call (ignored members skipped), with positional
// matching as a fallback when no column name matches. Value coercion is
// deliberately permissive: any cell that cannot be coerced degrades
// silently to the target type's zero value - scanning never fails on
// malformed data.
//
// Sequence operators (First, Single, Count, ...) read the single
// row/column directly and reproduce standard sequence-operator fault
// semantics: ErrNoRows for empty input where an element is required,
// ErrTooManyRows when Single sees more than one.
package scan
