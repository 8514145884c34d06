package render

import "strings"

// reservedWords are keywords that force back-quoting when used as bare
// identifiers, matched case-insensitively.
var reservedWords = map[string]bool{
	"and":      true,
	"asc":      true,
	"by":       true,
	"desc":     true,
	"false":    true,
	"first":    true,
	"in":       true,
	"is":       true,
	"last":     true,
	"like":     true,
	"metadata": true,
	"not":      true,
	"null":     true,
	"nulls":    true,
	"on":       true,
	"or":       true,
	"rlike":    true,
	"true":     true,
	"with":     true,
}

// quoteIdent back-quotes an identifier when it contains characters
// outside [A-Za-z0-9_.\-*?@], starts with a digit, or collides with a
// reserved keyword. Everything else passes through verbatim. @ is
// allowed for conventional metadata fields like @timestamp.
func quoteIdent(name string) string {
	if name == "" {
		return "``"
	}
	if needsQuoting(name) {
		return "`" + strings.ReplaceAll(name, "`", "``") + "`"
	}
	return name
}

func needsQuoting(name string) bool {
	if reservedWords[strings.ToLower(name)] {
		return true
	}
	if name[0] >= '0' && name[0] <= '9' {
		return true
	}
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
		case r == '_', r == '.', r == '-', r == '*', r == '?', r == '@':
		default:
			return true
		}
	}
	return false
}
