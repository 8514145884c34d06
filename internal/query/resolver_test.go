package query

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/roach88/esquel/internal/schema"
)

// staticSchema mirrors the struct tags of the test fixtures as a
// declarative document, so the two resolver implementations can be
// compared head to head.
const staticSchema = `
types:
  logEntry:
    index: logs-*
    fields:
      Level: log.level
      Timestamp: "@timestamp"
      Host: host
    ignored: [Raw]
  hostInfo:
    fields:
      IP: ip
  purchase:
    index: orders
    fields:
      Code: code
  country:
    index: countries
    fields:
      Code: code
`

// TestResolverEquivalence is the differential test between the
// reflective and the declarative resolver: when both agree on every
// field name, every chain must render byte-identical text.
func TestResolverEquivalence(t *testing.T) {
	static, err := schema.ParseYAML([]byte(staticSchema))
	require.NoError(t, err)

	tagged := schema.NewTagResolver(nil)

	chains := map[string]func(r schema.Resolver) (string, error){
		"filter": func(r schema.Resolver) (string, error) {
			return From[logEntry](r).
				Where(Eq(F("Level"), "ERROR")).
				Text()
		},
		"filter_sort_limit": func(r schema.Resolver) (string, error) {
			return From[logEntry](r).
				Where(Gte(F("Status"), 500)).
				OrderByDesc(F("Timestamp")).
				Take(10).
				Text()
		},
		"nested_member": func(r schema.Resolver) (string, error) {
			return From[logEntry](r).
				Where(Eq(F("Host", "Name"), "web-1")).
				Text()
		},
		"grouped": func(r schema.Resolver) (string, error) {
			return From[logEntry](r).
				GroupBy(F("Level")).
				Select(As("level", Key()), As("count", Count())).
				Text()
		},
		"projection": func(r schema.Resolver) (string, error) {
			return From[logEntry](r).
				Select(As("severity", F("Level")), Pick("Status")).
				Text()
		},
		"join": func(r schema.Resolver) (string, error) {
			return From[purchase](r).
				LookupJoin(LookupIndex[country](r), OnKeys("Code", "Code")).
				Text()
		},
		"parameterized": func(r schema.Resolver) (string, error) {
			return From[logEntry](r).
				Parameterize().
				Where(Eq(F("Level"), "ERROR")).
				Text()
		},
	}

	for name, build := range chains {
		t.Run(name, func(t *testing.T) {
			fromTags, err := build(tagged)
			require.NoError(t, err)

			fromDoc, err := build(static)
			require.NoError(t, err)

			require.Equal(t, fromTags, fromDoc)
		})
	}
}
