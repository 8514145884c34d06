package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/esquel/internal/esql"
)

func TestRender_SingleCommand(t *testing.T) {
	q := esql.Query{Commands: []esql.Command{esql.From{Pattern: "logs-*"}}}

	text, err := Render(q)
	require.NoError(t, err)
	assert.Equal(t, "FROM logs-*", text)
}

func TestRender_PipelineOrder(t *testing.T) {
	q := esql.Query{Commands: []esql.Command{
		esql.From{Pattern: "logs-*"},
		esql.Where{Cond: esql.Binary{
			Op:    esql.OpGte,
			Left:  esql.FieldRef{Name: "status"},
			Right: esql.Literal{Value: int64(500)},
		}},
		esql.Sort{Keys: []esql.SortKey{{Field: "@timestamp", Desc: true}}},
		esql.Limit{N: 10},
	}}

	text, err := Render(q)
	require.NoError(t, err)
	assert.Equal(t, "FROM logs-*\n| WHERE status >= 500\n| SORT @timestamp DESC\n| LIMIT 10", text)
}

func TestRender_Idempotent(t *testing.T) {
	q := esql.Query{Commands: []esql.Command{
		esql.From{Pattern: "logs-*"},
		esql.Where{Cond: esql.Binary{
			Op:    esql.OpEq,
			Left:  esql.FieldRef{Name: "log.level"},
			Right: esql.Literal{Value: "ERROR"},
		}},
	}}

	first, err := Render(q)
	require.NoError(t, err)
	second, err := Render(q)
	require.NoError(t, err)
	assert.Equal(t, first, second, "same model must yield byte-identical text")
}

func TestRender_LimitLastWins(t *testing.T) {
	q := esql.Query{Commands: []esql.Command{
		esql.From{Pattern: "logs-*"},
		esql.Limit{N: 100},
		esql.Sort{Keys: []esql.SortKey{{Field: "status"}}},
		esql.Limit{N: 10},
	}}

	text, err := Render(q)
	require.NoError(t, err)
	assert.Equal(t, "FROM logs-*\n| SORT status\n| LIMIT 10", text)
}

func TestRender_Stats(t *testing.T) {
	q := esql.Query{Commands: []esql.Command{
		esql.From{Pattern: "logs-*"},
		esql.Stats{
			Aggs: []esql.Column{{
				Name:  "count",
				Value: esql.Call{Func: "COUNT", Args: []esql.Expr{esql.FieldRef{Name: "*"}}},
			}},
			By: []esql.Column{{Name: "level", Value: esql.FieldRef{Name: "log.level"}}},
		},
	}}

	text, err := Render(q)
	require.NoError(t, err)
	assert.Equal(t, "FROM logs-*\n| STATS count = COUNT(*) BY level = log.level", text)
}

func TestRender_StatsBareKey(t *testing.T) {
	// A BY alias equal to its field (or empty) renders bare.
	q := esql.Query{Commands: []esql.Command{
		esql.From{Pattern: "logs-*"},
		esql.Stats{
			Aggs: []esql.Column{{
				Name:  "total",
				Value: esql.Call{Func: "SUM", Args: []esql.Expr{esql.FieldRef{Name: "bytes"}}},
			}},
			By: []esql.Column{
				{Name: "host", Value: esql.FieldRef{Name: "host"}},
				{Value: esql.FieldRef{Name: "region"}},
			},
		},
	}}

	text, err := Render(q)
	require.NoError(t, err)
	assert.Equal(t, "FROM logs-*\n| STATS total = SUM(bytes) BY host, region", text)
}

func TestRender_RowAndEval(t *testing.T) {
	q := esql.Query{Commands: []esql.Command{
		esql.Row{Columns: []esql.Column{
			{Name: "a", Value: esql.Literal{Value: int64(1)}},
			{Name: "b", Value: esql.Literal{Value: "two"}},
		}},
		esql.Eval{Columns: []esql.Column{
			{Name: "c", Value: esql.Binary{
				Op:    esql.OpAdd,
				Left:  esql.FieldRef{Name: "a"},
				Right: esql.Literal{Value: int64(1)},
			}},
		}},
		esql.Keep{Fields: []string{"b", "c"}},
	}}

	text, err := Render(q)
	require.NoError(t, err)
	assert.Equal(t, "ROW a = 1, b = \"two\"\n| EVAL c = a + 1\n| KEEP b, c", text)
}

func TestRender_Drop(t *testing.T) {
	q := esql.Query{Commands: []esql.Command{
		esql.From{Pattern: "logs-*"},
		esql.Drop{Fields: []string{"message", "host.name"}},
	}}

	text, err := Render(q)
	require.NoError(t, err)
	assert.Equal(t, "FROM logs-*\n| DROP message, host.name", text)
}

func TestRender_Completion(t *testing.T) {
	q := esql.Query{Commands: []esql.Command{
		esql.From{Pattern: "logs-*"},
		esql.Completion{
			Prompt:      esql.FieldRef{Name: "message"},
			InferenceID: "my-model",
			Column:      "summary",
		},
	}}

	text, err := Render(q)
	require.NoError(t, err)
	assert.Equal(t, "FROM logs-*\n| COMPLETION summary = message WITH { \"inference_id\" : \"my-model\" }", text)
}

func TestRender_CompletionNoColumn(t *testing.T) {
	q := esql.Query{Commands: []esql.Command{
		esql.From{Pattern: "logs-*"},
		esql.Completion{
			Prompt:      esql.Literal{Value: "Summarize the incident"},
			InferenceID: "my-model",
		},
	}}

	text, err := Render(q)
	require.NoError(t, err)
	assert.Equal(t, "FROM logs-*\n| COMPLETION \"Summarize the incident\" WITH { \"inference_id\" : \"my-model\" }", text)
}

func TestRender_LookupJoinShorthand(t *testing.T) {
	q := esql.Query{Commands: []esql.Command{
		esql.From{Pattern: "orders"},
		esql.LookupJoin{Index: "countries", Shorthand: "code"},
	}}

	text, err := Render(q)
	require.NoError(t, err)
	assert.Equal(t, "FROM orders\n| LOOKUP JOIN countries ON code", text)
}

func TestRender_LookupJoinPredicate(t *testing.T) {
	q := esql.Query{Commands: []esql.Command{
		esql.From{Pattern: "orders"},
		esql.LookupJoin{Index: "countries", On: esql.Binary{
			Op:    esql.OpEq,
			Left:  esql.FieldRef{Name: "country_code"},
			Right: esql.FieldRef{Name: "code"},
		}},
	}}

	text, err := Render(q)
	require.NoError(t, err)
	assert.Equal(t, "FROM orders\n| LOOKUP JOIN countries ON country_code == code", text)
}

func TestRender_EmptyQuery(t *testing.T) {
	_, err := Render(esql.Query{})
	assert.Error(t, err)
}

func TestRender_Params(t *testing.T) {
	q := esql.Query{Commands: []esql.Command{
		esql.From{Pattern: "logs-*"},
		esql.Where{Cond: esql.Binary{
			Op:    esql.OpEq,
			Left:  esql.FieldRef{Name: "log.level"},
			Right: esql.Param{Name: "level"},
		}},
	}}

	text, err := Render(q)
	require.NoError(t, err)
	assert.Equal(t, "FROM logs-*\n| WHERE log.level == ?level", text)
}
