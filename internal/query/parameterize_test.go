package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/esquel/internal/esql"
)

func TestParameterize_HoistsConstants(t *testing.T) {
	b := From[logEntry](newResolver()).
		Parameterize().
		Where(Eq(F("Level"), "ERROR"))

	q, err := b.Build()
	require.NoError(t, err)

	text, err := b.Text()
	require.NoError(t, err)
	assert.Equal(t, "FROM logs-*\n| WHERE log.level == ?level", text)

	require.NotNil(t, q.Params)
	assert.Equal(t, []esql.NamedValue{{Name: "level", Value: "ERROR"}}, q.Params.Ordered())
}

func TestParameterize_HintFromDottedField(t *testing.T) {
	b := From[logEntry](newResolver()).
		Parameterize().
		Where(Eq(F("Host", "Name"), "web-1"))

	text, err := b.Text()
	require.NoError(t, err)
	assert.Equal(t, "FROM logs-*\n| WHERE host.name == ?name", text)
}

func TestParameterize_DedupesEqualValues(t *testing.T) {
	b := From[logEntry](newResolver()).
		Parameterize().
		Where(Eq(F("Level"), "ERROR")).
		Where(Ne(F("Level"), "ERROR"))

	q, err := b.Build()
	require.NoError(t, err)
	assert.Equal(t, 1, q.Params.Len())

	text, err := b.Text()
	require.NoError(t, err)
	assert.Equal(t,
		"FROM logs-*\n| WHERE log.level == ?level\n| WHERE log.level != ?level",
		text)
}

func TestParameterize_SuffixesConflictingValues(t *testing.T) {
	b := From[logEntry](newResolver()).
		Parameterize().
		Where(Ne(F("Level"), "DEBUG")).
		Where(Ne(F("Level"), "TRACE"))

	q, err := b.Build()
	require.NoError(t, err)
	assert.Equal(t, []esql.NamedValue{
		{Name: "level", Value: "DEBUG"},
		{Name: "level_2", Value: "TRACE"},
	}, q.Params.Ordered())

	text, err := b.Text()
	require.NoError(t, err)
	assert.Equal(t,
		"FROM logs-*\n| WHERE log.level != ?level\n| WHERE log.level != ?level_2",
		text)
}

func TestParameterize_LikePatternsStayInline(t *testing.T) {
	b := From[logEntry](newResolver()).
		Parameterize().
		Where(Contains(F("Message"), "timeout"))

	q, err := b.Build()
	require.NoError(t, err)
	assert.Equal(t, 0, q.Params.Len())

	text, err := b.Text()
	require.NoError(t, err)
	assert.Equal(t, "FROM logs-*\n| WHERE message LIKE \"*timeout*\"", text)
}

func TestInlineModeCarriesNoParams(t *testing.T) {
	q, err := From[logEntry](newResolver()).
		Where(Eq(F("Level"), "ERROR")).
		Build()
	require.NoError(t, err)
	assert.Nil(t, q.Params)
}

func TestParameterize_DoesNotMutateReceiver(t *testing.T) {
	base := From[logEntry](newResolver()).
		Where(Eq(F("Level"), "ERROR"))

	_ = base.Parameterize()

	q, err := base.Build()
	require.NoError(t, err)
	assert.Nil(t, q.Params, "Parameterize must not flip the original chain")
}
