package render

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type severity string

type priority int

func TestFormatLiteral_Strings(t *testing.T) {
	assert.Equal(t, `"ERROR"`, formatLiteral("ERROR"))
	assert.Equal(t, `"say \"hi\""`, formatLiteral(`say "hi"`))
	assert.Equal(t, `"a\\b"`, formatLiteral(`a\b`))
	assert.Equal(t, `"line\nbreak"`, formatLiteral("line\nbreak"))
	assert.Equal(t, `"tab\there"`, formatLiteral("tab\there"))
	assert.Equal(t, "\"bell\\u0007\"", formatLiteral("bell\a"))
}

func TestFormatLiteral_Numbers(t *testing.T) {
	assert.Equal(t, "42", formatLiteral(42))
	assert.Equal(t, "42", formatLiteral(int64(42)))
	assert.Equal(t, "42", formatLiteral(uint8(42)))
	assert.Equal(t, "-7", formatLiteral(int32(-7)))
	assert.Equal(t, "95.5", formatLiteral(95.5))
	assert.Equal(t, "true", formatLiteral(true))
}

func TestFormatLiteral_NonFiniteFloatsCoerceToNull(t *testing.T) {
	assert.Equal(t, "null", formatLiteral(math.NaN()))
	assert.Equal(t, "null", formatLiteral(math.Inf(1)))
	assert.Equal(t, "null", formatLiteral(math.Inf(-1)))
	assert.Equal(t, "null", formatLiteral(float32(float64(math.Inf(1)))))
}

func TestFormatLiteral_Nil(t *testing.T) {
	assert.Equal(t, "null", formatLiteral(nil))
}

func TestFormatLiteral_Time(t *testing.T) {
	ts := time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)
	assert.Equal(t, `"2024-03-15T10:30:00.000Z"`, formatLiteral(ts))

	// Non-UTC times normalize to UTC.
	loc := time.FixedZone("CET", 3600)
	assert.Equal(t, `"2024-03-15T09:30:00.000Z"`,
		formatLiteral(time.Date(2024, 3, 15, 10, 30, 0, 0, loc)))
}

func TestFormatLiteral_Duration(t *testing.T) {
	assert.Equal(t, "2 hours", formatLiteral(2*time.Hour))
	assert.Equal(t, "3 days", formatLiteral(72*time.Hour))
	assert.Equal(t, "90 minutes", formatLiteral(90*time.Minute))
	assert.Equal(t, "1 seconds", formatLiteral(time.Second))
	assert.Equal(t, "250 milliseconds", formatLiteral(250*time.Millisecond))
	assert.Equal(t, "-2 hours", formatLiteral(-2*time.Hour))
}

func TestFormatLiteral_EnumStyleTypes(t *testing.T) {
	// Named string types render as their name.
	assert.Equal(t, `"critical"`, formatLiteral(severity("critical")))

	// Named integer types keep their ordinal (numeric-mapped fields).
	assert.Equal(t, "3", formatLiteral(priority(3)))
}
