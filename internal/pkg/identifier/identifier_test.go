package identifier

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormat(t *testing.T) {
	assert.Equal(t, "STU202400042", Format("STU", 2024, 42))
	assert.Equal(t, "PHD202300001", Format("PHD", 2023, 1))
	assert.Equal(t, "FAC199900123", Format("FAC", 1999, 123))
	assert.Equal(t, "STF202599999", Format("STF", 2025, 99999))
}

func TestFormatPadsSequence(t *testing.T) {
	id := Format("STU", 2024, 7)
	require.Len(t, id, 3+4+SequenceDigits)
	assert.Equal(t, "STU202400007", id)
}

func TestParseRoundTrip(t *testing.T) {
	prefix, year, seq, ok := Parse(Format("PHD", 2022, 314))
	require.True(t, ok)
	assert.Equal(t, "PHD", prefix)
	assert.Equal(t, 2022, year)
	assert.Equal(t, int64(314), seq)
}

func TestParseRejectsMalformed(t *testing.T) {
	for _, raw := range []string{
		"",
		"STU2024",
		"stu202400042",
		"STUD202400042",
		"STU20240004",
		"STU2024000420",
		"ST1202400042",
	} {
		_, _, _, ok := Parse(raw)
		assert.False(t, ok, "expected %q to be rejected", raw)
	}
}
