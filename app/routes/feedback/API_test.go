package feedback

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseHistoryRange(t *testing.T) {
	from, to, err := parseHistoryRange("2026-03-01", "2026-03-15")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), from)
	// The to bound reaches the end of its day so a single-day range
	// still matches entries written during that day.
	assert.Equal(t, time.Date(2026, 3, 15, 23, 59, 59, 0, time.UTC), to)

	from, to, err = parseHistoryRange("", "")
	require.NoError(t, err)
	assert.True(t, from.IsZero())
	assert.True(t, to.IsZero())

	from, _, err = parseHistoryRange("2026-03-01", "")
	require.NoError(t, err)
	assert.False(t, from.IsZero())

	_, _, err = parseHistoryRange("march 1st", "")
	assert.Error(t, err)

	_, _, err = parseHistoryRange("", "03/15/2026")
	assert.Error(t, err)

	_, _, err = parseHistoryRange("2026-03-15", "2026-03-01")
	assert.Error(t, err)
}
