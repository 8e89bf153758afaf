package timeparse_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GowthamOleti/itelo/internal/timeparse"
)

// A fixed reference "now" keeps every assertion deterministic: 2025-03-10 14:00 UTC.
var refNow = time.Date(2025, 3, 10, 14, 0, 0, 0, time.UTC)

func TestExtractDateTime_RelativeMinutes(t *testing.T) {
	got, ok := timeparse.ExtractDateTime("remind me in 45 minutes", refNow)
	require.True(t, ok)
	assert.Equal(t, refNow.Add(45*time.Minute), got)

	got, ok = timeparse.ExtractDateTime("after 1 minute please", refNow)
	require.True(t, ok)
	assert.Equal(t, refNow.Add(time.Minute), got)
}

func TestExtractDateTime_RelativeHours(t *testing.T) {
	got, ok := timeparse.ExtractDateTime("wake me in 2 hours", refNow)
	require.True(t, ok)
	assert.Equal(t, refNow.Add(2*time.Hour), got)
}

func TestExtractDateTime_MinutesWinOverClockTime(t *testing.T) {
	// Patterns are never combined; the first match in priority order wins.
	got, ok := timeparse.ExtractDateTime("in 5 minutes at 3pm", refNow)
	require.True(t, ok)
	assert.Equal(t, refNow.Add(5*time.Minute), got)
}

func TestExtractDateTime_ClockTime(t *testing.T) {
	t.Run("time already passed today rolls to tomorrow", func(t *testing.T) {
		// refNow is 14:00, so 9am is tomorrow.
		got, ok := timeparse.ExtractDateTime("at 9am", refNow)
		require.True(t, ok)
		assert.Equal(t, time.Date(2025, 3, 11, 9, 0, 0, 0, time.UTC), got)
	})

	t.Run("time still ahead today stays today", func(t *testing.T) {
		morning := time.Date(2025, 3, 10, 6, 0, 0, 0, time.UTC)
		got, ok := timeparse.ExtractDateTime("at 9am", morning)
		require.True(t, ok)
		assert.Equal(t, time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC), got)
	})

	t.Run("with minutes and pm", func(t *testing.T) {
		got, ok := timeparse.ExtractDateTime("at 5:30pm", refNow)
		require.True(t, ok)
		assert.Equal(t, time.Date(2025, 3, 10, 17, 30, 0, 0, time.UTC), got)
	})

	t.Run("bare hour with period", func(t *testing.T) {
		got, ok := timeparse.ExtractDateTime("set alarm for 7am", refNow)
		require.True(t, ok)
		assert.Equal(t, time.Date(2025, 3, 11, 7, 0, 0, 0, time.UTC), got)
	})
}

func TestExtractDateTime_TwelveHourNormalization(t *testing.T) {
	got, ok := timeparse.ExtractDateTime("at 12am", refNow)
	require.True(t, ok)
	// Midnight has passed at 14:00, so this is tomorrow 00:00.
	assert.Equal(t, time.Date(2025, 3, 11, 0, 0, 0, 0, time.UTC), got)

	got, ok = timeparse.ExtractDateTime("at 12pm", refNow)
	require.True(t, ok)
	// Noon has also passed at 14:00.
	assert.Equal(t, time.Date(2025, 3, 11, 12, 0, 0, 0, time.UTC), got)
}

func TestExtractDateTime_MalformedHourFailsSilently(t *testing.T) {
	_, ok := timeparse.ExtractDateTime("at 25pm", refNow)
	assert.False(t, ok, "an out-of-range hour must not produce a date")
}

func TestExtractDateTime_TomorrowWithoutClockTime(t *testing.T) {
	// A bare "tomorrow" is ambiguous and yields nothing.
	_, ok := timeparse.ExtractDateTime("remind me tomorrow", refNow)
	assert.False(t, ok)
}

func TestExtractDateTime_NoTimeExpression(t *testing.T) {
	_, ok := timeparse.ExtractDateTime("remind me to water the plants", refNow)
	assert.False(t, ok)
}

func TestExtractTaskText(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"trigger and clock time", "remind me to call mom at 5pm", "call mom"},
		{"trigger and relative time", "remind me to stretch in 45 minutes", "stretch"},
		{"set a reminder phrasing", "set a reminder to buy milk", "buy milk"},
		{"tomorrow stripped", "remind me to submit the report tomorrow", "submit the report"},
		{"mixed case trigger", "Remind Me To feed the cat", "feed the cat"},
		{"only first trigger removed", "remind me to remind me", "remind me"},
		{"nothing left", "remind me at 5pm", ""},
		{"no trigger at all", "call mom at 5pm", "call mom"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, timeparse.ExtractTaskText(tt.input))
		})
	}
}
