package dateutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDateInput(t *testing.T) {
	t.Run("ValidDate", func(t *testing.T) {
		got, ok := ParseDateInput("2024-05-10")
		require.True(t, ok)
		assert.Equal(t, 2024, got.Year())
		assert.Equal(t, time.May, got.Month())
		assert.Equal(t, 10, got.Day())
	})

	t.Run("RoundTrip", func(t *testing.T) {
		for _, value := range []string{"2024-01-01", "2024-02-29", "1999-12-31", "2025-06-05"} {
			got, ok := ParseDateInput(value)
			require.True(t, ok, value)
			assert.Equal(t, value, FormatDateForInput(got))
		}
	})

	t.Run("Invalid", func(t *testing.T) {
		for _, value := range []string{"", "2024-00-10", "0000-05-10", "2024-05-00", "abcd-ef-gh", "2024-05", "2024/05/10", "2024-05-10-11"} {
			_, ok := ParseDateInput(value)
			assert.False(t, ok, value)
		}
	})
}

func TestFormatTime(t *testing.T) {
	assert.Equal(t, "09:30", FormatTime("09:30:00"))
	assert.Equal(t, "09:30", FormatTime("09:30:00.123"))
	assert.Equal(t, "09:30", FormatTime("09:30"))
	assert.Equal(t, "", FormatTime(""))
}

func TestFormatTimeForWire(t *testing.T) {
	t.Run("NilPassesThrough", func(t *testing.T) {
		assert.Nil(t, FormatTimeForWire(nil))
	})

	t.Run("EmptyBecomesNil", func(t *testing.T) {
		empty := ""
		assert.Nil(t, FormatTimeForWire(&empty))
	})

	t.Run("ShortFormExtended", func(t *testing.T) {
		v := "09:30"
		got := FormatTimeForWire(&v)
		require.NotNil(t, got)
		assert.Equal(t, "09:30:00", *got)
	})

	t.Run("LongFormUnchanged", func(t *testing.T) {
		v := "09:30:15"
		got := FormatTimeForWire(&v)
		require.NotNil(t, got)
		assert.Equal(t, "09:30:15", *got)
	})

	t.Run("StableAfterDisplayTruncation", func(t *testing.T) {
		for _, wire := range []string{"09:00:00", "18:45:00", "07:05:00"} {
			display := FormatTime(wire)
			a := FormatTimeForWire(&display)
			b := FormatTimeForWire(&wire)
			require.NotNil(t, a)
			require.NotNil(t, b)
			assert.Equal(t, *b, *a)
		}
	})
}

func TestCombineDateAndTime(t *testing.T) {
	t.Run("WithSeconds", func(t *testing.T) {
		got, ok := CombineDateAndTime("2024-05-10", "09:00:00")
		require.True(t, ok)
		assert.Equal(t, time.Date(2024, time.May, 10, 9, 0, 0, 0, time.Local), got)
	})

	t.Run("WithoutSeconds", func(t *testing.T) {
		got, ok := CombineDateAndTime("2024-05-10", "09:00")
		require.True(t, ok)
		assert.Equal(t, 9, got.Hour())
	})

	t.Run("MissingParts", func(t *testing.T) {
		_, ok := CombineDateAndTime("", "09:00")
		assert.False(t, ok)
		_, ok = CombineDateAndTime("2024-05-10", "")
		assert.False(t, ok)
	})

	t.Run("Unparseable", func(t *testing.T) {
		_, ok := CombineDateAndTime("2024-05-10", "late morning")
		assert.False(t, ok)
	})
}

func TestSameDay(t *testing.T) {
	a := time.Date(2024, time.May, 10, 0, 0, 0, 0, time.Local)
	b := time.Date(2024, time.May, 10, 23, 59, 59, 0, time.Local)
	c := time.Date(2024, time.May, 11, 0, 0, 0, 0, time.Local)

	assert.True(t, SameDay(a, b))
	assert.False(t, SameDay(a, c))
}
