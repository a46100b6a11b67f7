package timeparse

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFormats(t *testing.T) {
	tests := []struct {
		raw    string
		wantOK bool
		want   string
	}{
		{"09:05", true, "09:05"},
		{"09:05:00", true, "09:05"},
		{"09:05:30", true, "09:05"}, // seconds truncated
		{"9:5", true, "09:05"},
		{" 14:30 ", true, "14:30"},
		{"00:00", true, "00:00"},
		{"23:59", true, "23:59"},
		{"24:00", false, ""},
		{"12:60", false, ""},
		{"12:30:61", false, ""},
		{"-1:15", false, ""},
		{"not-a-time", false, ""},
		{"", false, ""},
		{"12", false, ""},
		{"::", false, ""},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			tod, ok := Parse(tt.raw)
			assert.Equal(t, tt.wantOK, ok)
			if ok {
				assert.Equal(t, tt.want, tod.String())
			}
		})
	}
}

func TestParseEquivalentForms(t *testing.T) {
	a, ok := Parse("9:5")
	require.True(t, ok)
	b, ok := Parse("09:05:00")
	require.True(t, ok)
	assert.Equal(t, a, b)
}

func TestNormalize(t *testing.T) {
	got, ok := Normalize("8:0:0")
	require.True(t, ok)
	assert.Equal(t, "08:00", got)

	_, ok = Normalize("midnight")
	assert.False(t, ok)
}

func TestMinutesAndOrdering(t *testing.T) {
	early, _ := Parse("09:00")
	late, _ := Parse("17:30")

	assert.Equal(t, 540, early.Minutes())
	assert.True(t, early.Before(late))
	assert.False(t, late.Before(early))
}

func TestAt(t *testing.T) {
	loc, err := time.LoadLocation("Europe/Berlin")
	require.NoError(t, err)

	date := time.Date(2026, 3, 9, 0, 0, 0, 0, loc)
	tod, _ := Parse("10:15")

	anchored := tod.At(date)
	assert.Equal(t, 10, anchored.Hour())
	assert.Equal(t, 15, anchored.Minute())
	assert.Equal(t, loc, anchored.Location())
	assert.Equal(t, date.Day(), anchored.Day())
}

func TestAddMinutes(t *testing.T) {
	tod, _ := Parse("09:45")
	assert.Equal(t, "10:15", tod.AddMinutes(30).String())
}
