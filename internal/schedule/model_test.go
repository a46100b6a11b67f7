package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeInputsDedupesAndPads(t *testing.T) {
	inputs := []RuleInput{
		{DayOfWeek: 1, IsOpen: true, StartTime: strptr("9:0"), EndTime: strptr("12:00")},
		{DayOfWeek: 1, IsOpen: true, StartTime: strptr("09:00:00"), EndTime: strptr("12:00")},
		{DayOfWeek: 1, IsOpen: true, StartTime: strptr("14:00"), EndTime: strptr("17:00")},
	}

	out := NormalizeInputs(inputs)

	require.Len(t, out, 2)
	assert.Equal(t, "09:00", *out[0].StartTime)
	assert.Equal(t, "14:00", *out[1].StartTime)
}

func TestNormalizeInputsInvertedSlotDegradesToClosed(t *testing.T) {
	inputs := []RuleInput{
		{DayOfWeek: 2, IsOpen: true, StartTime: strptr("18:00"), EndTime: strptr("09:00")},
	}

	out := NormalizeInputs(inputs)

	require.Len(t, out, 1)
	assert.False(t, out[0].IsOpen)
	assert.Nil(t, out[0].StartTime)
	assert.Nil(t, out[0].EndTime)
}

func TestNormalizeInputsClosedDayKept(t *testing.T) {
	inputs := []RuleInput{{DayOfWeek: 0, IsOpen: false}}

	out := NormalizeInputs(inputs)

	require.Len(t, out, 1)
	assert.Equal(t, 0, out[0].DayOfWeek)
	assert.False(t, out[0].IsOpen)
}

func TestNormalizeInputsDropsOutOfRangeDays(t *testing.T) {
	inputs := []RuleInput{
		{DayOfWeek: 7, IsOpen: true, StartTime: strptr("09:00"), EndTime: strptr("12:00")},
		{DayOfWeek: -1, IsOpen: false},
	}

	assert.Empty(t, NormalizeInputs(inputs))
}
