// Copyright (c) Foster Meadows
// SPDX-License-Identifier: MIT

package datekey

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

func TestKey(t *testing.T) {
	assert.Equal(t, "2024-09-03", Key(date(2024, time.September, 3)))
	assert.Equal(t, "2024-12-31", Key(date(2024, time.December, 31)))
	assert.Equal(t, "0099-01-05", Key(date(99, time.January, 5)))

	// The key must come from local components even when the time of day
	// would cross midnight in UTC.
	late := time.Date(2024, time.September, 3, 23, 30, 0, 0, time.Local)
	assert.Equal(t, "2024-09-03", Key(late))
}

func TestParseKeyRoundTrip(t *testing.T) {
	d := date(2024, time.September, 3)
	got, err := ParseKey(Key(d))
	require.NoError(t, err)
	assert.True(t, SameDay(d, got))

	_, err = ParseKey("09-03-2024")
	assert.Error(t, err)
}

func TestParamRoundTrip(t *testing.T) {
	dates := []time.Time{
		date(2024, time.September, 3),
		date(2024, time.January, 1),
		date(2023, time.December, 31),
		date(2024, time.February, 29),
		date(1999, time.November, 9),
	}
	for _, d := range dates {
		got, ok := ParseParam(Param(d))
		require.True(t, ok, "round-trip of %s", Param(d))
		assert.Equal(t, d.Year(), got.Year())
		assert.Equal(t, d.Month(), got.Month())
		assert.Equal(t, d.Day(), got.Day())
	}
}

func TestParseParamMalformed(t *testing.T) {
	bad := []string{
		"",
		"09.03.24",
		"9.3.2024",
		"2024-09-03",
		"09/03/2024",
		"13.40.2024",
		"aa.bb.cccc",
		"09.03.2024extra",
	}
	for _, s := range bad {
		_, ok := ParseParam(s)
		assert.False(t, ok, "expected %q to be rejected", s)
	}
}

func TestMondayOf(t *testing.T) {
	mon := date(2024, time.September, 2)
	for i := 0; i < 5; i++ {
		assert.True(t, SameDay(mon, MondayOf(AddDays(mon, i))), "weekday offset %d", i)
	}
	// Saturday and Sunday anchor back to the Monday before.
	assert.True(t, SameDay(mon, MondayOf(date(2024, time.September, 7))))
	assert.True(t, SameDay(mon, MondayOf(date(2024, time.September, 8))))
}

func TestIsWeekend(t *testing.T) {
	assert.True(t, IsWeekend(date(2024, time.September, 7)))
	assert.True(t, IsWeekend(date(2024, time.September, 8)))
	assert.False(t, IsWeekend(date(2024, time.September, 9)))
}
