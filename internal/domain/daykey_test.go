package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatDay_Stable(t *testing.T) {
	a := FormatDay(2025, time.January, 5).String()
	b := FormatDay(2025, time.January, 5).String()
	assert.Equal(t, "05/01/2025", a)
	assert.Equal(t, a, b)
}

func TestFormatDay_ZeroPadded(t *testing.T) {
	assert.Equal(t, "01/09/2024", FormatDay(2024, time.September, 1).String())
	assert.Equal(t, "31/12/1999", FormatDay(1999, time.December, 31).String())
}

func TestParseDayKey_RoundTrip(t *testing.T) {
	k, err := ParseDayKey("29/02/2024")
	require.NoError(t, err)
	assert.Equal(t, DayKey{Year: 2024, Month: time.February, Day: 29}, k)
	assert.Equal(t, "29/02/2024", k.String())
}

func TestParseDayKey_Invalid(t *testing.T) {
	cases := []string{"", "2024-02-29", "32/01/2025", "29/02/2025", "01/13/2025", "aa/bb/cccc"}
	for _, c := range cases {
		_, err := ParseDayKey(c)
		assert.Error(t, err, "input %q", c)
	}
}

func TestDaysInMonth(t *testing.T) {
	assert.Equal(t, 29, DaysInMonth(2024, time.February))
	assert.Equal(t, 28, DaysInMonth(2025, time.February))
	assert.Equal(t, 28, DaysInMonth(1900, time.February)) // century, not leap
	assert.Equal(t, 29, DaysInMonth(2000, time.February)) // 400 rule
	assert.Equal(t, 30, DaysInMonth(2025, time.April))
	assert.Equal(t, 31, DaysInMonth(2025, time.July))
}

func TestDayKey_BeforeAndAddDays(t *testing.T) {
	k := FormatDay(2025, time.December, 31)
	next := k.AddDays(1)
	assert.Equal(t, FormatDay(2026, time.January, 1), next)
	assert.True(t, k.Before(next))
	assert.False(t, next.Before(k))
	assert.False(t, k.Before(k))
}

func TestDaySet_UnionAndStrings(t *testing.T) {
	a, err := ParseDaySet([]string{"01/01/2025"})
	require.NoError(t, err)
	b, err := ParseDaySet([]string{"02/01/2025", "01/01/2025"})
	require.NoError(t, err)

	a.Union(b)
	assert.Equal(t, []string{"01/01/2025", "02/01/2025"}, a.Strings())
}

func TestDaySet_Intersects(t *testing.T) {
	a := NewDaySet(FormatDay(2025, time.May, 5), FormatDay(2025, time.May, 6))
	b := NewDaySet(FormatDay(2025, time.May, 6))
	c := NewDaySet(FormatDay(2025, time.May, 7))
	assert.True(t, a.Intersects(b))
	assert.True(t, b.Intersects(a))
	assert.False(t, a.Intersects(c))
	assert.False(t, a.Intersects(NewDaySet()))
}
