package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func TestIsWorkingDay(t *testing.T) {
	cal := NewCalendar(nil)

	// 2026-03-02 — понедельник
	assert.True(t, cal.IsWorkingDay(date(2026, time.March, 2)))
	assert.True(t, cal.IsWorkingDay(date(2026, time.March, 6)))

	// суббота и воскресенье
	assert.False(t, cal.IsWorkingDay(date(2026, time.March, 7)))
	assert.False(t, cal.IsWorkingDay(date(2026, time.March, 8)))
}

func TestNextWorkingDay(t *testing.T) {
	cal := NewCalendar(nil)

	// пятница + 1 → понедельник
	assert.Equal(t, date(2026, time.March, 9), cal.NextWorkingDay(date(2026, time.March, 6), 1))

	// понедельник + 1 → вторник, сам день не считается
	assert.Equal(t, date(2026, time.March, 3), cal.NextWorkingDay(date(2026, time.March, 2), 1))

	// четверг + 2 → понедельник, через выходные
	assert.Equal(t, date(2026, time.March, 9), cal.NextWorkingDay(date(2026, time.March, 5), 2))

	// с субботы + 1 → понедельник
	assert.Equal(t, date(2026, time.March, 9), cal.NextWorkingDay(date(2026, time.March, 7), 1))
}

func TestWorkingDaysBetween(t *testing.T) {
	cal := NewCalendar(nil)

	// Неделя со вторника по понедельник: выходные выпадают
	days := cal.WorkingDaysBetween(date(2026, time.March, 3), date(2026, time.March, 9))
	assert.Equal(t, []time.Time{
		date(2026, time.March, 3),
		date(2026, time.March, 4),
		date(2026, time.March, 5),
		date(2026, time.March, 6),
		date(2026, time.March, 9),
	}, days)

	// Диапазон из одних выходных — пусто
	assert.Empty(t, cal.WorkingDaysBetween(date(2026, time.March, 7), date(2026, time.March, 8)))

	// start > end — пусто
	assert.Empty(t, cal.WorkingDaysBetween(date(2026, time.March, 9), date(2026, time.March, 3)))

	// Один рабочий день
	assert.Len(t, cal.WorkingDaysBetween(date(2026, time.March, 4), date(2026, time.March, 4)), 1)
}

func TestWorkingDayCount(t *testing.T) {
	cal := NewCalendar(nil)

	assert.Equal(t, 5, cal.WorkingDayCount(date(2026, time.March, 2), date(2026, time.March, 8)))
	assert.Equal(t, 0, cal.WorkingDayCount(date(2026, time.March, 7), date(2026, time.March, 8)))
}
