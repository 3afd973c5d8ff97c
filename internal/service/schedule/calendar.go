package schedule

import "time"

// WorkingDayPolicy — стратегия определения рабочих дней.
// Сейчас единственная реализация исключает только субботу и воскресенье,
// производственный календарь с праздниками подключается отдельной реализацией.
type WorkingDayPolicy interface {
	IsWorkingDay(day time.Time) bool
}

type WeekendPolicy struct{}

func (WeekendPolicy) IsWorkingDay(day time.Time) bool {
	wd := day.Weekday()
	return wd != time.Saturday && wd != time.Sunday
}

type Calendar struct {
	policy WorkingDayPolicy
}

func NewCalendar(policy WorkingDayPolicy) *Calendar {
	if policy == nil {
		policy = WeekendPolicy{}
	}
	return &Calendar{policy: policy}
}

// DateOnly отбрасывает время внутри суток, планирование работает по датам
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func (c *Calendar) IsWorkingDay(day time.Time) bool {
	return c.policy.IsWorkingDay(day)
}

// NextWorkingDay возвращает n-й рабочий день после day.
// Сам day никогда не возвращается, n >= 1.
func (c *Calendar) NextWorkingDay(day time.Time, n int) time.Time {
	d := DateOnly(day)
	for i := 0; i < n; {
		d = d.AddDate(0, 0, 1)
		if c.policy.IsWorkingDay(d) {
			i++
		}
	}
	return d
}

// WorkingDaysBetween перечисляет рабочие дни от start до end включительно.
// Пустой результат, если start > end или в диапазоне нет рабочих дней.
func (c *Calendar) WorkingDaysBetween(start, end time.Time) []time.Time {
	from := DateOnly(start)
	to := DateOnly(end)

	var days []time.Time
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		if c.policy.IsWorkingDay(d) {
			days = append(days, d)
		}
	}

	return days
}

// WorkingDayCount — количество рабочих дней в диапазоне, нужен валидатору
// переноса для сравнения длительности
func (c *Calendar) WorkingDayCount(start, end time.Time) int {
	return len(c.WorkingDaysBetween(start, end))
}
