package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vue-supply/internal/storage"
)

func newOrder(id int, quantity int, orderDate time.Time, delivery *time.Time) *storage.Order {
	return &storage.Order{
		ID:           id,
		OrderNum:     "Q6-TEST",
		VendorID:     1,
		Quantity:     quantity,
		OrderDate:    orderDate,
		DeliveryDate: delivery,
	}
}

func newVendor(dailyCapacity, lineCount int) *storage.Vendor {
	return &storage.Vendor{ID: 1, Name: "Алютех", DailyCapacity: dailyCapacity, LineCount: lineCount}
}

// Заказ 100 000 ед., линия на 50 000 в день: передача во вторник, старт в
// среду, производство среда–четверг
func TestAllocate_TwoFullDays(t *testing.T) {
	alloc := NewAllocator(nil, 0)
	// понедельник
	order := newOrder(1, 100_000, date(2026, time.March, 2), nil)
	vendor := newVendor(50_000, 1)

	result := alloc.Allocate(order, vendor, NewLedger())

	require.True(t, result.Success)
	assert.Empty(t, result.Message)
	assert.Zero(t, result.Shortfall)

	sched := result.Schedule
	assert.Equal(t, date(2026, time.March, 3), sched.TransferDate)
	assert.Equal(t, date(2026, time.March, 4), sched.EarliestProductionDate)
	assert.Equal(t, date(2026, time.March, 4), sched.StartDate)
	assert.Equal(t, date(2026, time.March, 5), sched.EndDate)
	assert.Equal(t, storage.StatusPlanned, sched.Status)
	assert.False(t, sched.IsManuallyAdjusted)

	require.Len(t, result.Allocations, 2)
	assert.Equal(t, 50_000, result.Allocations[0].Quantity)
	assert.Equal(t, 50_000, result.Allocations[1].Quantity)
}

// Та же позиция при линии на 10 000 в день занимает первые 10 рабочих дней
func TestAllocate_TenWorkingDays(t *testing.T) {
	alloc := NewAllocator(nil, 0)
	order := newOrder(1, 100_000, date(2026, time.March, 2), nil)
	vendor := newVendor(10_000, 1)

	result := alloc.Allocate(order, vendor, NewLedger())

	require.True(t, result.Success)
	assert.Equal(t, date(2026, time.March, 4), result.Schedule.StartDate)
	assert.Equal(t, date(2026, time.March, 17), result.Schedule.EndDate)
	assert.Len(t, result.Allocations, 10)
}

// Мощности в горизонте не хватает: частичный график на весь горизонт плюс
// сообщение о неразмещённом остатке
func TestAllocate_Shortfall(t *testing.T) {
	alloc := NewAllocator(nil, 0)
	order := newOrder(1, 100_000, date(2026, time.March, 2), nil)
	vendor := newVendor(1_000, 1)

	result := alloc.Allocate(order, vendor, NewLedger())

	require.False(t, result.Success)
	// 23 рабочих дня с 04.03 по 03.04 включительно
	assert.Len(t, result.Allocations, 23)
	assert.Equal(t, 77_000, result.Shortfall)
	assert.Contains(t, result.Message, "77000")

	assert.Equal(t, date(2026, time.March, 4), result.Schedule.StartDate)
	assert.Equal(t, date(2026, time.April, 3), result.Schedule.EndDate)
	assert.Equal(t, storage.StatusDelayed, result.Schedule.Status)
}

// Срок поставки раньше самого раннего дня производства — рабочих дней нет
func TestAllocate_NoWorkingDays(t *testing.T) {
	alloc := NewAllocator(nil, 0)
	delivery := date(2026, time.March, 3)
	order := newOrder(1, 500, date(2026, time.March, 2), &delivery)
	vendor := newVendor(1_000, 1)

	result := alloc.Allocate(order, vendor, NewLedger())

	require.False(t, result.Success)
	assert.Equal(t, "нет рабочих дней в горизонте планирования", result.Message)
	assert.Empty(t, result.Allocations)
	assert.Equal(t, result.Schedule.EarliestProductionDate, result.Schedule.StartDate)
	assert.Equal(t, result.Schedule.StartDate, result.Schedule.EndDate)
}

// Несколько линий заполняются в порядке номеров внутри дня
func TestAllocate_MultipleLines(t *testing.T) {
	alloc := NewAllocator(nil, 0)
	order := newOrder(1, 25, date(2026, time.March, 2), nil)
	vendor := newVendor(10, 2)

	result := alloc.Allocate(order, vendor, NewLedger())

	require.True(t, result.Success)
	require.Len(t, result.Allocations, 3)

	// День 1: линия 1 и линия 2 целиком, день 2: остаток на линии 1
	assert.Equal(t, storage.CapacityAllocation{VendorID: 1, Line: 1, Day: date(2026, time.March, 4), Quantity: 10}, result.Allocations[0])
	assert.Equal(t, storage.CapacityAllocation{VendorID: 1, Line: 2, Day: date(2026, time.March, 4), Quantity: 10}, result.Allocations[1])
	assert.Equal(t, storage.CapacityAllocation{VendorID: 1, Line: 1, Day: date(2026, time.March, 5), Quantity: 5}, result.Allocations[2])

	assert.Equal(t, date(2026, time.March, 4), result.Schedule.StartDate)
	assert.Equal(t, date(2026, time.March, 5), result.Schedule.EndDate)
}

// Занятые другими заказами ячейки не переиспользуются
func TestAllocate_RespectsExistingReservations(t *testing.T) {
	alloc := NewAllocator(nil, 0)
	order := newOrder(1, 30, date(2026, time.March, 2), nil)
	vendor := newVendor(10, 1)

	ledger := NewLedger()
	// Первый день производства полностью занят чужим заказом
	ledger.Reserve(vendor.ID, 1, date(2026, time.March, 4), 10)

	result := alloc.Allocate(order, vendor, ledger)

	require.True(t, result.Success)
	assert.Equal(t, date(2026, time.March, 5), result.Schedule.StartDate)
	assert.Equal(t, date(2026, time.March, 9), result.Schedule.EndDate)

	// Инвариант: ни одна ячейка не превышает дневную мощность
	for _, a := range result.Allocations {
		assert.LessOrEqual(t, ledger.Allocated(a.VendorID, a.Line, a.Day), vendor.DailyCapacity)
	}
}

// Сумма резервов успешного размещения равна количеству в заказе, все даты
// рабочие, передача и старт строго упорядочены
func TestAllocate_Invariants(t *testing.T) {
	alloc := NewAllocator(nil, 0)
	cal := NewCalendar(nil)
	order := newOrder(1, 7_321, date(2026, time.March, 6), nil) // пятница
	vendor := newVendor(1_500, 2)

	result := alloc.Allocate(order, vendor, NewLedger())

	require.True(t, result.Success)

	total := 0
	for _, a := range result.Allocations {
		total += a.Quantity
		assert.LessOrEqual(t, a.Quantity, vendor.DailyCapacity)
		assert.True(t, cal.IsWorkingDay(a.Day))
	}
	assert.Equal(t, order.Quantity, total)

	sched := result.Schedule
	assert.True(t, sched.TransferDate.After(DateOnly(order.OrderDate)))
	assert.True(t, sched.EarliestProductionDate.After(sched.TransferDate))
	assert.True(t, cal.IsWorkingDay(sched.TransferDate))
	assert.True(t, cal.IsWorkingDay(sched.EarliestProductionDate))
	assert.True(t, cal.IsWorkingDay(sched.StartDate))
	assert.True(t, cal.IsWorkingDay(sched.EndDate))
	assert.False(t, sched.StartDate.Before(sched.EarliestProductionDate))
	assert.False(t, sched.EndDate.Before(sched.StartDate))
}

func TestAllocate_NonPositiveQuantity(t *testing.T) {
	alloc := NewAllocator(nil, 0)
	order := newOrder(1, 0, date(2026, time.March, 2), nil)
	vendor := newVendor(1_000, 1)

	result := alloc.Allocate(order, vendor, NewLedger())

	assert.False(t, result.Success)
	assert.Empty(t, result.Allocations)
	assert.Equal(t, "количество в заказе должно быть положительным", result.Message)
}
