package schedule

import (
	"fmt"
	"time"

	"vue-supply/internal/storage"
)

// DefaultHorizonDays — мягкий горизонт планирования в календарных днях
// для заказов без срока поставки
const DefaultHorizonDays = 30

// Result — итог размещения одного заказа. Нехватка мощностей и отсутствие
// изготовителя не являются ошибками: частичный график тоже сохраняется,
// чтобы плановик видел, что удалось разместить.
type Result struct {
	Schedule    *storage.ProductionSchedule  `json:"schedule"`
	Allocations []storage.CapacityAllocation `json:"allocations,omitempty"`
	Success     bool                         `json:"success"`
	Message     string                       `json:"message,omitempty"`
	// Неразмещённый остаток в единицах, 0 при успехе
	Shortfall int `json:"shortfall,omitempty"`
}

type Allocator struct {
	calendar    *Calendar
	horizonDays int
}

func NewAllocator(calendar *Calendar, horizonDays int) *Allocator {
	if calendar == nil {
		calendar = NewCalendar(nil)
	}
	if horizonDays <= 0 {
		horizonDays = DefaultHorizonDays
	}
	return &Allocator{calendar: calendar, horizonDays: horizonDays}
}

func (a *Allocator) Calendar() *Calendar {
	return a.calendar
}

// Allocate размещает один заказ у изготовителя, жадно заполняя рабочие дни и
// линии до полного количества либо до конца горизонта. Резервы пишутся в
// ledger тем же проходом, которым строится график, отдельного прохода
// заполнения нет.
func (a *Allocator) Allocate(order *storage.Order, vendor *storage.Vendor, ledger *Ledger) Result {
	orderDate := DateOnly(order.OrderDate)
	transfer := a.calendar.NextWorkingDay(orderDate, 1)
	earliest := a.calendar.NextWorkingDay(transfer, 1)

	deadline := earliest.AddDate(0, 0, a.horizonDays)
	if order.DeliveryDate != nil {
		deadline = DateOnly(*order.DeliveryDate)
	}

	sched := &storage.ProductionSchedule{
		OrderID:                order.ID,
		OrderNum:               order.OrderNum,
		VendorID:               vendor.ID,
		TransferDate:           transfer,
		EarliestProductionDate: earliest,
		Status:                 storage.StatusPlanned,
	}

	if order.Quantity <= 0 {
		sched.StartDate = earliest
		sched.EndDate = earliest
		sched.Status = storage.StatusDelayed
		return Result{
			Schedule: sched,
			Message:  "количество в заказе должно быть положительным",
		}
	}

	workingDays := a.calendar.WorkingDaysBetween(earliest, deadline)
	if len(workingDays) == 0 {
		// Срок поставки раньше самого раннего дня производства
		sched.StartDate = earliest
		sched.EndDate = earliest
		sched.Status = storage.StatusDelayed
		return Result{
			Schedule: sched,
			Message:  "нет рабочих дней в горизонте планирования",
		}
	}

	remaining := order.Quantity
	var planStart, planEnd time.Time
	var allocations []storage.CapacityAllocation

	for _, day := range workingDays {
		if remaining == 0 {
			break
		}
		for _, line := range ledger.AvailableLines(vendor, day) {
			take := min(remaining, line.Available)
			ledger.Reserve(vendor.ID, line.Line, day, take)
			allocations = append(allocations, storage.CapacityAllocation{
				VendorID: vendor.ID,
				Line:     line.Line,
				Day:      day,
				Quantity: take,
			})

			if planStart.IsZero() {
				planStart = day
			}
			planEnd = day

			remaining -= take
			if remaining == 0 {
				break
			}
		}
	}

	if planStart.IsZero() {
		// Не удалось разместить ни единицы, мощности полностью заняты
		planStart = earliest
		planEnd = earliest
	}

	sched.StartDate = planStart
	sched.EndDate = planEnd

	if remaining > 0 {
		sched.Status = storage.StatusDelayed
		return Result{
			Schedule:    sched,
			Allocations: allocations,
			Message:     fmt.Sprintf("недостаточно мощностей: не размещено %d ед.", remaining),
			Shortfall:   remaining,
		}
	}

	return Result{
		Schedule:    sched,
		Allocations: allocations,
		Success:     true,
	}
}
