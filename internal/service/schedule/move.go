package schedule

import (
	"fmt"
	"time"

	"vue-supply/internal/storage"
)

// MoveRequest — перенос полосы графика на таймлайне. Количество и
// длительность не меняются, двигается только позиция.
type MoveRequest struct {
	NewStart time.Time
	NewEnd   time.Time
	// Изготовитель, на строку которого пользователь перетащил полосу
	VendorID int
}

type MoveDecision struct {
	Accepted bool   `json:"accepted"`
	Reason   string `json:"reason,omitempty"`
}

func rejected(format string, args ...any) MoveDecision {
	return MoveDecision{Reason: fmt.Sprintf(format, args...)}
}

// ValidateMove проверяет ручной перенос графика по календарю, самой ранней
// дате производства и сроку поставки. Занятость линий не перепроверяется:
// ручной перенос — осознанное решение плановика, перегруз линии допускается,
// ограничиваются только даты.
func (a *Allocator) ValidateMove(sched *storage.ProductionSchedule, order *storage.Order, move MoveRequest) MoveDecision {
	newStart := DateOnly(move.NewStart)
	newEnd := DateOnly(move.NewEnd)

	if newEnd.Before(newStart) {
		return rejected("некорректный диапазон: окончание раньше начала")
	}

	if !a.calendar.IsWorkingDay(newStart) {
		return rejected("нельзя начинать производство в выходной")
	}
	if !a.calendar.IsWorkingDay(newEnd) {
		return rejected("нельзя заканчивать производство в выходной")
	}

	if !sched.EarliestProductionDate.IsZero() && newStart.Before(DateOnly(sched.EarliestProductionDate)) {
		return rejected("производство не может начаться раньше %s",
			DateOnly(sched.EarliestProductionDate).Format("02.01.2006"))
	}

	if order.DeliveryDate != nil {
		delivery := DateOnly(*order.DeliveryDate)
		if newEnd.After(delivery) {
			return rejected("производство не может закончиться позже срока поставки %s",
				delivery.Format("02.01.2006"))
		}
	}

	if move.VendorID != 0 && move.VendorID != sched.VendorID {
		return rejected("перенос заказа к другому изготовителю запрещён")
	}

	// Длительность в рабочих днях зафиксирована при расчёте графика
	if a.calendar.WorkingDayCount(newStart, newEnd) != a.calendar.WorkingDayCount(sched.StartDate, sched.EndDate) {
		return rejected("длительность производства при переносе менять нельзя")
	}

	return MoveDecision{Accepted: true}
}
