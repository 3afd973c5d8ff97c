package schedule

import (
	"time"

	"vue-supply/internal/storage"
)

type ledgerKey struct {
	vendorID int
	line     int
	day      string // YYYY-MM-DD, чтобы не зависеть от location в time.Time
}

func dayKey(vendorID, line int, day time.Time) ledgerKey {
	return ledgerKey{
		vendorID: vendorID,
		line:     line,
		day:      DateOnly(day).Format("2006-01-02"),
	}
}

// Ledger — текущая загрузка мощностей по ячейкам (изготовитель, линия, день).
// Отсутствующий ключ означает ноль. Ledger сам ничего не ограничивает:
// решение, сколько резервировать, остаётся за аллокатором.
type Ledger struct {
	allocated map[ledgerKey]int
}

func NewLedger() *Ledger {
	return &Ledger{allocated: make(map[ledgerKey]int)}
}

// NewLedgerFromAllocations восстанавливает загрузку из сохранённых резервов,
// чтобы новый расчёт видел обязательства прошлых запусков
func NewLedgerFromAllocations(rows []storage.CapacityAllocation) *Ledger {
	l := NewLedger()
	for _, row := range rows {
		l.Reserve(row.VendorID, row.Line, row.Day, row.Quantity)
	}
	return l
}

func (l *Ledger) Allocated(vendorID, line int, day time.Time) int {
	return l.allocated[dayKey(vendorID, line, day)]
}

// Reserve добавляет quantity к занятому объёму ячейки.
// Вызывающий гарантирует quantity <= свободного остатка.
func (l *Ledger) Reserve(vendorID, line int, day time.Time, quantity int) {
	l.allocated[dayKey(vendorID, line, day)] += quantity
}

type LineCapacity struct {
	Line      int
	Available int
}

// AvailableLines возвращает линии изготовителя со свободным остатком на день,
// в порядке номеров линий. Линии без остатка не возвращаются.
func (l *Ledger) AvailableLines(vendor *storage.Vendor, day time.Time) []LineCapacity {
	var lines []LineCapacity
	for line := 1; line <= vendor.LineCount; line++ {
		available := vendor.DailyCapacity - l.Allocated(vendor.ID, line, day)
		if available > 0 {
			lines = append(lines, LineCapacity{Line: line, Available: available})
		}
	}
	return lines
}
