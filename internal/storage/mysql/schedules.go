package mysql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"vue-supply/internal/storage"
)

func (s *Storage) SaveSchedule(ctx context.Context, sched *storage.ProductionSchedule) (int64, error) {
	const op = "storage.mysql.schedules.SaveSchedule"

	stmt := `
		INSERT INTO production_schedules
			(order_id, order_num, vendor_id, transfer_date, earliest_production_date,
			 start_date, end_date, status, is_manually_adjusted)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	exec, err := s.db.ExecContext(ctx, stmt,
		sched.OrderID, sched.OrderNum, sched.VendorID,
		nullDate(sched.TransferDate), nullDate(sched.EarliestProductionDate),
		sched.StartDate, sched.EndDate, sched.Status, sched.IsManuallyAdjusted)
	if err != nil {
		return 0, fmt.Errorf("%s: ошибка сохранения графика по заказу '%s': %w", op, sched.OrderNum, err)
	}

	return exec.LastInsertId()
}

func (s *Storage) SaveAllocations(ctx context.Context, scheduleID int64, allocations []storage.CapacityAllocation) error {
	const op = "storage.mysql.schedules.SaveAllocations"

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%s: begin transaction: %w", op, err)
	}

	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO capacity_allocations
			(schedule_id, vendor_id, line, day, quantity)
		VALUES (?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("%s: prepare statement: %w", op, err)
	}
	defer stmt.Close()

	for _, alloc := range allocations {
		_, err := stmt.ExecContext(ctx, scheduleID, alloc.VendorID, alloc.Line, alloc.Day, alloc.Quantity)
		if err != nil {
			return fmt.Errorf("%s: ошибка сохранения резерва (линия %d, %s): %w",
				op, alloc.Line, alloc.Day.Format("2006-01-02"), err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%s: commit: %w", op, err)
	}

	return nil
}

// DeleteSchedulesByOrders удаляет графики заказов вместе с их резервами —
// перед перегенерацией
func (s *Storage) DeleteSchedulesByOrders(ctx context.Context, orderIDs []int) error {
	const op = "storage.mysql.schedules.DeleteSchedulesByOrders"

	if len(orderIDs) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%s: begin transaction: %w", op, err)
	}

	defer tx.Rollback()

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(orderIDs)), ",")
	args := make([]interface{}, len(orderIDs))
	for i, id := range orderIDs {
		args[i] = id
	}

	stmtAlloc := `
		DELETE a FROM capacity_allocations a
		JOIN production_schedules p ON p.id = a.schedule_id
		WHERE p.order_id IN (` + placeholders + `)`
	if _, err := tx.ExecContext(ctx, stmtAlloc, args...); err != nil {
		return fmt.Errorf("%s: ошибка удаления резервов: %w", op, err)
	}

	stmtSched := `DELETE FROM production_schedules WHERE order_id IN (` + placeholders + `)`
	if _, err := tx.ExecContext(ctx, stmtSched, args...); err != nil {
		return fmt.Errorf("%s: ошибка удаления графиков: %w", op, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%s: commit: %w", op, err)
	}

	return nil
}

func (s *Storage) GetSchedulesMonth(ctx context.Context, year int, month int) ([]*storage.ProductionSchedule, error) {
	const op = "storage.mysql.schedules.GetSchedulesMonth"

	startOfMonth := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	endOfMonth := startOfMonth.AddDate(0, 1, 0)

	// Берём все графики, чей диапазон пересекает месяц
	stmt := `
		SELECT id, order_id, order_num, vendor_id, transfer_date, earliest_production_date,
		       start_date, end_date, status, is_manually_adjusted
		FROM production_schedules
		WHERE start_date < ? AND end_date >= ?
		ORDER BY vendor_id, start_date, id
	`

	rows, err := s.db.QueryContext(ctx, stmt, endOfMonth, startOfMonth)
	if err != nil {
		return nil, fmt.Errorf("%s: ошибка получения графиков за месяц: %w", op, err)
	}
	defer rows.Close()

	var schedules []*storage.ProductionSchedule
	for rows.Next() {
		sched, err := scanSchedule(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		schedules = append(schedules, sched)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: ошибка сканирования строк: %w", op, err)
	}

	return schedules, nil
}

func (s *Storage) GetScheduleByID(ctx context.Context, id int64) (*storage.ProductionSchedule, error) {
	const op = "storage.mysql.schedules.GetScheduleByID"

	stmt := `
		SELECT id, order_id, order_num, vendor_id, transfer_date, earliest_production_date,
		       start_date, end_date, status, is_manually_adjusted
		FROM production_schedules
		WHERE id = ?
	`

	sched, err := scanSchedule(s.db.QueryRowContext(ctx, stmt, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: график id=%d: %w", op, id, storage.ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return sched, nil
}

// UpdateScheduleDates применяет ручной перенос. Оптимистичная проверка:
// строка обновляется только если даты не менялись с момента чтения, иначе
// возвращается storage.ErrScheduleModified.
func (s *Storage) UpdateScheduleDates(ctx context.Context, id int64, prevStart, prevEnd, newStart, newEnd time.Time) error {
	const op = "storage.mysql.schedules.UpdateScheduleDates"

	stmt := `
		UPDATE production_schedules
		SET start_date = ?, end_date = ?, is_manually_adjusted = 1
		WHERE id = ? AND start_date = ? AND end_date = ?
	`

	exec, err := s.db.ExecContext(ctx, stmt, newStart, newEnd, id, prevStart, prevEnd)
	if err != nil {
		return fmt.Errorf("%s: ошибка переноса графика id=%d: %w", op, id, err)
	}

	affected, err := exec.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if affected == 0 {
		return fmt.Errorf("%s: график id=%d: %w", op, id, storage.ErrScheduleModified)
	}

	return nil
}

// GetVendorAllocations — сохранённые резервы всех изготовителей в диапазоне
// дат, для восстановления ledger перед новым расчётом
func (s *Storage) GetVendorAllocations(ctx context.Context, from time.Time, to time.Time) ([]storage.CapacityAllocation, error) {
	const op = "storage.mysql.schedules.GetVendorAllocations"

	stmt := `
		SELECT schedule_id, vendor_id, line, day, quantity
		FROM capacity_allocations
		WHERE day >= ? AND day <= ?
		ORDER BY vendor_id, line, day
	`

	rows, err := s.db.QueryContext(ctx, stmt, from, to)
	if err != nil {
		return nil, fmt.Errorf("%s: ошибка получения резервов: %w", op, err)
	}
	defer rows.Close()

	var allocations []storage.CapacityAllocation
	for rows.Next() {
		var alloc storage.CapacityAllocation

		err := rows.Scan(&alloc.ScheduleID, &alloc.VendorID, &alloc.Line, &alloc.Day, &alloc.Quantity)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}

		allocations = append(allocations, alloc)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: ошибка сканирования строк: %w", op, err)
	}

	return allocations, nil
}

func nullDate(t time.Time) interface{} {
	if t.IsZero() {
		return nil
	}
	return t
}

func scanSchedule(row rowScanner) (*storage.ProductionSchedule, error) {
	var sched storage.ProductionSchedule
	var transfer, earliest sql.NullTime

	err := row.Scan(&sched.ID, &sched.OrderID, &sched.OrderNum, &sched.VendorID,
		&transfer, &earliest, &sched.StartDate, &sched.EndDate,
		&sched.Status, &sched.IsManuallyAdjusted)
	if err != nil {
		return nil, err
	}

	if transfer.Valid {
		sched.TransferDate = transfer.Time
	}
	if earliest.Valid {
		sched.EarliestProductionDate = earliest.Time
	}

	return &sched, nil
}
