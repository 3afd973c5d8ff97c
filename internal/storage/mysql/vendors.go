package mysql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"vue-supply/internal/storage"
)

func (s *Storage) GetVendors(ctx context.Context) ([]*storage.Vendor, error) {
	const op = "storage.mysql.vendors.GetVendors"

	stmt := `
		SELECT id, name, daily_capacity, line_count, active
		FROM supply_vendors
		WHERE active = 1
		ORDER BY name
	`

	rows, err := s.db.QueryContext(ctx, stmt)
	if err != nil {
		return nil, fmt.Errorf("%s: ошибка получения изготовителей: %w", op, err)
	}
	defer rows.Close()

	var vendors []*storage.Vendor
	for rows.Next() {
		var vendor storage.Vendor

		err := rows.Scan(&vendor.ID, &vendor.Name, &vendor.DailyCapacity, &vendor.LineCount, &vendor.Active)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}

		vendors = append(vendors, &vendor)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: ошибка сканирования строк: %w", op, err)
	}

	return vendors, nil
}

func (s *Storage) GetVendorByID(ctx context.Context, id int) (*storage.Vendor, error) {
	const op = "storage.mysql.vendors.GetVendorByID"

	stmt := `
		SELECT id, name, daily_capacity, line_count, active
		FROM supply_vendors
		WHERE id = ?
	`

	var vendor storage.Vendor
	err := s.db.QueryRowContext(ctx, stmt, id).
		Scan(&vendor.ID, &vendor.Name, &vendor.DailyCapacity, &vendor.LineCount, &vendor.Active)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: изготовитель id=%d: %w", op, id, storage.ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &vendor, nil
}

func (s *Storage) SaveVendor(ctx context.Context, vendor storage.Vendor) (int64, error) {
	const op = "storage.mysql.vendors.SaveVendor"

	stmt := `INSERT INTO supply_vendors (name, daily_capacity, line_count, active) VALUES (?, ?, ?, ?)`

	exec, err := s.db.ExecContext(ctx, stmt, vendor.Name, vendor.DailyCapacity, vendor.LineCount, vendor.Active)
	if err != nil {
		return 0, fmt.Errorf("%s: ошибка сохранения изготовителя '%s': %w", op, vendor.Name, err)
	}

	return exec.LastInsertId()
}

func (s *Storage) UpdateVendor(ctx context.Context, vendor storage.Vendor) error {
	const op = "storage.mysql.vendors.UpdateVendor"

	stmt := `
		UPDATE supply_vendors
		SET name = ?, daily_capacity = ?, line_count = ?, active = ?
		WHERE id = ?
	`

	exec, err := s.db.ExecContext(ctx, stmt, vendor.Name, vendor.DailyCapacity, vendor.LineCount, vendor.Active, vendor.ID)
	if err != nil {
		return fmt.Errorf("%s: ошибка обновления изготовителя id=%d: %w", op, vendor.ID, err)
	}

	affected, err := exec.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if affected == 0 {
		return fmt.Errorf("%s: изготовитель id=%d: %w", op, vendor.ID, storage.ErrNotFound)
	}

	return nil
}
