package storage

import "time"

const (
	StatusPlanned    = "planned"
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
	StatusDelayed    = "delayed"
)

type ProductionSchedule struct {
	ID       int64  `json:"id"`
	OrderID  int    `json:"order_id"`
	OrderNum string `json:"order_num"`
	VendorID int    `json:"vendor_id"`

	// Передача заказа изготовителю — первый рабочий день после размещения
	TransferDate time.Time `json:"transfer_date"`
	// Самый ранний рабочий день, когда можно начать производство
	EarliestProductionDate time.Time `json:"earliest_production_date"`

	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`

	Status             string `json:"status"`
	IsManuallyAdjusted bool   `json:"is_manually_adjusted"`
}

// Резерв мощности на ячейку (изготовитель, линия, день).
// Сумма резервов ячейки никогда не превышает Vendor.DailyCapacity.
type CapacityAllocation struct {
	ScheduleID int64     `json:"schedule_id"`
	VendorID   int       `json:"vendor_id"`
	Line       int       `json:"line"`
	Day        time.Time `json:"day"`
	Quantity   int       `json:"quantity"`
}
