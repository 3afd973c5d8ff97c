package storage

import "time"

type Order struct {
	ID           int        `json:"id"`
	OrderNum     string     `json:"order_num"`
	VendorID     int        `json:"vendor_id"`
	Customer     string     `json:"customer"`
	Quantity     int        `json:"quantity"`
	OrderDate    time.Time  `json:"order_date"`
	DeliveryDate *time.Time `json:"delivery_date"`
	DopInfo      string     `json:"dop_info"`
}
