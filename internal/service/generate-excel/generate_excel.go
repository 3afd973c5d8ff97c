package generate_excel

import (
	"context"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"vue-supply/internal/storage"
)

type GenerateExcelStorage interface {
	GetSchedulesMonth(ctx context.Context, year int, month int) ([]*storage.ProductionSchedule, error)
	GetOrdersMonth(ctx context.Context, year int, month int, search string) ([]*storage.Order, error)
	GetVendors(ctx context.Context) ([]*storage.Vendor, error)
}

type GenerateExcelService struct {
	storage GenerateExcelStorage
}

func NewGenerateService(storage GenerateExcelStorage) *GenerateExcelService {
	return &GenerateExcelService{storage: storage}
}

// GenerateExcel собирает отчет по графику производства за месяц
func (g *GenerateExcelService) GenerateExcel(ctx context.Context, year int, month int) ([]byte, error) {
	schedules, err := g.storage.GetSchedulesMonth(ctx, year, month)
	if err != nil {
		return nil, fmt.Errorf("fetch schedules: %w", err)
	}

	orders, err := g.storage.GetOrdersMonth(ctx, year, month, "")
	if err != nil {
		return nil, fmt.Errorf("fetch orders: %w", err)
	}

	vendors, err := g.storage.GetVendors(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch vendors: %w", err)
	}

	ordersByID := make(map[int]*storage.Order, len(orders))
	for _, o := range orders {
		ordersByID[o.ID] = o
	}
	vendorNames := make(map[int]string, len(vendors))
	for _, v := range vendors {
		vendorNames[v.ID] = v.Name
	}

	f := excelize.NewFile()
	defer f.Close()
	sheet := "График производства"
	f.SetSheetName("Sheet1", sheet)

	// --- СТИЛИ ---
	// Жирный шрифт для шапки
	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Bold: true},
		Fill:   excelize.Fill{Type: "pattern", Color: []string{"E0E0E0"}, Pattern: 1},
		Border: []excelize.Border{{Type: "bottom", Color: "000000", Style: 2}},
	})

	// Подсветка срывов
	delayedStyle, _ := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Color: []string{"FFC7CE"}, Pattern: 1},
	})

	headers := []string{"№ Заказа", "Заказчик", "Изготовитель", "Кол-во", "Передача",
		"Начало", "Окончание", "Срок поставки", "Статус", "Ручная правка"}

	for i, name := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, name)
	}

	lastCol, _ := excelize.CoordinatesToCellName(len(headers), 1)
	f.SetCellStyle(sheet, "A1", lastCol, headerStyle)

	dateOrEmpty := func(t time.Time) string {
		if t.IsZero() {
			return ""
		}
		return t.Format("02.01.2006")
	}

	for i, sched := range schedules {
		row := i + 2

		customer := ""
		quantity := 0
		delivery := ""
		if order, ok := ordersByID[sched.OrderID]; ok {
			customer = order.Customer
			quantity = order.Quantity
			if order.DeliveryDate != nil {
				delivery = order.DeliveryDate.Format("02.01.2006")
			}
		}

		adjusted := ""
		if sched.IsManuallyAdjusted {
			adjusted = "да"
		}

		values := []interface{}{
			sched.OrderNum,
			customer,
			vendorNames[sched.VendorID],
			quantity,
			dateOrEmpty(sched.TransferDate),
			sched.StartDate.Format("02.01.2006"),
			sched.EndDate.Format("02.01.2006"),
			delivery,
			sched.Status,
			adjusted,
		}

		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			f.SetCellValue(sheet, cell, v)
		}

		if sched.Status == storage.StatusDelayed {
			first, _ := excelize.CoordinatesToCellName(1, row)
			last, _ := excelize.CoordinatesToCellName(len(headers), row)
			f.SetCellStyle(sheet, first, last, delayedStyle)
		}
	}

	f.SetColWidth(sheet, "A", "C", 18)
	f.SetColWidth(sheet, "D", "J", 14)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write buffer: %w", err)
	}

	return buf.Bytes(), nil
}
