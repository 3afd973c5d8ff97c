package schedule

import (
	"sort"

	"vue-supply/internal/storage"
)

// AllocateBatch размещает пакет заказов на общем ledger: резервы ранних
// заказов видны поздним. Порядок обработки — по срочности: сначала заказы
// со сроком поставки по возрастанию срока, затем заказы без срока; внутри
// групп по дате размещения. Результаты возвращаются в порядке входного
// списка, чтобы вызывающий мог сопоставить их заказам один к одному.
func (a *Allocator) AllocateBatch(orders []*storage.Order, vendors map[int]*storage.Vendor, ledger *Ledger) []Result {
	if ledger == nil {
		ledger = NewLedger()
	}

	indexes := make([]int, len(orders))
	for i := range indexes {
		indexes[i] = i
	}

	sort.Slice(indexes, func(x, y int) bool {
		left, right := orders[indexes[x]], orders[indexes[y]]

		switch {
		case left.DeliveryDate != nil && right.DeliveryDate == nil:
			return true
		case left.DeliveryDate == nil && right.DeliveryDate != nil:
			return false
		case left.DeliveryDate != nil && right.DeliveryDate != nil:
			ld, rd := DateOnly(*left.DeliveryDate), DateOnly(*right.DeliveryDate)
			if !ld.Equal(rd) {
				return ld.Before(rd)
			}
		}

		lod, rod := DateOnly(left.OrderDate), DateOnly(right.OrderDate)
		if !lod.Equal(rod) {
			return lod.Before(rod)
		}

		// Полное совпадение — сохраняем входной порядок, расчёт детерминирован
		return indexes[x] < indexes[y]
	})

	results := make([]Result, len(orders))
	for _, idx := range indexes {
		order := orders[idx]

		vendor, ok := vendors[order.VendorID]
		if !ok {
			orderDate := DateOnly(order.OrderDate)
			results[idx] = Result{
				Schedule: &storage.ProductionSchedule{
					OrderID:   order.ID,
					OrderNum:  order.OrderNum,
					VendorID:  order.VendorID,
					StartDate: orderDate,
					EndDate:   orderDate,
					Status:    storage.StatusDelayed,
				},
				Message: "изготовитель не найден, заказ не запланирован",
			}
			continue
		}

		results[idx] = a.Allocate(order, vendor, ledger)
	}

	return results
}
