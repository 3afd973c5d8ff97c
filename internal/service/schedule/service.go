package schedule

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"vue-supply/internal/storage"
)

type PlanStorage interface {
	GetOrdersMonth(ctx context.Context, year int, month int, search string) ([]*storage.Order, error)
	GetOrderByID(ctx context.Context, id int) (*storage.Order, error)
	GetVendors(ctx context.Context) ([]*storage.Vendor, error)
	GetVendorByID(ctx context.Context, id int) (*storage.Vendor, error)
	GetVendorAllocations(ctx context.Context, from time.Time, to time.Time) ([]storage.CapacityAllocation, error)
	DeleteSchedulesByOrders(ctx context.Context, orderIDs []int) error
	SaveSchedule(ctx context.Context, sched *storage.ProductionSchedule) (int64, error)
	SaveAllocations(ctx context.Context, scheduleID int64, allocations []storage.CapacityAllocation) error
	GetScheduleByID(ctx context.Context, id int64) (*storage.ProductionSchedule, error)
	UpdateScheduleDates(ctx context.Context, id int64, prevStart, prevEnd, newStart, newEnd time.Time) error
}

type PlanService struct {
	storage   PlanStorage
	allocator *Allocator
}

func NewPlanService(storage PlanStorage, allocator *Allocator) *PlanService {
	if allocator == nil {
		allocator = NewAllocator(nil, 0)
	}
	return &PlanService{storage: storage, allocator: allocator}
}

func (s *PlanService) Allocator() *Allocator {
	return s.allocator
}

// GeneratePlan пересчитывает график производства по заказам месяца.
// Старые графики этих заказов удаляются (перегенерация стирает ручные
// правки), ledger восстанавливается из резервов остальных заказов, после
// чего пакет размещается и сохраняется. Неудачные графики тоже
// сохраняются — плановик должен видеть, что удалось разместить.
func (s *PlanService) GeneratePlan(ctx context.Context, year int, month int) ([]Result, error) {
	const op = "service.schedule.GeneratePlan"

	var (
		orders  []*storage.Order
		vendors []*storage.Vendor
	)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		orders, err = s.storage.GetOrdersMonth(gCtx, year, month, "")
		if err != nil {
			return fmt.Errorf("orders: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		vendors, err = s.storage.GetVendors(gCtx)
		if err != nil {
			return fmt.Errorf("vendors: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if len(orders) == 0 {
		return nil, nil
	}

	vendorsByID := make(map[int]*storage.Vendor, len(vendors))
	for _, v := range vendors {
		vendorsByID[v.ID] = v
	}

	orderIDs := make([]int, 0, len(orders))
	for _, o := range orders {
		orderIDs = append(orderIDs, o.ID)
	}

	if err := s.storage.DeleteSchedulesByOrders(ctx, orderIDs); err != nil {
		return nil, fmt.Errorf("%s: удаление старых графиков: %w", op, err)
	}

	from, to := s.allocationWindow(orders)
	rows, err := s.storage.GetVendorAllocations(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("%s: загрузка резервов: %w", op, err)
	}

	results := s.allocator.AllocateBatch(orders, vendorsByID, NewLedgerFromAllocations(rows))

	for i := range results {
		if err := s.persistResult(ctx, &results[i]); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
	}

	return results, nil
}

// RegenerateOrder удаляет график одного заказа и считает его заново при
// неизменном остальном пакете. История ручных правок при этом стирается.
func (s *PlanService) RegenerateOrder(ctx context.Context, orderID int) (Result, error) {
	const op = "service.schedule.RegenerateOrder"

	order, err := s.storage.GetOrderByID(ctx, orderID)
	if err != nil {
		return Result{}, fmt.Errorf("%s: %w", op, err)
	}

	vendor, err := s.storage.GetVendorByID(ctx, order.VendorID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			orderDate := DateOnly(order.OrderDate)
			result := Result{
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
			if err := s.persistResult(ctx, &result); err != nil {
				return Result{}, fmt.Errorf("%s: %w", op, err)
			}
			return result, nil
		}
		return Result{}, fmt.Errorf("%s: %w", op, err)
	}

	if err := s.storage.DeleteSchedulesByOrders(ctx, []int{order.ID}); err != nil {
		return Result{}, fmt.Errorf("%s: удаление старого графика: %w", op, err)
	}

	from, to := s.allocationWindow([]*storage.Order{order})
	rows, err := s.storage.GetVendorAllocations(ctx, from, to)
	if err != nil {
		return Result{}, fmt.Errorf("%s: загрузка резервов: %w", op, err)
	}

	result := s.allocator.Allocate(order, vendor, NewLedgerFromAllocations(rows))
	if err := s.persistResult(ctx, &result); err != nil {
		return Result{}, fmt.Errorf("%s: %w", op, err)
	}

	return result, nil
}

// MoveSchedule — ручной перенос полосы графика. Проверка и запись образуют
// одну единицу: при параллельной перегенерации запись отклоняется по датам,
// которые видел пользователь.
func (s *PlanService) MoveSchedule(ctx context.Context, scheduleID int64, move MoveRequest) (MoveDecision, error) {
	const op = "service.schedule.MoveSchedule"

	sched, err := s.storage.GetScheduleByID(ctx, scheduleID)
	if err != nil {
		return MoveDecision{}, fmt.Errorf("%s: %w", op, err)
	}

	order, err := s.storage.GetOrderByID(ctx, sched.OrderID)
	if err != nil {
		return MoveDecision{}, fmt.Errorf("%s: %w", op, err)
	}

	decision := s.allocator.ValidateMove(sched, order, move)
	if !decision.Accepted {
		return decision, nil
	}

	err = s.storage.UpdateScheduleDates(ctx, sched.ID,
		sched.StartDate, sched.EndDate,
		DateOnly(move.NewStart), DateOnly(move.NewEnd))
	if err != nil {
		if errors.Is(err, storage.ErrScheduleModified) {
			return rejected("график был изменён параллельным расчётом, обновите данные"), nil
		}
		return MoveDecision{}, fmt.Errorf("%s: %w", op, err)
	}

	return decision, nil
}

func (s *PlanService) persistResult(ctx context.Context, result *Result) error {
	id, err := s.storage.SaveSchedule(ctx, result.Schedule)
	if err != nil {
		return fmt.Errorf("сохранение графика %s: %w", result.Schedule.OrderNum, err)
	}
	result.Schedule.ID = id

	if len(result.Allocations) == 0 {
		return nil
	}

	for i := range result.Allocations {
		result.Allocations[i].ScheduleID = id
	}
	if err := s.storage.SaveAllocations(ctx, id, result.Allocations); err != nil {
		return fmt.Errorf("сохранение резервов %s: %w", result.Schedule.OrderNum, err)
	}

	return nil
}

// allocationWindow — диапазон дат, в котором чужие резервы могут пересечься
// с размещаемыми заказами
func (s *PlanService) allocationWindow(orders []*storage.Order) (time.Time, time.Time) {
	from := DateOnly(orders[0].OrderDate)
	to := from

	for _, o := range orders {
		orderDate := DateOnly(o.OrderDate)
		if orderDate.Before(from) {
			from = orderDate
		}

		deadline := orderDate.AddDate(0, 0, s.allocator.horizonDays+7)
		if o.DeliveryDate != nil {
			deadline = DateOnly(*o.DeliveryDate)
		}
		if deadline.After(to) {
			to = deadline
		}
	}

	return from, to
}
