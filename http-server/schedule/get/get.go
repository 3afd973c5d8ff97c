package get

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"vue-supply/internal/storage"
)

type ResponseSchedules struct {
	Schedules []*storage.ProductionSchedule `json:"schedules"`
	Status    string                        `json:"status"`
	Error     string                        `json:"error"`
}

type Schedules interface {
	GetSchedulesMonth(ctx context.Context, year int, month int) ([]*storage.ProductionSchedule, error)
}

// GetSchedules отдаёт графики для таймлайна за месяц
func GetSchedules(log *slog.Logger, schedules Schedules) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.schedule.get.GetSchedules"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		year, err := strconv.Atoi(r.URL.Query().Get("year"))
		if err != nil {
			http.Error(w, "Invalid year", http.StatusBadRequest)
			return
		}
		month, err := strconv.Atoi(r.URL.Query().Get("month"))
		if err != nil {
			http.Error(w, "Invalid month", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		list, err := schedules.GetSchedulesMonth(ctx, year, month)
		if err != nil {
			log.With(slog.String("error", err.Error())).Error("Ошибка при получении графиков")
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, ResponseSchedules{Error: "Не удалось получить графики производства"})
			return
		}

		render.JSON(w, r, ResponseSchedules{
			Schedules: list,
			Status:    strconv.Itoa(http.StatusOK),
		})
	}
}

type ScheduleByID interface {
	GetScheduleByID(ctx context.Context, id int64) (*storage.ProductionSchedule, error)
}

func GetSchedule(log *slog.Logger, schedules ScheduleByID) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.schedule.get.GetSchedule"

		id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil {
			http.Error(w, "Неверный id", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		sched, err := schedules.GetScheduleByID(ctx, id)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				http.Error(w, "График не найден", http.StatusNotFound)
				return
			}
			log.Error("Ошибка при получении графика", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Внутренняя ошибка сервера", http.StatusInternalServerError)
			return
		}

		render.JSON(w, r, sched)
	}
}
