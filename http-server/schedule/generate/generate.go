package generate

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"vue-supply/internal/service/schedule"
)

type PlanGenerator interface {
	GeneratePlan(ctx context.Context, year int, month int) ([]schedule.Result, error)
}

type Response struct {
	Results []schedule.Result `json:"results"`
	Status  string            `json:"status"`
	Error   string            `json:"error"`
}

// GenerateSchedules запускает пакетный расчёт графика по заказам месяца.
// Частичные размещения не ошибка: они возвращаются с success=false и
// сообщением для панели уведомлений.
func GenerateSchedules(log *slog.Logger, planner PlanGenerator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.schedule.generate.GenerateSchedules"

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

		// Пакетный расчёт ходит в базу несколько раз, таймаут больше обычного
		ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
		defer cancel()

		results, err := planner.GeneratePlan(ctx, year, month)
		if err != nil {
			log.With(slog.String("error", err.Error())).Error("Ошибка расчёта графика производства")
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, Response{Error: "Не удалось рассчитать график производства"})
			return
		}

		render.JSON(w, r, Response{
			Results: results,
			Status:  strconv.Itoa(http.StatusOK),
		})
	}
}
