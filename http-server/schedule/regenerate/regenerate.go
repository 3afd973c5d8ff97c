package regenerate

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"vue-supply/internal/service/schedule"
	"vue-supply/internal/storage"
)

type OrderRegenerator interface {
	RegenerateOrder(ctx context.Context, orderID int) (schedule.Result, error)
}

type Response struct {
	Result schedule.Result `json:"result"`
	Status string          `json:"status"`
	Error  string          `json:"error,omitempty"`
}

// RegenerateSchedule пересчитывает график одного заказа с нуля.
// Ручные правки при этом стираются.
func RegenerateSchedule(log *slog.Logger, regen OrderRegenerator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.schedule.regenerate.RegenerateSchedule"

		orderID, err := strconv.Atoi(chi.URLParam(r, "orderId"))
		if err != nil {
			http.Error(w, "Неверный id заказа", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
		defer cancel()

		result, err := regen.RegenerateOrder(ctx, orderID)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				http.Error(w, "Заказ не найден", http.StatusNotFound)
				return
			}
			log.Error("Ошибка перегенерации графика", slog.String("op", op), slog.String("error", err.Error()))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, Response{Error: "Не удалось пересчитать график"})
			return
		}

		render.JSON(w, r, Response{
			Result: result,
			Status: strconv.Itoa(http.StatusOK),
		})
	}
}
