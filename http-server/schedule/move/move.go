package move

import (
	"context"
	"encoding/json"
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

type Request struct {
	NewStart string `json:"new_start"`
	NewEnd   string `json:"new_end"`
	VendorID int    `json:"vendor_id"`
}

type Response struct {
	Accepted bool   `json:"accepted"`
	Reason   string `json:"reason,omitempty"`
	Status   string `json:"status"`
	Error    string `json:"error,omitempty"`
}

type ScheduleMover interface {
	MoveSchedule(ctx context.Context, scheduleID int64, move schedule.MoveRequest) (schedule.MoveDecision, error)
}

// MoveSchedule — перетаскивание полосы графика на таймлайне. Отклонённый
// перенос не трогает график, наружу уходит только причина отказа.
func MoveSchedule(log *slog.Logger, mover ScheduleMover) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.schedule.move.MoveSchedule"

		id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil {
			http.Error(w, "Неверный id", http.StatusBadRequest)
			return
		}

		var req Request
		err = json.NewDecoder(r.Body).Decode(&req)
		if err != nil {
			http.Error(w, "Неверный JSON", http.StatusBadRequest)
			return
		}

		newStart, err := time.Parse("2006-01-02", req.NewStart)
		if err != nil {
			http.Error(w, "Неверная дата начала", http.StatusBadRequest)
			return
		}
		newEnd, err := time.Parse("2006-01-02", req.NewEnd)
		if err != nil {
			http.Error(w, "Неверная дата окончания", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		decision, err := mover.MoveSchedule(ctx, id, schedule.MoveRequest{
			NewStart: newStart,
			NewEnd:   newEnd,
			VendorID: req.VendorID,
		})
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				http.Error(w, "График не найден", http.StatusNotFound)
				return
			}
			log.Error("Ошибка при переносе графика", slog.String("op", op), slog.String("error", err.Error()))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, Response{Error: "Не удалось перенести график"})
			return
		}

		render.JSON(w, r, Response{
			Accepted: decision.Accepted,
			Reason:   decision.Reason,
			Status:   strconv.Itoa(http.StatusOK),
		})
	}
}
