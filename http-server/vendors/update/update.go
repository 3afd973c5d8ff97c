package update

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"vue-supply/internal/storage"
)

type VendorUpdater interface {
	UpdateVendor(ctx context.Context, vendor storage.Vendor) error
}

func UpdateVendorAdmin(log *slog.Logger, vendors VendorUpdater) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.vendors.update.UpdateVendorAdmin"

		id, err := strconv.Atoi(chi.URLParam(r, "id"))
		if err != nil {
			http.Error(w, "Неверный id", http.StatusBadRequest)
			return
		}

		var vendor storage.Vendor
		err = json.NewDecoder(r.Body).Decode(&vendor)
		if err != nil {
			http.Error(w, "Неверный JSON", http.StatusBadRequest)
			return
		}
		vendor.ID = id

		if vendor.DailyCapacity <= 0 || vendor.LineCount < 1 {
			http.Error(w, "Мощность линии и число линий должны быть положительными", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		err = vendors.UpdateVendor(ctx, vendor)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				http.Error(w, "Изготовитель не найден", http.StatusNotFound)
				return
			}
			log.Error("Ошибка обновления изготовителя", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Ошибка сервера", http.StatusInternalServerError)
			return
		}

		w.WriteHeader(http.StatusOK)
	}
}
