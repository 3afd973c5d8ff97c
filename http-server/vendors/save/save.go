package save

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/render"

	"vue-supply/internal/storage"
)

type VendorProvider interface {
	SaveVendor(ctx context.Context, vendor storage.Vendor) (int64, error)
}

type Response struct {
	VendorID int64  `json:"vendor_id"`
	Status   string `json:"status"`
	Error    string `json:"error"`
}

func SaveVendorAdmin(log *slog.Logger, vendors VendorProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.vendors.save.SaveVendorAdmin"

		var vendor storage.Vendor
		err := json.NewDecoder(r.Body).Decode(&vendor)
		if err != nil {
			http.Error(w, "Неверный JSON", http.StatusBadRequest)
			return
		}

		if vendor.DailyCapacity <= 0 || vendor.LineCount < 1 {
			http.Error(w, "Мощность линии и число линий должны быть положительными", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		id, err := vendors.SaveVendor(ctx, vendor)
		if err != nil {
			log.Error("Ошибка добавления изготовителя", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Ошибка сервера", http.StatusInternalServerError)
			return
		}

		render.JSON(w, r, Response{
			VendorID: id,
			Status:   strconv.Itoa(http.StatusOK),
		})
	}
}
