package main

import (
	"log/slog"
	"net/http"
	"os"
	"path/filepath"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"

	report_excel "vue-supply/http-server/generate-report/generate-excel"
	getorders "vue-supply/http-server/orders/get"
	getschedule "vue-supply/http-server/schedule/get"
	"vue-supply/http-server/schedule/generate"
	"vue-supply/http-server/schedule/move"
	"vue-supply/http-server/schedule/regenerate"
	getvendors "vue-supply/http-server/vendors/get"
	savevendors "vue-supply/http-server/vendors/save"
	upvendors "vue-supply/http-server/vendors/update"
	"vue-supply/internal/config"
	"vue-supply/internal/middleware/auth"
	generate_excel "vue-supply/internal/service/generate-excel"
	"vue-supply/internal/service/schedule"
	"vue-supply/internal/storage/mysql"
)

func routes(cfg config.Config, log *slog.Logger, storage *mysql.Storage, plan *schedule.PlanService, genService *generate_excel.GenerateExcelService) *chi.Mux {
	router := chi.NewRouter()

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   []string{"http://localhost:8081", "http://localhost:5173"}, // Разрешаем запросы с фронтенда
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	router.Use(corsHandler.Handler)

	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)

	// Заказы на вкладке приёмки
	router.Get("/api/orders", getorders.GetOrdersFilter(log, storage))

	// Изготовители для строк таймлайна
	router.Get("/api/vendors", getvendors.GetVendors(log, storage))

	// График производства: таймлайн и отдельная полоса
	router.Get("/api/schedule", getschedule.GetSchedules(log, storage))
	router.Get("/api/schedule/{id}", getschedule.GetSchedule(log, storage))

	// Пакетный расчёт графика за месяц
	router.Post("/api/schedule/generate", generate.GenerateSchedules(log, plan))

	// Пересчёт одного заказа с нуля
	router.Post("/api/schedule/regenerate/{orderId}", regenerate.RegenerateSchedule(log, plan))

	// Перетаскивание полосы на таймлайне
	router.Put("/api/schedule/move/{id}", move.MoveSchedule(log, plan))

	// Выгрузка графика в excel
	router.Get("/api/report/excel", report_excel.GenerateReportExcel(log, genService))

	// Админка: справочник изготовителей
	adminRouter := chi.NewRouter()
	adminRouter.Use(auth.BasicAuth(cfg.AdminLogin, cfg.AdminPass))

	adminRouter.Get("/vendors", getvendors.GetVendors(log, storage))
	adminRouter.Post("/vendors/new", savevendors.SaveVendorAdmin(log, storage))
	adminRouter.Put("/vendors/update/{id}", upvendors.UpdateVendorAdmin(log, storage))

	router.Mount("/api/admin", adminRouter)

	// Статика, vue
	frontendDir := "./frontend-dist"
	if _, err := os.Stat(frontendDir); os.IsNotExist(err) {
		log.Error("Папка фронтенда не найдена", "path", frontendDir)
		os.Exit(1)
	}

	fileServer := http.StripPrefix("/", http.FileServer(http.Dir(frontendDir)))

	router.Handle("/assets/*", fileServer)
	router.Handle("/js/*", fileServer)
	router.Handle("/css/*", fileServer)
	router.Handle("/img/*", fileServer)

	// SPA fallback: любой другой путь → index.html
	router.HandleFunc("/*", func(w http.ResponseWriter, r *http.Request) {
		path := filepath.Join(frontendDir, r.URL.Path)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			http.ServeFile(w, r, path)
			return
		}
		http.ServeFile(w, r, filepath.Join(frontendDir, "index.html"))
	})

	return router
}
