package http

import (
	"net/http"

	"github.com/amnatp/taiyim/internal/delivery/http/handler"
	"github.com/amnatp/taiyim/internal/delivery/http/middleware"

	"github.com/gorilla/mux"
)

type Router struct {
	router         *mux.Router
	profileHandler *handler.ProfileHandler
	foodHandler    *handler.FoodHandler
	intakeHandler  *handler.IntakeHandler
	exportHandler  *handler.ExportHandler
	systemHandler  *handler.SystemHandler
	corsMiddleware *middleware.CORSMiddleware
}

func NewRouter(
	profileHandler *handler.ProfileHandler,
	foodHandler *handler.FoodHandler,
	intakeHandler *handler.IntakeHandler,
	exportHandler *handler.ExportHandler,
	systemHandler *handler.SystemHandler,
	corsMiddleware *middleware.CORSMiddleware,
) *Router {
	return &Router{
		router:         mux.NewRouter(),
		profileHandler: profileHandler,
		foodHandler:    foodHandler,
		intakeHandler:  intakeHandler,
		exportHandler:  exportHandler,
		systemHandler:  systemHandler,
		corsMiddleware: corsMiddleware,
	}
}

func (r *Router) Setup() *mux.Router {
	// API versioning
	api := r.router.PathPrefix("/api/v1").Subrouter()

	// Health check
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	// Profile
	api.HandleFunc("/profile", r.profileHandler.GetProfile).Methods(http.MethodGet)
	api.HandleFunc("/profile", r.profileHandler.UpdateProfile).Methods(http.MethodPut)

	// Food catalog
	api.HandleFunc("/foods", r.foodHandler.GetFoods).Methods(http.MethodGet)
	api.HandleFunc("/foods", r.foodHandler.CreateFood).Methods(http.MethodPost)
	api.HandleFunc("/foods/{id}", r.foodHandler.UpdateFood).Methods(http.MethodPut)

	// Today's intake
	api.HandleFunc("/intake/today", r.intakeHandler.GetToday).Methods(http.MethodGet)
	api.HandleFunc("/intake/today", r.intakeHandler.ClearToday).Methods(http.MethodDelete)
	api.HandleFunc("/intake/today/entries", r.intakeHandler.AppendEntry).Methods(http.MethodPost)
	api.HandleFunc("/intake/today/entries/{index}", r.intakeHandler.AdjustQuantity).Methods(http.MethodPatch)
	api.HandleFunc("/intake/today/entries/{index}", r.intakeHandler.RemoveEntry).Methods(http.MethodDelete)

	// Intake history
	api.HandleFunc("/intake/log", r.intakeHandler.GetLog).Methods(http.MethodGet)
	api.HandleFunc("/intake/migrate", r.intakeHandler.Migrate).Methods(http.MethodPost)
	api.HandleFunc("/intake/dummy", r.intakeHandler.GenerateDummy).Methods(http.MethodPost)
	api.HandleFunc("/intake/{date}", r.intakeHandler.GetDay).Methods(http.MethodGet)

	// Export
	api.HandleFunc("/export", r.exportHandler.DumpJSON).Methods(http.MethodGet)
	api.HandleFunc("/export/csv", r.exportHandler.DumpCSV).Methods(http.MethodGet)

	// Full reset
	api.HandleFunc("/reset", r.systemHandler.Reset).Methods(http.MethodPost)

	// Add CORS middleware
	r.router.Use(r.corsMiddleware.Handle)

	return r.router
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}
