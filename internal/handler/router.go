package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	intakeHandler "github.com/solmerch/orderbot/internal/handler/intake"
	middlewarePkg "github.com/solmerch/orderbot/internal/middleware"
	intakeService "github.com/solmerch/orderbot/internal/service/intake"
	"github.com/solmerch/orderbot/pkg/utils"
)

// NewRouter wires HTTP routes to the conversation engine.
func NewRouter(engine *intakeService.Engine) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middlewarePkg.CORS)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		utils.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(api chi.Router) {
		h := intakeHandler.New(engine)
		h.RegisterRoutes(api)

		ws := intakeHandler.NewWebSocketHandler(engine)
		ws.RegisterWebSocketRoutes(api)
	})

	return r
}
