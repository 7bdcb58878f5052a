package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dankdash1/dispatch-service/internal/http/handlers"
	appmw "github.com/dankdash1/dispatch-service/internal/http/middleware"
	"github.com/dankdash1/dispatch-service/internal/http/middleware/ratelimit"
	"github.com/dankdash1/dispatch-service/internal/logx"
)

// New constructs a chi-based http.Handler with base middleware and routes.
func New(logger logx.Logger, rl *ratelimit.Middleware, h *handlers.Handlers, disp *handlers.DispatchHandler, drv *handlers.DriverHandler) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	// the throttle keys on client IP, so it must sit behind RealIP
	r.Use(middleware.RealIP)
	r.Use(rl.Handler())
	r.Use(appmw.Observability(logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(10 * time.Second))

	r.Get("/ping", h.Ping)
	r.Method(http.MethodHead, "/healthcheck", http.HandlerFunc(h.HealthcheckHead))
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/dispatch", func(r chi.Router) {
		r.Post("/auto-assign/{orderID}", disp.AutoAssign)
		r.Get("/available-drivers", disp.AvailableDrivers)
		r.Put("/driver-location/{driverID}", disp.UpdateDriverLocation)
		r.Put("/delivery-status/{deliveryID}", disp.UpdateDeliveryStatus)
		r.Get("/stats", disp.Stats)
	})

	r.Route("/drivers", func(r chi.Router) {
		r.Get("/", drv.List)
		r.Post("/", drv.Create)
		r.Put("/", drv.Update)
		r.Get("/{id}", drv.GetByID)
	})

	r.NotFound(http.HandlerFunc(h.NotFound))

	return r
}
