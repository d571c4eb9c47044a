package wire

import (
	"net/http"

	"tenant-booking/internal/adaptor"
	"tenant-booking/internal/data/repository"
	"tenant-booking/internal/usecase"
	"tenant-booking/pkg/middleware"
	"tenant-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// App holds the assembled HTTP surface
type App struct {
	Router  *chi.Mux
	Service *usecase.Service
}

// Wiring builds services, handlers and the router
func Wiring(repo *repository.Repository, config *utils.Config, logger *zap.Logger) *App {
	service := usecase.NewService(repo, config, logger)
	handler := adaptor.NewHandler(service, logger)

	router := setupRouter(handler, config, logger)

	return &App{
		Router:  router,
		Service: service,
	}
}

func setupRouter(handler *adaptor.Handler, config *utils.Config, logger *zap.Logger) *chi.Mux {
	r := chi.NewRouter()

	// Apply global middleware
	if config.HTTP.TrustProxy {
		r.Use(chimiddleware.RealIP)
	}
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.Metrics)
	r.Use(middleware.CORS(config.HTTP.CORSOrigins))

	limiter := middleware.NewRateLimiter(config.HTTP.RateLimitRPS, config.HTTP.RateLimitBurst)

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.Authenticate(config.JWT, logger))

		wireAuth(r, handler.Auth, limiter)
		wireTenant(r, handler.Tenant, handler.Auth, handler.Reservation)
		wireReservation(r, handler.Reservation, limiter)
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		utils.ResponseSuccess(w, "OK", map[string]string{"app": config.App.Name})
	})
	r.Handle("/metrics", promhttp.Handler())

	return r
}

func wireAuth(r chi.Router, authHandler *adaptor.AuthHandler, limiter *middleware.RateLimiter) {
	// POST /api/auth/token - exchange credentials for a bearer token
	r.With(limiter.Limit).Post("/auth/token", authHandler.IssueToken)
}

func wireTenant(
	r chi.Router,
	tenantHandler *adaptor.TenantHandler,
	authHandler *adaptor.AuthHandler,
	reservationHandler *adaptor.ReservationHandler,
) {
	r.Route("/tenants", func(r chi.Router) {
		r.Use(middleware.RequireAuth)

		// super admin
		r.Post("/", tenantHandler.CreateTenant)
		r.Get("/", tenantHandler.ListTenants)

		r.Route("/{tenantId}", func(r chi.Router) {
			r.Get("/", tenantHandler.GetTenant)
			r.Put("/settings", tenantHandler.UpdateSettings)
			r.Post("/users", authHandler.CreateUser)

			r.Route("/calendars", func(r chi.Router) {
				r.Post("/", tenantHandler.CreateCalendar)
				r.Get("/", tenantHandler.ListCalendars)
				r.Get("/{calendarId}", tenantHandler.GetCalendar)
				r.Put("/{calendarId}", tenantHandler.UpdateCalendar)
				r.Get("/{calendarId}/reservations", reservationHandler.ListReservations)
				r.Get("/{calendarId}/availability", reservationHandler.CheckAvailability)
			})
		})
	})
}

func wireReservation(r chi.Router, reservationHandler *adaptor.ReservationHandler, limiter *middleware.RateLimiter) {
	r.Route("/reservations", func(r chi.Router) {
		// the admission flow reports missing identity itself
		r.With(limiter.Limit).Post("/", reservationHandler.CreateReservation)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth)
			r.Get("/{reservationId}", reservationHandler.GetReservation)
			r.Patch("/{reservationId}/status", reservationHandler.UpdateStatus)
		})
	})
}
