package router

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/FUAD-ALSHABIBI/mee-ad-app/internal/availability"
	"github.com/FUAD-ALSHABIBI/mee-ad-app/internal/booking"
	"github.com/FUAD-ALSHABIBI/mee-ad-app/internal/catalog"
	httpmiddleware "github.com/FUAD-ALSHABIBI/mee-ad-app/internal/http/middleware"
	"github.com/FUAD-ALSHABIBI/mee-ad-app/internal/schedule"
	"github.com/FUAD-ALSHABIBI/mee-ad-app/pkg/logging"
)

// Config holds router configuration
type Config struct {
	Logger              *logging.Logger
	ScheduleHandler     *schedule.Handler
	CatalogHandler      *catalog.Handler
	AvailabilityHandler *availability.Handler
	BookingHandler      *booking.Handler
	OwnerAuthSecret     string
	MetricsHandler      http.Handler
	CORSAllowedOrigins  []string

	// Rate limiting for the public booking surface. Zero disables it.
	PublicRateLimit float64
	PublicRateBurst int
}

// New creates a new Chi router with all routes configured
func New(cfg *Config) http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))
	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(httpmiddleware.CORS(cfg.CORSAllowedOrigins))
	}
	if cfg.Logger != nil {
		r.Use(httpmiddleware.RequestLogger(cfg.Logger))
	}

	r.Get("/health", healthCheck)
	if cfg.MetricsHandler != nil {
		r.Handle("/metrics", cfg.MetricsHandler)
	}

	// Public booking surface, consumed by the embeddable widget.
	r.Route("/public/businesses/{businessID}", func(public chi.Router) {
		if cfg.PublicRateLimit > 0 && cfg.PublicRateBurst > 0 {
			public.Use(httpmiddleware.RateLimit(cfg.PublicRateLimit, cfg.PublicRateBurst))
		}
		public.Use(withBusinessContext)

		if cfg.CatalogHandler != nil {
			public.Get("/services", cfg.CatalogHandler.ListServices)
			public.Get("/services/{serviceID}", cfg.CatalogHandler.GetService)
		}
		if cfg.AvailabilityHandler != nil {
			public.Get("/dates", cfg.AvailabilityHandler.GetDates)
			public.Get("/slots", cfg.AvailabilityHandler.GetSlots)
		}
		if cfg.BookingHandler != nil {
			public.Post("/bookings", cfg.BookingHandler.SubmitBooking)
		}
	})

	// Owner routes (protected by JWT scoped to the business)
	if cfg.OwnerAuthSecret != "" {
		r.Route("/businesses/{businessID}", func(owner chi.Router) {
			owner.Use(httpmiddleware.OwnerJWT(cfg.OwnerAuthSecret))
			owner.Use(withBusinessContext)

			if cfg.ScheduleHandler != nil {
				owner.Get("/working-hours", cfg.ScheduleHandler.GetWorkingHours)
				owner.Put("/working-hours", cfg.ScheduleHandler.ReplaceWorkingHours)
			}
			if cfg.CatalogHandler != nil {
				owner.Get("/services", cfg.CatalogHandler.ListServices)
				owner.Post("/services", cfg.CatalogHandler.CreateService)
				owner.Get("/services/{serviceID}", cfg.CatalogHandler.GetService)
			}
			if cfg.BookingHandler != nil {
				owner.Get("/appointments", cfg.BookingHandler.ListAppointments)
				owner.Patch("/appointments/{appointmentID}", cfg.BookingHandler.UpdateStatus)
			}
		})
	}

	return r
}

func healthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}
