package routes

import (
	"net/http"
	"time"

	"slotbook/config"
	"slotbook/handlers"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterBookingRoutes registers the scheduling endpoints.
func RegisterBookingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/bookings")
	{
		api.POST("/create-appointment", hb.CreateUser)
		api.GET("/available-slots", hb.AvailableSlots)
		api.GET("/available-weekdays", hb.AvailableWeekdays)
		api.POST("/book-appointment", hb.BookAppointment)
		api.GET("/appointments", hb.ListAppointments)

		// Blocked dates
		api.PUT("/unavailable-dates", hb.BlockDates)
		api.DELETE("/unavailable-dates", hb.UnblockDates)
	}
}

// RegisterHealthRoute registers the liveness and dependency endpoints.
func RegisterHealthRoute(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.GET("/", hb.Root)
	r.GET("/health", hb.Health)
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:  []string{"Origin", "Authorization", "Content-Type", "X-Request-ID"},
		ExposeHeaders: []string{"Content-Length", "X-Request-ID"},
		MaxAge:        12 * time.Hour,
	}

	for _, o := range origins {
		if o == "*" {
			cfg.AllowAllOrigins = true
			return cfg
		}
	}
	if len(origins) == 0 {
		cfg.AllowAllOrigins = true
		return cfg
	}
	cfg.AllowOrigins = origins
	cfg.AllowCredentials = true
	return cfg
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle, cfg config.Config) {
	r.Use(cors.New(corsConfig(cfg.CORSAllowedOrigins)))

	RegisterHealthRoute(r, hb)
	RegisterBookingRoutes(r, hb)
}
