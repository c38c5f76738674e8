package routes

import (
	"net/http"
	"time"

	"svdiagnostic/handlers"
	"svdiagnostic/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Sri Venkateswara Diagnostic booking service"})
	})
}

// RegisterCatalogRoutes registers the public catalog endpoints.
func RegisterCatalogRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/catalog")
	{
		api.GET("", hb.GetCatalogHandler)
		api.GET("/slots", hb.GetTimeSlotsHandler)
	}
}

// RegisterSessionRoutes registers the device-scoped endpoints. Every route
// needs X-Device-ID.
func RegisterSessionRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api")
	api.Use(middleware.DeviceMiddleware())
	{
		api.GET("/state", hb.GetStateHandler)
		api.POST("/navigate", hb.NavigateHandler)

		api.POST("/cart", hb.AddToCartHandler)
		api.DELETE("/cart/:testId", hb.RemoveFromCartHandler)

		api.PUT("/booking/draft", hb.UpdateDraftHandler)
		api.POST("/booking/location", hb.DetectLocationHandler)

		api.POST("/checkout", hb.BeginCheckoutHandler)
		api.GET("/checkout/:id", hb.GetCheckoutHandler)
		api.DELETE("/checkout/:id", hb.CancelCheckoutHandler)

		api.GET("/bookings", hb.ListBookingsHandler)
		api.GET("/bookings/active", hb.GetActiveBookingHandler)
		api.POST("/bookings/:id/select", hb.SelectBookingHandler)
		api.POST("/bookings/:id/advance", hb.AdvanceBookingHandler)
		api.GET("/bookings/:id/report", hb.DownloadReportHandler)

		api.POST("/auth/login", hb.LoginHandler)
		api.POST("/auth/logout", hb.LogoutHandler)

		api.POST("/feedback", hb.SubmitFeedbackHandler)
		api.POST("/app/install", hb.MarkInstalledHandler)

		api.POST("/advice", hb.AdviceHandler)
	}
}

// RegisterViewRoutes registers one page model per client page.
func RegisterViewRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	v := r.Group("/api/views")
	v.Use(middleware.DeviceMiddleware())
	{
		v.GET("/home", hb.HomeViewHandler)
		v.GET("/booking", hb.BookingViewHandler)
		v.GET("/confirmation", hb.ConfirmationViewHandler)
		v.GET("/tracking", hb.TrackingViewHandler)
		v.GET("/reports", hb.ReportsViewHandler)
	}
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle, allowedOrigins []string) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", middleware.DeviceHeader, middleware.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", middleware.RequestIDHeader},
		AllowCredentials: !allowsAll(allowedOrigins),
		MaxAge:           12 * time.Hour,
	}))

	RegisterHealthRoute(r)
	RegisterCatalogRoutes(r, hb)
	RegisterSessionRoutes(r, hb)
	RegisterViewRoutes(r, hb)
}

func allowsAll(origins []string) bool {
	for _, o := range origins {
		if o == "*" {
			return true
		}
	}
	return false
}
