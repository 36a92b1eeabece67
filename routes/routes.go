package routes

import (
	"net/http"
	"time"

	"salonpro-dashboard/config"
	"salonpro-dashboard/controllers"
	"salonpro-dashboard/services"
	"salonpro-dashboard/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const serviceName = "salonpro-dashboard"

// NewHandler wraps the router so every inbound request gets a server span
// and continues any trace propagated by the caller.
func NewHandler(r *gin.Engine, opts ...otelhttp.Option) http.Handler {
	return otelhttp.NewHandler(r, serviceName, opts...)
}

// SetupRouter wires the dashboard API. reminders may be nil when no SMS
// provider is configured.
func SetupRouter(cfg *config.AppConfig, backend *services.BackendClient, reminders *services.ReminderService) *gin.Engine {
	r := gin.New()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.Use(config.Recovery())
	r.Use(config.PerformanceLogger())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	sealer := utils.NewSealer(cfg.SessionSealKey)
	requireOwner := utils.AuthMiddleware(cfg.JWTSecret, sealer)

	authController := controllers.AuthController{
		Backend:      backend,
		Secret:       cfg.JWTSecret,
		Sealer:       sealer,
		TTL:          cfg.SessionTTL(),
		CookieSecure: cfg.CookieSecure,
	}
	auth := r.Group("/auth")
	{
		auth.POST("/login", authController.Login)
		auth.POST("/signup", authController.Signup)

		auth.Use(requireOwner)
		auth.POST("/logout", authController.Logout)
		auth.GET("/me", authController.Me)
	}

	api := r.Group("/api")
	api.Use(requireOwner)
	{
		// Booking wizard routes sit under /bookings/wizard, registered before
		// the :id routes of the same group.
		wizardController := controllers.WizardController{Backend: backend, Location: cfg.Location}
		wizard := api.Group("/bookings/wizard")
		{
			wizard.POST("", wizardController.CreateDraft)
			wizard.GET("/:id", wizardController.GetDraft)
			wizard.PUT("/:id/selection", wizardController.UpdateSelection)
			wizard.POST("/:id/next", wizardController.Next)
			wizard.POST("/:id/back", wizardController.Back)
			wizard.GET("/:id/slots", wizardController.Slots)
			wizard.PUT("/:id/slot", wizardController.SelectSlot)
			wizard.POST("/:id/submit", wizardController.Submit)
			wizard.DELETE("/:id", wizardController.DiscardDraft)
		}

		bookingController := controllers.BookingController{Backend: backend, Location: cfg.Location}
		bookings := api.Group("/bookings")
		{
			bookings.GET("", bookingController.ListBookings)
			bookings.GET("/:id", bookingController.GetBooking)
			bookings.POST("/:id/confirm", bookingController.ConfirmBooking)
			bookings.POST("/:id/complete", bookingController.CompleteBooking)
			bookings.POST("/:id/cancel", bookingController.CancelBooking)
		}

		serviceController := controllers.ServiceController{Backend: backend}
		svcs := api.Group("/services")
		{
			svcs.GET("", serviceController.ListServices)
			svcs.POST("", serviceController.CreateService)
			svcs.PATCH("/:id", serviceController.UpdateService)
			svcs.POST("/:id/toggle", serviceController.ToggleService)
			svcs.DELETE("/:id", serviceController.DeleteService)
		}

		staffController := controllers.StaffController{Backend: backend}
		staff := api.Group("/staff")
		{
			staff.GET("", staffController.ListStaff)
			staff.POST("", staffController.CreateStaff)
			staff.PATCH("/:id", staffController.UpdateStaff)
			staff.DELETE("/:id", staffController.DeleteStaff)
		}

		productController := controllers.ProductController{Backend: backend}
		products := api.Group("/products")
		{
			products.GET("", productController.ListProducts)
			products.POST("", productController.CreateProduct)
			products.PATCH("/:id", productController.UpdateProduct)
			products.POST("/:id/visibility", productController.ToggleVisibility)
			products.DELETE("/:id", productController.DeleteProduct)
		}

		customerController := controllers.CustomerController{Backend: backend}
		api.GET("/customers", customerController.ListCustomers)

		settingsController := controllers.SettingsController{Backend: backend}
		api.GET("/settings", settingsController.GetSettings)
		api.PATCH("/settings", settingsController.UpdateSettings)

		analyticsController := controllers.AnalyticsController{Backend: backend, Location: cfg.Location}
		api.GET("/analytics", analyticsController.GetAnalytics)

		dashboardController := controllers.DashboardController{Backend: backend, Location: cfg.Location}
		api.GET("/dashboard", dashboardController.GetOverview)

		reminderController := controllers.ReminderController{Reminders: reminders}
		reminderRoutes := api.Group("/reminders")
		{
			reminderRoutes.GET("/template", reminderController.GetTemplate)
			reminderRoutes.PUT("/template", reminderController.UpdateTemplate)
			reminderRoutes.GET("/logs", reminderController.ListLogs)
			reminderRoutes.POST("/run", reminderController.RunNow)
		}
	}

	return r
}
