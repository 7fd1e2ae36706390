package routes

import (
	"time"

	"salonhub/handlers"
	"salonhub/middleware"
	"salonhub/models"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

var backOffice = []string{models.RoleSuperAdmin, models.RoleAdmin}

// RegisterPublicRoutes registers endpoints that need no session.
func RegisterPublicRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.GET("/health", handlers.Health)

	api := r.Group("/api")
	{
		api.POST("/auth/register", hb.Users.Register)
		api.POST("/auth/session", hb.Users.ExchangeSession)

		api.GET("/catalog/services", hb.Services.ListActive)
		api.GET("/catalog/products", hb.Products.ListActive)
		api.GET("/catalog/categories", hb.Categories.List)
		api.GET("/branches", hb.ActiveBranches.List)
		api.GET("/settings/branding", hb.Settings.GetBranding)
		api.GET("/schedule/slots", hb.Calendar.Slots)
	}
}

// RegisterCustomerRoutes registers endpoints open to any signed-in role.
func RegisterCustomerRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api")
	api.Use(middleware.JWTAuthMiddleware(hb.Sessions))
	{
		api.DELETE("/auth/session", hb.Users.RevokeSession)
		api.GET("/me", hb.Users.Me)
		api.PUT("/me/push-token", hb.Users.SetFCMToken)

		api.POST("/bookings", hb.Bookings.CreateOwn)
		api.GET("/me/bookings", hb.Bookings.MyBookings)

		api.GET("/me/cart", hb.Cart.List)
		api.POST("/me/cart", hb.Cart.Add)
		api.DELETE("/me/cart", hb.Cart.Remove)
		api.DELETE("/me/cart/:id", hb.Cart.Remove)

		api.POST("/feedbacks", hb.Feedback.Submit)
	}
}

// RegisterAdminRoutes registers the back office for admins and super admins.
func RegisterAdminRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	admin := r.Group("/api/admin")
	admin.Use(middleware.JWTAuthMiddleware(hb.Sessions), middleware.RequireRole(backOffice...))
	{
		bookings := admin.Group("/bookings")
		bookings.GET("", hb.Bookings.List)
		bookings.POST("", hb.Bookings.Create)
		bookings.GET("/:id", hb.Bookings.Get)
		bookings.PUT("/:id", hb.Bookings.Update)
		bookings.DELETE("/:id", hb.Bookings.Delete)
		bookings.PATCH("/:id/status", hb.Bookings.SetStatus)
		bookings.GET("/:id/invoice", hb.Invoices.Download)
		bookings.POST("/:id/invoice", hb.Invoices.Publish)

		admin.GET("/calendar/day", hb.Calendar.Day)
		admin.GET("/calendar/stream", hb.Calendar.Stream)

		hours := admin.Group("/hours/:branchId")
		hours.GET("", hb.Calendar.GetHours)
		hours.PUT("", hb.Calendar.PutHours)
		hours.POST("/disable-all", hb.Calendar.DisableAll)
		hours.POST("/enable-all", hb.Calendar.EnableAll)
		hours.POST("/toggle/:hour", hb.Calendar.ToggleHour)

		admin.POST("/staff/ratings/refresh", hb.Staff.RefreshRatings)
		hb.Staff.Register(admin.Group("/staff"))
		hb.Branches.Register(admin.Group("/branches"))
		hb.Services.Register(admin.Group("/services"))
		hb.Products.Register(admin.Group("/products"))
		hb.Categories.Register(admin.Group("/categories"))
		hb.Expenses.Register(admin.Group("/expenses"))
		hb.Feedbacks.Register(admin.Group("/feedbacks"))
		hb.Customers.Register(admin.Group("/customers"))

		admin.GET("/reports/summary", hb.Reports.Summary)
		admin.POST("/uploads", hb.Storage.UploadImage)
		admin.GET("/settings/notifications", hb.Settings.GetNotifications)
	}
}

// RegisterSuperAdminRoutes registers user, role and settings administration.
func RegisterSuperAdminRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	super := r.Group("/api/admin")
	super.Use(middleware.JWTAuthMiddleware(hb.Sessions), middleware.RequireRole(models.RoleSuperAdmin))
	{
		super.GET("/users", hb.Users.List)
		super.GET("/users/:id", hb.Users.Get)
		super.PUT("/users/:id/role", hb.Users.SetRole)
		super.DELETE("/users/:id", hb.Users.Delete)
		hb.Roles.Register(super.Group("/roles"))

		super.PUT("/settings/branding", hb.Settings.SaveBranding)
		super.PUT("/settings/notifications", hb.Settings.SaveNotifications)
		super.GET("/settings/payment-methods", hb.Settings.ListPaymentMethods)
		super.POST("/settings/payment-methods", hb.Settings.CreatePaymentMethod)
		super.PUT("/settings/payment-methods/:id", hb.Settings.UpdatePaymentMethod)
		super.DELETE("/settings/payment-methods/:id", hb.Settings.DeletePaymentMethod)
	}
}

// CORS builds the CORS middleware for the allowed origins.
func CORS(origins []string) gin.HandlerFunc {
	cfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(origins) == 1 && origins[0] == "*" {
		cfg.AllowAllOrigins = true
		cfg.AllowCredentials = false
	} else {
		cfg.AllowOrigins = origins
	}
	return cors.New(cfg)
}

// SetupRouter builds the engine with the global middleware and every route.
func SetupRouter(hb *handlers.HandlerBundle, mw ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	r.Use(mw...)
	RegisterPublicRoutes(r, hb)
	RegisterCustomerRoutes(r, hb)
	RegisterAdminRoutes(r, hb)
	RegisterSuperAdminRoutes(r, hb)
	return r
}
