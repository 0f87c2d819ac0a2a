package router

import (
	"net/http"

	"vet-appointments/internal/config"
	"vet-appointments/internal/docs"
	"vet-appointments/internal/handler"
	"vet-appointments/internal/metrics"
	"vet-appointments/internal/middleware"
	"vet-appointments/pkg/utils"
	"vet-appointments/web"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	httpSwagger "github.com/swaggo/http-swagger"
)

// Handlers groups everything the router mounts.
type Handlers struct {
	Appointments *handler.AppointmentHandler
	Health       *handler.HealthHandler
}

// New builds the gin engine with middleware, API routes and the embedded
// client pages.
func New(cfg *config.Config, h Handlers, log *logrus.Logger) *gin.Engine {
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.AccessLog(log),
		gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
			log.WithField("request_id", middleware.GetRequestID(c)).Errorf("panic recovered: %v", recovered)
			utils.ErrorResponse(c, http.StatusInternalServerError, "Internal server error")
			c.Abort()
		}),
		metrics.Middleware(),
		middleware.CORS(cfg.CORS),
	)

	r.NoRoute(func(c *gin.Context) {
		utils.ErrorResponse(c, http.StatusNotFound, "Route not found")
	})

	// System endpoints
	r.GET("/health", h.Health.Health)
	r.GET("/metrics", gin.WrapH(metrics.Handler()))
	docs.SwaggerInfo.BasePath = "/"
	r.GET("/swagger/*any", gin.WrapH(httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json"))))

	limiter := middleware.NewRateLimiter(cfg.RateLimit)

	appointments := r.Group("/appointments")
	{
		appointments.POST("", limiter.Middleware(), h.Appointments.CreateAppointment)
		appointments.GET("/search", limiter.Middleware(), h.Appointments.SearchAppointments)
		appointments.GET("/:id", h.Appointments.GetAppointment)
		appointments.PUT("/:id", h.Appointments.UpdateAppointment)
		appointments.DELETE("/:id", h.Appointments.DeleteAppointment)
		appointments.PATCH("/:id/cancel", h.Appointments.CancelAppointment)
		appointments.GET("/:id/history", h.Appointments.GetAppointmentHistory)
	}

	// Client pages
	r.GET("/", page("index.html"))
	r.GET("/mis-citas", page("mis-citas.html"))
	r.StaticFS("/static", http.FS(web.Static()))

	return r
}

func page(name string) gin.HandlerFunc {
	return func(c *gin.Context) {
		body, err := web.Page(name)
		if err != nil {
			utils.ErrorResponse(c, http.StatusNotFound, "Route not found")
			return
		}
		c.Data(http.StatusOK, "text/html; charset=utf-8", body)
	}
}
