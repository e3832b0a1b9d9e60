package handlers

import (
	"context"
	"net/http"
	"time"

	"hospital-api/internal/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

const BasePath = "/hospital/api"

// RouterOptions configures NewRouter.
type RouterOptions struct {
	Logger      zerolog.Logger
	CORSOrigins []string
	// PublicPatientReports serves /patient/:phone/all_reports without a token.
	PublicPatientReports bool
	// Ping backs /healthz. Nil reports healthy.
	Ping func(ctx context.Context) error
}

// NewRouter wires every route of the API onto a new gin engine.
func NewRouter(h *Handler, gate gin.HandlerFunc, opts RouterOptions) *gin.Engine {
	r := gin.New()
	r.Use(
		middleware.RequestID(),
		middleware.RequestLogger(opts.Logger),
		gin.Recovery(),
		cors.New(corsConfig(opts.CORSOrigins)),
	)

	r.GET("/healthz", health(opts.Ping))

	api := r.Group(BasePath)

	doctor := api.Group("/doctor")
	doctor.POST("/register", h.RegisterDoctor)
	doctor.POST("/login", h.Login)

	patient := api.Group("/patient")
	patient.POST("/register", gate, h.RegisterPatient)
	patient.POST("/:phone/create_report", gate, h.CreateReport)
	if opts.PublicPatientReports {
		patient.GET("/:phone/all_reports", h.AllReports)
	} else {
		patient.GET("/:phone/all_reports", gate, h.AllReports)
	}

	api.GET("/reports/:status", h.ReportsByStatus)

	return r
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization", middleware.RequestIDHeader},
		ExposeHeaders: []string{middleware.RequestIDHeader},
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
	return cfg
}

func health(ping func(ctx context.Context) error) gin.HandlerFunc {
	return func(c *gin.Context) {
		if ping != nil {
			if err := ping(c.Request.Context()); err != nil {
				_ = c.Error(err)
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}
