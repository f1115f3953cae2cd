package bootstrap

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	httpapi "github.com/vslstudio/vsl-backend/internal/api/http"
	"github.com/vslstudio/vsl-backend/internal/api/http/middleware"
	achttp "github.com/vslstudio/vsl-backend/internal/autocomplete/http"
	vslhttp "github.com/vslstudio/vsl-backend/internal/vsl/http"
	"go.uber.org/zap"
)

type RouterDeps struct {
	ServiceName string
	Version     string
	LLMName     string
	CORSOrigins []string
	Logger      *zap.Logger
	// Cache is nil when the suggestion cache is disabled.
	Cache        httpapi.Pinger
	Autocomplete achttp.Suggester
	VSL          vslhttp.Generator
}

func BuildRouter(dep RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(cors.New(corsConfig(dep.CORSOrigins)))
	r.Use(middleware.RequestIDMiddleware(dep.Logger))

	healthHandler := httpapi.NewHealthHandler(dep.ServiceName, dep.Version, dep.LLMName, dep.Cache)
	healthHandler.RegisterRoutes(r)

	api := r.Group("/api")
	achttp.New(dep.Autocomplete).Register(api)
	vslhttp.New(dep.VSL).Register(api)

	return r
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization", middleware.HeaderRequestID},
		ExposeHeaders: []string{middleware.HeaderRequestID},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cfg
}
