// Package router sets up the HTTP surface of the backend.
package router

import (
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	docs "github.com/expansepro/backend/api"
	"github.com/expansepro/backend/internal/controllers/healthz"
	v1 "github.com/expansepro/backend/internal/controllers/v1"
	"github.com/expansepro/backend/internal/httputil"
	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/logger"
	"github.com/gin-contrib/pprof"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// This is set at build time with -ldflags "-X ...".
var version = "0.0.0"

// Router controls the routes for the API.
func Router() (*gin.Engine, error) {
	// Set up the router and middlewares
	r := gin.New()

	// Don’t process X-Forwarded-For header as we do not do anything with
	// client IPs
	r.ForwardedByClientIP = false

	// Send a HTTP 405 (Method not allowed) for all paths where there is
	// a handler, but not for the specific method used
	r.HandleMethodNotAllowed = true

	r.Use(gin.Recovery())
	r.Use(requestid.New())
	r.Use(logger.SetLogger(
		logger.WithDefaultLevel(zerolog.InfoLevel),
		logger.WithClientErrorLevel(zerolog.InfoLevel),
		logger.WithServerErrorLevel(zerolog.ErrorLevel),
		logger.WithLogger(func(c *gin.Context, out io.Writer, latency time.Duration) zerolog.Logger {
			return log.Logger.With().
				Str("request-id", requestid.Get(c)).
				Dur("latency", latency).
				Str("method", c.Request.Method).
				Str("path", c.Request.URL.Path).
				Int("status", c.Writer.Status()).
				Int("size", c.Writer.Size()).
				Str("user-agent", c.Request.UserAgent()).
				Logger()
		})))

	// CORS settings
	allowOrigins, ok := os.LookupEnv("CORS_ALLOW_ORIGINS")
	if ok {
		log.Debug().Str("allowOrigins", allowOrigins).Msg("CORS")

		r.Use(cors.New(cors.Config{
			AllowOrigins:     strings.Fields(allowOrigins),
			AllowMethods:     []string{"OPTIONS", "GET", "POST", "PATCH", "DELETE"},
			AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type"},
			AllowCredentials: true,
		}))
	}

	err := registerPrometheusMetrics()
	if err != nil {
		return nil, err
	}
	r.Use(MetricsMiddleware())

	// Profiling is opt-in, it has no business being reachable in
	// normal operation.
	if _, ok := os.LookupEnv("ENABLE_PPROF"); ok {
		pprof.Register(r)
	}

	// Disable the gin debug route printing as it clutters logs (and test logs)
	gin.DebugPrintRouteFunc = func(httpMethod, absolutePath, handlerName string, numHandlers int) {}

	// Don’t trust any proxy. We do not process any client IPs,
	// therefore we don’t need to trust anyone here.
	_ = r.SetTrustedProxies([]string{})

	/*
	 *  Route setup
	 */
	r.GET("", GetRoot)
	r.OPTIONS("", OptionsRoot)

	r.GET("/version", GetVersion)
	r.OPTIONS("/version", OptionsVersion)

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	healthz.RegisterRoutes(r.Group("/healthz"))

	docs.SwaggerInfo.Title = "ExpensePro Backend"
	docs.SwaggerInfo.Version = version
	docs.SwaggerInfo.Description = "The backend for ExpensePro, a personal finance tracker with recurring transactions, budgets and reports."

	r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// API v1 setup
	group := r.Group("/v1")
	{
		group.GET("", GetV1)
		group.OPTIONS("", OptionsV1)
	}

	v1.RegisterTransactionRoutes(group.Group("/transactions"))
	v1.RegisterTemplateRoutes(group.Group("/templates"))
	v1.RegisterMaterializeRoutes(group.Group("/materialize"))
	v1.RegisterBudgetRoutes(group.Group("/budgets"))
	v1.RegisterCategoryRoutes(group.Group("/categories"))
	v1.RegisterAnalyticsRoutes(group.Group("/analytics"))
	v1.RegisterExportRoutes(group.Group("/export"))
	v1.RegisterImportRoutes(group.Group("/import"))

	log.Info().Msg("backend startup complete")

	return r, nil
}

type RootResponse struct {
	Links RootLinks `json:"links"`
}

type RootLinks struct {
	Docs    string `json:"docs" example:"https://example.com/docs/index.html"`
	Healthz string `json:"healthz" example:"https://example.com/healthz"`
	Version string `json:"version" example:"https://example.com/version"`
	Metrics string `json:"metrics" example:"https://example.com/metrics"`
	V1      string `json:"v1" example:"https://example.com/v1"`
}

// @Summary		API root
// @Description	Entrypoint for the API, listing all endpoints
// @Tags			General
// @Success		200	{object}	RootResponse
// @Router			/ [get]
func GetRoot(c *gin.Context) {
	url := httputil.RequestHost(c)

	c.JSON(http.StatusOK, RootResponse{
		Links: RootLinks{
			Docs:    url + "/docs/index.html",
			Healthz: url + "/healthz",
			Version: url + "/version",
			Metrics: url + "/metrics",
			V1:      httputil.RequestPathV1(c),
		},
	})
}

type VersionResponse struct {
	Data VersionObject `json:"data"`
}
type VersionObject struct {
	Version string `json:"version" example:"1.1.0"`
}

// @Summary		API version
// @Description	Returns the software version of the API
// @Tags			General
// @Success		200	{object}	VersionResponse
// @Router			/version [get]
func GetVersion(c *gin.Context) {
	c.JSON(http.StatusOK, VersionResponse{
		Data: VersionObject{
			Version: version,
		},
	})
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			General
// @Success		204
// @Router			/ [options]
func OptionsRoot(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			General
// @Success		204
// @Router			/version [options]
func OptionsVersion(c *gin.Context) {
	httputil.OptionsGet(c)
}

type V1Response struct {
	Links V1Links `json:"links"`
}

type V1Links struct {
	Transactions string `json:"transactions" example:"https://example.com/v1/transactions"`
	Templates    string `json:"templates" example:"https://example.com/v1/templates"`
	Materialize  string `json:"materialize" example:"https://example.com/v1/materialize"`
	Budgets      string `json:"budgets" example:"https://example.com/v1/budgets"`
	Categories   string `json:"categories" example:"https://example.com/v1/categories"`
	Analytics    string `json:"analytics" example:"https://example.com/v1/analytics"`
	Export       string `json:"export" example:"https://example.com/v1/export"`
	Import       string `json:"import" example:"https://example.com/v1/import"`
}

// @Summary		v1 API
// @Description	Returns general information about the v1 API
// @Tags			General
// @Success		200	{object}	V1Response
// @Router			/v1 [get]
func GetV1(c *gin.Context) {
	url := httputil.RequestPathV1(c)

	c.JSON(http.StatusOK, V1Response{
		Links: V1Links{
			Transactions: url + "/transactions",
			Templates:    url + "/templates",
			Materialize:  url + "/materialize",
			Budgets:      url + "/budgets",
			Categories:   url + "/categories",
			Analytics:    url + "/analytics",
			Export:       url + "/export",
			Import:       url + "/import",
		},
	})
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			General
// @Success		204
// @Router			/v1 [options]
func OptionsV1(c *gin.Context) {
	httputil.OptionsGet(c)
}
