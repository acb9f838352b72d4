package http

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"orderprocessing/internal/adapters/in/http/openapi"
	"orderprocessing/internal/pkg/metrics"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"
)

// RouterConfig holds the optional parts of the router.
type RouterConfig struct {
	Logger         *slog.Logger
	Metrics        *metrics.Metrics
	OpenAPI        *openapi3.T
	SwaggerEnabled bool
}

// NewRouter builds the echo instance serving the orders API under /api,
// the health check, metrics and the API document.
func NewRouter(server ServerInterface, config RouterConfig) *echo.Echo {
	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "http")

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = NewErrorHandler(logger)

	e.Use(middleware.Recover())
	e.Use(requestLogger(logger))
	if config.Metrics != nil {
		e.Use(metricsMiddleware(config.Metrics))
		e.GET("/metrics", echo.WrapHandler(config.Metrics.Handler()))
	}

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})

	if config.OpenAPI != nil {
		doc := config.OpenAPI
		e.GET("/api/openapi.json", func(c echo.Context) error {
			return c.JSON(http.StatusOK, doc)
		})
	}

	if config.SwaggerEnabled {
		openapi.RegisterSwagger()
		e.GET("/swagger/*", echoSwagger.WrapHandler)
	}

	RegisterHandlers(e.Group("/api"), server)

	return e
}

func requestLogger(logger *slog.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:   true,
		LogURI:      true,
		LogMethod:   true,
		LogLatency:  true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			level := slog.LevelInfo
			if v.Status >= http.StatusInternalServerError {
				level = slog.LevelError
			}

			logger.LogAttrs(c.Request().Context(), level, "Request handled",
				slog.String("method", v.Method),
				slog.String("uri", v.URI),
				slog.Int("status", v.Status),
				slog.Duration("latency", v.Latency),
			)
			return nil
		},
	})
}

func metricsMiddleware(m *metrics.Metrics) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)

			status := c.Response().Status
			if err != nil {
				status = toProblem(err).Status
			}

			route := c.Path()
			if route == "" {
				route = "unmatched"
			}

			method := c.Request().Method
			m.Requests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
			m.LatencyMS.WithLabelValues(method, route).Observe(float64(time.Since(start).Milliseconds()))

			return err
		}
	}
}
