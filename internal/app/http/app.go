package httpapp

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"dcolors/internal/config"
	mw "dcolors/internal/middleware"
	httprouters "dcolors/internal/transport/http"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type CustomValidator struct {
	validator *validator.Validate
}

func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

type Server struct {
	log     *slog.Logger
	e       *echo.Echo
	routers *httprouters.Routers
	host    string
	port    string
}

func New(
	log *slog.Logger,
	httpCfg config.HTTPConfig,
	authCfg config.AuthConfig,
	routers *httprouters.Routers,
	auth mw.Authenticator,
) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	validate := validator.New()
	e.Validator = &CustomValidator{validator: validate}

	store := sessions.NewCookieStore([]byte(authCfg.CookieSecret))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   int(authCfg.SessionTTL.Seconds()),
		HttpOnly: true,
		Secure:   authCfg.SecureCookie,
		SameSite: http.SameSiteLaxMode,
	}

	e.Use(middleware.Recover())

	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:      true,
		LogMethod:   true,
		LogStatus:   true,
		LogLatency:  true,
		LogRemoteIP: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			log.Info("request",
				slog.String("method", v.Method),
				slog.String("URI", v.URI),
				slog.Int("status", v.Status),
				slog.Duration("latency", v.Latency),
				slog.String("remote ip", v.RemoteIP),
			)

			return nil
		},
	}))

	e.Use(middleware.CORS())
	e.Use(mw.PrometheusMetrics)

	if httpCfg.BodyLimit != "" {
		e.Use(middleware.BodyLimit(httpCfg.BodyLimit))
	}
	if httpCfg.Timeout > 0 {
		e.Use(middleware.ContextTimeoutWithConfig(middleware.ContextTimeoutConfig{
			Timeout: httpCfg.Timeout,
		}))
	}

	e.Use(session.Middleware(store))
	e.Use(mw.Session(log, auth))

	return &Server{
		log:     log,
		e:       e,
		routers: routers,
		host:    httpCfg.Host,
		port:    httpCfg.Port,
	}
}

// Handler exposes the router for in-process tests.
func (s *Server) Handler() http.Handler {
	return s.e
}

func (s *Server) MustRun() {
	const op = "http.Server.MustRun"

	s.log.Info(op, slog.String("address", net.JoinHostPort(s.host, s.port)))

	if err := s.Start(); err != nil {
		panic(err)
	}
}

func (s *Server) Start() error {
	const op = "http.Server.Start"

	if err := s.e.Start(net.JoinHostPort(s.host, s.port)); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("%s server stopped: %w", op, err)
	}

	return nil
}

func (s *Server) Stop() error {
	const op = "http.Server.Stop"

	optCtx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()

	s.log.Info("stopping http server", slog.String("op", op))

	if err := s.e.Shutdown(optCtx); err != nil {
		return fmt.Errorf("%s could not shutdown server gracefuly: %w", op, err)
	}

	return nil
}

func (s *Server) BuildRouters() {
	s.e.GET("/health", s.routers.Health)
	s.e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	api := s.e.Group("/api/v1")
	{
		api.POST("/login", s.routers.Login)
		api.POST("/logout", s.routers.Logout)
		api.GET("/session", s.routers.Session)

		api.GET("/paintings", s.routers.ListPaintings)
		api.GET("/paintings/latest", s.routers.LatestPaintings)
		api.GET("/paintings/:id", s.routers.GetPainting)
		api.GET("/paintings/:id/related", s.routers.RelatedPaintings)
		api.GET("/categories", s.routers.Categories)
		api.GET("/vocabulary", s.routers.Vocabulary)

		admin := api.Group("/admin", mw.RequireAdmin)
		{
			admin.POST("/images", s.routers.UploadImages)
			admin.POST("/paintings", s.routers.CreatePainting)
			admin.PUT("/paintings/:id", s.routers.UpdatePainting)
			admin.DELETE("/paintings/:id", s.routers.DeletePainting)
			admin.POST("/vocabulary", s.routers.RememberVocabulary)
		}
	}
}
