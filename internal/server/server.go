package server

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/kubev2v/infra-validator/internal/config"
	"github.com/kubev2v/infra-validator/internal/server/middlewares"
)

const (
	apiPrefix           = "/api/v1"
	certificateValidity = 365 * 24 * time.Hour
	readHeaderTimeout   = 10 * time.Second
)

type Server struct {
	srv *http.Server
	tls *tls.Config
}

// NewServer builds the gin engine. registerHandlerFn receives the /api/v1
// group, behind bearer authentication when cfg.Auth.Enabled.
func NewServer(cfg *config.Configuration, registerHandlerFn func(router *gin.RouterGroup)) (*Server, error) {
	if cfg.Server.ServerMode == config.ServerModeProd {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(
		middlewares.Logger(zap.L()),
		middlewares.Recovery(zap.L()),
	)
	engine.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	})

	api := engine.Group(apiPrefix)
	if cfg.Auth.Enabled {
		if cfg.Auth.Secret == "" {
			return nil, errors.New("auth.secret is required when auth is enabled")
		}
		api.Use(middlewares.Auth(middlewares.NewAuthenticator(cfg.Auth.Secret)))
	}
	registerHandlerFn(api)

	s := &Server{
		srv: &http.Server{
			Addr:              fmt.Sprintf(":%d", cfg.Server.HTTPPort),
			Handler:           engine,
			ReadHeaderTimeout: readHeaderTimeout,
		},
	}

	if cfg.Server.ServerMode == config.ServerModeProd {
		cert, err := selfSignedCertificate(certificateValidity)
		if err != nil {
			return nil, err
		}
		s.tls = &tls.Config{
			Certificates: []tls.Certificate{cert},
			MinVersion:   tls.VersionTLS12,
		}
	}

	return s, nil
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.srv.Handler
}

// Start blocks until the server stops. It returns http.ErrServerClosed after
// Stop.
func (s *Server) Start(ctx context.Context) error {
	s.srv.BaseContext = func(net.Listener) context.Context { return ctx }

	if s.tls != nil {
		s.srv.TLSConfig = s.tls
		zap.S().Named("http").Infow("starting https server", "addr", s.srv.Addr)
		return s.srv.ListenAndServeTLS("", "")
	}

	zap.S().Named("http").Infow("starting http server", "addr", s.srv.Addr)
	return s.srv.ListenAndServe()
}

// Stop shuts down gracefully, waiting for in-flight requests.
func (s *Server) Stop(ctx context.Context) error {
	zap.S().Named("http").Info("stopping server")
	return s.srv.Shutdown(ctx)
}
