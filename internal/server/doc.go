// Package server provides the HTTP server of infra-validator.
//
// The server uses the Gin web framework and supports two modes of operation:
// development (HTTP) and production (HTTPS with a self-signed certificate
// generated at startup).
//
// # Middleware Stack
//
//	┌─────────────────────────────────────────────────────────┐
//	│  Logger (ginzap, "http" logger, health probes skipped)  │
//	│  Recovery (ginzap.RecoveryWithZap, stack traces)        │
//	├─────────────────────────────────────────────────────────┤
//	│  Router (/api/v1)                                       │
//	│    Auth (HS256 bearer token, when auth.enabled)         │
//	│    Handlers (registered via callback)                   │
//	└─────────────────────────────────────────────────────────┘
//
// # Server Modes
//
// Development Mode (ServerMode = "dev"):
//   - HTTP only
//   - Gin runs in debug mode
//
// Production Mode (ServerMode = "prod"):
//   - HTTPS with a self-signed RSA certificate valid for one year
//   - Gin runs in release mode
//
// # Usage Example
//
//	srv, err := server.NewServer(cfg, func(router *gin.RouterGroup) {
//	    v1.RegisterHandlers(router, handler)
//	})
//	if err != nil {
//	    return err
//	}
//
//	go func() {
//	    if err := srv.Start(ctx); !errors.Is(err, http.ErrServerClosed) {
//	        zap.S().Errorw("server error", "error", err)
//	    }
//	}()
//
//	<-ctx.Done()
//	srv.Stop(shutdownCtx)
package server
