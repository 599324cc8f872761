package middlewares

import (
	"time"

	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Logger logs every request with the "http" logger. Health probes are skipped.
func Logger(logger *zap.Logger) gin.HandlerFunc {
	return ginzap.GinzapWithConfig(logger.Named("http"), &ginzap.Config{
		TimeFormat: time.RFC3339,
		UTC:        true,
		SkipPaths:  []string{"/api/v1/health"},
	})
}

// Recovery recovers from handler panics and logs the stack trace.
func Recovery(logger *zap.Logger) gin.HandlerFunc {
	return ginzap.RecoveryWithZap(logger.Named("http"), true)
}
