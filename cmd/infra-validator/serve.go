package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	v1 "github.com/kubev2v/infra-validator/api/v1"
	"github.com/kubev2v/infra-validator/internal/handlers"
	"github.com/kubev2v/infra-validator/internal/server"
	"github.com/kubev2v/infra-validator/internal/services"
)

const shutdownTimeout = 10 * time.Second

func newServeCommand(o *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the validation API over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := zap.S().Named("cli")

			suite, err := o.suite()
			if err != nil {
				return err
			}

			st, err := o.openStore(ctx)
			if err != nil {
				return err
			}
			var reportSrv *services.ReportService
			if st != nil {
				defer closeStore(st)
				reportSrv = services.NewReportService(st)
			}

			var inventorySrv *services.InventoryService
			if o.cfg.Inventory.Workbook != "" {
				if inventorySrv, err = o.inventoryService(); err != nil {
					return err
				}
			}

			src := o.connectSources(ctx, suite)
			defer src.Close()

			h := handlers.New(o.suiteService(src, st), reportSrv, inventorySrv, suite).WithVersion(version)

			srv, err := server.NewServer(o.cfg, func(router *gin.RouterGroup) {
				v1.RegisterHandlers(router, h)
			})
			if err != nil {
				return err
			}

			errCh := make(chan error, 1)
			go func() {
				errCh <- srv.Start(ctx)
			}()

			select {
			case err := <-errCh:
				if !errors.Is(err, http.ErrServerClosed) {
					return err
				}
				return nil
			case <-ctx.Done():
			}

			logger.Info("shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
			defer cancel()
			if err := srv.Stop(shutdownCtx); err != nil {
				return err
			}
			if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		},
	}

	fs := cmd.Flags()
	fs.Int("http-port", 8000, "HTTP port")
	fs.String("server-mode", "dev", "Server mode (dev, prod)")
	fs.Bool("auth-enabled", false, "Require bearer tokens")
	fs.String("store", "", "Path of the run history database")
	fs.Int("workers", 1, "Checks evaluated concurrently")
	bindInventoryFlags(cmd)
	bindVCenterFlags(cmd)

	return cmd
}
