package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/kubev2v/infra-validator/internal/config"
	"github.com/kubev2v/infra-validator/internal/models"
	"github.com/kubev2v/infra-validator/internal/store"
	"github.com/kubev2v/infra-validator/internal/store/migrations"
	"github.com/kubev2v/infra-validator/pkg/backup"
	srvErrors "github.com/kubev2v/infra-validator/pkg/errors"
	applog "github.com/kubev2v/infra-validator/pkg/log"
	"github.com/kubev2v/infra-validator/pkg/vmware"
)

var version = "dev"

const (
	outputYAML = "yaml"
	outputJSON = "json"
)

// rootOptions holds what every subcommand shares. cfg is set before any
// subcommand runs.
type rootOptions struct {
	configFile string
	cfg        *config.Configuration
	logger     *zap.Logger
}

func NewRootCommand() *cobra.Command {
	o := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "infra-validator",
		Short:         "Validate vCenter infrastructure and backup compliance",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return o.complete(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if o.logger != nil {
				_ = o.logger.Sync()
			}
		},
	}

	fs := cmd.PersistentFlags()
	fs.StringVarP(&o.configFile, "config", "c", "", "Path to configuration file")
	fs.String("log-level", "info", "Log level (debug, info, warn, error)")
	fs.String("log-format", applog.FormatConsole, "Log format (console, json)")

	cmd.AddCommand(
		newLookupCommand(o),
		newInventoryCommand(o),
		newVMCommand(o),
		newHostCommand(o),
		newDatastoresCommand(o),
		newBackupCommand(o),
		newValidateCommand(o),
		newRunCommand(o),
		newReportsCommand(o),
		newServeCommand(o),
	)

	return cmd
}

// complete loads the configuration and installs the global logger.
func (o *rootOptions) complete(cmd *cobra.Command) error {
	cfg, err := config.Load(o.configFile, cmd.Flags())
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	lvl, err := applog.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	logger, err := applog.InitLog(lvl, cfg.LogFormat)
	if err != nil {
		return err
	}
	zap.ReplaceGlobals(logger)

	o.cfg = cfg
	o.logger = logger
	zap.S().Named("cli").Debugw("configuration loaded", "config", cfg.Redacted())

	return nil
}

func (o *rootOptions) connectVCenter(ctx context.Context) (*vmware.Client, error) {
	return vmware.Connect(ctx, vmware.Credentials{
		Host:     o.cfg.VCenter.Host,
		Username: o.cfg.VCenter.Username,
		Password: o.cfg.VCenter.Password,
		Port:     o.cfg.VCenter.Port,
		Insecure: o.cfg.VCenter.Insecure,
	})
}

func (o *rootOptions) connectBackup(ctx context.Context) (*backup.Client, error) {
	c := backup.NewClient(backup.Options{
		Server:   o.cfg.Backup.Server,
		Username: o.cfg.Backup.Username,
		Password: o.cfg.Backup.Password,
		Insecure: o.cfg.Backup.Insecure,
		Timeout:  o.cfg.Backup.Timeout,
	})
	if err := c.Connect(ctx); err != nil {
		return nil, err
	}
	return c, nil
}

// openStore returns nil when no store path is configured.
func (o *rootOptions) openStore(ctx context.Context) (*store.Store, error) {
	if o.cfg.Store.Path == "" {
		return nil, nil
	}

	db, err := store.NewDB(o.cfg.Store.Path)
	if err != nil {
		return nil, err
	}
	if err := migrations.Run(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to migrate store %s: %w", o.cfg.Store.Path, err)
	}
	return store.NewStore(db), nil
}

func (o *rootOptions) requireStore(ctx context.Context) (*store.Store, error) {
	st, err := o.openStore(ctx)
	if err != nil {
		return nil, err
	}
	if st == nil {
		return nil, srvErrors.NewConfigurationError("store.path is not set, run history is disabled")
	}
	return st, nil
}

func (o *rootOptions) suite() (models.Suite, error) {
	checks, err := o.cfg.Checks()
	if err != nil {
		return models.Suite{}, err
	}
	return models.Suite{
		Name:       o.cfg.Suite.Name,
		Checks:     checks,
		Cluster:    o.cfg.Suite.Cluster,
		Hosts:      o.cfg.Suite.Hosts,
		VMs:        o.cfg.Suite.VMs,
		Thresholds: o.cfg.Thresholds,
	}, nil
}

func bindOutput(fs *pflag.FlagSet, target *string) {
	fs.StringVarP(target, "output", "o", outputYAML, fmt.Sprintf("Output format. One of: (%s).", strings.Join([]string{outputYAML, outputJSON}, ", ")))
}

func printOutput(w io.Writer, v any, format string) error {
	switch format {
	case outputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case outputYAML, "":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("output format must be one of %s, %s", outputYAML, outputJSON)
	}
}

func disconnect(ctx context.Context, name string, fn func(context.Context) error) {
	if err := fn(context.WithoutCancel(ctx)); err != nil {
		zap.S().Named("cli").Warnw("failed to disconnect", "client", name, "error", err)
	}
}
