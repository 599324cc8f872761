package main

import (
	"context"
	"slices"

	"go.uber.org/zap"

	"github.com/kubev2v/infra-validator/internal/models"
	"github.com/kubev2v/infra-validator/internal/services"
	"github.com/kubev2v/infra-validator/internal/store"
	"github.com/kubev2v/infra-validator/pkg/compliance"
)

// sources are the clients a suite needs. A client that could not connect is
// left nil with its error kept, so that only the checks depending on it fail.
type sources struct {
	vcenter    services.InfraSource
	backup     services.BackupSource
	validate   services.PrivilegeValidator
	vcenterErr error
	backupErr  error
	closers    []func()
}

func (s *sources) Close() {
	for _, c := range slices.Backward(s.closers) {
		c()
	}
}

func (o *rootOptions) connectSources(ctx context.Context, suite models.Suite) *sources {
	logger := zap.S().Named("cli")
	s := &sources{}

	needsInfra := slices.ContainsFunc(suite.Checks, func(c compliance.Check) bool { return !c.IsBackup() })
	needsBackup := slices.ContainsFunc(suite.Checks, func(c compliance.Check) bool { return c.IsBackup() })

	if needsInfra {
		c, err := o.connectVCenter(ctx)
		if err != nil {
			logger.Errorw("vCenter unavailable, infrastructure checks will fail", "error", err)
			s.vcenterErr = err
		} else {
			s.vcenter = c
			s.validate = c
			s.closers = append(s.closers, func() { disconnect(ctx, "vcenter", c.Disconnect) })
		}
	}

	if needsBackup {
		c, err := o.connectBackup(ctx)
		if err != nil {
			logger.Errorw("backup server unavailable, backup checks will fail", "error", err)
			s.backupErr = err
		} else {
			s.backup = c
			s.closers = append(s.closers, func() { disconnect(ctx, "backup", c.Disconnect) })
		}
	}

	return s
}

// suiteService wires the sources into a SuiteService. st may be nil.
func (o *rootOptions) suiteService(s *sources, st *store.Store) *services.SuiteService {
	builder := services.NewCheckWorkBuilder(s.vcenter, s.backup).WithConnectErrors(s.vcenterErr, s.backupErr)
	srv := services.NewSuiteService(builder, st, o.cfg.NumWorkers)
	if s.validate != nil && len(o.cfg.VCenter.RequiredPrivileges) > 0 {
		srv = srv.WithRequiredPrivileges(s.validate, o.cfg.VCenter.RequiredPrivileges)
	}
	return srv
}
