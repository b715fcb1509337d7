package root

import (
	"context"
	"strings"

	"github.com/okian/mindlab/internal/adapters/repository"
	service "github.com/okian/mindlab/internal/app"
	"github.com/okian/mindlab/internal/config"
	"github.com/okian/mindlab/internal/domain/report"
	"github.com/okian/mindlab/pkg/logger"
)

// loadConfig reads the layered configuration and applies the store flags.
func loadConfig(ctx context.Context, sf *storeFlags) (*config.Config, error) {
	cfg, err := config.Load(ctx)
	if err != nil {
		return nil, err
	}
	if sf.backend != "" {
		cfg.StoreBackend = strings.ToLower(sf.backend)
	}
	if sf.path != "" {
		cfg.StorePath = sf.path
	}
	return cfg, nil
}

// openService builds an ungated service over the configured store. Local
// access to the store already grants access to the journal.
func openService(ctx context.Context, cfg *config.Config) (*service.Service, func(), error) {
	sheet, closeSheet, err := repository.OpenSheet(ctx, cfg.StoreBackend, cfg.StorePath)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		_ = closeSheet()
	}

	svc := service.New(
		service.WithStore(repository.NewSheetStore(sheet,
			repository.WithLocation(cfg.Location()),
			repository.WithLogger(logger.Nop()),
		)),
		service.WithBackendName(cfg.StoreBackend),
		service.WithReportBuilder(report.NewBuilder(
			report.WithTitle(cfg.ReportTitle),
			report.WithNotesLimit(cfg.NotesLimit),
			report.WithPageSize(cfg.PageSize),
			report.WithAuthor(cfg.ReportAuthor),
		)),
	)
	return svc, cleanup, nil
}
