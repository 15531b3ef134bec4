package scheduler

import (
	"github.com/robfig/cron/v3"

	"github.com/matmarket/matmarket-backend/internal/app/service"
	"github.com/matmarket/matmarket-backend/pkg/logger"
)

// CatalogScheduler periodically reloads the catalog snapshot from the
// database so new or changed products become visible without a restart.
type CatalogScheduler struct {
	cron           *cron.Cron
	catalogService service.CatalogService
	schedule       string
}

func NewCatalogScheduler(catalogService service.CatalogService, schedule string) *CatalogScheduler {
	return &CatalogScheduler{
		cron:           cron.New(),
		catalogService: catalogService,
		schedule:       schedule,
	}
}

// Start registers the refresh job and starts the cron loop.
func (s *CatalogScheduler) Start() error {
	_, err := s.cron.AddFunc(s.schedule, func() {
		logger.Info("Starting scheduled catalog refresh")

		if err := s.catalogService.Reload(); err != nil {
			logger.Error("Scheduled catalog refresh failed", err)
			return
		}

		logger.Info("Scheduled catalog refresh completed")
	})
	if err != nil {
		logger.Error("Failed to register catalog refresh job", err, map[string]interface{}{
			"schedule": s.schedule,
		})
		return err
	}

	s.cron.Start()
	logger.Info("Catalog scheduler started", map[string]interface{}{
		"schedule": s.schedule,
	})
	return nil
}

// Stop halts the cron loop.
func (s *CatalogScheduler) Stop() {
	s.cron.Stop()
	logger.Info("Catalog scheduler stopped")
}
