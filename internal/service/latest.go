package service

import (
	"context"

	"wallbox_telemetry/internal/models"
	"wallbox_telemetry/internal/repository"
)

type LatestStateService struct {
	telemetryRepo repository.TelemetryRepo
}

func NewLatestStateService(telemetryRepo repository.TelemetryRepo) *LatestStateService {
	return &LatestStateService{telemetryRepo: telemetryRepo}
}

// Latest returns the charger's most recent record by observed_at, nil when
// the charger has never reported. No caching: every call hits the store.
func (s *LatestStateService) Latest(ctx context.Context, chargerID string) (*models.TelemetryRecord, error) {
	return s.telemetryRepo.LatestByCharger(ctx, chargerID)
}
