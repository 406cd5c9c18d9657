package service

import (
	"context"

	"wallbox_telemetry/internal/generation"
	"wallbox_telemetry/internal/logger"
	"wallbox_telemetry/internal/models"
	"wallbox_telemetry/internal/repository"
)

// IngestParams is the validated shape of an incoming charger report.
type IngestParams struct {
	ChargerID string
	Status    string
	PowerKW   *float64 // nil when the report omitted power
}

// IngestResult is the acknowledgement for a stored report.
type IngestResult struct {
	Record  models.TelemetryRecord
	Message string // "Alerta guardada." when the report was a fault, "Datos guardados." otherwise
}

// Ingest classifies and persists charger reports.
type Ingest interface {
	Ingest(ctx context.Context, p IngestParams) (IngestResult, error)
}

// LatestState resolves the most recent telemetry record per charger.
type LatestState interface {
	Latest(ctx context.Context, chargerID string) (*models.TelemetryRecord, error)
}

// Support answers end-user questions grounded on the charger's stored
// state. It never fails: store and generation problems degrade into the
// reply text.
type Support interface {
	Answer(ctx context.Context, question, chargerID string) string
}

// Service aggregates all sub-services for handler wiring.
type Service struct {
	Ingest
	LatestState
	Support
}

func NewService(repos *repository.Repository, gen generation.Generator, log *logger.Logger) *Service {
	latest := NewLatestStateService(repos.Telemetry)
	return &Service{
		Ingest:      NewIngestService(repos.Telemetry),
		LatestState: latest,
		Support:     NewSupportService(latest, gen, log),
	}
}
