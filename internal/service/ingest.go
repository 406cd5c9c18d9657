package service

import (
	"context"

	"wallbox_telemetry/internal/models"
	"wallbox_telemetry/internal/repository"
)

// Acknowledgement messages, user-facing, Spanish like the rest of the API.
const (
	MsgAlertSaved = "Alerta guardada."
	MsgDataSaved  = "Datos guardados."
)

type IngestService struct {
	telemetryRepo repository.TelemetryRepo
}

func NewIngestService(telemetryRepo repository.TelemetryRepo) *IngestService {
	return &IngestService{telemetryRepo: telemetryRepo}
}

// Ingest builds one immutable record from the report and appends it.
// Classification is minimal: only "Faulted" raises the error flag; any
// other status is stored as-is without alerting. The write is single-shot,
// a store failure propagates and nothing is persisted.
func (s *IngestService) Ingest(ctx context.Context, p IngestParams) (IngestResult, error) {
	rec := models.NewTelemetryRecord(p.ChargerID, p.Status, p.PowerKW)

	if err := s.telemetryRepo.Append(ctx, rec); err != nil {
		return IngestResult{}, err
	}

	msg := MsgDataSaved
	if rec.IsError {
		msg = MsgAlertSaved
	}
	return IngestResult{Record: rec, Message: msg}, nil
}
