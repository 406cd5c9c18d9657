package repository

import (
	"context"
	"database/sql"

	"wallbox_telemetry/internal/models"
)

// TelemetryRepo is the narrow store contract the rest of the app depends
// on: append-only writes and a top-1 recency read. Records are never
// updated or deleted here; retention is the store's concern.
type TelemetryRepo interface {
	Append(ctx context.Context, rec models.TelemetryRecord) error
	// LatestByCharger returns the most recent record for the charger,
	// or (nil, nil) when the charger has never reported.
	LatestByCharger(ctx context.Context, chargerID string) (*models.TelemetryRecord, error)
}

type Repository struct {
	Telemetry TelemetryRepo
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		Telemetry: NewTelemetrySQLite(db),
	}
}
