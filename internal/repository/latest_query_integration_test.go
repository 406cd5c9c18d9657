package repository_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"wallbox_telemetry/internal/models"
	"wallbox_telemetry/internal/repository"
	"wallbox_telemetry/internal/repository/db"
)

func newSQLiteRepo(t *testing.T) *repository.TelemetrySQLite {
	t.Helper()
	conn, err := db.InitDB(filepath.Join(t.TempDir(), "telemetry.db"))
	if err != nil {
		t.Fatalf("InitDB(): %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })
	return repository.NewTelemetrySQLite(conn)
}

func TestLatestByCharger_MaximalObservedAtWinsRegardlessOfInsertionOrder(t *testing.T) {
	repo := newSQLiteRepo(t)
	ctx := context.Background()

	base := time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC)
	// newest record inserted first on purpose
	for i, rec := range []models.TelemetryRecord{
		{ID: "rec-c", ChargerID: "WB-1", Status: models.StatusCharging, ObservedAt: base.Add(2 * time.Minute)},
		{ID: "rec-a", ChargerID: "WB-1", Status: models.StatusFaulted, IsError: true, ObservedAt: base},
		{ID: "rec-b", ChargerID: "WB-1", Status: "Available", ObservedAt: base.Add(time.Minute)},
		{ID: "rec-x", ChargerID: "WB-2", Status: models.StatusFaulted, IsError: true, ObservedAt: base.Add(time.Hour)},
	} {
		if err := repo.Append(ctx, rec); err != nil {
			t.Fatalf("Append(%d): %v", i, err)
		}
	}

	got, err := repo.LatestByCharger(ctx, "WB-1")
	if err != nil {
		t.Fatalf("LatestByCharger(): %v", err)
	}
	if got == nil || got.ID != "rec-c" {
		t.Fatalf("expected rec-c (maximal observed_at), got %+v", got)
	}
	if got.Status != models.StatusCharging || got.IsError {
		t.Fatalf("second write wins by recency, not error precedence: %+v", got)
	}
}

func TestLatestByCharger_EqualObservedAtBreaksTieOnGreaterID(t *testing.T) {
	repo := newSQLiteRepo(t)
	ctx := context.Background()

	ts := time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC)
	for _, rec := range []models.TelemetryRecord{
		{ID: "0001", ChargerID: "WB-1", Status: models.StatusFaulted, IsError: true, ObservedAt: ts},
		{ID: "0002", ChargerID: "WB-1", Status: models.StatusCharging, ObservedAt: ts},
	} {
		if err := repo.Append(ctx, rec); err != nil {
			t.Fatalf("Append(): %v", err)
		}
	}

	got, err := repo.LatestByCharger(ctx, "WB-1")
	if err != nil {
		t.Fatalf("LatestByCharger(): %v", err)
	}
	if got == nil || got.ID != "0002" {
		t.Fatalf("expected deterministic tie-break on id, got %+v", got)
	}
}

func TestLatestByCharger_ScopedToTheRequestedCharger(t *testing.T) {
	repo := newSQLiteRepo(t)
	ctx := context.Background()

	power := 7.4
	rec := models.TelemetryRecord{
		ID: "rec-1", ChargerID: "WB-1", Status: models.StatusCharging,
		PowerKW: &power, ObservedAt: time.Now().UTC(),
	}
	if err := repo.Append(ctx, rec); err != nil {
		t.Fatalf("Append(): %v", err)
	}

	got, err := repo.LatestByCharger(ctx, "WB-other")
	if err != nil {
		t.Fatalf("LatestByCharger(): %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil for a charger with no records, got %+v", got)
	}

	got, err = repo.LatestByCharger(ctx, "WB-1")
	if err != nil {
		t.Fatalf("LatestByCharger(): %v", err)
	}
	if got == nil || got.PowerKW == nil || *got.PowerKW != 7.4 {
		t.Fatalf("expected power preserved through the store, got %+v", got)
	}
}
