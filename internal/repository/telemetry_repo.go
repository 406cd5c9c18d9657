package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"wallbox_telemetry/internal/models"
)

type TelemetrySQLite struct {
	db *sql.DB
}

func NewTelemetrySQLite(db *sql.DB) *TelemetrySQLite { return &TelemetrySQLite{db: db} }

const (
	insertTelemetrySQL = `
		INSERT INTO telemetry (id, charger_id, status, power_kw, is_error, observed_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	// Top-1 by recency over the full charger key space. Ties on
	// observed_at break deterministically on the larger id.
	selectLatestSQL = `
		SELECT id, charger_id, status, power_kw, is_error, observed_at
		FROM telemetry WHERE charger_id = ?
		ORDER BY observed_at DESC, id DESC LIMIT 1
	`
)

// Append inserts one immutable telemetry row. Existing rows are never
// touched; a duplicate id is a hard error from the primary key.
func (r *TelemetrySQLite) Append(ctx context.Context, rec models.TelemetryRecord) error {
	ts := rec.ObservedAt
	if ts.IsZero() {
		ts = time.Now().UTC()
	} else {
		ts = ts.UTC()
	}

	// power_kw stays NULL when the charger did not report power
	var power sql.NullFloat64
	if rec.PowerKW != nil {
		power = sql.NullFloat64{Float64: *rec.PowerKW, Valid: true}
	}

	if _, err := r.db.ExecContext(ctx, insertTelemetrySQL,
		rec.ID,
		rec.ChargerID,
		rec.Status,
		power,
		rec.IsError,
		ts,
	); err != nil {
		return fmt.Errorf("append telemetry for %q: %w", rec.ChargerID, err)
	}
	return nil
}

// LatestByCharger fetches the single most recent record for the charger.
// A charger with no rows yields (nil, nil), not an error.
func (r *TelemetrySQLite) LatestByCharger(ctx context.Context, chargerID string) (*models.TelemetryRecord, error) {
	row := r.db.QueryRowContext(ctx, selectLatestSQL, chargerID)

	var (
		rec   models.TelemetryRecord
		power sql.NullFloat64
	)
	if err := row.Scan(
		&rec.ID,
		&rec.ChargerID,
		&rec.Status,
		&power,
		&rec.IsError,
		&rec.ObservedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("query latest telemetry for %q: %w", chargerID, err)
	}

	if power.Valid {
		v := power.Float64
		rec.PowerKW = &v
	}
	rec.ObservedAt = rec.ObservedAt.UTC()

	return &rec, nil
}
