package models

import (
	"time"

	"github.com/google/uuid"
)

// Charger status values reported by the field units. The set is open:
// anything else a charger sends is stored verbatim, only "Faulted" raises
// the error flag.
const (
	StatusCharging = "Charging"
	StatusFaulted  = "Faulted"
	StatusUnknown  = "Desconocido"
)

// TelemetryRecord is one immutable observation of one charger.
type TelemetryRecord struct {
	ID         string    `json:"id"`
	ChargerID  string    `json:"chargerId"`
	Status     string    `json:"status"`
	PowerKW    *float64  `json:"powerKW"` // nil means the charger did not report power; kept as explicit null
	IsError    bool      `json:"isError"`
	ObservedAt time.Time `json:"observedAt"`
}

// NewTelemetryRecord builds a fully-populated record for ingestion:
// fresh uuid, IsError derived from status, ObservedAt set to UTC now.
// IsError is fixed at write time and never recomputed later.
func NewTelemetryRecord(chargerID, status string, powerKW *float64) TelemetryRecord {
	return TelemetryRecord{
		ID:         uuid.NewString(),
		ChargerID:  chargerID,
		Status:     status,
		PowerKW:    powerKW,
		IsError:    status == StatusFaulted,
		ObservedAt: time.Now().UTC(),
	}
}

// DeviceContext is the per-request snapshot handed to the support agent's
// prompt. It is never persisted.
type DeviceContext struct {
	ChargerID string
	Status    string
	IsError   bool
	PowerKW   float64
}

// DefaultDeviceContext is the fallback when the charger has no telemetry
// or the store cannot be reached.
func DefaultDeviceContext(chargerID string) DeviceContext {
	return DeviceContext{
		ChargerID: chargerID,
		Status:    StatusUnknown,
		IsError:   false,
		PowerKW:   0,
	}
}

// ContextFromRecord projects a stored record into the agent's context.
func ContextFromRecord(rec TelemetryRecord) DeviceContext {
	dc := DeviceContext{
		ChargerID: rec.ChargerID,
		Status:    rec.Status,
		IsError:   rec.IsError,
	}
	if rec.PowerKW != nil {
		dc.PowerKW = *rec.PowerKW
	}
	return dc
}
