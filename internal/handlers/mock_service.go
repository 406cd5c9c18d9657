package handlers

import (
	"context"

	"wallbox_telemetry/internal/models"
	"wallbox_telemetry/internal/service"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

type mockIngest struct {
	result service.IngestResult
	err    error

	calls      int
	lastParams service.IngestParams
}

func (m *mockIngest) Ingest(ctx context.Context, p service.IngestParams) (service.IngestResult, error) {
	m.calls++
	m.lastParams = p
	return m.result, m.err
}

type mockLatestState struct {
	rec *models.TelemetryRecord
	err error

	calls         int
	lastChargerID string
}

func (m *mockLatestState) Latest(ctx context.Context, chargerID string) (*models.TelemetryRecord, error) {
	m.calls++
	m.lastChargerID = chargerID
	return m.rec, m.err
}

type mockSupport struct {
	reply string

	calls         int
	lastQuestion  string
	lastChargerID string
}

func (m *mockSupport) Answer(ctx context.Context, question, chargerID string) string {
	m.calls++
	m.lastQuestion = question
	m.lastChargerID = chargerID
	return m.reply
}

// ---- Shared Test Helpers ----

func newTestRouter(s *service.Service) *gin.Engine {
	h := NewHandler(s, nil)
	gin.SetMode(gin.TestMode)
	return h.InitRoutes()
}
