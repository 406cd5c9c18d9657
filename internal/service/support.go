package service

import (
	"context"
	"fmt"

	"wallbox_telemetry/internal/generation"
	"wallbox_telemetry/internal/logger"
	"wallbox_telemetry/internal/models"
)

// User-visible diagnostics for the degrade paths. They travel inside the
// reply text, never as a failed request.
const (
	msgNoCredential = "[ERROR] No configuraste la GEMINI_API_KEY en el entorno."
	msgGenFailedFmt = "Error conectando con Gemini: %v"
)

type SupportService struct {
	latest    LatestState
	generator generation.Generator // nil when no credential was configured
	log       *logger.Logger
}

func NewSupportService(latest LatestState, gen generation.Generator, log *logger.Logger) *SupportService {
	return &SupportService{latest: latest, generator: gen, log: log}
}

// Answer resolves the charger's latest state, grounds the question on it
// and asks the generation backend. Two deliberate degrade policies apply:
// any store problem (unreachable, no record) falls back to the
// "Desconocido" context so support stays available on stale telemetry, and
// any generation problem (missing credential, backend failure) is reported
// inside the reply text. Answer therefore never fails.
func (s *SupportService) Answer(ctx context.Context, question, chargerID string) string {
	dc := s.resolveContext(ctx, chargerID)
	prompt := BuildPrompt(question, chargerID, dc)

	if s.generator == nil {
		return msgNoCredential
	}

	reply, err := s.generator.Generate(ctx, prompt)
	if err != nil {
		if s.log != nil {
			s.log.Errorw("support_generation_failed", "err", err, "charger_id", chargerID)
		}
		return fmt.Sprintf(msgGenFailedFmt, err)
	}
	return reply
}

// resolveContext swallows store failures: the agent answers with the
// default context rather than surfacing a telemetry outage to the user.
func (s *SupportService) resolveContext(ctx context.Context, chargerID string) models.DeviceContext {
	rec, err := s.latest.Latest(ctx, chargerID)
	if err != nil {
		if s.log != nil {
			s.log.Errorw("support_context_lookup_failed", "err", err, "charger_id", chargerID)
		}
		return models.DefaultDeviceContext(chargerID)
	}
	if rec == nil {
		return models.DefaultDeviceContext(chargerID)
	}
	return models.ContextFromRecord(*rec)
}
