package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"wallbox_telemetry/internal/models"
)

type fakeGenerator struct {
	reply      string
	err        error
	lastPrompt string
	calls      int
}

func (f *fakeGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	f.calls++
	f.lastPrompt = prompt
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

func TestSupportService_GroundsPromptOnStoredState(t *testing.T) {
	rec := models.NewTelemetryRecord("WB-1", models.StatusFaulted, ptr(0))
	repo := &fakeTelemetryRepo{latestResp: &rec}
	gen := &fakeGenerator{reply: "Lamento el problema, reinicia las protecciones."}
	svc := NewSupportService(NewLatestStateService(repo), gen, nil)

	question := "¿Por qué mi cargador no funciona?"
	got := svc.Answer(context.Background(), question, "WB-1")

	if got != gen.reply {
		t.Fatalf("expected generated reply, got %q", got)
	}
	if gen.calls != 1 {
		t.Fatalf("expected one generation call, got %d", gen.calls)
	}
	for _, want := range []string{"WB-1", models.StatusFaulted, question, "true"} {
		if !strings.Contains(gen.lastPrompt, want) {
			t.Fatalf("prompt missing %q:\n%s", want, gen.lastPrompt)
		}
	}
	// store internals must not leak into the prompt
	if strings.Contains(gen.lastPrompt, rec.ID) {
		t.Fatalf("prompt leaks record id:\n%s", gen.lastPrompt)
	}
}

func TestSupportService_StoreFailureDegradesToUnknownContext(t *testing.T) {
	repo := &fakeTelemetryRepo{latestErr: errors.New("store unreachable")}
	gen := &fakeGenerator{reply: "respuesta"}
	svc := NewSupportService(NewLatestStateService(repo), gen, nil)

	got := svc.Answer(context.Background(), "¿Está cargando?", "WB-1")

	if got != "respuesta" {
		t.Fatalf("store outage must not fail the request, got %q", got)
	}
	if !strings.Contains(gen.lastPrompt, models.StatusUnknown) {
		t.Fatalf("expected default %q context in prompt:\n%s", models.StatusUnknown, gen.lastPrompt)
	}
}

func TestSupportService_NoTelemetryUsesDefaultContext(t *testing.T) {
	gen := &fakeGenerator{reply: "respuesta"}
	svc := NewSupportService(NewLatestStateService(&fakeTelemetryRepo{}), gen, nil)

	got := svc.Answer(context.Background(), "hola", "WB-404")

	if got == "" {
		t.Fatalf("expected a non-empty reply for a charger with no telemetry")
	}
	if !strings.Contains(gen.lastPrompt, models.StatusUnknown) {
		t.Fatalf("expected default context in prompt:\n%s", gen.lastPrompt)
	}
}

func TestSupportService_MissingCredentialShortCircuits(t *testing.T) {
	svc := NewSupportService(NewLatestStateService(&fakeTelemetryRepo{}), nil, nil)

	got := svc.Answer(context.Background(), "hola", "WB-1")

	if got != msgNoCredential {
		t.Fatalf("expected missing-credential diagnostic, got %q", got)
	}
}

func TestSupportService_GenerationFailureBecomesDiagnosticText(t *testing.T) {
	gen := &fakeGenerator{err: errors.New("deadline exceeded")}
	svc := NewSupportService(NewLatestStateService(&fakeTelemetryRepo{}), gen, nil)

	got := svc.Answer(context.Background(), "hola", "WB-1")

	if !strings.Contains(got, "Error conectando con Gemini") || !strings.Contains(got, "deadline exceeded") {
		t.Fatalf("expected generation diagnostic with cause, got %q", got)
	}
}

func TestBuildPrompt_ContainsPersonaContextAndPolicyBranches(t *testing.T) {
	dc := models.DeviceContext{ChargerID: "WB-1", Status: models.StatusCharging, IsError: false, PowerKW: 7.4}
	prompt := BuildPrompt("¿Todo bien?", "WB-1", dc)

	for _, want := range []string{
		"ingeniero de soporte técnico experto de Wallbox",
		"CONTEXTO TÉCNICO DEL CARGADOR WB-1",
		models.StatusCharging,
		"7.4 kW",
		"\"¿Todo bien?\"",
		"'Faulted'",
		"'Charging'",
		"Responde en español",
	} {
		if !strings.Contains(prompt, want) {
			t.Fatalf("prompt missing %q:\n%s", want, prompt)
		}
	}
}
