package service

import (
	"fmt"

	"wallbox_telemetry/internal/models"
)

// promptTemplate is the sole interface to the generation backend. It
// exposes exactly the three DeviceContext fields plus the user's question;
// record ids and timestamps never reach the model.
const promptTemplate = `Actúa como un ingeniero de soporte técnico experto de Wallbox.

CONTEXTO TÉCNICO DEL CARGADOR %s:
- Estado actual en base de datos: %s
- ¿Tiene error activo?: %t
- Potencia actual: %g kW

PREGUNTA DEL CLIENTE:
"%s"

INSTRUCCIONES:
- Analiza el estado técnico y responde al cliente.
- Si el estado es 'Faulted', sé empático y sugiere reiniciar las protecciones.
- Si es 'Charging', confirma que todo está bien.
- Responde en español, sé breve y profesional.`

// BuildPrompt assembles the grounding block for one support question. The
// question is embedded verbatim.
func BuildPrompt(question, chargerID string, dc models.DeviceContext) string {
	return fmt.Sprintf(promptTemplate, chargerID, dc.Status, dc.IsError, dc.PowerKW, question)
}
