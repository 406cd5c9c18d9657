package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Request DTO for a support question. chargerId is not required: without it
// the agent answers from the default context instead of failing.
type supportRequest struct {
	Mensaje   string `json:"mensaje" binding:"required"`
	ChargerID string `json:"chargerId"`
}

// AskRequest is an exported model for Swagger docs of the agent payload.
type AskRequest struct {
	// The user's question, verbatim
	Mensaje string `json:"mensaje" example:"¿Por qué mi cargador no funciona?"`
	// Charger the question is about
	ChargerID string `json:"chargerId" example:"WB-1"`
}

// @Summary      Ask the support agent about a charger
// @Description  Always answers 200; store or generation problems surface inside "respuesta", never as a failed request.
// @Tags         support
// @Accept       json
// @Produce      json
// @Param        body  body   AskRequest  true  "Question payload"
// @Success      200   {object}  map[string]string  "respuesta"
// @Failure      400   {object}  map[string]string
// @Router       /AgenteSoporte [post]
func (h *Handler) supportAgent(c *gin.Context) {
	var req supportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": codeMalformedBody, "error": "JSON invalido: " + err.Error()})
		return
	}

	respuesta := h.services.Support.Answer(c.Request.Context(), req.Mensaje, req.ChargerID)
	c.JSON(http.StatusOK, gin.H{"respuesta": respuesta})
}
