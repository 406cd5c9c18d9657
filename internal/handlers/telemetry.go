package handlers

import (
	"net/http"

	"wallbox_telemetry/internal/service"

	"github.com/gin-gonic/gin"
)

// Stable machine-readable error codes carried next to the human diagnostic.
const (
	codeMalformedBody    = "malformed_body"
	codeMissingParameter = "missing_parameter"
	codeDeviceNotFound   = "device_not_found"
	codeResolverError    = "resolver_error"
	codeStoreWriteFailed = "store_write_failed"
)

const (
	errMissingChargerID = "Falta el parametro ?chargerId=XYZ en la URL"
	errChargerNotFound  = "Cargador no encontrado en base de datos"
)

// Centralized error logging and response.
func (h *Handler) logAndJSONError(c *gin.Context, httpCode int, code, userMsg, logKey string, err error, kv ...interface{}) {
	if h.log != nil && err != nil {
		fields := append([]interface{}{"err", err}, kv...)
		h.log.Errorw(logKey, fields...)
	}
	c.JSON(httpCode, gin.H{"code": code, "error": userMsg})
}

// Request DTO for an incoming charger report.
type telemetryRequest struct {
	ChargerID string   `json:"chargerId" binding:"required"`
	Status    string   `json:"status" binding:"required"`
	PowerKW   *float64 `json:"powerKW"` // optional; absence is preserved as null
}

// IngestRequest is an exported model for Swagger docs of the report payload.
type IngestRequest struct {
	// Charger identifier
	ChargerID string `json:"chargerId" example:"WB-1"`
	// Reported status, e.g. Charging, Faulted, Available
	Status string `json:"status" example:"Charging"`
	// Instantaneous power draw in kW (optional)
	PowerKW *float64 `json:"powerKW,omitempty" example:"7.4"`
}

// statusResponse is the compact projection served by ConsultarEstado.
type statusResponse struct {
	Cargador     string `json:"Cargador"`
	EstadoActual string `json:"Estado_Actual"`
	TieneError   bool   `json:"Tiene_Error"`
}

// @Summary      Ingest a charger telemetry report
// @Description  Appends one immutable record; status "Faulted" is stored with the error flag raised.
// @Tags         telemetry
// @Accept       json
// @Produce      json
// @Param        body  body   IngestRequest  true  "Report payload"
// @Success      200   {object}  map[string]string  "status, message"
// @Failure      400   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /RecepcionCargador [post]
func (h *Handler) ingestTelemetry(c *gin.Context) {
	var req telemetryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		// rejected before any store write
		c.JSON(http.StatusBadRequest, gin.H{"code": codeMalformedBody, "error": "JSON invalido: " + err.Error()})
		return
	}

	res, err := h.services.Ingest.Ingest(c.Request.Context(), service.IngestParams{
		ChargerID: req.ChargerID,
		Status:    req.Status,
		PowerKW:   req.PowerKW,
	})
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, codeStoreWriteFailed,
			"no se pudo guardar la telemetria", "telemetry_ingest_failed", err, "charger_id", req.ChargerID)
		return
	}

	if h.log != nil {
		h.log.Infow("telemetry_ingested",
			"charger_id", res.Record.ChargerID, "status", res.Record.Status, "is_error", res.Record.IsError)
	}
	c.JSON(http.StatusOK, gin.H{"status": "Accepted", "message": res.Message})
}

// @Summary      Query the latest known charger state
// @Tags         telemetry
// @Produce      json
// @Param        chargerId  query  string  true  "Charger identifier"
// @Success      200  {object}  statusResponse
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /ConsultarEstado [get]
func (h *Handler) queryState(c *gin.Context) {
	chargerID := c.Query("chargerId")
	if chargerID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"code": codeMissingParameter, "error": errMissingChargerID})
		return
	}

	rec, err := h.services.LatestState.Latest(c.Request.Context(), chargerID)
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, codeResolverError,
			err.Error(), "state_query_failed", err, "charger_id", chargerID)
		return
	}
	if rec == nil {
		c.JSON(http.StatusNotFound, gin.H{"code": codeDeviceNotFound, "error": errChargerNotFound})
		return
	}

	c.JSON(http.StatusOK, statusResponse{
		Cargador:     rec.ChargerID,
		EstadoActual: rec.Status,
		TieneError:   rec.IsError,
	})
}
