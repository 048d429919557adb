package controllers

import (
	"net/http"

	json "github.com/goccy/go-json"
	"github.com/gookit/validate"

	"pingerconf/internal/providers"
)

type passwordRequest struct {
	Password string `json:"password" validate:"required"`
}

type gateResponse struct {
	Success bool `json:"success"`
}

type GateController struct {
	logger providers.Logger
	gate   providers.GateProviderInterface
}

func NewGateController(logger providers.Logger, gate providers.GateProviderInterface) *GateController {
	return &GateController{
		logger: logger,
		gate:   gate,
	}
}

func (gc *GateController) VerifyPassword(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	var payload passwordRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		providers.WriteJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid request"})
		return
	}
	if v := validate.Struct(&payload); !v.Validate() {
		providers.WriteJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid request"})
		return
	}
	if !gc.gate.Verify(payload.Password) {
		gc.logger.Warnf(providers.TypePost, "Site password rejected from %s", r.RemoteAddr)
		providers.WriteJSON(w, http.StatusUnauthorized, gateResponse{Success: false})
		return
	}
	providers.WriteJSON(w, http.StatusOK, gateResponse{Success: true})
}
