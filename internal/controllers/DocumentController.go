package controllers

import (
	"io"
	"net/http"

	"pingerconf/internal/models"
	"pingerconf/internal/providers"
	"pingerconf/internal/services"
)

type saveResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type DocumentController struct {
	logger  providers.Logger
	service services.ConfigServiceInterface
}

func NewDocumentController(logger providers.Logger, service services.ConfigServiceInterface) *DocumentController {
	return &DocumentController{
		logger:  logger,
		service: service,
	}
}

// GetDocument serves the whole configuration document.
func (dc *DocumentController) GetDocument(w http.ResponseWriter, r *http.Request) {
	data, err := dc.service.DocumentBytes(r.Context())
	if err != nil {
		dc.logger.Errorf(providers.TypeGet, "Error loading configs: %s", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// SaveDocument overwrites the whole document with the request body.
func (dc *DocumentController) SaveDocument(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	body, err := io.ReadAll(r.Body)
	if err != nil {
		providers.WriteJSON(w, http.StatusBadRequest, saveResponse{Success: false, Message: "Invalid request"})
		return
	}
	doc, err := models.ParseDocument(body)
	if err != nil {
		providers.WriteJSON(w, http.StatusBadRequest, saveResponse{Success: false, Message: "Invalid request"})
		return
	}

	if err := dc.service.ReplaceDocument(r.Context(), doc); err != nil {
		providers.WriteJSON(w, http.StatusInternalServerError, saveResponse{Success: false, Message: "Failed to save config"})
		return
	}
	providers.WriteJSON(w, http.StatusOK, saveResponse{Success: true, Message: "Config saved successfully"})
}
