package api

import (
	"encoding/json"
	"net/http"

	"github.com/qubic/go-mempool-matrix/entities"
	"go.uber.org/zap"
)

type StatusProvider interface {
	GetStatus() entities.DisplayStatus
}

type HealthResponse struct {
	Status string `json:"status"`
}

type Handler struct {
	sp     StatusProvider
	logger *zap.SugaredLogger
}

func NewHandler(sp StatusProvider, logger *zap.SugaredLogger) *Handler {
	return &Handler{sp: sp, logger: logger}
}

func (h *Handler) GetHealth(w http.ResponseWriter, _ *http.Request) {
	h.writeJson(w, HealthResponse{Status: "UP"})
}

func (h *Handler) GetStatus(w http.ResponseWriter, _ *http.Request) {
	h.writeJson(w, h.sp.GetStatus())
}

func (h *Handler) writeJson(w http.ResponseWriter, response any) {
	data, err := json.Marshal(response)
	if err != nil {
		h.logger.Errorw("Error encoding response.", "error", err)
		http.Error(w, "Error encoding response", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, err = w.Write(data)
	if err != nil {
		h.logger.Errorw("Error writing response.", "error", err)
	}
}
