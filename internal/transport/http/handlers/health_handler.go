package handlers

import (
	"net/http"

	httperrors "github.com/ahsasnagar11/typeshit3/internal/transport/http/errors"
)

type HealthHandler struct{}

func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

func (h *HealthHandler) Handle(w http.ResponseWriter, _ *http.Request) {
	httperrors.Write(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"message": "Server is running",
	})
}
