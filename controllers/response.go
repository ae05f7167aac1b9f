package controller

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator"

	"github.com/Abhin-Krishna-MP/CakeFarm/services"
)

var validate = validator.New()

func writeJSON(w http.ResponseWriter, status int, message string, data interface{}) {
	response := map[string]interface{}{
		"success": status < 400,
		"message": message,
	}
	if data != nil {
		response["data"] = data
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(response)
}

// writeError maps the service error taxonomy onto HTTP statuses.
func writeError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		writeJSON(w, http.StatusNotFound, err.Error(), nil)
	case errors.Is(err, services.ErrInvalidRequest):
		writeJSON(w, http.StatusBadRequest, err.Error(), nil)
	default:
		writeJSON(w, http.StatusInternalServerError, fallback, nil)
	}
}
