package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"geotodo/pkg/claims"
)

const (
	muxVarTaskID string = "task_id"
)

func DecodeJSONBody(w http.ResponseWriter, r *http.Request, req any) bool {
	if r.Header.Get("Content-Type") != "application/json" {
		writeError(w, http.StatusBadRequest, "invalid Content-Type")
		return false
	}

	defer r.Body.Close()

	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		writeError(w, http.StatusBadRequest, "bad json")
		return false
	}

	return true
}

// writeData wraps the payload in the {success, data} envelope every endpoint
// speaks.
func writeData(w http.ResponseWriter, logger *slog.Logger, data any, extra map[string]any) bool {
	body := map[string]any{
		"success": true,
		"data":    data,
	}
	for k, v := range extra {
		body[k] = v
	}

	resp, err := json.Marshal(body)
	if err != nil {
		logger.Error("failed to serialize JSON response", "error", err)
		writeError(w, http.StatusInternalServerError, "failed json marshal")
		return false
	}

	w.Header().Set("Content-Type", "application/json")

	if _, err := w.Write(resp); err != nil {
		logger.Error("failed to write response to client", "error", err)
		return false
	}
	return true
}

func getClaimsFromContext(w http.ResponseWriter, r *http.Request, c *claims.Claims) bool {
	val, ok := r.Context().Value(claims.TokenContextKey).(*claims.Claims)
	if !ok || val == nil || val.Subject == "" {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return false
	}
	*c = *val
	return true
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(map[string]any{"success": false, "message": msg}); err != nil {
		return
	}
}
