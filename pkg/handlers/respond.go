package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"todoapp/pkg/claims"
)

const detailField = "detail"

// DecodeJSONBody rejects non-JSON requests and undecodable bodies with 400.
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

func writeJSON(w http.ResponseWriter, logger *slog.Logger, status int, data any) bool {
	resp, err := json.Marshal(data)
	if err != nil {
		logger.Error("failed to serialize JSON response", "error", err)
		writeError(w, http.StatusInternalServerError, "failed json marshal")
		return false
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if _, err := w.Write(resp); err != nil {
		logger.Error("failed to write response to client", "error", err)
		return false
	}
	return true
}

// writeError answers with {"detail": detail}; detail is a string or any
// JSON-encodable object.
func writeError(w http.ResponseWriter, status int, detail any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(map[string]any{detailField: detail}); err != nil {
		return
	}
}

func getClaimsFromContext(w http.ResponseWriter, r *http.Request) (*claims.Claims, bool) {
	val, ok := r.Context().Value(claims.TokenContextKey).(*claims.Claims)
	if !ok || val == nil || val.Identity() == "" {
		writeError(w, http.StatusUnauthorized, "Could not validate credentials")
		return nil, false
	}
	return val, true
}
