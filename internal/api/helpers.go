package api

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
)

// Error responses carry a `detail` field surfaced verbatim to the
// client; this is the contract the front-end consumes.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	err := json.NewEncoder(w).Encode(v)
	if err != nil {
		slog.Error("failed to encode JSON response", "error", err)

		http.Error(w, `{"detail":"internal json encode failure"}`, http.StatusInternalServerError)
	}
}

func writeDetail(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}

// decodeBody reads a JSON request with a size cap and unknown-field
// rejection; returns false after writing the 400 itself.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1MB cap
	defer r.Body.Close()

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	err := dec.Decode(dst)
	if err != nil {
		if errors.Is(err, io.EOF) {
			writeDetail(w, http.StatusBadRequest, "empty body")

			return false
		}

		writeDetail(w, http.StatusBadRequest, "invalid JSON")

		return false
	}

	return true
}
