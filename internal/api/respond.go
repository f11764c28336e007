package api

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/grand-thief-cash/chaos/app/projects/taskboard/internal/apperr"
	"github.com/grand-thief-cash/chaos/app/projects/taskboard/internal/infra/logging"
)

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeData(w http.ResponseWriter, code int, data any) {
	writeJSON(w, code, map[string]any{"data": data})
}

func writeErr(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": msg})
}

// writeStoreErr maps a repository error onto a status code.
func writeStoreErr(w http.ResponseWriter, r *http.Request, err error) {
	if nf, ok := apperr.IsEntityNotFound(err); ok {
		writeErr(w, http.StatusNotFound, nf.Error())
		return
	}
	logging.Error(r.Context(), "task request failed",
		zap.String("path", r.URL.Path),
		zap.String("kind", string(apperr.KindOf(err))),
		zap.Error(err),
	)
	writeErr(w, http.StatusInternalServerError, "internal error")
}
