package api

import (
	"net/http"

	"github.com/grand-thief-cash/chaos/app/projects/taskboard/internal/consts"
	"github.com/grand-thief-cash/chaos/app/projects/taskboard/internal/security"
)

// requireUser resolves the X-Auth-Token header into a UserCtx. Requests
// without a valid token are rejected with 403.
func requireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		utx, err := security.UserCtxFromToken(r.Header.Get(consts.HEADER_AuthToken))
		if err != nil {
			writeErr(w, http.StatusForbidden, err.Error())
			return
		}
		next.ServeHTTP(w, r.WithContext(security.WithUserCtx(r.Context(), utx)))
	})
}
