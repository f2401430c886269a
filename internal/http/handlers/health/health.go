// Package health serves the liveness endpoint.
package health

import (
	"net/http"

	"github.com/aanand-mishra/alumni-api/internal/utils/response"
)

// Get handles GET /healthz. It does not touch the data source: an
// unreadable source is a data problem, not a liveness problem.
func Get() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		response.WriteJSON(w, http.StatusOK, map[string]string{"status": response.StatusOK})
	}
}
