package api

import (
	"net/http"
)

// =============================================================================
// ROLE GATE
// =============================================================================
//
// Authentication is an upstream concern: by the time a request reaches this
// service, a gateway has already resolved the caller and stamped the
// X-User-Role header. This middleware only enforces the role hierarchy
// viewer < editor < admin. Requests without the header act as viewers.

// Roles, in ascending order of privilege.
const (
	RoleViewer = "viewer"
	RoleEditor = "editor"
	RoleAdmin  = "admin"
)

// RoleHeader carries the pre-resolved caller role.
const RoleHeader = "X-User-Role"

var roleRank = map[string]int{
	RoleViewer: 0,
	RoleEditor: 1,
	RoleAdmin:  2,
}

// requireRole rejects requests whose role ranks below the minimum. Unknown
// role values rank as viewer.
func requireRole(minimum string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role := r.Header.Get(RoleHeader)
			if roleRank[role] < roleRank[minimum] {
				writeError(w, http.StatusForbidden,
					"Insufficient role: "+minimum+" required", nil)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// callerID returns the pre-resolved caller identity for audit rows, or
// "unknown" when the gateway did not stamp one.
func callerID(r *http.Request) string {
	if id := r.Header.Get("X-User-Id"); id != "" {
		return id
	}
	return "unknown"
}
