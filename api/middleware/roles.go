package middleware

import (
	"net/http"

	"github.com/Hrishi1717/shrimp/api/responses"
	"github.com/Hrishi1717/shrimp/pkg/enums"
	pkgerrors "github.com/Hrishi1717/shrimp/pkg/errors"
	"github.com/Hrishi1717/shrimp/pkg/logger"
)

// Messages returned by the role gates.
const (
	MessageOwnerOrAdmin = "Owner/Admin access required"
	MessageAdmin        = "Admin access required"
	MessageNotFarmer    = "Not a farmer"
)

// RequireRole rejects the request with a 403 carrying message unless the
// authenticated role is one of roles. It must run after Auth.
func RequireRole(message string, logg *logger.Logger, roles ...enums.Role) func(http.Handler) http.Handler {
	allowed := make(map[string]struct{}, len(roles))
	for _, role := range roles {
		allowed[role.String()] = struct{}{}
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := allowed[RoleFromContext(r.Context())]; !ok {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeForbidden, message))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
