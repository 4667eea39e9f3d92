package controllers

import (
	"net/http"

	"github.com/Hrishi1717/shrimp/api/responses"
	"github.com/Hrishi1717/shrimp/internal/dashboard"
	pkgerrors "github.com/Hrishi1717/shrimp/pkg/errors"
	"github.com/Hrishi1717/shrimp/pkg/logger"
)

func DashboardAdmin(svc dashboard.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "dashboard service unavailable"))
			return
		}

		summary, err := svc.AdminSummary(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, summary)
	}
}
