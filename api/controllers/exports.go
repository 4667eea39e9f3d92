package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Hrishi1717/shrimp/api/responses"
	"github.com/Hrishi1717/shrimp/internal/exports"
	pkgerrors "github.com/Hrishi1717/shrimp/pkg/errors"
	"github.com/Hrishi1717/shrimp/pkg/logger"
)

// Export renders the {kind} collection as an .xlsx attachment.
func Export(svc exports.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "export service unavailable"))
			return
		}

		kind := exports.Kind(chi.URLParam(r, "kind"))
		file, err := svc.Export(r.Context(), kind)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteAttachment(w, file.Name, file.ContentType, file.Body)
	}
}
