package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/Hrishi1717/shrimp/api/responses"
	"github.com/Hrishi1717/shrimp/api/validators"
	"github.com/Hrishi1717/shrimp/internal/dispatch"
	pkgerrors "github.com/Hrishi1717/shrimp/pkg/errors"
	"github.com/Hrishi1717/shrimp/pkg/logger"
)

// dispatchDateLayouts are tried in order; date-only values mean midnight UTC.
var dispatchDateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

type dispatchRequest struct {
	BatchID      string  `json:"batch_id" validate:"required"`
	CustomerName string  `json:"customer_name" validate:"required"`
	Country      string  `json:"country" validate:"required"`
	SellingPrice float64 `json:"selling_price"`
	DispatchDate string  `json:"dispatch_date" validate:"required"`
}

func (d dispatchRequest) toInput() (dispatch.CreateDispatchInput, error) {
	date, err := parseDispatchDate(d.DispatchDate)
	if err != nil {
		return dispatch.CreateDispatchInput{}, err
	}
	return dispatch.CreateDispatchInput{
		BatchID:      d.BatchID,
		CustomerName: d.CustomerName,
		Country:      d.Country,
		SellingPrice: d.SellingPrice,
		DispatchDate: date,
	}, nil
}

func parseDispatchDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	for _, layout := range dispatchDateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, pkgerrors.New(pkgerrors.CodeValidation, "invalid dispatch_date").WithDetails(map[string]any{"dispatch_date": raw})
}

func DispatchCreate(svc dispatch.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "dispatch service unavailable"))
			return
		}

		var body dispatchRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		input, err := body.toInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		record, err := svc.Record(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, record)
	}
}

func DispatchList(svc dispatch.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "dispatch service unavailable"))
			return
		}

		limit, err := validators.ParseQueryInt(r, "limit", listLimit, 1, listLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		rows, err := svc.List(r.Context(), limit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, rows)
	}
}
