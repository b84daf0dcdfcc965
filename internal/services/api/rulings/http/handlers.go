// Package http provides http transport for rulings
package http

import (
	stdhttp "net/http"

	"lawsearch/internal/modkit/httpkit"
	"lawsearch/internal/services/rulings/domain"
)

// Register mounts ruling endpoints on the given router
func Register(r httpkit.Router, s domain.ServicePort) {
	h := &handlers{svc: s}

	httpkit.PutJSON[domain.UpsertInput](r, "/", h.upsert)
	httpkit.Get(r, "/{case_number}", h.byCaseNumber)
}

type handlers struct{ svc domain.ServicePort }

// swagger:route GET /rulings/{case_number} Rulings rulingByCaseNumber
// @Summary Newest ruling for a case number
// @Tags Rulings
// @Produce json
// @Param case_number path string true "case number" example(2020다12345)
// @Success 200 {object} domain.Ruling "ok"
// @Failure 404 {object} errors.Wire "not found"
// @Router /rulings/{case_number} [get]
func (h *handlers) byCaseNumber(r *stdhttp.Request) (any, error) {
	return h.svc.ByCaseNumber(r.Context(), httpkit.URLParam(r, "case_number"))
}

// swagger:route PUT /rulings Rulings rulingUpsert
// @Summary Insert or update a ruling by case number and date
// @Tags Rulings
// @Accept json
// @Produce json
// @Param payload body domain.UpsertInput true "Ruling"
// @Success 200 {object} domain.UpsertResult "updated"
// @Success 201 {object} domain.UpsertResult "created"
// @Failure 400 {object} errors.Wire "invalid input"
// @Router /rulings [put]
func (h *handlers) upsert(r *stdhttp.Request, in domain.UpsertInput) (any, error) {
	res, err := h.svc.Upsert(r.Context(), in)
	if err != nil {
		return nil, err
	}
	if res.Created {
		return httpkit.Created(res), nil
	}
	return res, nil
}
