// Package http provides http transport for search and indexing
package http

import (
	stdhttp "net/http"

	"lawsearch/internal/modkit/httpkit"
	perr "lawsearch/internal/platform/errors"
	"lawsearch/internal/services/search/domain"
)

// Register mounts search endpoints on the given router
func Register(r httpkit.Router, s domain.ServicePort) {
	h := &handlers{svc: s}

	// index maintenance
	httpkit.Post(r, "/index", h.reindex)
	httpkit.Get(r, "/index/count", h.count)
	httpkit.Post(r, "/index/{id}", h.indexOne)

	// retrieval, query string or body
	httpkit.Get(r, "/", h.searchGet)
	httpkit.PostJSON[domain.SearchBody](r, "/", h.searchPost)
}

type handlers struct{ svc domain.ServicePort }

// swagger:route POST /search/index Search searchReindex
// @Summary Rebuild the search index from the ruling store
// @Tags Search
// @Produce json
// @Param batch_size query int false "rulings per bulk request" default(1000)
// @Success 200 {object} domain.ReindexResult "ok"
// @Router /search/index [post]
func (h *handlers) reindex(r *stdhttp.Request) (any, error) {
	n, err := httpkit.QueryInt(r, "batch_size", 0)
	if err != nil {
		return nil, err
	}
	if n < 0 {
		return nil, perr.WithField(perr.Validationf("batch_size must not be negative"), "batch_size")
	}
	return h.svc.ReindexAll(r.Context(), n)
}

// swagger:route POST /search/index/{id} Search searchIndexOne
// @Summary Index one ruling by id
// @Tags Search
// @Produce json
// @Param id path string true "ruling id"
// @Success 200 {object} domain.IndexOneResult "ok"
// @Router /search/index/{id} [post]
func (h *handlers) indexOne(r *stdhttp.Request) (any, error) {
	return h.svc.IndexOne(r.Context(), httpkit.URLParam(r, "id"))
}

// swagger:route GET /search/index/count Search searchCount
// @Summary Number of indexed documents
// @Tags Search
// @Produce json
// @Success 200 {object} domain.CountResult "ok"
// @Router /search/index/count [get]
func (h *handlers) count(r *stdhttp.Request) (any, error) {
	n, err := h.svc.CountIndexedDocuments(r.Context())
	if err != nil {
		return nil, err
	}
	return domain.CountResult{Index: h.svc.IndexName(), Count: n}, nil
}

// swagger:route GET /search Search searchGet
// @Summary Keyword search over rulings
// @Tags Search
// @Produce json
// @Param q query string false "question or keywords"
// @Param limit query int false "page size" default(10) minimum(1) maximum(100)
// @Param offset query int false "offset" default(0) minimum(0) maximum(10000)
// @Success 200 {object} domain.Result "ok"
// @Failure 400 {object} errors.Wire "invalid paging"
// @Router /search [get]
func (h *handlers) searchGet(r *stdhttp.Request) (any, error) {
	limit, err := httpkit.QueryInt(r, "limit", domain.DefaultLimit)
	if err != nil {
		return nil, err
	}
	offset, err := httpkit.QueryInt(r, "offset", 0)
	if err != nil {
		return nil, err
	}
	return h.svc.Search(r.Context(), domain.Query{Q: httpkit.QueryString(r, "q", ""), Limit: limit, Offset: offset})
}

// swagger:route POST /search Search searchPost
// @Summary Keyword search over rulings
// @Tags Search
// @Accept json
// @Produce json
// @Param payload body domain.SearchBody true "Query"
// @Success 200 {object} domain.Result "ok"
// @Failure 400 {object} errors.Wire "invalid paging"
// @Router /search [post]
func (h *handlers) searchPost(r *stdhttp.Request, in domain.SearchBody) (any, error) {
	return h.svc.Search(r.Context(), in.Query())
}
