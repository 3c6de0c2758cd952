package httpapi

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/nikbrunner/linkvault/internal/logger"
	"github.com/nikbrunner/linkvault/internal/model"
	"github.com/nikbrunner/linkvault/internal/thumbnail"
)

// Store is the record store the API serves. *vault.Vault implements it.
type Store interface {
	Len() int
	GetAll() []model.Bookmark
	GetByID(id string) (model.Bookmark, bool)
	GetByCategory(category string) []model.Bookmark
	GetRecent(limit int) []model.Bookmark
	Categories() []string
	Search(query string) []model.Bookmark
	FilterByCategory(records []model.Bookmark, filter string) []model.Bookmark
	SortBy(records []model.Bookmark, criterion model.SortCriterion) []model.Bookmark
	Add(ctx context.Context, input model.BookmarkInput) model.Bookmark
	Update(ctx context.Context, id string, input model.BookmarkInput) (model.Bookmark, bool)
	Delete(ctx context.Context, id string) bool
}

type bookmarkHandler struct {
	store Store
	log   logger.Logger
}

func newBookmarkHandler(store Store, log logger.Logger) *bookmarkHandler {
	return &bookmarkHandler{store: store, log: log}
}

func (h *bookmarkHandler) health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Cache-Control", "no-store")
	render.Status(r, http.StatusOK)
	render.JSON(w, r, healthResponse{Status: "ok", Records: h.store.Len()})
}

// list applies search, then category or filter, then sort.
func (h *bookmarkHandler) list(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()
	q := listQuery{
		Query:    strings.TrimSpace(params.Get("q")),
		Category: params.Get("category"),
		Filter:   params.Get("filter"),
		Sort:     strings.ToLower(params.Get("sort")),
	}
	if err := q.Validate(); err != nil {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, validationErrorResponse(err))
		return
	}
	criterion, _ := model.ParseSort(q.Sort)

	var records []model.Bookmark
	switch {
	case q.Query != "":
		records = h.store.Search(q.Query)
	case q.Category != "":
		records = h.store.GetByCategory(q.Category)
	default:
		records = h.store.GetAll()
	}
	if q.Filter != "" {
		records = h.store.FilterByCategory(records, q.Filter)
	}
	records = h.store.SortBy(records, criterion)

	render.Status(r, http.StatusOK)
	render.JSON(w, r, nonNil(records))
}

func (h *bookmarkHandler) recent(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, errorResponse{Error: "limit must be a non-negative integer"})
			return
		}
		limit = n
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, nonNil(h.store.GetRecent(limit)))
}

func (h *bookmarkHandler) get(w http.ResponseWriter, r *http.Request) {
	b, ok := h.store.GetByID(chi.URLParam(r, "id"))
	if !ok {
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, notFoundResponse)
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, b)
}

func (h *bookmarkHandler) create(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeBookmark(w, r)
	if !ok {
		return
	}

	b := h.store.Add(r.Context(), req.input())
	h.log.Info("bookmark created", logger.String("id", b.ID), logger.String("url", b.URL))

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, b)
}

func (h *bookmarkHandler) update(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeBookmark(w, r)
	if !ok {
		return
	}

	id := chi.URLParam(r, "id")
	b, found := h.store.Update(r.Context(), id, req.input())
	if !found {
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, notFoundResponse)
		return
	}
	h.log.Info("bookmark updated", logger.String("id", id))

	render.Status(r, http.StatusOK)
	render.JSON(w, r, b)
}

func (h *bookmarkHandler) delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !h.store.Delete(r.Context(), id) {
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, notFoundResponse)
		return
	}
	h.log.Info("bookmark deleted", logger.String("id", id))

	render.NoContent(w, r)
}

func (h *bookmarkHandler) categories(w http.ResponseWriter, r *http.Request) {
	render.Status(r, http.StatusOK)
	render.JSON(w, r, categoriesResponse{Categories: nonNil(h.store.Categories())})
}

func (h *bookmarkHandler) thumbnail(w http.ResponseWriter, r *http.Request) {
	b, ok := h.store.GetByID(chi.URLParam(r, "id"))
	if !ok {
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, notFoundResponse)
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, thumbnail.Placeholder(b))
}

// decodeBookmark writes a 400 response and returns false when the body is
// missing, malformed or fails validation.
func decodeBookmark(w http.ResponseWriter, r *http.Request) (bookmarkRequest, bool) {
	var req bookmarkRequest

	if err := render.DecodeJSON(r.Body, &req); err != nil {
		render.Status(r, http.StatusBadRequest)
		if errors.Is(err, io.EOF) {
			render.JSON(w, r, emptyRequestBodyResponse)
		} else {
			render.JSON(w, r, invalidRequestResponse)
		}
		return req, false
	}

	if err := req.Validate(); err != nil {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, validationErrorResponse(err))
		return req, false
	}
	return req, true
}

// nonNil keeps empty lists encoded as [] rather than null.
func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
