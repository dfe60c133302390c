package handler

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"lawfirm-cms/internal/model"
	"lawfirm-cms/internal/service"
)

type BlogHandler struct {
	blogs *service.BlogService
}

func NewBlogHandler(blogs *service.BlogService) *BlogHandler {
	return &BlogHandler{blogs: blogs}
}

// ListPublic serves the published feed. Category and pagination come from
// the query string; drafts never appear here.
func (h *BlogHandler) ListPublic(w http.ResponseWriter, r *http.Request) {
	filter := model.BlogFilter{
		Category:      strings.TrimSpace(r.URL.Query().Get("category")),
		Page:          queryInt(r, "page", 1),
		Limit:         queryInt(r, "limit", 10),
		PublishedOnly: true,
	}.Normalize()

	items, total, err := h.blogs.List(r.Context(), filter)
	if err != nil {
		writeError(w, err)
		return
	}

	writePage(w, items, filter.Page, filter.Limit, total)
}

func (h *BlogHandler) GetBySlug(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	blog, err := h.blogs.GetBySlug(r.Context(), slug, true)
	if err != nil {
		writeError(w, err)
		return
	}
	if !blog.Published {
		writeError(w, model.ErrBlogNotFound)
		return
	}

	writeSuccess(w, http.StatusOK, blog)
}

// ListAdmin includes drafts.
func (h *BlogHandler) ListAdmin(w http.ResponseWriter, r *http.Request) {
	filter := model.BlogFilter{
		Category:      strings.TrimSpace(r.URL.Query().Get("category")),
		Page:          queryInt(r, "page", 1),
		Limit:         queryInt(r, "limit", 10),
		PublishedOnly: false,
	}.Normalize()

	items, total, err := h.blogs.List(r.Context(), filter)
	if err != nil {
		writeError(w, err)
		return
	}

	writePage(w, items, filter.Page, filter.Limit, total)
}

func (h *BlogHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	blog, err := h.blogs.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, blog)
}

func (h *BlogHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input model.BlogInput
	if err := decodeBody(w, r, &input); err != nil {
		writeError(w, err)
		return
	}

	blog, err := h.blogs.Create(r.Context(), input, actorFrom(r))
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusCreated, blog)
}

func (h *BlogHandler) Update(w http.ResponseWriter, r *http.Request) {
	var input model.BlogInput
	if err := decodeBody(w, r, &input); err != nil {
		writeError(w, err)
		return
	}

	blog, err := h.blogs.Update(r.Context(), chi.URLParam(r, "id"), input, actorFrom(r))
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, blog)
}

func (h *BlogHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.blogs.Delete(r.Context(), chi.URLParam(r, "id"), actorFrom(r)); err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, map[string]string{"message": "blog deleted"})
}
