package handlers

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/unrolled/render"

	"github.com/bulanstore/bulan-api/app/helpers"
	"github.com/bulanstore/bulan-api/app/services"
)

type CategoryHandler struct {
	render     *render.Render
	validate   *validator.Validate
	categories *services.CategoryService
}

func NewCategoryHandler(renderer *render.Render, validate *validator.Validate, categories *services.CategoryService) *CategoryHandler {
	return &CategoryHandler{render: renderer, validate: validate, categories: categories}
}

type categoryRequest struct {
	Name     string  `json:"name" validate:"required,min=2,max=100"`
	ParentID *string `json:"parent_id" validate:"omitempty,uuid4"`
	IsActive *bool   `json:"is_active"`
}

func (h *CategoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req categoryRequest
	if !decodeAndValidate(h.render, h.validate, w, r, &req) {
		return
	}

	category, err := h.categories.Create(r.Context(), services.CategoryInput{
		Name:     req.Name,
		ParentID: req.ParentID,
		IsActive: req.IsActive,
	})
	if err != nil {
		respondError(h.render, w, err)
		return
	}
	h.render.JSON(w, http.StatusCreated, category)
}

func (h *CategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, offset := helpers.ParsePagination(r)
	search := r.URL.Query().Get("search")

	categories, total, err := h.categories.List(r.Context(), limit, offset, search)
	if err != nil {
		respondError(h.render, w, err)
		return
	}
	h.render.JSON(w, http.StatusOK, paginated{Data: categories, Total: total, Limit: limit, Offset: offset})
}

func (h *CategoryHandler) Get(w http.ResponseWriter, r *http.Request) {
	category, err := h.categories.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		respondError(h.render, w, err)
		return
	}
	h.render.JSON(w, http.StatusOK, category)
}

func (h *CategoryHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req categoryRequest
	if !decodeAndValidate(h.render, h.validate, w, r, &req) {
		return
	}

	category, err := h.categories.Update(r.Context(), mux.Vars(r)["id"], services.CategoryInput{
		Name:     req.Name,
		ParentID: req.ParentID,
		IsActive: req.IsActive,
	})
	if err != nil {
		respondError(h.render, w, err)
		return
	}
	h.render.JSON(w, http.StatusOK, category)
}

func (h *CategoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.categories.Delete(r.Context(), mux.Vars(r)["id"]); err != nil {
		respondError(h.render, w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
