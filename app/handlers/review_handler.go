package handlers

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/unrolled/render"

	"github.com/bulanstore/bulan-api/app/helpers"
	"github.com/bulanstore/bulan-api/app/repositories"
	"github.com/bulanstore/bulan-api/app/services"
)

type ReviewHandler struct {
	render   *render.Render
	validate *validator.Validate
	reviews  *services.ReviewService
}

func NewReviewHandler(renderer *render.Render, validate *validator.Validate, reviews *services.ReviewService) *ReviewHandler {
	return &ReviewHandler{render: renderer, validate: validate, reviews: reviews}
}

type reviewRequest struct {
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Comment string `json:"comment" validate:"omitempty,max=2000"`
}

func (h *ReviewHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req reviewRequest
	if !decodeAndValidate(h.render, h.validate, w, r, &req) {
		return
	}

	review, err := h.reviews.Create(r.Context(), currentUserID(r), mux.Vars(r)["productID"], services.ReviewInput{
		Rating:  req.Rating,
		Comment: req.Comment,
	})
	if err != nil {
		respondError(h.render, w, err)
		return
	}
	h.render.JSON(w, http.StatusCreated, review)
}

func (h *ReviewHandler) ListByProduct(w http.ResponseWriter, r *http.Request) {
	limit, offset := helpers.ParsePagination(r)
	query := r.URL.Query()

	sort := repositories.ReviewSort{
		OrderBy: query.Get("order_by"),
		Desc:    query.Get("sort") != "asc",
	}

	reviews, total, err := h.reviews.ListByProduct(r.Context(), mux.Vars(r)["productID"], limit, offset, sort)
	if err != nil {
		respondError(h.render, w, err)
		return
	}
	h.render.JSON(w, http.StatusOK, paginated{Data: reviews, Total: total, Limit: limit, Offset: offset})
}

func (h *ReviewHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req reviewRequest
	if !decodeAndValidate(h.render, h.validate, w, r, &req) {
		return
	}

	review, err := h.reviews.Update(r.Context(), currentUserID(r), mux.Vars(r)["id"], services.ReviewInput{
		Rating:  req.Rating,
		Comment: req.Comment,
	})
	if err != nil {
		respondError(h.render, w, err)
		return
	}
	h.render.JSON(w, http.StatusOK, review)
}

func (h *ReviewHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r)
	if err := h.reviews.Delete(r.Context(), user.ID, mux.Vars(r)["id"], user.IsAdmin()); err != nil {
		respondError(h.render, w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
