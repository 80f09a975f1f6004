package handlers

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/unrolled/render"

	"github.com/bulanstore/bulan-api/app/services"
)

type CartHandler struct {
	render   *render.Render
	validate *validator.Validate
	carts    *services.CartService
}

func NewCartHandler(renderer *render.Render, validate *validator.Validate, carts *services.CartService) *CartHandler {
	return &CartHandler{render: renderer, validate: validate, carts: carts}
}

func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	cart, err := h.carts.GetUserCart(r.Context(), currentUserID(r))
	if err != nil {
		respondError(h.render, w, err)
		return
	}
	h.render.JSON(w, http.StatusOK, cart)
}

type addItemRequest struct {
	ProductID string `json:"product_id" validate:"required,uuid4"`
	Qty       int    `json:"qty" validate:"omitempty,gt=0"`
}

func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req addItemRequest
	if !decodeAndValidate(h.render, h.validate, w, r, &req) {
		return
	}

	cart, err := h.carts.AddItem(r.Context(), currentUserID(r), req.ProductID, req.Qty)
	if err != nil {
		respondError(h.render, w, err)
		return
	}
	h.render.JSON(w, http.StatusCreated, cart)
}

type updateItemRequest struct {
	Qty int `json:"qty" validate:"gte=0"`
}

func (h *CartHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	var req updateItemRequest
	if !decodeAndValidate(h.render, h.validate, w, r, &req) {
		return
	}

	cart, err := h.carts.UpdateItem(r.Context(), currentUserID(r), mux.Vars(r)["itemID"], req.Qty)
	if err != nil {
		respondError(h.render, w, err)
		return
	}
	h.render.JSON(w, http.StatusOK, cart)
}

func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	cart, err := h.carts.RemoveItem(r.Context(), currentUserID(r), mux.Vars(r)["itemID"])
	if err != nil {
		respondError(h.render, w, err)
		return
	}
	h.render.JSON(w, http.StatusOK, cart)
}

func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	if err := h.carts.ClearCart(r.Context(), currentUserID(r)); err != nil {
		respondError(h.render, w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
