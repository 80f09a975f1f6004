package handlers

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/unrolled/render"

	"github.com/bulanstore/bulan-api/app/services"
)

type AddressHandler struct {
	render    *render.Render
	validate  *validator.Validate
	addresses *services.AddressService
}

func NewAddressHandler(renderer *render.Render, validate *validator.Validate, addresses *services.AddressService) *AddressHandler {
	return &AddressHandler{render: renderer, validate: validate, addresses: addresses}
}

type addressRequest struct {
	FirstName  string `json:"first_name" validate:"required,min=2,max=100"`
	LastName   string `json:"last_name" validate:"required,min=2,max=100"`
	Company    string `json:"company" validate:"omitempty,max=100"`
	Line1      string `json:"line1" validate:"required,max=255"`
	Line2      string `json:"line2" validate:"omitempty,max=255"`
	City       string `json:"city" validate:"required,max=100"`
	State      string `json:"state" validate:"required,max=100"`
	PostalCode string `json:"postal_code" validate:"required,max=20"`
	Country    string `json:"country" validate:"required,max=100"`
	Phone      string `json:"phone" validate:"omitempty,max=20"`
}

func (r addressRequest) toInput() services.AddressInput {
	return services.AddressInput{
		FirstName:  r.FirstName,
		LastName:   r.LastName,
		Company:    r.Company,
		Line1:      r.Line1,
		Line2:      r.Line2,
		City:       r.City,
		State:      r.State,
		PostalCode: r.PostalCode,
		Country:    r.Country,
		Phone:      r.Phone,
	}
}

func (h *AddressHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req addressRequest
	if !decodeAndValidate(h.render, h.validate, w, r, &req) {
		return
	}

	address, err := h.addresses.Create(r.Context(), currentUserID(r), req.toInput())
	if err != nil {
		respondError(h.render, w, err)
		return
	}
	h.render.JSON(w, http.StatusCreated, address)
}

func (h *AddressHandler) List(w http.ResponseWriter, r *http.Request) {
	addresses, err := h.addresses.List(r.Context(), currentUserID(r))
	if err != nil {
		respondError(h.render, w, err)
		return
	}
	h.render.JSON(w, http.StatusOK, M{"data": addresses})
}

func (h *AddressHandler) Get(w http.ResponseWriter, r *http.Request) {
	address, err := h.addresses.Get(r.Context(), currentUserID(r), mux.Vars(r)["id"])
	if err != nil {
		respondError(h.render, w, err)
		return
	}
	h.render.JSON(w, http.StatusOK, address)
}

func (h *AddressHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req addressRequest
	if !decodeAndValidate(h.render, h.validate, w, r, &req) {
		return
	}

	address, err := h.addresses.Update(r.Context(), currentUserID(r), mux.Vars(r)["id"], req.toInput())
	if err != nil {
		respondError(h.render, w, err)
		return
	}
	h.render.JSON(w, http.StatusOK, address)
}

func (h *AddressHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.addresses.Delete(r.Context(), currentUserID(r), mux.Vars(r)["id"]); err != nil {
		respondError(h.render, w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
