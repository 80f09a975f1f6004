package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/unrolled/render"

	"github.com/bulanstore/bulan-api/app/models"
	"github.com/bulanstore/bulan-api/app/services"
)

type OrderHandler struct {
	render   *render.Render
	validate *validator.Validate
	orders   *services.OrderService
	payments *services.PaymentService
}

func NewOrderHandler(renderer *render.Render, validate *validator.Validate, orders *services.OrderService, payments *services.PaymentService) *OrderHandler {
	return &OrderHandler{render: renderer, validate: validate, orders: orders, payments: payments}
}

type checkoutRequest struct {
	ShippingAddressID string `json:"shipping_address_id" validate:"required,uuid4"`
	BillingAddressID  string `json:"billing_address_id" validate:"omitempty,uuid4"`
}

func (h *OrderHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	var req checkoutRequest
	if !decodeAndValidate(h.render, h.validate, w, r, &req) {
		return
	}

	order, err := h.orders.Checkout(r.Context(), currentUserID(r), services.CheckoutInput{
		ShippingAddressID: req.ShippingAddressID,
		BillingAddressID:  req.BillingAddressID,
	})
	if err != nil {
		respondError(h.render, w, err)
		return
	}
	h.render.JSON(w, http.StatusCreated, order)
}

func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orders.ListUserOrders(r.Context(), currentUserID(r))
	if err != nil {
		respondError(h.render, w, err)
		return
	}
	h.render.JSON(w, http.StatusOK, M{"data": orders})
}

func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r)
	order, err := h.orders.GetOrder(r.Context(), mux.Vars(r)["id"], user.ID, user.IsAdmin())
	if err != nil {
		respondError(h.render, w, err)
		return
	}
	h.render.JSON(w, http.StatusOK, order)
}

type updateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending processing shipped delivered canceled"`
}

func (h *OrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req updateStatusRequest
	if !decodeAndValidate(h.render, h.validate, w, r, &req) {
		return
	}

	order, err := h.orders.UpdateStatus(r.Context(), mux.Vars(r)["id"], models.OrderStatus(req.Status))
	if err != nil {
		respondError(h.render, w, err)
		return
	}
	h.render.JSON(w, http.StatusOK, order)
}

// PaymentNotification receives Midtrans webhooks. It always answers 200 for
// processable payloads so Midtrans stops retrying; a bad signature is the one
// case that must be rejected.
func (h *OrderHandler) PaymentNotification(w http.ResponseWriter, r *http.Request) {
	var payload services.MidtransNotification
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		h.render.JSON(w, http.StatusBadRequest, M{"error": "invalid JSON body"})
		return
	}

	if err := h.payments.HandleNotification(r.Context(), payload); err != nil {
		respondError(h.render, w, err)
		return
	}
	h.render.JSON(w, http.StatusOK, M{"message": "ok"})
}
