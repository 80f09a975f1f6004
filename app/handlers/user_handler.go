package handlers

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/unrolled/render"

	"github.com/bulanstore/bulan-api/app/helpers"
	"github.com/bulanstore/bulan-api/app/services"
)

type UserHandler struct {
	render   *render.Render
	validate *validator.Validate
	users    *services.UserService
}

func NewUserHandler(renderer *render.Render, validate *validator.Validate, users *services.UserService) *UserHandler {
	return &UserHandler{render: renderer, validate: validate, users: users}
}

func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	h.render.JSON(w, http.StatusOK, currentUser(r))
}

type updateProfileRequest struct {
	FirstName *string `json:"first_name" validate:"omitempty,min=2,max=100"`
	LastName  *string `json:"last_name" validate:"omitempty,min=2,max=100"`
	Phone     *string `json:"phone" validate:"omitempty,max=20"`
}

func (h *UserHandler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	var req updateProfileRequest
	if !decodeAndValidate(h.render, h.validate, w, r, &req) {
		return
	}

	user, err := h.users.UpdateProfile(r.Context(), currentUserID(r), services.UpdateProfileInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
	})
	if err != nil {
		respondError(h.render, w, err)
		return
	}
	h.render.JSON(w, http.StatusOK, user)
}

func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, offset := helpers.ParsePagination(r)
	users, total, err := h.users.List(r.Context(), limit, offset)
	if err != nil {
		respondError(h.render, w, err)
		return
	}
	h.render.JSON(w, http.StatusOK, paginated{Data: users, Total: total, Limit: limit, Offset: offset})
}

func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	user, err := h.users.GetByID(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		respondError(h.render, w, err)
		return
	}
	h.render.JSON(w, http.StatusOK, user)
}

func (h *UserHandler) Deactivate(w http.ResponseWriter, r *http.Request) {
	user, err := h.users.Deactivate(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		respondError(h.render, w, err)
		return
	}
	h.render.JSON(w, http.StatusOK, user)
}
