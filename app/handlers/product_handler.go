package handlers

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"github.com/unrolled/render"

	"github.com/bulanstore/bulan-api/app/helpers"
	"github.com/bulanstore/bulan-api/app/repositories"
	"github.com/bulanstore/bulan-api/app/services"
)

type ProductHandler struct {
	render   *render.Render
	validate *validator.Validate
	products *services.ProductService
}

func NewProductHandler(renderer *render.Render, validate *validator.Validate, products *services.ProductService) *ProductHandler {
	return &ProductHandler{render: renderer, validate: validate, products: products}
}

type createProductRequest struct {
	Name        string          `json:"name" validate:"required,min=2,max=255"`
	Sku         string          `json:"sku" validate:"required,max=100"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price" validate:"required"`
	Stock       int             `json:"stock" validate:"gte=0"`
	CategoryID  string          `json:"category_id" validate:"required,uuid4"`
	IsAvailable *bool           `json:"is_available"`
}

func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createProductRequest
	if !decodeAndValidate(h.render, h.validate, w, r, &req) {
		return
	}

	product, err := h.products.Create(r.Context(), services.ProductInput{
		Name:        req.Name,
		Sku:         req.Sku,
		Description: req.Description,
		Price:       req.Price,
		Stock:       req.Stock,
		CategoryID:  req.CategoryID,
		IsAvailable: req.IsAvailable,
	})
	if err != nil {
		respondError(h.render, w, err)
		return
	}
	h.render.JSON(w, http.StatusCreated, product)
}

func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, offset := helpers.ParsePagination(r)
	query := r.URL.Query()

	filter := repositories.ProductFilter{
		Search:        query.Get("search"),
		CategorySlug:  query.Get("category"),
		OnlyAvailable: query.Get("include_unavailable") != "true",
	}

	products, total, err := h.products.List(r.Context(), limit, offset, filter)
	if err != nil {
		respondError(h.render, w, err)
		return
	}
	h.render.JSON(w, http.StatusOK, paginated{Data: products, Total: total, Limit: limit, Offset: offset})
}

func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	product, err := h.products.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		respondError(h.render, w, err)
		return
	}
	h.render.JSON(w, http.StatusOK, product)
}

func (h *ProductHandler) GetBySlug(w http.ResponseWriter, r *http.Request) {
	product, err := h.products.GetBySlug(r.Context(), mux.Vars(r)["slug"])
	if err != nil {
		respondError(h.render, w, err)
		return
	}
	h.render.JSON(w, http.StatusOK, product)
}

type updateProductRequest struct {
	Name        *string          `json:"name" validate:"omitempty,min=2,max=255"`
	Sku         *string          `json:"sku" validate:"omitempty,max=100"`
	Description *string          `json:"description"`
	Price       *decimal.Decimal `json:"price"`
	Stock       *int             `json:"stock" validate:"omitempty,gte=0"`
	CategoryID  *string          `json:"category_id" validate:"omitempty,uuid4"`
	IsAvailable *bool            `json:"is_available"`
}

func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req updateProductRequest
	if !decodeAndValidate(h.render, h.validate, w, r, &req) {
		return
	}

	product, err := h.products.Update(r.Context(), mux.Vars(r)["id"], services.ProductUpdateInput{
		Name:        req.Name,
		Sku:         req.Sku,
		Description: req.Description,
		Price:       req.Price,
		Stock:       req.Stock,
		CategoryID:  req.CategoryID,
		IsAvailable: req.IsAvailable,
	})
	if err != nil {
		respondError(h.render, w, err)
		return
	}
	h.render.JSON(w, http.StatusOK, product)
}

func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.products.Delete(r.Context(), mux.Vars(r)["id"]); err != nil {
		respondError(h.render, w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
