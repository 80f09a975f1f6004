package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/unrolled/render"
	"go.uber.org/zap"

	"github.com/bulanstore/bulan-api/app/helpers"
	"github.com/bulanstore/bulan-api/app/models"
	"github.com/bulanstore/bulan-api/app/services"
)

// M is shorthand for ad hoc JSON payloads.
type M map[string]interface{}

// statusFor maps service errors to HTTP status codes. Anything unmapped is a
// server error and gets logged with its real cause.
func statusFor(err error) int {
	switch {
	case errors.Is(err, services.ErrInvalidCredentials),
		errors.Is(err, services.ErrInvalidAuthToken):
		return http.StatusUnauthorized
	case errors.Is(err, services.ErrUserInactive),
		errors.Is(err, services.ErrInvalidSignature):
		return http.StatusForbidden
	case errors.Is(err, services.ErrUserNotFound),
		errors.Is(err, services.ErrCategoryNotFound),
		errors.Is(err, services.ErrProductNotFound),
		errors.Is(err, services.ErrCartItemNotFound),
		errors.Is(err, services.ErrOrderNotFound),
		errors.Is(err, services.ErrAddressNotFound),
		errors.Is(err, services.ErrReviewNotFound),
		errors.Is(err, services.ErrUnknownOrderInPay):
		return http.StatusNotFound
	case errors.Is(err, services.ErrEmailTaken),
		errors.Is(err, services.ErrCategoryNameTaken),
		errors.Is(err, services.ErrCategoryHasProducts),
		errors.Is(err, services.ErrCategoryCycle),
		errors.Is(err, services.ErrSkuTaken),
		errors.Is(err, services.ErrProductNameTaken),
		errors.Is(err, services.ErrInsufficientStock),
		errors.Is(err, services.ErrProductNoLongerAvailable),
		errors.Is(err, services.ErrInvalidStatusTransition),
		errors.Is(err, services.ErrReviewExists):
		return http.StatusConflict
	case errors.Is(err, services.ErrCartEmpty),
		errors.Is(err, services.ErrPasswordMismatch),
		errors.Is(err, services.ErrNegativeAmount),
		errors.Is(err, services.ErrInvalidOrderStatus),
		errors.Is(err, services.ErrInvalidRating),
		errors.Is(err, services.ErrCategoryParentNotFound):
		return http.StatusBadRequest
	case errors.Is(err, services.ErrPaymentGateway):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func respondError(renderer *render.Render, w http.ResponseWriter, err error) {
	status := statusFor(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		zap.L().Error("request failed", zap.Error(err))
		message = "internal server error"
	}
	renderer.JSON(w, status, M{"error": message})
}

// decodeAndValidate parses a JSON body into dst and runs struct validation,
// writing the error response itself. Returns false when the caller should
// stop.
func decodeAndValidate(renderer *render.Render, validate *validator.Validate, w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		renderer.JSON(w, http.StatusBadRequest, M{"error": "invalid JSON body"})
		return false
	}
	if err := validate.Struct(dst); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			renderer.JSON(w, http.StatusUnprocessableEntity, M{"errors": helpers.FormatValidationErrors(verrs)})
		} else {
			renderer.JSON(w, http.StatusBadRequest, M{"error": "invalid request body"})
		}
		return false
	}
	return true
}

// decodeJSONSilent parses an optional JSON body, treating an empty or absent
// body as fine.
func decodeJSONSilent(r *http.Request, dst interface{}) error {
	if r.Body == nil {
		return nil
	}
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil && err != io.EOF {
		return err
	}
	return nil
}

func currentUser(r *http.Request) *models.User {
	user, _ := r.Context().Value(helpers.ContextKeyUser).(*models.User)
	return user
}

func currentUserID(r *http.Request) string {
	id, _ := r.Context().Value(helpers.ContextKeyUserID).(string)
	return id
}

// paginated is the envelope for list endpoints.
type paginated struct {
	Data   interface{} `json:"data"`
	Total  int64       `json:"total"`
	Limit  int         `json:"limit"`
	Offset int         `json:"offset"`
}
