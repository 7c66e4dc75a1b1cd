package moneyrequest

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/topupbd/topup-api/internal/middleware"
	"github.com/topupbd/topup-api/internal/pkg/response"
	"github.com/topupbd/topup-api/internal/pkg/validator"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

type createRequest struct {
	Amount            int64  `json:"amount" validate:"required,gt=0"`
	PaymentMethodID   string `json:"payment_method_id" validate:"required,uuid"`
	UserPaymentNumber string `json:"user_payment_number"`
	TransactionRef    string `json:"transaction_ref"`
}

type editRequest struct {
	Amount            int64  `json:"amount" validate:"required,gt=0"`
	UserPaymentNumber string `json:"user_payment_number" validate:"required"`
	TransactionRef    string `json:"transaction_ref" validate:"required"`
}

// Create handles POST /money-requests
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == uuid.Nil {
		response.Unauthorized(w, "unauthorized")
		return
	}

	var req createRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if errs := validator.Validate(req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	methodID, err := uuid.Parse(req.PaymentMethodID)
	if err != nil {
		response.BadRequest(w, "Invalid payment method id")
		return
	}

	result, err := h.svc.Create(r.Context(), userID, CreateInput{
		Amount:            req.Amount,
		PaymentMethodID:   methodID,
		UserPaymentNumber: req.UserPaymentNumber,
		TransactionRef:    req.TransactionRef,
	})
	if err != nil {
		h.writeError(w, err)
		return
	}

	response.Created(w, result)
}

// List handles GET /money-requests
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == uuid.Nil {
		response.Unauthorized(w, "unauthorized")
		return
	}

	requests, err := h.svc.List(r.Context(), userID)
	if err != nil {
		response.InternalError(w)
		return
	}

	response.OK(w, map[string]interface{}{"items": requests, "total": len(requests)})
}

// Edit handles PATCH /money-requests/{id}
func (h *Handler) Edit(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == uuid.Nil {
		response.Unauthorized(w, "unauthorized")
		return
	}

	requestID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid request id")
		return
	}

	var req editRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if errs := validator.Validate(req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	m, err := h.svc.Edit(r.Context(), userID, requestID, req.Amount, req.UserPaymentNumber, req.TransactionRef)
	if err != nil {
		h.writeError(w, err)
		return
	}

	response.OK(w, m)
}

// Delete handles DELETE /money-requests/{id}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == uuid.Nil {
		response.Unauthorized(w, "unauthorized")
		return
	}

	requestID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid request id")
		return
	}

	if err := h.svc.Delete(r.Context(), userID, requestID); err != nil {
		h.writeError(w, err)
		return
	}

	response.NoContent(w)
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrAmountInvalid),
		errors.Is(err, ErrFieldsRequired),
		errors.Is(err, ErrPaymentRequired):
		response.BadRequest(w, err.Error())
	case errors.Is(err, ErrRequestNotFound):
		response.NotFound(w, err.Error())
	case errors.Is(err, ErrEditWindowClosed),
		errors.Is(err, ErrNotDeletable):
		response.Conflict(w, err.Error())
	default:
		response.InternalError(w)
	}
}

func (h *Handler) Routes(authMiddleware func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(authMiddleware)
	r.Post("/", h.Create)
	r.Get("/", h.List)
	r.Patch("/{id}", h.Edit)
	r.Delete("/{id}", h.Delete)
	return r
}
