package order

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

type checkoutRequest struct {
	GameID            string `json:"game_id" validate:"required,uuid"`
	PackageAmount     string `json:"package_amount" validate:"required"`
	PackagePrice      int64  `json:"package_price" validate:"gte=0"`
	Quantity          int64  `json:"quantity" validate:"required,gte=1,lte=100"`
	PlayerID          string `json:"player_id" validate:"required"`
	PaymentMethodID   string `json:"payment_method_id" validate:"omitempty,uuid"`
	UserPaymentNumber string `json:"user_payment_number"`
	TransactionRef    string `json:"transaction_ref"`
}

type editRequest struct {
	PlayerID       string `json:"player_id" validate:"required"`
	TransactionRef string `json:"transaction_ref"`
}

// Checkout handles POST /orders/checkout
func (h *Handler) Checkout(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == uuid.Nil {
		response.Unauthorized(w, "unauthorized")
		return
	}

	var req checkoutRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if errs := validator.Validate(req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	gameID, err := uuid.Parse(req.GameID)
	if err != nil {
		response.BadRequest(w, "Invalid game id")
		return
	}

	in := CheckoutInput{
		GameID:            gameID,
		PackageAmount:     req.PackageAmount,
		PackagePrice:      req.PackagePrice,
		Quantity:          req.Quantity,
		PlayerID:          req.PlayerID,
		UserPaymentNumber: req.UserPaymentNumber,
		TransactionRef:    req.TransactionRef,
	}
	if req.PaymentMethodID != "" {
		methodID, err := uuid.Parse(req.PaymentMethodID)
		if err != nil {
			response.BadRequest(w, "Invalid payment method id")
			return
		}
		in.PaymentMethodID = &methodID
	}

	result, err := h.svc.Checkout(r.Context(), userID, in)
	if err != nil {
		h.writeError(w, err)
		return
	}

	response.Created(w, result)
}

// List handles GET /orders
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == uuid.Nil {
		response.Unauthorized(w, "unauthorized")
		return
	}

	orders, err := h.svc.List(r.Context(), userID)
	if err != nil {
		response.InternalError(w)
		return
	}

	response.OK(w, map[string]interface{}{"items": orders, "total": len(orders)})
}

// Get handles GET /orders/{id}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == uuid.Nil {
		response.Unauthorized(w, "unauthorized")
		return
	}

	orderID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid order id")
		return
	}

	o, err := h.svc.Get(r.Context(), userID, orderID)
	if err != nil {
		h.writeError(w, err)
		return
	}

	response.OK(w, o)
}

// Cancel handles POST /orders/{id}/cancel
func (h *Handler) Cancel(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == uuid.Nil {
		response.Unauthorized(w, "unauthorized")
		return
	}

	orderID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid order id")
		return
	}

	o, err := h.svc.Cancel(r.Context(), userID, orderID)
	if err != nil {
		h.writeError(w, err)
		return
	}

	response.OK(w, o)
}

// Edit handles PATCH /orders/{id}
func (h *Handler) Edit(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == uuid.Nil {
		response.Unauthorized(w, "unauthorized")
		return
	}

	orderID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid order id")
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

	o, err := h.svc.Edit(r.Context(), userID, orderID, req.PlayerID, req.TransactionRef)
	if err != nil {
		h.writeError(w, err)
		return
	}

	response.OK(w, o)
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrPlayerIDRequired),
		errors.Is(err, ErrPlayerIDInvalid),
		errors.Is(err, ErrPackageRequired),
		errors.Is(err, ErrPaymentRequired),
		errors.Is(err, ErrQuantityInvalid),
		errors.Is(err, ErrManualFieldsRequired):
		response.BadRequest(w, err.Error())
	case errors.Is(err, ErrOrderNotFound):
		response.NotFound(w, err.Error())
	case errors.Is(err, ErrGameUnavailable),
		errors.Is(err, ErrPackageNotFound),
		errors.Is(err, ErrInsufficientStock),
		errors.Is(err, ErrInsufficientBalance),
		errors.Is(err, ErrNotCancelable),
		errors.Is(err, ErrEditWindowClosed),
		errors.Is(err, ErrWalletRefImmutable),
		errors.Is(err, ErrTxConflict):
		response.Conflict(w, err.Error())
	default:
		response.InternalError(w)
	}
}

func (h *Handler) Routes(authMiddleware func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(authMiddleware)
	r.Post("/checkout", h.Checkout)
	r.Get("/", h.List)
	r.Get("/{id}", h.Get)
	r.Post("/{id}/cancel", h.Cancel)
	r.Patch("/{id}", h.Edit)
	return r
}
