package payment

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/topupbd/topup-api/internal/middleware"
	"github.com/topupbd/topup-api/internal/pkg/response"
)

type Handler struct {
	repo   *Repository
	stager *Stager
}

func NewHandler(repo *Repository, stager *Stager) *Handler {
	return &Handler{repo: repo, stager: stager}
}

// List handles GET /payments/methods
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	methods, err := h.repo.ListActive(r.Context())
	if err != nil {
		response.InternalError(w)
		return
	}

	response.OK(w, map[string]interface{}{"items": methods, "total": len(methods)})
}

// Staged handles GET /payments/staged/{token}. The gateway confirmation page
// reads the staged selection back before handing off to the hosted flow.
func (h *Handler) Staged(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == uuid.Nil {
		response.Unauthorized(w, "unauthorized")
		return
	}

	staged, err := h.stager.Fetch(r.Context(), chi.URLParam(r, "token"))
	if err != nil {
		switch {
		case errors.Is(err, ErrStagedNotFound):
			response.NotFound(w, "staged order not found or expired")
		case errors.Is(err, ErrStagingDisabled):
			response.Error(w, http.StatusServiceUnavailable, "STAGING_UNAVAILABLE", "gateway payments are temporarily unavailable")
		default:
			response.InternalError(w)
		}
		return
	}

	if staged.UserID != userID {
		response.NotFound(w, "staged order not found or expired")
		return
	}

	response.OK(w, staged)
}

func (h *Handler) Routes(authMiddleware func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/methods", h.List)
	r.With(authMiddleware).Get("/staged/{token}", h.Staged)
	return r
}
