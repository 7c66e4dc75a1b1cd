package user

import (
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/topupbd/topup-api/internal/middleware"
	"github.com/topupbd/topup-api/internal/pkg/imaging"
	"github.com/topupbd/topup-api/internal/pkg/response"
	"github.com/topupbd/topup-api/internal/pkg/storage"
	"github.com/topupbd/topup-api/internal/pkg/validator"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

type updateRequest struct {
	Name string `json:"name" validate:"required,min=1,max=100"`
}

// Me handles GET /users/me
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == uuid.Nil {
		response.Unauthorized(w, "unauthorized")
		return
	}

	profile, err := h.svc.Profile(r.Context(), userID, middleware.GetUID(r.Context()))
	if errors.Is(err, ErrUserNotFound) {
		response.NotFound(w, err.Error())
		return
	}
	if err != nil {
		response.InternalError(w)
		return
	}

	response.OK(w, profile)
}

// Update handles PATCH /users/me
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == uuid.Nil {
		response.Unauthorized(w, "unauthorized")
		return
	}

	var req updateRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if errs := validator.Validate(req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	if err := h.svc.UpdateName(r.Context(), userID, req.Name); err != nil {
		switch {
		case errors.Is(err, ErrNameRequired):
			response.BadRequest(w, err.Error())
		case errors.Is(err, ErrUserNotFound):
			response.NotFound(w, err.Error())
		default:
			response.InternalError(w)
		}
		return
	}

	response.OK(w, map[string]interface{}{"name": req.Name})
}

// UploadPhoto handles POST /users/me/photo
func (h *Handler) UploadPhoto(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == uuid.Nil {
		response.Unauthorized(w, "unauthorized")
		return
	}

	if err := r.ParseMultipartForm(storage.MaxFileSize); err != nil {
		response.BadRequest(w, "Invalid multipart form")
		return
	}

	file, header, err := r.FormFile("photo")
	if err != nil {
		response.BadRequest(w, "Photo file is required")
		return
	}
	defer file.Close()

	if !imaging.ValidateType(header.Filename) {
		response.BadRequest(w, "Unsupported image type")
		return
	}

	data, err := io.ReadAll(io.LimitReader(file, storage.MaxFileSize+1))
	if err != nil {
		response.InternalError(w)
		return
	}
	if int64(len(data)) > storage.MaxFileSize {
		response.BadRequest(w, "File too large")
		return
	}

	url, err := h.svc.UpdatePhoto(r.Context(), userID, header.Filename, data)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		response.InternalError(w)
		return
	}

	response.OK(w, map[string]interface{}{"photo_url": url})
}

func (h *Handler) Routes(authMiddleware func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(authMiddleware)
	r.Get("/me", h.Me)
	r.Patch("/me", h.Update)
	r.Post("/me/photo", h.UploadPhoto)
	return r
}
