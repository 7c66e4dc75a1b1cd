package wishlist

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/topupbd/topup-api/internal/middleware"
	"github.com/topupbd/topup-api/internal/pkg/response"
	"github.com/topupbd/topup-api/internal/pkg/validator"
)

type Handler struct {
	repo *Repository
}

func NewHandler(repo *Repository) *Handler {
	return &Handler{repo: repo}
}

type addRequest struct {
	CardType      string `json:"card_type" validate:"required,card_type"`
	GameID        string `json:"game_id" validate:"required,uuid"`
	GameName      string `json:"game_name" validate:"required"`
	ImageURL      string `json:"image_url"`
	PackageAmount string `json:"package_amount"`
	PackagePrice  int64  `json:"package_price" validate:"gte=0"`
}

// Add handles POST /wishlist
func (h *Handler) Add(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == uuid.Nil {
		response.Unauthorized(w, "unauthorized")
		return
	}

	var req addRequest
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

	item := &Item{
		UserID:   userID,
		CardType: CardType(req.CardType),
		GameID:   gameID,
		GameName: req.GameName,
		ImageURL: req.ImageURL,
	}

	switch item.CardType {
	case CardTypePackage:
		if req.PackageAmount == "" {
			response.BadRequest(w, "Package amount is required for package cards")
			return
		}
		item.PackageAmount = req.PackageAmount
		item.PackagePrice = req.PackagePrice
		item.ItemID = PackageItemID(gameID, req.PackageAmount, req.PackagePrice)
	default:
		item.ItemID = gameID.String()
	}

	if err := h.repo.Add(r.Context(), item); err != nil {
		response.InternalError(w)
		return
	}

	response.Created(w, item)
}

// Remove handles DELETE /wishlist/{itemID}
func (h *Handler) Remove(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == uuid.Nil {
		response.Unauthorized(w, "unauthorized")
		return
	}

	itemID := chi.URLParam(r, "itemID")
	if itemID == "" {
		response.BadRequest(w, "Item id is required")
		return
	}

	if err := h.repo.Remove(r.Context(), userID, itemID); err != nil {
		response.InternalError(w)
		return
	}

	response.NoContent(w)
}

// Status handles GET /wishlist/{itemID}/status
func (h *Handler) Status(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == uuid.Nil {
		response.Unauthorized(w, "unauthorized")
		return
	}

	itemID := chi.URLParam(r, "itemID")
	wishlisted, err := h.repo.IsWishlisted(r.Context(), userID, itemID)
	if err != nil {
		response.InternalError(w)
		return
	}

	response.OK(w, map[string]interface{}{"wishlisted": wishlisted})
}

// List handles GET /wishlist
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == uuid.Nil {
		response.Unauthorized(w, "unauthorized")
		return
	}

	items, err := h.repo.ListByUser(r.Context(), userID)
	if err != nil {
		response.InternalError(w)
		return
	}

	response.OK(w, map[string]interface{}{"items": items, "total": len(items)})
}

func (h *Handler) Routes(authMiddleware func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(authMiddleware)
	r.Post("/", h.Add)
	r.Get("/", h.List)
	r.Get("/{itemID}/status", h.Status)
	r.Delete("/{itemID}", h.Remove)
	return r
}
