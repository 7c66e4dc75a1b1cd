package catalog

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/topupbd/topup-api/internal/pkg/response"
)

type Handler struct {
	repo *Repository
}

func NewHandler(repo *Repository) *Handler {
	return &Handler{repo: repo}
}

// List handles GET /games
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")

	games, err := h.repo.ListGames(r.Context(), category)
	if err != nil {
		response.InternalError(w)
		return
	}

	// Group by category for the storefront home sections
	grouped := make(map[string][]Game)
	for _, g := range games {
		grouped[g.Category] = append(grouped[g.Category], g)
	}

	response.OK(w, map[string]interface{}{
		"items":   games,
		"grouped": grouped,
		"total":   len(games),
	})
}

// Get handles GET /games/{id}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "invalid game id")
		return
	}

	game, err := h.repo.GetGame(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrGameNotFound) {
			response.NotFound(w, "game not found")
			return
		}
		response.InternalError(w)
		return
	}

	response.OK(w, game)
}

// Routes returns catalog routes. Browsing is public.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.List)
	r.Get("/{id}", h.Get)
	return r
}
