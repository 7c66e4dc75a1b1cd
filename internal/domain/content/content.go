package content

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/topupbd/topup-api/internal/pkg/response"
)

// Banner is a rotating hero image on the storefront home page.
type Banner struct {
	ID        uuid.UUID `db:"id" json:"id"`
	ImageURL  string    `db:"image_url" json:"image_url"`
	LinkURL   string    `db:"link_url" json:"link_url,omitempty"`
	SortOrder int       `db:"sort_order" json:"sort_order"`
}

// Notice is a scrolling announcement line.
type Notice struct {
	ID        uuid.UUID `db:"id" json:"id"`
	Text      string    `db:"text" json:"text"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// Popup is a one-shot promotional dialog. At most one is active at a time.
type Popup struct {
	ID       uuid.UUID `db:"id" json:"id"`
	Title    string    `db:"title" json:"title"`
	ImageURL string    `db:"image_url" json:"image_url,omitempty"`
	LinkURL  string    `db:"link_url" json:"link_url,omitempty"`
}

type Repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{db: db}
}

// ListBanners returns active banners in display order.
func (r *Repository) ListBanners(ctx context.Context) ([]Banner, error) {
	banners := []Banner{}
	err := r.db.SelectContext(ctx, &banners, `
		SELECT id, image_url, link_url, sort_order
		FROM banners
		WHERE is_active = true
		ORDER BY sort_order
	`)
	return banners, err
}

// ListNotices returns active notices newest-first.
func (r *Repository) ListNotices(ctx context.Context) ([]Notice, error) {
	notices := []Notice{}
	err := r.db.SelectContext(ctx, &notices, `
		SELECT id, text, created_at
		FROM notices
		WHERE is_active = true
		ORDER BY created_at DESC
	`)
	return notices, err
}

// ActivePopup returns the current popup, or nil when none is running.
func (r *Repository) ActivePopup(ctx context.Context) (*Popup, error) {
	var p Popup
	err := r.db.GetContext(ctx, &p, `
		SELECT id, title, image_url, link_url
		FROM popups
		WHERE is_active = true
		ORDER BY created_at DESC
		LIMIT 1
	`)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

type Handler struct {
	repo *Repository
}

func NewHandler(repo *Repository) *Handler {
	return &Handler{repo: repo}
}

// Banners handles GET /content/banners
func (h *Handler) Banners(w http.ResponseWriter, r *http.Request) {
	banners, err := h.repo.ListBanners(r.Context())
	if err != nil {
		response.InternalError(w)
		return
	}
	response.OK(w, map[string]interface{}{"items": banners})
}

// Notices handles GET /content/notices
func (h *Handler) Notices(w http.ResponseWriter, r *http.Request) {
	notices, err := h.repo.ListNotices(r.Context())
	if err != nil {
		response.InternalError(w)
		return
	}
	response.OK(w, map[string]interface{}{"items": notices})
}

// Popup handles GET /content/popup
func (h *Handler) Popup(w http.ResponseWriter, r *http.Request) {
	popup, err := h.repo.ActivePopup(r.Context())
	if err != nil {
		response.InternalError(w)
		return
	}
	response.OK(w, map[string]interface{}{"popup": popup})
}

// Routes are public: the home page renders before login.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/banners", h.Banners)
	r.Get("/notices", h.Notices)
	r.Get("/popup", h.Popup)
	return r
}
