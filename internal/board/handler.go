package board

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/corkboard/corkboard/internal/platform/httpx"
	"github.com/corkboard/corkboard/internal/shared"
)

// CommentSource supplies the comments nested under a board detail
// response. Implemented by the comment service; boards never hold a live
// comment collection.
type CommentSource interface {
	ListForBoard(ctx context.Context, boardID int64) ([]CommentView, error)
}

// Handler wires HTTP endpoints for boards.
type Handler struct {
	logger    *slog.Logger
	service   *Service
	comments  CommentSource
	validator *validator.Validate
}

// NewHandler constructs a Handler instance.
func NewHandler(logger *slog.Logger, service *Service, comments CommentSource) *Handler {
	return &Handler{
		logger:    logger,
		service:   service,
		comments:  comments,
		validator: validator.New(),
	}
}

// MountRoutes registers board routes on the provided router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Get("/{id}", h.show)
	r.Put("/{id}", h.update)
	r.Delete("/{id}", h.remove)
}

func (h *Handler) decodeUpsert(w http.ResponseWriter, r *http.Request) (UpsertRequest, bool) {
	var req UpsertRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Message(w, http.StatusBadRequest, "malformed request body")
		return req, false
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.Message(w, http.StatusBadRequest, "title and content are required")
		return req, false
	}
	return req, true
}

func parseID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, shared.ErrNotFound
	}
	return id, nil
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	boards, err := h.service.List(r.Context())
	if err != nil {
		h.logger.Error("list boards", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, boards)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeUpsert(w, r)
	if !ok {
		return
	}

	principal := shared.PrincipalFromContext(r.Context())
	created, err := h.service.Create(r.Context(), principal, req)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, created)
}

func (h *Handler) show(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}

	b, err := h.service.Get(r.Context(), id)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}

	comments, err := h.comments.ListForBoard(r.Context(), id)
	if err != nil {
		h.logger.Error("list board comments", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, DetailResponse{Board: *b, Comments: comments})
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}

	req, ok := h.decodeUpsert(w, r)
	if !ok {
		return
	}

	principal := shared.PrincipalFromContext(r.Context())
	updated, err := h.service.Update(r.Context(), principal, id, req)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, updated)
}

func (h *Handler) remove(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}

	principal := shared.PrincipalFromContext(r.Context())
	if err := h.service.Delete(r.Context(), principal, id); err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.Message(w, http.StatusOK, "board deleted")
}
