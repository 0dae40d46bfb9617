package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/wordchainhub/moderation-backend/internal/domain"
)

// moderationService defines the minimal interface needed by ModerationHandler.
type moderationService interface {
	RequestAdd(ctx context.Context, word string, topicIDs []int64) (*domain.PendingRequest, error)
	RequestDelete(ctx context.Context, word string) (*domain.PendingRequest, error)
	CancelRequest(ctx context.Context, word string, requestType domain.RequestType) (bool, error)
	ListPending(ctx context.Context, requestType domain.RequestType) ([]domain.PendingRequest, error)
	ApproveAdd(ctx context.Context, word string) (bool, error)
	ApproveDelete(ctx context.Context, word string) (bool, error)
	RejectAdd(ctx context.Context, word string) (bool, error)
	RejectDelete(ctx context.Context, word string) (bool, error)
	AdminDirectDelete(ctx context.Context, word string) (bool, error)
}

// ModerationHandler serves the word lifecycle REST endpoints.
type ModerationHandler struct {
	svc moderationService
	log *slog.Logger
}

// NewModerationHandler creates a ModerationHandler.
func NewModerationHandler(svc moderationService, logger *slog.Logger) *ModerationHandler {
	return &ModerationHandler{svc: svc, log: logger.With("handler", "moderation")}
}

type requestAddBody struct {
	Word     string  `json:"word"`
	TopicIDs []int64 `json:"topicIds"`
}

type pendingResponse struct {
	ID          int64   `json:"id"`
	Word        string  `json:"word"`
	RequestType string  `json:"requestType"`
	RequestedBy *string `json:"requestedBy,omitempty"`
	RequestedAt string  `json:"requestedAt"`
}

// transitionResponse reports whether a lifecycle transition was applied.
// Applied=false with a 200 means the precondition no longer held (the
// request vanished, the word is already gone) and nothing was changed.
type transitionResponse struct {
	Word    string `json:"word"`
	Applied bool   `json:"applied"`
}

// RequestAdd handles POST /api/moderation/words.
func (h *ModerationHandler) RequestAdd(w http.ResponseWriter, r *http.Request) {
	var body requestAddBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "invalid request body")
		return
	}

	req, err := h.svc.RequestAdd(r.Context(), body.Word, body.TopicIDs)
	if err != nil {
		writeDomainError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusCreated, toPendingResponse(*req))
}

// RequestDelete handles POST /api/moderation/words/{word}/request-delete.
func (h *ModerationHandler) RequestDelete(w http.ResponseWriter, r *http.Request) {
	req, err := h.svc.RequestDelete(r.Context(), r.PathValue("word"))
	if err != nil {
		writeDomainError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusCreated, toPendingResponse(*req))
}

// Cancel handles POST /api/moderation/requests/{word}/cancel. An optional
// ?type=add|delete narrows the withdrawal; without it the add request is
// tried first, then the delete request.
func (h *ModerationHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	word := r.PathValue("word")

	if raw := r.URL.Query().Get("type"); raw != "" {
		rt := domain.RequestType(raw)
		if !rt.IsValid() {
			writeError(w, http.StatusBadRequest, "validation_error", "type must be add or delete")
			return
		}
		h.respondTransition(w, r, word, func(ctx context.Context) (bool, error) {
			return h.svc.CancelRequest(ctx, word, rt)
		})
		return
	}

	h.respondTransition(w, r, word, func(ctx context.Context) (bool, error) {
		done, err := h.svc.CancelRequest(ctx, word, domain.RequestTypeAdd)
		if err != nil || done {
			return done, err
		}
		return h.svc.CancelRequest(ctx, word, domain.RequestTypeDelete)
	})
}

// ListPending handles GET /api/moderation/requests?type=add|delete.
func (h *ModerationHandler) ListPending(w http.ResponseWriter, r *http.Request) {
	requests, err := h.svc.ListPending(r.Context(), domain.RequestType(r.URL.Query().Get("type")))
	if err != nil {
		writeDomainError(w, r, h.log, err)
		return
	}

	out := make([]pendingResponse, len(requests))
	for i, req := range requests {
		out[i] = toPendingResponse(req)
	}
	writeJSON(w, http.StatusOK, out)
}

// Approve handles POST /api/moderation/requests/{word}/approve. The pending
// request's own type selects the transition: the add request is tried first,
// then the delete request.
func (h *ModerationHandler) Approve(w http.ResponseWriter, r *http.Request) {
	word := r.PathValue("word")
	h.respondTransition(w, r, word, func(ctx context.Context) (bool, error) {
		applied, err := h.svc.ApproveAdd(ctx, word)
		if err != nil || applied {
			return applied, err
		}
		return h.svc.ApproveDelete(ctx, word)
	})
}

// Reject handles POST /api/moderation/requests/{word}/reject.
func (h *ModerationHandler) Reject(w http.ResponseWriter, r *http.Request) {
	word := r.PathValue("word")
	h.respondTransition(w, r, word, func(ctx context.Context) (bool, error) {
		applied, err := h.svc.RejectAdd(ctx, word)
		if err != nil || applied {
			return applied, err
		}
		return h.svc.RejectDelete(ctx, word)
	})
}

// AdminDelete handles DELETE /api/moderation/words/{word}.
func (h *ModerationHandler) AdminDelete(w http.ResponseWriter, r *http.Request) {
	word := r.PathValue("word")
	h.respondTransition(w, r, word, func(ctx context.Context) (bool, error) {
		return h.svc.AdminDirectDelete(ctx, word)
	})
}

func (h *ModerationHandler) respondTransition(w http.ResponseWriter, r *http.Request, word string, op func(ctx context.Context) (bool, error)) {
	applied, err := op(r.Context())
	if err != nil {
		writeDomainError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, transitionResponse{Word: word, Applied: applied})
}

func toPendingResponse(req domain.PendingRequest) pendingResponse {
	resp := pendingResponse{
		ID:          req.ID,
		Word:        req.Word,
		RequestType: req.RequestType.String(),
		RequestedAt: req.RequestedAt.Format(time.RFC3339),
	}
	if req.RequestedBy != nil {
		s := req.RequestedBy.String()
		resp.RequestedBy = &s
	}
	return resp
}
