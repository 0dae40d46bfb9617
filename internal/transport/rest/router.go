package rest

import (
	"net/http"

	"github.com/wordchainhub/moderation-backend/internal/transport/middleware"
)

// Handlers bundles the REST handlers mounted by NewRouter.
type Handlers struct {
	Health     *HealthHandler
	Moderation *ModerationHandler
	Purge      *PurgeHandler
}

// NewRouter mounts all REST routes and wraps them with mw.
func NewRouter(h Handlers, mw middleware.Middleware) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", h.Health.Live)
	mux.HandleFunc("GET /readyz", h.Health.Ready)
	mux.HandleFunc("GET /health", h.Health.Health)

	mux.HandleFunc("POST /api/moderation/words", h.Moderation.RequestAdd)
	mux.HandleFunc("POST /api/moderation/words/{word}/request-delete", h.Moderation.RequestDelete)
	mux.HandleFunc("DELETE /api/moderation/words/{word}", h.Moderation.AdminDelete)

	mux.HandleFunc("GET /api/moderation/requests", h.Moderation.ListPending)
	mux.HandleFunc("POST /api/moderation/requests/{word}/approve", h.Moderation.Approve)
	mux.HandleFunc("POST /api/moderation/requests/{word}/reject", h.Moderation.Reject)
	mux.HandleFunc("POST /api/moderation/requests/{word}/cancel", h.Moderation.Cancel)

	mux.HandleFunc("POST /api/admin/purge", h.Purge.Purge)

	if mw == nil {
		return mux
	}
	return mw(mux)
}
