package middleware

import (
	"context"

	"github.com/wordchainhub/moderation-backend/internal/domain"
	"github.com/wordchainhub/moderation-backend/pkg/ctxutil"
)

// RequireModerator returns domain.ErrUnauthorized for anonymous callers and
// domain.ErrForbidden when the context actor may not moderate. Use in REST
// handlers before doing any work, not as HTTP middleware.
func RequireModerator(ctx context.Context) error {
	actor, ok := ctxutil.ActorFromCtx(ctx)
	if !ok {
		return domain.ErrUnauthorized
	}
	if !actor.Role.CanModerate() {
		return domain.ErrForbidden
	}
	return nil
}
