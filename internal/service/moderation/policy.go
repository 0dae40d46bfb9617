package moderation

import (
	"context"
	"fmt"

	"github.com/wordchainhub/moderation-backend/internal/domain"
	"github.com/wordchainhub/moderation-backend/pkg/ctxutil"
)

// actorFromCtx extracts the authenticated actor or fails with
// domain.ErrUnauthorized.
func actorFromCtx(ctx context.Context) (ctxutil.Actor, error) {
	actor, ok := ctxutil.ActorFromCtx(ctx)
	if !ok {
		return ctxutil.Actor{}, domain.ErrUnauthorized
	}
	return actor, nil
}

// requireModerator is the single authorization gate for state-changing
// moderation operations: only admin and r4 may pass.
func requireModerator(actor ctxutil.Actor) error {
	if !actor.Role.CanModerate() {
		return fmt.Errorf("role %s may not moderate: %w", actor.Role, domain.ErrForbidden)
	}
	return nil
}
