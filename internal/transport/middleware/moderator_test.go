package middleware

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/wordchainhub/moderation-backend/internal/domain"
	"github.com/wordchainhub/moderation-backend/pkg/ctxutil"
)

func TestRequireModerator(t *testing.T) {
	tests := []struct {
		name    string
		ctx     context.Context
		wantErr error
	}{
		{
			name:    "anonymous",
			ctx:     context.Background(),
			wantErr: domain.ErrUnauthorized,
		},
		{
			name:    "contributor",
			ctx:     ctxutil.WithActor(context.Background(), ctxutil.Actor{ID: uuid.New(), Role: domain.RoleR2}),
			wantErr: domain.ErrForbidden,
		},
		{
			name: "senior contributor",
			ctx:  ctxutil.WithActor(context.Background(), ctxutil.Actor{ID: uuid.New(), Role: domain.RoleR4}),
		},
		{
			name: "admin",
			ctx:  ctxutil.WithActor(context.Background(), ctxutil.Actor{ID: uuid.New(), Role: domain.RoleAdmin}),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := RequireModerator(tt.ctx)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("RequireModerator() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
