package domain

import (
	"time"

	"github.com/google/uuid"
)

// Outcome is the terminal state of a processed moderation request.
type Outcome string

const (
	OutcomeApproved Outcome = "approved"
	OutcomeRejected Outcome = "rejected"
)

func (o Outcome) String() string { return string(o) }

// ModerationEvent is an append-only audit row written exactly once per
// approved or rejected request. RequestedBy is the original requester,
// ProcessedBy the approving moderator; for direct admin actions both are
// the acting admin.
type ModerationEvent struct {
	ID          int64
	Word        string
	RequestType RequestType
	Outcome     Outcome
	RequestedBy *uuid.UUID
	ProcessedBy *uuid.UUID
	CreatedAt   time.Time
}

// DocumentEvent is an append-only audit row recording a membership change
// of one document. Written for every letter/topic document a transition
// touches.
type DocumentEvent struct {
	ID         int64
	DocumentID int64
	Word       string
	Action     RequestType
	Actor      *uuid.UUID
	CreatedAt  time.Time
}
