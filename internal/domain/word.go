package domain

import (
	"time"

	"github.com/google/uuid"
)

// Word is a canonical, approved dictionary entry. Unique by Text.
type Word struct {
	ID           int64
	Text         string
	SeniorUsable bool
	AddedBy      *uuid.UUID
	AddedAt      time.Time
}

// RequestType distinguishes pending add and delete requests.
type RequestType string

const (
	RequestTypeAdd    RequestType = "add"
	RequestTypeDelete RequestType = "delete"
)

func (t RequestType) String() string { return string(t) }

func (t RequestType) IsValid() bool {
	return t == RequestTypeAdd || t == RequestTypeDelete
}

// PendingRequest is a staged add or delete proposal awaiting moderation.
// At most one live request exists per (Word, RequestType); the storage
// layer enforces this with a unique index.
type PendingRequest struct {
	ID          int64
	Word        string
	RequestType RequestType
	RequestedBy *uuid.UUID
	RequestedAt time.Time

	// WordID links a delete request to its canonical word. Nil for adds.
	WordID *int64
}

// Topic is a game topic (category) a word can be tagged with.
type Topic struct {
	ID   int64
	Name string
	Code string
}

// StagedTopic is a topic staged on a pending add request, carried with
// enough of the topic row to classify and to match topic documents.
type StagedTopic struct {
	RequestID int64
	Word      string
	Topic
}

// ChangeType distinguishes staged topic additions and removals on a
// canonical word.
type ChangeType string

const (
	ChangeTypeAdd    ChangeType = "add"
	ChangeTypeDelete ChangeType = "delete"
)

func (t ChangeType) String() string { return string(t) }

// TopicChange is a staged topic change tied to a canonical word.
type TopicChange struct {
	WordID      int64
	Word        string
	TopicID     int64
	TopicName   string
	ChangeType  ChangeType
	RequestedBy *uuid.UUID
}
