package rest

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/wordchainhub/moderation-backend/internal/service/purge"
	"github.com/wordchainhub/moderation-backend/internal/transport/middleware"
)

// purgeService defines the minimal interface needed by PurgeHandler.
type purgeService interface {
	Run(ctx context.Context, input string, progress purge.ProgressFunc) (*purge.Result, error)
}

// PurgeHandler serves the admin bulk-delete endpoint.
type PurgeHandler struct {
	svc      purgeService
	log      *slog.Logger
	maxBytes int64
}

// NewPurgeHandler creates a PurgeHandler. maxBytes caps the upload size.
func NewPurgeHandler(svc purgeService, logger *slog.Logger, maxBytes int64) *PurgeHandler {
	return &PurgeHandler{
		svc:      svc,
		log:      logger.With("handler", "purge"),
		maxBytes: maxBytes,
	}
}

type purgeResponse struct {
	Requested int      `json:"requested"`
	Deleted   int      `json:"deleted"`
	Protected []string `json:"protected"`
	Missing   []string `json:"missing"`
	Phases    []string `json:"phases"`
}

// Purge handles POST /api/admin/purge. The word list arrives either as the
// raw request body or as the "words" file of a multipart form, one word per
// line.
func (h *PurgeHandler) Purge(w http.ResponseWriter, r *http.Request) {
	if err := middleware.RequireModerator(r.Context()); err != nil {
		writeDomainError(w, r, h.log, err)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxBytes)

	input, err := h.readWordList(r)
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			writeError(w, http.StatusRequestEntityTooLarge, "too_large", "word list exceeds the upload limit")
			return
		}
		writeError(w, http.StatusBadRequest, "bad_request", "could not read word list")
		return
	}

	result, err := h.svc.Run(r.Context(), input, func(phase string, percent int) {
		h.log.InfoContext(r.Context(), "purge progress",
			slog.String("phase", phase),
			slog.Int("percent", percent),
		)
	})
	if err != nil {
		writeDomainError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, purgeResponse{
		Requested: result.Requested,
		Deleted:   result.Deleted,
		Protected: emptyIfNil(result.Protected),
		Missing:   emptyIfNil(result.Missing),
		Phases:    result.Phases,
	})
}

func (h *PurgeHandler) readWordList(r *http.Request) (string, error) {
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		file, _, err := r.FormFile("words")
		if err != nil {
			return "", err
		}
		defer file.Close()
		data, err := io.ReadAll(file)
		return string(data), err
	}

	data, err := io.ReadAll(r.Body)
	return string(data), err
}

func emptyIfNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
