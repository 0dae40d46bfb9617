package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/wordchainhub/moderation-backend/internal/domain"
	"github.com/wordchainhub/moderation-backend/internal/service/purge"
	"github.com/wordchainhub/moderation-backend/pkg/ctxutil"
)

type purgeServiceMock struct {
	RunFunc func(ctx context.Context, input string, progress purge.ProgressFunc) (*purge.Result, error)
}

func (m *purgeServiceMock) Run(ctx context.Context, input string, progress purge.ProgressFunc) (*purge.Result, error) {
	return m.RunFunc(ctx, input, progress)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newPurgeRouter(t *testing.T, svc purgeService, maxBytes int64) http.Handler {
	t.Helper()
	logger := testLogger()
	return NewRouter(Handlers{
		Health:     NewHealthHandler(&dbPingerMock{}, "test"),
		Moderation: NewModerationHandler(&moderationServiceMock{}, logger),
		Purge:      NewPurgeHandler(svc, logger, maxBytes),
	}, nil)
}

func moderatorRequest(req *http.Request) *http.Request {
	ctx := ctxutil.WithActor(req.Context(), ctxutil.Actor{ID: uuid.New(), Role: domain.RoleAdmin})
	return req.WithContext(ctx)
}

func TestPurge_PlainTextBody(t *testing.T) {
	var gotInput string
	svc := &purgeServiceMock{
		RunFunc: func(ctx context.Context, input string, progress purge.ProgressFunc) (*purge.Result, error) {
			gotInput = input
			return &purge.Result{
				Requested: 2,
				Deleted:   1,
				Protected: []string{"노인정"},
				Phases:    []string{"parse", "finalize"},
			}, nil
		},
	}

	req := httptest.NewRequest(http.MethodPost, "/api/admin/purge", strings.NewReader("사과\n노인정\n"))
	rec := httptest.NewRecorder()
	newPurgeRouter(t, svc, 1<<20).ServeHTTP(rec, moderatorRequest(req))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	if gotInput != "사과\n노인정\n" {
		t.Errorf("input = %q", gotInput)
	}

	var resp purgeResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Requested != 2 || resp.Deleted != 1 {
		t.Errorf("response = %+v", resp)
	}
	if len(resp.Protected) != 1 || resp.Protected[0] != "노인정" {
		t.Errorf("Protected = %v", resp.Protected)
	}
	if resp.Missing == nil {
		t.Error("Missing should encode as an empty array, not null")
	}
}

func TestPurge_MultipartUpload(t *testing.T) {
	var gotInput string
	svc := &purgeServiceMock{
		RunFunc: func(ctx context.Context, input string, progress purge.ProgressFunc) (*purge.Result, error) {
			gotInput = input
			return &purge.Result{Requested: 1, Deleted: 1}, nil
		},
	}

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("words", "words.txt")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := fw.Write([]byte("사과\n")); err != nil {
		t.Fatal(err)
	}
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/admin/purge", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	newPurgeRouter(t, svc, 1<<20).ServeHTTP(rec, moderatorRequest(req))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	if gotInput != "사과\n" {
		t.Errorf("input = %q, want 사과\\n", gotInput)
	}
}

func TestPurge_Anonymous(t *testing.T) {
	svc := &purgeServiceMock{
		RunFunc: func(ctx context.Context, input string, progress purge.ProgressFunc) (*purge.Result, error) {
			t.Error("Run should not be called")
			return nil, nil
		},
	}

	req := httptest.NewRequest(http.MethodPost, "/api/admin/purge", strings.NewReader("사과\n"))
	rec := httptest.NewRecorder()
	newPurgeRouter(t, svc, 1<<20).ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

func TestPurge_NonModerator(t *testing.T) {
	svc := &purgeServiceMock{
		RunFunc: func(ctx context.Context, input string, progress purge.ProgressFunc) (*purge.Result, error) {
			t.Error("Run should not be called")
			return nil, nil
		},
	}

	req := httptest.NewRequest(http.MethodPost, "/api/admin/purge", strings.NewReader("사과\n"))
	ctx := ctxutil.WithActor(req.Context(), ctxutil.Actor{ID: uuid.New(), Role: domain.RoleR2})
	rec := httptest.NewRecorder()
	newPurgeRouter(t, svc, 1<<20).ServeHTTP(rec, req.WithContext(ctx))

	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", rec.Code)
	}
}

func TestPurge_UploadTooLarge(t *testing.T) {
	svc := &purgeServiceMock{
		RunFunc: func(ctx context.Context, input string, progress purge.ProgressFunc) (*purge.Result, error) {
			t.Error("Run should not be called")
			return nil, nil
		},
	}

	req := httptest.NewRequest(http.MethodPost, "/api/admin/purge", strings.NewReader(strings.Repeat("가나다\n", 100)))
	rec := httptest.NewRecorder()
	newPurgeRouter(t, svc, 16).ServeHTTP(rec, moderatorRequest(req))

	if rec.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("status = %d, want 413", rec.Code)
	}
}

func TestPurge_BusyMapsTo409(t *testing.T) {
	svc := &purgeServiceMock{
		RunFunc: func(ctx context.Context, input string, progress purge.ProgressFunc) (*purge.Result, error) {
			return nil, domain.ErrBusy
		},
	}

	req := httptest.NewRequest(http.MethodPost, "/api/admin/purge", strings.NewReader("사과\n"))
	rec := httptest.NewRecorder()
	newPurgeRouter(t, svc, 1<<20).ServeHTTP(rec, moderatorRequest(req))

	if rec.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409", rec.Code)
	}
	var body errorBody
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	if body.Error.Name != "busy" {
		t.Errorf("error name = %q, want busy", body.Error.Name)
	}
}

func TestPurge_ReportsProgressPhases(t *testing.T) {
	svc := &purgeServiceMock{
		RunFunc: func(ctx context.Context, input string, progress purge.ProgressFunc) (*purge.Result, error) {
			progress("parse", 5)
			progress("finalize", 100)
			return &purge.Result{Phases: []string{"parse", "finalize"}}, nil
		},
	}

	req := httptest.NewRequest(http.MethodPost, "/api/admin/purge", strings.NewReader("사과\n"))
	rec := httptest.NewRecorder()
	newPurgeRouter(t, svc, 1<<20).ServeHTTP(rec, moderatorRequest(req))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var resp purgeResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Phases) != 2 || resp.Phases[0] != "parse" {
		t.Errorf("Phases = %v", resp.Phases)
	}
}
