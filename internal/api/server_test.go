package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/dgallion1/outliner/internal/config"
	"github.com/dgallion1/outliner/internal/pipeline"
)

func testServer(t *testing.T, apiKey string) (*Server, *pipeline.Orchestrator) {
	t.Helper()
	cfg := config.Config{
		Port:           "0",
		APIKey:         apiKey,
		WorkerCount:    1,
		MaxQueueSize:   10,
		MaxUploadBytes: 1 << 20,
		JobTTL:         time.Hour,
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	orch := pipeline.NewOrchestrator(cfg, log)
	ctx, cancel := context.WithCancel(context.Background())
	orch.Start(ctx)
	t.Cleanup(func() {
		cancel()
		orch.Stop()
	})
	return NewServer(orch, log, cfg), orch
}

func uploadRequest(t *testing.T, url, filename, content string) *http.Request {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile("file", filename)
	if err != nil {
		t.Fatal(err)
	}
	io.WriteString(fw, content)
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, url, &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestOutlineEndToEnd(t *testing.T) {
	srv, _ := testServer(t, "")

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, uploadRequest(t, "/api/outline", "plan.md", "# Master Plan\n\n## Phase One\n"))
	if rec.Code != http.StatusAccepted {
		t.Fatalf("submit status = %d: %s", rec.Code, rec.Body.String())
	}
	var accepted struct {
		JobID     string `json:"job_id"`
		PollURL   string `json:"poll_url"`
		ResultURL string `json:"result_url"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &accepted); err != nil {
		t.Fatal(err)
	}
	if accepted.JobID == "" {
		t.Fatal("no job_id returned")
	}

	// Poll until the worker finishes.
	deadline := time.Now().Add(5 * time.Second)
	var status string
	for time.Now().Before(deadline) {
		rec = httptest.NewRecorder()
		srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, accepted.PollURL, nil))
		if rec.Code != http.StatusOK {
			t.Fatalf("status poll = %d", rec.Code)
		}
		var snap struct {
			Status string `json:"status"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &snap); err != nil {
			t.Fatal(err)
		}
		status = snap.Status
		if status == string(pipeline.StatusCompleted) || status == string(pipeline.StatusFailed) {
			break
		}
		time.Sleep(10 * time.Millisecond)
	}
	if status != string(pipeline.StatusCompleted) {
		t.Fatalf("job did not complete, last status %q", status)
	}

	rec = httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, accepted.ResultURL, nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("result status = %d: %s", rec.Code, rec.Body.String())
	}
	var doc struct {
		Title   string `json:"title"`
		Outline []struct {
			Level string `json:"level"`
			Text  string `json:"text"`
		} `json:"outline"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &doc); err != nil {
		t.Fatal(err)
	}
	if doc.Title != "Master Plan" || len(doc.Outline) != 2 {
		t.Errorf("unexpected result: %s", rec.Body.String())
	}
}

func TestOutlineRejectsUnsupportedType(t *testing.T) {
	srv, _ := testServer(t, "")
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, uploadRequest(t, "/api/outline", "image.png", "binary"))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestOutlineStatusNotFound(t *testing.T) {
	srv, _ := testServer(t, "")
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/outline/nope/status", nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestAuthRequiredWhenConfigured(t *testing.T) {
	srv, _ := testServer(t, "sekrit")

	// Health stays open.
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("health = %d, want 200", rec.Code)
	}

	rec = httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/stats", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("unauthenticated stats = %d, want 401", rec.Code)
	}

	rec = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/stats", nil)
	req.Header.Set("Authorization", "Bearer sekrit")
	srv.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("authenticated stats = %d, want 200", rec.Code)
	}
}

func TestStatsShape(t *testing.T) {
	srv, _ := testServer(t, "")
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/stats", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("stats = %d", rec.Code)
	}
	var out struct {
		QueueDepth *int            `json:"queue_depth"`
		Processing json.RawMessage `json:"processing"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatal(err)
	}
	if out.QueueDepth == nil || out.Processing == nil {
		t.Errorf("missing fields: %s", rec.Body.String())
	}
}
