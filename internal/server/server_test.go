package server

import (
	"bytes"
	"context"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/cannon/pkg/cache"
	"github.com/matzehuels/cannon/pkg/coverage"
	"github.com/matzehuels/cannon/pkg/emit"
	"github.com/matzehuels/cannon/pkg/errors"
	"github.com/matzehuels/cannon/pkg/observability"
	"github.com/matzehuels/cannon/pkg/pipeline"
)

func blockPNG(t *testing.T, rects ...image.Rectangle) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, coverage.Width, coverage.Width))
	for y := 0; y < coverage.Width; y++ {
		for x := 0; x < coverage.Width; x++ {
			img.Set(x, y, color.White)
		}
	}
	for _, r := range rects {
		for y := r.Min.Y; y < r.Max.Y; y++ {
			for x := r.Min.X; x < r.Max.X; x++ {
				img.Set(x, y, color.Black)
			}
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func newTestServer(t *testing.T, maxUpload int64) *httptest.Server {
	t.Helper()
	logger := log.NewWithOptions(io.Discard, log.Options{})
	runner := pipeline.NewRunner(cache.NewNullCache(), nil, logger)
	srv := httptest.NewServer(New(runner, Options{MaxUpload: maxUpload, Logger: logger}))
	t.Cleanup(srv.Close)
	return srv
}

func decodeError(t *testing.T, r io.Reader) errorBody {
	t.Helper()
	var body errorBody
	if err := json.NewDecoder(r).Decode(&body); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	return body
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t, 0)
	resp, err := http.Get(srv.URL + "/healthz")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
}

func TestPlanJSON(t *testing.T) {
	srv := newTestServer(t, 0)
	data := blockPNG(t, image.Rect(200, 100, 207, 107))

	resp, err := http.Post(srv.URL+"/v1/plan", "image/png", bytes.NewReader(data))
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q", ct)
	}
	runID := resp.Header.Get(HeaderRunID)
	if runID == "" {
		t.Fatal("missing run ID header")
	}

	p, err := emit.ReadJSON(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	if p.RunID != runID {
		t.Errorf("RunID = %q, header %q", p.RunID, runID)
	}
	if len(p.Shots) != 1 || p.Shots[0].Row != 103 || p.Shots[0].Col != 203 {
		t.Errorf("Shots = %+v, want one shot at (103,203)", p.Shots)
	}
}

func TestPlanFormats(t *testing.T) {
	srv := newTestServer(t, 0)
	data := blockPNG(t, image.Rect(200, 100, 207, 107))

	tests := []struct {
		query       string
		contentType string
		prefix      string
	}{
		{"format=mcfunction", "text/plain; charset=utf-8", "give @s red_shulker_box"},
		{"format=png&scale=2", "image/png", "\x89PNG"},
		{"format=json&background=%23ffffff", "application/json", "{"},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			resp, err := http.Post(srv.URL+"/v1/plan?"+tt.query, "image/png", bytes.NewReader(data))
			if err != nil {
				t.Fatal(err)
			}
			defer resp.Body.Close()
			if resp.StatusCode != http.StatusOK {
				t.Fatalf("status = %d", resp.StatusCode)
			}
			if ct := resp.Header.Get("Content-Type"); ct != tt.contentType {
				t.Errorf("Content-Type = %q, want %q", ct, tt.contentType)
			}
			body, _ := io.ReadAll(resp.Body)
			if !strings.HasPrefix(string(body), tt.prefix) {
				t.Errorf("body starts with %q, want %q", string(body[:min(len(body), 16)]), tt.prefix)
			}
		})
	}
}

func TestPlanRejects(t *testing.T) {
	srv := newTestServer(t, 1024)
	small := []byte("not an image")
	large := bytes.Repeat([]byte{0}, 4096)

	tests := []struct {
		name   string
		query  string
		body   []byte
		status int
		code   errors.Code
	}{
		{"bad format", "format=svg", small, http.StatusBadRequest, errors.ErrCodeInvalidFormat},
		{"bad color", "background=chartreuse", small, http.StatusBadRequest, errors.ErrCodeInvalidColor},
		{"bad scale", "format=png&scale=99", small, http.StatusBadRequest, errors.ErrCodeInvalidInput},
		{"bad caption", "caption=maybe", small, http.StatusBadRequest, errors.ErrCodeInvalidInput},
		{"bad image", "", small, http.StatusBadRequest, errors.ErrCodeInvalidImage},
		{"too large", "", large, http.StatusRequestEntityTooLarge, errors.ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := http.Post(srv.URL+"/v1/plan?"+tt.query, "image/png", bytes.NewReader(tt.body))
			if err != nil {
				t.Fatal(err)
			}
			defer resp.Body.Close()
			if resp.StatusCode != tt.status {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.status)
			}
			if body := decodeError(t, resp.Body); body.Code != tt.code {
				t.Errorf("code = %q, want %q (%s)", body.Code, tt.code, body.Error)
			}
		})
	}
}

func TestPlanMethodNotAllowed(t *testing.T) {
	srv := newTestServer(t, 0)
	resp, err := http.Get(srv.URL + "/v1/plan")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want 405", resp.StatusCode)
	}
}

func TestStatusOf(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{errors.New(errors.ErrCodeInvalidDimensions, "x"), http.StatusBadRequest},
		{errors.New(errors.ErrCodeOutOfRange, "x"), http.StatusBadRequest},
		{errors.New(errors.ErrCodeFileNotFound, "x"), http.StatusNotFound},
		{errors.New(errors.ErrCodeUnsupported, "x"), http.StatusNotImplemented},
		{errors.New(errors.ErrCodeInternal, "x"), http.StatusInternalServerError},
		{io.ErrUnexpectedEOF, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		if got := StatusOf(tt.err); got != tt.want {
			t.Errorf("StatusOf(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}

type recordingHTTPHooks struct {
	observability.NoopHTTPHooks
	mu       sync.Mutex
	statuses []int
}

func (h *recordingHTTPHooks) OnResponse(_ context.Context, _, _ string, status int, _ time.Duration) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.statuses = append(h.statuses, status)
}

func TestHTTPHooks(t *testing.T) {
	hooks := &recordingHTTPHooks{}
	observability.SetHTTPHooks(hooks)
	defer observability.Reset()

	srv := newTestServer(t, 0)
	for _, path := range []string{"/healthz", "/missing"} {
		resp, err := http.Get(srv.URL + path)
		if err != nil {
			t.Fatal(err)
		}
		resp.Body.Close()
	}

	hooks.mu.Lock()
	defer hooks.mu.Unlock()
	if len(hooks.statuses) != 2 || hooks.statuses[0] != http.StatusOK || hooks.statuses[1] != http.StatusNotFound {
		t.Errorf("statuses = %v, want [200 404]", hooks.statuses)
	}
}
