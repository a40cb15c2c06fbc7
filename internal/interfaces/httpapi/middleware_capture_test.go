package httpapi

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestCaptureRequestBody_PreservesBodyForHandler(t *testing.T) {
	var seen string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		if err != nil {
			t.Errorf("read body in handler: %v", err)
			return
		}
		seen = string(body)
		w.WriteHeader(http.StatusOK)
	})

	payload := `{"club_id":"brookweald-cc"}`
	req := httptest.NewRequest(http.MethodPost, "/v1/internal/jobs/recalc", strings.NewReader(payload))
	rec := httptest.NewRecorder()

	CaptureRequestBody(8, next).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d", rec.Code)
	}
	if seen != payload {
		t.Fatalf("handler saw %q, want %q", seen, payload)
	}
}

func TestCaptureRequestBody_AttachesTruncatedAttribute(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, err := io.Copy(io.Discard, r.Body); err != nil {
			t.Errorf("drain body: %v", err)
		}
		w.WriteHeader(http.StatusOK)
	})

	payload := `{"club_id":"brookweald-cc","season_id":"2025"}`
	ctx, span := provider.Tracer("test").Start(httptest.NewRequest(http.MethodPost, "/", nil).Context(), "request")
	req := httptest.NewRequest(http.MethodPost, "/v1/internal/jobs/recalc", strings.NewReader(payload)).WithContext(ctx)
	rec := httptest.NewRecorder()

	CaptureRequestBody(10, next).ServeHTTP(rec, req)
	span.End()

	spans := recorder.Ended()
	if len(spans) != 1 {
		t.Fatalf("expected 1 span, got %d", len(spans))
	}

	found := false
	for _, attr := range spans[0].Attributes() {
		if attr.Key != "http.request_body" {
			continue
		}
		found = true
		got := attr.Value.AsString()
		want := payload[:10] + "...(truncated)"
		if got != want {
			t.Fatalf("unexpected captured body: %q, want %q", got, want)
		}
	}
	if !found {
		t.Fatalf("expected http.request_body attribute on span")
	}
}
