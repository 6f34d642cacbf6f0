package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/svaldes/structhealth/pkg/logging"
)

func TestRequestID_GeneratesWhenMissing(t *testing.T) {
	var seen string
	handler := RequestID()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = GetRequestID(r)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	if seen == "" {
		t.Error("no request ID in context")
	}
	if got := rec.Header().Get(RequestIDHeader); got != seen {
		t.Errorf("response header = %q, want %q", got, seen)
	}
}

func TestRequestID_ReusesClientID(t *testing.T) {
	var seen string
	handler := RequestID()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = GetRequestID(r)
	}))

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(RequestIDHeader, "client-abc.123")
	handler.ServeHTTP(httptest.NewRecorder(), req)

	if seen != "client-abc.123" {
		t.Errorf("request ID = %q, want client-abc.123", seen)
	}
}

func TestRequestID_SanitizesClientID(t *testing.T) {
	var seen string
	handler := RequestID()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = GetRequestID(r)
	}))

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(RequestIDHeader, "evil\nid<script>")
	handler.ServeHTTP(httptest.NewRecorder(), req)

	if seen != "evilidscript" {
		t.Errorf("sanitized ID = %q, want evilidscript", seen)
	}
}

type fakeRecorder struct {
	requests int
	inFlight int
	status   string
}

func (f *fakeRecorder) RecordHTTPRequest(method, path, status string, d time.Duration) {
	f.requests++
	f.status = status
}
func (f *fakeRecorder) IncHTTPRequestsInFlight() { f.inFlight++ }
func (f *fakeRecorder) DecHTTPRequestsInFlight() { f.inFlight-- }

func TestMetrics_RecordsStatusCode(t *testing.T) {
	rec := &fakeRecorder{}
	handler := Metrics(rec)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/x", nil))

	if rec.requests != 1 {
		t.Errorf("requests recorded = %d, want 1", rec.requests)
	}
	if rec.status != "418" {
		t.Errorf("status recorded = %q, want 418", rec.status)
	}
	if rec.inFlight != 0 {
		t.Errorf("in-flight gauge leaked: %d", rec.inFlight)
	}
}

func TestMetrics_NilRecorderPassesThrough(t *testing.T) {
	called := false
	handler := Metrics(nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/x", nil))
	if !called {
		t.Error("next handler not called")
	}
}

func TestPanicRecovery(t *testing.T) {
	handler := PanicRecovery(logging.NewNopLogger())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/x", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", rec.Code)
	}
}

func TestLogging_DoesNotInterfere(t *testing.T) {
	handler := Logging(logging.NewNopLogger())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/network", nil))

	if rec.Code != http.StatusCreated {
		t.Errorf("status = %d, want 201", rec.Code)
	}
}
