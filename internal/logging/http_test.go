package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rockymountnc/licensetracker/internal/middleware"
)

func TestAccessLog(t *testing.T) {
	var buf bytes.Buffer
	logger := &Logger{Logger: slog.New(slog.NewJSONHandler(&buf, nil))}

	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	handler := middleware.RequestID(AccessLog(logger, inner))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/software", nil)
	req.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("failed to decode log line %q: %v", buf.String(), err)
	}

	if entry[FieldMethod] != http.MethodGet {
		t.Errorf("method = %v, want GET", entry[FieldMethod])
	}
	if entry[FieldPath] != "/api/v1/software" {
		t.Errorf("path = %v, want /api/v1/software", entry[FieldPath])
	}
	if entry[FieldStatus] != float64(http.StatusNotFound) {
		t.Errorf("status = %v, want 404", entry[FieldStatus])
	}
	if entry[FieldIP] != "203.0.113.7" {
		t.Errorf("ip = %v, want first X-Forwarded-For entry", entry[FieldIP])
	}
	if _, ok := entry[FieldDuration]; !ok {
		t.Error("missing duration field")
	}
	if id, ok := entry["request_id"].(string); !ok || id == "" {
		t.Error("missing request_id from context")
	}
}

func TestAccessLogDefaultsToOK(t *testing.T) {
	var buf bytes.Buffer
	logger := &Logger{Logger: slog.New(slog.NewJSONHandler(&buf, nil))}

	// Handler that never calls WriteHeader.
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	AccessLog(logger, inner).ServeHTTP(rec, req)

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("failed to decode log line %q: %v", buf.String(), err)
	}
	if entry[FieldStatus] != float64(http.StatusOK) {
		t.Errorf("status = %v, want 200", entry[FieldStatus])
	}
}
