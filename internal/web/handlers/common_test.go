package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestHealthCheck(t *testing.T) {
	req := httptest.NewRequest("GET", "/health", nil)
	recorder := httptest.NewRecorder()

	HealthCheck(recorder, req)

	assertStatusCode(t, recorder, http.StatusOK)
	assertContentType(t, recorder, "application/json")

	var resp map[string]string
	parseJSONResponse(t, recorder, &resp)
	if resp["status"] != "ok" {
		t.Errorf("status = %q; want ok", resp["status"])
	}
}

func TestParseThreshold(t *testing.T) {
	tests := []struct {
		query    string
		expected float64
		wantErr  bool
	}{
		{"", 0, false},
		{"threshold=0.9", 0.9, false},
		{"threshold=1", 1, false},
		{"threshold=0", 0, true},
		{"threshold=-0.2", 0, true},
		{"threshold=1.01", 0, true},
		{"threshold=abc", 0, true},
	}

	for _, tc := range tests {
		req := httptest.NewRequest("GET", "/faces/unknown?"+tc.query, nil)
		got, err := parseThreshold(req)
		if (err != nil) != tc.wantErr {
			t.Errorf("query %q: err = %v; wantErr %v", tc.query, err, tc.wantErr)
			continue
		}
		if got != tc.expected {
			t.Errorf("query %q: threshold = %f; want %f", tc.query, got, tc.expected)
		}
	}
}

func TestParseTopK(t *testing.T) {
	tests := []struct {
		query    string
		expected int
		wantErr  bool
	}{
		{"", 0, false},
		{"top_k=3", 3, false},
		{"top_k=0", 0, true},
		{"top_k=-1", 0, true},
		{"top_k=2.5", 0, true},
		{"top_k=abc", 0, true},
	}

	for _, tc := range tests {
		req := httptest.NewRequest("GET", "/search/rank?"+tc.query, nil)
		got, err := parseTopK(req)
		if (err != nil) != tc.wantErr {
			t.Errorf("query %q: err = %v; wantErr %v", tc.query, err, tc.wantErr)
			continue
		}
		if got != tc.expected {
			t.Errorf("query %q: top_k = %d; want %d", tc.query, got, tc.expected)
		}
	}
}

func TestSanitizeForLog(t *testing.T) {
	if got := sanitizeForLog("evil\nname\r.jpg"); got != "evilname.jpg" {
		t.Errorf("sanitizeForLog = %q; want evilname.jpg", got)
	}
}
