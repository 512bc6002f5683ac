package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/nill-home/face-insight/internal/config"
	"github.com/nill-home/face-insight/internal/search"
	"github.com/nill-home/face-insight/internal/store"
	"github.com/nill-home/face-insight/internal/store/mock"
)

// stubEmbedder returns a fixed vector for any image.
type stubEmbedder struct {
	vector []float32
	err    error
}

func (e *stubEmbedder) Embed(ctx context.Context, imageData []byte) ([]float32, error) {
	if e.err != nil {
		return nil, e.err
	}
	return e.vector, nil
}

// testSearchConfig creates minimal search defaults for testing.
func testSearchConfig() config.SearchConfig {
	return config.SearchConfig{
		MatchThreshold:   0.8,
		UnknownThreshold: 0.75,
		TopK:             5,
	}
}

// newTestService builds a search service over an in-memory store.
func newTestService(t *testing.T, emb *stubEmbedder) (*search.Service, *mock.Store) {
	t.Helper()
	m := mock.NewStore()
	if emb == nil {
		emb = &stubEmbedder{vector: basisVec(8, 0)}
	}
	return search.NewService(m, m, emb, testSearchConfig()), m
}

// basisVec returns a unit vector with a single non-zero component.
func basisVec(dim, hot int) []float32 {
	v := make([]float32, dim)
	v[hot] = 1
	return v
}

func observation(filename string, embedding []float32) store.ObservationRecord {
	return store.ObservationRecord{
		Filename:       filename,
		HasFaces:       true,
		FaceCount:      1,
		Embedding:      embedding,
		CameraLocation: "entrance",
	}
}

// multipartPhotoRequest builds a POST request carrying image bytes as
// the "file" part.
func multipartPhotoRequest(t *testing.T, path string, imageData []byte) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", "query.jpg")
	if err != nil {
		t.Fatalf("failed to create form file: %v", err)
	}
	if _, err := part.Write(imageData); err != nil {
		t.Fatalf("failed to write image data: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("failed to close multipart writer: %v", err)
	}

	req := httptest.NewRequest("POST", path, &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

// parseJSONResponse parses a JSON response body into the target type
func parseJSONResponse(t *testing.T, recorder *httptest.ResponseRecorder, target any) {
	t.Helper()
	if err := json.NewDecoder(recorder.Body).Decode(target); err != nil {
		t.Fatalf("failed to parse JSON response: %v", err)
	}
}

// assertStatusCode checks the response status code
func assertStatusCode(t *testing.T, recorder *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if recorder.Code != expected {
		t.Errorf("expected status %d, got %d (body: %s)", expected, recorder.Code, recorder.Body.String())
	}
}

// assertContentType checks the response content type
func assertContentType(t *testing.T, recorder *httptest.ResponseRecorder, expected string) {
	t.Helper()
	if got := recorder.Header().Get("Content-Type"); got != expected {
		t.Errorf("expected content type %q, got %q", expected, got)
	}
}

// envelope is the common response envelope shape.
type envelope struct {
	QueryID      string            `json:"query_id"`
	Count        int               `json:"count"`
	Matches      []matchItem       `json:"matches"`
	Observations []observationItem `json:"observations"`
	UnknownFaces []unknownFace     `json:"unknown_faces"`
}
