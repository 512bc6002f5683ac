package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/nill-home/face-insight/internal/store"
)

func TestIndexHandler_Rebuild(t *testing.T) {
	svc, m := newTestService(t, nil)
	m.AddObservation(observation("a.jpg", basisVec(8, 0)))
	m.AddObservation(observation("b.jpg", basisVec(8, 1)))
	m.AddObservation(store.ObservationRecord{Filename: "no-vec.jpg", HasFaces: true})
	handler := NewIndexHandler(svc)

	req := httptest.NewRequest("POST", "/index/rebuild", nil)
	recorder := httptest.NewRecorder()

	handler.Rebuild(recorder, req)

	assertStatusCode(t, recorder, http.StatusOK)

	var resp struct {
		Indexed int `json:"indexed"`
	}
	parseJSONResponse(t, recorder, &resp)

	if resp.Indexed != 2 {
		t.Errorf("indexed = %d; want 2 (records without embeddings are not indexable)", resp.Indexed)
	}
	if svc.IndexSize() != 2 {
		t.Errorf("IndexSize = %d; want 2", svc.IndexSize())
	}
}

func TestIndexHandler_Rebuild_StoreDown(t *testing.T) {
	svc, m := newTestService(t, nil)
	m.FetchObservationsError = store.ErrUpstreamUnavailable
	handler := NewIndexHandler(svc)

	req := httptest.NewRequest("POST", "/index/rebuild", nil)
	recorder := httptest.NewRecorder()

	handler.Rebuild(recorder, req)

	assertStatusCode(t, recorder, http.StatusBadGateway)
}
