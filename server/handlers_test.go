package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dekarrin/elops/internal/render"
	"github.com/dekarrin/elops/server/dao/inmem"
)

const testGrammar = "S -> ( S ) S\nS -> epsilon\n"

func newTestServer() *Server {
	return New(inmem.NewDatastore(), render.DefaultOptions())
}

func postAnalysis(t *testing.T, s *Server, grammarText string) *httptest.ResponseRecorder {
	t.Helper()

	body, _ := json.Marshal(AnalysisRequest{Grammar: grammarText})
	req := httptest.NewRequest(http.MethodPost, PathPrefix+"/analyses", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	return w
}

func Test_PostAnalysis_StoresAndReturnsRecord(t *testing.T) {
	assert := assert.New(t)

	s := newTestServer()
	w := postAnalysis(t, s, testGrammar)

	assert.Equal(http.StatusCreated, w.Code)

	var model AnalysisModel
	assert.NoError(json.Unmarshal(w.Body.Bytes(), &model))
	assert.NotEmpty(model.ID)
	assert.Equal(testGrammar, model.Grammar)
	assert.True(model.IsLL1)
	assert.Nil(model.Conflict)
}

func Test_PostAnalysis_ConflictReported(t *testing.T) {
	assert := assert.New(t)

	s := newTestServer()
	w := postAnalysis(t, s, "S -> a B\nB -> b\nB -> b c\n")

	assert.Equal(http.StatusCreated, w.Code)

	var model AnalysisModel
	assert.NoError(json.Unmarshal(w.Body.Bytes(), &model))
	assert.False(model.IsLL1)
	if assert.NotNil(model.Conflict) {
		assert.Equal(2, *model.Conflict)
	}
}

func Test_PostAnalysis_BadRequests(t *testing.T) {
	testCases := []struct {
		name        string
		contentType string
		body        string
	}{
		{
			name:        "bad grammar",
			contentType: "application/json",
			body:        `{"grammar": "not a grammar"}`,
		},
		{
			name:        "wrong content type",
			contentType: "text/plain",
			body:        `{"grammar": "S -> a"}`,
		},
		{
			name:        "malformed json",
			contentType: "application/json",
			body:        `{"grammar": `,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			s := newTestServer()
			req := httptest.NewRequest(http.MethodPost, PathPrefix+"/analyses", bytes.NewReader([]byte(tc.body)))
			req.Header.Set("Content-Type", tc.contentType)
			w := httptest.NewRecorder()
			s.Handler().ServeHTTP(w, req)

			assert.Equal(http.StatusBadRequest, w.Code)
		})
	}
}

func Test_GetAnalysis_RoundTrip(t *testing.T) {
	assert := assert.New(t)

	s := newTestServer()
	w := postAnalysis(t, s, testGrammar)
	var created AnalysisModel
	assert.NoError(json.Unmarshal(w.Body.Bytes(), &created))

	req := httptest.NewRequest(http.MethodGet, PathPrefix+"/analyses/"+created.ID, nil)
	w2 := httptest.NewRecorder()
	s.Handler().ServeHTTP(w2, req)

	assert.Equal(http.StatusOK, w2.Code)
	var fetched AnalysisModel
	assert.NoError(json.Unmarshal(w2.Body.Bytes(), &fetched))
	assert.Equal(created, fetched)
}

func Test_GetAnalysisHTML(t *testing.T) {
	assert := assert.New(t)

	s := newTestServer()
	w := postAnalysis(t, s, testGrammar)
	var created AnalysisModel
	assert.NoError(json.Unmarshal(w.Body.Bytes(), &created))

	req := httptest.NewRequest(http.MethodGet, PathPrefix+"/analyses/"+created.ID+"/html", nil)
	w2 := httptest.NewRecorder()
	s.Handler().ServeHTTP(w2, req)

	assert.Equal(http.StatusOK, w2.Code)
	assert.Contains(w2.Header().Get("Content-Type"), "text/html")
	assert.Contains(w2.Body.String(), "<!DOCTYPE html>")
	assert.Contains(w2.Body.String(), "<h2>LL(1) Table</h2>")
}

func Test_GetAllAnalyses(t *testing.T) {
	assert := assert.New(t)

	s := newTestServer()
	postAnalysis(t, s, testGrammar)
	postAnalysis(t, s, "S -> a\n")

	req := httptest.NewRequest(http.MethodGet, PathPrefix+"/analyses", nil)
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)

	assert.Equal(http.StatusOK, w.Code)
	var models []AnalysisModel
	assert.NoError(json.Unmarshal(w.Body.Bytes(), &models))
	assert.Len(models, 2)
}

func Test_DeleteAnalysis(t *testing.T) {
	assert := assert.New(t)

	s := newTestServer()
	w := postAnalysis(t, s, testGrammar)
	var created AnalysisModel
	assert.NoError(json.Unmarshal(w.Body.Bytes(), &created))

	req := httptest.NewRequest(http.MethodDelete, PathPrefix+"/analyses/"+created.ID, nil)
	w2 := httptest.NewRecorder()
	s.Handler().ServeHTTP(w2, req)
	assert.Equal(http.StatusOK, w2.Code)

	// it is gone now
	req = httptest.NewRequest(http.MethodGet, PathPrefix+"/analyses/"+created.ID, nil)
	w3 := httptest.NewRecorder()
	s.Handler().ServeHTTP(w3, req)
	assert.Equal(http.StatusNotFound, w3.Code)
}

func Test_BadIDParam(t *testing.T) {
	assert := assert.New(t)

	s := newTestServer()
	req := httptest.NewRequest(http.MethodGet, PathPrefix+"/analyses/not-a-uuid", nil)
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)

	assert.Equal(http.StatusBadRequest, w.Code)
}
