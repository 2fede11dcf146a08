package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/dekarrin/elops"
	"github.com/dekarrin/elops/internal/elerrors"
	"github.com/dekarrin/elops/server/dao"
)

// AnalysisRequest is the body of a POST to the analyses endpoint.
type AnalysisRequest struct {
	Grammar string `json:"grammar"`
}

// AnalysisModel is the JSON shape of a stored analysis. The rendered HTML is
// not included; it has its own endpoint.
type AnalysisModel struct {
	ID      string `json:"id"`
	Created string `json:"created"`
	Grammar string `json:"grammar"`
	IsLL1   bool   `json:"is_ll1"`

	// Conflict is present only when the grammar is not LL(1); it is the id
	// of the first production whose PREDICT set overlaps an earlier one's.
	Conflict *int `json:"conflict,omitempty"`
}

func toModel(a dao.Analysis) AnalysisModel {
	m := AnalysisModel{
		ID:      a.ID.String(),
		Created: a.Created.Format(time.RFC3339),
		Grammar: a.Grammar,
		IsLL1:   a.IsLL1,
	}
	if !a.IsLL1 {
		conflict := a.Conflict
		m.Conflict = &conflict
	}
	return m
}

// parseJSON decodes the request body into v. The request content type must
// be application/json.
func parseJSON(req *http.Request, v interface{}) error {
	contentType := req.Header.Get("Content-Type")

	if !strings.HasPrefix(strings.ToLower(contentType), "application/json") {
		return fmt.Errorf("request content-type is not application/json")
	}

	bodyData, err := io.ReadAll(req.Body)
	if err != nil {
		return fmt.Errorf("could not read request body: %w", err)
	}
	defer req.Body.Close()

	if err := json.Unmarshal(bodyData, v); err != nil {
		return fmt.Errorf("malformed data in request: %w", err)
	}

	return nil
}

func respondJSON(w http.ResponseWriter, status int, v interface{}) {
	data, err := json.Marshal(v)
	if err != nil {
		log.Printf("ERROR: could not marshal response: %s", err.Error())
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(data)
}

func respondErr(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, map[string]string{"error": msg})
}

// requireIDParam gets the record ID in the URI and parses it. A failure has
// already been responded to when ok is false.
func requireIDParam(w http.ResponseWriter, req *http.Request) (uuid.UUID, bool) {
	idStr := chi.URLParam(req, "id")
	id, err := uuid.Parse(idStr)
	if err != nil {
		respondErr(w, http.StatusBadRequest, fmt.Sprintf("not a valid analysis ID: %q", idStr))
		return uuid.UUID{}, false
	}
	return id, true
}

func (s *Server) handlePostAnalysis(w http.ResponseWriter, req *http.Request) {
	var body AnalysisRequest
	if err := parseJSON(req, &body); err != nil {
		respondErr(w, http.StatusBadRequest, err.Error())
		return
	}

	res, err := elops.AnalyzeString(body.Grammar)
	if err != nil {
		respondErr(w, http.StatusBadRequest, err.Error())
		return
	}

	rec := dao.Analysis{
		Grammar:  body.Grammar,
		IsLL1:    res.Analysis.IsLL1(),
		Conflict: -1,
		HTML:     res.RenderHTML(s.opts),
	}
	if pid, ok := res.Analysis.Conflict(); ok {
		rec.Conflict = pid
	}

	rec, err = s.store.Analyses().Create(req.Context(), rec)
	if err != nil {
		log.Printf("ERROR: store analysis: %s", err.Error())
		respondErr(w, http.StatusInternalServerError, "could not store analysis")
		return
	}

	respondJSON(w, http.StatusCreated, toModel(rec))
}

func (s *Server) handleGetAllAnalyses(w http.ResponseWriter, req *http.Request) {
	all, err := s.store.Analyses().GetAll(req.Context())
	if err != nil {
		log.Printf("ERROR: list analyses: %s", err.Error())
		respondErr(w, http.StatusInternalServerError, "could not list analyses")
		return
	}

	models := make([]AnalysisModel, len(all))
	for i := range all {
		models[i] = toModel(all[i])
	}

	respondJSON(w, http.StatusOK, models)
}

func (s *Server) handleGetAnalysis(w http.ResponseWriter, req *http.Request) {
	id, ok := requireIDParam(w, req)
	if !ok {
		return
	}

	rec, err := s.store.Analyses().GetByID(req.Context(), id)
	if err != nil {
		if errors.Is(err, elerrors.ErrNotFound) {
			respondErr(w, http.StatusNotFound, fmt.Sprintf("no analysis with ID %s", id))
			return
		}
		log.Printf("ERROR: get analysis: %s", err.Error())
		respondErr(w, http.StatusInternalServerError, "could not retrieve analysis")
		return
	}

	respondJSON(w, http.StatusOK, toModel(rec))
}

func (s *Server) handleGetAnalysisHTML(w http.ResponseWriter, req *http.Request) {
	id, ok := requireIDParam(w, req)
	if !ok {
		return
	}

	rec, err := s.store.Analyses().GetByID(req.Context(), id)
	if err != nil {
		if errors.Is(err, elerrors.ErrNotFound) {
			respondErr(w, http.StatusNotFound, fmt.Sprintf("no analysis with ID %s", id))
			return
		}
		log.Printf("ERROR: get analysis: %s", err.Error())
		respondErr(w, http.StatusInternalServerError, "could not retrieve analysis")
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	io.WriteString(w, rec.HTML)
}

func (s *Server) handleDeleteAnalysis(w http.ResponseWriter, req *http.Request) {
	id, ok := requireIDParam(w, req)
	if !ok {
		return
	}

	rec, err := s.store.Analyses().Delete(req.Context(), id)
	if err != nil {
		if errors.Is(err, elerrors.ErrNotFound) {
			respondErr(w, http.StatusNotFound, fmt.Sprintf("no analysis with ID %s", id))
			return
		}
		log.Printf("ERROR: delete analysis: %s", err.Error())
		respondErr(w, http.StatusInternalServerError, "could not delete analysis")
		return
	}

	respondJSON(w, http.StatusOK, toModel(rec))
}
