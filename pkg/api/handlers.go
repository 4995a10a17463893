package api

import (
	"net/http"
	"runtime"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/strategos/pkg/buildinfo"
	"github.com/matzehuels/strategos/pkg/diagram"
	"github.com/matzehuels/strategos/pkg/errors"
	"github.com/matzehuels/strategos/pkg/store"
)

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Uptime    string `json:"uptime"`
	Diagrams  int    `json:"diagrams"`
}

// InfoResponse is the body of GET /.
type InfoResponse struct {
	Name      string   `json:"name"`
	Version   string   `json:"version"`
	GoVersion string   `json:"go_version"`
	Formats   []string `json:"formats"`
}

// DeleteResponse is the body of DELETE /diagrams/{id}.
type DeleteResponse struct {
	ID      string `json:"id"`
	Removed bool   `json:"removed"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Uptime:    time.Since(s.started).Round(time.Second).String(),
		Diagrams:  s.store.Len(),
	})
}

func (s *Server) handleInfo(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, InfoResponse{
		Name:      "strategos",
		Version:   buildinfo.Version,
		GoVersion: runtime.Version(),
		Formats:   store.Formats,
	})
}

func (s *Server) handleTemplates(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]string{"templates": s.registry.Names()})
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.store.List(r.Context()))
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	var spec diagram.Spec
	if err := decode(w, r, &spec); err != nil {
		s.writeError(w, err)
		return
	}
	snap, err := s.store.Create(r.Context(), spec)
	if err != nil {
		s.writeError(w, err)
		return
	}
	w.Header().Set("Location", "/diagrams/"+snap.ID)
	writeJSON(w, http.StatusCreated, snap)
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	snap, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

func (s *Server) handleUpdate(w http.ResponseWriter, r *http.Request) {
	var spec diagram.Spec
	if err := decode(w, r, &spec); err != nil {
		s.writeError(w, err)
		return
	}
	snap, err := s.store.Update(r.Context(), chi.URLParam(r, "id"), spec)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !s.store.Delete(r.Context(), id) {
		s.writeError(w, errors.NotFound(id))
		return
	}
	writeJSON(w, http.StatusOK, DeleteResponse{ID: id, Removed: true})
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	out, err := s.store.Render(r.Context(), chi.URLParam(r, "id"), r.URL.Query().Get("format"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", out.ContentType)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(out.Data)
}

func (s *Server) handleAddNode(w http.ResponseWriter, r *http.Request) {
	var ns diagram.NodeSpec
	if err := decode(w, r, &ns); err != nil {
		s.writeError(w, err)
		return
	}
	snap, err := s.store.AddNode(r.Context(), chi.URLParam(r, "id"), ns)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

func (s *Server) handleAddEdge(w http.ResponseWriter, r *http.Request) {
	var es diagram.EdgeSpec
	if err := decode(w, r, &es); err != nil {
		s.writeError(w, err)
		return
	}
	snap, err := s.store.AddEdge(r.Context(), chi.URLParam(r, "id"), es)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}
