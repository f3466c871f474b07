package server

import (
	"net/http"
	"strings"

	"github.com/abhisek/homeworkpal/internal/assignment"
	"github.com/go-chi/chi/v5"
)

// previewLength bounds the learning excerpt in listings.
const previewLength = 120

type assignmentView struct {
	assignment.Assignment
	Preview string `json:"preview"`
}

func viewOf(a assignment.Assignment) assignmentView {
	return assignmentView{Assignment: a, Preview: a.Preview(previewLength)}
}

func (s *Server) listAssignments(w http.ResponseWriter, r *http.Request) {
	list, err := s.deps.Assignments.List(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	views := make([]assignmentView, 0, len(list))
	for _, a := range list {
		views = append(views, viewOf(a))
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"assignments": views,
		"readOnly":    s.deps.Assignments.ReadOnly(),
	})
}

type createRequest struct {
	Title string `json:"title"`

	// Content is the two-section quest text. When empty, Goal is sent to
	// the quest designer.
	Content string `json:"content"`
	Goal    string `json:"goal"`

	Stars int `json:"stars"`
}

func (s *Server) createAssignment(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, err)
		return
	}

	content := req.Content
	if strings.TrimSpace(content) == "" && strings.TrimSpace(req.Goal) != "" && s.deps.Designer != nil {
		design, err := s.deps.Designer.Design(r.Context(), req.Goal)
		if err != nil {
			s.writeError(w, err)
			return
		}
		content = design.Content
	}

	a, err := s.deps.Assignments.Create(r.Context(), assignment.CreateInput{
		Title:   req.Title,
		Content: content,
		Stars:   req.Stars,
	})
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, viewOf(a))
}

func (s *Server) getAssignment(w http.ResponseWriter, r *http.Request) {
	a, err := s.deps.Assignments.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, viewOf(a))
}

func (s *Server) deleteAssignment(w http.ResponseWriter, r *http.Request) {
	if err := s.deps.Assignments.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) setStatus(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Status string `json:"status"`
	}
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	status, err := assignment.ParseStatus(req.Status)
	if err != nil {
		s.writeError(w, &assignment.ValidationError{Fields: map[string]string{"status": err.Error()}})
		return
	}

	id := chi.URLParam(r, "id")
	if err := s.deps.Assignments.SetStatus(r.Context(), id, status); err != nil {
		s.writeError(w, err)
		return
	}
	a, err := s.deps.Assignments.Get(r.Context(), id)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, viewOf(a))
}

func (s *Server) startSession(w http.ResponseWriter, r *http.Request) {
	d, reply, err := s.deps.Sessions.Start(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{
		"sessionId": d.ID(),
		"reply":     reply,
	})
}
