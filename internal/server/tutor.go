package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/abhisek/homeworkpal/internal/quest"
	"github.com/abhisek/homeworkpal/internal/tutor"
)

// tutorRequest is a stateless tutoring step. The caller sends the whole
// conversation; progress is rebuilt from it.
type tutorRequest struct {
	AssignmentID string `json:"assignmentId"`

	// Content and Stars are used when no assignment id is given.
	Content string `json:"content"`
	Stars   int    `json:"stars"`

	History []tutor.Turn `json:"history"`
	Input   string       `json:"input"`
}

type tutorResponse struct {
	Turn     tutor.Turn     `json:"turn"`
	Progress tutor.Progress `json:"progress"`
	Retry    bool           `json:"retry,omitempty"`
}

func (s *Server) tutorTurn(w http.ResponseWriter, r *http.Request) {
	var req tutorRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, err)
		return
	}

	raw, stars := req.Content, req.Stars
	if req.AssignmentID != "" {
		a, err := s.deps.Assignments.Get(r.Context(), req.AssignmentID)
		if err != nil {
			s.writeError(w, err)
			return
		}
		raw, stars = a.Description, a.Stars
	}
	if stars < 1 {
		stars = 1
	}

	content, err := quest.Parse(raw)
	if err != nil {
		s.writeError(w, err)
		return
	}
	progress, err := tutor.Replay(content, req.History)
	if err != nil {
		s.writeError(w, err)
		return
	}

	res, err := s.deps.Tutor.Respond(r.Context(), tutor.Request{
		Content:  content,
		Stars:    stars,
		Progress: progress,
		Input:    strings.TrimSpace(req.Input),
		History:  req.History,
	})
	if err != nil {
		var genErr *tutor.GenerationError
		if errors.As(err, &genErr) {
			writeJSON(w, http.StatusOK, tutorResponse{Turn: res.Turn, Progress: res.Progress, Retry: true})
			return
		}
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, tutorResponse{Turn: res.Turn, Progress: res.Progress})
}
