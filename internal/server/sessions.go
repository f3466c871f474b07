package server

import (
	"errors"
	"net/http"

	"github.com/abhisek/homeworkpal/internal/play"
	"github.com/abhisek/homeworkpal/internal/tutor"
	"github.com/go-chi/chi/v5"
)

type sessionView struct {
	SessionID    string       `json:"sessionId"`
	AssignmentID string       `json:"assignmentId"`
	Title        string       `json:"title"`
	Summary      play.Summary `json:"summary"`
	Turns        []tutor.Turn `json:"turns"`
	Pending      bool         `json:"pending"`
}

func (s *Server) session(w http.ResponseWriter, r *http.Request) (*play.Driver, bool) {
	d, err := s.deps.Sessions.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, err)
		return nil, false
	}
	return d, true
}

func (s *Server) getSession(w http.ResponseWriter, r *http.Request) {
	d, ok := s.session(w, r)
	if !ok {
		return
	}
	a := d.Assignment()
	writeJSON(w, http.StatusOK, sessionView{
		SessionID:    d.ID(),
		AssignmentID: a.ID,
		Title:        a.Title,
		Summary:      d.Summary(),
		Turns:        d.Turns(),
		Pending:      d.Pending(),
	})
}

type turnRequest struct {
	Text   string `json:"text"`
	Choice int    `json:"choice"`
}

// replyResponse carries a tutor reply. Retry is set when the tutor
// apologised and the child should send the answer again.
type replyResponse struct {
	play.Reply
	Retry bool `json:"retry,omitempty"`
}

func (s *Server) submitTurn(w http.ResponseWriter, r *http.Request) {
	d, ok := s.session(w, r)
	if !ok {
		return
	}
	var req turnRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	reply, err := d.Submit(r.Context(), play.Input{Text: req.Text, Choice: req.Choice})
	s.writeReply(w, reply, err)
}

func (s *Server) submitVoice(w http.ResponseWriter, r *http.Request) {
	d, ok := s.session(w, r)
	if !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, s.opts.MaxUploadBytes)
	file, header, err := r.FormFile("audio")
	if err != nil {
		s.writeError(w, errors.Join(errBadRequest, err))
		return
	}
	defer file.Close()

	reply, err := d.SubmitVoice(r.Context(), file, header.Filename)
	s.writeReply(w, reply, err)
}

func (s *Server) writeReply(w http.ResponseWriter, reply play.Reply, err error) {
	var genErr *tutor.GenerationError
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, replyResponse{Reply: reply})
	case errors.As(err, &genErr):
		writeJSON(w, http.StatusOK, replyResponse{Reply: reply, Retry: true})
	default:
		s.writeError(w, err)
	}
}
