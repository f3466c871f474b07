package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/abhisek/homeworkpal/internal/assignment"
	"github.com/abhisek/homeworkpal/internal/llm"
	"github.com/abhisek/homeworkpal/internal/narration"
	"github.com/abhisek/homeworkpal/internal/play"
	"github.com/abhisek/homeworkpal/internal/quest"
	"github.com/abhisek/homeworkpal/internal/questgen"
	"github.com/abhisek/homeworkpal/internal/tutor"
	"go.uber.org/zap"
)

type errorBody struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

var errBadRequest = errors.New("bad request")

func statusFor(err error) int {
	var (
		verr    *assignment.ValidationError
		perr    *quest.ParseError
		genErr  *tutor.GenerationError
		design  *questgen.ValidationError
		rate    *llm.ErrRateLimit
		unavail *llm.ErrProviderUnavailable
		invalid *llm.ErrInvalidResponse
		trunc   *llm.ErrMaxTokensExceeded
		blocked *llm.ErrContentBlocked
	)
	switch {
	case errors.As(err, &verr):
		return http.StatusUnprocessableEntity
	case errors.Is(err, assignment.ErrNotFound), errors.Is(err, play.ErrSessionNotFound):
		return http.StatusNotFound
	case errors.Is(err, assignment.ErrUnsupported):
		return http.StatusMethodNotAllowed
	case errors.Is(err, play.ErrVoiceUnavailable), errors.Is(err, narration.ErrDisabled):
		return http.StatusNotImplemented
	case errors.Is(err, play.ErrBusy), errors.Is(err, play.ErrStale), errors.Is(err, tutor.ErrQuestComplete):
		return http.StatusConflict
	case errors.Is(err, errBadRequest), errors.Is(err, play.ErrEmptyInput), errors.Is(err, tutor.ErrEmptyTurn),
		errors.Is(err, tutor.ErrNoContent), errors.Is(err, tutor.ErrInconsistentHistory),
		errors.Is(err, questgen.ErrEmptyGoal), errors.As(err, &perr):
		return http.StatusBadRequest
	case errors.As(err, &genErr), errors.As(err, &design), errors.As(err, &rate),
		errors.As(err, &unavail), errors.As(err, &invalid), errors.As(err, &trunc),
		errors.As(err, &blocked):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	body := errorBody{Error: err.Error()}

	var verr *assignment.ValidationError
	if errors.As(err, &verr) {
		body.Fields = verr.Fields
	}
	if status == http.StatusInternalServerError || status == http.StatusBadGateway {
		s.logger.Error("request failed", zap.Int("status", status), zap.Error(err))
		if status == http.StatusInternalServerError {
			body.Error = "internal error"
		}
	}
	writeJSON(w, status, body)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return errors.Join(errBadRequest, err)
	}
	return nil
}
