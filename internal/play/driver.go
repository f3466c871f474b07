package play

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/abhisek/homeworkpal/internal/assignment"
	"github.com/abhisek/homeworkpal/internal/llm"
	"github.com/abhisek/homeworkpal/internal/quest"
	"github.com/abhisek/homeworkpal/internal/store"
	"github.com/abhisek/homeworkpal/internal/tutor"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Deps are the collaborators shared by every driver.
type Deps struct {
	Tutor       Responder
	Assignments Assignments

	// Optional.
	Story    Storyteller
	Voice    Voice
	Sessions store.SessionRepo
	Logger   *zap.Logger
}

func (d Deps) logger() *zap.Logger {
	if d.Logger == nil {
		return zap.NewNop()
	}
	return d.Logger
}

// Driver runs one session. It allows a single turn in flight; every
// method is safe for concurrent use.
type Driver struct {
	deps Deps
	log  *zap.Logger

	id         string
	assignment assignment.Assignment
	content    *quest.Content
	createdAt  time.Time

	mu        sync.Mutex
	progress  tutor.Progress
	turns     []tutor.Turn
	tally     int
	pending   bool
	gen       uint64
	notified  bool
	persisted int

	saveMu sync.Mutex
}

// Start begins a new session on an assignment: it marks the assignment in
// progress, tells the story and produces the learning turn.
func Start(ctx context.Context, deps Deps, assignmentID string) (*Driver, Reply, error) {
	a, err := deps.Assignments.Get(ctx, assignmentID)
	if err != nil {
		return nil, Reply{}, err
	}
	content, err := quest.Parse(a.Description)
	if err != nil {
		return nil, Reply{}, fmt.Errorf("assignment %s: %w", a.ID, err)
	}

	d := newDriver(deps, uuid.NewString(), a, content, time.Now().UTC())
	d.log.Info("session started")
	ctx = llm.WithSession(ctx, d.id)

	if err := deps.Assignments.SetStatus(ctx, a.ID, assignment.StatusInProgress); err != nil {
		d.log.Warn("could not mark assignment in progress", zap.Error(err))
	}

	var intro string
	if deps.Story != nil {
		intro = deps.Story.Tell(ctx, a.Title, a.Description).Story
	}

	res, err := deps.Tutor.Respond(ctx, tutor.Request{
		Content: content,
		Stars:   a.Stars,
		Intro:   intro,
	})
	if err != nil {
		return nil, Reply{}, err
	}

	d.mu.Lock()
	d.apply(res.Turn, res.Progress)
	reply := d.replyLocked(res.Turn)
	d.mu.Unlock()

	reply.Audio = d.narrate(ctx, res.Turn)
	d.persist(ctx)
	return d, reply, nil
}

// Resume rebuilds a session from the store.
func Resume(ctx context.Context, deps Deps, sessionID string) (*Driver, error) {
	if deps.Sessions == nil {
		return nil, ErrSessionNotFound
	}
	rec, err := deps.Sessions.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, ErrSessionNotFound
	}

	a, err := deps.Assignments.Get(ctx, rec.AssignmentID)
	if err != nil {
		return nil, err
	}
	content, err := quest.Parse(a.Description)
	if err != nil {
		return nil, fmt.Errorf("assignment %s: %w", a.ID, err)
	}

	records, err := deps.Sessions.SessionTurns(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	turns := make([]tutor.Turn, 0, len(records))
	for _, r := range records {
		var t tutor.Turn
		if err := json.Unmarshal(r.Body, &t); err != nil {
			return nil, fmt.Errorf("decode turn %d of session %s: %w", r.Position, sessionID, err)
		}
		turns = append(turns, t)
	}

	progress, err := tutor.Replay(content, turns)
	if err != nil {
		return nil, err
	}

	d := newDriver(deps, rec.ID, a, content, rec.CreatedAt)
	d.turns = turns
	d.persisted = len(turns)
	d.progress = progress
	d.tally = progress.StarsEarned
	d.notified = rec.Completed

	if rec.Stage != string(progress.Stage) || rec.Presented != progress.Presented {
		d.log.Warn("stored progress disagrees with conversation, using conversation",
			zap.String("stored_stage", rec.Stage), zap.Int("stored_presented", rec.Presented))
	}
	d.log.Info("session resumed", zap.Int("turns", len(turns)))
	return d, nil
}

func newDriver(deps Deps, id string, a assignment.Assignment, c *quest.Content, createdAt time.Time) *Driver {
	return &Driver{
		deps:       deps,
		log:        deps.logger().With(zap.String("session", id), zap.String("assignment", a.ID)),
		id:         id,
		assignment: a,
		content:    c,
		createdAt:  createdAt,
	}
}

// Submit sends the child's input and returns the tutor's reply.
//
// While a turn is pending further submissions get ErrBusy. A tutor failure
// still returns the apology reply, together with the *tutor.GenerationError.
func (d *Driver) Submit(ctx context.Context, in Input) (Reply, error) {
	d.mu.Lock()
	if d.pending {
		d.mu.Unlock()
		return Reply{}, ErrBusy
	}
	if d.progress.Done() {
		d.mu.Unlock()
		return Reply{}, tutor.ErrQuestComplete
	}
	text := d.resolveLocked(in)
	if text == "" && d.progress.Stage == tutor.StageQuiz {
		d.mu.Unlock()
		return Reply{}, ErrEmptyInput
	}

	d.pending = true
	d.gen++
	gen := d.gen
	req := tutor.Request{
		Content:  d.content,
		Stars:    d.assignment.Stars,
		Progress: d.progress,
		Input:    text,
		History:  append([]tutor.Turn(nil), d.turns...),
	}
	d.mu.Unlock()

	res, err := d.deps.Tutor.Respond(llm.WithSession(ctx, d.id), req)

	d.mu.Lock()
	if d.gen != gen {
		d.mu.Unlock()
		d.log.Debug("dropping stale response")
		return Reply{}, ErrStale
	}
	d.pending = false

	var genErr *tutor.GenerationError
	if err != nil && !errors.As(err, &genErr) {
		d.mu.Unlock()
		return Reply{}, err
	}

	if text != "" {
		d.turns = append(d.turns, tutor.UserTurn(text))
	}
	d.apply(res.Turn, res.Progress)
	reply := d.replyLocked(res.Turn)
	complete := res.Progress.Done() && !d.notified
	if complete {
		d.notified = true
	}
	d.mu.Unlock()

	if complete {
		// The store logs and swallows its own persistence failures.
		if serr := d.deps.Assignments.SetStatus(ctx, d.assignment.ID, assignment.StatusCompleted); serr != nil {
			d.log.Warn("could not mark assignment completed", zap.Error(serr))
		}
		d.log.Info("quest completed", zap.Int("correct", res.Progress.Correct), zap.Int("total", res.Progress.Total))
	}

	reply.Audio = d.narrate(ctx, res.Turn)
	d.persist(ctx)

	if genErr != nil {
		d.log.Warn("tutor failed, apologised", zap.Error(genErr))
		return reply, genErr
	}
	return reply, nil
}

// SubmitVoice transcribes a recorded answer and submits it as text.
func (d *Driver) SubmitVoice(ctx context.Context, audio io.Reader, filename string) (Reply, error) {
	if d.deps.Voice == nil {
		return Reply{}, ErrVoiceUnavailable
	}
	text, err := d.deps.Voice.Transcribe(ctx, audio, filename)
	if err != nil {
		return Reply{}, fmt.Errorf("transcribe answer: %w", err)
	}
	return d.Submit(ctx, Input{Text: text})
}

// Abandon discards a pending turn. Its response, when it arrives, is
// dropped.
func (d *Driver) Abandon() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.pending {
		d.gen++
		d.pending = false
	}
}

// resolveLocked turns an input into the text of the user turn.
func (d *Driver) resolveLocked(in Input) string {
	if in.Choice > 0 && d.progress.Stage == tutor.StageQuiz {
		if item, ok := d.content.Item(d.progress.Presented - 1); ok && in.Choice <= len(item.Options) {
			return item.Options[in.Choice-1]
		}
		return strconv.Itoa(in.Choice)
	}
	return strings.TrimSpace(in.Text)
}

func (d *Driver) apply(turn tutor.Turn, p tutor.Progress) {
	d.turns = append(d.turns, turn)
	d.progress = p
	d.tally += turn.StarsEarned
}

func (d *Driver) replyLocked(turn tutor.Turn) Reply {
	return Reply{
		Turn:     turn,
		Progress: d.progress,
		Tally:    d.tally,
		Done:     d.progress.Done(),
	}
}

func (d *Driver) narrate(ctx context.Context, turn tutor.Turn) string {
	if d.deps.Voice == nil {
		return ""
	}
	return d.deps.Voice.AudioDataURI(ctx, turn.NarrationText())
}

// persist writes progress and any unsaved turns. Failures are logged;
// the next call retries the same turns.
func (d *Driver) persist(ctx context.Context) {
	if d.deps.Sessions == nil {
		return
	}
	d.saveMu.Lock()
	defer d.saveMu.Unlock()

	d.mu.Lock()
	now := time.Now()
	rec := store.SessionRecord{
		ID:           d.id,
		AssignmentID: d.assignment.ID,
		Stage:        string(d.progress.Stage),
		Presented:    d.progress.Presented,
		Correct:      d.progress.Correct,
		StarsEarned:  d.progress.StarsEarned,
		Total:        d.progress.Total,
		Completed:    d.progress.Done(),
		CreatedAt:    d.createdAt,
		UpdatedAt:    now,
	}
	var records []store.TurnRecord
	for i := d.persisted; i < len(d.turns); i++ {
		body, err := json.Marshal(d.turns[i])
		if err != nil {
			d.mu.Unlock()
			d.log.Warn("encode turn", zap.Int("position", i), zap.Error(err))
			return
		}
		records = append(records, store.TurnRecord{
			Position:  i,
			Role:      string(d.turns[i].Role),
			Body:      body,
			Timestamp: now,
		})
	}
	upto := len(d.turns)
	d.mu.Unlock()

	if err := d.deps.Sessions.SaveSession(ctx, rec, records...); err != nil {
		d.log.Warn("session not saved", zap.Error(err))
		return
	}

	d.mu.Lock()
	if upto > d.persisted {
		d.persisted = upto
	}
	d.mu.Unlock()
}

// ID returns the session id.
func (d *Driver) ID() string { return d.id }

// Assignment returns the assignment being played.
func (d *Driver) Assignment() assignment.Assignment { return d.assignment }

// Content returns the parsed quest.
func (d *Driver) Content() *quest.Content { return d.content }

// Turns returns a copy of the conversation so far.
func (d *Driver) Turns() []tutor.Turn {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]tutor.Turn(nil), d.turns...)
}

// Progress returns the current session progress.
func (d *Driver) Progress() tutor.Progress {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.progress
}

// Pending reports whether a turn is in flight.
func (d *Driver) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.pending
}

// Summary returns the completion data for the session.
func (d *Driver) Summary() Summary {
	d.mu.Lock()
	defer d.mu.Unlock()
	return Summary{
		Title:           d.assignment.Title,
		Correct:         d.progress.Correct,
		Total:           d.progress.Total,
		Tally:           d.tally,
		CompletionStars: d.assignment.Stars,
		Done:            d.progress.Done(),
	}
}
