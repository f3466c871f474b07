package quest

import (
	"context"
	"errors"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/homeworkpal/internal/assignment"
	"github.com/abhisek/homeworkpal/internal/play"
	"github.com/abhisek/homeworkpal/internal/router"
	"github.com/abhisek/homeworkpal/internal/screen"
	"github.com/abhisek/homeworkpal/internal/screens/summary"
	"github.com/abhisek/homeworkpal/internal/tutor"
	"github.com/abhisek/homeworkpal/internal/ui/components"
	"github.com/abhisek/homeworkpal/internal/ui/layout"
)

const spinnerInterval = 120 * time.Millisecond

// Starter begins play sessions. *play.Registry implements it.
type Starter interface {
	Start(ctx context.Context, assignmentID string) (*play.Driver, play.Reply, error)
}

// QuestScreen is the chat between the child and the tutor.
type QuestScreen struct {
	sessions   Starter
	assignment assignment.Assignment

	// ctx is cancelled when the child leaves the quest.
	ctx    context.Context
	cancel context.CancelFunc

	driver   *play.Driver
	turns    []tutor.Turn
	progress tutor.Progress
	tally    int
	done     bool

	// pending is set while a turn is with the tutor; input is disabled.
	pending bool
	echo    string
	frame   int

	input  components.TextInput
	choice components.MultiChoice

	notice string
	errMsg string
}

var _ screen.Screen = (*QuestScreen)(nil)
var _ screen.KeyHintProvider = (*QuestScreen)(nil)
var _ screen.TallyProvider = (*QuestScreen)(nil)
var _ screen.Closer = (*QuestScreen)(nil)

// New creates a QuestScreen for a.
func New(sessions Starter, a assignment.Assignment) *QuestScreen {
	ctx, cancel := context.WithCancel(context.Background())
	return &QuestScreen{
		sessions:   sessions,
		assignment: a,
		ctx:        ctx,
		cancel:     cancel,
		input:      components.NewTextInput("Type your answer...", 200),
	}
}

// Close abandons any tutor call still running for this screen.
func (s *QuestScreen) Close() {
	s.cancel()
	if s.driver != nil {
		s.driver.Abandon()
	}
}

func (s *QuestScreen) Init() tea.Cmd {
	s.pending = true
	ctx, sessions, id := s.ctx, s.sessions, s.assignment.ID
	start := func() tea.Msg {
		d, reply, err := sessions.Start(ctx, id)
		return startedMsg{Driver: d, Reply: reply, Err: err}
	}
	return tea.Batch(start, s.input.Init(), tick())
}

func (s *QuestScreen) Title() string {
	return s.assignment.Title
}

func (s *QuestScreen) Tally() int {
	return s.tally
}

func (s *QuestScreen) KeyHints() []layout.KeyHint {
	switch {
	case s.errMsg != "":
		return []layout.KeyHint{{Key: "Esc", Description: "Back"}}
	case s.done:
		return []layout.KeyHint{
			{Key: "Enter", Description: "See my stars"},
			{Key: "Esc", Description: "Back"},
		}
	case s.pending:
		return []layout.KeyHint{{Key: "Esc", Description: "Back"}}
	case s.choiceActive():
		return []layout.KeyHint{
			{Key: "↑↓", Description: "Choose"},
			{Key: "1-4", Description: "Pick"},
			{Key: "Enter", Description: "Answer"},
			{Key: "Esc", Description: "Back"},
		}
	default:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Send"},
			{Key: "Esc", Description: "Back"},
		}
	}
}

func (s *QuestScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case startedMsg:
		s.pending = false
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		s.driver = msg.Driver
		s.apply(msg.Reply)
		return s, nil

	case replyMsg:
		return s.handleReply(msg)

	case spinnerTickMsg:
		if !s.pending {
			return s, nil
		}
		s.frame++
		return s, tick()

	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	if s.acceptsText() {
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *QuestScreen) handleReply(msg replyMsg) (screen.Screen, tea.Cmd) {
	s.pending = false
	s.echo = ""

	var genErr *tutor.GenerationError
	switch {
	case msg.Err == nil:
		s.notice = ""
	case errors.As(msg.Err, &genErr):
		s.notice = "Let's try that again!"
	case errors.Is(msg.Err, play.ErrStale):
		return s, nil
	default:
		s.notice = msg.Err.Error()
		s.choice = components.NewMultiChoice(s.choice.Options)
		return s, nil
	}
	s.apply(msg.Reply)
	return s, nil
}

func (s *QuestScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	if s.errMsg != "" || s.driver == nil || s.pending {
		return s, nil
	}

	if s.done {
		if msg.String() == "enter" {
			sum := s.driver.Summary()
			return s, func() tea.Msg {
				return router.PushScreenMsg{Screen: summary.New(sum)}
			}
		}
		return s, nil
	}

	if s.choiceActive() {
		var cmd tea.Cmd
		s.choice, cmd = s.choice.Update(msg)
		if s.choice.Submitted {
			idx := s.choice.ChosenIndex
			return s, s.submit(play.Input{Choice: idx + 1}, s.choice.Options[idx])
		}
		return s, cmd
	}

	if msg.String() == "enter" {
		text := s.input.Value()
		if text == "" && s.progress.Stage == tutor.StageQuiz {
			s.notice = "Type an answer first!"
			return s, nil
		}
		return s, s.submit(play.Input{Text: text}, text)
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

// submit hands the input to the driver off the UI goroutine.
func (s *QuestScreen) submit(in play.Input, echo string) tea.Cmd {
	s.pending = true
	s.echo = echo
	s.notice = ""
	ctx, d := s.ctx, s.driver
	send := func() tea.Msg {
		reply, err := d.Submit(ctx, in)
		return replyMsg{Reply: reply, Err: err}
	}
	return tea.Batch(send, tick())
}

func (s *QuestScreen) apply(reply play.Reply) {
	s.turns = s.driver.Turns()
	s.progress = reply.Progress
	s.tally = reply.Tally
	s.done = reply.Done
	s.input.Reset()

	t := reply.Turn
	switch {
	case t.Stage == tutor.StageQuiz && len(t.QuizOptions) > 0:
		s.choice = components.NewMultiChoice(t.QuizOptions)
	case t.Stage == tutor.StageQuiz && t.QuizQuestion == "":
		// Apology: the same item is still open.
		s.choice = components.NewMultiChoice(s.choice.Options)
	default:
		s.choice = components.MultiChoice{}
	}
}

func (s *QuestScreen) choiceActive() bool {
	return s.progress.Stage == tutor.StageQuiz && len(s.choice.Options) > 0
}

func (s *QuestScreen) acceptsText() bool {
	return s.driver != nil && !s.pending && !s.done && !s.choiceActive()
}

func tick() tea.Cmd {
	return tea.Tick(spinnerInterval, func(t time.Time) tea.Msg {
		return spinnerTickMsg(t)
	})
}
