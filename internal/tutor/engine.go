package tutor

import (
	"context"
	"fmt"
	"strings"

	"github.com/abhisek/homeworkpal/internal/metrics"
	"github.com/abhisek/homeworkpal/internal/quest"
	"go.uber.org/zap"
)

// Engine runs the quest progression: LEARNING, then one QUIZ turn per
// item, then a terminal REWARD turn. It owns every stage transition;
// the Strategy only judges answers.
type Engine struct {
	strategy Strategy
	logger   *zap.Logger
}

// NewEngine creates an Engine.
func NewEngine(strategy Strategy, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{strategy: strategy, logger: logger}
}

// Respond produces the single assistant turn that follows req.Input.
//
// When the strategy fails, Respond returns the apology turn together with
// a *GenerationError; the returned progress equals req.Progress.
func (e *Engine) Respond(ctx context.Context, req Request) (Result, error) {
	if req.Content == nil || req.Content.Len() == 0 {
		return Result{}, ErrNoContent
	}

	p := req.Progress
	p.Total = req.Content.Len()

	var (
		res Result
		err error
	)
	switch p.Stage {
	case "":
		res = e.learning(req, p)
	case StageLearning:
		res = e.startQuiz(req, p)
	case StageQuiz:
		if strings.TrimSpace(req.Input) == "" {
			return Result{}, ErrEmptyTurn
		}
		res, err = e.answer(ctx, req, p)
	case StageReward:
		return Result{}, ErrQuestComplete
	default:
		return Result{}, fmt.Errorf("unknown stage %q", p.Stage)
	}
	if err != nil {
		e.logger.Warn("tutor turn failed", zap.String("stage", string(p.Stage)), zap.Error(err))
		return Result{
			Turn:     Turn{Role: RoleModel, Content: ApologyMessage, Stage: req.Progress.Stage},
			Progress: req.Progress,
		}, &GenerationError{Err: err}
	}

	metrics.ObserveTurn(string(res.Turn.Stage))
	if res.Progress.Done() {
		metrics.QuestCompleted()
	}
	return res, nil
}

func (e *Engine) learning(req Request, p Progress) Result {
	var b strings.Builder
	if intro := strings.TrimSpace(req.Intro); intro != "" {
		b.WriteString(intro)
		b.WriteString("\n\n")
	}
	if req.Content.Learning != "" {
		b.WriteString("First, let's learn something new! Here is our secret knowledge:\n\n")
		b.WriteString(req.Content.Learning)
		b.WriteString("\n\nReady to start the quiz? Let me know!")
	} else {
		b.WriteString("Today's quest jumps straight into the quiz! Ready to start? Let me know!")
	}

	p.Stage = StageLearning
	return Result{
		Turn:     Turn{Role: RoleModel, Content: b.String(), Stage: StageLearning},
		Progress: p,
	}
}

func (e *Engine) startQuiz(req Request, p Progress) Result {
	lead := "Here comes question 1! 🚀"
	if req.Content.Kind == quest.KindMemorization {
		lead = "Let's learn a magic spell! 🎤 Say this line out loud:"
	}

	p.Stage = StageQuiz
	turn := Turn{Role: RoleModel, Content: lead, Stage: StageQuiz}
	e.present(&turn, &p, req.Content)
	return Result{Turn: turn, Progress: p}
}

func (e *Engine) answer(ctx context.Context, req Request, p Progress) (Result, error) {
	idx := p.Presented - 1
	item, ok := req.Content.Item(idx)
	if !ok {
		return Result{}, fmt.Errorf("no presented item at index %d", idx)
	}

	j, err := e.strategy.Judge(ctx, JudgeInput{
		Kind:     req.Content.Kind,
		Item:     item,
		Index:    idx,
		Total:    p.Total,
		Answer:   strings.TrimSpace(req.Input),
		Learning: req.Content.Learning,
		History:  req.History,
	})
	if err != nil {
		return Result{}, err
	}
	metrics.ObserveAnswer(j.Correct)

	turn := Turn{Role: RoleModel, Stage: StageQuiz}
	if j.Correct {
		p.Correct++
		p.StarsEarned++
		turn.StarsEarned = 1
	}

	feedback := strings.TrimSpace(j.Feedback)
	if p.Presented >= p.Total {
		p.Stage = StageReward
		turn.Stage = StageReward
		turn.Content = joinParts(feedback, rewardMessage(req.Content.Kind, p, req.Stars))
		turn.TotalCorrect = p.Correct
		turn.TotalQuestions = p.Total
		turn.CompletionStars = req.Stars
		return Result{Turn: turn, Progress: p}, nil
	}

	lead := fmt.Sprintf("Question %d:", p.Presented+1)
	if req.Content.Kind == quest.KindMemorization {
		lead = "Now for the next line:"
	}
	turn.Content = joinParts(feedback, lead)
	e.present(&turn, &p, req.Content)
	return Result{Turn: turn, Progress: p}, nil
}

// present attaches the next item to turn and advances p past it.
func (e *Engine) present(turn *Turn, p *Progress, c *quest.Content) {
	item, _ := c.Item(p.Presented)
	turn.QuizQuestion = item.Prompt
	if item.IsMultipleChoice() {
		turn.QuizOptions = append([]string(nil), item.Options...)
	}
	p.Presented++
}

func rewardMessage(kind quest.Kind, p Progress, stars int) string {
	head := "Wow! Quest complete!"
	if kind == quest.KindMemorization {
		head = "Wow! You learned the whole thing! Quest complete!"
	}
	return fmt.Sprintf("%s You got %d out of %d right. You earned %d ⭐", head, p.Correct, p.Total, stars)
}

func joinParts(parts ...string) string {
	var out []string
	for _, s := range parts {
		if s != "" {
			out = append(out, s)
		}
	}
	return strings.Join(out, " ")
}
