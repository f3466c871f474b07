package assignment

import (
	"cmp"
	"context"
	"errors"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/abhisek/homeworkpal/internal/quest"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service is the assignment store. Every mutation reads the whole
// document, changes it and writes it back.
type Service struct {
	backend Backend
	logger  *zap.Logger
	now     func() time.Time

	mu sync.Mutex
}

// NewService creates a Service on backend.
func NewService(backend Backend, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{backend: backend, logger: logger, now: time.Now}
}

// ReadOnly reports whether the backend refuses writes.
func (s *Service) ReadOnly() bool {
	return s.backend.ReadOnly()
}

// Create validates in and stores a new assignment with status new.
func (s *Service) Create(ctx context.Context, in CreateInput) (Assignment, error) {
	title := Sanitize(in.Title)
	content := Sanitize(in.Content)

	fields := map[string]string{}
	if title == "" {
		fields["title"] = "must not be empty"
	}
	if content == "" {
		fields["description"] = "must not be empty"
	} else if _, err := quest.Parse(content); err != nil {
		fields["description"] = err.Error()
	}
	if in.Stars < 1 {
		fields["stars"] = "must be at least 1"
	}
	if len(fields) > 0 {
		return Assignment{}, &ValidationError{Fields: fields}
	}

	if s.backend.ReadOnly() {
		return Assignment{}, ErrUnsupported
	}

	id, err := uuid.NewV7()
	if err != nil {
		return Assignment{}, err
	}
	a := Assignment{
		ID:          id.String(),
		Title:       title,
		Description: content,
		CreatedAt:   s.now().UTC(),
		Status:      StatusNew,
		Stars:       in.Stars,
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load(ctx)
	if err != nil {
		return Assignment{}, err
	}
	doc.Assignments = append(doc.Assignments, a)
	if err := s.save(ctx, doc); err != nil {
		return Assignment{}, err
	}

	s.logger.Info("assignment created", zap.String("id", a.ID), zap.Int("stars", a.Stars))
	return a, nil
}

// List returns every assignment, newest first.
func (s *Service) List(ctx context.Context) ([]Assignment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	out := slices.Clone(doc.Assignments)
	slices.SortStableFunc(out, func(a, b Assignment) int {
		return cmp.Compare(b.CreatedAt.UnixNano(), a.CreatedAt.UnixNano())
	})
	return out, nil
}

// Get returns the assignment with id.
func (s *Service) Get(ctx context.Context, id string) (Assignment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load(ctx)
	if err != nil {
		return Assignment{}, err
	}
	i := doc.index(id)
	if i < 0 {
		return Assignment{}, ErrNotFound
	}
	return doc.Assignments[i], nil
}

// SetStatus moves an assignment forward to status. Backward moves and any
// change to a completed assignment are ignored. Persistence failures are
// logged and not returned; only an unknown id is reported.
func (s *Service) SetStatus(ctx context.Context, id string, status Status) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load(ctx)
	if err != nil {
		s.logger.Warn("status update skipped", zap.String("id", id), zap.Error(err))
		return nil
	}
	i := doc.index(id)
	if i < 0 {
		return ErrNotFound
	}

	current := doc.Assignments[i].Status
	if !current.CanMoveTo(status) {
		s.logger.Debug("status unchanged",
			zap.String("id", id), zap.String("from", string(current)), zap.String("to", string(status)))
		return nil
	}

	doc.Assignments[i].Status = status
	if err := s.save(ctx, doc); err != nil {
		s.logger.Warn("status update not persisted",
			zap.String("id", id), zap.String("status", string(status)), zap.Error(err))
	}
	return nil
}

// Delete removes an assignment. Read-only backends return ErrUnsupported.
func (s *Service) Delete(ctx context.Context, id string) error {
	if s.backend.ReadOnly() {
		return ErrUnsupported
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load(ctx)
	if err != nil {
		return err
	}
	i := doc.index(id)
	if i < 0 {
		return ErrNotFound
	}
	doc.Assignments = slices.Delete(doc.Assignments, i, i+1)
	if err := s.save(ctx, doc); err != nil {
		return err
	}

	s.logger.Info("assignment deleted", zap.String("id", id))
	return nil
}

func (s *Service) load(ctx context.Context) (*Document, error) {
	doc, err := s.backend.Load(ctx)
	if err != nil {
		return nil, &PersistenceError{Op: "load", Err: err}
	}
	return doc, nil
}

func (s *Service) save(ctx context.Context, doc *Document) error {
	if err := s.backend.Save(ctx, doc); err != nil {
		if errors.Is(err, ErrUnsupported) {
			return err
		}
		return &PersistenceError{Op: "save", Err: err}
	}
	return nil
}

// Preview is the learning-material excerpt shown on the parent dashboard.
func (a Assignment) Preview(n int) string {
	p := quest.LearningPreview(a.Description)
	if r := []rune(p); len(r) > n {
		return strings.TrimSpace(string(r[:n])) + "..."
	}
	return p
}
