package checklist

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"webstories/editor"
	"webstories/types"
)

// Session is the checklist state of one story being edited.
type Session struct {
	ID      string
	StoryID string

	checklist   *Checklist
	registry    Registry
	highlighter *Highlighter
	help        *editor.HelpCenter
	logger      *zap.Logger

	mu      sync.Mutex
	story   *types.Story
	last    *Result
	subs    map[int]func(*Result)
	nextSub int
}

func newSession(id, storyID string, cl *Checklist, reg Registry, logger *zap.Logger) *Session {
	return &Session{
		ID:          id,
		StoryID:     storyID,
		checklist:   cl,
		registry:    reg,
		highlighter: NewHighlighter(),
		help:        editor.NewHelpCenter(editor.DefaultTips),
		logger:      logger.With(zap.String("session", id)),
		subs:        make(map[int]func(*Result)),
	}
}

func (s *Session) Highlighter() *Highlighter      { return s.highlighter }
func (s *Session) HelpCenter() *editor.HelpCenter { return s.help }
func (s *Session) Registry() Registry             { return s.registry }

// Last returns the most recent result, or nil before the first evaluation.
func (s *Session) Last() *Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last
}

// Story returns the last story seen by the session.
func (s *Session) Story() *types.Story {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.story
}

// Evaluate recomputes the checklist for story and notifies subscribers.
func (s *Session) Evaluate(ctx context.Context, story *types.Story) (*Result, error) {
	s.mu.Lock()
	res, err := s.checklist.Evaluate(ctx, s.registry, story)
	if err != nil {
		s.mu.Unlock()
		return nil, err
	}
	s.story = story
	s.last = res
	subs := make([]func(*Result), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	s.mu.Unlock()

	s.logger.Debug("checklist evaluated",
		zap.String("story", res.StoryID),
		zap.Int("count", res.Count),
		zap.Strings("violations", res.Violations))

	for _, fn := range subs {
		fn(res)
	}
	return res, nil
}

// Observe applies a story event. Events carrying a story recompute the
// checklist; media replacements may also open a help center tip. It returns
// the latest result, which is nil if the session has never seen a story.
func (s *Session) Observe(ctx context.Context, ev types.StoryEvent) (*Result, error) {
	if s.help.HandleStoryEvent(ev.Type) {
		s.logger.Debug("help center opened", zap.String("event", string(ev.Type)))
	}
	if ev.Story == nil {
		return s.Last(), nil
	}
	return s.Evaluate(ctx, ev.Story)
}

// Dispatch queues a highlight for the editor.
func (s *Session) Dispatch(h Highlight) error {
	if h.IsZero() {
		return ErrInvalidHighlight
	}
	s.highlighter.SetHighlights(h)
	return nil
}

// OnResult registers fn for every future evaluation.
func (s *Session) OnResult(fn func(*Result)) (cancel func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

// Close drops every registered check of the session.
func (s *Session) Close(ctx context.Context) error {
	if err := s.registry.Clear(ctx); err != nil {
		return fmt.Errorf("failed to clear session %s: %w", s.ID, err)
	}
	return nil
}

// RegistryFactory returns the registry backing a new session.
type RegistryFactory func(sessionID string) Registry

// MemoryRegistries is a RegistryFactory for single-process deployments.
func MemoryRegistries(string) Registry { return NewMemoryRegistry() }

// Sessions tracks open sessions. It is shared by HTTP handlers and the Kafka
// consumer.
type Sessions struct {
	mu        sync.RWMutex
	byID      map[string]*Session
	byStory   map[string]string
	checklist *Checklist
	factory   RegistryFactory
	logger    *zap.Logger
}

func NewSessions(cl *Checklist, factory RegistryFactory, logger *zap.Logger) *Sessions {
	if factory == nil {
		factory = MemoryRegistries
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Sessions{
		byID:      make(map[string]*Session),
		byStory:   make(map[string]string),
		checklist: cl,
		factory:   factory,
		logger:    logger,
	}
}

// Checklist returns the checklist shared by every session.
func (m *Sessions) Checklist() *Checklist { return m.checklist }

// Create opens a new session for storyID, replacing any previous session
// bound to the same story in the story index.
func (m *Sessions) Create(storyID string) *Session {
	m.mu.Lock()
	s := m.openLocked(storyID)
	m.mu.Unlock()

	m.logger.Info("checklist session opened", zap.String("session", s.ID), zap.String("story", storyID))
	return s
}

// openLocked registers a new session. m.mu must be held for writing.
func (m *Sessions) openLocked(storyID string) *Session {
	id := uuid.NewString()
	s := newSession(id, storyID, m.checklist, m.factory(id), m.logger)
	m.byID[id] = s
	if storyID != "" {
		m.byStory[storyID] = id
	}
	return s
}

func (m *Sessions) Get(id string) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.byID[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	return s, nil
}

// ForStory returns the session currently bound to storyID.
func (m *Sessions) ForStory(storyID string) (*Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	id, ok := m.byStory[storyID]
	if !ok {
		return nil, false
	}
	s, ok := m.byID[id]
	return s, ok
}

// GetOrCreate returns the session bound to storyID, opening one if needed.
// Concurrent callers for the same story share one session.
func (m *Sessions) GetOrCreate(storyID string) *Session {
	if s, ok := m.ForStory(storyID); ok {
		return s
	}

	m.mu.Lock()
	if id, ok := m.byStory[storyID]; ok {
		if s, ok := m.byID[id]; ok {
			m.mu.Unlock()
			return s
		}
	}
	s := m.openLocked(storyID)
	m.mu.Unlock()

	m.logger.Info("checklist session opened", zap.String("session", s.ID), zap.String("story", storyID))
	return s
}

// Close removes the session and clears its registry.
func (m *Sessions) Close(ctx context.Context, id string) error {
	m.mu.Lock()
	s, ok := m.byID[id]
	if ok {
		delete(m.byID, id)
		if m.byStory[s.StoryID] == id {
			delete(m.byStory, s.StoryID)
		}
	}
	m.mu.Unlock()
	if !ok {
		return fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	m.logger.Info("checklist session closed", zap.String("session", id))
	return s.Close(ctx)
}

// Observe routes ev to its session: by session id when set, otherwise by
// story id, opening a session for stories not seen before.
func (m *Sessions) Observe(ctx context.Context, ev types.StoryEvent) (*Result, error) {
	var s *Session
	if ev.SessionID != "" {
		var err error
		if s, err = m.Get(ev.SessionID); err != nil {
			return nil, err
		}
	} else {
		s = m.GetOrCreate(ev.StoryID)
	}
	return s.Observe(ctx, ev)
}

// CloseAll closes every open session, returning the joined close errors.
func (m *Sessions) CloseAll(ctx context.Context) error {
	m.mu.RLock()
	ids := make([]string, 0, len(m.byID))
	for id := range m.byID {
		ids = append(ids, id)
	}
	m.mu.RUnlock()

	var errs []error
	for _, id := range ids {
		if err := m.Close(ctx, id); err != nil && !errors.Is(err, ErrSessionNotFound) {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (m *Sessions) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.byID)
}
