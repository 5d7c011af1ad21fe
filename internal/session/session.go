// Package session drives a user through one lesson's exercise sequence and
// decides when the lesson is complete.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"parliamo/internal/catalog"
)

// PerfectBonusXP is added to the displayed reward when every exercise was
// answered correctly. It is a presentation value only; the progress store
// receives the lesson's base reward.
const PerfectBonusXP = 50

// DefaultExplanationPause matches the explanation interval of the web client.
const DefaultExplanationPause = 3 * time.Second

var (
	// ErrAnswerPending rejects a submission while the previous exercise's
	// explanation pause is still running.
	ErrAnswerPending = errors.New("answer pending")
	// ErrSessionClosed rejects submissions after completion or abandon.
	ErrSessionClosed = errors.New("session closed")
)

// ProgressRecorder is the slice of the progress store a session needs.
type ProgressRecorder interface {
	CompleteLesson(ctx context.Context, lessonID string, xpEarned int) error
}

// Runner starts lesson sessions against a catalog and a progress recorder.
type Runner struct {
	catalog  *catalog.Catalog
	recorder ProgressRecorder
	pause    time.Duration
	log      *logrus.Logger
}

type Option func(*Runner)

// WithExplanationPause overrides the explanation display interval.
func WithExplanationPause(d time.Duration) Option {
	return func(r *Runner) { r.pause = d }
}

// WithLogger sets the runner's logger.
func WithLogger(log *logrus.Logger) Option {
	return func(r *Runner) { r.log = log }
}

func NewRunner(cat *catalog.Catalog, recorder ProgressRecorder, opts ...Option) *Runner {
	r := &Runner{
		catalog:  cat,
		recorder: recorder,
		pause:    DefaultExplanationPause,
		log:      logrus.New(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// EventKind tags session events.
type EventKind int

const (
	// EventAdvanced fires when the explanation pause elapses and the session
	// moves to the next exercise.
	EventAdvanced EventKind = iota + 1
	// EventCompleted fires exactly once, after the completion transaction.
	EventCompleted
)

// Event is delivered on the session's event channel after each pause.
type Event struct {
	Kind   EventKind
	Index  int     // next exercise index, for EventAdvanced
	Result *Result // set for EventCompleted
	Err    error   // completion transaction error, if any
}

// Result summarizes a finished session. AwardedXP includes the perfect
// bonus and is display-only; the persisted total grows by the base reward.
type Result struct {
	LessonID     string
	CorrectCount int
	Total        int
	Perfect      bool
	AwardedXP    int
}

// Session is a single walk through one lesson. Answers are accepted one at a
// time; each submission opens a fixed explanation pause before the session
// advances. Abandoning leaves the progress store untouched.
type Session struct {
	runner *Runner
	ctx    context.Context
	lesson catalog.Lesson

	mu        sync.Mutex
	index     int
	correct   int
	pending   bool
	timer     *time.Timer
	closed    bool
	completed bool

	events chan Event
	done   chan struct{}
}

// Start begins a session for the given lesson. A missing lesson fails fast
// with catalog.ErrLessonNotFound; no session is created. Cancelling ctx
// abandons the session.
func (r *Runner) Start(ctx context.Context, lessonID string) (*Session, error) {
	lesson, err := r.catalog.Get(lessonID)
	if err != nil {
		return nil, err
	}
	if len(lesson.Exercises) == 0 {
		return nil, fmt.Errorf("lesson %s has no exercises", lesson.ID)
	}

	s := &Session{
		runner: r,
		ctx:    ctx,
		lesson: lesson,
		events: make(chan Event, len(lesson.Exercises)+1),
		done:   make(chan struct{}),
	}

	go func() {
		select {
		case <-ctx.Done():
			s.Abandon()
		case <-s.done:
		}
	}()

	r.log.WithFields(logrus.Fields{"lesson": lesson.ID, "exercises": len(lesson.Exercises)}).
		Debug("lesson session started")
	return s, nil
}

// Lesson returns the lesson being studied.
func (s *Session) Lesson() catalog.Lesson { return s.lesson }

// Current returns the active exercise, its index and the exercise total.
func (s *Session) Current() (catalog.Exercise, int, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lesson.Exercises[s.index], s.index, len(s.lesson.Exercises)
}

// Completed reports whether the session finished its final exercise (as
// opposed to being abandoned).
func (s *Session) Completed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.completed
}

// CorrectCount returns the number of correct answers so far.
func (s *Session) CorrectCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.correct
}

// Events delivers one event per elapsed explanation pause. The channel is
// buffered for the whole lesson, so a slow reader never stalls the session.
func (s *Session) Events() <-chan Event { return s.events }

// Done is closed when the session finishes or is abandoned.
func (s *Session) Done() <-chan struct{} { return s.done }

// SubmitAnswer scores the current exercise and schedules the advance after
// the explanation pause. It is not re-entrant: a submission while a pause is
// running returns ErrAnswerPending.
func (s *Session) SubmitAnswer(correct bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrSessionClosed
	}
	if s.pending {
		return ErrAnswerPending
	}
	if correct {
		s.correct++
	}
	s.pending = true
	s.timer = time.AfterFunc(s.runner.pause, s.advance)
	return nil
}

// Abandon cancels the session. Nothing is committed: a session is either
// completed in full or leaves no trace.
func (s *Session) Abandon() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	if s.timer != nil {
		s.timer.Stop()
	}
	s.mu.Unlock()

	s.runner.log.WithField("lesson", s.lesson.ID).Debug("lesson session abandoned")
	close(s.done)
}

// advance runs when the explanation pause elapses.
func (s *Session) advance() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.pending = false

	if s.index < len(s.lesson.Exercises)-1 {
		s.index++
		next := s.index
		s.mu.Unlock()
		s.events <- Event{Kind: EventAdvanced, Index: next}
		return
	}

	// Final exercise: close the session before the completion transaction so
	// exactly one transaction is ever issued.
	s.closed = true
	s.completed = true
	correct := s.correct
	s.mu.Unlock()

	total := len(s.lesson.Exercises)
	perfect := correct == total
	awarded := s.lesson.XPReward
	if perfect {
		awarded += PerfectBonusXP
	}

	err := s.runner.recorder.CompleteLesson(s.ctx, s.lesson.ID, s.lesson.XPReward)
	if err != nil {
		s.runner.log.WithField("lesson", s.lesson.ID).WithError(err).Error("complete lesson transaction failed")
	}

	s.events <- Event{
		Kind: EventCompleted,
		Result: &Result{
			LessonID:     s.lesson.ID,
			CorrectCount: correct,
			Total:        total,
			Perfect:      perfect,
			AwardedXP:    awarded,
		},
		Err: err,
	}
	close(s.done)
}
