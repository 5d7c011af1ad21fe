package session

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"

	"parliamo/internal/catalog"
)

type recordedCall struct {
	lessonID string
	xp       int
}

// fakeRecorder counts completion transactions.
type fakeRecorder struct {
	mu    sync.Mutex
	calls []recordedCall
}

func (f *fakeRecorder) CompleteLesson(ctx context.Context, lessonID string, xpEarned int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, recordedCall{lessonID: lessonID, xp: xpEarned})
	return nil
}

func (f *fakeRecorder) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	cat, err := catalog.New([]catalog.Lesson{
		{
			ID:       "colors-1",
			Title:    "Colors",
			Level:    "A1",
			XPReward: 20,
			Exercises: []catalog.Exercise{
				{ID: "c1", Type: catalog.ExerciseTranslation, Question: "red", CorrectAnswer: "rosso"},
				{ID: "c2", Type: catalog.ExerciseTranslation, Question: "green", CorrectAnswer: "verde"},
				{ID: "c3", Type: catalog.ExerciseTranslation, Question: "blue", CorrectAnswer: "blu"},
			},
		},
	})
	if err != nil {
		t.Fatalf("build catalog: %v", err)
	}
	return cat
}

func newTestRunner(t *testing.T, rec ProgressRecorder, pause time.Duration) *Runner {
	t.Helper()
	log := logrus.New()
	log.SetOutput(io.Discard)
	return NewRunner(testCatalog(t), rec, WithExplanationPause(pause), WithLogger(log))
}

func waitEvent(t *testing.T, s *Session) Event {
	t.Helper()
	select {
	case ev := <-s.Events():
		return ev
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for session event")
		return Event{}
	}
}

func waitDone(t *testing.T, s *Session) {
	t.Helper()
	select {
	case <-s.Done():
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for session to close")
	}
}

func TestStartUnknownLessonFailsFast(t *testing.T) {
	rec := &fakeRecorder{}
	r := newTestRunner(t, rec, time.Millisecond)

	if _, err := r.Start(context.Background(), "missing"); !errors.Is(err, catalog.ErrLessonNotFound) {
		t.Fatalf("err=%v, want ErrLessonNotFound", err)
	}
	if rec.callCount() != 0 {
		t.Fatalf("no session must mean no transactions")
	}
}

func TestPerfectLessonCompletesExactlyOnce(t *testing.T) {
	rec := &fakeRecorder{}
	r := newTestRunner(t, rec, 5*time.Millisecond)

	s, err := r.Start(context.Background(), "colors-1")
	if err != nil {
		t.Fatalf("start: %v", err)
	}

	for i := 0; i < 3; i++ {
		ex, idx, total := s.Current()
		if idx != i || total != 3 {
			t.Fatalf("position=%d/%d, want %d/3", idx, total, i)
		}
		if ex.ID == "" {
			t.Fatalf("empty exercise at index %d", idx)
		}
		if err := s.SubmitAnswer(true); err != nil {
			t.Fatalf("submit %d: %v", i, err)
		}
		ev := waitEvent(t, s)
		if i < 2 {
			if ev.Kind != EventAdvanced || ev.Index != i+1 {
				t.Fatalf("event=%+v, want advance to %d", ev, i+1)
			}
			continue
		}
		if ev.Kind != EventCompleted {
			t.Fatalf("event=%+v, want completion", ev)
		}
		if ev.Err != nil {
			t.Fatalf("completion err: %v", ev.Err)
		}
		res := ev.Result
		if res.CorrectCount != 3 || !res.Perfect {
			t.Fatalf("result=%+v, want perfect 3/3", res)
		}
		if res.AwardedXP != 20+PerfectBonusXP {
			t.Fatalf("awarded=%d, want %d", res.AwardedXP, 20+PerfectBonusXP)
		}
	}
	waitDone(t, s)

	// The store sees the base reward only, exactly once.
	if rec.callCount() != 1 {
		t.Fatalf("transactions=%d, want 1", rec.callCount())
	}
	if call := rec.calls[0]; call.lessonID != "colors-1" || call.xp != 20 {
		t.Fatalf("transaction=%+v, want {colors-1 20}", call)
	}

	if err := s.SubmitAnswer(true); !errors.Is(err, ErrSessionClosed) {
		t.Fatalf("submit after completion: err=%v, want ErrSessionClosed", err)
	}
}

func TestImperfectLessonSkipsBonus(t *testing.T) {
	rec := &fakeRecorder{}
	r := newTestRunner(t, rec, 5*time.Millisecond)

	s, err := r.Start(context.Background(), "colors-1")
	if err != nil {
		t.Fatalf("start: %v", err)
	}

	answers := []bool{true, false, true}
	var res *Result
	for i, ok := range answers {
		if err := s.SubmitAnswer(ok); err != nil {
			t.Fatalf("submit %d: %v", i, err)
		}
		ev := waitEvent(t, s)
		if ev.Kind == EventCompleted {
			res = ev.Result
		}
	}
	if res == nil {
		t.Fatalf("never completed")
	}
	if res.CorrectCount != 2 || res.Perfect {
		t.Fatalf("result=%+v, want imperfect 2/3", res)
	}
	if res.AwardedXP != 20 {
		t.Fatalf("awarded=%d, want base 20 without bonus", res.AwardedXP)
	}
	if rec.callCount() != 1 || rec.calls[0].xp != 20 {
		t.Fatalf("store must receive the base reward exactly once")
	}
}

func TestSubmitDuringPauseIsRejected(t *testing.T) {
	rec := &fakeRecorder{}
	r := newTestRunner(t, rec, 250*time.Millisecond)

	s, err := r.Start(context.Background(), "colors-1")
	if err != nil {
		t.Fatalf("start: %v", err)
	}

	if err := s.SubmitAnswer(true); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if err := s.SubmitAnswer(true); !errors.Is(err, ErrAnswerPending) {
		t.Fatalf("re-entrant submit: err=%v, want ErrAnswerPending", err)
	}

	ev := waitEvent(t, s)
	if ev.Kind != EventAdvanced || ev.Index != 1 {
		t.Fatalf("event=%+v, want advance to 1", ev)
	}
	// The rejected submission must not have scored.
	if got := s.CorrectCount(); got != 1 {
		t.Fatalf("correctCount=%d, want 1", got)
	}
	s.Abandon()
}

func TestAbandonLeavesStoreUntouched(t *testing.T) {
	rec := &fakeRecorder{}
	r := newTestRunner(t, rec, 5*time.Millisecond)

	s, err := r.Start(context.Background(), "colors-1")
	if err != nil {
		t.Fatalf("start: %v", err)
	}

	if err := s.SubmitAnswer(true); err != nil {
		t.Fatalf("submit: %v", err)
	}
	waitEvent(t, s)

	s.Abandon()
	waitDone(t, s)

	if rec.callCount() != 0 {
		t.Fatalf("abandon must not commit partial progress, got %d transactions", rec.callCount())
	}
	if err := s.SubmitAnswer(true); !errors.Is(err, ErrSessionClosed) {
		t.Fatalf("submit after abandon: err=%v, want ErrSessionClosed", err)
	}
}

func TestAbandonDuringFinalPauseCancelsCompletion(t *testing.T) {
	rec := &fakeRecorder{}
	r := newTestRunner(t, rec, 250*time.Millisecond)

	s, err := r.Start(context.Background(), "colors-1")
	if err != nil {
		t.Fatalf("start: %v", err)
	}

	for i := 0; i < 2; i++ {
		if err := s.SubmitAnswer(true); err != nil {
			t.Fatalf("submit %d: %v", i, err)
		}
		waitEvent(t, s)
	}
	// Final answer submitted, completion pending behind the pause.
	if err := s.SubmitAnswer(true); err != nil {
		t.Fatalf("final submit: %v", err)
	}
	s.Abandon()
	waitDone(t, s)

	time.Sleep(300 * time.Millisecond)
	if rec.callCount() != 0 {
		t.Fatalf("abandon during final pause must cancel the completion transaction")
	}
}

func TestContextCancellationAbandons(t *testing.T) {
	rec := &fakeRecorder{}
	r := newTestRunner(t, rec, 5*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	s, err := r.Start(ctx, "colors-1")
	if err != nil {
		t.Fatalf("start: %v", err)
	}

	cancel()
	waitDone(t, s)

	if rec.callCount() != 0 {
		t.Fatalf("cancelled session must not commit")
	}
	if err := s.SubmitAnswer(true); !errors.Is(err, ErrSessionClosed) {
		t.Fatalf("submit after cancel: err=%v, want ErrSessionClosed", err)
	}
}
