package progress

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"parliamo/internal/storage"
)

const dateLayout = "2006-01-02"

// Store owns the durable user-progress record: user, achievement catalog and
// last-study-date. Transactions are serialized by a mutex so each one reads a
// consistent snapshot and commits as a single visible update; subscribers are
// notified after commit, outside the lock.
type Store struct {
	mu   sync.Mutex
	repo *storage.StateRepo
	log  *logrus.Logger
	now  func() time.Time

	user          *User
	achievements  []Achievement
	lastStudyDate string

	subs []func(Snapshot)
}

type Option func(*Store)

// WithLogger sets the store's logger.
func WithLogger(log *logrus.Logger) Option {
	return func(s *Store) { s.log = log }
}

// WithClock overrides the store's clock. Streak decisions compare local
// calendar dates of this clock.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// NewStore loads the persisted record (if any) and returns a ready store.
func NewStore(ctx context.Context, db *sql.DB, opts ...Option) (*Store, error) {
	s := &Store{
		repo:         storage.NewStateRepo(db),
		log:          logrus.New(),
		now:          time.Now,
		achievements: defaultAchievements(),
	}
	for _, opt := range opts {
		opt(s)
	}

	rec, err := s.repo.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load progress: %w", err)
	}
	if rec != nil {
		s.applyRecord(rec)
	}
	return s, nil
}

// Snapshot returns a consistent copy of the current state.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Subscribe registers fn to be called with a fresh snapshot after every
// committed transaction.
func (s *Store) Subscribe(fn func(Snapshot)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subs = append(s.subs, fn)
}

// InitUser replaces any existing user with a fresh record: zeroed counters,
// level A1, last-study-date set to today. The achievement catalog is left
// alone; only ResetProgress relocks it.
func (s *Store) InitUser(ctx context.Context, name, email string) error {
	return s.runTx(ctx, "init_user", func() (bool, error) {
		s.user = &User{
			ID:           uuid.NewString(),
			Name:         name,
			Email:        email,
			CurrentLevel: LevelA1,
		}
		s.lastStudyDate = s.dateOf(s.now())
		return true, nil
	})
}

// CompleteLesson adds xpEarned to the XP total, records lesson membership
// (idempotently), evaluates first-lesson and XP-tier unlocks, then updates
// the streak. XP accrual is unconditional on call: re-completing a lesson
// re-adds its XP without duplicating membership. No-op when no user exists.
func (s *Store) CompleteLesson(ctx context.Context, lessonID string, xpEarned int) error {
	if lessonID == "" {
		return fmt.Errorf("%w: empty lesson id", ErrInvalidArgument)
	}
	if xpEarned < 0 {
		return fmt.Errorf("%w: negative xp %d", ErrInvalidArgument, xpEarned)
	}

	return s.runTx(ctx, "complete_lesson", func() (bool, error) {
		if s.user == nil {
			s.log.WithField("lesson", lessonID).Debug("complete lesson: no active user")
			return false, nil
		}

		oldXP := s.user.TotalXP
		s.user.TotalXP = oldXP + xpEarned
		if !s.user.hasCompleted(lessonID) {
			s.user.CompletedLessons = append(s.user.CompletedLessons, lessonID)
		}

		if len(s.user.CompletedLessons) == 1 {
			s.unlockLocked(AchievementFirstLesson)
		}
		for _, tier := range xpTiers() {
			if CrossedThreshold(oldXP, s.user.TotalXP, tier.threshold) {
				s.unlockLocked(tier.id)
			}
		}

		s.updateStreakLocked()
		return true, nil
	})
}

// UpdateStreak advances the consecutive-day counter against today's local
// calendar date: same day is a no-op, yesterday increments, anything else
// (including no prior date) resets to one. No-op when no user exists.
func (s *Store) UpdateStreak(ctx context.Context) error {
	return s.runTx(ctx, "update_streak", func() (bool, error) {
		if s.user == nil {
			s.log.Debug("update streak: no active user")
			return false, nil
		}
		return s.updateStreakLocked(), nil
	})
}

// UnlockAchievement unlocks the given achievement if it exists and is still
// locked. Unknown ids and re-unlocks are silent no-ops.
func (s *Store) UnlockAchievement(ctx context.Context, achievementID string) error {
	return s.runTx(ctx, "unlock_achievement", func() (bool, error) {
		return s.unlockLocked(achievementID), nil
	})
}

// UpdateLevel sets the current level unconditionally (regression included)
// and unlocks the A2/B1 level achievements when those exact levels are
// reached. No-op when no user exists.
func (s *Store) UpdateLevel(ctx context.Context, newLevel Level) error {
	if !newLevel.IsValid() {
		return fmt.Errorf("%w: level %q", ErrInvalidArgument, string(newLevel))
	}

	return s.runTx(ctx, "update_level", func() (bool, error) {
		if s.user == nil {
			s.log.WithField("level", newLevel).Debug("update level: no active user")
			return false, nil
		}
		s.user.CurrentLevel = newLevel
		switch newLevel {
		case LevelA2:
			s.unlockLocked(AchievementLevelA2)
		case LevelB1:
			s.unlockLocked(AchievementLevelB1)
		}
		return true, nil
	})
}

// ResetProgress clears the user, relocks every achievement and clears the
// last-study-date. Always succeeds.
func (s *Store) ResetProgress(ctx context.Context) error {
	s.mu.Lock()
	prevUser := s.user
	prevAch := s.achievements
	prevDate := s.lastStudyDate

	s.user = nil
	s.achievements = defaultAchievements()
	s.lastStudyDate = ""

	if err := s.repo.Clear(ctx); err != nil {
		s.user, s.achievements, s.lastStudyDate = prevUser, prevAch, prevDate
		s.mu.Unlock()
		return fmt.Errorf("reset progress: %w", err)
	}
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.log.Info("progress reset")
	s.notify(snap)
	return nil
}

// runTx serializes a mutation, persists it as one update and notifies
// subscribers. When fn reports no change, nothing is written. A failed save
// restores the previous in-memory state so the transaction never partially
// applies.
func (s *Store) runTx(ctx context.Context, name string, fn func() (bool, error)) error {
	s.mu.Lock()
	prevUser := s.user.clone()
	prevAch := append([]Achievement(nil), s.achievements...)
	prevDate := s.lastStudyDate

	changed, err := fn()
	if err != nil {
		s.user, s.achievements, s.lastStudyDate = prevUser, prevAch, prevDate
		s.mu.Unlock()
		return err
	}
	if !changed {
		s.mu.Unlock()
		return nil
	}

	if err := s.repo.Save(ctx, s.recordLocked()); err != nil {
		s.user, s.achievements, s.lastStudyDate = prevUser, prevAch, prevDate
		s.mu.Unlock()
		return fmt.Errorf("%s: %w", name, err)
	}
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.log.WithField("tx", name).Debug("progress transaction committed")
	s.notify(snap)
	return nil
}

// updateStreakLocked applies the three-case streak rule and evaluates the
// streak tiers. Reports whether anything changed.
func (s *Store) updateStreakLocked() bool {
	today := s.dateOf(s.now())
	// InitUser stamps today's date with a zero streak; the first qualifying
	// activity that day must still start the streak at one.
	if s.lastStudyDate == today && s.user.Streak > 0 {
		return false
	}
	yesterday := s.dateOf(s.now().AddDate(0, 0, -1))

	oldStreak := s.user.Streak
	if s.lastStudyDate == yesterday {
		s.user.Streak = oldStreak + 1
	} else {
		s.user.Streak = 1
	}
	s.lastStudyDate = today

	for _, tier := range streakTiers() {
		if CrossedThreshold(oldStreak, s.user.Streak, tier.threshold) {
			s.unlockLocked(tier.id)
		}
	}
	return true
}

// unlockLocked flips an achievement to unlocked exactly once. Unknown ids
// are ignored so a typo in calling code cannot take a transaction down.
func (s *Store) unlockLocked(achievementID string) bool {
	for i := range s.achievements {
		if s.achievements[i].ID != achievementID {
			continue
		}
		if s.achievements[i].Unlocked() {
			return false
		}
		t := s.now()
		s.achievements[i].UnlockedAt = &t
		s.log.WithField("achievement", achievementID).Info("achievement unlocked")
		return true
	}
	s.log.WithField("achievement", achievementID).Debug("unknown achievement id")
	return false
}

func (s *Store) snapshotLocked() Snapshot {
	return Snapshot{
		User:          s.user.clone(),
		Achievements:  append([]Achievement(nil), s.achievements...),
		LastStudyDate: s.lastStudyDate,
	}
}

func (s *Store) notify(snap Snapshot) {
	s.mu.Lock()
	subs := append(([]func(Snapshot))(nil), s.subs...)
	s.mu.Unlock()
	for _, fn := range subs {
		fn(snap)
	}
}

func (s *Store) dateOf(t time.Time) string {
	return t.Format(dateLayout)
}

func (s *Store) recordLocked() *storage.Record {
	rec := &storage.Record{}
	if s.user != nil {
		rec.User = &storage.UserRecord{
			ID:               s.user.ID,
			Name:             s.user.Name,
			Email:            s.user.Email,
			CurrentLevel:     string(s.user.CurrentLevel),
			TotalXP:          s.user.TotalXP,
			Streak:           s.user.Streak,
			CompletedLessons: append([]string(nil), s.user.CompletedLessons...),
		}
	}
	for _, a := range s.achievements {
		rec.Achievements = append(rec.Achievements, storage.AchievementRecord{ID: a.ID, UnlockedAt: a.UnlockedAt})
	}
	if s.lastStudyDate != "" {
		d := s.lastStudyDate
		rec.LastStudyDate = &d
	}
	return rec
}

// applyRecord folds a loaded record onto the default catalog so entries
// added after the record was written come up locked rather than missing.
func (s *Store) applyRecord(rec *storage.Record) {
	if rec.User != nil {
		s.user = &User{
			ID:               rec.User.ID,
			Name:             rec.User.Name,
			Email:            rec.User.Email,
			CurrentLevel:     Level(rec.User.CurrentLevel),
			TotalXP:          rec.User.TotalXP,
			Streak:           rec.User.Streak,
			CompletedLessons: append([]string(nil), rec.User.CompletedLessons...),
		}
	}
	unlocked := make(map[string]*time.Time, len(rec.Achievements))
	for _, a := range rec.Achievements {
		if a.UnlockedAt != nil {
			unlocked[a.ID] = a.UnlockedAt
		}
	}
	for i := range s.achievements {
		if t, ok := unlocked[s.achievements[i].ID]; ok {
			s.achievements[i].UnlockedAt = t
		}
	}
	if rec.LastStudyDate != nil {
		s.lastStudyDate = *rec.LastStudyDate
	}
}
