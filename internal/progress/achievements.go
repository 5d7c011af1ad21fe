package progress

import "time"

// Achievement ids referenced by transaction code.
const (
	AchievementFirstLesson = "first_lesson"
	AchievementStreak3     = "streak_3"
	AchievementStreak7     = "streak_7"
	AchievementStreak30    = "streak_30"
	AchievementXP1000      = "xp_1000"
	AchievementXP5000      = "xp_5000"
	AchievementLevelA2     = "level_a2"
	AchievementLevelB1     = "level_b1"
)

// Achievement is one entry of the fixed catalog. UnlockedAt stays nil until
// the achievement is unlocked; once set it is never cleared except by a full
// progress reset.
type Achievement struct {
	ID          string
	Name        string
	Description string
	Icon        string
	UnlockedAt  *time.Time
}

func (a Achievement) Unlocked() bool { return a.UnlockedAt != nil }

// defaultAchievements is the locked catalog a fresh (or reset) store starts
// from. perfect_5 and all_a1 have no automatic unlock path; they are only
// reachable through UnlockAchievement.
func defaultAchievements() []Achievement {
	return []Achievement{
		{ID: AchievementFirstLesson, Name: "First Step", Description: "Complete your first lesson", Icon: "🎯"},
		{ID: AchievementStreak3, Name: "Consistency", Description: "Keep a 3-day streak", Icon: "🔥"},
		{ID: AchievementStreak7, Name: "Perfect Week", Description: "Keep a 7-day streak", Icon: "⭐"},
		{ID: AchievementStreak30, Name: "Master of Discipline", Description: "Keep a 30-day streak", Icon: "👑"},
		{ID: "perfect_5", Name: "Perfectionist", Description: "Complete 5 lessons with a perfect score", Icon: "💎"},
		{ID: AchievementXP1000, Name: "Explorer", Description: "Earn 1000 XP", Icon: "🏆"},
		{ID: AchievementXP5000, Name: "Dedicated", Description: "Earn 5000 XP", Icon: "🌟"},
		{ID: AchievementLevelA2, Name: "Basics Done", Description: "Reach level A2", Icon: "📚"},
		{ID: AchievementLevelB1, Name: "Intermediate", Description: "Reach level B1", Icon: "🎓"},
		{ID: "all_a1", Name: "A1 Master", Description: "Complete every A1 lesson", Icon: "✨"},
	}
}

// CrossedThreshold reports whether a counter moving from oldValue to
// newValue crossed the given tier. It holds for any increment size, so a
// single grant that jumps past a tier still unlocks it, and a tier already
// at or above threshold never fires again.
func CrossedThreshold(oldValue, newValue, threshold int) bool {
	return newValue >= threshold && oldValue < threshold
}

type xpTier struct {
	threshold int
	id        string
}

func xpTiers() []xpTier {
	return []xpTier{
		{1000, AchievementXP1000},
		{5000, AchievementXP5000},
	}
}

func streakTiers() []xpTier {
	return []xpTier{
		{3, AchievementStreak3},
		{7, AchievementStreak7},
		{30, AchievementStreak30},
	}
}
