package progress

// User is the single progress record of this installation.
type User struct {
	ID               string
	Name             string
	Email            string
	CurrentLevel     Level
	TotalXP          int
	Streak           int
	CompletedLessons []string
}

func (u *User) clone() *User {
	if u == nil {
		return nil
	}
	c := *u
	c.CompletedLessons = append([]string(nil), u.CompletedLessons...)
	return &c
}

func (u *User) hasCompleted(lessonID string) bool {
	for _, id := range u.CompletedLessons {
		if id == lessonID {
			return true
		}
	}
	return false
}

// Snapshot is an immutable view of the store's state, handed to readers and
// subscribers. LastStudyDate is a local calendar date (2006-01-02), empty
// before the first qualifying activity.
type Snapshot struct {
	User          *User
	Achievements  []Achievement
	LastStudyDate string
}

// UnlockedCount returns how many achievements are unlocked.
func (s Snapshot) UnlockedCount() int {
	n := 0
	for _, a := range s.Achievements {
		if a.Unlocked() {
			n++
		}
	}
	return n
}

// CompletedCount returns how many lessons the user has completed.
func (s Snapshot) CompletedCount() int {
	if s.User == nil {
		return 0
	}
	return len(s.User.CompletedLessons)
}
