package storage

import "time"

// SchemaVersion is the version written with every saved record. Loading a
// record with an older version walks the migrations table; a newer version
// is an error.
const SchemaVersion = 1

// StateKey is the fixed storage key of the single progress record.
const StateKey = "parliamo-user-progress"

// Record is the persisted progress snapshot. It is a plain serialization
// shape; domain rules live in the progress package.
type Record struct {
	User          *UserRecord         `json:"user"`
	Achievements  []AchievementRecord `json:"achievements"`
	LastStudyDate *string             `json:"lastStudyDate"`
}

type UserRecord struct {
	ID               string   `json:"id"`
	Name             string   `json:"name"`
	Email            string   `json:"email"`
	CurrentLevel     string   `json:"currentLevel"`
	TotalXP          int      `json:"totalXP"`
	Streak           int      `json:"streak"`
	CompletedLessons []string `json:"completedLessons"`
}

type AchievementRecord struct {
	ID         string     `json:"id"`
	UnlockedAt *time.Time `json:"unlockedAt,omitempty"`
}

// migrateFunc transforms a payload from one schema version to the next.
type migrateFunc func(payload []byte) ([]byte, error)

// migrations maps an old version to the transform producing old+1.
// Version 1 is the first schema, so the table starts empty.
var migrations = map[int]migrateFunc{}
