package catalog

import (
	"errors"
	"fmt"
)

// ErrLessonNotFound is returned when a lesson id does not resolve.
var ErrLessonNotFound = errors.New("lesson not found")

type ExerciseType string

const (
	ExerciseTranslation    ExerciseType = "translation"
	ExerciseMultipleChoice ExerciseType = "multiple_choice"
)

func (t ExerciseType) IsValid() bool {
	switch t {
	case ExerciseTranslation, ExerciseMultipleChoice:
		return true
	default:
		return false
	}
}

// Exercise is a single question within a lesson. Options is only set for
// multiple-choice exercises; Explanation is optional.
type Exercise struct {
	ID            string
	Type          ExerciseType
	Question      string
	CorrectAnswer string
	Options       []string
	Explanation   string
}

// Lesson is an ordered exercise sequence with a base XP reward.
type Lesson struct {
	ID          string
	Title       string
	Description string
	Level       string
	Exercises   []Exercise
	XPReward    int
}

// Catalog is a read-only keyed lesson table.
type Catalog struct {
	lessons []Lesson
	byID    map[string]int
}

// New builds a catalog from the given lessons. Duplicate ids are rejected.
func New(lessons []Lesson) (*Catalog, error) {
	byID := make(map[string]int, len(lessons))
	for i, l := range lessons {
		if l.ID == "" {
			return nil, fmt.Errorf("lesson %d has empty id", i)
		}
		if _, ok := byID[l.ID]; ok {
			return nil, fmt.Errorf("duplicate lesson id: %s", l.ID)
		}
		byID[l.ID] = i
	}
	return &Catalog{lessons: lessons, byID: byID}, nil
}

// Get returns the lesson with the given id, or ErrLessonNotFound.
func (c *Catalog) Get(id string) (Lesson, error) {
	i, ok := c.byID[id]
	if !ok {
		return Lesson{}, fmt.Errorf("%w: %s", ErrLessonNotFound, id)
	}
	return c.lessons[i], nil
}

// List returns all lessons in their declared order.
func (c *Catalog) List() []Lesson {
	out := make([]Lesson, len(c.lessons))
	copy(out, c.lessons)
	return out
}

// ByLevel returns the lessons tagged with the given CEFR level, in order.
func (c *Catalog) ByLevel(level string) []Lesson {
	var out []Lesson
	for _, l := range c.lessons {
		if l.Level == level {
			out = append(out, l)
		}
	}
	return out
}

// Len returns the number of lessons.
func (c *Catalog) Len() int { return len(c.lessons) }
