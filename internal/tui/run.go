package tui

import (
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"parliamo/internal/session"
)

// RunLesson drives an interactive lesson session to completion (or abandon).
func RunLesson(sess *session.Session, out io.Writer) error {
	m := newLessonModel(sess)
	p := tea.NewProgram(m, tea.WithOutput(out))
	_, err := p.Run()
	return err
}
