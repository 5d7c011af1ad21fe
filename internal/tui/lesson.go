package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"parliamo/internal/catalog"
	"parliamo/internal/session"
	"parliamo/internal/ui"
)

type phase int

const (
	phaseAnswering phase = iota
	phaseFeedback
	phaseCompleted
)

type lessonModel struct {
	sess *session.Session

	width  int
	height int

	phase    phase
	exercise catalog.Exercise
	index    int
	total    int

	input       string // translation answer being typed
	selected    int    // highlighted option for multiple choice
	lastCorrect bool
	result      *session.Result
	err         error
}

type sessionEventMsg session.Event

func newLessonModel(sess *session.Session) lessonModel {
	ex, idx, total := sess.Current()
	return lessonModel{
		sess:     sess,
		exercise: ex,
		index:    idx,
		total:    total,
	}
}

func (m lessonModel) Init() tea.Cmd {
	return m.waitEvent()
}

func (m lessonModel) waitEvent() tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-m.sess.Events()
		if !ok {
			return nil
		}
		return sessionEventMsg(ev)
	}
}

func (m lessonModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case sessionEventMsg:
		switch msg.Kind {
		case session.EventAdvanced:
			ex, idx, total := m.sess.Current()
			m.phase = phaseAnswering
			m.exercise = ex
			m.index = idx
			m.total = total
			m.input = ""
			m.selected = 0
			return m, m.waitEvent()
		case session.EventCompleted:
			m.phase = phaseCompleted
			m.result = msg.Result
			m.err = msg.Err
			return m, nil
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.sess.Abandon()
			return m, tea.Quit
		}
		switch m.phase {
		case phaseAnswering:
			return m.updateAnswering(msg)
		case phaseCompleted:
			if msg.String() == "enter" || msg.String() == "q" {
				return m, tea.Quit
			}
		}
	}
	return m, nil
}

func (m lessonModel) updateAnswering(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.exercise.Type == catalog.ExerciseMultipleChoice {
		switch msg.String() {
		case "up", "k":
			if m.selected > 0 {
				m.selected--
			}
			return m, nil
		case "down", "j":
			if m.selected < len(m.exercise.Options)-1 {
				m.selected++
			}
			return m, nil
		case "enter":
			return m.submit(m.exercise.Options[m.selected])
		}
		return m, nil
	}

	// Translation: free-typed answer.
	switch msg.String() {
	case "enter":
		if strings.TrimSpace(m.input) == "" {
			return m, nil
		}
		return m.submit(m.input)
	case "backspace":
		if len(m.input) > 0 {
			r := []rune(m.input)
			m.input = string(r[:len(r)-1])
		}
		return m, nil
	default:
		switch msg.Type {
		case tea.KeyRunes:
			m.input += string(msg.Runes)
		case tea.KeySpace:
			m.input += " "
		}
		return m, nil
	}
}

func (m lessonModel) submit(answer string) (tea.Model, tea.Cmd) {
	correct := answersMatch(answer, m.exercise.CorrectAnswer)
	if err := m.sess.SubmitAnswer(correct); err != nil {
		// Pause still running or session gone; ignore the keystroke.
		return m, nil
	}
	m.lastCorrect = correct
	m.phase = phaseFeedback
	return m, nil
}

// answersMatch compares a typed answer leniently: case-insensitive, trimmed,
// inner whitespace collapsed.
func answersMatch(got, want string) bool {
	norm := func(s string) string {
		return strings.ToLower(strings.Join(strings.Fields(s), " "))
	}
	return norm(got) == norm(want)
}

func (m lessonModel) View() string {
	if m.phase == phaseCompleted {
		return m.viewCompleted()
	}

	var b strings.Builder
	b.WriteString(ui.Heading(ui.IconBook, m.sess.Lesson().Title) + "\n")
	b.WriteString(ui.Muted.Render(fmt.Sprintf("Exercise %d of %d", m.index+1, m.total)) + "\n")
	b.WriteString(progressBar(m.index, m.total, 30) + "\n\n")

	b.WriteString(ui.H2.Render(m.exercise.Question) + "\n\n")

	if m.exercise.Type == catalog.ExerciseMultipleChoice {
		for i, opt := range m.exercise.Options {
			cursor := "  "
			line := opt
			if i == m.selected {
				cursor = "> "
				line = ui.SelectedRow.Render(opt)
			}
			b.WriteString(cursor + line + "\n")
		}
		b.WriteString("\n" + ui.Muted.Render("↑/↓ select · enter answer · esc quit") + "\n")
	} else {
		b.WriteString("> " + m.input + "█\n")
		b.WriteString("\n" + ui.Muted.Render("type your answer · enter submit · esc quit") + "\n")
	}

	if m.phase == phaseFeedback {
		b.WriteString("\n")
		if m.lastCorrect {
			b.WriteString(ui.Good.Render(ui.IconDone+" Correct!") + "\n")
		} else {
			b.WriteString(ui.Bad.Render(ui.IconWrong+" Not quite.") + " ")
			b.WriteString("The answer is " + ui.Key.Render(m.exercise.CorrectAnswer) + "\n")
		}
		if m.exercise.Explanation != "" {
			b.WriteString(ui.Muted.Render(ui.IconInfo+" "+m.exercise.Explanation) + "\n")
		}
	}

	return ui.Panel.Render(b.String()) + "\n"
}

func (m lessonModel) viewCompleted() string {
	var b strings.Builder
	b.WriteString(ui.Heading("🎉", "Lesson Complete!") + "\n\n")
	if m.result != nil {
		b.WriteString(ui.Gold.Render(fmt.Sprintf("+%d XP", m.result.AwardedXP)) + "\n")
		b.WriteString(fmt.Sprintf("Correct: %d/%d\n", m.result.CorrectCount, m.result.Total))
		if m.result.Perfect {
			b.WriteString(ui.BadgePerfect + " " + ui.Gold.Render(fmt.Sprintf("%s Bonus +%d XP!", ui.IconSparkle, session.PerfectBonusXP)) + "\n")
		}
	}
	if m.err != nil {
		b.WriteString("\n" + ui.Bad.Render(ui.IconWarn+" progress not saved: "+m.err.Error()) + "\n")
	}
	b.WriteString("\n" + ui.Muted.Render("enter to finish") + "\n")
	return ui.Panel.Render(b.String()) + "\n"
}

func progressBar(value int, total int, width int) string {
	if total <= 0 {
		total = 1
	}
	if width <= 3 {
		width = 3
	}
	if value < 0 {
		value = 0
	}
	if value > total {
		value = total
	}
	ratio := float64(value) / float64(total)
	filled := int(ratio * float64(width))
	if filled > width {
		filled = width
	}
	return "[" + strings.Repeat("#", filled) + strings.Repeat("-", width-filled) + "]"
}
