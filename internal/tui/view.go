package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rentwheels/rental-admin/internal/editor"
)

const previewWidth = 72

// View implements tea.Model.
func (m Model) View() string {
	if m.showHelp {
		return m.renderHelp()
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n\n")

	if m.askOwner {
		b.WriteString(m.renderOwnerPrompt())
		b.WriteString("\n")
		return b.String()
	}

	st := m.editor.Snapshot()
	b.WriteString(m.renderList(st))

	if st.EditingIndex != editor.NoIndex {
		b.WriteString("\n")
		b.WriteString(m.renderForm(st))
	}

	if toasts := m.renderToasts(); toasts != "" {
		b.WriteString("\n")
		b.WriteString(toasts)
	}

	b.WriteString("\n")
	if st.EditingIndex != editor.NoIndex {
		b.WriteString(m.help.View(formKeys(m.keys)))
	} else {
		b.WriteString(m.help.View(listKeys(m.keys)))
	}
	return b.String()
}

func (m Model) renderHeader() string {
	title := m.styles.Title.Render("FAQ")
	scope := m.styles.Muted.Render(fmt.Sprintf("%s · %s", m.editor.Kind(), orDefault(m.editor.OwnerID(), "-")))

	_, synced := m.feed.snapshot()
	status := "never synced"
	switch {
	case m.loading:
		status = "loading…"
	case !synced.IsZero():
		status = "synced " + synced.Format("15:04:05")
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, title, "  ", scope, "  ", m.styles.Muted.Render(status))
}

func (m Model) renderList(st editor.State) string {
	if len(st.Entries) == 0 {
		if m.loading {
			return m.styles.Muted.Render("Loading FAQs…")
		}
		return m.styles.Muted.Render("No FAQs yet. Press a to add one.")
	}

	var b strings.Builder
	for i, entry := range st.Entries {
		marker := "  "
		lineStyle := m.styles.Text
		if i == m.cursor {
			marker = "▸ "
			lineStyle = m.styles.Selected
		}

		question := orDefault(entry.Question, "(no question)")
		b.WriteString(marker)
		b.WriteString(lineStyle.Render(fmt.Sprintf("%d. %s", i+1, truncate(question, previewWidth))))

		var tags []string
		if i == st.SavingIndex {
			tags = append(tags, m.styles.Warning.Render("saving…"))
		}
		if !entry.Persisted() {
			tags = append(tags, m.styles.Muted.Render("unsaved"))
		}
		if i == st.EditingIndex {
			tags = append(tags, m.styles.Editing.Render("editing"))
		}
		if len(tags) > 0 {
			b.WriteString("  " + strings.Join(tags, " "))
		}
		b.WriteString("\n")

		if answer := firstLine(entry.Answer); answer != "" {
			b.WriteString("     " + m.styles.Muted.Render(truncate(answer, previewWidth)) + "\n")
		}
		if msg, ok := st.Errors[i]; ok {
			b.WriteString("     " + m.styles.Error.Render("! "+msg) + "\n")
		}
	}
	return b.String()
}

func (m Model) renderForm(st editor.State) string {
	label := func(text string, field editor.Field) string {
		if m.field == field {
			return m.styles.Editing.Render(text)
		}
		return m.styles.Label.Render(text)
	}

	var b strings.Builder
	b.WriteString(label("Question", editor.FieldQuestion) + "\n")
	b.WriteString(m.question.View() + "\n\n")
	b.WriteString(label("Answer", editor.FieldAnswer) + "\n")
	b.WriteString(m.answer.View())
	if st.SavingIndex == st.EditingIndex {
		b.WriteString("\n" + m.styles.Warning.Render("saving…"))
	}
	return m.styles.Panel.Render(b.String())
}

func (m Model) renderOwnerPrompt() string {
	body := m.styles.Label.Render("Owner") + "\n" + m.ownerInput.View() + "\n\n" +
		m.styles.Muted.Render("enter to load · esc to cancel")
	return m.styles.Panel.Render(body)
}

func (m Model) renderToasts() string {
	toasts, _ := m.feed.snapshot()
	if len(toasts) == 0 {
		return ""
	}

	lines := make([]string, 0, len(toasts))
	for _, t := range toasts {
		style := m.styles.Info
		switch t.Level {
		case editor.LevelWarning:
			style = m.styles.Warning
		case editor.LevelDestructive:
			style = m.styles.Danger
		}
		line := t.at.Format("15:04:05") + " " + t.Title
		if t.Message != "" {
			line += ": " + t.Message
		}
		lines = append(lines, style.Render(line))
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderHelp() string {
	h := m.help
	h.ShowAll = true
	return m.styles.Title.Render("Keys") + "\n\n" +
		h.View(listKeys(m.keys)) + "\n\n" +
		m.styles.Label.Render("Editing") + "\n" +
		h.View(formKeys(m.keys)) + "\n\n" +
		m.styles.Muted.Render("press any key to close")
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

func firstLine(s string) string {
	line, _, _ := strings.Cut(strings.TrimSpace(s), "\n")
	return line
}
