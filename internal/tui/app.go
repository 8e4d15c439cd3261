package tui

import (
	"fmt"
	"strings"

	"momentum-cli/internal/prep"
	"momentum-cli/internal/source"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

const minContentWidth = 40

func (m appModel) contentWidth() int {
	w := m.width - 4
	if w < minContentWidth {
		w = minContentWidth
	}
	if w > 100 {
		w = 100
	}
	return w
}

func (m appModel) View() string {
	header := styleTitle().Render("momentum") + "  " + styleMuted().Render(m.screen.String())

	var body string
	switch m.screen {
	case screenLoading:
		body = m.spinner.View() + " Loading session…"
	case screenPrep:
		body = m.viewPrep()
	case screenActive:
		body = m.viewActive()
	case screenReflection:
		body = m.viewReflection()
	case screenAnalysis:
		body = m.viewAnalysis()
	}
	if m.alert != nil {
		body = m.viewAlert()
	}

	footer := m.help.View(m.helpBindings())
	if m.notice != "" {
		footer = styleMuted().Render(m.notice) + "\n" + footer
	}
	return m.zones.Scan(strings.Join([]string{header, body, footer}, "\n\n"))
}

func (m appModel) viewPrep() string {
	p := m.prep
	w := m.contentWidth()
	var b strings.Builder

	b.WriteString(m.goalInput.View())
	b.WriteString("\n")
	if msg := p.GoalValidationError(); msg != "" {
		b.WriteString(lipgloss.NewStyle().Foreground(colorErrorBg).Render(msg))
		b.WriteString("\n")
	}
	b.WriteString(m.timeInput.View())
	b.WriteString("\n\n")

	title := "Before you start"
	if m.focus == focusChecklist {
		title = lipgloss.NewStyle().Foreground(colorAccent).Bold(true).Render(title)
	} else {
		title = styleTitle().Render(title)
	}
	b.WriteString(title)
	if p.IsLoadingChecklist {
		b.WriteString(" " + m.spinner.View())
	}
	b.WriteString("\n")

	for i, s := range p.Slots {
		b.WriteString(m.zones.Mark(slotZoneID(i), renderSlot(s, w)))
		b.WriteString("\n")
	}
	b.WriteString(styleMuted().Render(checklistProgress(p)))
	b.WriteString("\n\n")

	if p.OperationError != "" {
		b.WriteString(styleError().Render(ansi.Truncate(p.OperationError, w, glyphEllipsis())))
		b.WriteString("\n\n")
	}

	label := "Start session"
	if p.IsStarting {
		label = m.spinner.View() + " Starting…"
	}
	b.WriteString(m.zones.Mark(startZoneID, styleButton(p.IsStartButtonEnabled()).Render(label)))
	return b.String()
}

func renderSlot(s prep.Slot, width int) string {
	prefix := fmt.Sprintf("%d ", s.Index+1)
	if s.Item == nil {
		return styleMuted().Render(prefix + glyphEmptySlot())
	}
	box := glyphCheckbox(s.Item.On)
	text := ansi.Truncate(s.Item.Text, width-len(prefix)-ansi.StringWidth(box)-1, glyphEllipsis())
	line := prefix + box + " " + text
	switch {
	case s.IsTransitioning:
		return lipgloss.NewStyle().Foreground(colorSuccess).Strikethrough(true).Render(line)
	case s.IsFadingIn:
		return styleMuted().Render(line)
	case s.Item.On:
		return lipgloss.NewStyle().Foreground(colorSuccess).Render(line)
	}
	return line
}

func checklistProgress(p prep.Model) string {
	done := 0
	for _, it := range p.ChecklistItems {
		if it.On {
			done++
		}
	}
	return fmt.Sprintf("%d of %d ready", done, len(p.ChecklistItems))
}

func (m appModel) viewActive() string {
	if m.session == nil {
		return ""
	}
	sd := m.session
	var b strings.Builder
	b.WriteString(styleTitle().Render(sd.Goal))
	b.WriteString("\n\n")
	b.WriteString(fmt.Sprintf("Elapsed %s of %d minutes", elapsedLabel(sd.StartTime, m.now), sd.TimeExpected))
	b.WriteString("\n\n")
	switch {
	case m.stopping:
		b.WriteString(m.spinner.View() + " Stopping…")
	case m.confirmStop:
		b.WriteString(lipgloss.NewStyle().Bold(true).Render("Stop this session and write a reflection? (y/n)"))
	}
	return b.String()
}

func (m appModel) viewReflection() string {
	var b strings.Builder
	b.WriteString(styleMuted().Render("Reflection saved to " + shortPath(m.reflectionPath)))
	b.WriteString("\n\n")
	style := markdownStyle(m.cfg.TUI.MarkdownStyle, m.cfg.TUI.Theme)
	if md := renderMarkdown(m.reflectionBody, style, m.contentWidth()); md != "" {
		b.WriteString(md)
		b.WriteString("\n\n")
	}
	if m.analyzing {
		b.WriteString(m.spinner.View() + " Analyzing…")
	} else {
		b.WriteString(styleMuted().Render("Press e to write your reflection, then a to analyze it."))
	}
	return b.String()
}

func (m appModel) viewAnalysis() string {
	if m.analysis == nil {
		return ""
	}
	w := m.contentWidth()
	section := func(title, body string) string {
		return styleTitle().Render(title) + "\n" + lipgloss.NewStyle().Width(w).Render(body)
	}
	return strings.Join([]string{
		section("Summary", m.analysis.Summary),
		section("Suggestion", m.analysis.Suggestion),
		section("Reasoning", m.analysis.Reasoning),
	}, "\n\n")
}

func alertHeading(c source.Category) string {
	switch c {
	case source.CategorySourceError:
		return "Source error"
	case source.CategoryInvalidInput:
		return "Invalid input"
	}
	return "Error"
}

func (m appModel) viewAlert() string {
	a := m.alert
	body := lipgloss.NewStyle().Bold(true).Render(alertHeading(a.category)+": "+a.title) + "\n\n" +
		lipgloss.NewStyle().Width(m.contentWidth()-4).Render(a.message)
	return styleBox().BorderForeground(colorErrorBg).Render(body)
}
