package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"todo-screen/model"
	"todo-screen/theme"
)

const (
	listTop          = 3
	inputRows        = 3
	addButtonWidth   = 7
	themeToggleWidth = 8
	cardGap          = 1
	cardChrome       = 2
	controls         = " …  ○"
)

func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "loading..."
	}

	now := m.opts.Now()
	p := m.palette(now)
	viewW := m.viewWidth()

	parts := []string{
		m.renderHeader(viewW, p),
		"",
		m.renderSectionTitle(p),
		lipgloss.NewStyle().Width(viewW).Height(m.vp.Height).Render(m.vp.View()),
		m.renderInput(viewW, p),
		m.renderFooter(viewW, p),
		m.help.View(m.keys),
	}

	return lipgloss.NewStyle().
		Background(theme.Color(p.Background)).
		Foreground(theme.Color(p.Text)).
		Width(viewW).
		Render(strings.Join(parts, "\n"))
}

func (m *Model) palette(now time.Time) theme.Palette {
	return theme.Light().Lerp(theme.Dark(), m.themeTween.Value(now))
}

func (m *Model) viewWidth() int {
	if m.width <= 0 {
		return 1
	}
	if m.width > 1 {
		return m.width - 1
	}
	return m.width
}

func (m *Model) helpRows() int {
	return lipgloss.Height(m.help.View(m.keys))
}

func (m *Model) inputTop() int {
	return listTop + m.vp.Height
}

func (m *Model) resize() {
	m.help.Width = m.viewWidth()
	vpH := m.height - listTop - inputRows - 1 - m.helpRows()
	if vpH < 1 {
		vpH = 1
	}
	m.vp.Width = m.viewWidth()
	m.vp.Height = vpH
	m.input.Width = m.viewWidth() - addButtonWidth - 4
	m.edit.Width = cardTextWidth(m.cardWidth()) - 1
}

func (m *Model) cardWidth() int {
	viewW := m.viewWidth()
	width := viewW * 8 / 10
	if width < 24 {
		width = viewW
	}
	return width
}

// cardTextWidth is the room left for the task text inside a card.
func cardTextWidth(width int) int {
	inner := width - cardChrome - 2
	if inner < 8 {
		inner = 8
	}
	textW := cardTextWidth(width)
	return textW
}

// syncViewport re-renders the list into the viewport and scrolls the
// selected card into view.
func (m *Model) syncViewport() {
	if m.width == 0 || m.height == 0 {
		return
	}
	m.resize()
	now := m.opts.Now()
	p := m.palette(now)
	m.applyInputPalette(p)

	if m.showHistory {
		m.vp.SetContent(m.renderHistory(p))
		m.scrollTo(m.cursor, m.cursor+1)
		return
	}

	m.vp.SetContent(m.renderCards(now, p))
	top := 0
	for i, t := range m.screen.List().Tasks() {
		h := m.cardRows(t.ID, now)
		if i == m.cursor {
			m.scrollTo(top, top+h)
			return
		}
		top += h + cardGap
	}
}

func (m *Model) scrollTo(top, bottom int) {
	if top < m.vp.YOffset {
		m.vp.SetYOffset(top)
		return
	}
	if bottom > m.vp.YOffset+m.vp.Height {
		m.vp.SetYOffset(bottom - m.vp.Height)
	}
}

// cardRows is the rendered height of a card, border included.
func (m *Model) cardRows(id model.TaskID, now time.Time) int {
	return theme.Rows(m.cardUnits(id, now)) + cardChrome
}

// cardAt maps a screen row to the card drawn there.
func (m *Model) cardAt(y int) (model.TaskID, bool) {
	ly := y - listTop
	if ly < 0 || ly >= m.vp.Height {
		return 0, false
	}
	ly += m.vp.YOffset
	now := m.opts.Now()
	top := 0
	for _, t := range m.screen.List().Tasks() {
		h := m.cardRows(t.ID, now)
		if ly >= top && ly < top+h {
			return t.ID, true
		}
		top += h + cardGap
	}
	return 0, false
}

func (m *Model) applyInputPalette(p theme.Palette) {
	m.input.TextStyle = lipgloss.NewStyle().Foreground(theme.Color(p.InputText))
	m.input.PlaceholderStyle = lipgloss.NewStyle().Foreground(theme.Color(p.Placeholder))
	m.edit.TextStyle = lipgloss.NewStyle().Foreground(theme.Color(p.CardText))
}

func (m *Model) renderHeader(width int, p theme.Palette) string {
	title := lipgloss.NewStyle().Bold(true).Foreground(theme.Color(p.Text)).Render("To do List")
	toggle := "☀ light"
	if m.screen.Theme().Dark() {
		toggle = "☾ dark"
	}
	toggle = lipgloss.NewStyle().Foreground(theme.Color(p.Accent)).Width(themeToggleWidth).Align(lipgloss.Right).Render(toggle)
	gap := width - lipgloss.Width(title) - lipgloss.Width(toggle)
	if gap < 1 {
		gap = 1
	}
	return title + strings.Repeat(" ", gap) + toggle
}

func (m *Model) renderSectionTitle(p theme.Palette) string {
	style := lipgloss.NewStyle().Bold(true).Foreground(theme.Color(p.Text))
	if m.showHistory {
		return style.Render(fmt.Sprintf("✔ Completed (%d)", len(m.screen.List().Completed())))
	}
	title := "📋 My Tasks"
	if m.focus == focusTasks {
		title += lipgloss.NewStyle().Foreground(theme.Color(p.Accent)).Render(" *")
	}
	return style.Render(title)
}

func (m *Model) renderCards(now time.Time, p theme.Palette) string {
	tasks := m.screen.List().Tasks()
	if len(tasks) == 0 {
		return lipgloss.NewStyle().Foreground(theme.Color(p.Placeholder)).Render("No tasks yet. Write something below and press enter.")
	}
	viewW := m.viewWidth()
	width := m.cardWidth()

	cards := make([]string, 0, len(tasks))
	for i, t := range tasks {
		rows := theme.Rows(m.cardUnits(t.ID, now))
		card := m.renderCard(t, m.screen.ItemState(t.ID), i == m.cursor, rows, width, p)
		cards = append(cards, lipgloss.PlaceHorizontal(viewW, lipgloss.Center, card))
	}
	return strings.Join(cards, strings.Repeat("\n", cardGap+1))
}

func (m *Model) renderCard(t model.Task, st model.ItemState, selected bool, rows, width int, p theme.Palette) string {
	inner := width - cardChrome - 2
	if inner < 8 {
		inner = 8
	}
	textW := inner - lipgloss.Width(controls)
	if textW < 1 {
		textW = 1
	}

	textStyle := lipgloss.NewStyle().Foreground(theme.Color(p.CardText))
	if selected {
		textStyle = textStyle.Bold(true)
	}

	var text string
	if st.Editing && m.editing && m.editID == t.ID {
		text = m.edit.View()
	} else {
		label := t.Text
		if st.Important {
			label = "⭐ " + label
		}
		text = textStyle.Render(ansi.Truncate(label, textW, "…"))
	}
	pad := textW - lipgloss.Width(text)
	if pad < 0 {
		pad = 0
	}
	ring := lipgloss.NewStyle().Foreground(theme.Color(p.Accent)).Render(controls)
	lines := []string{text + strings.Repeat(" ", pad) + ring}

	if st.Expanded {
		button := lipgloss.NewStyle().
			Background(theme.Color(p.Important)).
			Foreground(lipgloss.Color("#ffffff")).
			Padding(0, 3).
			Render("Important")
		lines = append(lines, "", lipgloss.PlaceHorizontal(inner, lipgloss.Center, button))
	}
	if len(lines) > rows {
		lines = lines[:rows]
	}

	border := theme.Color(p.Card)
	if selected {
		border = theme.Color(p.Accent)
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Background(theme.Color(p.Card)).
		Padding(0, 1).
		Width(width - cardChrome).
		Height(rows).
		Render(strings.Join(lines, "\n"))
}

func (m *Model) renderHistory(p theme.Palette) string {
	done := m.screen.List().Completed()
	if len(done) == 0 {
		return lipgloss.NewStyle().Foreground(theme.Color(p.Placeholder)).Render("Nothing completed yet.")
	}
	lines := make([]string, 0, len(done))
	for i, c := range done {
		cursor := " "
		style := lipgloss.NewStyle().Faint(true)
		if i == m.cursor {
			cursor = "▸"
			style = lipgloss.NewStyle().Bold(true).Foreground(theme.Color(p.Accent))
		}
		label := c.Text
		if c.Important {
			label = "⭐ " + label
		}
		line := fmt.Sprintf("%s ✔ %s (%s)", cursor, label, c.CompletedAt.Local().Format("02/01 15:04"))
		lines = append(lines, style.Render(ansi.Truncate(line, m.viewWidth(), "…")))
	}
	return strings.Join(lines, "\n")
}

func (m *Model) renderInput(width int, p theme.Palette) string {
	boxW := width - addButtonWidth - 1
	if boxW < 10 {
		boxW = 10
	}
	borderColor := theme.Color(p.Input)
	if m.focus == focusInput && !m.editing {
		borderColor = theme.Color(p.Accent)
	}
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(borderColor).
		Background(theme.Color(p.Input)).
		Padding(0, 1).
		Width(boxW - cardChrome).
		Render(m.input.View())
	button := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Color(p.AddButton)).
		Background(theme.Color(p.AddButton)).
		Foreground(lipgloss.Color("#ffffff")).
		Bold(true).
		Width(addButtonWidth - cardChrome).
		Align(lipgloss.Center).
		Render("+")
	return lipgloss.JoinHorizontal(lipgloss.Top, box, " ", button)
}

func (m *Model) renderFooter(width int, p theme.Palette) string {
	left := strings.TrimSpace(m.status)
	if left == "" {
		left = "Ready"
	}
	right := "focus: " + m.focus.String()
	if m.editing {
		right = "editing"
	}

	statusStyle := lipgloss.NewStyle().Foreground(theme.Color(p.Accent))
	if m.statusErr {
		statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	}
	rightStyle := lipgloss.NewStyle().Foreground(theme.Color(p.Placeholder))

	maxLeft := width - lipgloss.Width(right) - 1
	if maxLeft < 8 {
		maxLeft = 8
	}
	left = ansi.Truncate(left, maxLeft, "…")
	padding := width - lipgloss.Width(left) - lipgloss.Width(right)
	if padding < 1 {
		padding = 1
	}
	return statusStyle.Render(left) + strings.Repeat(" ", padding) + rightStyle.Render(right)
}
