package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"beanfmt/internal/driver"
)

// maxRows caps the file list; ledger trees can hold hundreds of files.
const maxRows = 12

type fileState uint8

const (
	stateQueued fileState = iota
	stateReading
	stateFormatting
	stateWriting
	stateFormatted
	stateUnchanged
	stateFailed
)

var stateLabels = [...]string{
	stateQueued:     "queued",
	stateReading:    "reading",
	stateFormatting: "formatting",
	stateWriting:    "writing",
	stateFormatted:  "formatted",
	stateUnchanged:  "unchanged",
	stateFailed:     "error",
}

func (s fileState) String() string { return stateLabels[s] }

func (s fileState) final() bool { return s >= stateFormatted }

func (s fileState) active() bool { return s > stateQueued && !s.final() }

// weight is the share of a file's work done once it reaches s.
func (s fileState) weight() float64 {
	switch s {
	case stateReading:
		return 0.1
	case stateFormatting:
		return 0.4
	case stateWriting:
		return 0.8
	case stateFormatted, stateUnchanged, stateFailed:
		return 1
	}
	return 0
}

type progressModel struct {
	title       string
	events      <-chan driver.Event
	spinner     spinner.Model
	prog        progress.Model
	items       []fileItem
	index       map[string]int
	width       int
	done        bool
	interrupted bool // пользователь закрыл экран до конца прогона
}

type fileItem struct {
	path    string
	state   fileState
	elapsed time.Duration
	err     string
}

type eventMsg driver.Event
type doneMsg struct{}

// NewProgressModel returns a Bubble Tea model that shows how a multi-file
// run advances.
func NewProgressModel(title string, files []string, events <-chan driver.Event) tea.Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))

	prog := progress.New(progress.WithDefaultGradient())
	prog.Width = 76

	items := make([]fileItem, len(files))
	index := make(map[string]int, len(files))
	for i, file := range files {
		items[i] = fileItem{path: file}
		index[file] = i
	}
	return &progressModel{
		title:   title,
		events:  events,
		spinner: sp,
		prog:    prog,
		items:   items,
		index:   index,
		width:   80,
	}
}

// Interrupted reports whether the user quit the progress view before every
// file was processed.
func Interrupted(model tea.Model) bool {
	m, ok := model.(*progressModel)
	return ok && m.interrupted
}

func (m *progressModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.listenForEvent())
}

func (m *progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case eventMsg:
		cmd := m.applyEvent(driver.Event(msg))
		return m, tea.Batch(cmd, m.listenForEvent())
	case doneMsg:
		m.done = true
		return m, tea.Quit
	case spinner.TickMsg:
		if m.done {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			m.interrupted = true
			return m, tea.Quit
		}
		return m, nil
	case tea.WindowSizeMsg:
		if msg.Width > 0 {
			m.width = msg.Width
			m.prog.Width = msg.Width - 4
		}
		return m, nil
	case progress.FrameMsg:
		pm, cmd := m.prog.Update(msg)
		m.prog = pm.(progress.Model)
		return m, cmd
	}
	return m, nil
}

func (m *progressModel) View() string {
	if len(m.items) == 0 {
		return ""
	}
	counts := m.counts()
	finished := counts[stateFormatted] + counts[stateUnchanged] + counts[stateFailed]

	header := fmt.Sprintf("%s (%d/%d)", m.title, finished, len(m.items))
	if m.done {
		header = "done: " + header
	} else {
		header = m.spinner.View() + " " + header
	}

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7")).Render(header))
	b.WriteString("\n")
	fmt.Fprintf(&b, "  %s %d  %s %d  %s %d\n\n",
		styleState(stateFormatted).Render("formatted"), counts[stateFormatted],
		styleState(stateUnchanged).Render("unchanged"), counts[stateUnchanged],
		styleState(stateFailed).Render("errors"), counts[stateFailed])

	nameWidth := max(m.width-12-16, 20)
	rows, hidden := m.visibleRows()
	for _, item := range rows {
		label := styleState(item.state).Render(fmt.Sprintf("%12s", item.state))
		fmt.Fprintf(&b, "  %s %s", label, truncate(item.path, nameWidth))
		if item.state.final() && item.elapsed > 0 {
			fmt.Fprintf(&b, " %s", item.elapsed.Round(time.Millisecond))
		}
		b.WriteString("\n")
		if item.err != "" {
			b.WriteString(styleState(stateFailed).Render("               " + truncate(item.err, nameWidth)))
			b.WriteString("\n")
		}
	}
	if hidden > 0 {
		fmt.Fprintf(&b, "  … %d more\n", hidden)
	}

	b.WriteString("\n")
	if m.done {
		b.WriteString(m.prog.ViewAs(1.0))
	} else {
		b.WriteString(m.prog.View())
	}
	b.WriteString("\n")
	return b.String()
}

// visibleRows picks failed and active files first, then the rest in input
// order, up to maxRows.
func (m *progressModel) visibleRows() (rows []fileItem, hidden int) {
	if len(m.items) <= maxRows {
		return m.items, 0
	}
	picked := make([]bool, len(m.items))
	pick := func(keep func(fileItem) bool) {
		for i, item := range m.items {
			if len(rows) == maxRows {
				return
			}
			if !picked[i] && keep(item) {
				picked[i] = true
				rows = append(rows, item)
			}
		}
	}
	pick(func(it fileItem) bool { return it.state == stateFailed })
	pick(func(it fileItem) bool { return it.state.active() })
	pick(func(fileItem) bool { return true })
	return rows, len(m.items) - len(rows)
}

func (m *progressModel) listenForEvent() tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-m.events
		if !ok {
			return doneMsg{}
		}
		return eventMsg(ev)
	}
}

func (m *progressModel) applyEvent(ev driver.Event) tea.Cmd {
	idx, ok := m.index[ev.File]
	if !ok {
		return nil
	}
	state, ok := stateOf(ev.Stage, ev.Status)
	if !ok {
		return nil
	}
	item := &m.items[idx]
	item.state = state
	if state.final() {
		item.elapsed = ev.Elapsed
	}
	if ev.Err != nil {
		item.err = ev.Err.Error()
	}
	return m.prog.SetPercent(m.percent())
}

func (m *progressModel) counts() [len(stateLabels)]int {
	var c [len(stateLabels)]int
	for _, item := range m.items {
		c[item.state]++
	}
	return c
}

func (m *progressModel) percent() float64 {
	if len(m.items) == 0 {
		return 0
	}
	total := 0.0
	for _, item := range m.items {
		total += item.state.weight()
	}
	return total / float64(len(m.items))
}

func stateOf(stage driver.Stage, status driver.Status) (fileState, bool) {
	switch status {
	case driver.StatusQueued:
		return stateQueued, true
	case driver.StatusDone:
		return stateFormatted, true
	case driver.StatusUnchanged:
		return stateUnchanged, true
	case driver.StatusError:
		return stateFailed, true
	case driver.StatusWorking:
		switch stage {
		case driver.StageRead:
			return stateReading, true
		case driver.StageFormat:
			return stateFormatting, true
		case driver.StageWrite:
			return stateWriting, true
		}
	}
	return 0, false
}

func styleState(s fileState) lipgloss.Style {
	style := lipgloss.NewStyle()
	switch s {
	case stateFormatted:
		return style.Foreground(lipgloss.Color("2"))
	case stateUnchanged:
		return style.Foreground(lipgloss.Color("8"))
	case stateFailed:
		return style.Foreground(lipgloss.Color("1"))
	case stateReading, stateFormatting, stateWriting:
		return style.Foreground(lipgloss.Color("6"))
	default:
		return style.Foreground(lipgloss.Color("7"))
	}
}

func truncate(value string, width int) string {
	if width <= 0 || runewidth.StringWidth(value) <= width {
		return value
	}
	if width <= 3 {
		return runewidth.Truncate(value, width, "")
	}
	// хвост входит в width
	return runewidth.Truncate(value, width, "...")
}
