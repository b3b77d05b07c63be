package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"sjavac/internal/pipeline"
)

// fileState is where one file stands in the check.
type fileState uint8

const (
	stateQueued fileState = iota
	stateReading
	stateScanning
	stateReplaying
	stateCached
	stateLegal
	stateIllegal
	stateUnreadable
)

type stateInfo struct {
	label  string
	weight float64 // share of the file's work done on entering the state
	color  lipgloss.Color
	final  bool
}

var states = [...]stateInfo{
	stateQueued:     {label: "queued", color: "7"},
	stateReading:    {label: "reading", weight: 0.1, color: "6"},
	stateScanning:   {label: "scanning", weight: 0.4, color: "6"},
	stateReplaying:  {label: "replaying", weight: 0.8, color: "6"},
	stateCached:     {label: "cached", weight: 0.9, color: "6"},
	stateLegal:      {label: "legal", weight: 1, color: "2", final: true},
	stateIllegal:    {label: "illegal", weight: 1, color: "1", final: true},
	stateUnreadable: {label: "unreadable", weight: 1, color: "3", final: true},
}

func (s fileState) String() string { return states[s].label }

// stateFor maps a pipeline event onto a file state. ok is false for events
// that carry no state change.
func stateFor(stage pipeline.Stage, status pipeline.Status) (fileState, bool) {
	switch status {
	case pipeline.StatusQueued:
		return stateQueued, true
	case pipeline.StatusDone:
		return stateLegal, true
	case pipeline.StatusError:
		if stage == pipeline.StageRead {
			return stateUnreadable, true
		}
		return stateIllegal, true
	case pipeline.StatusWorking:
		switch stage {
		case pipeline.StageRead:
			return stateReading, true
		case pipeline.StageScan:
			return stateScanning, true
		case pipeline.StageReplay:
			return stateReplaying, true
		case pipeline.StageCache:
			return stateCached, true
		}
	}
	return 0, false
}

// maxRows caps the file list; longer runs show the most recent files.
const maxRows = 12

type progressModel struct {
	title   string
	events  <-chan pipeline.Event
	spinner spinner.Model
	prog    progress.Model
	paths   []string
	state   []fileState
	index   map[string]int
	touched []int // file indexes in order of their latest event
	width   int
	done    bool
}

type eventMsg pipeline.Event
type doneMsg struct{}

// NewProgressModel returns a Bubble Tea model that renders per-file check
// progress until events is closed.
func NewProgressModel(title string, files []string, events <-chan pipeline.Event) tea.Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))

	prog := progress.New(progress.WithDefaultGradient())
	prog.Width = 76

	m := &progressModel{
		title:   title,
		events:  events,
		spinner: sp,
		prog:    prog,
		paths:   files,
		state:   make([]fileState, len(files)),
		index:   make(map[string]int, len(files)),
		width:   80,
	}
	for i, file := range files {
		m.index[file] = i
	}
	return m
}

func (m *progressModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.listenForEvent())
}

func (m *progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case eventMsg:
		return m, tea.Batch(m.applyEvent(pipeline.Event(msg)), m.listenForEvent())
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
	case tea.WindowSizeMsg:
		if msg.Width > 0 {
			m.width = msg.Width
			m.prog.Width = max(msg.Width-4, 10)
		}
		return m, nil
	case progress.FrameMsg:
		next, cmd := m.prog.Update(msg)
		m.prog = next.(progress.Model)
		return m, cmd
	}
	return m, nil
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

func (m *progressModel) applyEvent(ev pipeline.Event) tea.Cmd {
	idx, known := m.index[ev.File]
	st, ok := stateFor(ev.Stage, ev.Status)
	if !known || !ok {
		return nil
	}
	m.state[idx] = st
	m.touch(idx)
	return m.prog.SetPercent(m.percent())
}

func (m *progressModel) touch(idx int) {
	for i, v := range m.touched {
		if v == idx {
			m.touched = append(m.touched[:i], m.touched[i+1:]...)
			break
		}
	}
	m.touched = append(m.touched, idx)
}

// percent weighs every file by the state it has reached.
func (m *progressModel) percent() float64 {
	if len(m.state) == 0 {
		return 0
	}
	total := 0.0
	for _, st := range m.state {
		total += states[st].weight
	}
	return total / float64(len(m.state))
}

// tally counts files per state.
func (m *progressModel) tally() (finished, illegal, unreadable int) {
	for _, st := range m.state {
		if states[st].final {
			finished++
		}
		switch st {
		case stateIllegal:
			illegal++
		case stateUnreadable:
			unreadable++
		}
	}
	return finished, illegal, unreadable
}

// rows picks the files to list: everything when it fits, otherwise the
// most recently updated ones.
func (m *progressModel) rows() []int {
	if len(m.paths) <= maxRows {
		out := make([]int, len(m.paths))
		for i := range out {
			out[i] = i
		}
		return out
	}
	return m.touched[max(len(m.touched)-maxRows, 0):]
}

func (m *progressModel) View() string {
	if len(m.paths) == 0 {
		return ""
	}
	finished, illegal, unreadable := m.tally()

	header := m.title
	if m.done {
		header = "done: " + header
	} else {
		header = m.spinner.View() + " " + header
	}
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7")).Render(header))
	b.WriteString("\n\n")

	const statusWidth = 12
	nameWidth := max(m.width-statusWidth-4, 20)
	rows := m.rows()
	for _, idx := range rows {
		info := states[m.state[idx]]
		status := lipgloss.NewStyle().Foreground(info.color).Render(fmt.Sprintf("%*s", statusWidth, info.label))
		fmt.Fprintf(&b, "  %s %s\n", status, truncate(m.paths[idx], nameWidth))
	}
	if hidden := len(m.paths) - len(rows); hidden > 0 {
		fmt.Fprintf(&b, "  %*s %d more\n", statusWidth, "…", hidden)
	}

	fmt.Fprintf(&b, "\n%d/%d checked", finished, len(m.paths))
	if illegal > 0 {
		fmt.Fprintf(&b, ", %d illegal", illegal)
	}
	if unreadable > 0 {
		fmt.Fprintf(&b, ", %d unreadable", unreadable)
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

func truncate(value string, width int) string {
	switch {
	case width <= 0 || runewidth.StringWidth(value) <= width:
		return value
	case width <= 3:
		return runewidth.Truncate(value, width, "")
	}
	return runewidth.Truncate(value, width-3, "...")
}
