package tui

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mydehq/vidstamp"
	"github.com/mydehq/vidstamp/internal/cli"
)

type state int

const (
	stateInitial state = iota
	stateScanning
	stateConfirmation
	stateRenaming
	stateFinished
)

var (
	titleStyle = cli.StyleCommand

	subTitleStyle = cli.StyleDim

	infoStyle    = cli.StyleCommand
	successStyle = cli.StyleHeader
	warningStyle = cli.StylePattern
	errorStyle   = cli.StyleError

	actionBarMsgStyle = lipgloss.NewStyle().
				Foreground(lipgloss.AdaptiveColor{Light: "229", Dark: "229"}).
				Background(lipgloss.AdaptiveColor{Light: "57", Dark: "57"}).
				Padding(0, 1)

	actionBarKeyStyle = lipgloss.NewStyle().
				Foreground(lipgloss.AdaptiveColor{Light: "57", Dark: "57"}).
				Background(lipgloss.AdaptiveColor{Light: "229", Dark: "229"}).
				Padding(0, 1).
				Bold(true)
)

type scanDoneMsg struct {
	res *vidstamp.Result
	err error
}

type eventMsg vidstamp.Event

type eventsClosedMsg struct{}

type renameDoneMsg struct {
	res *vidstamp.Result
	err error
}

type undoDoneMsg struct {
	ops []vidstamp.RenameOperation
	err error
}

// row is one line of the operations table
type row struct {
	source string
	target string
	status vidstamp.Status
	note   string
}

type Model struct {
	state    state
	path     string
	opts     []vidstamp.Option
	err      error
	quitting bool

	// Content
	table   table.Model
	rows    []row
	pending int
	result  *vidstamp.Result

	// Logs
	events []string

	width     int
	height    int
	eventChan chan vidstamp.Event

	// Cancels the running rename or undo
	ctx      context.Context
	cancel   context.CancelFunc
	aborting bool
}

// NewModel builds the UI for dir. opts are passed to every plan and rename.
func NewModel(path string, opts ...vidstamp.Option) Model {
	absPath, _ := filepath.Abs(path)

	columns := []table.Column{
		{Title: "Source File", Width: 40},
		{Title: "Target Name", Width: 40},
		{Title: "Status", Width: 10},
	}
	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(10), // dynamically updated
	)
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true).
		Foreground(lipgloss.Color("86"))
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return Model{
		state: stateInitial,
		path:  absPath,
		opts:  opts,
		table: t,
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			// First press stops the running operation between groups
			if m.state == stateRenaming && m.cancel != nil && !m.aborting {
				m.cancel()
				m.aborting = true
				return m, nil
			}
			m.stop()
			m.quitting = true
			return m, tea.Quit

		case "q":
			if m.state == stateInitial || m.state == stateConfirmation || m.state == stateFinished {
				m.quitting = true
				return m, tea.Quit
			}

		case "enter":
			if m.state == stateInitial || m.state == stateFinished {
				m.state = stateScanning
				m.err = nil
				m.result = nil
				m.setRows(nil)
				cmds = append(cmds, m.scanDir())
			} else if m.state == stateConfirmation && m.pending > 0 {
				m.state = stateRenaming
				m.err = nil
				m.events = nil
				m.start()
				cmds = append(cmds, m.runRename(), m.listenForEvents())
			}

		case "u":
			if m.state == stateFinished {
				m.state = stateRenaming
				m.err = nil
				m.events = nil
				m.start()
				cmds = append(cmds, m.runUndo(), m.listenForEvents())
			}

		case "backspace":
			if m.state == stateConfirmation {
				m.state = stateInitial
				return m, nil
			}
		}

	case scanDoneMsg:
		if msg.err != nil {
			m.err = msg.err
			m.state = stateInitial
			return m, nil
		}
		m.result = msg.res
		m.state = stateConfirmation
		m.setRows(msg.res)

	case eventMsg:
		var styledMsg string
		switch msg.Type {
		case vidstamp.EventSuccess:
			styledMsg = successStyle.Render(msg.Message)
		case vidstamp.EventWarning:
			styledMsg = warningStyle.Render(msg.Message)
		case vidstamp.EventError:
			styledMsg = errorStyle.Render(msg.Message)
		default:
			styledMsg = infoStyle.Render(msg.Message)
		}

		m.events = append(m.events, fmt.Sprintf("[%s] %s", msg.Type, styledMsg))
		if len(m.events) > 100 {
			m.events = m.events[len(m.events)-100:]
		}
		return m, m.listenForEvents()

	case eventsClosedMsg:
		return m, nil

	case renameDoneMsg:
		m.stop()
		if msg.res != nil {
			m.result = msg.res
			m.setRows(msg.res)
		}
		m.err = msg.err
		m.state = stateFinished
		return m, nil

	case undoDoneMsg:
		m.stop()
		m.err = msg.err
		if errors.Is(msg.err, vidstamp.ErrNothingToUndo) {
			m.err = nil
		}
		m.state = stateInitial
		m.result = nil
		m.setRows(nil)
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resizeTable()

	case error:
		m.err = msg
		return m, nil
	}

	switch m.state {
	case stateConfirmation, stateFinished, stateRenaming:
		m.table, cmd = m.table.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// start prepares the event channel and context of a rename or undo run.
func (m *Model) start() {
	m.eventChan = make(chan vidstamp.Event, 16)
	m.ctx, m.cancel = context.WithCancel(context.Background())
	m.aborting = false
}

// stop releases the context of the current run.
func (m *Model) stop() {
	if m.cancel != nil {
		m.cancel()
	}
	m.cancel = nil
	m.aborting = false
}

// buildRows flattens a result into table rows and counts pending renames.
func buildRows(res *vidstamp.Result) ([]row, int) {
	if res == nil {
		return nil, 0
	}
	var rows []row
	pending := 0
	add := func(op *vidstamp.RenameOperation) {
		if op.Status == vidstamp.StatusPending {
			pending++
		}
		r := row{source: filepath.Base(op.SourcePath), target: filepath.Base(op.TargetPath), status: op.Status}
		if op.Err != nil {
			r.note = op.Err.Error()
		}
		rows = append(rows, r)
	}

	for i := range res.Normalized {
		add(&res.Normalized[i])
	}
	for _, g := range res.Groups {
		if g.Reason != "" && len(g.Members()) == 0 {
			rows = append(rows, row{source: g.Base, target: "(" + g.Reason + ")", status: vidstamp.StatusSkipped})
			continue
		}
		for _, op := range g.Members() {
			add(op)
		}
	}
	return rows, pending
}

func (m *Model) setRows(res *vidstamp.Result) {
	m.rows, m.pending = buildRows(res)

	var rows []table.Row
	for _, r := range m.rows {
		status := "Pending"
		switch r.status {
		case vidstamp.StatusSuccess:
			status = successStyle.Render("Success")
		case vidstamp.StatusFailed:
			status = errorStyle.Render("Failed")
		case vidstamp.StatusSkipped:
			status = warningStyle.Render("Skipped")
		}
		rows = append(rows, table.Row{r.source, r.target, status})
	}
	m.table.SetRows(rows)
}

func (m *Model) resizeTable() {
	if m.width <= 0 || m.height <= 0 {
		return
	}

	// Calculate widths dynamically for full-width layout
	totalW := m.width - 4 // Padding compensation
	statusW := 10
	flexW := (totalW - statusW) / 2

	if flexW < 10 {
		flexW = 10
	}

	cols := []table.Column{
		{Title: "Source File", Width: flexW},
		{Title: "Target File", Width: flexW},
		{Title: "Status", Width: statusW},
	}
	m.table.SetColumns(cols)

	headerH := 4 // Title + Path + padding
	footerH := 2 // Action bar
	contentH := m.height - headerH - footerH

	if m.state == stateRenaming {
		// Split space between table and logs
		contentH = contentH / 2
	}

	if contentH < 5 {
		contentH = 5
	}

	m.table.SetHeight(contentH - 2) // -2 for table borders
}

func (m Model) scanDir() tea.Cmd {
	return func() tea.Msg {
		res, err := vidstamp.Plan(context.Background(), m.path, m.opts...)
		return scanDoneMsg{res: res, err: err}
	}
}

func (m Model) listenForEvents() tea.Cmd {
	ch := m.eventChan
	return func() tea.Msg {
		e, ok := <-ch
		if !ok {
			return eventsClosedMsg{}
		}
		return eventMsg(e)
	}
}

func (m Model) runRename() tea.Cmd {
	ch, ctx := m.eventChan, m.ctx
	return func() tea.Msg {
		defer close(ch)
		handler := func(e vidstamp.Event) {
			ch <- e
		}
		opts := append(append([]vidstamp.Option{}, m.opts...), vidstamp.WithEvents(handler))
		res, err := vidstamp.Rename(ctx, m.path, opts...)
		return renameDoneMsg{res: res, err: err}
	}
}

func (m Model) runUndo() tea.Cmd {
	ch, ctx := m.eventChan, m.ctx
	return func() tea.Msg {
		defer close(ch)
		handler := func(e vidstamp.Event) {
			ch <- e
		}
		ops, err := vidstamp.Undo(ctx, m.path, vidstamp.WithEvents(handler))
		return undoDoneMsg{ops: ops, err: err}
	}
}

func (m Model) renderActionBar(actions []string) string {
	var rendered []string
	for _, a := range actions {
		parts := strings.SplitN(a, " ", 2)
		if len(parts) == 2 {
			rendered = append(rendered, actionBarKeyStyle.Render(parts[0])+actionBarMsgStyle.Render(parts[1]))
		}
	}
	bar := strings.Join(rendered, lipgloss.NewStyle().Background(lipgloss.Color("57")).Render("  "))

	// Pad the rest of the bar to full width
	padW := m.width - lipgloss.Width(bar)
	if padW < 0 {
		padW = 0
	}
	padding := lipgloss.NewStyle().Background(lipgloss.Color("57")).Render(strings.Repeat(" ", padW))

	return bar + padding
}

func (m Model) View() string {
	if m.quitting {
		return "Bye!\n"
	}

	if m.width <= 0 || m.height <= 0 {
		return "Starting..."
	}

	var s strings.Builder

	header := fmt.Sprintf("%s  %s", titleStyle.Render("VIDSTAMP"), subTitleStyle.Render("DIR: "+m.path))
	s.WriteString(lipgloss.NewStyle().Padding(1, 2).Render(header))
	s.WriteString("\n")

	var contentView string
	var actionBarView string

	switch m.state {
	case stateInitial:
		if m.err != nil {
			contentView = lipgloss.Place(m.width, m.height-6, lipgloss.Center, lipgloss.Center, errorStyle.Render(fmt.Sprintf("Error: %v\n\nPress Enter to try again.", m.err)))
		} else {
			contentView = lipgloss.Place(m.width, m.height-6, lipgloss.Center, lipgloss.Center, "Press Enter to Scan Directory")
		}
		actionBarView = m.renderActionBar([]string{"Enter Scan", "q Quit"})

	case stateScanning:
		contentView = lipgloss.Place(m.width, m.height-6, lipgloss.Center, lipgloss.Center, infoStyle.Render("Reading descriptions and planning renames..."))
		actionBarView = m.renderActionBar([]string{"ctrl+c Quit"})

	case stateConfirmation:
		if m.pending == 0 {
			msg := "No files to rename."
			if len(m.rows) > 0 {
				msg = fmt.Sprintf("No files to rename (%d skipped).", len(m.rows))
			}
			contentView = lipgloss.Place(m.width, m.height-6, lipgloss.Center, lipgloss.Center, msg)
			actionBarView = m.renderActionBar([]string{"Backspace Rescan", "q Quit"})
		} else {
			statStr := subTitleStyle.Render(fmt.Sprintf("%d renames planned.", m.pending))
			contentView = lipgloss.NewStyle().Padding(0, 2).Render(statStr + "\n\n" + m.table.View())
			actionBarView = m.renderActionBar([]string{"Enter Execute Rename", "Backspace Rescan", "↑/↓ Scroll", "q Quit"})
		}

	case stateRenaming:
		statStr := infoStyle.Render("Renaming in progress...")
		if m.aborting {
			statStr = warningStyle.Render("Stopping after the current group...")
		}
		tableView := lipgloss.NewStyle().Padding(0, 2).Render(statStr + "\n\n" + m.table.View())

		logBuilder := strings.Builder{}
		logH := (m.height - 6) / 2
		if logH < 5 {
			logH = 5
		}

		maxLogs := logH - 2
		if maxLogs < 0 {
			maxLogs = 0
		}

		startIdx := 0
		if len(m.events) > maxLogs {
			startIdx = len(m.events) - maxLogs
		}
		logLines := m.events[startIdx:]
		if len(logLines) == 0 {
			logBuilder.WriteString(subTitleStyle.Render("Waiting for events..."))
		} else {
			logBuilder.WriteString(strings.Join(logLines, "\n"))
		}

		logBox := lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1).
			Width(m.width - 6).
			Height(maxLogs + 1).
			Render(titleStyle.Render("Event Logs") + "\n" + logBuilder.String())

		logView := lipgloss.NewStyle().Padding(1, 2).Render(logBox)

		contentView = lipgloss.JoinVertical(lipgloss.Left, tableView, logView)
		if m.aborting {
			actionBarView = m.renderActionBar([]string{"ctrl+c Quit Now"})
		} else {
			actionBarView = m.renderActionBar([]string{"ctrl+c Abort Operation"})
		}

	case stateFinished:
		success, failed := 0, 0
		for _, r := range m.rows {
			switch r.status {
			case vidstamp.StatusSuccess:
				success++
			case vidstamp.StatusFailed:
				failed++
			}
		}

		title := successStyle.Bold(true).Render("COMPLETED")
		border := lipgloss.Color("34")
		if m.err != nil {
			title = errorStyle.Render("STOPPED")
			border = lipgloss.Color("204")
		}
		body := fmt.Sprintf("%s\nRenamed %d files, %d failed.", title, success, failed)
		if m.err != nil {
			body += "\n\n" + subTitleStyle.Render(m.err.Error())
		}
		summary := lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(1, 2).BorderForeground(border).Render(body)

		contentView = lipgloss.Place(m.width, m.height-6, lipgloss.Center, lipgloss.Center, summary)
		actionBarView = m.renderActionBar([]string{"Enter Rescan", "u Undo", "q Quit"})
	}

	s.WriteString(contentView)

	// Force the action bar to the absolute bottom via newlines
	currentLines := strings.Count(s.String(), "\n")
	neededNewLines := (m.height - 2) - currentLines
	if neededNewLines > 0 {
		s.WriteString(strings.Repeat("\n", neededNewLines))
	} else {
		s.WriteString("\n")
	}
	s.WriteString(actionBarView)

	return s.String()
}
