// Package tui is the interactive terminal view over the task store.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"todo/internal/output"
	"todo/internal/service"
	"todo/internal/store"
)

// Form messages.
const (
	MsgTitleRequired = "Title is required"
	MsgCreateRetry   = "Failed to create task. Please try again."
	MsgUpdateRetry   = "Failed to update task. Please try again."
)

type mode int

const (
	modeList mode = iota
	modeAdd
	modeEdit
	modeConfirmDelete
)

type op int

const (
	opFetch op = iota
	opCreate
	opUpdate
	opColor
	opToggle
	opDelete
	opClearError
)

// stateMsg carries a store snapshot published to subscribers.
type stateMsg store.State

// actionMsg reports the outcome of a store action run as a command.
type actionMsg struct {
	op  op
	err error
}

// Model is the bubbletea model for the task list.
type Model struct {
	ctx          context.Context
	st           *store.Store
	defaultColor service.Color

	state  store.State
	cursor int
	mode   mode

	input      textinput.Model
	color      service.Color
	editID     int
	formErr    string
	submitting bool

	pendingDel service.Task
}

// New creates a model showing the store's current state.
func New(ctx context.Context, st *store.Store, defaultColor service.Color) Model {
	ti := textinput.New()
	ti.Placeholder = "What needs to be done?"
	ti.CharLimit = 256
	ti.Width = 40

	if !defaultColor.Valid() {
		defaultColor = service.DefaultColor
	}

	m := Model{
		ctx:          ctx,
		st:           st,
		defaultColor: defaultColor,
		input:        ti,
		color:        defaultColor,
		mode:         modeList,
	}
	m.setState(st.Snapshot())
	return m
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m *Model) setState(s store.State) {
	m.state = s
	m.cursor = clampCursor(m.cursor, len(s.Tasks))
}

func (m Model) selected() (service.Task, bool) {
	if len(m.state.Tasks) == 0 {
		return service.Task{}, false
	}
	return m.state.Tasks[clampCursor(m.cursor, len(m.state.Tasks))], true
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case stateMsg:
		m.setState(store.State(msg))
		return m, nil
	case actionMsg:
		return m.handleAction(msg)
	case tea.WindowSizeMsg:
		if msg.Width > 10 {
			m.input.Width = msg.Width - 10
		}
		return m, nil
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		switch m.mode {
		case modeAdd, modeEdit:
			return m.updateForm(msg)
		case modeConfirmDelete:
			return m.updateDeleteConfirm(msg.String())
		default:
			return m.updateListMode(msg.String())
		}
	}
	return m, nil
}

func (m Model) handleAction(msg actionMsg) (tea.Model, tea.Cmd) {
	m.setState(m.st.Snapshot())

	switch msg.op {
	case opCreate:
		if m.mode != modeAdd || !m.submitting {
			return m, nil
		}
		m.submitting = false
		if msg.err != nil {
			m.formErr = MsgCreateRetry
			return m, nil
		}
		m.closeForm()
		m.cursor = 0
	case opUpdate:
		// Only the form's own submit resolves the form
		if m.mode != modeEdit || !m.submitting {
			return m, nil
		}
		m.submitting = false
		if msg.err != nil {
			m.formErr = MsgUpdateRetry
			return m, nil
		}
		m.closeForm()
	}
	return m, nil
}

func (m Model) updateListMode(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "q":
		return m, tea.Quit
	case "j", "down":
		m.cursor = clampCursor(m.cursor+1, len(m.state.Tasks))
	case "k", "up":
		m.cursor = clampCursor(m.cursor-1, len(m.state.Tasks))
	case " ", "enter":
		task, ok := m.selected()
		if !ok {
			return m, nil
		}
		return m, m.run(opToggle, func(ctx context.Context) error {
			_, err := m.st.Toggle(ctx, task.ID, !task.Completed)
			return err
		})
	case "a":
		cmd := m.openForm(modeAdd, service.Task{})
		return m, cmd
	case "e":
		task, ok := m.selected()
		if !ok {
			return m, nil
		}
		cmd := m.openForm(modeEdit, task)
		return m, cmd
	case "c":
		task, ok := m.selected()
		if !ok {
			return m, nil
		}
		next := task.Color.Next()
		return m, m.run(opColor, func(ctx context.Context) error {
			_, err := m.st.Update(ctx, task.ID, service.UpdateTaskRequest{Color: &next})
			return err
		})
	case "d":
		task, ok := m.selected()
		if !ok {
			return m, nil
		}
		m.pendingDel = task
		m.mode = modeConfirmDelete
	case "r":
		return m, m.run(opFetch, func(ctx context.Context) error {
			m.st.FetchAll(ctx)
			return nil
		})
	case "x", "esc":
		if m.state.Error == "" {
			return m, nil
		}
		// ClearError notifies subscribers, which must not happen inside Update.
		return m, m.run(opClearError, func(context.Context) error {
			m.st.ClearError()
			return nil
		})
	}
	return m, nil
}

func (m Model) updateDeleteConfirm(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "y", "Y":
		id := m.pendingDel.ID
		m.pendingDel = service.Task{}
		m.mode = modeList
		return m, m.run(opDelete, func(ctx context.Context) error {
			return m.st.Remove(ctx, id)
		})
	case "n", "N", "esc", "q":
		m.pendingDel = service.Task{}
		m.mode = modeList
	}
	return m, nil
}

func (m *Model) openForm(md mode, task service.Task) tea.Cmd {
	m.mode = md
	m.formErr = ""
	m.submitting = false
	if md == modeEdit {
		m.editID = task.ID
		m.input.SetValue(task.Title)
		m.color = task.Color.OrGray()
	} else {
		m.editID = 0
		m.input.SetValue("")
		m.color = m.defaultColor
	}
	m.input.CursorEnd()
	return m.input.Focus()
}

func (m *Model) closeForm() {
	m.mode = modeList
	m.formErr = ""
	m.editID = 0
	m.input.Reset()
	m.input.Blur()
	m.color = m.defaultColor
}

func (m Model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.closeForm()
		return m, nil
	case "tab":
		m.color = m.color.Next()
		return m, nil
	case "shift+tab":
		m.color = prevColor(m.color)
		return m, nil
	case "enter":
		return m.submitForm()
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) submitForm() (tea.Model, tea.Cmd) {
	if m.submitting {
		return m, nil
	}
	title := strings.TrimSpace(m.input.Value())
	if title == "" {
		m.formErr = MsgTitleRequired
		return m, nil
	}
	m.formErr = ""
	m.submitting = true

	color := m.color
	if m.mode == modeAdd {
		return m, m.run(opCreate, func(ctx context.Context) error {
			_, err := m.st.Create(ctx, service.CreateTaskRequest{Title: title, Color: color})
			return err
		})
	}

	id := m.editID
	return m, m.run(opUpdate, func(ctx context.Context) error {
		_, err := m.st.Update(ctx, id, service.UpdateTaskRequest{Title: &title, Color: &color})
		return err
	})
}

// run wraps a store action as a command. Store actions publish state to
// subscribers, so they always run off the update loop.
func (m Model) run(o op, action func(context.Context) error) tea.Cmd {
	ctx := m.ctx
	return func() tea.Msg {
		return actionMsg{op: o, err: action(ctx)}
	}
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Todo List"))
	b.WriteString("\n")
	b.WriteString(statsStyle.Render(output.Stats(len(m.state.Tasks), m.state.CompletedCount())))
	b.WriteString("\n\n")

	if m.state.Error != "" {
		b.WriteString(errorStyle.Render("Error: " + m.state.Error))
		b.WriteString(helpStyle.Render("  (x to dismiss)"))
		b.WriteString("\n\n")
	}

	switch m.mode {
	case modeAdd, modeEdit:
		b.WriteString(m.renderForm())
	default:
		b.WriteString(m.renderTaskList())
	}

	b.WriteString("\n")
	switch m.mode {
	case modeConfirmDelete:
		b.WriteString(fmt.Sprintf("Delete %q? y/n\n", output.NormalizeTitle(m.pendingDel.Title)))
	case modeAdd, modeEdit:
		b.WriteString(helpStyle.Render("enter: save • tab: color • esc: cancel"))
		b.WriteString("\n")
	default:
		b.WriteString(helpStyle.Render("j/k: move • space: toggle • a: add • e: edit • c: color • d: delete • r: refresh • q: quit"))
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) renderTaskList() string {
	if m.state.Loading && len(m.state.Tasks) == 0 {
		return "Loading...\n"
	}
	if len(m.state.Tasks) == 0 {
		return output.EmptyHint + "\n"
	}

	var b strings.Builder
	for i, task := range m.state.Tasks {
		prefix := "  "
		if i == m.cursor {
			prefix = "> "
		}
		check := "[ ]"
		title := output.NormalizeTitle(task.Title)
		if task.Completed {
			check = "[x]"
			title = doneStyle.Render(title)
		}
		b.WriteString(fmt.Sprintf("%s%s %s %s\n", prefix, check, dot(task.Color), title))
	}
	return b.String()
}

func (m Model) renderForm() string {
	var b strings.Builder
	if m.mode == modeEdit {
		b.WriteString(fmt.Sprintf("Edit task #%d\n", m.editID))
	} else {
		b.WriteString("New task\n")
	}
	b.WriteString(m.input.View())
	b.WriteString("\n")

	b.WriteString("Color: ")
	for _, c := range service.Palette {
		if c == m.color {
			b.WriteString("[" + dot(c) + " " + output.ColorName(c) + "] ")
		} else {
			b.WriteString(dot(c) + " ")
		}
	}
	b.WriteString("\n")

	if m.formErr != "" {
		b.WriteString(errorStyle.Render(m.formErr))
		b.WriteString("\n")
	}
	return b.String()
}

func prevColor(c service.Color) service.Color {
	for i, p := range service.Palette {
		if c == p {
			return service.Palette[(i-1+len(service.Palette))%len(service.Palette)]
		}
	}
	return service.Palette[len(service.Palette)-1]
}

func clampCursor(cur, n int) int {
	if n <= 0 {
		return 0
	}
	if cur < 0 {
		return 0
	}
	if cur >= n {
		return n - 1
	}
	return cur
}
