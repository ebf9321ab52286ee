// Copyright 2026 The Taskdeck Authors
// SPDX-License-Identifier: Apache-2.0

package taskui

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/taskdeck/taskdeck/lib/api"
	"github.com/taskdeck/taskdeck/lib/session"
	"github.com/taskdeck/taskdeck/lib/tasks"
)

// Deps are the collaborators the UI operates on. All are required except
// Timeout, which defaults to 30 seconds.
type Deps struct {
	Sessions *session.Controller
	Sync     *tasks.Synchronizer
	Client   *api.Client
	Timeout  time.Duration
}

// Model is the root bubbletea model. It owns the navigation stack and
// delegates each message to the active screen.
type Model struct {
	sessions *session.Controller
	sync     *tasks.Synchronizer
	client   *api.Client
	timeout  time.Duration

	theme   Theme
	keys    KeyMap
	spinner spinner.Model

	width  int
	height int

	screen Screen
	stack  []Screen

	login  loginModel
	signup signupModel
	home   homeModel
	list   listModel
	form   formModel
	detail detailModel

	// notice is the transient status-bar message; noticeSeq invalidates
	// fade ticks from superseded notices.
	notice    string
	noticeErr bool
	noticeSeq int
}

// New builds the UI model. The starting screen follows the session
// controller's state: home when a stored session was restored, login
// otherwise.
func New(deps Deps) Model {
	theme := DefaultTheme

	sp := spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(lipgloss.NewStyle().Foreground(theme.StatusInProgress)),
	)

	timeout := deps.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	model := Model{
		sessions: deps.Sessions,
		sync:     deps.Sync,
		client:   deps.Client,
		timeout:  timeout,
		theme:    theme,
		keys:     DefaultKeyMap(),
		spinner:  sp,
		login:    newLoginModel(),
		signup:   newSignupModel(),
		home:     newHomeModel(),
		form:     newFormModel(),
	}
	model.screen = InitialScreen(deps.Sessions.State())
	return model
}

// Messages produced by commands. Each carries everything its handler
// needs; handlers never reach back into the command's closure state.
type (
	loginResultMsg struct {
		token string
		err   error
	}
	signupResultMsg struct {
		message string
		err     error
	}
	refreshedMsg struct {
		err error
	}
	taskSavedMsg struct {
		task    tasks.Task
		editing bool
		err     error
	}
	taskDeletedMsg struct {
		id  string
		err error
	}
	noticeFadeMsg struct {
		seq int
	}
)

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case spinner.TickMsg:
		if !m.busy() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case noticeFadeMsg:
		if msg.seq == m.noticeSeq {
			m.notice = ""
		}
		return m, nil

	case loginResultMsg:
		cmd := m.handleLoginResult(msg)
		return m, cmd

	case signupResultMsg:
		cmd := m.handleSignupResult(msg)
		return m, cmd

	case refreshedMsg:
		cmd := m.handleRefreshed(msg)
		return m, cmd

	case taskSavedMsg:
		cmd := m.handleTaskSaved(msg)
		return m, cmd

	case taskDeletedMsg:
		cmd := m.handleTaskDeleted(msg)
		return m, cmd

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.ForceQuit) {
			return m, tea.Quit
		}
		var cmd tea.Cmd
		switch m.screen {
		case ScreenLogin:
			cmd = m.updateLogin(msg)
		case ScreenSignup:
			cmd = m.updateSignup(msg)
		case ScreenHome:
			cmd = m.updateHome(msg)
		case ScreenTaskList:
			cmd = m.updateTaskList(msg)
		case ScreenTaskForm:
			cmd = m.updateTaskForm(msg)
		case ScreenTaskDetails:
			cmd = m.updateTaskDetails(msg)
		}
		return m, cmd
	}
	return m, nil
}

func (m Model) View() string {
	var body string
	switch m.screen {
	case ScreenLogin:
		body = m.viewLogin()
	case ScreenSignup:
		body = m.viewSignup()
	case ScreenHome:
		body = m.viewHome()
	case ScreenTaskList:
		body = m.viewTaskList()
	case ScreenTaskForm:
		body = m.viewTaskForm()
	case ScreenTaskDetails:
		body = m.viewTaskDetails()
	}
	return lipgloss.JoinVertical(lipgloss.Left, m.viewHeader(), body, m.viewStatusBar())
}

func (m *Model) viewHeader() string {
	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(m.theme.HeaderForeground).
		Render("taskdeck")

	faint := lipgloss.NewStyle().Foreground(m.theme.FaintText)
	line := title + faint.Render("  "+m.screen.String())

	if active, ok := m.sessions.Current(); ok {
		line += faint.Render("  ·  " + active.DisplayName)
	}
	if m.sync.Mode() == tasks.ViewSampleOverlay {
		banner := lipgloss.NewStyle().
			Bold(true).
			Foreground(m.theme.OverlayBanner).
			Render("  [SAMPLE — read-only]")
		line += banner
	}
	return line + "\n"
}

func (m *Model) viewStatusBar() string {
	if m.notice == "" {
		return ""
	}
	color := m.theme.NoticeInfo
	if m.noticeErr {
		color = m.theme.NoticeError
	}
	return "\n" + lipgloss.NewStyle().Foreground(color).Render(m.notice)
}

func (m *Model) helpLine(entries ...string) string {
	style := lipgloss.NewStyle().Foreground(m.theme.HelpText)
	line := ""
	for i, entry := range entries {
		if i > 0 {
			line += "  ·  "
		}
		line += entry
	}
	return "\n" + style.Render(line)
}

// busy reports whether any screen has an operation in flight, which
// keeps the spinner ticking.
func (m *Model) busy() bool {
	return m.login.busy || m.signup.busy || m.list.refreshing || m.list.deleting || m.form.busy
}

// setNotice replaces the status-bar message and schedules its fade.
func (m *Model) setNotice(text string, isError bool) tea.Cmd {
	m.notice = text
	m.noticeErr = isError
	m.noticeSeq++
	seq := m.noticeSeq
	return tea.Tick(4*time.Second, func(time.Time) tea.Msg {
		return noticeFadeMsg{seq: seq}
	})
}

// navigate pushes the current screen onto the history stack and shows
// the target.
func (m *Model) navigate(target Screen) {
	m.stack = append(m.stack, m.screen)
	m.screen = target
}

// back pops the history stack. The stack is reset on every session
// transition, so popped entries are always reachable in the current
// state.
func (m *Model) back() {
	if len(m.stack) == 0 {
		return
	}
	m.screen = m.stack[len(m.stack)-1]
	m.stack = m.stack[:len(m.stack)-1]
}

// resetTo clears the history stack and shows the target. Used on login
// and logout so that back-navigation can never cross the session
// boundary.
func (m *Model) resetTo(target Screen) {
	m.stack = nil
	m.screen = target
}

// refreshCmd fetches the task collection in the background. Backend
// calls are not tied to screen lifetime: navigating away does not
// cancel them.
func (m *Model) refreshCmd() tea.Cmd {
	sync := m.sync
	timeout := m.timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		return refreshedMsg{err: sync.Refresh(ctx)}
	}
}

// startRefresh marks the list busy and returns the batched fetch and
// spinner commands.
func (m *Model) startRefresh() tea.Cmd {
	m.list.refreshing = true
	return tea.Batch(m.refreshCmd(), m.spinner.Tick)
}

// handleRefreshed applies a completed fetch. A late result after
// navigating away still lands in the snapshot; the error is only shown
// if the list is visible.
func (m *Model) handleRefreshed(msg refreshedMsg) tea.Cmd {
	m.list.refreshing = false
	m.list.items = m.sync.Tasks()
	m.list.clampCursor()
	if msg.err != nil && m.screen == ScreenTaskList {
		return m.setNotice("Could not load tasks: "+userMessage(msg.err), true)
	}
	return nil
}

// userMessage extracts the text worth showing a person from an error:
// the server's own message when there is one, a generic network line
// otherwise.
func userMessage(err error) string {
	var serverError *api.Error
	if errors.As(err, &serverError) {
		return serverError.Message
	}
	var validation *tasks.ValidationError
	if errors.As(err, &validation) {
		return "All fields are required"
	}
	if errors.Is(err, session.ErrTokenDecode) {
		return "the server returned an unusable session token"
	}
	return "network error, please try again"
}
