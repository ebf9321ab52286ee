// Copyright 2026 The Taskdeck Authors
// SPDX-License-Identifier: Apache-2.0

package taskui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type loginModel struct {
	email    textinput.Model
	password textinput.Model
	focus    int
	busy     bool
}

func newLoginModel() loginModel {
	email := textinput.New()
	email.Placeholder = "email"
	email.CharLimit = 254
	email.Width = 40
	email.Focus()

	password := textinput.New()
	password.Placeholder = "password"
	password.EchoMode = textinput.EchoPassword
	password.CharLimit = 128
	password.Width = 40

	return loginModel{email: email, password: password}
}

func (l *loginModel) reset() {
	l.email.SetValue("")
	l.password.SetValue("")
	l.password.Blur()
	l.email.Focus()
	l.focus = 0
	l.busy = false
}

func (l *loginModel) focusField(index int) {
	l.focus = index
	if index == 0 {
		l.email.Focus()
		l.password.Blur()
	} else {
		l.email.Blur()
		l.password.Focus()
	}
}

// loginCmd exchanges credentials for a token off the event loop.
func (m *Model) loginCmd(email, password string) tea.Cmd {
	client := m.client
	timeout := m.timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		token, err := client.LoginUser(ctx, email, password)
		return loginResultMsg{token: token, err: err}
	}
}

func (m *Model) updateLogin(msg tea.KeyMsg) tea.Cmd {
	if m.login.busy {
		return nil
	}

	switch {
	case key.Matches(msg, m.keys.SwitchAuth):
		m.signup.reset()
		m.navigate(ScreenSignup)
		return nil

	case key.Matches(msg, m.keys.Back):
		return tea.Quit

	case key.Matches(msg, m.keys.NextField):
		m.login.focusField((m.login.focus + 1) % 2)
		return nil

	case key.Matches(msg, m.keys.PrevField):
		m.login.focusField((m.login.focus + 1) % 2)
		return nil

	case key.Matches(msg, m.keys.Submit):
		email := strings.TrimSpace(m.login.email.Value())
		password := m.login.password.Value()
		if email == "" || password == "" {
			return m.setNotice("Email and password are required", true)
		}
		m.login.busy = true
		return tea.Batch(m.loginCmd(email, password), m.spinner.Tick)
	}

	var cmd tea.Cmd
	if m.login.focus == 0 {
		m.login.email, cmd = m.login.email.Update(msg)
	} else {
		m.login.password, cmd = m.login.password.Update(msg)
	}
	return cmd
}

// handleLoginResult finishes the login flow: a token that decodes
// becomes the active session and the UI jumps to home with cleared
// history; any failure leaves the login screen up with the reason.
func (m *Model) handleLoginResult(msg loginResultMsg) tea.Cmd {
	m.login.busy = false

	if msg.err != nil {
		return m.setNotice("Login failed: "+userMessage(msg.err), true)
	}

	active, err := m.sessions.Login(msg.token)
	if err != nil {
		return m.setNotice("Login failed: "+userMessage(err), true)
	}

	m.login.reset()
	m.resetTo(ScreenHome)
	m.home.cursor = 0
	return m.setNotice("Welcome, "+active.DisplayName, false)
}

func (m *Model) viewLogin() string {
	label := lipgloss.NewStyle().Foreground(m.theme.FaintText)

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Bold(true).Render("Sign in") + "\n\n")
	b.WriteString(label.Render("Email") + "\n")
	b.WriteString(m.login.email.View() + "\n\n")
	b.WriteString(label.Render("Password") + "\n")
	b.WriteString(m.login.password.View() + "\n")

	if m.login.busy {
		b.WriteString("\n" + m.spinner.View() + " signing in...")
	}

	b.WriteString(m.helpLine(
		"enter: sign in",
		"tab: next field",
		"ctrl+n: create account",
		"esc: quit",
	))
	return b.String()
}
