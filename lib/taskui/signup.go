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

type signupModel struct {
	name     textinput.Model
	email    textinput.Model
	password textinput.Model
	focus    int
	busy     bool
}

func newSignupModel() signupModel {
	name := textinput.New()
	name.Placeholder = "name"
	name.CharLimit = 100
	name.Width = 40
	name.Focus()

	email := textinput.New()
	email.Placeholder = "email"
	email.CharLimit = 254
	email.Width = 40

	password := textinput.New()
	password.Placeholder = "password"
	password.EchoMode = textinput.EchoPassword
	password.CharLimit = 128
	password.Width = 40

	return signupModel{name: name, email: email, password: password}
}

func (s *signupModel) reset() {
	s.name.SetValue("")
	s.email.SetValue("")
	s.password.SetValue("")
	s.email.Blur()
	s.password.Blur()
	s.name.Focus()
	s.focus = 0
	s.busy = false
}

func (s *signupModel) fields() []*textinput.Model {
	return []*textinput.Model{&s.name, &s.email, &s.password}
}

func (s *signupModel) focusField(index int) {
	fields := s.fields()
	index = ((index % len(fields)) + len(fields)) % len(fields)
	s.focus = index
	for i, field := range fields {
		if i == index {
			field.Focus()
		} else {
			field.Blur()
		}
	}
}

// signupCmd registers a new account off the event loop. Signing up does
// not sign in: the server only returns a confirmation message.
func (m *Model) signupCmd(name, email, password string) tea.Cmd {
	client := m.client
	timeout := m.timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		message, err := client.Signup(ctx, name, email, password)
		return signupResultMsg{message: message, err: err}
	}
}

func (m *Model) updateSignup(msg tea.KeyMsg) tea.Cmd {
	if m.signup.busy {
		return nil
	}

	switch {
	case key.Matches(msg, m.keys.Back), key.Matches(msg, m.keys.SwitchAuth):
		m.back()
		return nil

	case key.Matches(msg, m.keys.NextField):
		m.signup.focusField(m.signup.focus + 1)
		return nil

	case key.Matches(msg, m.keys.PrevField):
		m.signup.focusField(m.signup.focus - 1)
		return nil

	case key.Matches(msg, m.keys.Submit):
		name := strings.TrimSpace(m.signup.name.Value())
		email := strings.TrimSpace(m.signup.email.Value())
		password := m.signup.password.Value()
		if name == "" || email == "" || password == "" {
			return m.setNotice("Name, email, and password are required", true)
		}
		m.signup.busy = true
		return tea.Batch(m.signupCmd(name, email, password), m.spinner.Tick)
	}

	fields := m.signup.fields()
	var cmd tea.Cmd
	*fields[m.signup.focus], cmd = fields[m.signup.focus].Update(msg)
	return cmd
}

// handleSignupResult routes a completed registration: success sends the
// user to the login screen to sign in with the new account.
func (m *Model) handleSignupResult(msg signupResultMsg) tea.Cmd {
	m.signup.busy = false

	if msg.err != nil {
		return m.setNotice("Signup failed: "+userMessage(msg.err), true)
	}

	m.signup.reset()
	m.resetTo(ScreenLogin)
	m.login.reset()

	message := msg.message
	if message == "" {
		message = "Account created"
	}
	return m.setNotice(message+" — sign in to continue", false)
}

func (m *Model) viewSignup() string {
	label := lipgloss.NewStyle().Foreground(m.theme.FaintText)

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Bold(true).Render("Create account") + "\n\n")
	b.WriteString(label.Render("Name") + "\n")
	b.WriteString(m.signup.name.View() + "\n\n")
	b.WriteString(label.Render("Email") + "\n")
	b.WriteString(m.signup.email.View() + "\n\n")
	b.WriteString(label.Render("Password") + "\n")
	b.WriteString(m.signup.password.View() + "\n")

	if m.signup.busy {
		b.WriteString("\n" + m.spinner.View() + " creating account...")
	}

	b.WriteString(m.helpLine(
		"enter: create account",
		"tab: next field",
		"esc: back to sign in",
	))
	return b.String()
}
