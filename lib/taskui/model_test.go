// Copyright 2026 The Taskdeck Authors
// SPDX-License-Identifier: Apache-2.0

package taskui

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/taskdeck/taskdeck/lib/api"
	"github.com/taskdeck/taskdeck/lib/session"
	"github.com/taskdeck/taskdeck/lib/tasks"
)

// fakeBackend is a minimal in-memory task service for driving the UI.
type fakeBackend struct {
	tasks []tasks.Task
}

func (b *fakeBackend) ListTasks(ctx context.Context) ([]tasks.Task, error) {
	snapshot := make([]tasks.Task, len(b.tasks))
	copy(snapshot, b.tasks)
	return snapshot, nil
}

func (b *fakeBackend) CreateTask(ctx context.Context, draft tasks.Draft) (tasks.Task, error) {
	task := tasks.Task{ID: fmt.Sprintf("t-%d", len(b.tasks)+1), Title: draft.Title, Description: draft.Description}
	b.tasks = append(b.tasks, task)
	return task, nil
}

func (b *fakeBackend) UpdateTask(ctx context.Context, id string, draft tasks.Draft) (tasks.Task, error) {
	for i := range b.tasks {
		if b.tasks[i].ID == id {
			b.tasks[i].Title = draft.Title
			return b.tasks[i], nil
		}
	}
	return tasks.Task{}, fmt.Errorf("no task %s", id)
}

func (b *fakeBackend) DeleteTask(ctx context.Context, id string) error {
	for i := range b.tasks {
		if b.tasks[i].ID == id {
			b.tasks = append(b.tasks[:i], b.tasks[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("no task %s", id)
}

func makeToken(t *testing.T, name string) string {
	t.Helper()
	payload, err := json.Marshal(map[string]string{"userId": "u-1", "name": name})
	if err != nil {
		t.Fatalf("marshal claims: %v", err)
	}
	return "h." + base64.RawURLEncoding.EncodeToString(payload) + ".s"
}

// newTestModel builds a UI model over in-memory collaborators. The
// returned backend can be pre-populated before driving Refresh.
func newTestModel(t *testing.T, loggedIn bool) (Model, *fakeBackend, *session.Controller) {
	t.Helper()

	store := &session.MemoryStore{}
	logger := slog.New(slog.DiscardHandler)
	if loggedIn {
		if err := store.Save(makeToken(t, "Ada")); err != nil {
			t.Fatalf("seeding store: %v", err)
		}
	}
	sessions := session.NewController(store, logger)

	backend := &fakeBackend{}
	sync := tasks.NewSynchronizer(backend, sessions)

	client, err := api.NewClient(api.Config{BaseURL: "http://localhost:1", Logger: logger, Tokens: sessions})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}

	model := New(Deps{Sessions: sessions, Sync: sync, Client: client})
	return model, backend, sessions
}

func press(t *testing.T, m Model, keys ...string) Model {
	t.Helper()
	for _, name := range keys {
		var msg tea.KeyMsg
		switch name {
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEscape}
		case "tab":
			msg = tea.KeyMsg{Type: tea.KeyTab}
		case "ctrl+s":
			msg = tea.KeyMsg{Type: tea.KeyCtrlS}
		case "ctrl+n":
			msg = tea.KeyMsg{Type: tea.KeyCtrlN}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(name)}
		}
		updated, _ := m.Update(msg)
		m = updated.(Model)
	}
	return m
}

func apply(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	updated, _ := m.Update(msg)
	return updated.(Model)
}

func TestStartsAtLoginWhenAnonymous(t *testing.T) {
	model, _, _ := newTestModel(t, false)
	if model.screen != ScreenLogin {
		t.Errorf("screen = %v, want login", model.screen)
	}
}

func TestStartsAtHomeWithRestoredSession(t *testing.T) {
	model, _, _ := newTestModel(t, true)
	if model.screen != ScreenHome {
		t.Errorf("screen = %v, want home", model.screen)
	}
}

func TestLoginSuccessLandsOnHome(t *testing.T) {
	model, _, sessions := newTestModel(t, false)

	model = apply(t, model, loginResultMsg{token: makeToken(t, "Grace")})

	if model.screen != ScreenHome {
		t.Errorf("screen = %v, want home after login", model.screen)
	}
	if len(model.stack) != 0 {
		t.Errorf("history stack = %v, want empty after login", model.stack)
	}
	if sessions.State() != session.Authenticated {
		t.Error("controller not authenticated after login")
	}
}

func TestLoginFailureStaysOnLogin(t *testing.T) {
	model, _, sessions := newTestModel(t, false)

	model = apply(t, model, loginResultMsg{err: &api.Error{StatusCode: 401, Message: "Invalid credentials"}})

	if model.screen != ScreenLogin {
		t.Errorf("screen = %v, want login after rejection", model.screen)
	}
	if model.notice == "" || !model.noticeErr {
		t.Errorf("notice = %q (err=%v), want a visible failure message", model.notice, model.noticeErr)
	}
	if sessions.State() != session.Anonymous {
		t.Error("controller authenticated after a rejected login")
	}
}

func TestUndecodableTokenNeverAuthenticates(t *testing.T) {
	model, _, sessions := newTestModel(t, false)

	model = apply(t, model, loginResultMsg{token: "not-a-jwt"})

	if model.screen != ScreenLogin {
		t.Errorf("screen = %v, want login", model.screen)
	}
	if sessions.State() != session.Anonymous {
		t.Error("controller authenticated with an undecodable token")
	}
}

func TestLogoutResetsToLogin(t *testing.T) {
	model, _, sessions := newTestModel(t, true)

	// Build up some navigation history first.
	model = press(t, model, "enter") // View tasks
	if model.screen != ScreenTaskList {
		t.Fatalf("screen = %v, want task list", model.screen)
	}
	model = press(t, model, "esc") // back home

	// Select "Log out" (last home item).
	model = press(t, model, "j", "j", "enter")

	if model.screen != ScreenLogin {
		t.Errorf("screen = %v, want login after logout", model.screen)
	}
	if len(model.stack) != 0 {
		t.Errorf("history stack = %v, want cleared on logout", model.stack)
	}
	if sessions.State() != session.Anonymous {
		t.Error("controller still authenticated after logout")
	}
}

func TestSignupNavigation(t *testing.T) {
	model, _, _ := newTestModel(t, false)

	model = press(t, model, "ctrl+n")
	if model.screen != ScreenSignup {
		t.Fatalf("screen = %v, want signup", model.screen)
	}

	model = press(t, model, "esc")
	if model.screen != ScreenLogin {
		t.Errorf("screen = %v, want login after backing out", model.screen)
	}
}

func TestSignupSuccessReturnsToLogin(t *testing.T) {
	model, _, _ := newTestModel(t, false)
	model = press(t, model, "ctrl+n")

	model = apply(t, model, signupResultMsg{message: "User registered successfully"})

	if model.screen != ScreenLogin {
		t.Errorf("screen = %v, want login after signup", model.screen)
	}
	if model.notice == "" || model.noticeErr {
		t.Errorf("notice = %q (err=%v), want a success message", model.notice, model.noticeErr)
	}
}

func TestRefreshPopulatesList(t *testing.T) {
	model, backend, _ := newTestModel(t, true)
	backend.tasks = []tasks.Task{{ID: "t-1", Title: "one"}, {ID: "t-2", Title: "two"}}

	model = press(t, model, "enter") // View tasks
	if !model.list.refreshing {
		t.Error("list not marked refreshing after entering")
	}

	// Complete the fetch the command would have performed.
	if err := model.sync.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	model = apply(t, model, refreshedMsg{})

	if model.list.refreshing {
		t.Error("list still refreshing after the result landed")
	}
	if len(model.list.items) != 2 {
		t.Errorf("list has %d items, want 2", len(model.list.items))
	}
}

func TestSampleOverlayFromHome(t *testing.T) {
	model, _, _ := newTestModel(t, true)

	model = press(t, model, "j", "enter") // Browse sample tasks

	if model.screen != ScreenTaskList {
		t.Fatalf("screen = %v, want task list", model.screen)
	}
	if model.sync.Mode() != tasks.ViewSampleOverlay {
		t.Error("sample overlay not active")
	}
	if len(model.list.items) == 0 {
		t.Error("sample list is empty")
	}

	// Mutating keys are rejected with a notice, not a form.
	model = press(t, model, "n")
	if model.screen != ScreenTaskList {
		t.Errorf("screen = %v, want to stay on the list", model.screen)
	}
	if model.notice == "" {
		t.Error("no read-only notice shown")
	}
}

func TestDeleteRequiresConfirmation(t *testing.T) {
	model, backend, _ := newTestModel(t, true)
	backend.tasks = []tasks.Task{{ID: "t-1", Title: "doomed"}}

	model = press(t, model, "enter")
	if err := model.sync.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	model = apply(t, model, refreshedMsg{})

	model = press(t, model, "d")
	if model.list.confirmDelete != "t-1" {
		t.Fatalf("confirmDelete = %q, want t-1", model.list.confirmDelete)
	}

	// Denying clears the pending delete without touching anything.
	model = press(t, model, "n")
	if model.list.confirmDelete != "" {
		t.Error("confirmDelete not cleared on deny")
	}
	if len(model.list.items) != 1 {
		t.Error("task vanished without confirmation")
	}

	// Confirming starts the delete.
	model = press(t, model, "d", "y")
	if !model.list.deleting {
		t.Error("delete not started after confirmation")
	}
}

func TestDeleteResultRemovesEntry(t *testing.T) {
	model, backend, _ := newTestModel(t, true)
	backend.tasks = []tasks.Task{{ID: "t-1", Title: "doomed"}}

	model = press(t, model, "enter")
	if err := model.sync.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	model = apply(t, model, refreshedMsg{})

	// Perform the delete the command would have, then deliver its
	// result.
	if err := model.sync.Delete(context.Background(), "t-1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	model = apply(t, model, taskDeletedMsg{id: "t-1"})

	if len(model.list.items) != 0 {
		t.Errorf("list has %d items after delete, want 0", len(model.list.items))
	}
}

func TestFormValidationBlocksSubmit(t *testing.T) {
	model, _, _ := newTestModel(t, true)

	model = press(t, model, "enter") // task list
	model = apply(t, model, refreshedMsg{})
	model = press(t, model, "n") // new task form
	if model.screen != ScreenTaskForm {
		t.Fatalf("screen = %v, want form", model.screen)
	}

	model = press(t, model, "ctrl+s")

	if model.screen != ScreenTaskForm {
		t.Errorf("screen = %v, want to stay on the form", model.screen)
	}
	if model.form.busy {
		t.Error("form submitted despite missing required fields")
	}
	if model.notice == "" || !model.noticeErr {
		t.Errorf("notice = %q, want a validation message", model.notice)
	}
}

func TestTaskSavedClosesForm(t *testing.T) {
	model, _, _ := newTestModel(t, true)

	model = press(t, model, "enter")
	model = apply(t, model, refreshedMsg{})
	model = press(t, model, "n")

	created, err := model.sync.Create(context.Background(), tasks.Draft{
		Title: "new", Description: "d", EstimatedTime: floatPtr(1),
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	model = apply(t, model, taskSavedMsg{task: created})

	if model.screen != ScreenTaskList {
		t.Errorf("screen = %v, want back on the list", model.screen)
	}
	if len(model.list.items) != 1 {
		t.Errorf("list has %d items, want the created task", len(model.list.items))
	}
}

func TestSaveFailureKeepsForm(t *testing.T) {
	model, _, _ := newTestModel(t, true)

	model = press(t, model, "enter")
	model = apply(t, model, refreshedMsg{})
	model = press(t, model, "n")

	model = apply(t, model, taskSavedMsg{err: errors.New("connection reset")})

	if model.screen != ScreenTaskForm {
		t.Errorf("screen = %v, want to stay on the form after a failure", model.screen)
	}
	if model.notice == "" || !model.noticeErr {
		t.Errorf("notice = %q, want a failure message", model.notice)
	}
}

func TestNoticeFadeIgnoresStaleSeq(t *testing.T) {
	model, _, _ := newTestModel(t, false)

	model = apply(t, model, loginResultMsg{err: errors.New("first failure")})
	staleSeq := model.noticeSeq
	model = apply(t, model, loginResultMsg{err: errors.New("second failure")})

	model = apply(t, model, noticeFadeMsg{seq: staleSeq})
	if model.notice == "" {
		t.Error("a stale fade tick cleared the current notice")
	}

	model = apply(t, model, noticeFadeMsg{seq: model.noticeSeq})
	if model.notice != "" {
		t.Error("the current fade tick did not clear the notice")
	}
}

func floatPtr(f float64) *float64 { return &f }
