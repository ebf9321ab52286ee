// Copyright 2026 The Taskdeck Authors
// SPDX-License-Identifier: Apache-2.0

package tasks

import (
	"context"
	"errors"
	"sync"

	"github.com/taskdeck/taskdeck/lib/session"
)

// Backend is the remote task API the Synchronizer talks to. Implemented
// by the api package's client; tests substitute a fake.
type Backend interface {
	ListTasks(ctx context.Context) ([]Task, error)
	CreateTask(ctx context.Context, draft Draft) (Task, error)
	UpdateTask(ctx context.Context, id string, draft Draft) (Task, error)
	DeleteTask(ctx context.Context, id string) error
}

// Sessions is the slice of the session controller the Synchronizer needs:
// every operation requires an authenticated session.
type Sessions interface {
	Current() (session.Session, bool)
}

// ViewMode selects which collection is authoritative for rendering. A
// tagged type rather than a boolean so that "mutating while the overlay
// is shown" is rejected in one place instead of guarded at every call
// site.
type ViewMode int

const (
	// ViewLive shows the server-backed collection; all operations are
	// permitted.
	ViewLive ViewMode = iota
	// ViewSampleOverlay shows the fixed demonstration collection;
	// create, update, and delete are rejected.
	ViewSampleOverlay
)

// Event describes a single change to the live collection, delivered via
// Subscribe for live-updating UIs.
type Event struct {
	ID   string
	Kind string // "put" or "remove"
	Task Task
}

// Errors returned by Synchronizer operations.
var (
	// ErrAnonymous means an operation was invoked without an
	// authenticated session. Screens behind the navigation gate should
	// make this unreachable; it is a precondition violation, not a
	// user-facing condition.
	ErrAnonymous = errors.New("tasks: no authenticated session")

	// ErrReadOnlyView means a mutation was attempted while the sample
	// overlay is active.
	ErrReadOnlyView = errors.New("tasks: sample overlay is read-only")
)

// Synchronizer owns the in-memory task collection for the active session.
//
// The UI serializes user actions, so operations do not race in practice,
// but the synchronizer does not assume it: all state is mutex-guarded,
// and a generation counter keeps a stale refresh from overwriting a newer
// one. Beyond that guard, last-response-wins is the accepted behavior.
type Synchronizer struct {
	mutex       sync.Mutex
	backend     Backend
	sessions    Sessions
	live        []Task
	mode        ViewMode
	generation  uint64
	subscribers []chan Event
}

// NewSynchronizer builds a synchronizer over the given backend and
// session source. The collection starts empty in live mode; call Refresh
// to populate it.
func NewSynchronizer(backend Backend, sessions Sessions) *Synchronizer {
	return &Synchronizer{backend: backend, sessions: sessions}
}

func (s *Synchronizer) requireSession() error {
	if _, ok := s.sessions.Current(); !ok {
		return ErrAnonymous
	}
	return nil
}

// Mode returns the active view mode.
func (s *Synchronizer) Mode() ViewMode {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.mode
}

// Tasks returns a snapshot of the collection the active view mode renders:
// the live collection, or the sample overlay.
func (s *Synchronizer) Tasks() []Task {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if s.mode == ViewSampleOverlay {
		return SampleTasks()
	}
	snapshot := make([]Task, len(s.live))
	copy(snapshot, s.live)
	return snapshot
}

// Get returns the task with the given id from the active view, or false.
func (s *Synchronizer) Get(id string) (Task, bool) {
	for _, task := range s.Tasks() {
		if task.ID == id {
			return task, true
		}
	}
	return Task{}, false
}

// Refresh fetches the full collection and replaces the local one
// wholesale — no merge or diff, the last successful fetch wins. Safe to
// call repeatedly (manual refresh). If a newer refresh starts while this
// one is in flight, the stale result is dropped.
func (s *Synchronizer) Refresh(ctx context.Context) error {
	if err := s.requireSession(); err != nil {
		return err
	}

	s.mutex.Lock()
	s.generation++
	generation := s.generation
	s.mutex.Unlock()

	fetched, err := s.backend.ListTasks(ctx)
	if err != nil {
		return err
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()
	if generation != s.generation {
		// A newer refresh superseded this one.
		return nil
	}
	s.live = fetched
	return nil
}

// Create validates the draft locally (no network call on failure),
// submits it, and merges the server-assigned task into the collection.
func (s *Synchronizer) Create(ctx context.Context, draft Draft) (Task, error) {
	if err := s.requireSession(); err != nil {
		return Task{}, err
	}
	if err := s.mutationAllowed(); err != nil {
		return Task{}, err
	}
	if err := draft.Validate(); err != nil {
		return Task{}, err
	}

	created, err := s.backend.CreateTask(ctx, draft)
	if err != nil {
		return Task{}, err
	}

	s.put(created)
	return created, nil
}

// Update validates the draft, submits it to the task's resource path, and
// replaces the matching local entry by id.
func (s *Synchronizer) Update(ctx context.Context, id string, draft Draft) (Task, error) {
	if err := s.requireSession(); err != nil {
		return Task{}, err
	}
	if err := s.mutationAllowed(); err != nil {
		return Task{}, err
	}
	if err := draft.Validate(); err != nil {
		return Task{}, err
	}

	updated, err := s.backend.UpdateTask(ctx, id, draft)
	if err != nil {
		return Task{}, err
	}

	s.put(updated)
	return updated, nil
}

// Delete issues the server delete and removes the entry locally on
// success, so the UI reflects the deletion without another fetch. The
// server call is issued even if the id is already locally absent; the
// caller surfaces any "already deleted" server response as an ordinary
// failure. Confirmation of this irreversible action is the UI's job,
// before calling here.
func (s *Synchronizer) Delete(ctx context.Context, id string) error {
	if err := s.requireSession(); err != nil {
		return err
	}
	if err := s.mutationAllowed(); err != nil {
		return err
	}

	if err := s.backend.DeleteTask(ctx, id); err != nil {
		return err
	}

	s.remove(id)
	return nil
}

// LoadSampleOverlay switches rendering to the fixed demonstration
// collection. No fetch happens; the live collection is kept untouched
// underneath.
func (s *Synchronizer) LoadSampleOverlay() {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.mode = ViewSampleOverlay
}

// UnloadSampleOverlay switches back to the live collection. The caller
// should Refresh afterwards — the overlay may have been shown for a
// while and the live data is stale.
func (s *Synchronizer) UnloadSampleOverlay() {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.mode = ViewLive
}

func (s *Synchronizer) mutationAllowed() error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if s.mode == ViewSampleOverlay {
		return ErrReadOnlyView
	}
	return nil
}

// Subscribe returns a channel receiving put/remove events as the live
// collection changes. Slow subscribers drop events; the UI resyncs from
// Tasks on its next snapshot.
func (s *Synchronizer) Subscribe() <-chan Event {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	channel := make(chan Event, 64)
	s.subscribers = append(s.subscribers, channel)
	return channel
}

// put inserts or replaces a task by id and dispatches an event.
func (s *Synchronizer) put(task Task) {
	s.mutex.Lock()
	replaced := false
	for i := range s.live {
		if s.live[i].ID == task.ID {
			s.live[i] = task
			replaced = true
			break
		}
	}
	if !replaced {
		s.live = append(s.live, task)
	}
	subscribers := s.subscribers
	s.mutex.Unlock()

	dispatch(subscribers, Event{ID: task.ID, Kind: "put", Task: task})
}

// remove deletes a task by id and dispatches an event. Removing an
// absent id is a no-op.
func (s *Synchronizer) remove(id string) {
	s.mutex.Lock()
	var removed *Task
	for i := range s.live {
		if s.live[i].ID == id {
			task := s.live[i]
			removed = &task
			s.live = append(s.live[:i], s.live[i+1:]...)
			break
		}
	}
	subscribers := s.subscribers
	s.mutex.Unlock()

	if removed == nil {
		return
	}
	dispatch(subscribers, Event{ID: id, Kind: "remove", Task: *removed})
}

func dispatch(subscribers []chan Event, event Event) {
	for _, subscriber := range subscribers {
		select {
		case subscriber <- event:
		default:
			// Subscriber buffer full — drop.
		}
	}
}
