// Copyright 2026 The Taskdeck Authors
// SPDX-License-Identifier: Apache-2.0

package session

import (
	"fmt"
	"log/slog"
	"sync"
)

// State is the controller's authentication state.
type State int

const (
	// Anonymous means no usable session exists: unauthenticated screens
	// (login, signup) are the only ones reachable.
	Anonymous State = iota
	// Authenticated means a decodable token is held and attached to
	// outgoing API requests.
	Authenticated
)

// String returns the state name for logs and test failures.
func (s State) String() string {
	if s == Authenticated {
		return "authenticated"
	}
	return "anonymous"
}

// Session is the active login session: the raw token plus the identity
// decoded from it.
type Session struct {
	Token string
	Identity
}

// Controller owns the process-wide authentication state. It keeps the
// persisted token and the in-memory session consistent: every mutation to
// one happens alongside the other within the same operation.
//
// The controller is passed by reference to its consumers (API client,
// synchronizer, UI) rather than living in a package-level singleton, so
// tests can substitute a fake store and build isolated controllers.
type Controller struct {
	mutex       sync.Mutex
	store       Store
	session     *Session // nil when anonymous
	subscribers []chan State
	logger      *slog.Logger
}

// NewController builds a controller and determines the initial state from
// the store: no token means anonymous; a decodable token restores the
// session; a storage failure or corrupt token degrades to anonymous
// instead of failing startup.
func NewController(store Store, logger *slog.Logger) *Controller {
	if logger == nil {
		logger = slog.Default()
	}
	controller := &Controller{store: store, logger: logger}

	token, err := store.Load()
	if err != nil {
		logger.Warn("session storage unavailable, starting anonymous", "error", err)
		return controller
	}
	if token == "" {
		return controller
	}

	identity, err := Decode(token)
	if err != nil {
		// A corrupt persisted token is treated as absent.
		logger.Warn("persisted token is not decodable, starting anonymous", "error", err)
		return controller
	}

	controller.session = &Session{Token: token, Identity: identity}
	return controller
}

// State returns the current authentication state.
func (c *Controller) State() State {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	if c.session != nil {
		return Authenticated
	}
	return Anonymous
}

// Current returns the active session, or false when anonymous.
func (c *Controller) Current() (Session, bool) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	if c.session == nil {
		return Session{}, false
	}
	return *c.session, true
}

// Token returns the raw token for bearer attachment, or "" when
// anonymous. Satisfies the API client's token provider interface.
func (c *Controller) Token() string {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	if c.session == nil {
		return ""
	}
	return c.session.Token
}

// Login persists the token, decodes it, and transitions to Authenticated.
// A token that fails to decode never produces an authenticated session:
// the error is returned, the just-persisted token is cleared best-effort,
// and the state stays Anonymous.
func (c *Controller) Login(token string) (Session, error) {
	if err := c.store.Save(token); err != nil {
		return Session{}, fmt.Errorf("persisting token: %w", err)
	}

	identity, err := Decode(token)
	if err != nil {
		if clearErr := c.store.Clear(); clearErr != nil {
			c.logger.Warn("could not clear undecodable token", "error", clearErr)
		}
		return Session{}, fmt.Errorf("login failed: %w", err)
	}

	session := Session{Token: token, Identity: identity}

	c.mutex.Lock()
	c.session = &session
	c.mutex.Unlock()

	c.notify(Authenticated)
	return session, nil
}

// Logout clears the persisted token and transitions to Anonymous. The
// in-memory transition is unconditional: a storage failure during Clear
// is logged but never leaves the controller stuck authenticated.
// Logging out while already anonymous is a no-op success.
func (c *Controller) Logout() {
	if err := c.store.Clear(); err != nil {
		c.logger.Warn("could not clear persisted token", "error", err)
	}

	c.mutex.Lock()
	wasAuthenticated := c.session != nil
	c.session = nil
	c.mutex.Unlock()

	if wasAuthenticated {
		c.notify(Anonymous)
	}
}

// Subscribe returns a channel receiving the new state after each
// transition. Slow subscribers drop notifications; consumers should read
// current state from the controller, not reconstruct it from events.
func (c *Controller) Subscribe() <-chan State {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	channel := make(chan State, 4)
	c.subscribers = append(c.subscribers, channel)
	return channel
}

func (c *Controller) notify(state State) {
	c.mutex.Lock()
	subscribers := c.subscribers
	c.mutex.Unlock()

	for _, subscriber := range subscribers {
		select {
		case subscriber <- state:
		default:
			// Buffer full — drop. Subscribers resync from State().
		}
	}
}
