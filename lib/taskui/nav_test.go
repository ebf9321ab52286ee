// Copyright 2026 The Taskdeck Authors
// SPDX-License-Identifier: Apache-2.0

package taskui

import (
	"testing"

	"github.com/taskdeck/taskdeck/lib/session"
)

func TestReachableScreensAreDisjoint(t *testing.T) {
	anonymous := ReachableScreens(session.Anonymous)
	authenticated := ReachableScreens(session.Authenticated)

	seen := map[Screen]bool{}
	for _, screen := range anonymous {
		seen[screen] = true
	}
	for _, screen := range authenticated {
		if seen[screen] {
			t.Errorf("screen %v reachable in both states", screen)
		}
	}
}

func TestReachableGating(t *testing.T) {
	tests := []struct {
		state  session.State
		screen Screen
		want   bool
	}{
		{session.Anonymous, ScreenLogin, true},
		{session.Anonymous, ScreenSignup, true},
		{session.Anonymous, ScreenTaskList, false},
		{session.Anonymous, ScreenHome, false},
		{session.Authenticated, ScreenHome, true},
		{session.Authenticated, ScreenTaskDetails, true},
		{session.Authenticated, ScreenLogin, false},
	}

	for _, test := range tests {
		if got := Reachable(test.state, test.screen); got != test.want {
			t.Errorf("Reachable(%v, %v) = %v, want %v", test.state, test.screen, got, test.want)
		}
	}
}

func TestInitialScreen(t *testing.T) {
	if InitialScreen(session.Anonymous) != ScreenLogin {
		t.Error("anonymous sessions must start at login")
	}
	if InitialScreen(session.Authenticated) != ScreenHome {
		t.Error("restored sessions must start at home")
	}
}
