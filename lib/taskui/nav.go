// Copyright 2026 The Taskdeck Authors
// SPDX-License-Identifier: Apache-2.0

package taskui

import (
	"github.com/taskdeck/taskdeck/lib/session"
)

// Screen identifies one of the UI's screens.
type Screen int

const (
	ScreenLogin Screen = iota
	ScreenSignup
	ScreenHome
	ScreenTaskList
	ScreenTaskForm
	ScreenTaskDetails
)

func (s Screen) String() string {
	switch s {
	case ScreenLogin:
		return "login"
	case ScreenSignup:
		return "signup"
	case ScreenHome:
		return "home"
	case ScreenTaskList:
		return "tasks"
	case ScreenTaskForm:
		return "task form"
	case ScreenTaskDetails:
		return "task details"
	default:
		return "unknown"
	}
}

// ReachableScreens returns the screens a session state may display.
// Anonymous users see only the auth screens; authenticated users see
// only the task screens. The two sets are disjoint.
func ReachableScreens(state session.State) []Screen {
	switch state {
	case session.Authenticated:
		return []Screen{ScreenHome, ScreenTaskList, ScreenTaskForm, ScreenTaskDetails}
	default:
		return []Screen{ScreenLogin, ScreenSignup}
	}
}

// Reachable reports whether a screen is displayable in the given state.
func Reachable(state session.State, screen Screen) bool {
	for _, s := range ReachableScreens(state) {
		if s == screen {
			return true
		}
	}
	return false
}

// InitialScreen returns where the UI starts for a session state: the
// home screen when a stored session was restored, the login screen
// otherwise.
func InitialScreen(state session.State) Screen {
	if state == session.Authenticated {
		return ScreenHome
	}
	return ScreenLogin
}
