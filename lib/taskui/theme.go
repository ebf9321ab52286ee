// Copyright 2026 The Taskdeck Authors
// SPDX-License-Identifier: Apache-2.0

package taskui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/taskdeck/taskdeck/lib/tasks"
)

// Theme defines the color palette for the terminal UI. All colors use
// ANSI 256-color codes for broad terminal compatibility.
type Theme struct {
	// Text colors.
	NormalText lipgloss.Color
	FaintText  lipgloss.Color

	// Selected row.
	SelectedBackground lipgloss.Color
	SelectedForeground lipgloss.Color

	// Priority colors.
	PriorityLow    lipgloss.Color
	PriorityMedium lipgloss.Color
	PriorityHigh   lipgloss.Color

	// Status colors.
	StatusPending    lipgloss.Color
	StatusInProgress lipgloss.Color
	StatusCompleted  lipgloss.Color

	// UI chrome.
	HeaderForeground lipgloss.Color
	BorderColor      lipgloss.Color
	HelpText         lipgloss.Color

	// Status-bar notices.
	NoticeError lipgloss.Color
	NoticeInfo  lipgloss.Color

	// Banner shown while the sample overlay is active.
	OverlayBanner lipgloss.Color
}

// PriorityColor returns the color for a priority level. Unknown values
// render as normal text.
func (theme Theme) PriorityColor(priority tasks.Priority) lipgloss.Color {
	switch priority {
	case tasks.PriorityLow:
		return theme.PriorityLow
	case tasks.PriorityMedium:
		return theme.PriorityMedium
	case tasks.PriorityHigh:
		return theme.PriorityHigh
	default:
		return theme.NormalText
	}
}

// StatusColor returns the color for a task status. Unknown values
// render faint.
func (theme Theme) StatusColor(status tasks.Status) lipgloss.Color {
	switch status {
	case tasks.StatusPending:
		return theme.StatusPending
	case tasks.StatusInProgress:
		return theme.StatusInProgress
	case tasks.StatusCompleted:
		return theme.StatusCompleted
	default:
		return theme.FaintText
	}
}

// DefaultTheme is the built-in dark-terminal color scheme.
var DefaultTheme = Theme{
	NormalText: lipgloss.Color("252"),
	FaintText:  lipgloss.Color("245"),

	SelectedBackground: lipgloss.Color("236"),
	SelectedForeground: lipgloss.Color("255"),

	PriorityLow:    lipgloss.Color("114"), // green
	PriorityMedium: lipgloss.Color("220"), // amber
	PriorityHigh:   lipgloss.Color("196"), // red

	StatusPending:    lipgloss.Color("220"), // amber
	StatusInProgress: lipgloss.Color("75"),  // blue
	StatusCompleted:  lipgloss.Color("114"), // green

	HeaderForeground: lipgloss.Color("255"),
	BorderColor:      lipgloss.Color("240"),
	HelpText:         lipgloss.Color("241"),

	NoticeError: lipgloss.Color("196"),
	NoticeInfo:  lipgloss.Color("114"),

	OverlayBanner: lipgloss.Color("208"), // orange
}
