// Copyright 2026 The Taskdeck Authors
// SPDX-License-Identifier: Apache-2.0

package tasks

import (
	"fmt"
	"strings"
	"time"
)

// Priority is the task urgency level. The wire strings match what the
// server stores and returns.
type Priority string

const (
	PriorityLow    Priority = "Low"
	PriorityMedium Priority = "Medium"
	PriorityHigh   Priority = "High"
)

// Priorities lists the levels in ascending urgency, for cycling UI
// controls and flag validation.
var Priorities = []Priority{PriorityLow, PriorityMedium, PriorityHigh}

// Status is the task progress state.
type Status string

const (
	StatusPending    Status = "Pending"
	StatusInProgress Status = "In Progress"
	StatusCompleted  Status = "Completed"
)

// Statuses lists the states in workflow order.
var Statuses = []Status{StatusPending, StatusInProgress, StatusCompleted}

// Task is one entry in the remote collection. The server assigns ID and
// CreatedAt; everything else comes from the submitting client.
type Task struct {
	ID            string     `json:"_id"`
	Title         string     `json:"title"`
	Description   string     `json:"description"`
	Priority      Priority   `json:"priority"`
	Status        Status     `json:"status"`
	DueDate       *time.Time `json:"dueDate,omitempty"`
	EstimatedTime *float64   `json:"estimatedTime,omitempty"` // hours
	CreatedAt     time.Time  `json:"createdAt"`
}

// Draft carries the client-editable fields for create and update calls.
type Draft struct {
	Title         string     `json:"title"`
	Description   string     `json:"description"`
	Priority      Priority   `json:"priority"`
	Status        Status     `json:"status"`
	DueDate       *time.Time `json:"dueDate,omitempty"`
	EstimatedTime *float64   `json:"estimatedTime,omitempty"`
}

// ValidationError reports required fields that are missing from a draft.
// Validation runs locally before any network call, so obviously-invalid
// input never costs a round trip.
type ValidationError struct {
	Missing []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("tasks: required fields missing: %s", strings.Join(e.Missing, ", "))
}

// Validate checks the draft's required fields: title, description, and
// estimated time must all be present and non-empty.
func (d Draft) Validate() error {
	var missing []string
	if strings.TrimSpace(d.Title) == "" {
		missing = append(missing, "title")
	}
	if strings.TrimSpace(d.Description) == "" {
		missing = append(missing, "description")
	}
	if d.EstimatedTime == nil {
		missing = append(missing, "estimated time")
	}
	if len(missing) > 0 {
		return &ValidationError{Missing: missing}
	}
	return nil
}
