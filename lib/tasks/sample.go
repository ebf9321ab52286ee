// Copyright 2026 The Taskdeck Authors
// SPDX-License-Identifier: Apache-2.0

package tasks

import "time"

// SampleTasks returns the fixed, read-only demonstration collection shown
// when the sample overlay is active. The entries use synthetic ids that
// can never collide with server-assigned ones, and they are never
// persisted or sent to the server.
func SampleTasks() []Task {
	hours := func(h float64) *float64 { return &h }
	day := func(offset int) *time.Time {
		t := sampleEpoch.AddDate(0, 0, offset)
		return &t
	}

	return []Task{
		{
			ID:            "sample-1",
			Title:         "Plan the week",
			Description:   "Review open work, pick the three things that matter most, and schedule them.",
			Priority:      PriorityHigh,
			Status:        StatusPending,
			DueDate:       day(1),
			EstimatedTime: hours(1),
			CreatedAt:     sampleEpoch,
		},
		{
			ID:            "sample-2",
			Title:         "Write the project brief",
			Description:   "One page: problem, proposed approach, rough timeline. Share for comments.",
			Priority:      PriorityMedium,
			Status:        StatusInProgress,
			DueDate:       day(3),
			EstimatedTime: hours(2.5),
			CreatedAt:     sampleEpoch,
		},
		{
			ID:            "sample-3",
			Title:         "Book the dentist appointment",
			Description:   "Overdue since spring. Any weekday morning works.",
			Priority:      PriorityLow,
			Status:        StatusPending,
			EstimatedTime: hours(0.25),
			CreatedAt:     sampleEpoch,
		},
		{
			ID:            "sample-4",
			Title:         "Clear the review queue",
			Description:   "Two pending reviews, both small. Done means approved or comments posted.",
			Priority:      PriorityMedium,
			Status:        StatusCompleted,
			EstimatedTime: hours(1.5),
			CreatedAt:     sampleEpoch,
		},
	}
}

// sampleEpoch pins the sample data to a fixed instant so renders and
// tests are deterministic.
var sampleEpoch = time.Date(2026, time.January, 5, 9, 0, 0, 0, time.UTC)
