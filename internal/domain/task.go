// Package domain holds the task records Kara reads and updates.
package domain

import (
	"strconv"
)

// TaskSummary is the projection listed to an employee before they pick a task.
type TaskSummary struct {
	ID          int64
	ProjectName string
	TaskDate    string
}

// TaskUpdate is a validated change an employee makes to one of their tasks.
type TaskUpdate struct {
	ID          int64
	PersonName  string
	Description string
	Hours       float64
}

// EncouragementThreshold is the number of hours above which a logged task
// earns an encouragement.
const EncouragementThreshold = 5.0

// DeservesEncouragement reports whether the logged hours exceed the threshold.
func (u TaskUpdate) DeservesEncouragement() bool {
	return u.Hours > EncouragementThreshold
}

// FormatHours renders hours in their shortest exact form ("6.5", "8").
func FormatHours(hours float64) string {
	return strconv.FormatFloat(hours, 'f', -1, 64)
}

// ContainsTask reports whether id is one of the listed tasks.
func ContainsTask(tasks []TaskSummary, id int64) bool {
	for _, t := range tasks {
		if t.ID == id {
			return true
		}
	}
	return false
}
