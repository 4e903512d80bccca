// Package model contains the model for the task list
package model

import (
	"fmt"
	"math/rand/v2"
	"time"
)

// Task represents a single entry in the task list
type Task struct {
	ID       string    `json:"id"`
	Text     string    `json:"text"`
	Done     bool      `json:"done,omitempty"`
	Created  time.Time `json:"created"`
	Modified time.Time `json:"modified"`
}

// TaskList represents the entire task document. Order is significant; it is
// what the user sees and reorders.
type TaskList struct {
	Tasks []*Task `json:"tasks"`
}

// NewTask creates a new task with a generated ID
func NewTask(text string) *Task {
	now := time.Now()
	return &Task{
		ID:       generateID(),
		Text:     text,
		Created:  now,
		Modified: now,
	}
}

// Touch updates the modification timestamp
func (t *Task) Touch() {
	t.Modified = time.Now()
}

// NewTaskList creates an empty task list
func NewTaskList() *TaskList {
	return &TaskList{
		Tasks: make([]*Task, 0),
	}
}

// Add appends a task to the end of the list
func (l *TaskList) Add(task *Task) {
	l.Tasks = append(l.Tasks, task)
}

// InsertAt inserts a task at the given index, clamping to the list bounds
func (l *TaskList) InsertAt(index int, task *Task) {
	if index < 0 {
		index = 0
	}
	if index > len(l.Tasks) {
		index = len(l.Tasks)
	}
	l.Tasks = append(l.Tasks, nil)
	copy(l.Tasks[index+1:], l.Tasks[index:])
	l.Tasks[index] = task
}

// Remove removes the task with the given ID and reports whether it was found
func (l *TaskList) Remove(id string) bool {
	for i, t := range l.Tasks {
		if t.ID == id {
			l.Tasks = append(l.Tasks[:i], l.Tasks[i+1:]...)
			return true
		}
	}
	return false
}

// IndexOf returns the index of the task with the given ID, or -1
func (l *TaskList) IndexOf(id string) int {
	for i, t := range l.Tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}

// FindByID finds a task by its ID
func (l *TaskList) FindByID(id string) *Task {
	for _, t := range l.Tasks {
		if t.ID == id {
			return t
		}
	}
	return nil
}

// Reorder rearranges the list to match the given ID order. Every ID must name
// an existing task and every task must appear exactly once.
func (l *TaskList) Reorder(ids []string) error {
	if len(ids) != len(l.Tasks) {
		return fmt.Errorf("reorder: got %d ids for %d tasks", len(ids), len(l.Tasks))
	}

	ordered := make([]*Task, 0, len(ids))
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		if seen[id] {
			return fmt.Errorf("reorder: duplicate id %s", id)
		}
		seen[id] = true

		t := l.FindByID(id)
		if t == nil {
			return fmt.Errorf("reorder: unknown id %s", id)
		}
		ordered = append(ordered, t)
	}

	l.Tasks = ordered
	return nil
}

func generateID() string {
	return "task_" + time.Now().Format("20060102150405") + "_" + randomString(8)
}

func randomString(length int) string {
	const chars = "abcdefghijklmnopqrstuvwxyz0123456789"
	result := make([]byte, length)
	for i := range result {
		result[i] = chars[rand.IntN(len(chars))]
	}
	return string(result)
}
