package models

import "time"

// TimestampLayout is the fixed UTC layout for enrolled_at. Values sort
// lexicographically in chronological order.
const TimestampLayout = "2006-01-02T15:04:05.000000Z"

// SyntheticTaskTitle is the title of the single task created when an
// internship has no catalog entry.
const SyntheticTaskTitle = "Complete Internship"

// Enrollment binds a user to an internship and its task checklist.
// At most one exists per (UserID, InternshipID).
type Enrollment struct {
	UserID         string       `json:"user_id"`
	UserName       string       `json:"user_name"`
	UserEmail      string       `json:"user_email"`
	InternshipID   string       `json:"internship_id"`
	InternshipName string       `json:"internship_name"`
	EnrolledAt     string       `json:"enrolled_at"`
	Tasks          []TaskRecord `json:"tasks"`
}

// TaskRecord is one checklist item of an enrollment. Only Completed
// changes after creation, and only from false to true.
type TaskRecord struct {
	TaskID      string `json:"task_id"`
	Title       string `json:"title"`
	Order       int    `json:"order"`
	Description string `json:"description,omitempty"`
	Completed   bool   `json:"completed"`
}

// TaskDefinition is a catalog entry describing a task of an internship.
type TaskDefinition struct {
	TaskID      string `json:"task_id" yaml:"task_id"`
	Title       string `json:"title" yaml:"title"`
	Order       int    `json:"order" yaml:"order"`
	Description string `json:"description,omitempty" yaml:"description"`
}

// Clone returns a deep copy so callers never share the task slice. A nil
// task list becomes an empty one.
func (e Enrollment) Clone() Enrollment {
	out := e
	out.Tasks = make([]TaskRecord, len(e.Tasks))
	copy(out.Tasks, e.Tasks)
	return out
}

// CompletedCount counts embedded tasks marked completed.
func (e Enrollment) CompletedCount() int {
	n := 0
	for _, t := range e.Tasks {
		if t.Completed {
			n++
		}
	}
	return n
}

// FormatTimestamp renders t in TimestampLayout.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}
