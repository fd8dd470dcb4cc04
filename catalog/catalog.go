// Package catalog resolves the ordered task definitions of an internship.
package catalog

import (
	"context"
	"errors"
	"internhub/models"
)

// Status tells how the catalog answered a lookup.
type Status int

const (
	// StatusOK means the internship has an entry; Tasks holds it.
	StatusOK Status = iota
	// StatusAbsent means the catalog answered and has no entry.
	StatusAbsent
	// StatusUnavailable means the catalog could not be reached in time.
	StatusUnavailable
	// StatusFailed means the catalog answered with an error.
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusAbsent:
		return "absent"
	case StatusUnavailable:
		return "unavailable"
	case StatusFailed:
		return "failed"
	}
	return "unknown"
}

// Result is the outcome of a lookup.
type Result struct {
	Status Status
	Tasks  []models.TaskDefinition
	Err    error
}

// Found reports whether the lookup produced a usable entry.
func (r Result) Found() bool {
	return r.Status == StatusOK && len(r.Tasks) > 0
}

func OK(tasks []models.TaskDefinition) Result {
	if len(tasks) == 0 {
		return Absent()
	}
	return Result{Status: StatusOK, Tasks: tasks}
}

func Absent() Result {
	return Result{Status: StatusAbsent}
}

func Unavailable(err error) Result {
	return Result{Status: StatusUnavailable, Err: err}
}

func Failed(err error) Result {
	return Result{Status: StatusFailed, Err: err}
}

// ErrDisabled is reported by Disabled for every lookup.
var ErrDisabled = errors.New("task catalog disabled")

// Disabled is a catalog that is never available.
type Disabled struct{}

func (Disabled) Lookup(ctx context.Context, internshipID string) Result {
	return Unavailable(ErrDisabled)
}
