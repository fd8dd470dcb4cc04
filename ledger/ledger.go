// Package ledger reads per-user task completion rows from the progress
// ledger. The ledger is written by the learning frontend; this package
// never writes to it.
package ledger

import (
	"context"
	"errors"
	"internhub/models"
	"net"
)

// Status tells how the ledger answered a query.
type Status int

const (
	StatusOK Status = iota
	StatusUnavailable
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusUnavailable:
		return "unavailable"
	case StatusFailed:
		return "failed"
	}
	return "unknown"
}

// Result is the outcome of a query. Rows is only meaningful when Status is
// StatusOK and may be empty.
type Result struct {
	Status Status
	Rows   []models.ProgressRow
	Err    error
}

// CompletedCount counts rows whose status is exactly "completed".
func (r Result) CompletedCount() int {
	n := 0
	for _, row := range r.Rows {
		if row.Status == models.TaskStatusCompleted {
			n++
		}
	}
	return n
}

func OK(rows []models.ProgressRow) Result {
	return Result{Status: StatusOK, Rows: rows}
}

func Unavailable(err error) Result {
	return Result{Status: StatusUnavailable, Err: err}
}

func Failed(err error) Result {
	return Result{Status: StatusFailed, Err: err}
}

// classify maps a transport error to Unavailable when it is a timeout,
// cancellation or network failure, and to Failed otherwise.
func classify(err error) Result {
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) || errors.As(err, &netErr) {
		return Unavailable(err)
	}
	return Failed(err)
}

// ErrDisabled is reported by Disabled for every query.
var ErrDisabled = errors.New("progress ledger disabled")

// Disabled is a ledger that is never available.
type Disabled struct{}

func (Disabled) Query(ctx context.Context, userID, internshipID string) Result {
	return Unavailable(ErrDisabled)
}
