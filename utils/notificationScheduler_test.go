package utils

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type fakePurger struct {
	cutoff time.Time
	n      int64
	err    error
}

func (f *fakePurger) PurgeRead(ctx context.Context, cutoff time.Time) (int64, error) {
	f.cutoff = cutoff
	return f.n, f.err
}

func TestPurgeOldNotifications(t *testing.T) {
	purger := &fakePurger{n: 4}
	at := time.Date(2024, 5, 31, 3, 0, 0, 0, time.UTC)

	deleted := PurgeOldNotifications(context.Background(), purger, 30, at)
	assert.EqualValues(t, 4, deleted)
	assert.Equal(t, time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), purger.cutoff)
}

func TestPurgeOldNotifications_DisabledAndErrors(t *testing.T) {
	purger := &fakePurger{n: 4}
	assert.EqualValues(t, 0, PurgeOldNotifications(context.Background(), purger, 0, time.Now()))
	assert.True(t, purger.cutoff.IsZero(), "purger not called when retention is disabled")

	failing := &fakePurger{err: errors.New("db locked")}
	assert.EqualValues(t, 0, PurgeOldNotifications(context.Background(), failing, 7, time.Now()))
}
