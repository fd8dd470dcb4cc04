package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlexibleID_Unmarshal(t *testing.T) {
	var body struct {
		A FlexibleID `json:"a"`
		B FlexibleID `json:"b"`
		C FlexibleID `json:"c"`
		D FlexibleID `json:"d"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"a": 42, "b": " u1 ", "c": null, "d": 12345678901234567890}`), &body))
	assert.Equal(t, "42", body.A.String())
	assert.Equal(t, "u1", body.B.String())
	assert.Equal(t, "", body.C.String())
	assert.Equal(t, "12345678901234567890", body.D.String())

	assert.Error(t, json.Unmarshal([]byte(`{"a": true}`), &body))
}

func TestFormatTimestamp(t *testing.T) {
	loc := time.FixedZone("IST", 5*3600+1800)
	ts := time.Date(2024, 5, 1, 16, 0, 0, 500000, loc)
	assert.Equal(t, "2024-05-01T10:30:00.000500Z", FormatTimestamp(ts))
}

func TestEnrollment_CloneAndCount(t *testing.T) {
	e := Enrollment{Tasks: []TaskRecord{{TaskID: "t1", Completed: true}, {TaskID: "t2"}}}
	c := e.Clone()
	c.Tasks[1].Completed = true

	assert.Equal(t, 1, e.CompletedCount())
	assert.Equal(t, 2, c.CompletedCount())

	empty := Enrollment{UserID: "u1"}.Clone()
	assert.NotNil(t, empty.Tasks)
	out, err := json.Marshal(empty)
	require.NoError(t, err)
	assert.Contains(t, string(out), `"tasks":[]`)
}

func TestEnrollmentRecord_RoundTrip(t *testing.T) {
	e := Enrollment{
		UserID:       "u1",
		UserEmail:    "u1@x.com",
		InternshipID: "42",
		EnrolledAt:   "2024-05-01T10:30:00.000000Z",
		Tasks:        []TaskRecord{{TaskID: "t1", Title: "Task One", Order: 1}},
	}
	assert.Equal(t, e, NewEnrollmentRecord(e).ToEnrollment())
}
