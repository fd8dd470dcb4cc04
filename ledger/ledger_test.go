package ledger

import (
	"context"
	"encoding/json"
	"errors"
	"internhub/config"
	"internhub/database"
	"internhub/models"
	"internhub/utils"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompletedCount(t *testing.T) {
	res := OK([]models.ProgressRow{
		{TaskID: "t1", Status: "completed"},
		{TaskID: "t2", Status: "Completed"},
		{TaskID: "t3", Status: "in_progress"},
		{TaskID: "t4", Status: "completed"},
	})
	assert.Equal(t, 2, res.CompletedCount())
}

func TestClassify(t *testing.T) {
	assert.Equal(t, StatusUnavailable, classify(context.DeadlineExceeded).Status)
	assert.Equal(t, StatusFailed, classify(errors.New("syntax error")).Status)
}

func TestSupabase_Query(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/rest/v1/user_task_progress", r.URL.Path)
		q := r.URL.Query()
		w.Header().Set("Content-Type", "application/json")
		switch q.Get("user_id") {
		case "eq.u1":
			assert.Equal(t, "eq.42", q.Get("simulation_id"))
			json.NewEncoder(w).Encode([]map[string]any{
				{"user_id": "u1", "simulation_id": 42, "task_id": 1, "status": "completed"},
				{"user_id": "u1", "simulation_id": 42, "task_id": 2, "status": "in_progress"},
			})
		case "eq.down":
			w.WriteHeader(http.StatusServiceUnavailable)
		case "eq.bad":
			w.WriteHeader(http.StatusBadRequest)
		case "eq.slow":
			time.Sleep(300 * time.Millisecond)
			w.Write([]byte(`[]`))
		default:
			w.Write([]byte(`[]`))
		}
	}))
	defer server.Close()

	l := NewSupabase(utils.NewSupabaseClient(server.URL, "key", 5*time.Second))
	ctx := context.Background()

	res := l.Query(ctx, "u1", "42")
	require.Equal(t, StatusOK, res.Status)
	require.Len(t, res.Rows, 2)
	assert.Equal(t, models.ProgressRow{UserID: "u1", InternshipID: "42", TaskID: "1", Status: "completed"}, res.Rows[0])
	assert.Equal(t, 1, res.CompletedCount())

	res = l.Query(ctx, "nobody", "42")
	assert.Equal(t, StatusOK, res.Status)
	assert.Empty(t, res.Rows)

	assert.Equal(t, StatusUnavailable, l.Query(ctx, "down", "42").Status)
	assert.Equal(t, StatusFailed, l.Query(ctx, "bad", "42").Status)

	tctx, cancel := context.WithTimeout(ctx, 50*time.Millisecond)
	defer cancel()
	assert.Equal(t, StatusUnavailable, l.Query(tctx, "slow", "42").Status)
}

func TestGorm_Query(t *testing.T) {
	db, err := database.ConnectDb(&config.Config{
		DBDriver: "sqlite",
		DBName:   "file:" + uuid.NewString() + "?mode=memory&cache=shared",
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.TaskProgress{}))

	rows := []models.TaskProgress{
		{UserID: "u1", InternshipID: "42", TaskID: "t1", Status: "completed"},
		{UserID: "u1", InternshipID: "42", TaskID: "t2", Status: "completed"},
		{UserID: "u1", InternshipID: "42", TaskID: "t3", Status: "in_progress"},
		{UserID: "u1", InternshipID: "7", TaskID: "x", Status: "completed"},
		{UserID: "u2", InternshipID: "42", TaskID: "t1", Status: "completed"},
	}
	require.NoError(t, db.Create(&rows).Error)

	res := NewGorm(db).Query(context.Background(), "u1", "42")
	require.Equal(t, StatusOK, res.Status)
	assert.Len(t, res.Rows, 3)
	assert.Equal(t, 2, res.CompletedCount())

	res = NewGorm(db).Query(context.Background(), "u3", "42")
	assert.Equal(t, StatusOK, res.Status)
	assert.Empty(t, res.Rows)
}

func TestDisabled(t *testing.T) {
	res := Disabled{}.Query(context.Background(), "u1", "42")
	assert.Equal(t, StatusUnavailable, res.Status)
	assert.ErrorIs(t, res.Err, ErrDisabled)
}
