package storage

import (
	"context"
	"internhub/config"
	"internhub/database"
	"internhub/models"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func sampleEnrollments() []models.Enrollment {
	return []models.Enrollment{
		{
			UserID:         "u1",
			UserName:       "u1",
			UserEmail:      "u1@x.com",
			InternshipID:   "42",
			InternshipName: "Backend",
			EnrolledAt:     "2024-05-01T10:00:00.000000Z",
			Tasks: []models.TaskRecord{
				{TaskID: "t1", Title: "Task One", Order: 1, Completed: true},
				{TaskID: "t2", Title: "Task Two", Order: 2, Description: "Write tests"},
			},
		},
		{
			UserID:       "u2",
			UserName:     "Grace",
			UserEmail:    "g@x.com",
			InternshipID: "42",
			EnrolledAt:   "2024-05-02T10:00:00.000000Z",
			Tasks:        []models.TaskRecord{{TaskID: "s1", Title: models.SyntheticTaskTitle, Order: 1}},
		},
	}
}

func TestFileRepository_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "enrollments.json")
	repo, err := NewFileRepository(path)
	require.NoError(t, err)
	ctx := context.Background()

	loaded, err := repo.LoadAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, loaded, "missing file is an empty set")

	require.NoError(t, repo.SaveAll(ctx, sampleEnrollments()))

	loaded, err = repo.LoadAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, sampleEnrollments(), loaded)

	_, err = os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err), "temp file is renamed away")
}

func TestFileRepository_SavesEmptyArray(t *testing.T) {
	path := filepath.Join(t.TempDir(), "enrollments.json")
	repo, err := NewFileRepository(path)
	require.NoError(t, err)

	require.NoError(t, repo.SaveAll(context.Background(), nil))
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(content))
}

func TestFileRepository_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "enrollments.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))
	repo, err := NewFileRepository(path)
	require.NoError(t, err)

	_, err = repo.LoadAll(context.Background())
	assert.Error(t, err)
}

func TestFileRepository_JSONShape(t *testing.T) {
	path := filepath.Join(t.TempDir(), "enrollments.json")
	repo, err := NewFileRepository(path)
	require.NoError(t, err)
	require.NoError(t, repo.SaveAll(context.Background(), sampleEnrollments()[1:]))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, `[{
		"user_id": "u2",
		"user_name": "Grace",
		"user_email": "g@x.com",
		"internship_id": "42",
		"internship_name": "",
		"enrolled_at": "2024-05-02T10:00:00.000000Z",
		"tasks": [{"task_id": "s1", "title": "Complete Internship", "order": 1, "completed": false}]
	}]`, string(content))
}

func TestMemoryRepository_IsolatesCallers(t *testing.T) {
	repo := NewMemoryRepository(sampleEnrollments()...)
	ctx := context.Background()

	loaded, err := repo.LoadAll(ctx)
	require.NoError(t, err)
	loaded[0].Tasks[1].Completed = true

	again, err := repo.LoadAll(ctx)
	require.NoError(t, err)
	assert.False(t, again[0].Tasks[1].Completed)
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.ConnectDb(&config.Config{
		DBDriver: "sqlite",
		DBName:   "file:" + uuid.NewString() + "?mode=memory&cache=shared",
	})
	require.NoError(t, err)
	return db
}

func TestGormRepository_ReplacesWholeSet(t *testing.T) {
	repo := NewGormRepository(newTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.SaveAll(ctx, sampleEnrollments()))
	loaded, err := repo.LoadAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, sampleEnrollments(), loaded)

	updated := sampleEnrollments()[:1]
	updated[0].Tasks[1].Completed = true
	require.NoError(t, repo.SaveAll(ctx, updated))

	loaded, err = repo.LoadAll(ctx)
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.True(t, loaded[0].Tasks[1].Completed)

	require.NoError(t, repo.SaveAll(ctx, nil))
	loaded, err = repo.LoadAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, loaded)
}
