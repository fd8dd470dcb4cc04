package storage

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFakeS3(t *testing.T, objects map[string]string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		body, ok := objects[r.URL.Path]
		if !ok {
			w.Header().Set("Content-Type", "application/xml")
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`<?xml version="1.0" encoding="UTF-8"?><Error><Code>NoSuchKey</Code><Message>The specified key does not exist.</Message></Error>`))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server
}

func newTestS3Repository(t *testing.T, endpoint, key string) *S3Repository {
	t.Helper()
	repo, err := NewS3Repository(context.Background(), S3Config{
		Bucket:    "internhub",
		Key:       key,
		Region:    "us-east-1",
		Endpoint:  endpoint,
		AccessKey: "test",
		SecretKey: "test",
	})
	require.NoError(t, err)
	return repo
}

func TestS3Repository_LoadAll(t *testing.T) {
	server := newFakeS3(t, map[string]string{
		"/internhub/enrollments.json": `[{"user_id":"u1","user_email":"u1@x.com","internship_id":"42","enrolled_at":"2024-05-01T10:00:00.000000Z","tasks":[{"task_id":"t1","title":"Task One","order":1,"completed":true}]}]`,
		"/internhub/corrupt.json":     `{oops`,
	})

	loaded, err := newTestS3Repository(t, server.URL, "").LoadAll(context.Background())
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.Equal(t, "u1", loaded[0].UserID)
	assert.True(t, loaded[0].Tasks[0].Completed)

	loaded, err = newTestS3Repository(t, server.URL, "missing.json").LoadAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, loaded, "missing object is an empty set")

	_, err = newTestS3Repository(t, server.URL, "corrupt.json").LoadAll(context.Background())
	assert.Error(t, err)
}

func TestNewS3Repository_RequiresBucket(t *testing.T) {
	_, err := NewS3Repository(context.Background(), S3Config{Region: "auto"})
	assert.Error(t, err)
}
