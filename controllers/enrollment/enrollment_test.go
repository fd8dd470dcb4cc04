package enrollmentController

import (
	"context"
	"encoding/json"
	"errors"
	"internhub/middleware"
	"internhub/models"
	"internhub/services/enrollment"
	enrollmentValidator "internhub/validators/enrollment"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubService struct {
	enrollIn  enrollment.EnrollInput
	enrollErr error
	listErr   error
}

func (s *stubService) Enroll(ctx context.Context, in enrollment.EnrollInput) (enrollment.EnrollResult, error) {
	s.enrollIn = in
	if s.enrollErr != nil {
		return enrollment.EnrollResult{}, s.enrollErr
	}
	return enrollment.EnrollResult{Enrollment: models.Enrollment{UserID: in.UserID, InternshipID: in.InternshipID}}, nil
}

func (s *stubService) IsEnrolled(userID, internshipID string) bool { return false }

func (s *stubService) ListCandidates(ctx context.Context, internshipID string) ([]enrollment.CandidateProgress, error) {
	return nil, s.listErr
}

func (s *stubService) ListForUser(ctx context.Context, userID string) ([]enrollment.CandidateProgress, error) {
	return nil, s.listErr
}

func (s *stubService) CompleteTask(ctx context.Context, internshipID, userID, taskID string) error {
	return s.enrollErr
}

func newTestApp(svc EnrollmentService) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: middleware.ErrorHandler})
	ctl := New(svc)
	app.Post("/enroll", enrollmentValidator.Enroll(), ctl.Enroll)
	app.Get("/admin/internships/:internship_id/candidates", enrollmentValidator.Candidates(), ctl.Candidates)
	app.Patch("/admin/internships/:internship_id/candidates/:user_id/tasks/:task_id", enrollmentValidator.TaskStatus(), ctl.CompleteTask)
	return app
}

func decode(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	defer resp.Body.Close()
	out := map[string]any{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func TestEnroll_NumericIdentifiers(t *testing.T) {
	svc := &stubService{}
	app := newTestApp(svc)

	req := httptest.NewRequest(http.MethodPost, "/enroll", strings.NewReader(`{"user_id":7,"user_email":" a@x.com ","internship_id":42}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	assert.Equal(t, "7", svc.enrollIn.UserID)
	assert.Equal(t, "42", svc.enrollIn.InternshipID)
	assert.Equal(t, "a@x.com", svc.enrollIn.UserEmail)
}

func TestEnroll_InvalidBody(t *testing.T) {
	app := newTestApp(&stubService{})

	req := httptest.NewRequest(http.MethodPost, "/enroll", strings.NewReader(`{"user_id":`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestErrorsMapToStatusCodes(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		msg    string
	}{
		{"validation", enrollment.ErrValidation, http.StatusBadRequest, "Missing required fields"},
		{"persistence", errors.Join(enrollment.ErrPersistence, errors.New("disk full")), http.StatusInternalServerError, "Internal server error"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			app := newTestApp(&stubService{enrollErr: c.err})

			req := httptest.NewRequest(http.MethodPost, "/enroll", strings.NewReader(`{"user_id":"u1","user_email":"u1@x.com","internship_id":"42"}`))
			req.Header.Set("Content-Type", "application/json")
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, c.status, resp.StatusCode)
			assert.Equal(t, c.msg, decode(t, resp)["error"])
		})
	}
}

func TestCompleteTask_NotFoundAndFailure(t *testing.T) {
	app := newTestApp(&stubService{enrollErr: enrollment.ErrNotFound})
	resp, err := app.Test(httptest.NewRequest(http.MethodPatch, "/admin/internships/42/candidates/u1/tasks/x", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Task not found", decode(t, resp)["error"])

	app = newTestApp(&stubService{enrollErr: enrollment.ErrPersistence})
	resp, err = app.Test(httptest.NewRequest(http.MethodPatch, "/admin/internships/42/candidates/u1/tasks/x", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
}

func TestCandidates_ListFailure(t *testing.T) {
	app := newTestApp(&stubService{listErr: errors.New("boom")})
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/admin/internships/42/candidates", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
}
