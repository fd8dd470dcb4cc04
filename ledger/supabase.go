package ledger

import (
	"context"
	"fmt"
	"internhub/models"

	"github.com/go-resty/resty/v2"
)

type supabaseProgress struct {
	UserID       models.FlexibleID `json:"user_id"`
	SimulationID models.FlexibleID `json:"simulation_id"`
	TaskID       models.FlexibleID `json:"task_id"`
	Status       string            `json:"status"`
}

// Supabase queries the user_task_progress table of a Supabase project.
type Supabase struct {
	client *resty.Client
}

func NewSupabase(client *resty.Client) *Supabase {
	return &Supabase{client: client}
}

func (s *Supabase) Query(ctx context.Context, userID, internshipID string) Result {
	var rows []supabaseProgress
	resp, err := s.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"select":        "user_id,simulation_id,task_id,status",
			"user_id":       "eq." + userID,
			"simulation_id": "eq." + internshipID,
		}).
		SetResult(&rows).
		Get("/rest/v1/user_task_progress")
	if err != nil {
		return classify(fmt.Errorf("query progress for user %s: %w", userID, err))
	}
	if resp.StatusCode() >= 500 {
		return Unavailable(fmt.Errorf("query progress for user %s: status %d", userID, resp.StatusCode()))
	}
	if resp.IsError() {
		return Failed(fmt.Errorf("query progress for user %s: status %d: %s", userID, resp.StatusCode(), resp.String()))
	}

	out := make([]models.ProgressRow, len(rows))
	for i, row := range rows {
		out[i] = models.ProgressRow{
			UserID:       row.UserID.String(),
			InternshipID: row.SimulationID.String(),
			TaskID:       row.TaskID.String(),
			Status:       row.Status,
		}
	}
	return OK(out)
}
